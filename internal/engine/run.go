package engine

import (
	"github.com/san-kum/sortviz/internal/sorting"
)

// RunContext is the sorting.Run handed to one procedure invocation.
type RunContext struct {
	Token uint64

	ctrl *Controller
	arr  *sorting.Array
	step int
}

func (rc *RunContext) Render(h sorting.Highlight) {
	rc.step++
	rc.ctrl.publish(sorting.Frame{
		Token:     rc.Token,
		Step:      rc.step,
		Values:    rc.arr.Snapshot(),
		Highlight: h,
	})
}

// Await gives up the baton for the duration of the pacer wait. Whoever issues
// a token in the meantime is ordered before the procedure's next write.
func (rc *RunContext) Await() bool {
	rc.ctrl.baton.Unlock()
	ok := rc.ctrl.pacer.AwaitStep(rc.Token)
	rc.ctrl.baton.Lock()
	return ok && rc.ctrl.tokens.IsCurrent(rc.Token)
}
