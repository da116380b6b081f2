package analysis

import (
	"sync"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
)

const DefaultHistoryCapacity = 600

// Tracker records the sortedness of every frame of the current run.
type Tracker struct {
	engine.BaseObserver

	mu       sync.Mutex
	capacity int
	history  []float64
}

func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &Tracker{capacity: capacity, history: make([]float64, 0, capacity)}
}

func (t *Tracker) OnRunStart(info engine.RunInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = t.history[:0]
	t.history = append(t.history, Sortedness(info.Initial))
}

func (t *Tracker) OnFrame(f sorting.Frame) {
	if f.Step == 0 {
		return
	}
	t.Observe(f.Values)
}

// Observe appends the sortedness of values, dropping the oldest sample once
// the history is full.
func (t *Tracker) Observe(values []int) {
	s := Sortedness(values)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.history = append(t.history, s)
	if len(t.history) > t.capacity {
		t.history = t.history[1:]
	}
}

func (t *Tracker) History() []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]float64, len(t.history))
	copy(out, t.history)
	return out
}

// Last is the most recent sample, or 0 before any run.
func (t *Tracker) Last() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.history) == 0 {
		return 0
	}
	return t.history[len(t.history)-1]
}
