package storage

import (
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
)

const DefaultMaxFrames = 20000

// Recorder buffers the frames of the current run so they can be saved once
// it ends.
type Recorder struct {
	engine.BaseObserver

	mu        sync.Mutex
	token     uint64
	frames    []sorting.Frame
	maxFrames int
	truncated bool
}

func NewRecorder(maxFrames int) *Recorder {
	if maxFrames <= 0 {
		maxFrames = DefaultMaxFrames
	}
	return &Recorder{maxFrames: maxFrames}
}

func (r *Recorder) OnRunStart(info engine.RunInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = info.Token
	r.frames = r.frames[:0]
	r.truncated = false
	r.frames = append(r.frames, sorting.Frame{Token: info.Token, Values: info.Initial})
}

func (r *Recorder) OnFrame(f sorting.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f.Token != r.token || f.Step == 0 {
		return
	}
	if len(r.frames) >= r.maxFrames {
		r.truncated = true
		return
	}
	r.frames = append(r.frames, f)
}

// Frames returns a copy of the buffered frames and whether the buffer
// overflowed.
func (r *Recorder) Frames() ([]sorting.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]sorting.Frame, len(r.frames))
	copy(out, r.frames)
	return out, r.truncated
}

// NewRecord builds the metadata for a finished run.
func NewRecord(res engine.Result, seed int64, delay time.Duration) RunRecord {
	return RunRecord{
		Algorithm: res.Algorithm.String(),
		Outcome:   res.Outcome.String(),
		Timestamp: time.Now(),
		Seed:      seed,
		Size:      len(res.Initial),
		DelayMs:   delay.Milliseconds(),
		ElapsedMs: res.Elapsed.Milliseconds(),
		Stats:     res.Stats,
		Initial:   res.Initial,
		Final:     res.Final,
	}
}
