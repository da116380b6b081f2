package engine

import (
	"sync/atomic"
	"time"
)

const (
	MinSize     = 5
	MaxSize     = 100
	DefaultSize = 30

	MinDelay     = time.Millisecond
	MaxDelay     = 2 * time.Second
	DefaultDelay = 200 * time.Millisecond

	DefaultPollInterval = 50 * time.Millisecond
)

// Settings is the playback configuration shared between the controls and a
// running procedure. Each field is read and written atomically on its own;
// there is no cross-field consistency.
type Settings struct {
	delay  atomic.Int64
	paused atomic.Bool
	size   atomic.Int64
}

func NewSettings(size int, delay time.Duration) *Settings {
	s := &Settings{}
	s.SetSize(size)
	s.SetDelay(delay)
	return s
}

func DefaultSettings() *Settings {
	return NewSettings(DefaultSize, DefaultDelay)
}

func (s *Settings) Delay() time.Duration { return time.Duration(s.delay.Load()) }

func (s *Settings) SetDelay(d time.Duration) { s.delay.Store(int64(ClampDelay(d))) }

func (s *Settings) Paused() bool { return s.paused.Load() }

func (s *Settings) SetPaused(p bool) { s.paused.Store(p) }

// TogglePaused flips the pause flag and returns the new value.
func (s *Settings) TogglePaused() bool {
	for {
		old := s.paused.Load()
		if s.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *Settings) Size() int { return int(s.size.Load()) }

func (s *Settings) SetSize(n int) { s.size.Store(int64(ClampSize(n))) }

func ClampSize(n int) int {
	if n < MinSize {
		return MinSize
	}
	if n > MaxSize {
		return MaxSize
	}
	return n
}

func ClampDelay(d time.Duration) time.Duration {
	if d < MinDelay {
		return MinDelay
	}
	if d > MaxDelay {
		return MaxDelay
	}
	return d
}
