package engine

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/sortviz/internal/sorting"
)

type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Result describes how a call to OnStart ended.
type Result struct {
	Token     uint64            `json:"token"`
	Algorithm sorting.Algorithm `json:"algorithm"`
	Outcome   sorting.Outcome   `json:"outcome"`
	Stats     sorting.Stats     `json:"stats"`
	Elapsed   time.Duration     `json:"elapsed"`
	Initial   []int             `json:"initial"`
	Final     []int             `json:"final"`
}

// RunInfo is passed to observers when a run starts.
type RunInfo struct {
	Token     uint64
	Algorithm sorting.Algorithm
	Initial   []int
	Started   time.Time
}

// Observer receives published frames and run lifecycle events. OnRunEnd is
// only delivered for runs whose completion was applied, never for stale ones.
type Observer interface {
	OnRunStart(info RunInfo)
	OnFrame(f sorting.Frame)
	OnRunEnd(r Result)
}

// BaseObserver can be embedded to implement only part of Observer.
type BaseObserver struct{}

func (BaseObserver) OnRunStart(RunInfo)    {}
func (BaseObserver) OnFrame(sorting.Frame) {}
func (BaseObserver) OnRunEnd(Result)       {}

type Options struct {
	Seed         int64
	PollInterval time.Duration
	Algorithm    sorting.Algorithm
}

// Controller owns the run token and the array, and exposes the playback
// controls.
type Controller struct {
	// baton is held by the running procedure between yield points and by
	// anyone issuing a token. Acquire before mu.
	baton sync.Mutex
	mu    sync.Mutex

	tokens   *Tokens
	settings *Settings
	pacer    *Pacer
	rng      *rand.Rand

	arr       *sorting.Array
	frame     sorting.Frame
	algorithm sorting.Algorithm
	running   bool
	locked    bool
	last      *Result
	observers []Observer
}

func New(settings *Settings, opts Options) *Controller {
	if settings == nil {
		settings = DefaultSettings()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tokens := &Tokens{}
	pacer := NewPacer(tokens, settings)
	if opts.PollInterval > 0 {
		pacer.PollInterval = opts.PollInterval
	}

	c := &Controller{
		tokens:    tokens,
		settings:  settings,
		pacer:     pacer,
		rng:       rand.New(rand.NewSource(seed)),
		algorithm: opts.Algorithm,
	}
	c.regenerate()
	return c
}

func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

func (c *Controller) Settings() *Settings { return c.settings }

func (c *Controller) Tokens() *Tokens { return c.tokens }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked()
}

func (c *Controller) stateLocked() State {
	if !c.running {
		return Idle
	}
	if c.settings.Paused() {
		return Paused
	}
	return Running
}

// Locked reports whether the size, algorithm and generate controls are
// disabled.
func (c *Controller) Locked() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.locked
}

// Frame returns the most recently published frame.
func (c *Controller) Frame() sorting.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frame
}

func (c *Controller) Algorithm() sorting.Algorithm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.algorithm
}

// LastResult returns the last run whose completion was applied.
func (c *Controller) LastResult() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}

// OnAlgorithmChange selects the algorithm used by the next start. Ignored
// while the controls are locked.
func (c *Controller) OnAlgorithmChange(alg sorting.Algorithm) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.locked {
		return false
	}
	c.algorithm = alg
	return true
}

// OnGenerate replaces the array with fresh random values. Ignored while a run
// is in flight.
func (c *Controller) OnGenerate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.regenerate()
	return true
}

// OnLoad replaces the array with the given values. Ignored while a run is in
// flight.
func (c *Controller) OnLoad(values []int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		return false
	}
	c.arr = sorting.NewArray(values)
	c.publishIdle()
	return true
}

func (c *Controller) OnSizeChange(n int) {
	c.settings.SetSize(n)
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		c.regenerate()
	}
}

func (c *Controller) OnSpeedChange(d time.Duration) {
	c.settings.SetDelay(d)
}

// OnPauseToggle flips pause while a run is in flight and returns the new
// pause state. The run token is untouched.
func (c *Controller) OnPauseToggle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running {
		return c.settings.Paused()
	}
	return c.settings.TogglePaused()
}

// OnReset cancels any run in flight, clears pause and regenerates the array.
func (c *Controller) OnReset() {
	c.baton.Lock()
	defer c.baton.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tokens.Issue()
	c.settings.SetPaused(false)
	c.running = false
	c.locked = false
	c.regenerate()
}

// Stop cancels the run in flight, if any, and leaves the array as the run
// left it.
func (c *Controller) Stop() {
	c.baton.Lock()
	defer c.baton.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running {
		c.supersedeLocked()
	}
}

func (c *Controller) cancelRun(tok uint64) {
	c.baton.Lock()
	defer c.baton.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running && c.tokens.IsCurrent(tok) {
		c.supersedeLocked()
	}
}

func (c *Controller) supersedeLocked() {
	c.tokens.Issue()
	c.settings.SetPaused(false)
	c.running = false
	c.locked = false
	c.publishIdle()
}

// OnStart runs alg on the current array and returns when the run completes
// or is superseded. A start while a run is in flight is rejected. When ctx is
// done the run is superseded as if by a new token.
func (c *Controller) OnStart(ctx context.Context, alg sorting.Algorithm) Result {
	c.baton.Lock()
	defer c.baton.Unlock()

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return Result{Algorithm: alg, Outcome: sorting.Rejected}
	}
	c.running = true
	c.locked = true
	c.algorithm = alg
	c.settings.SetPaused(false)
	tok := c.tokens.Issue()
	arr := c.arr
	info := RunInfo{Token: tok, Algorithm: alg, Initial: arr.Snapshot(), Started: time.Now()}
	for _, o := range c.observers {
		o.OnRunStart(info)
	}
	c.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { c.cancelRun(tok) })
	defer stop()

	rc := &RunContext{Token: tok, ctrl: c, arr: arr}
	outcome, stats := alg.Sort(arr, rc)

	res := Result{
		Token:     tok,
		Algorithm: alg,
		Outcome:   outcome,
		Stats:     stats,
		Elapsed:   time.Since(info.Started),
		Initial:   info.Initial,
		Final:     arr.Snapshot(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tokens.IsCurrent(tok) {
		// superseded: a newer run or reset owns the controls now
		return res
	}
	c.running = false
	c.locked = false
	c.last = &res
	for _, o := range c.observers {
		o.OnRunEnd(res)
	}
	return res
}

// publish records f as the latest frame unless its run has been superseded.
func (c *Controller) publish(f sorting.Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.tokens.IsCurrent(f.Token) {
		return
	}
	c.setFrameLocked(f)
}

func (c *Controller) regenerate() {
	c.arr = sorting.Generate(c.rng, c.settings.Size())
	c.publishIdle()
}

func (c *Controller) publishIdle() {
	c.setFrameLocked(sorting.Frame{
		Token:  c.tokens.Current(),
		Values: c.arr.Snapshot(),
	})
}

func (c *Controller) setFrameLocked(f sorting.Frame) {
	c.frame = f
	for _, o := range c.observers {
		o.OnFrame(f)
	}
}
