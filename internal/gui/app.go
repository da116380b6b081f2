// Package gui is a raylib desktop front end for the playback controller. It
// polls Controller.Frame every frame and maps keys onto controller
// operations, the same way the terminal UI does.
package gui

import (
	"context"
	"fmt"
	"log"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/viz"
)

const (
	defaultWidth  = 1280
	defaultHeight = 720
	sizeStep      = 5
	speedFactor   = 1.25
)

type Options struct {
	Theme  string
	FPS    int
	Width  int
	Height int
}

type App struct {
	ctx     context.Context
	ctrl    *engine.Controller
	theme   viz.Theme
	palette palette
	opts    Options

	results chan engine.Result
	pending int
	status  string
	last    *engine.Result
}

func NewApp(ctx context.Context, ctrl *engine.Controller, opts Options) *App {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}
	theme := viz.GetTheme(opts.Theme)
	return &App{
		ctx:     ctx,
		ctrl:    ctrl,
		theme:   theme,
		palette: newPalette(theme),
		opts:    opts,
		results: make(chan engine.Result, 1),
		status:  "ready",
	}
}

// Run opens the window and blocks until it is closed or ctx is done. Any run
// in flight is stopped before Run returns.
func Run(ctx context.Context, ctrl *engine.Controller, opts Options) {
	app := NewApp(ctx, ctrl, opts)

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(app.opts.Width), int32(app.opts.Height), "sortviz")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(app.opts.FPS))
	rl.SetExitKey(0)

	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && a.ctx.Err() == nil {
		if !a.Update() {
			break
		}
		a.Draw()
	}
	a.ctrl.Stop()
	for ; a.pending > 0; a.pending-- {
		<-a.results
	}
}

// Update handles input and collects finished runs. It returns false when the
// user asked to quit.
func (a *App) Update() bool {
	a.collect()

	settings := a.ctrl.Settings()
	switch {
	case rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape):
		return false
	case rl.IsKeyPressed(rl.KeyS) || rl.IsKeyPressed(rl.KeyEnter):
		a.start()
	case rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyP):
		if a.ctrl.OnPauseToggle() {
			a.status = "paused"
		} else if a.ctrl.State() == engine.Running {
			a.status = "sorting"
		}
	case rl.IsKeyPressed(rl.KeyR):
		a.ctrl.OnReset()
		a.status = "reset"
	case rl.IsKeyPressed(rl.KeyG):
		if a.ctrl.OnGenerate() {
			a.status = "new array"
		}
	case rl.IsKeyPressed(rl.KeyTab):
		a.ctrl.OnAlgorithmChange(a.ctrl.Algorithm().Next())
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyEqual):
		if !a.ctrl.Locked() {
			a.ctrl.OnSizeChange(settings.Size() + sizeStep)
		}
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyMinus):
		if !a.ctrl.Locked() {
			a.ctrl.OnSizeChange(settings.Size() - sizeStep)
		}
	case rl.IsKeyPressed(rl.KeyLeft):
		a.ctrl.OnSpeedChange(time.Duration(float64(settings.Delay()) * speedFactor))
	case rl.IsKeyPressed(rl.KeyRight):
		a.ctrl.OnSpeedChange(time.Duration(float64(settings.Delay()) / speedFactor))
	case rl.IsKeyPressed(rl.KeyT):
		a.theme = viz.NextTheme(a.theme)
		a.palette = newPalette(a.theme)
	}
	return true
}

// start runs the selected algorithm off the render thread.
func (a *App) start() {
	if a.ctrl.Locked() {
		return
	}
	alg := a.ctrl.Algorithm()
	a.pending++
	a.status = "sorting"
	go func() {
		a.results <- a.ctrl.OnStart(a.ctx, alg)
	}()
}

func (a *App) collect() {
	for a.pending > 0 {
		select {
		case res := <-a.results:
			a.pending--
			a.finish(res)
		default:
			return
		}
	}
}

func (a *App) finish(res engine.Result) {
	last, ok := a.ctrl.LastResult()
	if !ok || last.Token != res.Token {
		if res.Outcome == sorting.Aborted && !a.ctrl.Locked() {
			a.status = "cancelled"
		}
		return
	}
	a.last = &last
	a.status = fmt.Sprintf("%s done in %s", res.Algorithm, res.Elapsed.Round(time.Millisecond))
	log.Printf("gui: run %d %s, %d comparisons, %d writes", res.Token, res.Outcome, res.Stats.Comparisons, res.Stats.Writes)
}
