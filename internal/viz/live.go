package viz

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/sortviz/internal/analysis"
	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/storage"
)

const (
	chartHeight = 18
	chartWidth  = 100
	sizeStep    = 5
	// multiplicative speed step for ←/→
	speedFactor = 1.25
)

var canvasStyle = lipgloss.NewStyle().Padding(1, 2)

// panelStyles are the status panel styles for one theme.
type panelStyles struct {
	panel  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
	status lipgloss.Style
	warn   lipgloss.Style
}

func stylesFor(t Theme) panelStyles {
	return panelStyles{
		panel:  lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(40),
		header: lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Sorted).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		status: lipgloss.NewStyle().Foreground(t.Text),
		warn:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
	}
}

type TickMsg time.Time

type runDoneMsg struct {
	res engine.Result
}

type savedMsg struct {
	id  string
	err error
}

// Options configures a Model.
type Options struct {
	Theme     string
	FrameRate int
	Seed      int64
	// Store enables saving finished runs when Record is set. It may be nil.
	Store  *storage.Store
	Record bool
}

// Model is the Bubble Tea model of the live visualizer. It never mutates the
// array itself: every key maps onto a Controller operation and the view is a
// projection of the latest published frame.
type Model struct {
	ctx      context.Context
	ctrl     *engine.Controller
	tracker  *analysis.Tracker
	recorder *storage.Recorder
	store    *storage.Store

	theme     Theme
	frameRate int
	seed      int64
	recording bool
	showHelp  bool

	frame  sorting.Frame
	state  engine.State
	locked bool
	status string
	// warn marks status as a failure or cancellation
	warn bool
	last *engine.Result
}

func NewModel(ctx context.Context, ctrl *engine.Controller, opts Options) Model {
	if opts.FrameRate <= 0 {
		opts.FrameRate = 30
	}
	tracker := analysis.NewTracker(analysis.DefaultHistoryCapacity)
	recorder := storage.NewRecorder(storage.DefaultMaxFrames)
	ctrl.AddObserver(tracker)
	ctrl.AddObserver(recorder)

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		tracker:   tracker,
		recorder:  recorder,
		store:     opts.Store,
		theme:     GetTheme(opts.Theme),
		frameRate: opts.FrameRate,
		seed:      opts.Seed,
		recording: opts.Record && opts.Store != nil,
		frame:     ctrl.Frame(),
		state:     ctrl.State(),
		status:    "ready",
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		m.refresh()
		return m, m.tick()
	case runDoneMsg:
		return m.finishRun(msg.res)
	case savedMsg:
		if msg.err != nil {
			log.Printf("save run: %v", msg.err)
			m.status, m.warn = "save failed: "+msg.err.Error(), true
		} else {
			m.status, m.warn = "saved "+msg.id, false
		}
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	settings := m.ctrl.Settings()
	m.warn = false
	switch msg.String() {
	case "q", "ctrl+c":
		m.ctrl.Stop()
		return m, tea.Quit
	case "s", "enter":
		if m.ctrl.Locked() {
			return m, nil
		}
		m.status = "sorting"
		m.refresh()
		return m, m.start(m.ctrl.Algorithm())
	case " ", "p":
		if m.ctrl.OnPauseToggle() {
			m.status = "paused"
		} else if m.ctrl.State() == engine.Running {
			m.status = "sorting"
		}
	case "r":
		m.ctrl.OnReset()
		m.status = "reset"
	case "g":
		if m.ctrl.OnGenerate() {
			m.status = "new array"
		}
	case "tab":
		m.ctrl.OnAlgorithmChange(m.ctrl.Algorithm().Next())
	case "+", "=":
		if !m.ctrl.Locked() {
			m.ctrl.OnSizeChange(settings.Size() + sizeStep)
		}
	case "-", "_":
		if !m.ctrl.Locked() {
			m.ctrl.OnSizeChange(settings.Size() - sizeStep)
		}
	case "left", "h":
		m.ctrl.OnSpeedChange(time.Duration(float64(settings.Delay()) * speedFactor))
	case "right", "l":
		m.ctrl.OnSpeedChange(time.Duration(float64(settings.Delay()) / speedFactor))
	case "w":
		if m.store != nil {
			m.recording = !m.recording
		}
	case "t":
		m.theme = NextTheme(m.theme)
	case "?":
		m.showHelp = !m.showHelp
	}
	m.refresh()
	return m, nil
}

// start runs alg on the controller off the UI goroutine.
func (m Model) start(alg sorting.Algorithm) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return runDoneMsg{res: ctrl.OnStart(ctx, alg)}
	}
}

func (m Model) finishRun(res engine.Result) (tea.Model, tea.Cmd) {
	m.refresh()
	last, ok := m.ctrl.LastResult()
	if !ok || last.Token != res.Token {
		// superseded or rejected; the controls already moved on
		if res.Outcome == sorting.Aborted && !m.locked {
			m.status, m.warn = "cancelled", true
		}
		return m, nil
	}
	m.last = &last
	m.status = fmt.Sprintf("%s done in %s", res.Algorithm, res.Elapsed.Round(time.Millisecond))
	if !m.recording || m.store == nil {
		return m, nil
	}
	frames, truncated := m.recorder.Frames()
	if truncated {
		log.Printf("run %d: frame buffer full, saving the first %d frames", res.Token, len(frames))
	}
	rec := storage.NewRecord(res, m.seed, m.ctrl.Settings().Delay())
	store := m.store
	return m, func() tea.Msg {
		id, err := store.Save(rec, frames)
		return savedMsg{id: id, err: err}
	}
}

func (m *Model) refresh() {
	m.frame = m.ctrl.Frame()
	m.state = m.ctrl.State()
	m.locked = m.ctrl.Locked()
}

func (m Model) View() string {
	values := m.frame.Values
	barW := BarWidth(len(values), chartWidth)
	bars := RenderBars(values, m.frame.Highlight, chartHeight, barW, m.theme)
	canvasView := canvasStyle.Render(bars)

	settings := m.ctrl.Settings()
	st := stylesFor(m.theme)
	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.ctrl.Algorithm().String()+" sort")) + "\n")
	s.WriteString(m.stateLabel() + "\n\n")

	hist := m.tracker.History()
	if len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("Sortedness"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	sortedness := analysis.Sortedness(values)
	s.WriteString(st.label.Render("Sorted") + ProgressBar(sortedness, 16) + st.value.Render(fmt.Sprintf(" %3.0f%%", sortedness*100)) + "\n")
	s.WriteString(st.label.Render("Size") + st.value.Render(fmt.Sprintf("%d", len(values))) + "\n")
	s.WriteString(st.label.Render("Delay") + st.value.Render(settings.Delay().String()) + "\n")
	s.WriteString(st.label.Render("Step") + st.value.Render(fmt.Sprintf("%d", m.frame.Step)) + "\n")
	if m.last != nil {
		s.WriteString(st.label.Render("Compares") + MetricValue.Render(fmt.Sprintf("%d", m.last.Stats.Comparisons)) + "\n")
		s.WriteString(st.label.Render("Writes") + MetricValue.Render(fmt.Sprintf("%d", m.last.Stats.Writes)) + "\n")
	}
	s.WriteString(st.label.Render("Theme") + st.value.Render(m.theme.Name) + "\n")
	if m.recording {
		s.WriteString(StatusRecording.Render("● REC") + "\n")
	}
	status := st.status
	if m.warn {
		status = st.warn
	}
	s.WriteString("\n" + status.Render(m.status) + "\n")
	s.WriteString(st.help.Render(Separator(30) + "\nS:Start SP:Pause R:Reset\nG:New Tab:Algo +/-:Size\n←/→:Speed T:Theme ?:Help Q:Quit"))

	statsView := st.panel.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

func (m Model) stateLabel() string {
	switch m.state {
	case engine.Running:
		return StatusRunning.Render("RUNNING")
	case engine.Paused:
		return StatusPaused.Render("PAUSED")
	}
	return StatusIdle.Render("IDLE")
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  S/Enter  - Start sorting            ║
║  Space    - Pause/Resume             ║
║  R        - Reset (new array)        ║
║  G        - Generate new array       ║
║  Tab      - Cycle algorithm          ║
║  +/-      - Array size               ║
║  ←/→      - Slower/Faster            ║
║  W        - Toggle saving runs       ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the TUI and blocks until the user quits.
func Run(ctx context.Context, ctrl *engine.Controller, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, opts), tea.WithAltScreen())
	_, err := p.Run()
	ctrl.Stop()
	return err
}
