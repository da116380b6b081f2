package gui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/sortviz/internal/engine"
	"github.com/san-kum/sortviz/internal/export"
	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/viz"
)

var (
	colBg   = rl.NewColor(10, 10, 10, 255)
	colGrid = rl.NewColor(30, 30, 30, 255)
)

const (
	margin    = 40
	panelH    = 110
	fontSize  = 20
	smallFont = 14
)

// palette holds the theme colours converted for raylib.
type palette struct {
	roles  [4]rl.Color
	text   rl.Color
	muted  rl.Color
	accent rl.Color
	warn   rl.Color
}

func toColor(c lipgloss.Color) rl.Color {
	r, g, b, ok := viz.HexRGB(c)
	if !ok {
		return rl.LightGray
	}
	return rl.NewColor(r, g, b, 255)
}

func newPalette(t viz.Theme) palette {
	var p palette
	for _, role := range []sorting.Role{sorting.RoleNone, sorting.RoleActive, sorting.RoleCompare, sorting.RoleSorted} {
		p.roles[role] = toColor(lipgloss.Color(export.RoleColor(t, role)))
	}
	p.text = toColor(t.Text)
	p.muted = toColor(t.Muted)
	p.accent = toColor(t.Accent)
	p.warn = toColor(t.Warning)
	return p
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	w := float64(rl.GetScreenWidth())
	h := float64(rl.GetScreenHeight())
	frame := a.ctrl.Frame()

	a.drawBars(frame, w, h)
	a.drawPanel(frame, int32(h))

	rl.EndDrawing()
}

func (a *App) drawBars(f sorting.Frame, w, h float64) {
	areaW := w - 2*margin
	areaH := h - 2*margin - panelH
	if areaW <= 0 || areaH <= 0 {
		return
	}

	for i := 1; i < 4; i++ {
		y := int32(margin + areaH*float64(i)/4)
		rl.DrawLine(margin, y, int32(margin+areaW), y, colGrid)
	}

	for _, b := range export.Layout(f, areaW, areaH) {
		rl.DrawRectangleRec(rl.NewRectangle(
			float32(margin+b.X),
			float32(margin+b.Y),
			float32(b.W),
			float32(b.H),
		), a.palette.roles[b.Role])
	}
}

func (a *App) drawPanel(f sorting.Frame, screenH int32) {
	y := screenH - panelH + 10
	settings := a.ctrl.Settings()

	title := strings.ToUpper(a.ctrl.Algorithm().String() + " sort")
	rl.DrawText(title, margin, y, fontSize, a.palette.accent)

	state := a.ctrl.State()
	stateCol := a.palette.text
	if state == engine.Paused {
		stateCol = a.palette.warn
	}
	rl.DrawText(strings.ToUpper(state.String()), margin+rl.MeasureText(title, fontSize)+20, y, fontSize, stateCol)

	stats := fmt.Sprintf("size %d   delay %s   step %d   theme %s",
		len(f.Values), settings.Delay(), f.Step, a.theme.Name)
	if a.last != nil {
		stats += fmt.Sprintf("   compares %d   writes %d", a.last.Stats.Comparisons, a.last.Stats.Writes)
	}
	rl.DrawText(stats, margin, y+30, smallFont, a.palette.text)

	statusCol := a.palette.muted
	if a.status == "cancelled" {
		statusCol = a.palette.warn
	}
	rl.DrawText(a.status, margin, y+52, smallFont, statusCol)

	rl.DrawText("S start  SPACE pause  R reset  G new  TAB algo  UP/DOWN size  LEFT/RIGHT speed  T theme  Q quit",
		margin, y+74, smallFont, a.palette.muted)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rl.GetScreenWidth())-margin-60, y, smallFont, a.palette.muted)
}
