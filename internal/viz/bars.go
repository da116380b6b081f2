package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sortviz/internal/sorting"
)

// eighths of a cell, index 0 is empty
var barGlyphs = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

type roleStyles [4]lipgloss.Style

func newRoleStyles(t Theme) roleStyles {
	var s roleStyles
	s[sorting.RoleNone] = lipgloss.NewStyle().Foreground(t.Bar)
	s[sorting.RoleActive] = lipgloss.NewStyle().Foreground(t.Active)
	s[sorting.RoleCompare] = lipgloss.NewStyle().Foreground(t.Compare)
	s[sorting.RoleSorted] = lipgloss.NewStyle().Foreground(t.Sorted)
	return s
}

// BarWidth picks how many columns each bar gets so that n bars fit in width.
func BarWidth(n, width int) int {
	if n <= 0 {
		return 1
	}
	w := width / n
	switch {
	case w >= 3:
		return 3
	case w >= 2:
		return 2
	}
	return 1
}

// RenderBars draws values as vertical bars height rows tall. A value of
// sorting.MaxValue fills the full height. Bars are coloured by their role
// in h. The result has exactly height lines.
func RenderBars(values []int, h sorting.Highlight, height, barWidth int, theme Theme) string {
	if height < 1 {
		height = 1
	}
	if barWidth < 1 {
		barWidth = 1
	}
	styles := newRoleStyles(theme)
	n := len(values)

	levels := make([]int, n)
	for i, v := range values {
		lvl := v * height * 8 / sorting.MaxValue
		if lvl < 1 && v > 0 {
			lvl = 1
		}
		levels[i] = lvl
	}

	gap := ""
	glyphWidth := barWidth
	if barWidth > 1 {
		gap = " "
		glyphWidth = barWidth - 1
	}

	rows := make([]string, height)
	for r := 0; r < height; r++ {
		// row 0 is the top; floor is the level at the bottom of row r
		floor := (height - 1 - r) * 8
		var b strings.Builder
		for i, lvl := range levels {
			fill := lvl - floor
			if fill > 8 {
				fill = 8
			}
			if fill < 0 {
				fill = 0
			}
			cell := strings.Repeat(barGlyphs[fill], glyphWidth)
			if fill > 0 {
				cell = styles[h.Role(i, n)].Render(cell)
			}
			b.WriteString(cell)
			b.WriteString(gap)
		}
		rows[r] = b.String()
	}
	return strings.Join(rows, "\n")
}
