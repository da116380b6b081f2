// Package export renders frames and run history as standalone SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/sortviz/internal/sorting"
	"github.com/san-kum/sortviz/internal/viz"
)

const background = "#0a0a0a"

// FrameToSVG draws one frame as a bar chart, colouring each bar by its role.
func FrameToSVG(f sorting.Frame, theme viz.Theme, width, height int) string {
	n := len(f.Values)
	if n == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	for _, b := range Layout(f, float64(width), float64(height)) {
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, b.X, b.Y, b.W, b.H, RoleColor(theme, b.Role)))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// Bar is one bar of a frame placed in a width by height area, origin top left.
type Bar struct {
	X, Y, W, H float64
	Role       sorting.Role
}

// Layout places the bars of f side by side, growing up from the bottom edge
// and scaled so MaxValue fills the height. Narrow slots get no gap.
func Layout(f sorting.Frame, width, height float64) []Bar {
	n := len(f.Values)
	if n == 0 || width <= 0 || height <= 0 {
		return nil
	}

	slot := width / float64(n)
	gap := slot * 0.15
	if n > 60 {
		gap = 0
	}

	bars := make([]Bar, n)
	for i, v := range f.Values {
		h := min(float64(v)/float64(sorting.MaxValue)*height, height)
		bars[i] = Bar{
			X:    float64(i)*slot + gap/2,
			Y:    height - h,
			W:    slot - gap,
			H:    h,
			Role: f.Highlight.Role(i, n),
		}
	}
	return bars
}

// RoleColor is the theme colour a bar with role r is drawn in.
func RoleColor(t viz.Theme, r sorting.Role) string {
	switch r {
	case sorting.RoleSorted:
		return string(t.Sorted)
	case sorting.RoleCompare:
		return string(t.Compare)
	case sorting.RoleActive:
		return string(t.Active)
	}
	return string(t.Bar)
}

// TrendToSVG plots values in [0, 1], one point per step, as a line.
func TrendToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		x := float64(i) / last * float64(width)
		y := float64(height) - v*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
