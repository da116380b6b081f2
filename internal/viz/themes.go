package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the bars and the status panel.
type Theme struct {
	Name    string
	Bar     lipgloss.Color
	Active  lipgloss.Color
	Compare lipgloss.Color
	Sorted  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Bar:     lipgloss.Color("#00ffff"),
		Active:  lipgloss.Color("#ff00ff"),
		Compare: lipgloss.Color("#ffff00"),
		Sorted:  lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Accent:  lipgloss.Color("#ff00ff"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Bar:     lipgloss.Color("#00cc00"),
		Active:  lipgloss.Color("#ffffff"),
		Compare: lipgloss.Color("#88ff88"),
		Sorted:  lipgloss.Color("#005500"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Bar:     lipgloss.Color("#cccccc"),
		Active:  lipgloss.Color("#ff4444"),
		Compare: lipgloss.Color("#0088ff"),
		Sorted:  lipgloss.Color("#00cc66"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Accent:  lipgloss.Color("#0088ff"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Bar:     lipgloss.Color("#0077be"),
		Active:  lipgloss.Color("#ff6b6b"),
		Compare: lipgloss.Color("#ffd700"),
		Sorted:  lipgloss.Color("#00ff88"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Accent:  lipgloss.Color("#00a8cc"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Bar:     lipgloss.Color("#feca57"),
		Active:  lipgloss.Color("#ff4757"),
		Compare: lipgloss.Color("#ff9ff3"),
		Sorted:  lipgloss.Color("#5fd068"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Accent:  lipgloss.Color("#ff6b6b"),
		Warning: lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, defaulting to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// HexRGB splits a "#rrggbb" theme colour into its channels.
func HexRGB(c lipgloss.Color) (r, g, b uint8, ok bool) {
	hex, found := strings.CutPrefix(string(c), "#")
	if !found || len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
