package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name         string
	Trajectory   lipgloss.Color
	Velocity     lipgloss.Color
	Acceleration lipgloss.Color
	Force        lipgloss.Color
	Animation    lipgloss.Color
	Title        lipgloss.Color
	Label        lipgloss.Color
	Muted        lipgloss.Color

	// Series colors for three-component plots (x, y, z).
	Series [3]asciigraph.AnsiColor
}

var (
	ThemeClassic = Theme{
		Name:         "classic",
		Trajectory:   lipgloss.Color("#2563EB"),
		Velocity:     lipgloss.Color("#16A34A"),
		Acceleration: lipgloss.Color("#F59E0B"),
		Force:        lipgloss.Color("#DC2626"),
		Animation:    lipgloss.Color("#7C3AED"),
		Title:        lipgloss.Color("#E2E8F0"),
		Label:        lipgloss.Color("#93C5FD"),
		Muted:        lipgloss.Color("#64748B"),
		Series:       [3]asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue},
	}

	ThemeMono = Theme{
		Name:         "mono",
		Trajectory:   lipgloss.Color("#ffffff"),
		Velocity:     lipgloss.Color("#cccccc"),
		Acceleration: lipgloss.Color("#cccccc"),
		Force:        lipgloss.Color("#cccccc"),
		Animation:    lipgloss.Color("#ffffff"),
		Title:        lipgloss.Color("#ffffff"),
		Label:        lipgloss.Color("#aaaaaa"),
		Muted:        lipgloss.Color("#666666"),
		Series:       [3]asciigraph.AnsiColor{asciigraph.Default, asciigraph.LightGray, asciigraph.DarkGray},
	}

	ThemeNeon = Theme{
		Name:         "neon",
		Trajectory:   lipgloss.Color("#00ffff"),
		Velocity:     lipgloss.Color("#00ff88"),
		Acceleration: lipgloss.Color("#ffff00"),
		Force:        lipgloss.Color("#ff4444"),
		Animation:    lipgloss.Color("#ff00ff"),
		Title:        lipgloss.Color("#ffffff"),
		Label:        lipgloss.Color("#00ccff"),
		Muted:        lipgloss.Color("#666688"),
		Series:       [3]asciigraph.AnsiColor{asciigraph.Magenta, asciigraph.Cyan, asciigraph.Yellow},
	}

	// Default theme
	CurrentTheme = ThemeClassic

	Themes = []Theme{ThemeClassic, ThemeMono, ThemeNeon}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after current in Themes.
func NextTheme(current string) Theme {
	for i, t := range Themes {
		if t.Name == current {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
