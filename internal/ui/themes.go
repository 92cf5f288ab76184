package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the viewer
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// Available themes
var (
	DefaultTheme = Theme{
		Name:      "default",
		Primary:   adaptive("#1E40AF", "#60A5FA"),
		Secondary: adaptive("#6B7280", "#9CA3AF"),
		Accent:    adaptive("#7C3AED", "#A855F7"),
		Success:   adaptive("#059669", "#34D399"),
		Warning:   adaptive("#D97706", "#FBBF24"),
		Error:     adaptive("#DC2626", "#F87171"),
		Border:    adaptive("#D1D5DB", "#374151"),
		Muted:     adaptive("#6B7280", "#9CA3AF"),
		Selected:  adaptive("#DBEAFE", "#1E3A8A"),
		Highlight: adaptive("#0891B2", "#06B6D4"),
	}

	HighContrastTheme = Theme{
		Name:      "high-contrast",
		Primary:   adaptive("#000000", "#FFFFFF"),
		Secondary: adaptive("#333333", "#DDDDDD"),
		Accent:    adaptive("#000080", "#8080FF"),
		Success:   adaptive("#006600", "#00FF00"),
		Warning:   adaptive("#CC6600", "#FFAA00"),
		Error:     adaptive("#CC0000", "#FF4444"),
		Border:    adaptive("#000000", "#FFFFFF"),
		Muted:     adaptive("#444444", "#BBBBBB"),
		Selected:  adaptive("#FFFF00", "#444444"),
		Highlight: adaptive("#0000CC", "#FFFF00"),
	}

	MinimalTheme = Theme{
		Name:      "minimal",
		Primary:   adaptive("#2D3748", "#E2E8F0"),
		Secondary: adaptive("#718096", "#A0AEC0"),
		Accent:    adaptive("#4A5568", "#CBD5E0"),
		Success:   adaptive("#2F855A", "#68D391"),
		Warning:   adaptive("#C05621", "#F6AD55"),
		Error:     adaptive("#C53030", "#FC8181"),
		Border:    adaptive("#E2E8F0", "#2D3748"),
		Muted:     adaptive("#A0AEC0", "#718096"),
		Selected:  adaptive("#EDF2F7", "#2D3748"),
		Highlight: adaptive("#2B6CB0", "#63B3ED"),
	}
)

var (
	currentTheme  = DefaultTheme
	colorDisabled bool
)

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default", "":
		currentTheme = DefaultTheme
	case "high-contrast":
		currentTheme = HighContrastTheme
	case "minimal":
		currentTheme = MinimalTheme
	default:
		return false
	}
	return true
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// SetColorDisabled turns colors off regardless of NO_COLOR
func SetColorDisabled(disabled bool) {
	colorDisabled = disabled
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return colorDisabled || os.Getenv("NO_COLOR") != ""
}

// Styles contains the styles used by the viewer
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Header  lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bits    lipgloss.Style
	Hex     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Selected lipgloss.Style
	Box      lipgloss.Style
}

// GetStyles builds styles from the current theme
func GetStyles() *Styles {
	theme := GetTheme()
	plain := IsColorDisabled()

	fg := func(c lipgloss.AdaptiveColor) lipgloss.Style {
		if plain {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(c)
	}

	selected := lipgloss.NewStyle().Bold(true)
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
	if !plain {
		selected = selected.Background(theme.Selected).Foreground(theme.Primary)
		box = box.BorderForeground(theme.Border)
	}

	return &Styles{
		Theme:    theme,
		Title:    fg(theme.Primary).Bold(true).Padding(0, 1),
		Header:   fg(theme.Primary).Bold(true),
		Body:     fg(theme.Secondary),
		Muted:    fg(theme.Muted),
		Bits:     fg(theme.Accent),
		Hex:      fg(theme.Highlight).Bold(true),
		Success:  fg(theme.Success).Bold(true),
		Warning:  fg(theme.Warning).Bold(true),
		Error:    fg(theme.Error).Bold(true),
		Selected: selected,
		Box:      box,
	}
}
