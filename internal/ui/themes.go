package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor

	Success lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
}

// buildTheme creates a theme with the given colors
func buildTheme(name string, primary, secondary, success, warning, errorColor, border, muted, selected, highlight [2]string) Theme {
	return Theme{
		Name:      name,
		Primary:   lipgloss.AdaptiveColor{Light: primary[0], Dark: primary[1]},
		Secondary: lipgloss.AdaptiveColor{Light: secondary[0], Dark: secondary[1]},
		Success:   lipgloss.AdaptiveColor{Light: success[0], Dark: success[1]},
		Warning:   lipgloss.AdaptiveColor{Light: warning[0], Dark: warning[1]},
		Error:     lipgloss.AdaptiveColor{Light: errorColor[0], Dark: errorColor[1]},
		Border:    lipgloss.AdaptiveColor{Light: border[0], Dark: border[1]},
		Muted:     lipgloss.AdaptiveColor{Light: muted[0], Dark: muted[1]},
		Selected:  lipgloss.AdaptiveColor{Light: selected[0], Dark: selected[1]},
		Highlight: lipgloss.AdaptiveColor{Light: highlight[0], Dark: highlight[1]},
	}
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#059669", "#10B981"}, [2]string{"#D97706", "#F59E0B"},
		[2]string{"#DC2626", "#EF4444"}, [2]string{"#D1D5DB", "#374151"},
		[2]string{"#6B7280", "#9CA3AF"}, [2]string{"#DBEAFE", "#1E3A8A"},
		[2]string{"#FEF3C7", "#1F2937"})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#006600", "#00FF00"}, [2]string{"#CC6600", "#FFAA00"},
		[2]string{"#CC0000", "#FF4444"}, [2]string{"#000000", "#FFFFFF"},
		[2]string{"#666666", "#BBBBBB"}, [2]string{"#CCCCCC", "#333333"},
		[2]string{"#FFFF00", "#444444"})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"},
		[2]string{"#2F855A", "#68D391"}, [2]string{"#C05621", "#F6AD55"},
		[2]string{"#C53030", "#FC8181"}, [2]string{"#E2E8F0", "#2D3748"},
		[2]string{"#A0AEC0", "#718096"}, [2]string{"#EDF2F7", "#2D3748"},
		[2]string{"#F7FAFC", "#2D3748"})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "default":
		currentTheme = DefaultTheme
		return true
	case "high-contrast":
		currentTheme = HighContrastTheme
		return true
	case "minimal":
		currentTheme = MinimalTheme
		return true
	default:
		return false
	}
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// iconGlyphs maps tree node icon tags to display glyphs
var iconGlyphs = map[string]string{
	"folder":  "▸",
	"run":     "»",
	"refresh": "↻",
	"error":   "✗",
	"plugin":  "◆",
	"report":  "▤",
}

// IconGlyph returns the glyph for an icon tag, empty when untagged
func IconGlyph(icon string) string {
	return iconGlyphs[icon]
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title  lipgloss.Style
	Header lipgloss.Style
	Body   lipgloss.Style
	Muted  lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	Selected  lipgloss.Style
	Highlight lipgloss.Style

	Box   lipgloss.Style
	Panel lipgloss.Style
}

// GetStyles builds the style set for the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Body: lipgloss.NewStyle(),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(theme.Selected).
			Foreground(theme.Primary).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Background(theme.Highlight).
			Foreground(theme.Primary),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(1, 2),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
	}
}
