package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#388E3C"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FBC02D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#D32F2F"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#F57C00"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#757575"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
)

// HeaderStyle is used for the top header bar and section titles.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps detail and result content areas.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// ListItemStyle is the base style for items in a list.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedItemStyle highlights the currently focused list item.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle is used for inline error messages in forms and views.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// UrgencyColor returns the color for one of the backend's four urgency
// levels.
func UrgencyColor(level string) lipgloss.AdaptiveColor {
	switch level {
	case "critical":
		return ColorRed
	case "high":
		return ColorOrange
	case "medium":
		return ColorYellow
	case "low":
		return ColorGreen
	default:
		return ColorGray
	}
}

// UrgencyStyle returns a color-coded badge style for an urgency level.
func UrgencyStyle(level string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(0, 1).
		Foreground(UrgencyColor(level))
}

// StatusStyle returns a color-coded style for a crisis lifecycle status.
func StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "pending":
		return base.Foreground(ColorYellow)
	case "matched":
		return base.Foreground(ColorBlue)
	case "dispatched":
		return base.Foreground(ColorMagenta)
	case "completed":
		return base.Foreground(ColorGreen)
	case "cancelled":
		return base.Foreground(ColorGray)
	default:
		return base.Foreground(ColorGray)
	}
}

// ScoreColor returns the display color for a numeric 0-10 sub-score,
// using the same four tiers the factor cards are classified into.
func ScoreColor(score float64) lipgloss.AdaptiveColor {
	switch {
	case score >= 8:
		return ColorRed
	case score >= 6:
		return ColorOrange
	case score >= 4:
		return ColorYellow
	default:
		return ColorGreen
	}
}
