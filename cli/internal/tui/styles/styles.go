// ABOUTME: Palette and lipgloss styles shared by every screen
// ABOUTME: Colors adapt to light and dark terminal backgrounds

package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	Primary   = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#22D3EE"} // cyan
	Accent    = lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"} // amber
	Secondary = lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}
	Danger    = lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}
	Info      = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"}
	Muted     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	Text      = lipgloss.AdaptiveColor{Light: "#111827", Dark: "#F3F4F6"}
	Surface   = lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#1F2937"}
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1)
	Subtitle = lipgloss.NewStyle().Foreground(Muted).MarginBottom(1)

	StatusCritical = lipgloss.NewStyle().Foreground(Danger).Bold(true)

	ActivePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	// Label and ValueStyle render "name   value" rows in result panels
	Label      = lipgloss.NewStyle().Foreground(Muted).Width(22)
	ValueStyle = lipgloss.NewStyle().Foreground(Text).Bold(true)
)

// TableStyles returns bubbles table styles in the app palette
func TableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Muted).
		BorderBottom(true).
		Foreground(Accent).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(Surface).
		Background(Primary).
		Bold(true)
	return s
}
