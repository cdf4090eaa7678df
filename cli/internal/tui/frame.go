// ABOUTME: Border drawn around every screen
// ABOUTME: Header with title and context, footer with key hints and freshness

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/separator-sizer/cli/internal/tui/icons"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
)

// minTerminalWidth is the narrowest frame drawn
const minTerminalWidth = 80

var (
	ruleStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
	brandStyle   = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle = lipgloss.NewStyle().Foreground(styles.Secondary)
	keyStyle     = lipgloss.NewStyle().Foreground(styles.Primary)
	hintStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
)

// shortcut is one key hint in the footer
type shortcut struct {
	key   string
	label string
}

func (s shortcut) render() string {
	return keyStyle.Render(s.key) + " " + hintStyle.Render(s.label)
}

var screenShortcuts = map[Screen][]shortcut{
	ScreenMenu:           {{"↑↓", "Navigate"}, {"Enter", "Select"}, {"q", "Quit"}},
	ScreenWizard:         {{"Tab", "Next"}, {"Enter", "Confirm"}, {"Esc", "Cancel"}},
	ScreenSizing:         {{"↑↓", "Sweep"}, {"w", "Resize"}, {"b", "Back"}, {"q", "Quit"}},
	ScreenFilePicker:     {{"↑↓", "Navigate"}, {"Enter", "Select"}, {"Esc", "Back"}},
	ScreenClassification: {{"↑↓", "Wells"}, {"r", "Report"}, {"o", "Open"}, {"b", "Back"}, {"q", "Quit"}},
}

// frameWidth is one column narrower than the terminal so the border never
// wraps, and never below minTerminalWidth
func (a *App) frameWidth() int {
	return max(a.width-1, minTerminalWidth)
}

// contentWidth is the width inside a panel border
func (a *App) contentWidth() int {
	return a.frameWidth() - 4
}

func (a *App) showingResult() bool {
	return a.screen == ScreenSizing || a.screen == ScreenClassification
}

// rule draws one border line: corners, left text, a dash fill and right text
func (a *App) rule(openCorner, closeCorner, left, right string) string {
	fill := max(0, a.frameWidth()-4-lipgloss.Width(left)-lipgloss.Width(right))
	return ruleStyle.Render(openCorner + "─" + left + strings.Repeat("─", fill) + right + "─" + closeCorner)
}

func (a *App) renderHeader() string {
	left := fmt.Sprintf(" %s %s ", icons.App, brandStyle.Render("Separator Sizer"))
	right := ""
	if a.headerContext != "" && a.showingResult() {
		right = " " + contextStyle.Render(a.headerContext) + " "
	}
	return a.rule("╭", "╮", left, right)
}

func (a *App) renderFooter() string {
	hints := screenShortcuts[a.screen]
	rendered := make([]string, len(hints))
	for i, h := range hints {
		rendered[i] = h.render()
	}

	right := ""
	if !a.lastUpdate.IsZero() && a.showingResult() {
		right = " " + contextStyle.Render("Updated "+formatTimeSince(a.lastUpdate, time.Now())) + " "
	}
	return a.rule("╰", "╯", " "+strings.Join(rendered, "  ")+" ", right)
}

// formatTimeSince renders the age of t at now, coarsening as it grows
func formatTimeSince(t, now time.Time) string {
	switch d := now.Sub(t); {
	case d < 5*time.Second:
		return "just now"
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d/time.Second))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	default:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
}

func (a *App) framed(content string) string {
	return a.renderHeader() + "\n" + content + "\n" + a.renderFooter()
}
