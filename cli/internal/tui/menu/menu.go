// ABOUTME: Start menu for the TUI
// ABOUTME: Chooses between the sizing wizard and spreadsheet classification

package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/separator-sizer/cli/internal/tui/icons"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
)

// Action is a menu choice
type Action int

const (
	ActionSize Action = iota
	ActionClassify
	ActionQuit
)

// ActionSelectedMsg is sent when an enabled option is chosen
type ActionSelectedMsg struct {
	Action Action
}

// CancelledMsg is sent when the user leaves the menu
type CancelledMsg struct{}

type option struct {
	label   string
	icon    icons.Icon
	value   Action
	enabled bool
}

// Menu is the start screen
type Menu struct {
	options []option
	cursor  int
	notice  string
}

// New creates the menu. Backend actions are disabled when the backend did
// not answer the startup health check.
func New(backendOnline bool) *Menu {
	return &Menu{
		options: []option{
			{label: "Size a separator", icon: icons.Wizard, value: ActionSize, enabled: backendOnline},
			{label: "Classify wells from a spreadsheet", icon: icons.Sheet, value: ActionClassify, enabled: backendOnline},
			{label: "Quit", icon: icons.Quit, value: ActionQuit, enabled: true},
		},
	}
}

// Init implements tea.Model
func (m *Menu) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.notice = ""
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case "q", "esc":
		return m, func() tea.Msg { return CancelledMsg{} }
	case "enter":
		opt := m.options[m.cursor]
		if !opt.enabled {
			m.notice = "Backend is offline. Start it or pass --api-url."
			return m, nil
		}
		if opt.value == ActionQuit {
			return m, func() tea.Msg { return CancelledMsg{} }
		}
		return m, func() tea.Msg { return ActionSelectedMsg{Action: opt.value} }
	}

	return m, nil
}

// View implements tea.Model
func (m *Menu) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("What would you like to do?"))
	b.WriteString("\n")

	selected := lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	normal := lipgloss.NewStyle().Foreground(styles.Text)
	disabled := lipgloss.NewStyle().Foreground(styles.Muted)

	for i, opt := range m.options {
		cursor := "  "
		style := normal
		if i == m.cursor {
			cursor = "> "
			style = selected
		}
		label := opt.icon.String() + " " + opt.label
		if !opt.enabled {
			label += " (backend offline)"
			style = disabled
		}
		b.WriteString(cursor + style.Render(label) + "\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusCritical.Render(m.notice))
	}

	return b.String()
}

// String returns the string representation of an Action
func (a Action) String() string {
	switch a {
	case ActionSize:
		return "size"
	case ActionClassify:
		return "classify"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}
