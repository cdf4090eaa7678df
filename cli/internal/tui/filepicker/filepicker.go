// ABOUTME: Picker for the well spreadsheet to classify
// ABOUTME: Offers recent spreadsheets, a typed path and the bundled samples

package filepicker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/separator-sizer/cli/internal/tui/samples"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
)

type state int

const (
	stateList state = iota
	stateInput
	stateSamples
)

type entryKind int

const (
	entryFile entryKind = iota
	entryTypePath
	entrySamples
	entryBack
)

type entry struct {
	label string
	path  string
	kind  entryKind
}

// FileSelectedMsg carries the absolute path of a readable spreadsheet
type FileSelectedMsg struct {
	Path string
}

// CancelledMsg is sent when the user backs out of the picker
type CancelledMsg struct{}

type FilePicker struct {
	recent  []string
	samples []samples.SampleFile
	state   state
	cursor  int
	input   textinput.Model
	err     string
	width   int
	height  int
}

var (
	cursorStyle  = lipgloss.NewStyle().Foreground(styles.Accent).Bold(true)
	itemStyle    = lipgloss.NewStyle().Foreground(styles.Text)
	hintStyle    = lipgloss.NewStyle().Foreground(styles.Muted)
	dividerStyle = lipgloss.NewStyle().Foreground(styles.Surface)
)

func New(recent []string, sampleFiles []samples.SampleFile) *FilePicker {
	ti := textinput.New()
	ti.Placeholder = "~/wells/north-field.xlsx"
	ti.CharLimit = 256
	ti.Width = 60

	return &FilePicker{recent: recent, samples: sampleFiles, input: ti}
}

func (fp *FilePicker) Init() tea.Cmd {
	return nil
}

func (fp *FilePicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		fp.width, fp.height = msg.Width, msg.Height
		fp.input.Width = max(msg.Width-8, 20)
	case tea.KeyMsg:
		fp.err = ""
		if fp.state == stateInput {
			return fp.updateInput(msg)
		}
		return fp.updateEntries(msg)
	}
	return fp, nil
}

// entries lists what the cursor can land on in the current state
func (fp *FilePicker) entries() []entry {
	var out []entry
	if fp.state == stateSamples {
		for _, s := range fp.samples {
			out = append(out, entry{label: s.Name, path: s.Path, kind: entryFile})
		}
		return append(out, entry{label: "[back]", kind: entryBack})
	}

	for _, p := range fp.recent {
		out = append(out, entry{label: p, path: p, kind: entryFile})
	}
	out = append(out, entry{label: "Enter path...", kind: entryTypePath})
	if len(fp.samples) > 0 {
		out = append(out, entry{label: "Load sample spreadsheet...", kind: entrySamples})
	}
	return out
}

func (fp *FilePicker) updateEntries(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := fp.entries()

	switch msg.String() {
	case "up", "k":
		fp.cursor = max(fp.cursor-1, 0)
	case "down", "j":
		fp.cursor = min(fp.cursor+1, len(entries)-1)
	case "esc", "b":
		if fp.state == stateSamples {
			fp.toList()
			return fp, nil
		}
		return fp, func() tea.Msg { return CancelledMsg{} }
	case "enter":
		return fp.activate(entries[fp.cursor])
	}
	return fp, nil
}

func (fp *FilePicker) activate(e entry) (tea.Model, tea.Cmd) {
	switch e.kind {
	case entryTypePath:
		fp.state = stateInput
		fp.input.Focus()
		return fp, textinput.Blink
	case entrySamples:
		fp.state = stateSamples
		fp.cursor = 0
	case entryBack:
		fp.toList()
	case entryFile:
		return fp.choose(e.path)
	}
	return fp, nil
}

func (fp *FilePicker) toList() {
	fp.state = stateList
	fp.cursor = 0
}

func (fp *FilePicker) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		fp.input.Reset()
		fp.input.Blur()
		fp.state = stateList
		return fp, nil
	case tea.KeyEnter:
		path := strings.TrimSpace(fp.input.Value())
		if path == "" {
			fp.err = "Please enter a file path"
			return fp, nil
		}
		return fp.choose(path)
	}

	var cmd tea.Cmd
	fp.input, cmd = fp.input.Update(msg)
	return fp, cmd
}

// choose emits the path once it names a readable .xlsx or .csv file
func (fp *FilePicker) choose(path string) (tea.Model, tea.Cmd) {
	resolved, err := resolve(path)
	if err != nil {
		fp.err = err.Error()
		return fp, nil
	}
	return fp, func() tea.Msg { return FileSelectedMsg{Path: resolved} }
}

// resolve expands ~, checks the file and returns its absolute path
func resolve(path string) (string, error) {
	expanded := expandPath(path)
	if !samples.IsWellTable(expanded) {
		return "", errors.New("Unsupported file type: use .xlsx or .csv")
	}

	info, err := os.Stat(expanded)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("File not found: %s", path)
	case errors.Is(err, fs.ErrPermission):
		return "", errors.New("Cannot read file: permission denied")
	case err != nil:
		return "", fmt.Errorf("Error reading file: %w", err)
	case info.IsDir():
		return "", fmt.Errorf("%s is a directory", path)
	}

	if abs, err := filepath.Abs(expanded); err == nil {
		return abs, nil
	}
	return expanded, nil
}

func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}

// SetError shows msg under the picker until the next key press
func (fp *FilePicker) SetError(msg string) {
	fp.err = msg
}

func (fp *FilePicker) View() string {
	var b strings.Builder

	switch fp.state {
	case stateInput:
		b.WriteString(styles.Title.Render("Enter spreadsheet path") + "\n")
		b.WriteString(fp.input.View() + "\n")
		b.WriteString(hintStyle.Render("enter to classify, esc to go back"))
	case stateSamples:
		b.WriteString(styles.Title.Render("Select sample spreadsheet") + "\n")
		fp.writeEntries(&b, fp.entries())
	default:
		b.WriteString(styles.Title.Render("Select well spreadsheet") + "\n")
		if len(fp.recent) > 0 {
			b.WriteString(hintStyle.Render("Recent files:") + "\n")
		}
		fp.writeEntries(&b, fp.entries())
	}

	if fp.err != "" {
		b.WriteString("\n" + styles.StatusCritical.Render("Error: "+fp.err))
	}
	return b.String()
}

func (fp *FilePicker) writeEntries(b *strings.Builder, entries []entry) {
	for i, e := range entries {
		if e.kind == entryTypePath && i > 0 {
			b.WriteString(dividerStyle.Render(strings.Repeat("─", fp.dividerWidth())) + "\n")
		}
		label := e.label
		if e.kind == entryFile {
			label = fp.shorten(label)
		}
		if i == fp.cursor {
			b.WriteString(cursorStyle.Render("> "+label) + "\n")
		} else {
			b.WriteString("  " + itemStyle.Render(label) + "\n")
		}
	}
}

func (fp *FilePicker) dividerWidth() int {
	if fp.width < 5 {
		return 40
	}
	return min(40, fp.width-4)
}

// shorten keeps the tail of long paths, where the file name is
func (fp *FilePicker) shorten(path string) string {
	limit := fp.width - 10
	if fp.width <= 20 || len(path) <= limit {
		return path
	}
	return "..." + path[len(path)-(limit-3):]
}
