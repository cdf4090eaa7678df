// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/client"
	"github.com/markalston/separator-sizer/cli/internal/tui/debuglog"
	"github.com/markalston/separator-sizer/cli/internal/tui/filepicker"
	"github.com/markalston/separator-sizer/cli/internal/tui/menu"
	"github.com/markalston/separator-sizer/cli/internal/tui/recentfiles"
	"github.com/markalston/separator-sizer/cli/internal/tui/results"
	"github.com/markalston/separator-sizer/cli/internal/tui/samples"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
	"github.com/markalston/separator-sizer/cli/internal/tui/widgets"
	"github.com/markalston/separator-sizer/cli/internal/tui/wizard"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenMenu Screen = iota
	ScreenWizard
	ScreenSizing
	ScreenFilePicker
	ScreenClassification
)

// sizedMsg is sent when a sizing request completes
type sizedMsg struct {
	result *models.SizingResponse
	err    error
}

// classifiedMsg is sent when a spreadsheet upload completes
type classifiedMsg struct {
	path   string
	result *models.ClassificationResponse
	err    error
}

// reportSavedMsg is sent when a batch report has been written
type reportSavedMsg struct {
	path string
	err  error
}

// App is the root model for the TUI
type App struct {
	client        *client.Client
	screen        Screen
	width         int
	height        int
	err           error
	loading       string
	online        bool
	repoBasePath  string
	lastUpdate    time.Time
	headerContext string // shown on the right of the header

	// Last wizard entry, used to prefill the next run
	lastInput *models.SeparatorInput

	// Child models
	menu           *menu.Menu
	filePicker     *filepicker.FilePicker
	wizardScreen   *wizard.Wizard
	sizing         *results.Sizing
	classification *results.Classification

	recentFiles *recentfiles.RecentFiles
}

// New creates a new TUI application. Backend actions are disabled in the
// menu when online is false.
func New(apiClient *client.Client, online bool, repoBasePath string) *App {
	return &App{
		client:       apiClient,
		screen:       ScreenMenu,
		online:       online,
		repoBasePath: repoBasePath,
		recentFiles:  recentfiles.New(recentfiles.DefaultConfigDir()),
		menu:         menu.New(online),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.sizing != nil {
			a.sizing.SetWidth(a.contentWidth())
		}
		if a.classification != nil {
			a.classification.SetWidth(a.contentWidth())
		}
		if a.filePicker != nil {
			a.filePicker.Update(msg)
		}
		if a.wizardScreen != nil {
			a.wizardScreen.SetWidth(a.contentWidth())
			return a.updateWizard(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.loading != "" {
			return a, nil
		}

		switch a.screen {
		case ScreenMenu:
			return a.updateMenu(msg)
		case ScreenWizard:
			return a.updateWizard(msg)
		case ScreenSizing:
			return a.updateSizing(msg)
		case ScreenFilePicker:
			return a.updateFilePicker(msg)
		case ScreenClassification:
			return a.updateClassification(msg)
		}

	case menu.ActionSelectedMsg:
		switch msg.Action {
		case menu.ActionSize:
			return a, a.runWizard()
		case menu.ActionClassify:
			return a, a.openFilePicker()
		}
		return a, nil

	case menu.CancelledMsg:
		return a, tea.Quit

	case wizard.WizardCompleteMsg:
		a.wizardScreen = nil
		a.lastInput = msg.Input
		a.loading = "Sizing separator..."
		return a, a.sizeSeparator(msg.Input, msg.TargetSR)

	case wizard.WizardCancelledMsg:
		a.wizardScreen = nil
		a.backToMenu()
		return a, nil

	case sizedMsg:
		a.loading = ""
		a.screen = ScreenSizing
		if msg.err != nil {
			debuglog.Error("size", msg.err)
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.lastUpdate = time.Now()
		a.headerContext = string(msg.result.Geometry)
		a.sizing = results.NewSizing(msg.result, a.contentWidth())
		return a, nil

	case filepicker.FileSelectedMsg:
		a.loading = "Classifying " + filepath.Base(msg.Path) + "..."
		return a, a.classifyFile(msg.Path)

	case filepicker.CancelledMsg:
		a.filePicker = nil
		a.backToMenu()
		return a, nil

	case classifiedMsg:
		return a.handleClassified(msg)

	case reportSavedMsg:
		a.loading = ""
		if a.classification != nil {
			if msg.err != nil {
				debuglog.Error("report", msg.err)
				a.classification.SetStatus("Report failed: "+msg.err.Error(), widgets.StatusCritical)
			} else {
				a.classification.SetStatus("Report saved to "+msg.path, widgets.StatusOK)
			}
		}
		return a, nil

	default:
		// huh forms need their internal messages
		if a.screen == ScreenWizard && a.wizardScreen != nil {
			return a.updateWizard(msg)
		}
	}

	return a, nil
}

func (a *App) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.menu == nil {
		return a, nil
	}
	model, cmd := a.menu.Update(msg)
	a.menu = model.(*menu.Menu)
	return a, cmd
}

func (a *App) updateFilePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.filePicker == nil {
		return a, nil
	}
	model, cmd := a.filePicker.Update(msg)
	a.filePicker = model.(*filepicker.FilePicker)
	return a, cmd
}

func (a *App) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.wizardScreen == nil {
		return a, nil
	}
	model, cmd := a.wizardScreen.Update(msg)
	a.wizardScreen = model.(*wizard.Wizard)
	return a, cmd
}

func (a *App) updateSizing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b":
		a.backToMenu()
		return a, nil
	case "w":
		return a, a.runWizard()
	}
	if a.sizing != nil {
		return a, a.sizing.Update(msg)
	}
	return a, nil
}

func (a *App) updateClassification(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b":
		a.backToMenu()
		return a, nil
	case "o":
		return a, a.openFilePicker()
	case "r":
		if a.classification != nil && a.classification.BatchID() != "" {
			a.loading = "Downloading report..."
			return a, a.saveReport(a.classification.BatchID())
		}
		return a, nil
	}
	if a.classification != nil {
		return a, a.classification.Update(msg)
	}
	return a, nil
}

func (a *App) handleClassified(msg classifiedMsg) (tea.Model, tea.Cmd) {
	a.loading = ""
	if msg.err != nil {
		debuglog.Error("classify", msg.err)
		if a.filePicker != nil {
			a.filePicker.SetError(msg.err.Error())
			a.screen = ScreenFilePicker
			return a, nil
		}
		a.err = msg.err
		return a, nil
	}

	if err := a.recentFiles.Record(msg.path, msg.result.BatchID); err != nil {
		debuglog.Error("record recent file", err)
	}

	a.err = nil
	a.filePicker = nil
	a.lastUpdate = time.Now()
	a.headerContext = filepath.Base(msg.path)
	a.classification = results.NewClassification(msg.result, msg.path, a.contentWidth())
	a.screen = ScreenClassification
	return a, nil
}

// backToMenu drops results and returns to the start screen
func (a *App) backToMenu() {
	a.screen = ScreenMenu
	a.err = nil
	a.headerContext = ""
	a.sizing = nil
	a.classification = nil
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch {
	case a.loading != "":
		content = styles.Subtitle.Render(a.loading)
	case a.screen == ScreenWizard:
		content = a.viewWizard()
	case a.screen == ScreenSizing:
		content = a.viewSizing()
	case a.screen == ScreenFilePicker:
		content = a.viewFilePicker()
	case a.screen == ScreenClassification:
		content = a.viewClassification()
	default:
		content = a.viewMenu()
	}

	return a.framed(content)
}

func (a *App) viewMenu() string {
	if a.menu != nil {
		return a.menu.View()
	}
	return ""
}

func (a *App) viewFilePicker() string {
	if a.filePicker != nil {
		return a.filePicker.View()
	}
	return ""
}

func (a *App) viewWizard() string {
	if a.wizardScreen != nil {
		return a.wizardScreen.View()
	}
	return ""
}

func (a *App) viewSizing() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	if a.sizing == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.sizing.View())
}

func (a *App) viewClassification() string {
	if a.err != nil {
		return styles.StatusCritical.Render("Error: " + a.err.Error())
	}
	if a.classification == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.classification.View())
}

// runWizard transitions to the wizard, prefilled with the last entry
func (a *App) runWizard() tea.Cmd {
	a.wizardScreen = wizard.New(a.lastInput)
	a.wizardScreen.SetWidth(a.contentWidth())
	a.screen = ScreenWizard
	a.err = nil
	return a.wizardScreen.Init()
}

// openFilePicker transitions to the file picker with recent files and samples
func (a *App) openFilePicker() tea.Cmd {
	if _, err := a.recentFiles.Load(); err != nil {
		debuglog.Error("load recent files", err)
	}
	sampleFiles, err := samples.Discover(samples.FindSamplesDir(a.repoBasePath))
	if err != nil {
		debuglog.Error("discover samples", err)
	}

	a.filePicker = filepicker.New(a.recentFiles.Paths(), sampleFiles)
	a.filePicker.Update(tea.WindowSizeMsg{Width: a.contentWidth(), Height: a.height})
	a.screen = ScreenFilePicker
	a.err = nil
	return a.filePicker.Init()
}

// sizeSeparator calls the backend to size the separator
func (a *App) sizeSeparator(input *models.SeparatorInput, targetSR float64) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.Size(context.Background(), input, targetSR)
		return sizedMsg{result: result, err: err}
	}
}

// classifyFile uploads the spreadsheet at path
func (a *App) classifyFile(path string) tea.Cmd {
	return func() tea.Msg {
		result, err := a.client.ClassifyFile(context.Background(), path)
		return classifiedMsg{path: path, result: result, err: err}
	}
}

// saveReport writes the batch report to the working directory
func (a *App) saveReport(batchID string) tea.Cmd {
	path := client.ReportPath(batchID)
	return func() tea.Msg {
		err := a.client.SaveReport(context.Background(), batchID, path)
		return reportSavedMsg{path: path, err: err}
	}
}

// Run starts the TUI
func Run(apiClient *client.Client, online bool) error {
	app := New(apiClient, online, findRepoBasePath())

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// findRepoBasePath returns the working directory when it holds a samples
// directory, otherwise ""
func findRepoBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	if info, err := os.Stat(filepath.Join(cwd, "samples")); err == nil && info.IsDir() {
		return cwd
	}
	return ""
}
