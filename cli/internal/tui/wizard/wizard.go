// ABOUTME: Separator sizing wizard as a bubbletea model
// ABOUTME: Collects one well stream over three huh form steps with a progress indicator

package wizard

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/tui/icons"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
)

// absoluteZeroF is the lowest temperature the sizing service accepts
const absoluteZeroF = -459.67

// WizardCompleteMsg is sent when the wizard finishes successfully.
// TargetSR is zero when no slenderness target was entered.
type WizardCompleteMsg struct {
	Input    *models.SeparatorInput
	TargetSR float64
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// Wizard manages the sizing wizard flow as a bubbletea model
type Wizard struct {
	input    *models.SeparatorInput
	targetSR float64
	form     *huh.Form
	step     int
	width    int

	// Form field values (strings for huh)
	geometry       string
	gasRate        string
	oilRate        string
	waterRate      string
	pressure       string
	temperature    string
	z              string
	viscosity      string
	gasSG          string
	oilAPI         string
	waterSG        string
	oilRetention   string
	waterRetention string
	constantB      string
	target         string
}

// Step names for progress indicator
var stepNames = []string{"Stream", "Conditions", "Fluids"}

var geometryOptions = []huh.Option[string]{
	huh.NewOption("Horizontal", string(models.GeometryHorizontal)),
	huh.NewOption("Vertical", string(models.GeometryVertical)),
}

// createTheme returns a huh theme built from the shared palette
func createTheme() *huh.Theme {
	t := huh.ThemeBase()
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	t.Group.Title = styles.Title
	t.Group.Description = styles.Subtitle

	f := &t.Focused
	f.Base = f.Base.BorderForeground(styles.Primary)
	f.Title = fg(styles.Accent).Bold(true)
	f.Description = fg(styles.Muted)
	f.ErrorIndicator = fg(styles.Danger).SetString(" *")
	f.ErrorMessage = fg(styles.Danger)
	f.SelectSelector = fg(styles.Primary).SetString("> ")
	f.Option = fg(styles.Text)
	f.SelectedOption = fg(styles.Primary).Bold(true)
	f.TextInput.Cursor = fg(styles.Primary)
	f.TextInput.Prompt = fg(styles.Primary)
	f.TextInput.Placeholder = fg(styles.Muted)
	f.TextInput.Text = fg(styles.Text)
	f.FocusedButton = f.FocusedButton.Background(styles.Info)
	f.BlurredButton = f.BlurredButton.Foreground(styles.Muted).Background(styles.Surface)

	// Blurred fields keep the focused palette but dim titles and options
	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Title = fg(styles.Muted)
	t.Blurred.Option = fg(styles.Muted)
	t.Blurred.SelectSelector = fg(styles.Muted).SetString("  ")

	return t
}

// DefaultInput is the low pressure three-phase stream the wizard starts from
func DefaultInput() *models.SeparatorInput {
	return &models.SeparatorInput{
		GasRate:             6.6,
		OilRate:             5000,
		WaterRate:           6000,
		Pressure:            65,
		Temperature:         90,
		GasSG:               0.6,
		OilSG:               30,
		WaterSG:             1.07,
		Z:                   0.85,
		Viscosity:           10,
		OilRetentionMin:     5,
		WaterRetentionMin:   10,
		HorizontalConstantB: 0.5,
		Geometry:            string(models.GeometryHorizontal),
	}
}

// New creates a wizard prefilled from input, or from DefaultInput when nil
func New(input *models.SeparatorInput) *Wizard {
	if input == nil {
		input = DefaultInput()
	}
	in := *input

	w := &Wizard{
		input:          &in,
		step:           1,
		geometry:       strings.ToLower(in.Geometry),
		gasRate:        formatValue(in.GasRate),
		oilRate:        formatValue(in.OilRate),
		waterRate:      formatValue(in.WaterRate),
		pressure:       formatValue(in.Pressure),
		temperature:    formatValue(in.Temperature),
		z:              formatValue(in.Z),
		viscosity:      formatValue(in.Viscosity),
		gasSG:          formatValue(in.GasSG),
		oilAPI:         formatValue(in.OilSG),
		waterSG:        formatValue(in.WaterSG),
		oilRetention:   formatValue(in.OilRetentionMin),
		waterRetention: formatValue(in.WaterRetentionMin),
		constantB:      formatValue(in.HorizontalConstantB),
	}
	if _, ok := models.ParseGeometry(w.geometry); !ok {
		w.geometry = string(models.GeometryHorizontal)
	}

	w.form = w.createStep1Form()
	return w
}

func numberInput(title, description string, value *string, validate func(string) error) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description(description).
		CharLimit(12).
		Value(value).
		Validate(validate)
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Separator type").
				Description("Use ↑/↓ to select, Enter to confirm").
				Options(geometryOptions...).
				Value(&w.geometry),
			numberInput("Gas rate", "MMscf/d", &w.gasRate, validatePositive),
			numberInput("Oil rate", "bbl/d", &w.oilRate, validateNonNegative),
			numberInput("Water rate", "bbl/d", &w.waterRate, validateNonNegative),
		).Title("Step 1: Stream").
			Description("Separator geometry and produced rates"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Operating pressure", "psia", &w.pressure, validatePositive),
			numberInput("Operating temperature", "°F", &w.temperature, validateTemperature),
			numberInput("Gas compressibility (Z)", "Dimensionless", &w.z, validatePositive),
			numberInput("Liquid viscosity", "cp", &w.viscosity, validatePositive),
		).Title("Step 2: Conditions").
			Description("Operating conditions at the separator"),
	).WithTheme(createTheme())
}

func (w *Wizard) createStep3Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			numberInput("Gas specific gravity", "Air = 1", &w.gasSG, validatePositive),
			numberInput("Oil gravity", "°API", &w.oilAPI, validateAPI),
			numberInput("Water specific gravity", "Fresh water = 1", &w.waterSG, validatePositive),
			numberInput("Oil retention time", "minutes", &w.oilRetention, validateNonNegative),
			numberInput("Water retention time", "minutes", &w.waterRetention, validateNonNegative),
			numberInput("Horizontal constant B", "D = H / B, horizontal only", &w.constantB, validatePositive),
			numberInput("Target slenderness ratio", "Optional, horizontal only. Leave blank to skip", &w.target, validateOptionalPositive),
		).Title("Step 3: Fluids").
			Description("Fluid properties and retention times"),
	).WithTheme(createTheme())
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
		form, cmd := w.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			w.form = f
		}
		return w, cmd

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.input.Geometry = w.geometry
		w.input.GasRate = parseValue(w.gasRate)
		w.input.OilRate = parseValue(w.oilRate)
		w.input.WaterRate = parseValue(w.waterRate)
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.input.Pressure = parseValue(w.pressure)
		w.input.Temperature = parseValue(w.temperature)
		w.input.Z = parseValue(w.z)
		w.input.Viscosity = parseValue(w.viscosity)
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.input.GasSG = parseValue(w.gasSG)
		w.input.OilSG = parseValue(w.oilAPI)
		w.input.WaterSG = parseValue(w.waterSG)
		w.input.OilRetentionMin = parseValue(w.oilRetention)
		w.input.WaterRetentionMin = parseValue(w.waterRetention)
		w.input.HorizontalConstantB = parseValue(w.constantB)
		w.targetSR = parseValue(w.target)

		input, target := w.input, w.targetSR
		return w, func() tea.Msg {
			return WizardCompleteMsg{Input: input, TargetSR: target}
		}
	}

	return w, nil
}

// SetWidth sets the wizard width for proper rendering
func (w *Wizard) SetWidth(width int) {
	w.width = width
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())

	return sb.String()
}

// renderProgress renders the step list and a fill bar inside a titled box
func (w *Wizard) renderProgress() string {
	inner := max(w.width-1, 60) - 4

	marks := make([]string, len(stepNames))
	for i, name := range stepNames {
		marks[i] = stepMark(i+1, w.step, name)
	}

	filled := w.step * inner / len(stepNames)
	bar := lipgloss.NewStyle().Foreground(styles.Primary).Render(strings.Repeat("━", filled)) +
		lipgloss.NewStyle().Foreground(styles.Surface).Render(strings.Repeat("─", inner-filled))

	heading := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("Sizing")
	body := lipgloss.JoinVertical(lipgloss.Left, heading, strings.Join(marks, "    "), bar)

	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		Padding(0, 1).
		Width(inner + 2).
		Render(body)
}

// stepMark renders one step label as done, current or pending
func stepMark(n, current int, name string) string {
	switch {
	case n < current:
		done := lipgloss.NewStyle().Foreground(styles.Secondary).Render(icons.CheckOK.String())
		return done + " " + lipgloss.NewStyle().Foreground(styles.Muted).Render(name)
	case n == current:
		return lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("● " + name)
	default:
		return lipgloss.NewStyle().Foreground(styles.Muted).Render("○ " + name)
	}
}

// GetInput returns the collected separator input
func (w *Wizard) GetInput() *models.SeparatorInput {
	return w.input
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// parseValue reads a validated field; blank reads as zero
func parseValue(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number")
	}
	return v, nil
}

func validatePositive(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	return nil
}

func validateNonNegative(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("cannot be negative")
	}
	return nil
}

func validateOptionalPositive(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validatePositive(s)
}

func validateTemperature(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v <= absoluteZeroF {
		return fmt.Errorf("must be above absolute zero (%.2f °F)", absoluteZeroF)
	}
	return nil
}

func validateAPI(s string) error {
	v, err := parseNumber(s)
	if err != nil {
		return err
	}
	if v <= -131.5 {
		return fmt.Errorf("must be above -131.5 °API")
	}
	return nil
}
