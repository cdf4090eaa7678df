// ABOUTME: Result view for a single separator sizing
// ABOUTME: Shows settling properties and the horizontal diameter sweep as a table

package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
	"github.com/markalston/separator-sizer/cli/internal/tui/widgets"
)

var sweepColumns = []table.Column{
	{Title: "D (in)", Width: 10},
	{Title: "Leff (ft)", Width: 12},
	{Title: "Lss (ft)", Width: 12},
	{Title: "SR", Width: 8},
}

// Sizing displays a sizing response
type Sizing struct {
	result *models.SizingResponse
	sweep  table.Model
	width  int
}

// NewSizing creates a sizing view. The sweep cursor starts on the
// recommended row when there is one.
func NewSizing(result *models.SizingResponse, width int) *Sizing {
	s := &Sizing{result: result, width: width}

	if result == nil || result.Horizontal == nil {
		return s
	}

	rows := make([]table.Row, 0, len(result.Horizontal.Sweep))
	for _, step := range result.Horizontal.Sweep {
		rows = append(rows, table.Row{
			fmt.Sprintf("%.2f", step.Diameter),
			fmt.Sprintf("%.2f", step.EffectiveLength),
			fmt.Sprintf("%.2f", step.SeamToSeamLength),
			fmt.Sprintf("%.2f", step.SlendernessRatio),
		})
	}

	s.sweep = table.New(
		table.WithColumns(sweepColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(len(rows)+1),
		table.WithStyles(styles.TableStyles()),
	)
	if i := s.recommendedIndex(); i >= 0 {
		s.sweep.SetCursor(i)
	}

	return s
}

// recommendedIndex returns the sweep row matching the recommendation, or -1
func (s *Sizing) recommendedIndex() int {
	if s.result.Recommended == nil {
		return -1
	}
	for i, step := range s.result.Horizontal.Sweep {
		if step.Diameter == s.result.Recommended.Diameter {
			return i
		}
	}
	return -1
}

// Update moves the sweep cursor
func (s *Sizing) Update(msg tea.Msg) tea.Cmd {
	if s.result == nil || s.result.Horizontal == nil {
		return nil
	}
	var cmd tea.Cmd
	s.sweep, cmd = s.sweep.Update(msg)
	return cmd
}

// SetWidth updates the render width
func (s *Sizing) SetWidth(width int) {
	s.width = width
}

// Selected returns the sweep row under the cursor, nil for vertical results
func (s *Sizing) Selected() *models.DiameterStep {
	if s.result == nil || s.result.Horizontal == nil || len(s.result.Horizontal.Sweep) == 0 {
		return nil
	}
	step := s.result.Horizontal.Sweep[s.sweep.Cursor()]
	return &step
}

func line(label, value string) string {
	return styles.Label.Render(label) + styles.ValueStyle.Render(value) + "\n"
}

// View renders the sizing result
func (s *Sizing) View() string {
	if s.result == nil {
		return "No sizing result"
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Separator Sizing"))
	sb.WriteString("\n")
	sb.WriteString(widgets.GeometryBadge(s.result.Geometry))
	sb.WriteString("\n\n")

	st := s.result.Settling
	sb.WriteString(styles.Subtitle.Render("Settling"))
	sb.WriteString("\n")
	sb.WriteString(line("Liquid density", fmt.Sprintf("%.2f lb/ft³", st.LiquidDensity)))
	sb.WriteString(line("Gas density", fmt.Sprintf("%.2f lb/ft³", st.GasDensity)))
	sb.WriteString(line("Drag coefficient", fmt.Sprintf("%.2f", st.DragCoefficient)))
	sb.WriteString(line("Terminal velocity", fmt.Sprintf("%.2f ft/s", st.TerminalVelocity)))
	sb.WriteString(line("Reynolds number", fmt.Sprintf("%.2f", st.ReynoldsNumber)))
	sb.WriteString("\n")

	switch {
	case s.result.Vertical != nil:
		s.writeVertical(&sb)
	case s.result.Horizontal != nil:
		s.writeHorizontal(&sb)
	}

	return sb.String()
}

func (s *Sizing) writeVertical(sb *strings.Builder) {
	v := s.result.Vertical
	sb.WriteString(styles.Subtitle.Render("Vertical vessel"))
	sb.WriteString("\n")
	sb.WriteString(line("Gas capacity", fmt.Sprintf("%.2f in", v.GasDiameter)))
	sb.WriteString(line("Oil settling", fmt.Sprintf("%.2f in", v.OilDiameter)))
	sb.WriteString(line("Water settling", fmt.Sprintf("%.2f in", v.WaterDiameter)))
	sb.WriteString(line("Diameter", fmt.Sprintf("%.2f in", v.Diameter)))
	sb.WriteString(widgets.GoverningBadge(v.Governing))
	sb.WriteString("\n")
	sb.WriteString(line("Liquid height", fmt.Sprintf("%.2f in", v.Height)))
	sb.WriteString(line("Seam-to-seam", fmt.Sprintf("%.2f ft", v.SeamToSeamLength)))
	sb.WriteString(line("Slenderness ratio", fmt.Sprintf("%.2f", v.SlendernessRatio)))
}

func (s *Sizing) writeHorizontal(sb *strings.Builder) {
	h := s.result.Horizontal
	sb.WriteString(styles.Subtitle.Render("Horizontal vessel"))
	sb.WriteString("\n")
	sb.WriteString(line("Oil pad", fmt.Sprintf("%.2f in", h.OilPadThickness)))
	sb.WriteString(line("Max diameter", fmt.Sprintf("%.2f in", h.Diameter)))
	sb.WriteString(line("Gas d·Leff", fmt.Sprintf("%.2f", h.GasEffectiveLength)))
	sb.WriteString(line("Retention d²·Leff", fmt.Sprintf("%.2f", h.RetentionConstant)))
	sb.WriteString("\n")
	sb.WriteString(s.sweep.View())
	sb.WriteString("\n")

	if rec := s.result.Recommended; rec != nil {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText(
			fmt.Sprintf("Recommended: %.2f in x %.2f ft (SR %.2f)", rec.Diameter, rec.SeamToSeamLength, rec.SlendernessRatio),
			widgets.StatusOK))
		sb.WriteString("\n")
	}
}
