// ABOUTME: Result view for a classified well batch
// ABOUTME: Lists recommendations in a table with details for the selected well

package results

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/tui/styles"
	"github.com/markalston/separator-sizer/cli/internal/tui/widgets"
)

// maxVisibleRows caps the recommendation table height
const maxVisibleRows = 12

var recommendationColumns = []table.Column{
	{Title: "#", Width: 4},
	{Title: "Type", Width: 11},
	{Title: "Rule", Width: 5},
	{Title: "GOR", Width: 10},
	{Title: "Water cut", Width: 10},
}

// Classification displays a batch of recommendations
type Classification struct {
	result *models.ClassificationResponse
	source string
	table  table.Model
	status string
	level  widgets.StatusLevel
	width  int
}

// NewClassification creates a classification view for the batch read from source
func NewClassification(result *models.ClassificationResponse, source string, width int) *Classification {
	c := &Classification{result: result, source: source, width: width}
	if result == nil {
		return c
	}

	rows := make([]table.Row, 0, len(result.Recommendations))
	for i, rec := range result.Recommendations {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			string(rec.SeparatorType),
			strconv.Itoa(rec.Rule),
			fmt.Sprintf("%.2f", rec.GOR),
			fmt.Sprintf("%.2f%%", rec.WaterCut*100),
		})
	}

	c.table = table.New(
		table.WithColumns(recommendationColumns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), maxVisibleRows)+1),
		table.WithStyles(styles.TableStyles()),
	)

	return c
}

// Update moves the table cursor
func (c *Classification) Update(msg tea.Msg) tea.Cmd {
	if c.result == nil {
		return nil
	}
	var cmd tea.Cmd
	c.table, cmd = c.table.Update(msg)
	return cmd
}

// SetWidth updates the render width
func (c *Classification) SetWidth(width int) {
	c.width = width
}

// SetStatus shows a one-line message under the table
func (c *Classification) SetStatus(text string, level widgets.StatusLevel) {
	c.status = text
	c.level = level
}

// BatchID returns the batch the report endpoint knows this result by
func (c *Classification) BatchID() string {
	if c.result == nil {
		return ""
	}
	return c.result.BatchID
}

// Source returns the spreadsheet path the batch was read from
func (c *Classification) Source() string {
	return c.source
}

// Selected returns the recommendation under the cursor
func (c *Classification) Selected() *models.Recommendation {
	if c.result == nil || len(c.result.Recommendations) == 0 {
		return nil
	}
	rec := c.result.Recommendations[c.table.Cursor()]
	return &rec
}

// Counts returns the number of vertical and horizontal recommendations
func (c *Classification) Counts() (vertical, horizontal int) {
	if c.result == nil {
		return 0, 0
	}
	for _, rec := range c.result.Recommendations {
		if rec.SeparatorType == models.SeparatorHorizontal {
			horizontal++
		} else {
			vertical++
		}
	}
	return vertical, horizontal
}

// View renders the classification
func (c *Classification) View() string {
	if c.result == nil {
		return "No classification result"
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Well Classification"))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(fmt.Sprintf("%s · %d wells · batch %s", c.source, c.result.Count, c.result.BatchID)))
	sb.WriteString("\n")

	vertical, horizontal := c.Counts()
	sb.WriteString(fmt.Sprintf("%s %d   %s %d\n\n",
		widgets.SeparatorBadge(models.SeparatorVertical), vertical,
		widgets.SeparatorBadge(models.SeparatorHorizontal), horizontal))

	if len(c.result.Recommendations) == 0 {
		sb.WriteString("No wells in batch\n")
		return sb.String()
	}

	sb.WriteString(c.table.View())
	sb.WriteString("\n\n")

	if rec := c.Selected(); rec != nil {
		sb.WriteString(renderDetail(rec))
	}

	if c.status != "" {
		sb.WriteString("\n")
		sb.WriteString(widgets.StatusText(c.status, c.level))
		sb.WriteString("\n")
	}

	return sb.String()
}

func renderDetail(rec *models.Recommendation) string {
	var sb strings.Builder

	sb.WriteString(widgets.SeparatorBadge(rec.SeparatorType))
	sb.WriteString(" ")
	sb.WriteString(rec.Reason)
	sb.WriteString("\n\n")

	sb.WriteString(line("Field", rec.Well.FieldType))
	sb.WriteString(line("Sand content", fmt.Sprintf("%.2f", rec.Well.SandContent)))
	sb.WriteString(line("Water cut", widgets.StatusText(fmt.Sprintf("%.2f%%", rec.WaterCut*100), widgets.WaterCutLevel(rec.WaterCut))))
	sb.WriteString(line("Phase split", fmt.Sprintf("oil %.2f%%  gas %.2f%%  water %.2f%%",
		rec.Phases.OilPercent, rec.Phases.GasPercent, rec.Phases.WaterPercent)))
	sb.WriteString(line("Gas density", fmt.Sprintf("%.2f lb/ft³", rec.GasDensity)))
	sb.WriteString(line("Separated oil", fmt.Sprintf("%.2f", rec.SeparatedOil)))
	sb.WriteString(line("Separated water", fmt.Sprintf("%.2f", rec.SeparatedWater)))
	sb.WriteString(line("Separated gas", fmt.Sprintf("%.2f", rec.SeparatedGas)))

	return sb.String()
}
