// ABOUTME: Badge widgets for quick visual status indication
// ABOUTME: Renders separator type, governing phase and status badges

package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/tui/icons"
)

// StatusLevel represents the severity of a status
type StatusLevel int

const (
	StatusOK StatusLevel = iota
	StatusWarning
	StatusCritical
	StatusInfo
	StatusNeutral
)

// Badge colors
var (
	BadgeOKBg      = lipgloss.Color("#10B981")
	BadgeOKFg      = lipgloss.Color("#FFFFFF")
	BadgeWarnBg    = lipgloss.Color("#F59E0B")
	BadgeWarnFg    = lipgloss.Color("#000000")
	BadgeCritBg    = lipgloss.Color("#EF4444")
	BadgeCritFg    = lipgloss.Color("#FFFFFF")
	BadgeInfoBg    = lipgloss.Color("#3B82F6")
	BadgeInfoFg    = lipgloss.Color("#FFFFFF")
	BadgeNeutralBg = lipgloss.Color("#6B7280")
	BadgeNeutralFg = lipgloss.Color("#FFFFFF")
)

func levelColors(level StatusLevel) (bg, fg lipgloss.Color) {
	switch level {
	case StatusOK:
		return BadgeOKBg, BadgeOKFg
	case StatusWarning:
		return BadgeWarnBg, BadgeWarnFg
	case StatusCritical:
		return BadgeCritBg, BadgeCritFg
	case StatusInfo:
		return BadgeInfoBg, BadgeInfoFg
	default:
		return BadgeNeutralBg, BadgeNeutralFg
	}
}

// Badge renders a colored badge
func Badge(text string, level StatusLevel) string {
	bg, fg := levelColors(level)

	style := lipgloss.NewStyle().
		Background(bg).
		Foreground(fg).
		Padding(0, 1).
		Bold(true)

	return style.Render(text)
}

// StatusIcon returns the icon for a status level
func StatusIcon(level StatusLevel) string {
	bg, _ := levelColors(level)
	style := lipgloss.NewStyle().Foreground(bg)

	switch level {
	case StatusOK:
		return style.Render(icons.CheckOK.String())
	case StatusWarning:
		return style.Render(icons.Warning.String())
	case StatusCritical:
		return style.Render(icons.Critical.String())
	default:
		return style.Render("•")
	}
}

// StatusText returns styled status text with icon
func StatusText(text string, level StatusLevel) string {
	bg, _ := levelColors(level)
	return fmt.Sprintf("%s %s", StatusIcon(level), lipgloss.NewStyle().Foreground(bg).Render(text))
}

// SeparatorBadge renders a recommendation badge. Horizontal is shown in the
// info color and vertical in the ok color.
func SeparatorBadge(t models.SeparatorType) string {
	switch t {
	case models.SeparatorHorizontal:
		return Badge(icons.Horizontal.String()+" "+string(t), StatusInfo)
	case models.SeparatorVertical:
		return Badge(icons.Vertical.String()+" "+string(t), StatusOK)
	default:
		return Badge("--", StatusNeutral)
	}
}

// GeometryBadge renders the badge for a sizing geometry
func GeometryBadge(g models.Geometry) string {
	switch g {
	case models.GeometryHorizontal:
		return SeparatorBadge(models.SeparatorHorizontal)
	case models.GeometryVertical:
		return SeparatorBadge(models.SeparatorVertical)
	default:
		return Badge("--", StatusNeutral)
	}
}

// GoverningBadge names the phase that set the vertical diameter
func GoverningBadge(phase string) string {
	var icon icons.Icon
	switch strings.ToLower(phase) {
	case "gas":
		icon = icons.Gas
	case "oil":
		icon = icons.Oil
	case "water":
		icon = icons.Water
	default:
		return Badge("--", StatusNeutral)
	}
	return Badge(icon.String()+" "+strings.ToLower(phase)+" governs", StatusWarning)
}

// WaterCutLevel grades a water cut fraction for display
func WaterCutLevel(cut float64) StatusLevel {
	switch {
	case cut >= 0.8:
		return StatusCritical
	case cut >= 0.5:
		return StatusWarning
	default:
		return StatusOK
	}
}
