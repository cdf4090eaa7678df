// ABOUTME: Size command for the separator CLI
// ABOUTME: Sizes a vertical or horizontal separator from a YAML case file or flags

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/markalston/separator-sizer/backend/models"
	"github.com/markalston/separator-sizer/cli/internal/client"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	caseFile      string
	separatorType string
	targetSR      float64
	flagInput     models.SeparatorInput
)

// sizeFlag binds a numeric flag to one SeparatorInput field
type sizeFlag struct {
	name  string
	usage string
	field func(*models.SeparatorInput) *float64
}

var sizeFlags = []sizeFlag{
	{"gas-rate", "Gas flow rate (MMscf/d)", func(in *models.SeparatorInput) *float64 { return &in.GasRate }},
	{"oil-rate", "Oil flow rate (bbl/d)", func(in *models.SeparatorInput) *float64 { return &in.OilRate }},
	{"water-rate", "Water flow rate (bbl/d)", func(in *models.SeparatorInput) *float64 { return &in.WaterRate }},
	{"pressure", "Operating pressure (psia)", func(in *models.SeparatorInput) *float64 { return &in.Pressure }},
	{"temperature", "Operating temperature (°F)", func(in *models.SeparatorInput) *float64 { return &in.Temperature }},
	{"gas-sg", "Gas specific gravity", func(in *models.SeparatorInput) *float64 { return &in.GasSG }},
	{"oil-api", "Oil gravity (°API)", func(in *models.SeparatorInput) *float64 { return &in.OilSG }},
	{"water-sg", "Water specific gravity", func(in *models.SeparatorInput) *float64 { return &in.WaterSG }},
	{"z", "Gas compressibility factor", func(in *models.SeparatorInput) *float64 { return &in.Z }},
	{"viscosity", "Liquid viscosity (cp)", func(in *models.SeparatorInput) *float64 { return &in.Viscosity }},
	{"oil-retention", "Oil retention time (min)", func(in *models.SeparatorInput) *float64 { return &in.OilRetentionMin }},
	{"water-retention", "Water retention time (min)", func(in *models.SeparatorInput) *float64 { return &in.WaterRetentionMin }},
	{"b", "Horizontal diameter constant B (D = H / B)", func(in *models.SeparatorInput) *float64 { return &in.HorizontalConstantB }},
}

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Size a separator for one well stream",
	Long: `Size a vertical or horizontal gas/oil/water separator.

Inputs come from a YAML case file, flags, or both (flags override the file).

Example:
  separator size --file case.yaml --type horizontal --target-sr 4
  separator size --type vertical --gas-rate 6.6 --oil-rate 5000 --water-rate 6000 \
    --pressure 65 --temperature 90 --gas-sg 0.6 --oil-api 30 --water-sg 1.07 \
    --z 0.85 --viscosity 10 --oil-retention 5 --water-retention 10`,
	Run: func(cmd *cobra.Command, args []string) {
		exitWith(func(ctx context.Context) int {
			input, err := buildSizeInput(caseFile, cmd.Flags().Changed)
			if err != nil {
				return fail(os.Stdout, err)
			}
			return runSize(ctx, client.New(GetAPIURL()), os.Stdout, input, targetSR, IsJSONOutput())
		})
	},
}

func init() {
	rootCmd.AddCommand(sizeCmd)
	sizeCmd.Flags().StringVarP(&caseFile, "file", "f", "", "YAML case file with separator inputs")
	sizeCmd.Flags().StringVar(&separatorType, "type", "", "Separator type: vertical or horizontal")
	sizeCmd.Flags().Float64Var(&targetSR, "target-sr", 0, "Highlight the horizontal sweep row nearest this slenderness ratio")
	for _, f := range sizeFlags {
		sizeCmd.Flags().Float64Var(f.field(&flagInput), f.name, 0, f.usage)
	}
}

// buildSizeInput loads the case file if given, then applies every flag the
// user set explicitly
func buildSizeInput(path string, changed func(string) bool) (*models.SeparatorInput, error) {
	input := &models.SeparatorInput{}
	if path != "" {
		loaded, err := loadCaseFile(path)
		if err != nil {
			return nil, err
		}
		input = loaded
	}

	for _, f := range sizeFlags {
		if changed(f.name) {
			*f.field(input) = *f.field(&flagInput)
		}
	}
	if changed("type") {
		input.Geometry = separatorType
	}

	if input.Geometry == "" {
		return nil, fmt.Errorf("separator type is required (--type vertical|horizontal or separator_type in the case file)")
	}
	return input, nil
}

// loadCaseFile reads a YAML case file using the separator input field names
func loadCaseFile(path string) (*models.SeparatorInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading case file: %w", err)
	}

	var input models.SeparatorInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("parsing case file %s: %w", path, err)
	}
	return &input, nil
}

// runSize sizes the separator and returns exit code
func runSize(ctx context.Context, c *client.Client, w io.Writer, input *models.SeparatorInput, target float64, jsonOut bool) int {
	result, err := c.Size(ctx, input, target)
	if err != nil {
		return fail(w, err)
	}

	if jsonOut {
		if err := writeJSON(w, result); err != nil {
			return fail(w, err)
		}
		return exitOK
	}

	writeSizing(w, result)
	return exitOK
}

// writeSizing prints a sizing result for humans
func writeSizing(w io.Writer, result *models.SizingResponse) {
	s := result.Settling
	fmt.Fprintf(w, "Separator Sizing (%s)\n", result.Geometry)
	fmt.Fprintf(w, "=========================\n\n")
	fmt.Fprintf(w, "Settling:\n")
	fmt.Fprintf(w, "  Liquid density:     %.2f lb/ft³\n", s.LiquidDensity)
	fmt.Fprintf(w, "  Gas density:        %.2f lb/ft³\n", s.GasDensity)
	fmt.Fprintf(w, "  Drag coefficient:   %.2f\n", s.DragCoefficient)
	fmt.Fprintf(w, "  Terminal velocity:  %.2f ft/s\n", s.TerminalVelocity)
	fmt.Fprintf(w, "  Reynolds number:    %.2f\n", s.ReynoldsNumber)

	if v := result.Vertical; v != nil {
		fmt.Fprintf(w, "\nVertical vessel:\n")
		fmt.Fprintf(w, "  Gas diameter:       %.2f in\n", v.GasDiameter)
		fmt.Fprintf(w, "  Oil diameter:       %.2f in\n", v.OilDiameter)
		fmt.Fprintf(w, "  Water diameter:     %.2f in\n", v.WaterDiameter)
		fmt.Fprintf(w, "  Diameter:           %.2f in (%s governs)\n", v.Diameter, v.Governing)
		fmt.Fprintf(w, "  Liquid height:      %.2f in\n", v.Height)
		fmt.Fprintf(w, "  Seam-to-seam:       %.2f ft\n", v.SeamToSeamLength)
		fmt.Fprintf(w, "  Slenderness ratio:  %.2f\n", v.SlendernessRatio)
	}

	if h := result.Horizontal; h != nil {
		fmt.Fprintf(w, "\nHorizontal vessel:\n")
		fmt.Fprintf(w, "  Oil pad thickness:  %.2f in\n", h.OilPadThickness)
		fmt.Fprintf(w, "  Diameter:           %.2f in\n", h.Diameter)
		fmt.Fprintf(w, "  d·Leff (gas):       %.2f\n", h.GasEffectiveLength)
		fmt.Fprintf(w, "  d²·Leff (liquid):   %.2f\n", h.RetentionConstant)
		fmt.Fprintf(w, "\n  %10s %12s %14s %8s\n", "D (in)", "Leff (ft)", "Lss (ft)", "SR")
		for _, step := range h.Sweep {
			marker := " "
			if result.Recommended != nil && step == *result.Recommended {
				marker = "*"
			}
			fmt.Fprintf(w, "%s %10.2f %12.2f %14.2f %8.2f\n", marker, step.Diameter, step.EffectiveLength, step.SeamToSeamLength, step.SlendernessRatio)
		}
		if result.Recommended != nil {
			fmt.Fprintf(w, "\n* nearest to target slenderness ratio\n")
		}
	}
}
