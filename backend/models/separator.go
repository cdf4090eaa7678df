// ABOUTME: Data models for single-well separator sizing
// ABOUTME: Input stream properties and vertical/horizontal sizing results

package models

import (
	"math"
	"strings"
)

// Geometry selects the separator orientation to size
type Geometry string

const (
	GeometryVertical   Geometry = "vertical"
	GeometryHorizontal Geometry = "horizontal"
)

// ParseGeometry normalizes a user-supplied selector. The second return value
// is false when the selector is neither vertical nor horizontal.
func ParseGeometry(s string) (Geometry, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertical":
		return GeometryVertical, true
	case "horizontal":
		return GeometryHorizontal, true
	default:
		return Geometry(s), false
	}
}

// SeparatorInput describes one well stream to size.
// Rates are MMscf/d (gas) and bbl/d (liquids), pressure psia, temperature °F,
// viscosity cp and retention times minutes.
type SeparatorInput struct {
	GasRate             float64 `json:"gas_rate" yaml:"gas_rate"`
	OilRate             float64 `json:"oil_rate" yaml:"oil_rate"`
	WaterRate           float64 `json:"water_rate" yaml:"water_rate"`
	Pressure            float64 `json:"pressure" yaml:"pressure"`
	Temperature         float64 `json:"temperature" yaml:"temperature"`
	GasSG               float64 `json:"gas_sg" yaml:"gas_sg"`
	OilSG               float64 `json:"oil_sg" yaml:"oil_sg"`
	WaterSG             float64 `json:"water_sg" yaml:"water_sg"`
	Z                   float64 `json:"z" yaml:"z"`
	Viscosity           float64 `json:"viscosity" yaml:"viscosity"`
	OilRetentionMin     float64 `json:"oil_retention_min" yaml:"oil_retention_min"`
	WaterRetentionMin   float64 `json:"water_retention_min" yaml:"water_retention_min"`
	HorizontalConstantB float64 `json:"b" yaml:"b"`
	Geometry            string  `json:"separator_type" yaml:"separator_type"`
}

// SettlingState holds the stream properties shared by both geometries.
// Densities are lb/ft³ and the terminal velocity ft/s. DragCoefficient,
// TerminalVelocity and ReynoldsNumber are the values after the last
// refinement pass.
type SettlingState struct {
	TemperatureR      float64 `json:"temperature_r"`
	LiquidDensity     float64 `json:"liquid_density"`
	GasDensity        float64 `json:"gas_density"`
	DragCoefficient   float64 `json:"drag_coefficient"`
	TerminalVelocity  float64 `json:"terminal_velocity"`
	ReynoldsNumber    float64 `json:"reynolds_number"`
	SGDifference      float64 `json:"sg_difference"`
	OilRetentionSec   float64 `json:"oil_retention_sec"`
	WaterRetentionSec float64 `json:"water_retention_sec"`
}

// VerticalSizing is the vertical vessel result. Diameters are inches,
// height is the liquid retention height and length is seam-to-seam in ft.
// Governing names the constraint that set the diameter: gas, oil or water.
type VerticalSizing struct {
	GasDiameter      float64 `json:"gas_diameter"`
	OilDiameter      float64 `json:"oil_diameter"`
	WaterDiameter    float64 `json:"water_diameter"`
	Governing        string  `json:"governing_constraint"`
	Diameter         float64 `json:"diameter"`
	Height           float64 `json:"height"`
	SeamToSeamLength float64 `json:"length"`
	SlendernessRatio float64 `json:"slenderness_ratio"`
}

// DiameterStep is one row of the horizontal trade-off sweep
type DiameterStep struct {
	Diameter         float64 `json:"diameter"`
	EffectiveLength  float64 `json:"effective_length"`
	SeamToSeamLength float64 `json:"seam_to_seam_length"`
	SlendernessRatio float64 `json:"slenderness_ratio"`
}

// HorizontalSizing is the horizontal vessel result
type HorizontalSizing struct {
	OilPadThickness    float64        `json:"oil_pad_thickness"`
	Diameter           float64        `json:"diameter"`
	GasEffectiveLength float64        `json:"dleff_gas"`
	RetentionConstant  float64        `json:"d2leff_retention"`
	RetentionLength    float64        `json:"dleff_retention"`
	Sweep              []DiameterStep `json:"sweep"`
}

// SizingResult is returned by the sizing calculator. Exactly one of
// Vertical or Horizontal is set, matching Geometry.
type SizingResult struct {
	Geometry   Geometry          `json:"separator_type"`
	Settling   SettlingState     `json:"settling"`
	Vertical   *VerticalSizing   `json:"vertical,omitempty"`
	Horizontal *HorizontalSizing `json:"horizontal,omitempty"`
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Rounded returns a copy with every reported quantity rounded to two
// decimals. The receiver is left at full precision.
func (r SizingResult) Rounded() SizingResult {
	out := SizingResult{
		Geometry: r.Geometry,
		Settling: SettlingState{
			TemperatureR:      Round2(r.Settling.TemperatureR),
			LiquidDensity:     Round2(r.Settling.LiquidDensity),
			GasDensity:        Round2(r.Settling.GasDensity),
			DragCoefficient:   Round2(r.Settling.DragCoefficient),
			TerminalVelocity:  Round2(r.Settling.TerminalVelocity),
			ReynoldsNumber:    Round2(r.Settling.ReynoldsNumber),
			SGDifference:      Round2(r.Settling.SGDifference),
			OilRetentionSec:   Round2(r.Settling.OilRetentionSec),
			WaterRetentionSec: Round2(r.Settling.WaterRetentionSec),
		},
	}

	if v := r.Vertical; v != nil {
		out.Vertical = &VerticalSizing{
			GasDiameter:      Round2(v.GasDiameter),
			OilDiameter:      Round2(v.OilDiameter),
			WaterDiameter:    Round2(v.WaterDiameter),
			Governing:        v.Governing,
			Diameter:         Round2(v.Diameter),
			Height:           Round2(v.Height),
			SeamToSeamLength: Round2(v.SeamToSeamLength),
			SlendernessRatio: Round2(v.SlendernessRatio),
		}
	}

	if h := r.Horizontal; h != nil {
		sweep := make([]DiameterStep, len(h.Sweep))
		for i, s := range h.Sweep {
			sweep[i] = DiameterStep{
				Diameter:         Round2(s.Diameter),
				EffectiveLength:  Round2(s.EffectiveLength),
				SeamToSeamLength: Round2(s.SeamToSeamLength),
				SlendernessRatio: Round2(s.SlendernessRatio),
			}
		}
		out.Horizontal = &HorizontalSizing{
			OilPadThickness:    Round2(h.OilPadThickness),
			Diameter:           Round2(h.Diameter),
			GasEffectiveLength: Round2(h.GasEffectiveLength),
			RetentionConstant:  Round2(h.RetentionConstant),
			RetentionLength:    Round2(h.RetentionLength),
			Sweep:              sweep,
		}
	}

	return out
}

// NearestSlenderness returns the sweep row whose slenderness ratio is closest
// to target. Ties keep the smaller diameter. Returns nil for vertical results.
func (r SizingResult) NearestSlenderness(target float64) *DiameterStep {
	i := r.NearestSlendernessIndex(target)
	if i < 0 {
		return nil
	}
	step := r.Horizontal.Sweep[i]
	return &step
}

// NearestSlendernessIndex is NearestSlenderness returning the sweep index,
// or -1 when there is no sweep.
func (r SizingResult) NearestSlendernessIndex(target float64) int {
	if r.Horizontal == nil || len(r.Horizontal.Sweep) == 0 {
		return -1
	}

	best := 0
	bestDelta := math.Abs(r.Horizontal.Sweep[0].SlendernessRatio - target)
	for i, s := range r.Horizontal.Sweep[1:] {
		if d := math.Abs(s.SlendernessRatio - target); d < bestDelta {
			best = i + 1
			bestDelta = d
		}
	}
	return best
}

// SizingResponse is the API form of a sizing result. Recommended is set
// when the caller asks for a target slenderness ratio.
type SizingResponse struct {
	SizingResult
	Recommended *DiameterStep `json:"recommended,omitempty"`
}
