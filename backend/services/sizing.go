// ABOUTME: Separator sizing calculator for gas/oil/water gravity separators
// ABOUTME: Settling velocity refinement followed by vertical or horizontal dimensioning

package services

import (
	"fmt"
	"math"

	"github.com/markalston/separator-sizer/backend/models"
)

// Design constants for the settling correlations
const (
	rankineOffset = 459.67

	liquidDropletMicrons = 100.0 // liquid droplets removed from the gas
	oilDropletMicrons    = 200.0 // oil droplets in the water pad
	waterDropletMicrons  = 500.0 // water droplets in the oil pad

	initialDragCoefficient = 0.25
	dragRefinements        = 5

	// Vertical vessels switch head/skirt allowance above this diameter (in)
	verticalAllowanceThreshold = 36.0

	sweepSteps     = 9
	sweepIncrement = 15.0
)

// SizingCalculator dimensions a separator for a single well stream
type SizingCalculator struct{}

// NewSizingCalculator creates a new sizing calculator
func NewSizingCalculator() *SizingCalculator {
	return &SizingCalculator{}
}

// Size computes the settling state and the dimensions for the requested geometry.
// Returned values are full precision; use SizingResult.Rounded for display.
func (c *SizingCalculator) Size(input models.SeparatorInput) (models.SizingResult, error) {
	geometry, ok := models.ParseGeometry(input.Geometry)
	if !ok {
		return models.SizingResult{}, fmt.Errorf("%w: %q", ErrInvalidGeometry, sanitizeForLog(input.Geometry))
	}

	if err := validateSeparatorInput(input, geometry); err != nil {
		return models.SizingResult{}, err
	}

	settling, err := settle(input)
	if err != nil {
		return models.SizingResult{}, err
	}

	result := models.SizingResult{
		Geometry: geometry,
		Settling: settling,
	}

	switch geometry {
	case models.GeometryVertical:
		v := sizeVertical(input, settling)
		result.Vertical = &v
	case models.GeometryHorizontal:
		h, err := sizeHorizontal(input, settling)
		if err != nil {
			return models.SizingResult{}, err
		}
		result.Horizontal = &h
	}

	return result, nil
}

// settle derives densities and runs the drag coefficient refinement
func settle(input models.SeparatorInput) (models.SettlingState, error) {
	t := input.Temperature + rankineOffset

	liquidDensity := 62.4 * (141.5 / (131.5 + input.OilSG))
	gasDensity := (2.7 * input.GasSG * input.Pressure) / (t * input.Z)

	if liquidDensity-gasDensity <= 0 {
		return models.SettlingState{}, invalidInput("gas density %.4f must be below liquid density %.4f", gasDensity, liquidDensity)
	}

	sgDiff := input.WaterSG - oilSpecificGravity(input.OilSG)
	if sgDiff <= 0 {
		return models.SettlingState{}, invalidInput("water/oil specific gravity difference must be positive, got %.4f", sgDiff)
	}

	var vt, re float64
	cd := refine(initialDragCoefficient, dragRefinements, func(cd float64) float64 {
		vt = terminalVelocity(liquidDensity, gasDensity, cd)
		re = 0.0049 * (gasDensity * liquidDropletMicrons * vt) / input.Viscosity
		return dragCoefficient(re)
	})

	if re == 0 || math.IsNaN(cd) || math.IsInf(cd, 0) {
		return models.SettlingState{}, invalidInput("Reynolds number is zero")
	}

	return models.SettlingState{
		TemperatureR:      t,
		LiquidDensity:     liquidDensity,
		GasDensity:        gasDensity,
		DragCoefficient:   cd,
		TerminalVelocity:  vt,
		ReynoldsNumber:    re,
		SGDifference:      sgDiff,
		OilRetentionSec:   input.OilRetentionMin * 60,
		WaterRetentionSec: input.WaterRetentionMin * 60,
	}, nil
}

// refine applies f to x exactly n times. The drag correlation is an
// empirical design procedure with a fixed pass count, not a solve to tolerance.
func refine(x float64, n int, f func(float64) float64) float64 {
	for i := 0; i < n; i++ {
		x = f(x)
	}
	return x
}

// terminalVelocity returns the liquid droplet settling velocity (ft/s)
func terminalVelocity(liquidDensity, gasDensity, cd float64) float64 {
	return 0.0119 * ((liquidDensity - gasDensity) / gasDensity * liquidDropletMicrons / cd)
}

// dragCoefficient is the droplet drag correlation for a Reynolds number
func dragCoefficient(re float64) float64 {
	return 24/re + 3/math.Sqrt(re) + 0.34
}

// oilSpecificGravity converts the oil gravity value to a specific gravity
func oilSpecificGravity(api float64) float64 {
	return 141.5 / (131.5 + api)
}

// sizeVertical applies the gas capacity and droplet settling constraints
func sizeVertical(input models.SeparatorInput, s models.SettlingState) models.VerticalSizing {
	gasTerm := s.TemperatureR * input.Z * input.GasRate / input.Pressure
	densityRatio := s.GasDensity / (s.LiquidDensity - s.GasDensity)

	gasD := 5040 * gasTerm * math.Pow(densityRatio*(initialDragCoefficient/liquidDropletMicrons), 0.25)
	oilD := math.Sqrt(6690 * input.OilRate * input.Viscosity / (s.SGDifference * oilDropletMicrons * oilDropletMicrons))
	waterD := math.Sqrt(6690 * input.WaterRate * input.Viscosity / (s.SGDifference * waterDropletMicrons * waterDropletMicrons))

	d, governing := gasD, "gas"
	if oilD > d {
		d, governing = oilD, "oil"
	}
	if waterD > d {
		d, governing = waterD, "water"
	}

	h := (s.OilRetentionSec*input.OilRate + s.WaterRetentionSec*input.WaterRate) / (0.12 * d * d)
	lss := seamToSeamLength(h, d)

	return models.VerticalSizing{
		GasDiameter:      gasD,
		OilDiameter:      oilD,
		WaterDiameter:    waterD,
		Governing:        governing,
		Diameter:         d,
		Height:           h,
		SeamToSeamLength: lss,
		SlendernessRatio: 12 * lss / d,
	}
}

// seamToSeamLength applies the head and skirt allowance for a vertical
// vessel. The allowance changes above 36 in; 36 itself uses the small-vessel rule.
func seamToSeamLength(h, d float64) float64 {
	if d <= verticalAllowanceThreshold {
		return (h + 76) / 12
	}
	return (h + d + 40) / 12
}

// sizeHorizontal computes the oil pad limited diameter and the
// length/diameter trade-off sweep
func sizeHorizontal(input models.SeparatorInput, s models.SettlingState) (models.HorizontalSizing, error) {
	padThickness := (1.28e-3 * (s.OilRetentionSec * s.SGDifference * waterDropletMicrons * waterDropletMicrons)) / input.Viscosity

	gasTerm := s.TemperatureR * input.Z * input.GasRate / input.Pressure
	densityRatio := s.GasDensity / (s.LiquidDensity - s.GasDensity)
	gasLeff := 420 * gasTerm * math.Sqrt(densityRatio*(s.DragCoefficient/liquidDropletMicrons))

	retention := 1.42 * (input.WaterRate*s.WaterRetentionSec + input.OilRate*s.OilRetentionSec)

	if gasLeff <= 0 {
		return models.HorizontalSizing{}, invalidInput("gas capacity length must be positive, got %.4f", gasLeff)
	}

	return models.HorizontalSizing{
		OilPadThickness:    padThickness,
		Diameter:           padThickness / input.HorizontalConstantB,
		GasEffectiveLength: gasLeff,
		RetentionConstant:  retention,
		RetentionLength:    math.Sqrt(retention) / 12,
		Sweep:              diameterSweep(gasLeff/2, retention),
	}, nil
}

// diameterSweep tabulates effective and seam-to-seam lengths over the
// trial diameters start, start+15, ... (nine rows)
func diameterSweep(start, retention float64) []models.DiameterStep {
	steps := make([]models.DiameterStep, 0, sweepSteps)
	d := start
	for i := 0; i < sweepSteps; i++ {
		leff := retention / (d / 2)
		lss := 4.0 / 3.0 * leff
		steps = append(steps, models.DiameterStep{
			Diameter:         d,
			EffectiveLength:  leff,
			SeamToSeamLength: lss,
			SlendernessRatio: 12 * lss / d,
		})
		d += sweepIncrement
	}
	return steps
}
