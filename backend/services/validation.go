// ABOUTME: Input validation for sizing requests and API parameters
// ABOUTME: Rejects non-positive physical quantities and malformed batch IDs

package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/markalston/separator-sizer/backend/models"
)

// sanitizeForLog drops control characters from user input echoed in errors
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// ValidateBatchID accepts only the canonical lowercase UUID form the
// classify endpoint issues.
func ValidateBatchID(id string) error {
	if parsed, err := uuid.Parse(id); err != nil || parsed.String() != id {
		return fmt.Errorf("invalid batch ID format: %s", sanitizeForLog(id))
	}
	return nil
}

// validateSeparatorInput checks the quantities the sizing formulas divide by
// or take roots of. Densities and the Reynolds number are checked after they
// are derived.
func validateSeparatorInput(in models.SeparatorInput, geometry models.Geometry) error {
	positive := []struct {
		name  string
		value float64
	}{
		{"gas rate", in.GasRate},
		{"pressure", in.Pressure},
		{"absolute temperature", in.Temperature + rankineOffset},
		{"gas specific gravity", in.GasSG},
		{"compressibility factor", in.Z},
		{"viscosity", in.Viscosity},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return invalidInput("%s must be positive, got %g", p.name, p.value)
		}
	}

	if in.OilRate < 0 {
		return invalidInput("oil rate cannot be negative, got %g", in.OilRate)
	}
	if in.WaterRate < 0 {
		return invalidInput("water rate cannot be negative, got %g", in.WaterRate)
	}
	if in.OilRate+in.WaterRate == 0 {
		return invalidInput("oil and water rates cannot both be zero")
	}
	if in.OilRetentionMin < 0 || in.WaterRetentionMin < 0 {
		return invalidInput("retention times cannot be negative")
	}
	if in.OilSG <= -131.5 {
		return invalidInput("oil gravity must be above -131.5, got %g", in.OilSG)
	}

	if geometry == models.GeometryHorizontal && in.HorizontalConstantB <= 0 {
		return invalidInput("horizontal constant B must be positive, got %g", in.HorizontalConstantB)
	}

	return nil
}
