// ABOUTME: Error kinds raised by the sizing and classification engines
// ABOUTME: Sentinels for errors.Is plus detail types for missing columns and water cut

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidGeometry indicates a separator selector other than vertical or horizontal.
	ErrInvalidGeometry = errors.New("invalid separator type")

	// ErrInvalidInput indicates a non-positive quantity or a zero divisor.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingField indicates required well table columns are absent.
	ErrMissingField = errors.New("missing required column")

	// ErrInvalidWaterCut indicates a computed water cut of 100% or more.
	ErrInvalidWaterCut = errors.New("water cut cannot be 100% or more")
)

// MissingFieldError lists every required column absent from a well table
type MissingFieldError struct {
	Columns []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingField, strings.Join(e.Columns, ", "))
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingField
}

// WaterCutError identifies the row that aborted a classification batch.
// Row is 1-based: the well's position in a JSON batch, or its data row
// below the header in an uploaded table with blank rows counted.
type WaterCutError struct {
	Row      int
	WaterCut float64
}

func (e *WaterCutError) Error() string {
	return fmt.Sprintf("row %d: %s (got %.4f)", e.Row, ErrInvalidWaterCut, e.WaterCut)
}

func (e *WaterCutError) Unwrap() error {
	return ErrInvalidWaterCut
}

// invalidInput wraps ErrInvalidInput with a description of the offending value
func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
