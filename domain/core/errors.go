package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Statistical edge cases. Analysis packages recover these locally into
	// degenerate result records; they surface as errors only when a caller
	// invokes a numeric primitive directly.
	ErrInsufficientData = errors.New("insufficient data for analysis")
	ErrDegenerateInput  = errors.New("degenerate input")
	ErrSingularMatrix   = errors.New("singular matrix")

	// Structural misuse. These always propagate to the caller: they signal a
	// programming or configuration error upstream, not messy data.
	ErrUnknownColumn     = errors.New("unknown column")
	ErrLengthMismatch    = errors.New("sample length mismatch")
	ErrDimensionMismatch = errors.New("matrix dimension mismatch")
)

// Error constructors with context
func NewUnknownColumnError(column string) error {
	return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
}

func NewLengthMismatchError(lenX, lenY int) error {
	return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, lenX, lenY)
}

func NewDimensionMismatchError(op string, rows, cols int) error {
	return fmt.Errorf("%w: %s with %dx%d operand", ErrDimensionMismatch, op, rows, cols)
}

func NewInsufficientDataError(need, got int) error {
	return fmt.Errorf("%w: need at least %d samples, got %d", ErrInsufficientData, need, got)
}

// Error checking helpers
func IsStructuralError(err error) bool {
	return errors.Is(err, ErrUnknownColumn) ||
		errors.Is(err, ErrLengthMismatch) ||
		errors.Is(err, ErrDimensionMismatch)
}

func IsRecoverableStatError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrSingularMatrix)
}
