package core

import (
	"errors"
	"strings"
	"testing"
)

// TestConstructorsWrapSentinels tests that contextual errors unwrap to
// their sentinel
func TestConstructorsWrapSentinels(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
		contains string
	}{
		{NewUnknownColumnError("revenue"), ErrUnknownColumn, `"revenue"`},
		{NewLengthMismatchError(3, 5), ErrLengthMismatch, "3 vs 5"},
		{NewDimensionMismatchError("mul", 2, 4), ErrDimensionMismatch, "2x4"},
		{NewInsufficientDataError(10, 4), ErrInsufficientData, "need at least 10"},
	}

	for _, test := range tests {
		if !errors.Is(test.err, test.sentinel) {
			t.Errorf("Expected %v to wrap %v", test.err, test.sentinel)
		}
		if !strings.Contains(test.err.Error(), test.contains) {
			t.Errorf("Expected %q in %q", test.contains, test.err.Error())
		}
	}
}

// TestErrorClassification tests the structural/recoverable split
func TestErrorClassification(t *testing.T) {
	structural := []error{
		NewUnknownColumnError("x"),
		NewLengthMismatchError(1, 2),
		NewDimensionMismatchError("inverse", 3, 4),
	}
	for _, err := range structural {
		if !IsStructuralError(err) {
			t.Errorf("Expected %v to be structural", err)
		}
		if IsRecoverableStatError(err) {
			t.Errorf("Expected %v not to be recoverable", err)
		}
	}

	recoverable := []error{
		NewInsufficientDataError(10, 2),
		ErrDegenerateInput,
		ErrSingularMatrix,
	}
	for _, err := range recoverable {
		if !IsRecoverableStatError(err) {
			t.Errorf("Expected %v to be recoverable", err)
		}
		if IsStructuralError(err) {
			t.Errorf("Expected %v not to be structural", err)
		}
	}

	if IsStructuralError(nil) || IsRecoverableStatError(nil) {
		t.Error("Expected nil to classify as neither")
	}
}
