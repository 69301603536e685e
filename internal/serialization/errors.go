package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrModelNotFound = errors.New("model not found")
	ErrInvalidModel  = errors.New("invalid model file")
)

// ValidationError provides detailed information about a malformed network
// artifact. It matches ErrInvalidModel with errors.Is.
type ValidationError struct {
	Type    string // Type of error (e.g., "layer_count", "weight_shape")
	Layer   int    // Layer index involved, or -1
	Details string // Additional details
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Layer >= 0 {
		return fmt.Sprintf("%s: layer %d: %s", e.Type, e.Layer, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap lets errors.Is match ErrInvalidModel.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidModel
}
