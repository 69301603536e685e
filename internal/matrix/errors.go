package matrix

import "errors"

// Common errors.
var (
	ErrShapeMismatch     = errors.New("matrix shape mismatch")
	ErrDimensionMismatch = errors.New("dimension mismatch")
)
