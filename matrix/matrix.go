// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/born-ml/simpleai/internal/matrix"
)

// Matrix is a dense row-major matrix of float64.
type Matrix = matrix.Matrix

// Errors returned by matrix operations.
var (
	// ErrShapeMismatch reports an elementwise operation on matrices of
	// different shapes.
	ErrShapeMismatch = matrix.ErrShapeMismatch

	// ErrDimensionMismatch reports a product whose inner dimensions differ,
	// or a sample of the wrong width.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
)

// New creates a zero-filled rows × cols matrix. It panics if either
// dimension is not positive.
func New(rows, cols int) *Matrix {
	return matrix.New(rows, cols)
}

// FromArray creates a column vector (len × 1) holding a copy of values.
func FromArray(values []float64) *Matrix {
	return matrix.FromArray(values)
}

// FromRows creates a matrix from row slices.
func FromRows(rows [][]float64) (*Matrix, error) {
	return matrix.FromRows(rows)
}

// Subtract returns a - b.
func Subtract(a, b *Matrix) (*Matrix, error) {
	return matrix.Subtract(a, b)
}

// Multiply returns the matrix product a × b.
//
// Example:
//
//	a, _ := matrix.FromRows([][]float64{{1, 2, 3}})   // 1×3
//	b := matrix.FromArray([]float64{1, 1, 1})         // 3×1
//	c, _ := matrix.Multiply(a, b)                     // 1×1, value 6
func Multiply(a, b *Matrix) (*Matrix, error) {
	return matrix.Multiply(a, b)
}

// MapStatic returns a new matrix with f applied to every element of m.
func MapStatic(m *Matrix, f func(v float64, i, j int) float64) *Matrix {
	return matrix.MapStatic(m, f)
}

// Transpose returns a new (cols × rows) matrix.
func Transpose(m *Matrix) *Matrix {
	return matrix.Transpose(m)
}
