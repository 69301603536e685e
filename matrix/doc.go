// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense float64 matrix used by simpleai networks.
//
// # Overview
//
// A Matrix is a rows × cols grid backed by gonum. Methods on a Matrix
// mutate it in place; the package-level functions (Subtract, Multiply,
// MapStatic, Transpose) always return freshly allocated matrices, so no
// two matrices ever share storage unless one was explicitly copied.
//
// # Basic Usage
//
//	import "github.com/born-ml/simpleai/matrix"
//
//	func main() {
//	    w, _ := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
//	    x := matrix.FromArray([]float64{0.5, -1})
//
//	    y, err := matrix.Multiply(w, x) // 2×1
//	    if err != nil {
//	        // errors.Is(err, matrix.ErrDimensionMismatch)
//	    }
//	    y.Map(func(v float64, _, _ int) float64 { return v * 2 })
//	}
//
// # Serialization
//
// Matrices marshal to JSON as {"rows": r, "cols": c, "data": [[...], ...]}.
// Decoding validates that data matches rows and cols.
package matrix
