// Package matrix implements the dense 2-D float64 container used by the
// network: elementwise and algebraic operations over a row-major gonum
// mat.Dense.
//
// Operations documented as "in place" mutate the receiver. Static
// operations (Subtract, Multiply, Transpose, MapStatic) always allocate
// fresh storage, so a result never aliases its operands.
package matrix

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Matrix is a rows×cols dense matrix of float64.
//
// A Matrix exclusively owns its backing storage. Use Copy to take a
// snapshot that is independent of later mutation.
type Matrix struct {
	dense *mat.Dense
}

// New creates a zero-filled rows×cols matrix.
//
// New panics if rows or cols is not positive, matching mat.NewDense.
func New(rows, cols int) *Matrix {
	return &Matrix{dense: mat.NewDense(rows, cols, nil)}
}

// FromArray builds a (len(values)×1) column matrix.
// The values are copied.
func FromArray(values []float64) *Matrix {
	data := make([]float64, len(values))
	copy(data, values)
	return &Matrix{dense: mat.NewDense(len(values), 1, data)}
}

// FromRows builds a matrix from a slice of rows.
//
// Returns ErrShapeMismatch if the rows are ragged.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty matrix", ErrShapeMismatch)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return &Matrix{dense: mat.NewDense(len(rows), cols, data)}, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int {
	r, _ := m.dense.Dims()
	return r
}

// Cols returns the number of columns.
func (m *Matrix) Cols() int {
	_, c := m.dense.Dims()
	return c
}

// Dims returns the number of rows and columns.
func (m *Matrix) Dims() (rows, cols int) {
	return m.dense.Dims()
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.dense.At(i, j)
}

// Set sets the element at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.dense.Set(i, j, v)
}

// Randomize fills every element with an independent uniform draw in
// the half-open range [min, max) taken from rng. It mutates m and returns it
// for chaining.
func (m *Matrix) Randomize(rng *rand.Rand, min, max float64) *Matrix {
	span := max - min
	m.dense.Apply(func(_, _ int, _ float64) float64 {
		return min + rng.Float64()*span
	}, m.dense)
	return m
}

// ToArray flattens m row-major into a new slice of length rows*cols.
func (m *Matrix) ToArray() []float64 {
	rows, cols := m.Dims()
	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		out = append(out, m.dense.RawRowView(i)...)
	}
	return out
}

// ToRows returns a copy of the data as a slice of rows.
func (m *Matrix) ToRows() [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		copy(out[i], m.dense.RawRowView(i))
	}
	return out
}

// Add adds other to m elementwise, in place.
//
// Returns ErrShapeMismatch if the shapes differ.
func (m *Matrix) Add(other *Matrix) error {
	if err := sameShape("add", m, other); err != nil {
		return err
	}
	m.dense.Add(m.dense, other.dense)
	return nil
}

// AddScalar adds v to every element, in place.
func (m *Matrix) AddScalar(v float64) {
	m.dense.Apply(func(_, _ int, x float64) float64 {
		return x + v
	}, m.dense)
}

// Scale multiplies every element by v, in place.
func (m *Matrix) Scale(v float64) {
	m.dense.Scale(v, m.dense)
}

// Hadamard multiplies m by other elementwise, in place.
//
// Returns ErrShapeMismatch if the shapes differ.
func (m *Matrix) Hadamard(other *Matrix) error {
	if err := sameShape("hadamard", m, other); err != nil {
		return err
	}
	m.dense.MulElem(m.dense, other.dense)
	return nil
}

// Map applies f to every element in place. f receives the current value
// and its row and column.
func (m *Matrix) Map(f func(v float64, i, j int) float64) {
	m.dense.Apply(func(i, j int, v float64) float64 {
		return f(v, i, j)
	}, m.dense)
}

// Copy returns a deep copy of m.
func (m *Matrix) Copy() *Matrix {
	return &Matrix{dense: mat.DenseCopyOf(m.dense)}
}

// Equal reports whether m and other have the same shape and bitwise
// identical elements.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil {
		return false
	}
	return mat.Equal(m.dense, other.dense)
}

// String implements fmt.Stringer.
func (m *Matrix) String() string {
	return fmt.Sprintf("%v", mat.Formatted(m.dense, mat.Squeeze()))
}

// Subtract returns a new matrix holding a - b elementwise.
//
// Returns ErrShapeMismatch if the shapes differ.
func Subtract(a, b *Matrix) (*Matrix, error) {
	if err := sameShape("subtract", a, b); err != nil {
		return nil, err
	}
	rows, cols := a.Dims()
	result := mat.NewDense(rows, cols, nil)
	result.Sub(a.dense, b.dense)
	return &Matrix{dense: result}, nil
}

// Multiply returns the matrix product a × b.
//
// Requires a.Cols() == b.Rows(); otherwise returns ErrDimensionMismatch.
// The result has shape (a.Rows() × b.Cols()).
func Multiply(a, b *Matrix) (*Matrix, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, fmt.Errorf("%w: (%d×%d) × (%d×%d)", ErrDimensionMismatch, ar, ac, br, bc)
	}
	result := mat.NewDense(ar, bc, nil)
	result.Mul(a.dense, b.dense)
	return &Matrix{dense: result}, nil
}

// MapStatic returns a new matrix with f applied to every element of m.
// m is left unchanged.
func MapStatic(m *Matrix, f func(v float64, i, j int) float64) *Matrix {
	rows, cols := m.Dims()
	result := mat.NewDense(rows, cols, nil)
	result.Apply(func(i, j int, v float64) float64 {
		return f(v, i, j)
	}, m.dense)
	return &Matrix{dense: result}
}

// Transpose returns a new (cols×rows) matrix with result[j][i] = m[i][j].
func Transpose(m *Matrix) *Matrix {
	return &Matrix{dense: mat.DenseCopyOf(m.dense.T())}
}

func sameShape(op string, a, b *Matrix) error {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return fmt.Errorf("%w: %s (%d×%d) and (%d×%d)", ErrShapeMismatch, op, ar, ac, br, bc)
	}
	return nil
}
