// Package linalg holds the small dense-matrix kernel the regression
// solver needs: multiply, transpose and Gauss-Jordan inversion. Matrices
// are row-major flat buffers with explicit dimensions so elimination can
// never trip over a ragged row.
package linalg

import (
	"fmt"
	"math"

	"goinsight/domain/core"
)

// pivotTolerance declares a matrix singular during elimination.
const pivotTolerance = 1e-10

// Matrix is a dense rows x cols matrix over a flat row-major buffer.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix allocates a zeroed rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, core.NewDimensionMismatchError("new", rows, cols)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows builds a matrix from row slices, rejecting ragged input.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, core.NewDimensionMismatchError("from_rows", len(rows), 0)
	}
	cols := len(rows[0])
	m, err := NewMatrix(len(rows), cols)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w",
				i, len(r), cols, core.ErrDimensionMismatch)
		}
		copy(m.data[i*cols:(i+1)*cols], r)
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m, _ := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Rows returns the row count.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the column count.
func (m *Matrix) Cols() int { return m.cols }

// At reads element (i, j). Out-of-range access panics, as with a slice.
func (m *Matrix) At(i, j int) float64 {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set writes element (i, j).
func (m *Matrix) Set(i, j int, v float64) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m *Matrix) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("linalg: index (%d,%d) out of range for %dx%d matrix",
			i, j, m.rows, m.cols))
	}
}

// Transpose returns a new matrix with rows and columns swapped.
func (m *Matrix) Transpose() *Matrix {
	t, _ := NewMatrix(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.data[j*t.cols+i] = m.data[i*m.cols+j]
		}
	}
	return t
}

// Mul returns m x other.
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, core.NewDimensionMismatchError("mul", m.cols, other.rows)
	}
	out, _ := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			mik := m.data[i*m.cols+k]
			if mik == 0 {
				continue
			}
			for j := 0; j < other.cols; j++ {
				out.data[i*out.cols+j] += mik * other.data[k*other.cols+j]
			}
		}
	}
	return out, nil
}

// MulVec returns m x v for a column vector v.
func (m *Matrix) MulVec(v []float64) ([]float64, error) {
	if m.cols != len(v) {
		return nil, core.NewDimensionMismatchError("mul_vec", m.cols, len(v))
	}
	out := make([]float64, m.rows)
	for i := 0; i < m.rows; i++ {
		sum := 0.0
		for j := 0; j < m.cols; j++ {
			sum += m.data[i*m.cols+j] * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Inverse inverts a square matrix by Gauss-Jordan elimination with partial
// pivoting (row swap on the largest pivot magnitude). A pivot below
// 1e-10 reports core.ErrSingularMatrix; for a normal-equations matrix that
// means collinear predictors.
func (m *Matrix) Inverse() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, core.NewDimensionMismatchError("inverse", m.rows, m.cols)
	}
	n := m.rows

	// augmented [A | I], row-major with 2n columns
	width := 2 * n
	aug := make([]float64, n*width)
	for i := 0; i < n; i++ {
		copy(aug[i*width:i*width+n], m.data[i*n:(i+1)*n])
		aug[i*width+n+i] = 1
	}

	for col := 0; col < n; col++ {
		pivotRow := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r*width+col]) > math.Abs(aug[pivotRow*width+col]) {
				pivotRow = r
			}
		}
		if pivotRow != col {
			for j := 0; j < width; j++ {
				aug[col*width+j], aug[pivotRow*width+j] = aug[pivotRow*width+j], aug[col*width+j]
			}
		}

		pivot := aug[col*width+col]
		if math.Abs(pivot) < pivotTolerance {
			return nil, core.ErrSingularMatrix
		}

		for j := 0; j < width; j++ {
			aug[col*width+j] /= pivot
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r*width+col]
			if factor == 0 {
				continue
			}
			for j := 0; j < width; j++ {
				aug[r*width+j] -= factor * aug[col*width+j]
			}
		}
	}

	inv, _ := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		copy(inv.data[i*n:(i+1)*n], aug[i*width+n:i*width+width])
	}
	return inv, nil
}
