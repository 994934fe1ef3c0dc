// Package mathx implements the dense linear algebra the battle solver
// needs: a resizable matrix, a two-phase simplex method, and a
// zero-sum Nash equilibrium solver that runs its own pivot loop on the
// same Matrix type rather than calling the simplex code.
package mathx

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"
)

const tolerance = 1e-9

// almostZero and almostEqual stand in for the original's `almost` crate
// comparisons; gonum's floats/scalar package is the pack's own
// approximate-equality helper (see e.g. its use for fitness comparisons
// across the corpus), so it is reused here rather than hand-rolling an
// epsilon compare.
func almostZero(x float64) bool       { return scalar.EqualWithinAbs(x, 0, tolerance) }
func almostEqual(x, y float64) bool   { return scalar.EqualWithinAbs(x, y, tolerance) }

// Matrix is a dense, row-major matrix of float64 whose dimensions can
// shrink via DelRow/DelCol — the one operation gonum's fixed-shape
// mat.Dense does not support, and the reason the tableau keeps its own
// flat backing slice instead.
type Matrix struct {
	entries        []float64
	rows, cols int
}

// NewMatrix builds a matrix from entries in row-major order.
func NewMatrix(entries []float64, rows, cols int) *Matrix {
	if len(entries) != rows*cols {
		panic("mathx: entry count does not match the requested dimensions")
	}
	return &Matrix{entries: entries, rows: rows, cols: cols}
}

// NewMatrixOf builds a rows x cols matrix filled with fill.
func NewMatrixOf(fill float64, rows, cols int) *Matrix {
	entries := make([]float64, rows*cols)
	for i := range entries {
		entries[i] = fill
	}
	return &Matrix{entries: entries, rows: rows, cols: cols}
}

func (m *Matrix) NumRows() int { return m.rows }
func (m *Matrix) NumCols() int { return m.cols }

func (m *Matrix) flatIndex(i, j int) int {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("mathx: index (%d,%d) out of bounds for %dx%d matrix", i, j, m.rows, m.cols))
	}
	return i*m.cols + j
}

func (m *Matrix) Get(i, j int) float64     { return m.entries[m.flatIndex(i, j)] }
func (m *Matrix) Set(i, j int, v float64)  { m.entries[m.flatIndex(i, j)] = v }

func (m *Matrix) SetRow(i int, v float64) {
	for j := 0; j < m.cols; j++ {
		m.Set(i, j, v)
	}
}

func (m *Matrix) SetCol(j int, v float64) {
	for i := 0; i < m.rows; i++ {
		m.Set(i, j, v)
	}
}

func (m *Matrix) Scale(factor float64) {
	for i := range m.entries {
		m.entries[i] *= factor
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	entries := make([]float64, len(m.entries))
	copy(entries, m.entries)
	return &Matrix{entries: entries, rows: m.rows, cols: m.cols}
}

// Transposed returns a new matrix that is the transpose of m.
func (m *Matrix) Transposed() *Matrix {
	result := NewMatrixOf(0, m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			result.Set(j, i, m.Get(i, j))
		}
	}
	return result
}

// DelRow removes row i, shrinking the matrix in place.
func (m *Matrix) DelRow(i int) {
	from := m.flatIndex(i, 0)
	to := from + m.cols
	m.entries = append(m.entries[:from], m.entries[to:]...)
	m.rows--
}

// DelCol removes column j, shrinking the matrix in place.
func (m *Matrix) DelCol(j int) {
	newCols := m.cols - 1
	newEntries := make([]float64, m.rows*newCols)
	for i := 0; i < m.rows; i++ {
		dst := 0
		for c := 0; c < m.cols; c++ {
			if c == j {
				continue
			}
			newEntries[i*newCols+dst] = m.Get(i, c)
			dst++
		}
	}
	m.entries = newEntries
	m.cols = newCols
}

// RowColRestricted returns the submatrix obtained by dropping every row
// i with rowExclusion[i] and every column j with colExclusion[j] set.
func (m *Matrix) RowColRestricted(rowExclusion, colExclusion []bool) *Matrix {
	if len(rowExclusion) != m.rows || len(colExclusion) != m.cols {
		panic("mathx: row/col exclusion length mismatch")
	}
	rows, cols := 0, 0
	for _, excluded := range rowExclusion {
		if !excluded {
			rows++
		}
	}
	for _, excluded := range colExclusion {
		if !excluded {
			cols++
		}
	}
	result := NewMatrixOf(0, rows, cols)
	ir := 0
	for i := 0; i < m.rows; i++ {
		if rowExclusion[i] {
			continue
		}
		jr := 0
		for j := 0; j < m.cols; j++ {
			if colExclusion[j] {
				continue
			}
			result.Set(ir, jr, m.Get(i, j))
			jr++
		}
		ir++
	}
	return result
}

// regularPivot applies the classical Gauss-Jordan pivot step at
// (pivotRow, pivotCol): the pivot row is normalized to 1 there, and
// every other row has a multiple of the pivot row subtracted out to
// zero its pivot-column entry.
func regularPivot(entries []float64, rows, cols, pivotRow, pivotCol int) {
	at := func(i, j int) int { return i*cols + j }
	pivot := entries[at(pivotRow, pivotCol)]
	if almostZero(pivot) {
		panic(fmt.Sprintf("mathx: pivot element (%d,%d) is zero", pivotRow, pivotCol))
	}
	for j := 0; j < cols; j++ {
		entries[at(pivotRow, j)] /= pivot
	}
	for i := 0; i < rows; i++ {
		if i == pivotRow {
			continue
		}
		factor := entries[at(i, pivotCol)]
		if almostZero(factor) {
			continue
		}
		for j := 0; j < cols; j++ {
			entries[at(i, j)] -= entries[at(pivotRow, j)] * factor
		}
	}
}
