package mathx

import (
	"fmt"
	"math"
)

func fmtFloat(v float64) string { return fmt.Sprintf("%g", v) }

// Tableau is a simplex tableau: a Matrix plus, for every non-augmented
// column, whether it is currently a basis column, and for every row,
// which column (if any) is its basis column.
type Tableau struct {
	matrix     *Matrix
	colIsBasis []bool
	basisCol   []int // -1 means none
}

func newTableau(matrix *Matrix, colIsBasis []bool, basisCol []int) *Tableau {
	if len(colIsBasis) != matrix.NumCols()-1 {
		panic("mathx: col_is_basis length must equal matrix columns - 1")
	}
	if len(basisCol) != matrix.NumRows() {
		panic("mathx: basis_col length must equal matrix rows")
	}
	return &Tableau{matrix: matrix, colIsBasis: colIsBasis, basisCol: basisCol}
}

func (t *Tableau) NumRows() int           { return t.matrix.NumRows() }
func (t *Tableau) NumCols() int           { return t.matrix.NumCols() }
func (t *Tableau) Get(i, j int) float64   { return t.matrix.Get(i, j) }

// pivot applies a basis-tracked pivot at (pivotRow, pivotCol): if
// pivotCol is already a basis column this is a no-op (mirrors the
// guard in the original), otherwise the row's previous basis column is
// evicted, the new one recorded, and the regular Gauss-Jordan pivot
// runs underneath.
func (t *Tableau) pivot(pivotRow, pivotCol int) {
	if t.colIsBasis[pivotCol] {
		return
	}

	exitingVar := 0
	for j := 0; j < t.NumCols()-1; j++ {
		if t.colIsBasis[j] && !almostZero(t.Get(pivotRow, j)) {
			exitingVar = j
			break
		}
	}
	t.colIsBasis[exitingVar] = false
	t.colIsBasis[pivotCol] = true
	t.basisCol[pivotRow] = pivotCol

	regularPivot(t.matrix.entries, t.matrix.rows, t.matrix.cols, pivotRow, pivotCol)
}

func (t *Tableau) delRow(i int) {
	t.matrix.DelRow(i)
	if bc := t.basisCol[i]; bc >= 0 {
		t.colIsBasis[bc] = false
	}
	t.basisCol = append(t.basisCol[:i], t.basisCol[i+1:]...)
}

func (t *Tableau) delCol(j int) {
	t.matrix.DelCol(j)
	t.colIsBasis = append(t.colIsBasis[:j], t.colIsBasis[j+1:]...)
	for i, bc := range t.basisCol {
		if bc == j {
			t.basisCol[i] = -1
		} else if bc > j {
			t.basisCol[i] = bc - 1
		}
	}
}

// selectPivotCol picks the most-negative reduced-cost column among the
// non-basis columns of the objective row (row 0); returns -1 once no
// column is negative (optimum reached).
func selectPivotCol(t *Tableau) int {
	pivotCol := 0
	minCoeff := t.Get(0, 0)
	for j := 1; j < len(t.colIsBasis); j++ {
		coeff := t.Get(0, j)
		if !t.colIsBasis[j] && coeff < minCoeff {
			minCoeff = coeff
			pivotCol = j
		}
	}
	if almostZero(minCoeff) || minCoeff > 0.0 {
		return -1
	}
	return pivotCol
}

// selectPivotRow applies the minimum-positive-ratio test over rows
// [minRow, NumRows).
func selectPivotRow(t *Tableau, pivotCol, minRow int) int {
	pivotRow := minRow
	minRatio := math.Inf(1)
	for i := minRow; i < t.NumRows(); i++ {
		entry := t.Get(i, pivotCol)
		if entry > 0.0 && !almostZero(entry) {
			ratio := t.Get(i, t.NumCols()-1) / entry
			if ratio < minRatio {
				minRatio = ratio
				pivotRow = i
			}
		}
	}
	return pivotRow
}

// SimplexPhase2 drives a feasible tableau to optimality by repeated
// pivoting, starting the ratio test at row 1 (row 0 is the objective).
func SimplexPhase2(t *Tableau) {
	for {
		pivotCol := selectPivotCol(t)
		if pivotCol < 0 {
			return
		}
		pivotRow := selectPivotRow(t, pivotCol, 1)
		t.pivot(pivotRow, pivotCol)
	}
}

// SimplexPhase1 builds and solves a phase-1 tableau for the LP
// `max c.x s.t. a.x <= b, sum(x) = 1, x >= 0` (b may have negative
// entries) using
// artificial variables and a row per constraint plus one redundant-row
// check, returning nil if the LP is infeasible.
func SimplexPhase1(a *Matrix, b, c []float64) *Tableau {
	m := a.NumRows()
	n := a.NumCols()

	matrix := NewMatrixOf(0, m+3, n+2*m+2)
	colIsBasis := make([]bool, matrix.NumCols()-1)
	basisCol := make([]int, matrix.NumRows())
	for i := range basisCol {
		basisCol[i] = -1
	}

	for j := 0; j < n; j++ {
		matrix.Set(1, j, -c[j])
		matrix.Set(matrix.NumRows()-1, j, 1.0)
		for i := 0; i < m; i++ {
			matrix.Set(i+2, j, a.Get(i, j))
		}
	}
	for i := 0; i < m; i++ {
		matrix.Set(i+2, matrix.NumCols()-1, b[i])
	}
	for j := 0; j < m; j++ {
		matrix.Set(j+2, j+n, 1.0)
		colIsBasis[j+n] = true
		basisCol[j+2] = j + n
		matrix.Set(0, j+n+m, 1.0)
		sign := 1.0
		if matrix.Get(j+2, matrix.NumCols()-1) < 0.0 {
			sign = -1.0
		}
		matrix.Set(j+2, j+n+m, sign)
	}
	matrix.Set(0, matrix.NumCols()-2, 1.0)
	matrix.Set(matrix.NumRows()-1, matrix.NumCols()-2, 1.0)
	matrix.Set(matrix.NumRows()-1, matrix.NumCols()-1, 1.0)

	t := newTableau(matrix, colIsBasis, basisCol)

	for i := 0; i < m+1; i++ {
		t.pivot(i+2, i+n+m)
	}

	for {
		pivotCol := selectPivotCol(t)
		if pivotCol < 0 {
			break
		}
		pivotRow := selectPivotRow(t, pivotCol, 2)
		t.pivot(pivotRow, pivotCol)
	}

	if !almostZero(t.Get(0, t.NumCols()-1)) {
		return nil
	}

	for j := 0; j < m+1; j++ {
		col := j + n + m
		if !t.colIsBasis[col] {
			continue
		}
		pivotRow := 1
		for possibleI := 2; possibleI < t.NumRows(); possibleI++ {
			if !almostZero(t.Get(pivotRow, col)) {
				pivotRow = possibleI
			}
		}
		pivoted := false
		for pivotCol := 0; pivotCol < n+m; pivotCol++ {
			if t.colIsBasis[pivotCol] {
				continue
			}
			candidate := t.Get(pivotRow, pivotCol)
			if !almostZero(candidate) && candidate > 0.0 {
				t.pivot(pivotRow, pivotCol)
				pivoted = true
				break
			}
		}
		if !pivoted {
			t.delRow(pivotRow)
			t.colIsBasis[j] = false
		}
	}

	t.delRow(0)
	for j := m; j >= 0; j-- {
		t.delCol(j + n + m)
	}

	return t
}

// AlphaChild computes the alpha-child LP bound used by SMAB when
// exploring the (a,b) entry of the pessimistic/optimistic bound
// matrices, returning -1.0 if the constructed LP is infeasible.
func AlphaChild(a, b int, pessimistic, optimistic *Matrix, alpha float64) float64 {
	pt := pessimistic.Clone()
	pt.SetRow(a, alpha)
	e := make([]float64, pt.NumRows())
	for i := range e {
		e[i] = pt.Get(i, b)
	}
	pt.DelCol(b)
	pt = pt.Transposed()
	pt.Scale(-1.0)

	f := make([]float64, 0, optimistic.NumCols()-1)
	for j := 0; j < optimistic.NumCols(); j++ {
		if j == b {
			continue
		}
		f = append(f, -optimistic.Get(a, j))
	}

	t := SimplexPhase1(pt, f, e)
	if t == nil {
		return -1.0
	}
	SimplexPhase2(t)
	value := t.Get(0, t.NumCols()-1)
	return clampUnitBound(value, "alpha")
}

// BetaChild computes the beta-child LP bound, the mirror of AlphaChild
// over the optimistic-bounds matrix.
func BetaChild(a, b int, pessimistic, optimistic *Matrix, beta float64) float64 {
	o := optimistic.Clone()
	o.SetCol(b, beta)
	e := make([]float64, o.NumCols())
	for j := range e {
		e[j] = -o.Get(a, j)
	}
	o.DelRow(a)

	f := make([]float64, 0, pessimistic.NumRows()-1)
	for i := 0; i < pessimistic.NumRows(); i++ {
		if i == a {
			continue
		}
		f = append(f, pessimistic.Get(i, b))
	}

	t := SimplexPhase1(o, f, e)
	if t == nil {
		return 1.0
	}
	SimplexPhase2(t)
	value := -t.Get(0, t.NumCols()-1)
	return clampUnitBound(value, "beta")
}

func clampUnitBound(value float64, name string) float64 {
	switch {
	case almostEqual(value, -1.0):
		return -1.0
	case almostEqual(value, 1.0):
		return 1.0
	}
	if value < -1.0 || value > 1.0 {
		panic(name + " child bound outside of [-1,1]: " + fmtFloat(value))
	}
	return value
}
