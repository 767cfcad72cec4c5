package operator

import "gonum.org/v1/gonum/mat"

// matrixOp adapts a gonum mat.Matrix to the Operator interface.
// Products go through mat.VecDense.MulVec, so any concrete gonum type
// (Dense, SymDense, banded, triangular, …) works unchanged.
type matrixOp struct {
	a mat.Matrix
}

// FromMatrix wraps a gonum matrix as an Operator. The matrix is not
// copied; the caller must not mutate it while the operator is in use.
func FromMatrix(a mat.Matrix) Operator {
	if a == nil {
		panic("operator: FromMatrix requires a non-nil matrix")
	}

	return matrixOp{a: a}
}

func (op matrixOp) Dims() (rows, cols int) { return op.a.Dims() }

func (op matrixOp) MatVec(dst, src []float64) {
	_, n := op.a.Dims()
	checkLens("MatVec", len(dst), rowsOf(op.a), len(src), n)
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(op.a, mat.NewVecDense(len(src), src))
}

func (op matrixOp) MatTransVec(dst, src []float64) {
	m, _ := op.a.Dims()
	checkLens("MatTransVec", len(dst), colsOf(op.a), len(src), m)
	out := mat.NewVecDense(len(dst), dst)
	out.MulVec(op.a.T(), mat.NewVecDense(len(src), src))
}

func rowsOf(a mat.Matrix) int {
	r, _ := a.Dims()

	return r
}

func colsOf(a mat.Matrix) int {
	_, c := a.Dims()

	return c
}
