package operator

import "fmt"

// Operator applies a linear map and its adjoint to dense vectors.
//
// MatVec computes dst = A·src (forward product); MatTransVec computes
// dst = Aᵀ·src (adjoint product). Neither may retain its arguments, and
// both must fully overwrite dst.
type Operator interface {
	// Dims returns the logical shape of A: rows × cols.
	Dims() (rows, cols int)

	// MatVec stores A·src into dst. len(src) must equal cols and
	// len(dst) must equal rows.
	MatVec(dst, src []float64)

	// MatTransVec stores Aᵀ·src into dst. len(src) must equal rows and
	// len(dst) must equal cols.
	MatTransVec(dst, src []float64)
}

// Dense is an explicit row-major matrix implementing Operator.
// The zero value is not usable; construct with NewDense.
type Dense struct {
	rows, cols int
	data       []float64 // row-major, len == rows*cols
}

// NewDense builds a Dense operator from row slices. The rows are copied,
// so the caller may reuse its buffers afterwards.
//
// Panics if rows is empty or ragged (programmer error).
func NewDense(rows [][]float64) *Dense {
	if len(rows) == 0 || len(rows[0]) == 0 {
		panic("operator: NewDense requires a non-empty matrix")
	}
	m, n := len(rows), len(rows[0])
	data := make([]float64, 0, m*n)
	for i, row := range rows {
		if len(row) != n {
			panic(fmt.Sprintf("operator: ragged row %d: len=%d want=%d", i, len(row), n))
		}
		data = append(data, row...)
	}

	return &Dense{rows: m, cols: n, data: data}
}

// Dims returns the shape of the matrix.
func (d *Dense) Dims() (rows, cols int) { return d.rows, d.cols }

// MatVec computes dst = A·src with straight loops over the row-major data.
func (d *Dense) MatVec(dst, src []float64) {
	checkLens("MatVec", len(dst), d.rows, len(src), d.cols)
	for i := 0; i < d.rows; i++ {
		row := d.data[i*d.cols : (i+1)*d.cols]
		var s float64
		for j, v := range row {
			s += v * src[j]
		}
		dst[i] = s
	}
}

// MatTransVec computes dst = Aᵀ·src. The row-major layout makes this a
// scaled-row accumulation rather than a column walk.
func (d *Dense) MatTransVec(dst, src []float64) {
	checkLens("MatTransVec", len(dst), d.cols, len(src), d.rows)
	for j := range dst {
		dst[j] = 0
	}
	for i := 0; i < d.rows; i++ {
		row := d.data[i*d.cols : (i+1)*d.cols]
		si := src[i]
		if si == 0 {
			continue
		}
		for j, v := range row {
			dst[j] += v * si
		}
	}
}

// checkLens panics with a descriptive message on a product-shape mismatch.
func checkLens(op string, gotDst, wantDst, gotSrc, wantSrc int) {
	if gotDst != wantDst || gotSrc != wantSrc {
		panic(fmt.Sprintf("operator: %s shape mismatch: dst=%d (want %d), src=%d (want %d)",
			op, gotDst, wantDst, gotSrc, wantSrc))
	}
}
