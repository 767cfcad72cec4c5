package qrupd

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Factor is the upper-triangular factor R of SᵀS for the current design S
// (the active columns, passed to AddColumn/Solve as column slices of
// length m). R is stored packed column-major in a preallocated arena;
// k tracks the live column count, entries beyond it are dead.
//
// The zero value is not usable; construct with NewFactor.
type Factor struct {
	m       int // row dimension of every design column
	maxCols int // arena capacity in columns
	k       int // live columns

	// r holds R packed column by column: column j occupies
	// r[j(j+1)/2 : j(j+1)/2 + j+1], storing R[0..j][j].
	r []float64

	// Scratch for substitution passes, sized maxCols, reused every call.
	u, z []float64
}

// NewFactor allocates an empty factor for design columns of length m,
// growing up to maxCols columns without further allocation.
//
// Panics if m or maxCols is not positive (programmer error).
func NewFactor(m, maxCols int) *Factor {
	if m <= 0 || maxCols <= 0 {
		panic("qrupd: NewFactor requires positive dimensions")
	}

	return &Factor{
		m:       m,
		maxCols: maxCols,
		r:       make([]float64, maxCols*(maxCols+1)/2),
		u:       make([]float64, maxCols),
		z:       make([]float64, maxCols),
	}
}

// Cols reports the number of columns currently incorporated in the factor.
func (f *Factor) Cols() int { return f.k }

// Rows reports the row dimension the factor was created with.
func (f *Factor) Rows() int { return f.m }

// Reset empties the factor without releasing its arena, so it can be
// reused for a fresh run of the same dimensions.
func (f *Factor) Reset() { f.k = 0 }

// at returns the packed index of R[i][j], valid for i ≤ j < k.
func (f *Factor) at(i, j int) int { return j*(j+1)/2 + i }

// AddColumn extends the factorization by one design column ("qraddcol").
//
// design must hold the k columns already factored, in order; col is the
// candidate column of length m. On success the factor gains one column.
// If col is numerically dependent on the factored columns — the squared
// new diagonal falls at or below pivTol·‖col‖₂² — AddColumn returns
// ErrSingularColumn and leaves the factor unchanged.
func (f *Factor) AddColumn(design [][]float64, col []float64, pivTol float64) error {
	if f.k == f.maxCols {
		return ErrFactorFull
	}
	if len(col) != f.m || len(design) < f.k {
		return ErrDimMismatch
	}

	anorm2 := floats.Dot(col, col)

	// u = Sᵀ·col over the columns already factored.
	for j := 0; j < f.k; j++ {
		f.u[j] = floats.Dot(design[j], col)
	}

	// Solve Rᵀc = u by forward substitution (Rᵀ is lower triangular).
	c := f.z[:f.k]
	for i := 0; i < f.k; i++ {
		s := f.u[i]
		for l := 0; l < i; l++ {
			s -= f.r[f.at(l, i)] * c[l]
		}
		d := f.r[f.at(i, i)]
		if d == 0 {
			return ErrSingularColumn
		}
		c[i] = s / d
	}

	// γ² = ‖col‖² − ‖c‖² is the squared new diagonal entry.
	gamma2 := anorm2 - floats.Dot(c, c)
	if gamma2 <= pivTol*anorm2 {
		return ErrSingularColumn
	}

	// Commit the packed column [c; γ].
	base := f.at(0, f.k)
	copy(f.r[base:base+f.k], c)
	f.r[base+f.k] = math.Sqrt(gamma2)
	f.k++

	return nil
}

// Solve computes the restricted least-squares coefficients ("csne"):
// x solving min ‖S·x − b‖₂ through RᵀR·x = Sᵀb, and the residual
// byproduct aux = b − S·x.
//
// design must hold the k factored columns, b must have length m, x must
// have length k and aux length m. Solve reads but never mutates the
// factor: calling it twice with the same inputs yields identical x.
func (f *Factor) Solve(design [][]float64, b []float64, x, aux []float64) error {
	if len(b) != f.m || len(aux) != f.m || len(x) != f.k || len(design) < f.k {
		return ErrDimMismatch
	}
	if f.k == 0 {
		copy(aux, b)

		return nil
	}

	// w = Sᵀb.
	for j := 0; j < f.k; j++ {
		f.u[j] = floats.Dot(design[j], b)
	}

	// Forward substitution: Rᵀz = w.
	z := f.z[:f.k]
	for i := 0; i < f.k; i++ {
		s := f.u[i]
		for l := 0; l < i; l++ {
			s -= f.r[f.at(l, i)] * z[l]
		}
		z[i] = s / f.r[f.at(i, i)]
	}

	// Back substitution: Rx = z.
	for i := f.k - 1; i >= 0; i-- {
		s := z[i]
		for j := i + 1; j < f.k; j++ {
			s -= f.r[f.at(i, j)] * x[j]
		}
		x[i] = s / f.r[f.at(i, i)]
	}

	// aux = b − S·x.
	copy(aux, b)
	for j := 0; j < f.k; j++ {
		floats.AddScaled(aux, -x[j], design[j])
	}

	return nil
}
