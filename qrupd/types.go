package qrupd

import "errors"

// Sentinel errors returned by the incremental factorization.
var (
	// ErrSingularColumn indicates the candidate column is numerically
	// linearly dependent on the columns already in the factor, beyond the
	// supplied pivot tolerance. The factor is left unchanged.
	ErrSingularColumn = errors.New("qrupd: new column is numerically dependent on the active set")

	// ErrFactorFull indicates the factor already holds the maximum number
	// of columns it was allocated for.
	ErrFactorFull = errors.New("qrupd: factor is at capacity")

	// ErrDimMismatch indicates a vector or design slice whose length does
	// not match the dimensions the factor was created with.
	ErrDimMismatch = errors.New("qrupd: dimension mismatch")
)
