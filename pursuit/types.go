// Package pursuit defines core types and configuration options for the
// active-set pursuit engine.
//
// The engine incrementally builds a sparse approximate solution to an
// underdetermined linear system A·x = b, activating one column of A per
// iteration (the column whose adjoint-residual score is largest) and
// re-solving the least-squares problem restricted to the active columns.
// Every ordinary stopping condition is an ExitReason value, never an
// error: errors are reserved for malformed inputs rejected before the
// loop starts.
//
// Errors (sentinel):
//
//	– ErrNilOperator   if the provided operator is nil.
//	– ErrDimMismatch   if len(b) does not match the operator's row count.
//	– ErrNegativeLambda if λ < 0.
//	– ErrNotFinite     if b or λ contains NaN or ±Inf.
//	– ErrBadWarmStart  if a warm-start active set or sign state is invalid.
package pursuit

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Homotopy before the loop is entered.
var (
	// ErrNilOperator indicates that a nil operator was passed to Homotopy.
	ErrNilOperator = errors.New("pursuit: operator is nil")

	// ErrDimMismatch indicates that len(b) does not equal the operator's
	// row dimension.
	ErrDimMismatch = errors.New("pursuit: dimension mismatch between operator and b")

	// ErrNegativeLambda indicates a negative regularization threshold.
	ErrNegativeLambda = errors.New("pursuit: lambda must be non-negative")

	// ErrNotFinite indicates that b or lambda contains NaN or ±Inf.
	ErrNotFinite = errors.New("pursuit: input contains NaN or Inf")

	// ErrBadWarmStart indicates an invalid warm-start: an index out of
	// range or repeated, a sign state of the wrong length, or a sign
	// value outside {-1, 0, +1}.
	ErrBadWarmStart = errors.New("pursuit: invalid warm start")
)

// ExitReason identifies why a pursuit run stopped. It is a closed
// enumeration: every run resolves to exactly one reason, decided once and
// never reverted. ReasonUnknown is the internal sentinel and is never the
// value returned to the caller.
type ExitReason int

const (
	// ReasonUnknown is the initial sentinel; a finished run never carries it.
	ReasonUnknown ExitReason = iota

	// ReasonOptimal: the residual 2-norm fell to or below OptTol.
	ReasonOptimal

	// ReasonTooManyItns: the hard iteration cap ItnMax was reached.
	ReasonTooManyItns

	// ReasonSingularLS: the restricted least-squares subproblem became
	// numerically singular, detected either by a coefficient exceeding the
	// blow-up ceiling or by the factorization rejecting a dependent column.
	ReasonSingularLS

	// ReasonLambda: no inactive column's score exceeds λ; the current
	// solution is dual-optimal for the threshold.
	ReasonLambda

	// ReasonRHSZero: b is the zero vector; the zero solution is exact.
	ReasonRHSZero

	// ReasonUnconstrained: ‖Aᵀb‖∞ < λ already at the start; the zero
	// solution satisfies the dual feasibility bound with no activations.
	ReasonUnconstrained

	// ReasonActMax: the active set reached its maximum allowed size.
	ReasonActMax
)

// String returns the human-readable exit message. The switch is
// exhaustive over the enumeration; an out-of-range value formats as such.
func (r ExitReason) String() string {
	switch r {
	case ReasonUnknown:
		return "exit reason not yet determined"
	case ReasonOptimal:
		return "optimal solution found: residual within tolerance"
	case ReasonTooManyItns:
		return "too many iterations"
	case ReasonSingularLS:
		return "singular least-squares subproblem encountered"
	case ReasonLambda:
		return "dual feasible: no column score exceeds lambda"
	case ReasonRHSZero:
		return "right-hand side is zero: solution is trivially zero"
	case ReasonUnconstrained:
		return "lambda dominates every column score: zero solution is optimal"
	case ReasonActMax:
		return "maximum active-set size reached"
	default:
		return fmt.Sprintf("invalid exit reason (%d)", int(r))
	}
}
