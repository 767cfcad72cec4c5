package pursuit

import (
	"io"
	"os"
)

// DEFAULTS — single source of truth for zero-value option behavior.
const (
	// DefaultOptTol is the residual 2-norm optimality tolerance.
	DefaultOptTol = 1e-5

	// DefaultFeaTol is the feasibility tolerance (reserved for
	// sign-constrained extensions; carried and reported, not consulted
	// by the plain pursuit loop).
	DefaultFeaTol = 5e-5

	// DefaultGapTol is the duality-gap tolerance (reserved).
	DefaultGapTol = 1e-6

	// DefaultPivTol is the pivot tolerance handed to the incremental
	// factorization when a new column is incorporated.
	DefaultPivTol = 1e-12

	// DefaultLambdaMin is the floor on λ, derived from machine epsilon
	// (√eps for float64). Reserved for homotopy continuation; not
	// enforced inside the plain loop.
	DefaultLambdaMin = 1.4901161193847656e-08

	// coefCeiling is the blow-up threshold on restricted least-squares
	// coefficients: any |x[i]| beyond it marks the subproblem singular.
	coefCeiling = 1e12
)

// LogLevel controls the verbosity of progress reporting. Reporting is
// presentational only and never part of the functional contract.
type LogLevel int

const (
	// LogNone disables all progress output (default).
	LogNone LogLevel = iota

	// LogSummary prints the header block and the exit trailer.
	LogSummary

	// LogIter additionally prints one line per iteration.
	LogIter
)

// Options configures a pursuit run.
//
// ItnMax    – hard iteration cap; 0 means 10·max(m, n), resolved at run time.
// ActMax    – maximum active-set size; 0 means the column count of A.
// OptTol    – residual 2-norm tolerance for the OPTIMAL exit.
// FeaTol    – feasibility tolerance (reserved).
// GapTol    – duality-gap tolerance (reserved).
// PivTol    – pivot/singularity tolerance for the factorization update.
// LambdaMin – floor on λ (reserved).
// Active    – warm-start active index list, in activation order.
// State     – warm-start sign state over all n columns ({-1, 0, +1}).
// Level     – progress-report verbosity.
// Writer    – destination for progress output (default os.Stdout).
type Options struct {
	ItnMax    int
	ActMax    int
	OptTol    float64
	FeaTol    float64
	GapTol    float64
	PivTol    float64
	LambdaMin float64
	Active    []int
	State     []int8
	Level     LogLevel
	Writer    io.Writer
}

// Option represents a functional option for configuring Homotopy.
type Option func(*Options)

// DefaultOptions returns an Options struct initialized with the
// documented defaults. Use as a starting point for overrides.
func DefaultOptions() Options {
	return Options{
		OptTol:    DefaultOptTol,
		FeaTol:    DefaultFeaTol,
		GapTol:    DefaultGapTol,
		PivTol:    DefaultPivTol,
		LambdaMin: DefaultLambdaMin,
		Level:     LogNone,
		Writer:    os.Stdout,
	}
}

// WithItnMax caps the number of activations. Must be positive; invalid
// values panic (programmer error, per the option-constructor convention).
func WithItnMax(itnMax int) Option {
	return func(o *Options) {
		if itnMax <= 0 {
			panic("pursuit: WithItnMax requires a positive cap")
		}
		o.ItnMax = itnMax
	}
}

// WithActMax caps the active-set size. Must be positive.
func WithActMax(actMax int) Option {
	return func(o *Options) {
		if actMax <= 0 {
			panic("pursuit: WithActMax requires a positive cap")
		}
		o.ActMax = actMax
	}
}

// WithOptTol sets the residual 2-norm tolerance. Must be non-negative.
func WithOptTol(tol float64) Option {
	return func(o *Options) {
		if tol < 0 {
			panic("pursuit: WithOptTol requires a non-negative tolerance")
		}
		o.OptTol = tol
	}
}

// WithFeaTol sets the feasibility tolerance (reserved). Must be non-negative.
func WithFeaTol(tol float64) Option {
	return func(o *Options) {
		if tol < 0 {
			panic("pursuit: WithFeaTol requires a non-negative tolerance")
		}
		o.FeaTol = tol
	}
}

// WithGapTol sets the duality-gap tolerance (reserved). Must be non-negative.
func WithGapTol(tol float64) Option {
	return func(o *Options) {
		if tol < 0 {
			panic("pursuit: WithGapTol requires a non-negative tolerance")
		}
		o.GapTol = tol
	}
}

// WithPivTol sets the pivot tolerance passed to the factorization update.
// Must be non-negative.
func WithPivTol(tol float64) Option {
	return func(o *Options) {
		if tol < 0 {
			panic("pursuit: WithPivTol requires a non-negative tolerance")
		}
		o.PivTol = tol
	}
}

// WithLambdaMin sets the floor on λ (reserved). Must be non-negative.
func WithLambdaMin(min float64) Option {
	return func(o *Options) {
		if min < 0 {
			panic("pursuit: WithLambdaMin requires a non-negative floor")
		}
		o.LambdaMin = min
	}
}

// WithWarmStart resumes a pursuit from a prior active set and sign state.
// active lists column indices in activation order; state, if non-nil,
// carries one sign per column of A. Both are validated inside Homotopy
// (ErrBadWarmStart), not here, since validation needs the operator shape.
func WithWarmStart(active []int, state []int8) Option {
	return func(o *Options) {
		o.Active = active
		o.State = state
	}
}

// WithLogLevel sets progress-report verbosity.
func WithLogLevel(level LogLevel) Option {
	return func(o *Options) {
		if level < LogNone || level > LogIter {
			panic("pursuit: WithLogLevel requires a valid level")
		}
		o.Level = level
	}
}

// WithLogWriter redirects progress output. Must be non-nil.
func WithLogWriter(w io.Writer) Option {
	return func(o *Options) {
		if w == nil {
			panic("pursuit: WithLogWriter requires a non-nil writer")
		}
		o.Writer = w
	}
}
