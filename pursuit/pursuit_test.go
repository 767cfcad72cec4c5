// Package pursuit_test validates the active-set pursuit engine: input
// validation, degenerate short-circuits, the end-to-end identity-padded
// scenario, exit-condition priority, trace invariants and warm starts.
package pursuit_test

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/tinatorabi/asp/operator"
	"github.com/tinatorabi/asp/pursuit"
)

// identPadded is the 3×4 identity-padded matrix of the end-to-end scenario.
var identPadded = [][]float64{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
}

// residNorm recomputes ‖b − A·x‖₂ for a recorded checkpoint.
func residNorm(a operator.Operator, b []float64, cp pursuit.Checkpoint) float64 {
	m, n := a.Dims()
	r := make([]float64, m)
	a.MatVec(r, cp.Dense(n))
	floats.AddScaledTo(r, b, -1, r)

	return floats.Norm(r, 2)
}

// ------------------------------------------------------------------------
// 1. Validation: malformed inputs are rejected before the loop.
// ------------------------------------------------------------------------

func TestHomotopy_NilOperator(t *testing.T) {
	_, err := pursuit.Homotopy(nil, []float64{1}, 0)
	require.ErrorIs(t, err, pursuit.ErrNilOperator)
}

func TestHomotopy_DimMismatch(t *testing.T) {
	a := operator.NewDense(identPadded)
	_, err := pursuit.Homotopy(a, []float64{1, 2}, 0)
	require.ErrorIs(t, err, pursuit.ErrDimMismatch)
}

func TestHomotopy_NegativeLambda(t *testing.T) {
	a := operator.NewDense(identPadded)
	_, err := pursuit.Homotopy(a, []float64{1, 2, 3}, -0.5)
	require.ErrorIs(t, err, pursuit.ErrNegativeLambda)
}

func TestHomotopy_NonFiniteInputs(t *testing.T) {
	a := operator.NewDense(identPadded)

	_, err := pursuit.Homotopy(a, []float64{1, math.NaN(), 3}, 0.5)
	require.ErrorIs(t, err, pursuit.ErrNotFinite)

	_, err = pursuit.Homotopy(a, []float64{1, 2, math.Inf(1)}, 0.5)
	require.ErrorIs(t, err, pursuit.ErrNotFinite)

	_, err = pursuit.Homotopy(a, []float64{1, 2, 3}, math.NaN())
	require.ErrorIs(t, err, pursuit.ErrNotFinite)
}

func TestHomotopy_BadWarmStart(t *testing.T) {
	a := operator.NewDense(identPadded)
	b := []float64{3, 1, 0}

	// Index out of range.
	_, err := pursuit.Homotopy(a, b, 0.5, pursuit.WithWarmStart([]int{7}, nil))
	require.ErrorIs(t, err, pursuit.ErrBadWarmStart)

	// Duplicate index.
	_, err = pursuit.Homotopy(a, b, 0.5, pursuit.WithWarmStart([]int{0, 0}, nil))
	require.ErrorIs(t, err, pursuit.ErrBadWarmStart)

	// Sign state of the wrong length.
	_, err = pursuit.Homotopy(a, b, 0.5, pursuit.WithWarmStart([]int{0}, []int8{1}))
	require.ErrorIs(t, err, pursuit.ErrBadWarmStart)

	// Sign value outside {-1, 0, +1}.
	_, err = pursuit.Homotopy(a, b, 0.5, pursuit.WithWarmStart([]int{0}, []int8{5, 0, 0, 0}))
	require.ErrorIs(t, err, pursuit.ErrBadWarmStart)

	// More warm columns than the active-set cap allows.
	_, err = pursuit.Homotopy(a, b, 0.5,
		pursuit.WithWarmStart([]int{0, 1}, nil), pursuit.WithActMax(1))
	require.ErrorIs(t, err, pursuit.ErrBadWarmStart)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	require.Panics(t, func() { pursuit.WithItnMax(0) })
	require.Panics(t, func() { pursuit.WithActMax(-1) })
	require.Panics(t, func() { pursuit.WithOptTol(-1) })
	require.Panics(t, func() { pursuit.WithPivTol(-1) })
	require.Panics(t, func() { pursuit.WithLambdaMin(-1) })
	require.Panics(t, func() { pursuit.WithLogLevel(pursuit.LogLevel(99)) })
	require.Panics(t, func() { pursuit.WithLogWriter(nil) })
}

// ------------------------------------------------------------------------
// 2. Degenerate short-circuits: no iterations, trace of length one.
// ------------------------------------------------------------------------

func TestHomotopy_ZeroRHS(t *testing.T) {
	a := operator.NewDense(identPadded)
	res, err := pursuit.Homotopy(a, []float64{0, 0, 0}, 0.5)
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonRHSZero, res.Reason)
	require.Equal(t, 0, res.Iterations)
	require.Len(t, res.Trace, 1)
	require.Empty(t, res.Trace.Last().Support)
	require.Equal(t, 0, res.ForwardProducts)
	require.Equal(t, 1, res.AdjointProducts)
}

func TestHomotopy_Unconstrained(t *testing.T) {
	a := operator.NewDense(identPadded)
	res, err := pursuit.Homotopy(a, []float64{3, 1, 0}, 10)
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonUnconstrained, res.Reason)
	require.Equal(t, 0, res.Iterations)
	require.Len(t, res.Trace, 1)
	require.Empty(t, res.Trace.Last().Support)
	// ‖Aᵀb‖∞ = 3 is the recorded score at exit.
	require.InDelta(t, 3.0, res.Trace.Last().Lambda, 1e-14)
}

// ------------------------------------------------------------------------
// 3. End-to-end scenario: A = 3×4 identity-padded, b = (3,1,0), λ = 0.5.
// ------------------------------------------------------------------------

func TestHomotopy_EndToEnd(t *testing.T) {
	a := operator.NewDense(identPadded)
	b := []float64{3, 1, 0}
	res, err := pursuit.Homotopy(a, b, 0.5)
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonLambda, res.Reason)
	require.Equal(t, 2, res.Iterations)
	require.Len(t, res.Trace, 3)

	// First activation is column 0 (score 3), second column 1 (score 1).
	// Checkpoints record the solution as it stood before each activation.
	require.Equal(t, 1, res.Trace[0].Itn)
	require.InDelta(t, 3.0, res.Trace[0].Lambda, 1e-14)
	require.Empty(t, res.Trace[0].Support)

	require.Equal(t, 2, res.Trace[1].Itn)
	require.InDelta(t, 1.0, res.Trace[1].Lambda, 1e-14)
	require.Equal(t, []int{0}, res.Trace[1].Support)
	require.InDeltaSlice(t, []float64{3}, res.Trace[1].Coef, 1e-12)

	// Terminal checkpoint: x ≈ (3, 1) over {0, 1}, all remaining scores 0.
	last := res.Trace.Last()
	require.Equal(t, []int{0, 1}, last.Support)
	require.InDeltaSlice(t, []float64{3, 1}, last.Coef, 1e-12)
	require.InDelta(t, 0.0, last.Lambda, 1e-14)
	require.InDeltaSlice(t, []float64{3, 1, 0, 0}, res.Solution(4), 1e-12)
	require.InDelta(t, 0.0, residNorm(a, b, last), 1e-12)

	// One forward product per activation; one adjoint at init (reused on
	// the first pass) plus one per subsequent rescoring pass.
	require.Equal(t, 2, res.ForwardProducts)
	require.Equal(t, 3, res.AdjointProducts)
}

// ------------------------------------------------------------------------
// 4. Exit conditions and their priority.
// ------------------------------------------------------------------------

func TestHomotopy_OptimalExit(t *testing.T) {
	a := operator.NewDense(identPadded)
	// After activating columns 0 and 1 the residual is (0,0,0.4): within
	// the loosened tolerance while column 2 still scores above λ.
	res, err := pursuit.Homotopy(a, []float64{3, 1, 0.4}, 0.01, pursuit.WithOptTol(0.5))
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonOptimal, res.Reason)
	require.Equal(t, 2, res.Iterations)
	require.Equal(t, []int{0, 1}, res.Trace.Last().Support)
}

func TestHomotopy_TooManyItns(t *testing.T) {
	a := operator.NewDense(identPadded)
	res, err := pursuit.Homotopy(a, []float64{3, 1, 0.4}, 0.01, pursuit.WithItnMax(1))
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonTooManyItns, res.Reason)
	require.Equal(t, 1, res.Iterations)
	require.Len(t, res.Trace, 2)
}

func TestHomotopy_ActMax(t *testing.T) {
	a := operator.NewDense(identPadded)
	res, err := pursuit.Homotopy(a, []float64{3, 1, 0.4}, 0.01, pursuit.WithActMax(1))
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonActMax, res.Reason)
	require.Equal(t, 1, res.Iterations)
	require.Equal(t, []int{0}, res.Trace.Last().Support)
}

// TestHomotopy_SingularDetection drives λ→0 on a design whose second
// column is a near-duplicate of the first: once the duplicate is selected
// the factorization rejects it and the run exits ReasonSingularLS with a
// usable trace.
func TestHomotopy_SingularDetection(t *testing.T) {
	const eps = 1e-7
	a := operator.NewDense([][]float64{
		{1, 1},
		{1, 1},
		{0, eps},
	})
	res, err := pursuit.Homotopy(a, []float64{1, 0, 1}, 0)
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonSingularLS, res.Reason)
	require.Equal(t, 1, res.Iterations)
	require.Len(t, res.Trace, 2)

	// Column 1 wins the first activation (score 1+eps beats 1); the final
	// checkpoint still carries its well-conditioned solution.
	last := res.Trace.Last()
	require.Equal(t, []int{1}, last.Support)
	require.InDelta(t, 0.5, last.Coef[0], 1e-6)
}

// TestHomotopy_TieBreak pins the documented policy: with equal scores the
// smallest column index under the ascending scan is activated.
func TestHomotopy_TieBreak(t *testing.T) {
	a := operator.NewDense([][]float64{
		{1, 1},
		{0, 0},
	})
	res, err := pursuit.Homotopy(a, []float64{1, 0}, 0.5)
	require.NoError(t, err)

	require.Equal(t, pursuit.ReasonLambda, res.Reason)
	require.Equal(t, []int{0}, res.Trace.Last().Support)
}

// ------------------------------------------------------------------------
// 5. Trace invariants on a generic dense problem.
// ------------------------------------------------------------------------

func TestHomotopy_TraceInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const m, n = 6, 12
	rows := make([][]float64, m)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = rng.NormFloat64()
		}
	}
	b := make([]float64, m)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	a := operator.NewDense(rows)
	res, err := pursuit.Homotopy(a, b, 0.05)
	require.NoError(t, err)
	require.NotEqual(t, pursuit.ReasonUnknown, res.Reason)

	// Trace length = activations + 1, support grows by exactly one per
	// activation, earlier supports are prefixes of later ones, and no
	// index ever repeats.
	require.Len(t, res.Trace, res.Iterations+1)
	final := res.Trace.Last().Support
	seen := make(map[int]bool, len(final))
	for _, j := range final {
		require.False(t, seen[j], "duplicate active index %d", j)
		seen[j] = true
	}
	for i, cp := range res.Trace[:len(res.Trace)-1] {
		require.Len(t, cp.Support, i)
		require.Equal(t, final[:len(cp.Support)], cp.Support)
	}

	// Residual norms along the trace are non-increasing: the active set
	// only grows, so the restricted fit only improves.
	prev := math.Inf(1)
	for _, cp := range res.Trace {
		rn := residNorm(a, b, cp)
		require.LessOrEqual(t, rn, prev+1e-9)
		prev = rn
	}

	// Termination bound.
	require.LessOrEqual(t, res.Iterations, 10*n)
}

// ------------------------------------------------------------------------
// 6. Warm start: resuming after one activation matches the cold run.
// ------------------------------------------------------------------------

func TestHomotopy_WarmStartResumes(t *testing.T) {
	a := operator.NewDense(identPadded)
	b := []float64{3, 1, 0}

	cold, err := pursuit.Homotopy(a, b, 0.5)
	require.NoError(t, err)

	state := []int8{1, 0, 0, 0}
	warm, err := pursuit.Homotopy(a, b, 0.5, pursuit.WithWarmStart([]int{0}, state))
	require.NoError(t, err)

	require.Equal(t, cold.Reason, warm.Reason)
	require.Equal(t, 1, warm.Iterations)
	require.Equal(t, cold.Trace.Last().Support, warm.Trace.Last().Support)
	require.InDeltaSlice(t, cold.Trace.Last().Coef, warm.Trace.Last().Coef, 1e-12)
	// The resumed run reconstructs the same sign bookkeeping.
	require.Equal(t, cold.State, warm.State)
}

// ------------------------------------------------------------------------
// 7. Presentation: exit messages and the progress report.
// ------------------------------------------------------------------------

func TestExitReason_Strings(t *testing.T) {
	reasons := []pursuit.ExitReason{
		pursuit.ReasonUnknown, pursuit.ReasonOptimal, pursuit.ReasonTooManyItns,
		pursuit.ReasonSingularLS, pursuit.ReasonLambda, pursuit.ReasonRHSZero,
		pursuit.ReasonUnconstrained, pursuit.ReasonActMax,
	}
	for _, r := range reasons {
		require.NotEmpty(t, r.String())
	}
	require.Contains(t, pursuit.ExitReason(42).String(), "invalid")
}

func TestHomotopy_ProgressReport(t *testing.T) {
	var buf bytes.Buffer
	a := operator.NewDense(identPadded)
	_, err := pursuit.Homotopy(a, []float64{3, 1, 0}, 0.5,
		pursuit.WithLogLevel(pursuit.LogIter), pursuit.WithLogWriter(&buf))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "m=3 n=4")
	require.Contains(t, out, "exit: dual feasible")
	// Two iteration lines between header and trailer.
	require.Contains(t, out, "\n    1 ")
	require.Contains(t, out, "\n    2 ")
}
