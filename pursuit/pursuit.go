// Package pursuit implements the active-set pursuit engine.
//
// Homotopy greedily builds a sparse approximate solution to A·x = b: each
// iteration scores every inactive column by the magnitude of its
// adjoint-residual coordinate (Aᵀr), activates the best-scoring column,
// extends the incremental factorization by that column, and re-solves the
// least-squares problem restricted to the active set. The run emits a
// trace of checkpoints describing the sparsity/fit trade-off curve and
// terminates with exactly one ExitReason.
//
// Notes on implementation choices:
//
//   - Ties in the column score are broken toward the smallest index under
//     a fixed ascending scan, so traces are reproducible.
//   - A coefficient magnitude beyond 1e12 after a restricted solve marks
//     the subproblem singular (ReasonSingularLS); the activation that
//     caused it is not recorded and the last well-conditioned solution is
//     what the final checkpoint reports.
//   - A near-singularity signal from the factorization update is surfaced
//     as ReasonSingularLS immediately rather than waiting for blow-up.
//   - All scratch vectors (one-hot probe, scores, residual, coefficient
//     buffers, design arena) are owned by the per-run state and allocated
//     once; nothing is shared between runs.
package pursuit

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/tinatorabi/asp/operator"
	"github.com/tinatorabi/asp/qrupd"
)

// Homotopy runs the active-set pursuit on operator a, right-hand side b
// and regularization threshold lambda, returning the checkpoint trace,
// the exit reason and the run's diagnostic counters.
//
// Preconditions and validation (in order):
//  1. a must be non-nil (ErrNilOperator).
//  2. len(b) must equal the row dimension of a (ErrDimMismatch).
//  3. lambda must be finite (ErrNotFinite) and non-negative (ErrNegativeLambda).
//  4. b must contain only finite values (ErrNotFinite).
//  5. A warm start, if supplied, must be consistent (ErrBadWarmStart).
//
// Every ordinary stopping condition — including a numerically singular
// restricted subproblem — is reported through Result.Reason, never as an
// error; the trace up to that point remains usable.
//
// Complexity per iteration: one adjoint and one forward product, plus
// O(k² + m·k) for the factor update and restricted solve over k active
// columns.
func Homotopy(a operator.Operator, b []float64, lambda float64, opts ...Option) (Result, error) {
	// 1) Build and validate Options.
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate the operator and problem dimensions.
	if a == nil {
		return Result{}, ErrNilOperator
	}
	m, n := a.Dims()
	if m <= 0 || n <= 0 {
		return Result{}, fmt.Errorf("%w: operator has empty shape %d×%d", ErrDimMismatch, m, n)
	}
	if len(b) != m {
		return Result{}, fmt.Errorf("%w: operator is %d×%d, b has length %d", ErrDimMismatch, m, n, len(b))
	}

	// 3) Validate lambda.
	if math.IsNaN(lambda) || math.IsInf(lambda, 0) {
		return Result{}, fmt.Errorf("%w: lambda=%v", ErrNotFinite, lambda)
	}
	if lambda < 0 {
		return Result{}, fmt.Errorf("%w: lambda=%v", ErrNegativeLambda, lambda)
	}

	// 4) Validate b is finite.
	for i, v := range b {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, fmt.Errorf("%w: b[%d]=%v", ErrNotFinite, i, v)
		}
	}

	// 5) Resolve size-derived defaults.
	if cfg.ItnMax == 0 {
		cfg.ItnMax = 10 * max(m, n)
	}
	if cfg.ActMax == 0 {
		cfg.ActMax = n
	}

	// 6) Set up per-run state: counters, factor, arena, scratch.
	r := newRunner(a, b, lambda, cfg, m, n)

	// 7) Rebuild factor and design from a warm start, if any.
	if err := r.warmStart(cfg.Active, cfg.State); err != nil {
		return Result{}, err
	}

	// 8) Run: initial scoring and short-circuits, then the main loop.
	start := time.Now()
	r.rep.header(m, n, lambda, cfg)
	r.init()
	r.loop()
	res := r.finish(start)
	r.rep.trailer(res)

	return res, nil
}

// runner holds the mutable state for a single pursuit execution.
type runner struct {
	op     *operator.Counter // counting view over the caller's operator
	b      []float64         // right-hand side; read-only within the run
	lambda float64
	cfg    Options
	m, n   int

	factor *qrupd.Factor // triangular factor of the active design
	arena  []float64     // m·ActMax backing store for design columns
	design [][]float64   // live column slices into arena, one per active index
	active []int         // active column indices, activation order
	state  []int8        // sign recorded at activation time; 0 = inactive
	inSet  []bool        // active-set membership, O(1) duplicate guard

	z     []float64 // column scores Aᵀr, length n
	probe []float64 // one-hot column-extraction vector, length n
	r     []float64 // current residual b − S·x, length m
	aux   []float64 // residual byproduct of the restricted solve, length m
	x     []float64 // committed coefficients, prefix xLen valid
	xNew  []float64 // solve target, committed only if well-conditioned
	xLen  int

	zmax   float64 // current λ-score: largest inactive |z[j]|
	zFresh bool    // z already reflects the current residual
	itn    int
	reason ExitReason
	trace  Trace
	rep    reporter
}

func newRunner(a operator.Operator, b []float64, lambda float64, cfg Options, m, n int) *runner {
	return &runner{
		op:     operator.Wrap(a),
		b:      b,
		lambda: lambda,
		cfg:    cfg,
		m:      m,
		n:      n,
		factor: qrupd.NewFactor(m, cfg.ActMax),
		arena:  make([]float64, m*cfg.ActMax),
		design: make([][]float64, 0, cfg.ActMax),
		active: make([]int, 0, cfg.ActMax),
		state:  make([]int8, n),
		inSet:  make([]bool, n),
		z:      make([]float64, n),
		probe:  make([]float64, n),
		r:      make([]float64, m),
		aux:    make([]float64, m),
		x:      make([]float64, cfg.ActMax),
		xNew:   make([]float64, cfg.ActMax),
		rep:    reporter{level: cfg.Level, w: cfg.Writer},
	}
}

// warmStart replays a prior active set into the factor and design so the
// loop resumes exactly where a previous run stopped. Forward products
// spent on column extraction are counted like any others.
func (r *runner) warmStart(active []int, state []int8) error {
	if state != nil {
		if len(state) != r.n {
			return fmt.Errorf("%w: state has length %d, want %d", ErrBadWarmStart, len(state), r.n)
		}
		for j, s := range state {
			if s < -1 || s > 1 {
				return fmt.Errorf("%w: state[%d]=%d outside {-1,0,+1}", ErrBadWarmStart, j, s)
			}
		}
		copy(r.state, state)
	}
	if len(active) > r.cfg.ActMax {
		return fmt.Errorf("%w: %d warm-start columns exceed ActMax=%d", ErrBadWarmStart, len(active), r.cfg.ActMax)
	}
	for _, j := range active {
		if j < 0 || j >= r.n {
			return fmt.Errorf("%w: column index %d out of range [0,%d)", ErrBadWarmStart, j, r.n)
		}
		if r.inSet[j] {
			return fmt.Errorf("%w: column %d listed twice", ErrBadWarmStart, j)
		}
		col := r.extractColumn(j)
		if err := r.factor.AddColumn(r.design, col, r.cfg.PivTol); err != nil {
			return fmt.Errorf("%w: column %d is numerically dependent on earlier warm-start columns", ErrBadWarmStart, j)
		}
		r.design = append(r.design, col)
		r.active = append(r.active, j)
		r.inSet[j] = true
	}

	return nil
}

// extractColumn applies A to a one-hot probe to obtain column j, stored
// in the next arena slot. The probe is zeroed again immediately after use.
func (r *runner) extractColumn(j int) []float64 {
	k := len(r.active)
	col := r.arena[k*r.m : (k+1)*r.m]
	r.probe[j] = 1
	r.op.MatVec(col, r.probe)
	r.probe[j] = 0

	return col
}

// init computes the initial scores z = Aᵀb and resolves the degenerate
// short-circuits that need no iterations at all.
func (r *runner) init() {
	copy(r.r, r.b)
	r.op.MatTransVec(r.z, r.b)
	r.zmax = floats.Norm(r.z, math.Inf(1))
	r.zFresh = true

	// Zero right-hand side: the zero solution is exact.
	if floats.Norm(r.b, math.Inf(1)) == 0 {
		r.reason = ReasonRHSZero

		return
	}

	// Dual feasibility already holds at zero activations. Only meaningful
	// from a cold start; a warm-started run proceeds to the loop, which
	// re-evaluates feasibility against the warm residual.
	if len(r.active) == 0 && r.zmax < r.lambda {
		r.reason = ReasonUnconstrained
	}
}

// loop is the pursuit iteration: restricted solve, rescoring, exit
// evaluation in fixed priority order, then activation and recording.
func (r *runner) loop() {
	for r.reason == ReasonUnknown {
		k := len(r.active)

		// 1) Restricted least-squares solve over the active columns.
		//    On a cold first pass (k == 0) the coefficients are empty and
		//    the residual stays b.
		if k > 0 {
			xk := r.xNew[:k]
			if err := r.factor.Solve(r.design, r.b, xk, r.aux); err != nil {
				r.reason = ReasonSingularLS

				break
			}
			// Coefficient blow-up marks the subproblem singular; the
			// trial solution is discarded, not committed.
			if floats.Norm(xk, math.Inf(1)) > coefCeiling {
				r.reason = ReasonSingularLS

				break
			}
			copy(r.x[:k], xk)
			r.xLen = k
			copy(r.r, r.aux)
			r.zFresh = false
		}

		// 2) Rescore: z = Aᵀr, reusing the initial scores while the
		//    residual is still b.
		if !r.zFresh {
			r.op.MatTransVec(r.z, r.r)
			r.zFresh = true
		}

		// 3) Select the best inactive column. Strict comparison under an
		//    ascending scan: the first index wins ties.
		p := -1
		zmax := 0.0
		for j := 0; j < r.n; j++ {
			if r.inSet[j] {
				continue
			}
			if v := math.Abs(r.z[j]); v > zmax {
				zmax = v
				p = j
			}
		}
		r.zmax = zmax

		// 4) Exit evaluation, fixed priority order, first match wins.
		switch {
		case zmax <= r.lambda:
			r.reason = ReasonLambda
		case floats.Norm(r.r, 2) <= r.cfg.OptTol:
			r.reason = ReasonOptimal
		case r.itn >= r.cfg.ItnMax:
			r.reason = ReasonTooManyItns
		case len(r.active) >= r.cfg.ActMax:
			r.reason = ReasonActMax
		}
		if r.reason != ReasonUnknown {
			break
		}

		// 5) Activation: record the sign of the winning score, extract
		//    the column, extend the factorization. A rejected column is
		//    a singularity signal, surfaced immediately.
		if r.z[p] >= 0 {
			r.state[p] = 1
		} else {
			r.state[p] = -1
		}
		col := r.extractColumn(p)
		if err := r.factor.AddColumn(r.design, col, r.cfg.PivTol); err != nil {
			r.reason = ReasonSingularLS

			break
		}
		r.design = append(r.design, col)
		r.active = append(r.active, p)
		r.inSet[p] = true
		r.itn++

		// 6) Checkpoint: the new iteration number with the solution as it
		//    stood before this activation.
		r.record()
		r.rep.line(r.itn, p, r.zmax, floats.Norm(r.r, 2), floats.Norm(r.x[:r.xLen], 1))
	}
}

// record appends one checkpoint carrying the pre-activation solution:
// the support excludes the column just activated, and the coefficients
// are the ones committed by this iteration's restricted solve.
func (r *runner) record() {
	pre := len(r.active) - 1
	r.trace = append(r.trace, Checkpoint{
		Itn:     r.itn,
		Lambda:  r.zmax,
		Support: snapshotInts(r.active[:pre]),
		Coef:    snapshotFloats(r.x[:r.xLen]),
	})
}

func snapshotInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)

	return out
}

func snapshotFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)

	return out
}

// finish appends the terminal checkpoint and assembles the Result.
// xLen trails len(active) by one exactly when the last activation's solve
// blew up, so slicing the support by xLen always pairs indices with
// committed coefficients.
func (r *runner) finish(start time.Time) Result {
	r.trace = append(r.trace, Checkpoint{
		Itn:     r.itn,
		Lambda:  r.zmax,
		Support: snapshotInts(r.active[:r.xLen]),
		Coef:    snapshotFloats(r.x[:r.xLen]),
	})

	return Result{
		Trace:           r.trace,
		Reason:          r.reason,
		Iterations:      r.itn,
		State:           r.state,
		ForwardProducts: r.op.Forward(),
		AdjointProducts: r.op.Adjoint(),
		Runtime:         time.Since(start),
	}
}
