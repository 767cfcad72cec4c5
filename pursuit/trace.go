package pursuit

import "time"

// Checkpoint is one recorded snapshot of solver progress: the iteration
// count, the λ-score at that point, and the sparse solution as parallel
// Support/Coef slices (Support holds the active column indices in
// activation order, Coef the matching least-squares coefficients).
type Checkpoint struct {
	Itn     int
	Lambda  float64
	Support []int
	Coef    []float64
}

// Dense rehydrates the sparse solution into a freshly allocated
// full-length vector over n coordinates.
func (c Checkpoint) Dense(n int) []float64 {
	x := make([]float64, n)
	for i, j := range c.Support {
		x[j] = c.Coef[i]
	}

	return x
}

// Trace is the append-only checkpoint history of a run: one record per
// completed activation plus one final record at exit, so its length is
// always the number of activations performed plus one. It is returned by
// value in Result and never mutated afterwards.
type Trace []Checkpoint

// Last returns the final checkpoint, which reflects the terminal state
// of the run. A trace always holds at least one record.
func (t Trace) Last() Checkpoint { return t[len(t)-1] }

// Result bundles the trace with the exit reason and the run's diagnostic
// counters.
type Result struct {
	// Trace is the ordered checkpoint history (length ≥ 1).
	Trace Trace

	// Reason is the resolved exit reason; never ReasonUnknown.
	Reason ExitReason

	// Iterations is the number of activations performed.
	Iterations int

	// State records, per column of A, the sign of the adjoint score at the
	// time the column was activated (+1 or −1; 0 for columns never
	// activated). Together with the terminal support it is everything a
	// warm start needs to resume the run.
	State []int8

	// ForwardProducts and AdjointProducts count applications of A and Aᵀ.
	ForwardProducts int
	AdjointProducts int

	// Runtime is the wall-clock duration of the run.
	Runtime time.Duration
}

// Solution rehydrates the terminal sparse solution over n coordinates.
func (r Result) Solution(n int) []float64 { return r.Trace.Last().Dense(n) }
