// Package asp is a sparse approximation toolkit built around an
// active-set pursuit solver for underdetermined linear systems A·x = b.
//
// 🚀 What is asp?
//
//	A small, focused library that traces the sparsity/fit trade-off curve
//	of a greedy pursuit as a regularization threshold λ is relaxed:
//		• Operator views: matrix-free forward (A·v) and adjoint (Aᵀ·v) products
//		• Incremental factorization: rank-1 column updates, no refactorization
//		• Pursuit engine: active-set selection, restricted least-squares,
//		  multi-way exit conditions, full solution trace
//
// ✨ Why choose asp?
//
//   - Matrix-free – A never has to be materialized, only applied
//   - Deterministic – fixed tie-break policy, reproducible traces
//   - Warm-startable – resume a paused pursuit from a prior active set
//   - Extensible – any gonum mat.Matrix plugs in through operator.FromMatrix
//
// Everything is organized under three subpackages:
//
//	operator/ — linear operator abstraction + gonum bridge + product counters
//	qrupd/    — incremental triangular factor of the active design (add column, solve)
//	pursuit/  — the active-set pursuit engine, options, exit reasons, trace
//
// Quick example:
//
//	a := operator.NewDense([][]float64{
//		{1, 0, 0, 0},
//		{0, 1, 0, 0},
//		{0, 0, 1, 0},
//	})
//	res, err := pursuit.Homotopy(a, []float64{3, 1, 0}, 0.5)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Reason, res.Trace.Last().Support)
package asp
