// Package operator defines the linear operator abstraction consumed by the
// pursuit engine: anything that can apply A and Aᵀ to a dense vector,
// without ever materializing A.
//
// Overview:
//
//   - Operator is the minimal product interface: Dims, MatVec (forward,
//     dst = A·src) and MatTransVec (adjoint, dst = Aᵀ·src).
//   - Dense is a plain row-major implementation for callers holding
//     [][]float64 data.
//   - FromMatrix bridges any gonum mat.Matrix (dense, banded, symmetric, …)
//     into an Operator, so the ecosystem's standard matrix types plug in
//     directly.
//   - Counter wraps an Operator and counts forward/adjoint applications;
//     the pursuit engine uses it to report product counts per run.
//
// When to use:
//
//   - Implement Operator yourself when A is structured (FFT, convolution,
//     subsampled transform) and a matrix-vector product is cheap but the
//     matrix itself is enormous or implicit.
//   - Use Dense or FromMatrix for explicit matrices.
//
// Conventions:
//
//   - MatVec requires len(src) == cols and len(dst) == rows.
//   - MatTransVec requires len(src) == rows and len(dst) == cols.
//   - Implementations must not retain dst or src, and must overwrite dst
//     entirely. Length mismatches are programmer errors and panic.
package operator
