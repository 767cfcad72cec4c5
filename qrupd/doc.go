// Package qrupd maintains an incremental upper-triangular factorization of
// the active design matrix used by the pursuit engine, supporting two
// operations: extend by one column, and solve the restricted least-squares
// problem through the current factor.
//
// Representation:
//
//   - Factor holds R, the upper-triangular Cholesky factor of SᵀS where S
//     is the current design (the active columns). R is stored packed,
//     column by column, inside an arena preallocated for the maximum
//     active-set size; a logical column count tracks how much of the arena
//     is live, so growing by one column never reallocates.
//
// Operations:
//
//   - AddColumn ("qraddcol"): given a new design column a, computes
//     u = Sᵀa, solves Rᵀc = u, and sets γ = sqrt(‖a‖² − ‖c‖²). The updated
//     factor appends the packed column [c; γ]. When γ² falls below the
//     pivot tolerance times ‖a‖², the column is numerically dependent on
//     the active set: AddColumn reports ErrSingularColumn and leaves the
//     factor untouched.
//
//   - Solve ("csne", corrected semi-normal equations): solves
//     min ‖S·x − b‖₂ through RᵀR·x = Sᵀb by one forward and one back
//     substitution, and returns the residual byproduct aux = b − S·x.
//     Solve mutates nothing in the factor, so repeated calls with the same
//     inputs yield identical results.
//
// The package has no knowledge of the pursuit logic; it is a pure
// numerical leaf. Complexity per AddColumn and per Solve is O(k² + m·k)
// for k active columns and m rows.
package qrupd
