// SPDX-License-Identifier: MIT
// Package spectral: sentinel error set, grouped by kind per the error-handling
// design: invalid-argument, domain, compute. All algorithms return these
// sentinels (optionally wrapped with fmt.Errorf("%w")); tests match via
// errors.Is. No panics on caller-triggered error conditions.
package spectral

import "errors"

var (
	// --- invalid-argument ---

	// ErrInvalidK indicates k is outside the valid range [1, n-1] for an
	// n x n eigensystem, or k <= 0.
	ErrInvalidK = errors.New("spectral: k must satisfy 1 <= k <= n-1")

	// ErrDimensionMismatch indicates an operand's dimension does not match
	// the expected matrix/vector shape.
	ErrDimensionMismatch = errors.New("spectral: dimension mismatch")

	// ErrZeroVector indicates rayleigh_quotient was called with x == 0.
	ErrZeroVector = errors.New("spectral: zero vector")

	// ErrNegativeIterations indicates power_method was called with
	// iterations < 0.
	ErrNegativeIterations = errors.New("spectral: iterations must be >= 0")

	// ErrVertexOutOfRange indicates a vertex index outside [0, n).
	ErrVertexOutOfRange = errors.New("spectral: vertex index out of range")

	// ErrIsolatedVertex indicates a vertex of degree zero was encountered
	// while building a normalised (signless) Laplacian, where 1/sqrt(0) is
	// undefined. LazyRandomWalkMatrix does not return it: it treats 1/0 as 0.
	ErrIsolatedVertex = errors.New("spectral: isolated vertex has no normalised representation")

	// ErrInvalidDimensions indicates a non-positive or mismatched shape was
	// supplied to a constructor.
	ErrInvalidDimensions = errors.New("spectral: invalid dimensions")

	// --- domain ---

	// ErrAsymmetricAdjacency indicates the reconstructed adjacency matrix is
	// not symmetric within the pruning epsilon.
	ErrAsymmetricAdjacency = errors.New("spectral: adjacency matrix is not symmetric")

	// ErrNegativeWeight indicates a negative entry remained in the
	// reconstructed adjacency matrix (non-negative weights are mandatory).
	ErrNegativeWeight = errors.New("spectral: adjacency entries must be non-negative")

	// --- compute ---

	// ErrEigenNonConvergence surfaces an eigensolver failure to converge,
	// unchanged from the backend per the propagation policy.
	ErrEigenNonConvergence = errors.New("spectral: eigensolver did not converge")
)
