// SPDX-License-Identifier: MIT
// Package: lvlath/builder
//
// api.go - thin public entry-points for the builder package.
//
// Design contract (strict):
//   - One orchestrator: BuildGraph(bopts, cons...). Creates an internal
//     accumulator, resolves cfg, runs cons in order, folds the result into a
//     *matrix.Sparse adjacency matrix.
//   - All public factories are declared here, implemented in impl_*.go (single place to read docs).
//   - Functional options (BuilderOption) resolve into an immutable builderConfig (no global state).
//   - Determinism: same inputs/options/seed and constructor order ⇒ identical matrices.
//   - Safety: never panic; return sentinel errors from constructors.
//
// AI-Hints (practical):
//   - Compose multiple constructors in BuildGraph to assemble complex fixtures deterministically.
//   - Use WithSeed(...) to freeze SBM's stochastic edge sampling.

package builder

import (
	"fmt"

	"github.com/arnav-sen/stagraph/matrix"
)

// Constructor applies a deterministic set of vertices/edges to g using the
// resolved builderConfig. Constructors MUST:
//   - Validate parameters early and return sentinel errors (no panics).
//   - Emit edges in a stable, documented order.
//   - Preserve determinism for the same config and call order.
//
// Rationale: isolates topology logic behind a uniform function type.
// Complexity (this type): O(1) to pass; actual cost is in the closure body.
type Constructor func(g *graph, cfg builderConfig) error

// BuildGraph resolves the builder configuration from bopts, applies all
// constructors in order against a fresh accumulator, and folds the result
// into a symmetric weighted *matrix.Sparse adjacency matrix. Any constructor
// error is wrapped with the context "BuildGraph: %w" and returned
// immediately; no partial cleanup is attempted by design.
//
// Rationale:
//   - Single public entry-point ensures consistent option resolution & error wrapping.
//   - Enforces deterministic composition order of constructors.
//
// Complexity:
//   - Resolving options: O(len(bopts)) time, O(1) space.
//   - Applying K constructors: Σ cost of each constructor; wrapper overhead O(K).
//   - Folding into CSR: O(nnz log nnz).
//
// Errors:
//   - Wraps constructor errors via %w; callers should branch with errors.Is
//     against builder sentinels (ErrTooFewVertices, ErrInvalidProbability, ...).
//   - Propagates matrix.ErrInvalidDimensions if no constructor registered a vertex.
func BuildGraph(bopts []BuilderOption, cons ...Constructor) (*matrix.Sparse, error) {
	// Fresh triplet accumulator for this call (O(1) here).
	g := newGraph()

	// Resolve deterministic builder configuration from functional options (O(len(bopts))).
	cfg := newBuilderConfig(bopts...)

	// Apply each constructor sequentially to preserve deterministic order & effects.
	for i, fn := range cons {
		// Defensive: reject a nil constructor to avoid a panic later (programmer error).
		if fn == nil {
			// Use a sentinel that communicates construction failure; keep %w for Is().
			return nil, fmt.Errorf("BuildGraph: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		// Execute the constructor. Implementations must not panic; they must return errors.
		if err := fn(g, cfg); err != nil {
			// Wrap once at the API boundary; inner layers may have already wrapped with context.
			return nil, fmt.Errorf("BuildGraph: %w", err)
		}
	}

	// Success: fold the accumulated triplets into a CSR matrix.
	sp, err := g.toSparse()
	if err != nil {
		return nil, fmt.Errorf("BuildGraph: %w", err)
	}
	return sp, nil
}

// =============================================================================
// Topology factories (declarations) - implemented in impl_*.go
// =============================================================================
//
// Each factory returns a Constructor closure. The closure MUST:
//   - Add vertices via cfg.idFn.
//   - Emit edges in a stable, documented order.
//   - Weight every edge via cfg.weightFn.
//   - Return only sentinel errors; NEVER panic at runtime.

// Cycle builds an n-vertex simple cycle C_n (n ≥ 3).
// Complexity: O(n) vertices + O(n) edges; O(1) extra space.
//func Cycle(n int) Constructor

// Complete builds the complete simple graph K_n (n ≥ 1).
// Complexity: O(n) vertices + O(n^2) edges; O(n) extra space for the ID slice.
//func Complete(n int) Constructor

// SBM builds a stochastic-block-model graph over n vertices split into k
// equal clusters, with intra-cluster edge probability p and inter-cluster
// edge probability q.
// Complexity: O(n) vertices + O(n^2) Bernoulli trials; O(1) extra space.
//func SBM(n, k int, p, q float64) Constructor
