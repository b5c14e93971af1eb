// SPDX-License-Identifier: MIT
// Package: lvlath/builder
//
// impl_config.go — internal configuration and deterministic defaults.
//
// Design:
//   • builderConfig is the single source of truth for all builder knobs.
//   • Defaults are deterministic and documented; no globals.
//   • newBuilderConfig applies options in-order (later overrides earlier).
//
// Deterministic defaults (no surprises):
//   • idFn        = decimalID          ("0","1","2",...)
//   • rng         = nil                 (pure/deterministic unless seeded)
//   • weightFn    = constant defaultConstWeight (same value as DefaultWeightFn)
//
// AI-Hints:
//   • Set WithSeed for reproducible SBM fixtures.
//   • weightFn is always consulted; every edge lands in the output matrix
//     with a real weight (the spectral domain has no unweighted mode).

package builder

import (
	"math/rand" // RNG for stochastic builders
	"strconv"   // decimal vertex IDs ("0","1",...)
)

// builderConfig aggregates all knobs used by constructors.
// It is passed by VALUE to constructors (immutable to callers).
type builderConfig struct {
	// Vertex ID strategy: index -> ID (deterministic).
	idFn func(int) string
	// RNG for stochastic choices; nil means “no randomness”.
	rng *rand.Rand
	// Weight generator for edges; consulted for every emitted edge.
	weightFn func(*rand.Rand) int64
}

// defaultConstWeight is the constant weight assigned when no custom
// WeightFn is configured.
const defaultConstWeight = int64(1)

// newBuilderConfig constructs a config with deterministic defaults and applies
// all options in order.
// Complexity: O(len(opts)) time, O(1) space.
func newBuilderConfig(opts ...BuilderOption) builderConfig {
	// Start with strict, deterministic defaults.
	cfg := builderConfig{
		idFn:     decimalID,                                            // "0","1","2",...
		rng:      nil,                                                  // no RNG unless explicitly set
		weightFn: func(*rand.Rand) int64 { return defaultConstWeight }, // constant weight
	}

	// Apply options in the given order; last-wins semantics.
	for _, opt := range opts {
		opt(&cfg)
	}

	// Return by value to encourage immutability for callers.
	return cfg
}

// decimalID renders an index as a base-10 string ("0","1","2",...).
// Deterministic and allocation-light; suitable for golden tests.
func decimalID(i int) string {
	return strconv.Itoa(i)
}
