// SPDX-License-Identifier: MIT
// Package: lvlath/builder
//
// errors.go — sentinel errors for the builder package.
//
// Error policy (explicit and strict):
//   • Only sentinel variables (package-level) are exposed.
//   • Callers MUST use errors.Is(err, ErrX) to branch on semantics.
//   • Sentinels are NEVER wrapped with formatted strings at definition site.
//   • Implementations SHOULD attach context using `%w`.
//   • Algorithms MUST NOT panic at runtime; validation panics are confined to
//     option constructor functions (WithX...), per lvlath 99-rules.

package builder

import (
	"errors"
)

// ErrTooFewVertices indicates that the vertex count n is smaller than the
// allowed minimum for the requested constructor.
// Usage: if errors.Is(err, ErrTooFewVertices) { /* report invalid size */ }.
var ErrTooFewVertices = errors.New("builder: parameter too small")

// ErrEmptyVertexID indicates a constructor attempted to register a
// zero-length vertex ID. The default decimal idFn never produces one; the
// check in graph.AddVertex is a guard against an empty ID reaching the index.
// Usage: if errors.Is(err, ErrEmptyVertexID) { /* fix idFn */ }.
var ErrEmptyVertexID = errors.New("builder: vertex ID is empty")

// ErrInvalidProbability indicates that a probability value is outside the
// closed interval [0,1]. This covers SBM(p,q).
// Usage: if errors.Is(err, ErrInvalidProbability) { /* clamp or reject p */ }.
var ErrInvalidProbability = errors.New("builder: probability out of range")

// ErrNeedRandSource indicates that a stochastic constructor requires a non-nil
// *rand.Rand in the resolved builderConfig (e.g., WithSeed/WithRand must be set).
// Typical origin: SBM with 0<p<1 or 0<q<1 but no RNG.
// Usage: if errors.Is(err, ErrNeedRandSource) { /* supply seeded RNG */ }.
var ErrNeedRandSource = errors.New("builder: rng is required")

// ErrConstructFailed indicates that the builder could not construct a
// topology without breaking invariants (e.g., a nil constructor in the
// BuildGraph pipeline).
// Usage: if errors.Is(err, ErrConstructFailed) { /* fix call site */ }.
var ErrConstructFailed = errors.New("builder: construction failed")

// ErrInvalidClusterCount indicates a stochastic-block-model constructor's
// cluster count k was invalid: k < 1, or n not evenly divisible by k (every
// cluster must hold the same number of vertices).
// Usage: if errors.Is(err, ErrInvalidClusterCount) { /* fix n/k */ }.
var ErrInvalidClusterCount = errors.New("builder: invalid cluster count")

// --- Implementation Notes ----------------------------------------------------
//
// 1) Wrapping style (required):
//      return fmt.Errorf("%s: rng is required: %w", methodSBM, ErrNeedRandSource)
//    This preserves the sentinel (ErrNeedRandSource) for errors.Is while adding
//    a deterministic context prefix ("SBM: rng is required").
//
// 2) Priority (tie-break guidance when multiple validations fail):
//    • ErrTooFewVertices       — size checks first (n).
//    • ErrInvalidClusterCount  — then cluster-count/divisibility.
//    • ErrInvalidProbability   — then probability ranges.
//    • ErrNeedRandSource       — then RNG presence for stochastic builders.
//    • ErrConstructFailed      — only after all other checks pass.
//
// 3) Testing guidance:
//    Use table tests asserting errors.Is(err, ErrX). Avoid matching error strings.
