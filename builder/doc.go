// Package builder provides a small set of functional-options-style graph
// constructors used to assemble deterministic fixtures for the rest of this
// module's algorithms (KDE samplers, spectral diagnostics).
//
// The package offers the following key components:
//
//   - Configuration primitives:
//     – BuilderOption:     a function that mutates builderConfig before use.
//     – builderConfig:     holds RNG and weight function.
//   - Topology constructors (Constructor):
//     – Cycle(n):           simple ring C_n.
//     – Complete(n):        complete graph K_n.
//     – SBM(n,k,p,q):       stochastic block model with k equal clusters.
//   - Edge-weight distributions (WeightFn implementations):
//     – DefaultWeightFn:   constant weight DefaultEdgeWeight.
//     – ConstantWeightFn:  fixed user-provided value.
//     – UniformWeightFn:   uniform ∼U[min,max].
//     – NormalWeightFn:    Gaussian ∼N(mean,stddev), clipped.
//     – ExponentialWeightFn: exponential ∼Exp(rate).
//
// Guarantees:
//
//   - Idempotent vertex registration: re-running the same builder on g will not
//     duplicate vertices; repeated edges between the same pair add their weights.
//   - Fast‐fail on invalid option parameters via panics in option‐constructors.
//   - Sentinel errors for invalid build parameters (size, probability, cluster count,
//     missing RNG), checkable via errors.Is.
//   - Documented algorithmic complexity (O(n), O(n²), O(V+E)) per constructor.
//
// See individual function documentation for detailed contracts, panic conditions,
// parameter descriptions, and performance notes.
package builder
