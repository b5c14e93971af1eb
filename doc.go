// Package stagraph is a spectral toolkit for the analysis of massive graphs.
//
// It centers on two numerical subsystems:
//
//   - kde      — the CKNS sublinear-time Gaussian kernel density estimator:
//     a multi-level locality-sensitive-hashing lattice with adaptive
//     bucket-vs-brute-force strategy and median-of-medians variance
//     reduction, plus an exact reference estimator for small inputs.
//   - spectral — a uniform interface over a weighted undirected graph's
//     algebraic representations (adjacency, combinatorial/normalised/
//     signless Laplacian, lazy random walk) with on-demand matrix
//     synthesis and a partial eigensystem solver.
//
// Supporting packages:
//
//	matrix/     — Dense and Sparse (CSR) matrix storage shared by spectral and kde
//	builder/    — deterministic graph fixture generators (topologies, random graphs, SBM),
//	              emitting a *matrix.Sparse adjacency matrix directly
//	localgraph/ — file-backed adjacency-list reader sharing spectral's local-query capability
//
// Data flow: external code constructs a spectral.Graph from CSR arrays or a
// matrix.Sparse (built directly, or via builder.BuildGraph); the Spectrum
// Engine asks the Graph for a chosen matrix representation and delegates to
// an external eigensolver; the KDE consumes a dense matrix of points
// independently of the graph packages and returns one density estimate per
// query.
package stagraph
