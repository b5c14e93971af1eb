// SPDX-License-Identifier: MIT
// Package: lvlath/builder
//
// impl_stochastic_block_model.go - SBM(n, k, p, q) constructor.
//
// Model (stag_lib's random.h, sbm(n, k, p, q, exact=true)):
//   - n vertices split evenly into k clusters of size n/k.
//   - Each unordered pair inside the same cluster is an edge independently
//     with probability p.
//   - Each unordered pair across two different clusters is an edge
//     independently with probability q.
//   - Undirected only (the symmetric SBM has no directed analogue here).
//
// Contract:
//   - n >= 1 (else ErrTooFewVertices).
//   - k >= 1 and n % k == 0 (else ErrInvalidClusterCount).
//   - 0 <= p,q <= 1 (else ErrInvalidProbability).
//   - cfg.rng required unless both p and q are in {0,1} (no RNG is
//     needed when every trial's outcome is already determined).
//
// Complexity:
//   - Time O(n) vertices + O(n^2) Bernoulli trials.
//   - Space O(1) extra.

package builder

import (
	"fmt"
)

const (
	methodSBM      = "SBM"
	minSBMVertices = 1
	minClusters    = 1
	probMin        = 0.0
	probMax        = 1.0
)

// SBM returns a Constructor sampling a symmetric stochastic-block-model
// graph over n vertices split into k equal clusters, with intra-cluster
// edge probability p and inter-cluster edge probability q.
func SBM(n, k int, p, q float64) Constructor {
	return func(g *graph, cfg builderConfig) error {
		if n < minSBMVertices {
			return fmt.Errorf("%s: n=%d < min=%d: %w", methodSBM, n, minSBMVertices, ErrTooFewVertices)
		}
		if k < minClusters || n%k != 0 {
			return fmt.Errorf("%s: n=%d, k=%d (require k>=1 and n%%k==0): %w", methodSBM, n, k, ErrInvalidClusterCount)
		}
		if p < probMin || p > probMax {
			return fmt.Errorf("%s: p=%.6f not in [%.1f,%.1f]: %w", methodSBM, p, probMin, probMax, ErrInvalidProbability)
		}
		if q < probMin || q > probMax {
			return fmt.Errorf("%s: q=%.6f not in [%.1f,%.1f]: %w", methodSBM, q, probMin, probMax, ErrInvalidProbability)
		}

		stochastic := (p > 0 && p < 1) || (q > 0 && q < 1)
		if cfg.rng == nil && stochastic {
			return fmt.Errorf("%s: rng is required: %w", methodSBM, ErrNeedRandSource)
		}

		for i := 0; i < n; i++ {
			if err := g.AddVertex(cfg.idFn(i)); err != nil {
				return fmt.Errorf("%s: AddVertex(%s): %w", methodSBM, cfg.idFn(i), err)
			}
		}

		rng := cfg.rng
		clusterSize := n / k
		clusterOf := func(i int) int { return i / clusterSize }

		for i := 0; i < n; i++ {
			u := cfg.idFn(i)
			for j := i + 1; j < n; j++ {
				prob := p
				if clusterOf(i) != clusterOf(j) {
					prob = q
				}

				include := false
				if rng == nil {
					include = prob == 1.0
				} else {
					include = rng.Float64() < prob
				}
				if !include {
					continue
				}

				v := cfg.idFn(j)
				w := cfg.weightFn(rng)
				if err := g.AddEdge(u, v, w); err != nil {
					return fmt.Errorf("%s: AddEdge(%s<->%s, w=%d): %w", methodSBM, u, v, w, err)
				}
			}
		}

		return nil
	}
}
