// SPDX-License-Identifier: MIT
// Package: lvlath/builder
//
// graph.go — the triplet accumulator every Constructor writes into.
//
// Unlike a general-purpose graph container, this type exists for exactly one
// purpose: collect a symmetric, non-negative weighted edge set and hand it to
// matrix.SparseFromTriplets. There is no directed mode and no multigraph
// rejection: every edge is mirrored into both (i,j) and (j,i) on insertion
// (loops excepted), and a repeated pair between the same two vertices simply
// adds to the stored weight, since SparseFromTriplets sums duplicate entries
// by construction. That is the correct merge rule for this domain - a
// "parallel edge" and a heavier single edge are indistinguishable once they
// reach a spectral adjacency matrix.
package builder

import (
	"github.com/arnav-sen/stagraph/matrix"
)

// graph accumulates vertices (in first-insertion order, which fixes the
// resulting matrix's row/column indices) and the triplets describing their
// weighted connections.
type graph struct {
	index  map[string]int
	order  []string
	rowIdx []int
	colIdx []int
	vals   []float64
}

func newGraph() *graph {
	return &graph{index: make(map[string]int)}
}

// AddVertex registers id if missing, assigning it the next row/column index
// in first-insertion order. Idempotent.
// Complexity: O(1) amortized.
func (g *graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	if _, ok := g.index[id]; ok {
		return nil
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
	return nil
}

// AddEdge records a symmetric weighted edge u-v, auto-registering both
// endpoints. A self-loop (u==v) is stored once, on the diagonal.
// Complexity: O(1) amortized.
func (g *graph) AddEdge(u, v string, w int64) error {
	if err := g.AddVertex(u); err != nil {
		return err
	}
	if err := g.AddVertex(v); err != nil {
		return err
	}
	i, j := g.index[u], g.index[v]
	fw := float64(w)
	g.rowIdx = append(g.rowIdx, i)
	g.colIdx = append(g.colIdx, j)
	g.vals = append(g.vals, fw)
	if i != j {
		g.rowIdx = append(g.rowIdx, j)
		g.colIdx = append(g.colIdx, i)
		g.vals = append(g.vals, fw)
	}
	return nil
}

// n returns the number of distinct vertices registered so far.
func (g *graph) n() int { return len(g.order) }

// toSparse folds the accumulated triplets into a CSR adjacency matrix sized
// to the registered vertex count. Duplicate (row,col) triplets - from a
// repeated pair, including a repeated self-loop - are summed by
// SparseFromTriplets.
// Complexity: O(nnz log nnz).
func (g *graph) toSparse() (*matrix.Sparse, error) {
	return matrix.SparseFromTriplets(g.n(), g.n(), g.rowIdx, g.colIdx, g.vals)
}
