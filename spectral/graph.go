// SPDX-License-Identifier: MIT

// Package spectral - Graph: an entity owning exactly one sparse adjacency
// matrix, with five (really seven) derived matrices synthesised lazily and
// cached forever once built.
//
// Purpose:
//   - Own a symmetric, non-negative sparse adjacency matrix A.
//   - Materialise D, D⁻¹, L, |L|, L_n, |L_n|, W on first call, each guarded
//     by its own sync.Once so concurrent first-touch from a single caller
//     is safe, though the package contract (per the Design Notes) still
//     requires external synchronisation if a Graph is shared across
//     goroutines before any derived matrix has been warmed.
//   - Accept ambiguous input (adjacency OR Laplacian) and disambiguate by
//     the sign of off-diagonal entries.
//
// AI-Hints:
//   - Prefer NewGraphFromCSR/NewGraphFromSparse for programmatic construction;
//     builder.BuildGraph's *matrix.Sparse output feeds NewGraphFromSparse
//     directly.
//   - Derived-matrix accessors return (*matrix.Dense, error); the error is
//     ErrIsolatedVertex for the normalised family when a vertex has degree 0.
package spectral

import (
	"fmt"
	"math"
	"sync"

	"github.com/arnav-sen/stagraph/matrix"
)

// pruneEpsilon suppresses floating-point noise when reconstructing an
// adjacency matrix from a Laplacian, per the numerical-constants contract.
const pruneEpsilon = matrix.DefaultEpsilon

// Graph owns a symmetric non-negative sparse adjacency matrix and lazily
// synthesises its derived algebraic representations.
type Graph struct {
	adj          *matrix.Sparse
	n            int
	hasSelfLoops bool
	degree       []float64 // weighted degree per vertex (self-loop counted twice)

	onceD, onceDinv, onceL, onceSL, onceLn, onceSLn, onceW sync.Once
	mD, mDinv, mL, mSL, mLn, mSLn, mW                      *matrix.Dense
	errLn, errSLn, errW                                    error
}

// Compile-time assertion that *Graph implements LocalGraph.
var _ LocalGraph = (*Graph)(nil)

// NewGraphFromCSR builds a Graph from raw CSR arrays, disambiguating
// adjacency vs. Laplacian input.
// MAIN DESCRIPTION:
//   - Public entry point matching the sparse-matrix external boundary.
//
// Errors:
//   - ErrInvalidDimensions, ErrAsymmetricAdjacency, ErrNegativeWeight.
//
// Complexity:
//   - Time O(n^2), Space O(n^2): the symmetry check materialises a dense copy.
func NewGraphFromCSR(n int, rowStart, colIndex []int, values []float64, opts ...GraphOption) (*Graph, error) {
	sp, err := matrix.NewSparse(n, n, rowStart, colIndex, values)
	if err != nil {
		return nil, err
	}
	return NewGraphFromSparse(sp, opts...)
}

// NewGraphFromSparse builds a Graph from a pre-built sparse matrix, which may
// be either an adjacency matrix or a Laplacian. Disambiguation rule: if any
// off-diagonal entry is strictly negative, the input is treated as a
// Laplacian and the adjacency is reconstructed; otherwise it is taken as the
// adjacency matrix directly.
// MAIN DESCRIPTION:
//   - Adjacency-or-Laplacian disambiguation per the ambiguous-input contract.
//
// Implementation:
//   - Stage 1: scan for a strictly negative off-diagonal entry.
//   - Stage 2: if found, reconstruct adjacency: off-diagonal = -L[i,j],
//     diagonal = rowsum(L)[i] (full row sum including the diagonal entry);
//     prune entries with |value| <= pruneEpsilon.
//   - Stage 3: validate symmetry and non-negativity of the resulting adjacency.
//   - Stage 4: compute the weighted-degree vector and the has_self_loops flag.
//
// Errors:
//   - ErrInvalidDimensions: non-square input.
//   - ErrAsymmetricAdjacency: reconstructed/given adjacency is not symmetric.
//   - ErrNegativeWeight: a negative entry survives in the adjacency matrix.
//
// Complexity:
//   - Time O(n^2), Space O(n^2): the symmetry check materialises a dense copy.
func NewGraphFromSparse(m *matrix.Sparse, opts ...GraphOption) (*Graph, error) {
	if m == nil {
		return nil, matrix.ErrNilMatrix
	}
	if m.Rows() != m.Cols() {
		return nil, ErrInvalidDimensions
	}
	n := m.Rows()
	cfg := resolveGraphConfig(opts)

	adj, err := adjacencyFromAdjOrLap(m, n, cfg.epsilon)
	if err != nil {
		return nil, err
	}

	sym, err := adj.IsSymmetric(cfg.epsilon)
	if err != nil {
		return nil, err
	}
	if !sym {
		return nil, ErrAsymmetricAdjacency
	}

	hasLoops := false
	degree := make([]float64, n)
	for i := 0; i < n; i++ {
		var diag float64
		var negative bool
		if verr := adj.VisitRow(i, func(col int, v float64) {
			if v < -cfg.epsilon {
				negative = true
			}
			degree[i] += v
			if col == i {
				diag = v
			}
		}); verr != nil {
			return nil, verr
		}
		if negative {
			return nil, ErrNegativeWeight
		}
		if diag != 0 {
			hasLoops = true
			degree[i] += diag // self-loop contributes twice to degree
		}
	}

	return &Graph{adj: adj, n: n, hasSelfLoops: hasLoops, degree: degree}, nil
}

// adjacencyFromAdjOrLap implements the disambiguation rule.
func adjacencyFromAdjOrLap(m *matrix.Sparse, n int, eps float64) (*matrix.Sparse, error) {
	foundNegative := false
	for i := 0; i < n && !foundNegative; i++ {
		if err := m.VisitRow(i, func(col int, v float64) {
			if col != i && v < 0 {
				foundNegative = true
			}
		}); err != nil {
			return nil, err
		}
	}
	if !foundNegative {
		return m, nil
	}

	// Treat m as a Laplacian L. Off-diagonal(A) = -L[i,j]; diagonal(A) =
	// rowsum(L)[i] (the self-loop weight identity derived from L = D - A
	// with D's self-loop convention of counting twice).
	rowIdx := make([]int, 0, m.NNZ())
	colIdx := make([]int, 0, m.NNZ())
	vals := make([]float64, 0, m.NNZ())
	type offdiagEntry struct {
		col int
		val float64
	}
	for i := 0; i < n; i++ {
		var rowsum float64
		var offdiag []offdiagEntry
		if err := m.VisitRow(i, func(col int, v float64) {
			rowsum += v
			if col != i {
				offdiag = append(offdiag, offdiagEntry{col: col, val: -v})
			}
		}); err != nil {
			return nil, err
		}
		for _, e := range offdiag {
			if math.Abs(e.val) > eps {
				rowIdx = append(rowIdx, i)
				colIdx = append(colIdx, e.col)
				vals = append(vals, e.val)
			}
		}
		if math.Abs(rowsum) > eps {
			rowIdx = append(rowIdx, i)
			colIdx = append(colIdx, i)
			vals = append(vals, rowsum)
		}
	}

	return matrix.SparseFromTriplets(n, n, rowIdx, colIdx, vals)
}

// NumberOfVertices returns n. Complexity: O(1).
func (g *Graph) NumberOfVertices() int { return g.n }

// NumberOfEdges returns the edge count: non-zeros in A divided by two,
// adjusted so each self-loop counts as one edge.
// Complexity: O(nnz).
func (g *Graph) NumberOfEdges() int {
	nnz := g.adj.NNZ()
	loops := 0
	for i := 0; i < g.n; i++ {
		_ = g.adj.VisitRow(i, func(col int, v float64) {
			if col == i && v != 0 {
				loops++
			}
		})
	}
	return (nnz-loops)/2 + loops
}

// HasSelfLoops reports whether any diagonal entry of A is nonzero.
// Complexity: O(1).
func (g *Graph) HasSelfLoops() bool { return g.hasSelfLoops }

// Adjacency returns the sparse adjacency matrix. Complexity: O(1).
func (g *Graph) Adjacency() *matrix.Sparse { return g.adj }

// TotalVolume returns the sum of diagonal entries of D. Complexity: O(n).
func (g *Graph) TotalVolume() float64 {
	var sum float64
	for _, d := range g.degree {
		sum += d
	}
	return sum
}

// AverageDegree returns TotalVolume() / n. Complexity: O(n).
func (g *Graph) AverageDegree() float64 {
	if g.n == 0 {
		return 0
	}
	return g.TotalVolume() / float64(g.n)
}

// DegreeMatrix returns the diagonal weighted-degree matrix D, cached after
// first call. Complexity: O(n) on first call, O(1) thereafter.
func (g *Graph) DegreeMatrix() (*matrix.Dense, error) {
	var err error
	g.onceD.Do(func() {
		g.mD, err = diagFromVector(g.degree)
	})
	return g.mD, err
}

// InverseDegreeMatrix returns D⁻¹, with 1/0 treated as 0 for isolated
// vertices (consumers requiring strict rejection should check Degree
// directly; D⁻¹ itself never fails). Complexity: O(n) / O(1).
func (g *Graph) InverseDegreeMatrix() (*matrix.Dense, error) {
	var err error
	g.onceDinv.Do(func() {
		inv := make([]float64, g.n)
		for i, d := range g.degree {
			if d != 0 {
				inv[i] = 1 / d
			}
		}
		g.mDinv, err = diagFromVector(inv)
	})
	return g.mDinv, err
}

// Laplacian returns L = D - A, cached after first call.
// Complexity: O(n^2) on first call (dense materialisation), O(1) thereafter.
func (g *Graph) Laplacian() (*matrix.Dense, error) {
	var err error
	g.onceL.Do(func() {
		g.mL, err = g.buildCombinatorial(-1)
	})
	return g.mL, err
}

// SignlessLaplacian returns |L| = D + A, cached after first call.
// Complexity: O(n^2) / O(1).
func (g *Graph) SignlessLaplacian() (*matrix.Dense, error) {
	var err error
	g.onceSL.Do(func() {
		g.mSL, err = g.buildCombinatorial(1)
	})
	return g.mSL, err
}

// buildCombinatorial constructs D + sign*A as a Dense matrix (sign=-1 gives
// D-A=L, sign=+1 gives D+A=|L|).
func (g *Graph) buildCombinatorial(sign float64) (*matrix.Dense, error) {
	dense, err := g.adj.ToDense()
	if err != nil {
		return nil, err
	}
	out, err := matrix.NewDense(g.n, g.n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < g.n; i++ {
		for j := 0; j < g.n; j++ {
			a, _ := dense.At(i, j)
			v := sign * a
			if i == j {
				v += g.degree[i]
			}
			if err := out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// NormalisedLaplacian returns L_n = I - D^(-1/2) A D^(-1/2), cached after
// first call. Returns ErrIsolatedVertex if any vertex has degree 0.
// Complexity: O(n^2) / O(1).
func (g *Graph) NormalisedLaplacian() (*matrix.Dense, error) {
	g.onceLn.Do(func() {
		g.mLn, g.errLn = g.buildNormalised(-1)
	})
	return g.mLn, g.errLn
}

// NormalisedSignlessLaplacian returns |L_n| = I + D^(-1/2) A D^(-1/2).
// Complexity: O(n^2) / O(1).
func (g *Graph) NormalisedSignlessLaplacian() (*matrix.Dense, error) {
	g.onceSLn.Do(func() {
		g.mSLn, g.errSLn = g.buildNormalised(1)
	})
	return g.mSLn, g.errSLn
}

func (g *Graph) buildNormalised(sign float64) (*matrix.Dense, error) {
	invSqrt := make([]float64, g.n)
	for i, d := range g.degree {
		if d == 0 {
			return nil, fmt.Errorf("spectral: vertex %d: %w", i, ErrIsolatedVertex)
		}
		invSqrt[i] = 1 / math.Sqrt(d)
	}
	dense, err := g.adj.ToDense()
	if err != nil {
		return nil, err
	}
	out, err := matrix.NewDense(g.n, g.n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < g.n; i++ {
		for j := 0; j < g.n; j++ {
			a, _ := dense.At(i, j)
			v := sign * invSqrt[i] * a * invSqrt[j]
			if i == j {
				v += 1
			}
			if err := out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// LazyRandomWalkMatrix returns W = 1/2 (I + A D⁻¹). Complexity: O(n^2) / O(1).
func (g *Graph) LazyRandomWalkMatrix() (*matrix.Dense, error) {
	g.onceW.Do(func() {
		dense, err := g.adj.ToDense()
		if err != nil {
			g.errW = err
			return
		}
		out, err := matrix.NewDense(g.n, g.n)
		if err != nil {
			g.errW = err
			return
		}
		for i := 0; i < g.n; i++ {
			for j := 0; j < g.n; j++ {
				a, _ := dense.At(i, j)
				var invDj float64
				if g.degree[j] != 0 {
					invDj = 1 / g.degree[j]
				}
				v := 0.5 * a * invDj
				if i == j {
					v += 0.5
				}
				if err := out.Set(i, j, v); err != nil {
					g.errW = err
					return
				}
			}
		}
		g.mW = out
	})
	return g.mW, g.errW
}

func diagFromVector(v []float64) (*matrix.Dense, error) {
	n := len(v)
	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i, val := range v {
		if err := d.Set(i, i, val); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// VertexExists reports whether v is in [0, n). Complexity: O(1).
func (g *Graph) VertexExists(v int) bool { return v >= 0 && v < g.n }

// Degree returns the weighted degree of v. Complexity: O(1).
func (g *Graph) Degree(v int) (float64, error) {
	if !g.VertexExists(v) {
		return 0, ErrVertexOutOfRange
	}
	return g.degree[v], nil
}

// DegreeUnweighted returns the number of distinct incident edges of v
// (self-loop counted once), ignoring weight. Complexity: O(d) where d is
// v's row nonzero count.
func (g *Graph) DegreeUnweighted(v int) (int, error) {
	if !g.VertexExists(v) {
		return 0, ErrVertexOutOfRange
	}
	count := 0
	if err := g.adj.VisitRow(v, func(col int, val float64) {
		if val != 0 {
			count++
		}
	}); err != nil {
		return 0, err
	}
	return count, nil
}

// WeightedEdge is a local neighbor edge {v, u, w} as returned by Neighbors.
type WeightedEdge struct {
	To     int
	Weight float64
}

// Neighbors returns edges {v, u, w} excluding the self-loop entry.
// Complexity: O(d).
func (g *Graph) Neighbors(v int) ([]WeightedEdge, error) {
	if !g.VertexExists(v) {
		return nil, ErrVertexOutOfRange
	}
	var out []WeightedEdge
	if err := g.adj.VisitRow(v, func(col int, val float64) {
		if col != v && val != 0 {
			out = append(out, WeightedEdge{To: col, Weight: val})
		}
	}); err != nil {
		return nil, err
	}
	return out, nil
}

// NeighborsUnweighted returns neighbor vertex indices excluding v itself.
// Complexity: O(d).
func (g *Graph) NeighborsUnweighted(v int) ([]int, error) {
	edges, err := g.Neighbors(v)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(edges))
	for i, e := range edges {
		out[i] = e.To
	}
	return out, nil
}

// DegreesBatch returns Degree(v) for every v in vs, in order.
// Complexity: O(len(vs)).
func (g *Graph) DegreesBatch(vs []int) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		d, err := g.Degree(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Subgraph returns a new Graph on the induced vertex set. Duplicates in
// vertexList are ignored; vertex ids are remapped to a dense [0, m) range in
// first-occurrence order.
// Complexity: O(m^2) for the induced dense adjacency scan.
func (g *Graph) Subgraph(vertexList []int) (*Graph, error) {
	seen := make(map[int]int, len(vertexList))
	var order []int
	for _, v := range vertexList {
		if !g.VertexExists(v) {
			return nil, ErrVertexOutOfRange
		}
		if _, ok := seen[v]; !ok {
			seen[v] = len(order)
			order = append(order, v)
		}
	}
	m := len(order)
	var rowIdx, colIdx []int
	var vals []float64
	for newI, oldI := range order {
		if err := g.adj.VisitRow(oldI, func(col int, val float64) {
			if newJ, ok := seen[col]; ok && val != 0 {
				rowIdx = append(rowIdx, newI)
				colIdx = append(colIdx, newJ)
				vals = append(vals, val)
			}
		}); err != nil {
			return nil, err
		}
	}
	if m == 0 {
		return nil, ErrInvalidDimensions
	}
	sp, err := matrix.SparseFromTriplets(m, m, rowIdx, colIdx, vals)
	if err != nil {
		return nil, err
	}
	return NewGraphFromSparse(sp)
}

// DisjointUnion returns a new Graph on n+n' vertices with block-diagonal
// adjacency (other's vertices offset by g.n).
// Complexity: O(nnz(g) + nnz(other)).
func (g *Graph) DisjointUnion(other *Graph) (*Graph, error) {
	if other == nil {
		return nil, matrix.ErrNilMatrix
	}
	total := g.n + other.n
	var rowIdx, colIdx []int
	var vals []float64
	for i := 0; i < g.n; i++ {
		if err := g.adj.VisitRow(i, func(col int, val float64) {
			if val != 0 {
				rowIdx = append(rowIdx, i)
				colIdx = append(colIdx, col)
				vals = append(vals, val)
			}
		}); err != nil {
			return nil, err
		}
	}
	for i := 0; i < other.n; i++ {
		if err := other.adj.VisitRow(i, func(col int, val float64) {
			if val != 0 {
				rowIdx = append(rowIdx, g.n+i)
				colIdx = append(colIdx, g.n+col)
				vals = append(vals, val)
			}
		}); err != nil {
			return nil, err
		}
	}
	sp, err := matrix.SparseFromTriplets(total, total, rowIdx, colIdx, vals)
	if err != nil {
		return nil, err
	}
	return NewGraphFromSparse(sp)
}
