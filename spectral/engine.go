// SPDX-License-Identifier: MIT

// Package spectral - Spectrum Engine: partial eigensystem solver over a
// chosen algebraic representation of a Graph.
//
// Purpose:
//   - Select one of the Graph's six materialised matrices.
//   - Delegate to an external iterative sparse eigensolver (here,
//     gonum.org/v1/gonum/mat.EigenSym over a dense materialisation) for the
//     k smallest or largest-magnitude eigenpairs.
//   - Provide the two elementary numerical primitives (Rayleigh quotient,
//     power method) the engine is built from.
//
// AI-Hints:
//   - gonum's EigenSym always factorises the full spectrum; ComputeEigensystem
//     slices out the requested k after sorting, which is the dense-operator
//     equivalent of the spec's partial-solver contract for the sizes this
//     toolkit targets (a genuinely sparse-native partial solver would avoid
//     the full factorisation, but gonum exposes no such primitive for
//     mat.Symmetric inputs).
package spectral

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/arnav-sen/stagraph/matrix"
)

// MatrixSelector names which algebraic representation to use.
type MatrixSelector int

const (
	Adjacency MatrixSelector = iota
	Laplacian
	NormalisedLaplacian
	SignlessLaplacian
	NormalisedSignlessLaplacian
	LazyRandomWalk
)

// SortRule selects the k eigenpairs with smallest algebraic value, or
// largest absolute value.
type SortRule int

const (
	Smallest SortRule = iota
	Largest
)

// selectMatrix materialises the chosen representation as a *matrix.Dense.
func selectMatrix(g *Graph, sel MatrixSelector) (*matrix.Dense, error) {
	switch sel {
	case Adjacency:
		return g.adj.ToDense()
	case Laplacian:
		return g.Laplacian()
	case NormalisedLaplacian:
		return g.NormalisedLaplacian()
	case SignlessLaplacian:
		return g.SignlessLaplacian()
	case NormalisedSignlessLaplacian:
		return g.NormalisedSignlessLaplacian()
	case LazyRandomWalk:
		return g.LazyRandomWalkMatrix()
	default:
		return nil, fmt.Errorf("spectral: unknown matrix selector %d: %w", sel, ErrInvalidK)
	}
}

// denseToSym converts a *matrix.Dense into a gonum *mat.SymDense, assuming
// (and not re-checking) symmetry.
func denseToSym(d *matrix.Dense) *mat.SymDense {
	n := d.Rows()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v, _ := d.At(i, j)
			data[i*n+j] = v
		}
	}
	return mat.NewSymDense(n, data)
}

// eigenpair bundles one eigenvalue with its eigenvector for sorting.
type eigenpair struct {
	value  float64
	vector []float64
}

// ComputeEigensystem returns the k eigenpairs of the chosen representation
// of graph, selected per sortRule.
// MAIN DESCRIPTION:
//   - Full factorisation via gonum's EigenSym, then slice/sort to the
//     requested k and ordering.
//
// Inputs:
//   - k: 1 <= k <= n-1.
//
// Returns:
//   - eigenvalues []float64 (length k), eigenvectors *matrix.Dense (n x k,
//     columns are eigenvectors).
//
// Errors:
//   - ErrInvalidK: k out of range.
//   - ErrEigenNonConvergence: gonum's Factorize failed.
//
// Output guarantee:
//   - Smallest: ascending eigenvalues.
//   - Largest: descending by |value|.
//
// Complexity:
//   - Time O(n^3) (dense symmetric eigendecomposition), Space O(n^2).
func ComputeEigensystem(g *Graph, sel MatrixSelector, k int, rule SortRule) ([]float64, *matrix.Dense, error) {
	if g == nil {
		return nil, nil, matrix.ErrGraphNil
	}
	n := g.NumberOfVertices()
	if k < 1 || k > n-1 {
		return nil, nil, ErrInvalidK
	}

	m, err := selectMatrix(g, sel)
	if err != nil {
		return nil, nil, err
	}

	sym := denseToSym(m)
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, ErrEigenNonConvergence
	}

	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	pairs := make([]eigenpair, n)
	for i := 0; i < n; i++ {
		col := make([]float64, n)
		for r := 0; r < n; r++ {
			col[r] = vectors.At(r, i)
		}
		pairs[i] = eigenpair{value: values[i], vector: col}
	}

	switch rule {
	case Smallest:
		sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].value < pairs[j].value })
	case Largest:
		sort.SliceStable(pairs, func(i, j int) bool { return math.Abs(pairs[i].value) > math.Abs(pairs[j].value) })
	default:
		return nil, nil, fmt.Errorf("spectral: unknown sort rule %d: %w", rule, ErrInvalidK)
	}

	outVals := make([]float64, k)
	outVecs, err := matrix.NewDense(n, k)
	if err != nil {
		return nil, nil, err
	}
	for i := 0; i < k; i++ {
		outVals[i] = pairs[i].value
		for r := 0; r < n; r++ {
			if err := outVecs.Set(r, i, pairs[i].vector[r]); err != nil {
				return nil, nil, err
			}
		}
	}

	return outVals, outVecs, nil
}

// ComputeEigenvalues is ComputeEigensystem without the eigenvectors.
// Complexity: same as ComputeEigensystem (no asymptotic savings with a dense
// backend; both require the full factorisation).
func ComputeEigenvalues(g *Graph, sel MatrixSelector, k int, rule SortRule) ([]float64, error) {
	vals, _, err := ComputeEigensystem(g, sel, k, rule)
	return vals, err
}

// RayleighQuotient returns x^T M x / x^T x.
// MAIN DESCRIPTION:
//   - Elementary numerical primitive used to bound eigenvalues (Rayleigh
//     monotonicity): lambda_min(M) <= R(M,x) <= lambda_max(M) for symmetric M.
//
// Errors:
//   - ErrDimensionMismatch: len(x) != M.Rows().
//   - ErrZeroVector: x is the zero vector.
//
// Complexity:
//   - Time O(n^2), Space O(n).
func RayleighQuotient(m *matrix.Dense, x []float64) (float64, error) {
	if m == nil {
		return 0, matrix.ErrNilMatrix
	}
	n := m.Rows()
	if len(x) != n {
		return 0, ErrDimensionMismatch
	}
	var normSq float64
	for _, v := range x {
		normSq += v * v
	}
	if normSq == 0 {
		return 0, ErrZeroVector
	}

	mx, err := m.MulVec(x)
	if err != nil {
		return 0, err
	}

	var numerator float64
	for i := 0; i < n; i++ {
		numerator += x[i] * mx[i]
	}

	return numerator / normSq, nil
}

// defaultPowerMethodIterations is the chosen default for PowerMethod's
// unspecified-iterations overload (see SPEC_FULL.md §4.B for the rationale).
const defaultPowerMethodIterations = 256

// PowerMethod runs `iterations` iterations of x <- M x / ||M x||, returning
// the resulting unit vector. With zero iterations, initial is returned
// unchanged (copied). If initial is nil, a uniform vector (all-ones,
// normalised) is used as the deterministic default starting point.
// MAIN DESCRIPTION:
//   - Dominant-eigenvector estimator via the classic power iteration.
//
// Errors:
//   - ErrNegativeIterations: iterations < 0.
//   - ErrDimensionMismatch: len(initial) != M.Rows().
//
// Complexity:
//   - Time O(iterations * n^2), Space O(n).
func PowerMethod(m *matrix.Dense, iterations int, initial []float64) ([]float64, error) {
	if m == nil {
		return nil, matrix.ErrNilMatrix
	}
	if iterations < 0 {
		return nil, ErrNegativeIterations
	}
	n := m.Rows()

	x := make([]float64, n)
	if initial == nil {
		for i := range x {
			x[i] = 1
		}
		normalize(x)
	} else {
		if len(initial) != n {
			return nil, ErrDimensionMismatch
		}
		copy(x, initial)
	}

	for it := 0; it < iterations; it++ {
		next, err := m.MulVec(x)
		if err != nil {
			return nil, err
		}
		if normalize(next) == 0 {
			// M x == 0: no dominant direction to follow; keep x as-is.
			break
		}
		x = next
	}

	return x, nil
}

// PowerMethodDefault runs PowerMethod with the package default iteration
// count, mirroring the source's no-iterations overload.
func PowerMethodDefault(m *matrix.Dense, initial []float64) ([]float64, error) {
	return PowerMethod(m, defaultPowerMethodIterations, initial)
}

// normalize scales v in-place to unit L2 norm, returning the pre-scale norm.
func normalize(v []float64) float64 {
	var sumSq float64
	for _, e := range v {
		sumSq += e * e
	}
	norm := math.Sqrt(sumSq)
	if norm == 0 {
		return 0
	}
	for i := range v {
		v[i] /= norm
	}
	return norm
}
