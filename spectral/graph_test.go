// SPDX-License-Identifier: MIT
package spectral_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav-sen/stagraph/builder"
	"github.com/arnav-sen/stagraph/matrix"
	"github.com/arnav-sen/stagraph/spectral"
)

// weightedFixture builds a *matrix.Sparse via cons (the default weightFn
// emits DefaultEdgeWeight on every edge), then bridges it into a
// spectral.Graph.
func weightedFixture(t *testing.T, cons builder.Constructor) *spectral.Graph {
	t.Helper()
	sp, err := builder.BuildGraph(nil, cons)
	require.NoError(t, err)
	sg, err := spectral.NewGraphFromSparse(sp)
	require.NoError(t, err)
	return sg
}

func TestNewGraphFromSparse_Cycle(t *testing.T) {
	sg := weightedFixture(t, builder.Cycle(20))
	assert.Equal(t, 20, sg.NumberOfVertices())
	assert.Equal(t, 20, sg.NumberOfEdges())
	assert.False(t, sg.HasSelfLoops())
	for v := 0; v < 20; v++ {
		d, err := sg.Degree(v)
		require.NoError(t, err)
		assert.Equal(t, 2.0, d)
	}
}

func TestNewGraphFromSparse_Complete(t *testing.T) {
	sg := weightedFixture(t, builder.Complete(10))
	assert.Equal(t, 10, sg.NumberOfVertices())
	assert.Equal(t, 45, sg.NumberOfEdges())
}

func TestEigensystem_K10_NormalisedLaplacian_SmallestFour(t *testing.T) {
	sg := weightedFixture(t, builder.Complete(10))
	vals, vecs, err := spectral.ComputeEigensystem(sg, spectral.NormalisedLaplacian, 4, spectral.Smallest)
	require.NoError(t, err)
	require.Len(t, vals, 4)
	// K_n's normalised Laplacian spectrum is {0} once and {n/(n-1)} with
	// multiplicity n-1; the four smallest are 0 followed by three copies of
	// n/(n-1) = 10/9.
	assert.InDelta(t, 0, vals[0], 1e-6)
	for i := 1; i < 4; i++ {
		assert.InDelta(t, 10.0/9.0, vals[i], 1e-6)
	}
	assert.Equal(t, 10, vecs.Rows())
	assert.Equal(t, 4, vecs.Cols())
}

func TestEigensystem_C20_NormalisedLaplacian_SmallestFive(t *testing.T) {
	sg := weightedFixture(t, builder.Cycle(20))
	vals, _, err := spectral.ComputeEigensystem(sg, spectral.NormalisedLaplacian, 5, spectral.Smallest)
	require.NoError(t, err)
	require.Len(t, vals, 5)
	assert.InDelta(t, 0, vals[0], 1e-6)
	for i := 1; i < 5; i++ {
		assert.GreaterOrEqual(t, vals[i], vals[i-1]-1e-9)
	}
}

func TestEigensystem_C20_Laplacian_LargestFive(t *testing.T) {
	sg := weightedFixture(t, builder.Cycle(20))
	vals, _, err := spectral.ComputeEigensystem(sg, spectral.Laplacian, 5, spectral.Largest)
	require.NoError(t, err)
	require.Len(t, vals, 5)
	for i := 1; i < 5; i++ {
		assert.GreaterOrEqual(t, math.Abs(vals[i-1]), math.Abs(vals[i])-1e-9)
	}
	// C_20's combinatorial Laplacian eigenvalues are 2-2cos(2*pi*k/20); the
	// largest-magnitude eigenvalue is near 4 (k=10).
	assert.InDelta(t, 4.0, vals[0], 1e-6)
}

func TestEigensystem_DisconnectedTwoPlusTwo_SmallestThree(t *testing.T) {
	a := weightedFixture(t, builder.Complete(2))
	b := weightedFixture(t, builder.Complete(2))
	joined, err := a.DisjointUnion(b)
	require.NoError(t, err)
	assert.Equal(t, 4, joined.NumberOfVertices())

	vals, _, err := spectral.ComputeEigensystem(joined, spectral.NormalisedLaplacian, 3, spectral.Smallest)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	// Two connected components -> eigenvalue 0 with multiplicity 2.
	assert.InDelta(t, 0, vals[0], 1e-6)
	assert.InDelta(t, 0, vals[1], 1e-6)
	assert.InDelta(t, 2.0, vals[2], 1e-6)
}

func TestEigensystem_SBM_NormalisedLaplacian_SmallestThree(t *testing.T) {
	sp, err := builder.BuildGraph(
		[]builder.BuilderOption{builder.WithSeed(42)},
		builder.SBM(100, 2, 0.8, 0.02),
	)
	require.NoError(t, err)
	sg, err := spectral.NewGraphFromSparse(sp)
	require.NoError(t, err)

	vals, _, err := spectral.ComputeEigensystem(sg, spectral.NormalisedLaplacian, 3, spectral.Smallest)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	assert.InDelta(t, 0, vals[0], 1e-4)
	// A well-separated two-block SBM has a visible spectral gap between the
	// near-zero second eigenvalue (cluster indicator) and the third.
	assert.Less(t, vals[1], vals[2])
}

func TestNewGraphFromSparse_Errors(t *testing.T) {
	_, err := spectral.NewGraphFromSparse(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)

	sp, err := matrix.NewSparse(2, 3, []int{0, 0, 0}, nil, nil)
	require.NoError(t, err)
	_, err = spectral.NewGraphFromSparse(sp)
	assert.ErrorIs(t, err, spectral.ErrInvalidDimensions)
}

func TestNewGraphFromSparse_NegativeAdjacencyRejected(t *testing.T) {
	// Off-diagonal negative entries trigger Laplacian reconstruction; if the
	// "reconstructed adjacency" still carries a negative entry, that's an
	// invalid Laplacian (non-dominant diagonal) and must be rejected.
	sp, err := matrix.SparseFromTriplets(2, 2,
		[]int{0, 1}, []int{1, 0}, []float64{-5, -5})
	require.NoError(t, err)
	_, err = spectral.NewGraphFromSparse(sp)
	assert.Error(t, err)
}

func TestDegreeAndNeighbors_OutOfRange(t *testing.T) {
	sg := weightedFixture(t, builder.Cycle(5))
	_, err := sg.Degree(-1)
	assert.ErrorIs(t, err, spectral.ErrVertexOutOfRange)
	_, err = sg.Neighbors(100)
	assert.ErrorIs(t, err, spectral.ErrVertexOutOfRange)
	assert.False(t, sg.VertexExists(100))
	assert.True(t, sg.VertexExists(0))
}

func TestSubgraph(t *testing.T) {
	sg := weightedFixture(t, builder.Cycle(6))
	sub, err := sg.Subgraph([]int{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 3, sub.NumberOfVertices())
	// Induced on a contiguous arc of a 6-cycle: edges (0,1) and (1,2).
	assert.Equal(t, 2, sub.NumberOfEdges())
}

func TestDerivedMatrices_LazyRandomWalkRowsSumToOne(t *testing.T) {
	sg := weightedFixture(t, builder.Complete(5))
	w, err := sg.LazyRandomWalkMatrix()
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		var sum float64
		for j := 0; j < 5; j++ {
			v, err := w.At(i, j)
			require.NoError(t, err)
			sum += v
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestDerivedMatrices_SignlessLaplacianIsDPlusA(t *testing.T) {
	sg := weightedFixture(t, builder.Cycle(6))
	sl, err := sg.SignlessLaplacian()
	require.NoError(t, err)
	l, err := sg.Laplacian()
	require.NoError(t, err)
	for i := 0; i < 6; i++ {
		for j := 0; j < 6; j++ {
			a, _ := sg.Adjacency().At(i, j)
			lv, _ := l.At(i, j)
			slv, _ := sl.At(i, j)
			if i == j {
				assert.InDelta(t, lv, slv, 1e-9)
			} else {
				assert.InDelta(t, -a, lv, 1e-9)
				assert.InDelta(t, a, slv, 1e-9)
			}
		}
	}
}
