// SPDX-License-Identifier: MIT
package kde_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav-sen/stagraph/kde"
	"github.com/arnav-sen/stagraph/matrix"
)

// gaussianPoints builds an m x d dense point set sampled from a unit
// isotropic Gaussian, deterministically seeded.
func gaussianPoints(t *testing.T, m, d int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	pts, err := matrix.NewDense(m, d)
	require.NoError(t, err)
	for i := 0; i < m; i++ {
		for j := 0; j < d; j++ {
			require.NoError(t, pts.Set(i, j, rng.NormFloat64()))
		}
	}
	return pts
}

func TestNewCKNSGaussianKDE_Validation(t *testing.T) {
	pts := gaussianPoints(t, 10, 2, 1)

	_, err := kde.NewCKNSGaussianKDE(nil, 1.0, 0.1)
	assert.ErrorIs(t, err, kde.ErrEmptyDataset)

	_, err = kde.NewCKNSGaussianKDE(pts, 0, 0.1)
	assert.ErrorIs(t, err, kde.ErrInvalidScale)
	_, err = kde.NewCKNSGaussianKDE(pts, -1, 0.1)
	assert.ErrorIs(t, err, kde.ErrInvalidScale)

	_, err = kde.NewCKNSGaussianKDE(pts, 1.0, 0)
	assert.ErrorIs(t, err, kde.ErrInvalidEpsilon)
	_, err = kde.NewCKNSGaussianKDE(pts, 1.0, 1.5)
	assert.ErrorIs(t, err, kde.ErrInvalidEpsilon)
}

func TestNewExactGaussianKDE_Validation(t *testing.T) {
	_, err := kde.NewExactGaussianKDE(nil, 1.0)
	assert.ErrorIs(t, err, kde.ErrEmptyDataset)

	pts := gaussianPoints(t, 5, 2, 2)
	_, err = kde.NewExactGaussianKDE(pts, 0)
	assert.ErrorIs(t, err, kde.ErrInvalidScale)
}

func TestExactGaussianKDE_QueryDimensionMismatch(t *testing.T) {
	pts := gaussianPoints(t, 5, 3, 3)
	e, err := kde.NewExactGaussianKDE(pts, 0.5)
	require.NoError(t, err)
	_, err = e.Query([]float64{1, 2})
	assert.ErrorIs(t, err, kde.ErrDimensionMismatch)
}

func TestExactGaussianKDE_QueryAtOwnPointIsAtLeastOne(t *testing.T) {
	pts := gaussianPoints(t, 50, 4, 4)
	e, err := kde.NewExactGaussianKDE(pts, 0.5)
	require.NoError(t, err)
	q := make([]float64, 4)
	for j := 0; j < 4; j++ {
		v, err := pts.At(0, j)
		require.NoError(t, err)
		q[j] = v
	}
	sum, err := e.Query(q)
	require.NoError(t, err)
	// The self term contributes exp(0) = 1; every other term is >= 0.
	assert.GreaterOrEqual(t, sum, 1.0)
}

func TestExactGaussianKDE_QueryBatchMatchesIndividualQueries(t *testing.T) {
	pts := gaussianPoints(t, 30, 3, 5)
	qs := gaussianPoints(t, 12, 3, 6)
	e, err := kde.NewExactGaussianKDE(pts, 1.0)
	require.NoError(t, err)

	batch, err := e.QueryBatch(qs, kde.WithWorkerCount(4))
	require.NoError(t, err)
	require.Len(t, batch, 12)

	for i := 0; i < 12; i++ {
		q := make([]float64, 3)
		for j := 0; j < 3; j++ {
			v, err := qs.At(i, j)
			require.NoError(t, err)
			q[j] = v
		}
		want, err := e.Query(q)
		require.NoError(t, err)
		assert.InDelta(t, want, batch[i], 1e-12)
	}
}

func TestExactGaussianKDE_QueryBatchSmallBatchSequentialPath(t *testing.T) {
	pts := gaussianPoints(t, 10, 2, 7)
	qs := gaussianPoints(t, 1, 2, 8)
	e, err := kde.NewExactGaussianKDE(pts, 1.0)
	require.NoError(t, err)
	out, err := e.QueryBatch(qs, kde.WithWorkerCount(8))
	require.NoError(t, err)
	require.Len(t, out, 1)
}

// TestCKNSGaussianKDE_ApproximatesExact checks the headline accuracy
// property: on a moderately sized point set, CKNS's randomized estimate at
// a query point should land within a generous multiplicative band of the
// exact brute-force sum (the CKNS scheme targets a (1+eps) multiplicative
// guarantee in expectation/high-probability, not an exact match).
func TestCKNSGaussianKDE_ApproximatesExact(t *testing.T) {
	const n, d = 2000, 4
	pts := gaussianPoints(t, n, d, 11)

	exact, err := kde.NewExactGaussianKDE(pts, 0.5)
	require.NoError(t, err)
	approx, err := kde.NewCKNSGaussianKDE(pts, 0.5, 0.5, kde.WithSeed(99), kde.WithWorkerCount(4))
	require.NoError(t, err)

	q := make([]float64, d)
	wantSum, err := exact.Query(q)
	require.NoError(t, err)
	gotSum, err := approx.Query(q)
	require.NoError(t, err)

	require.Greater(t, wantSum, 0.0)
	ratio := gotSum / wantSum
	assert.True(t, ratio > 0.1 && ratio < 10,
		"CKNS estimate %v too far from exact %v (ratio %v)", gotSum, wantSum, ratio)
}

func TestCKNSGaussianKDE_QueryDimensionMismatch(t *testing.T) {
	pts := gaussianPoints(t, 20, 2, 12)
	k, err := kde.NewCKNSGaussianKDE(pts, 1.0, 0.5)
	require.NoError(t, err)
	_, err = k.Query([]float64{1, 2, 3})
	assert.ErrorIs(t, err, kde.ErrDimensionMismatch)
}

func TestCKNSGaussianKDE_NumberOfPointsAndDimension(t *testing.T) {
	pts := gaussianPoints(t, 20, 3, 13)
	k, err := kde.NewCKNSGaussianKDE(pts, 1.0, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 20, k.NumberOfPoints())
	assert.Equal(t, 3, k.Dimension())
}

func TestCKNSGaussianKDE_QueryBatchDimensionMismatch(t *testing.T) {
	pts := gaussianPoints(t, 20, 2, 14)
	qs := gaussianPoints(t, 5, 3, 15)
	k, err := kde.NewCKNSGaussianKDE(pts, 1.0, 0.5)
	require.NoError(t, err)
	_, err = k.QueryBatch(qs)
	assert.ErrorIs(t, err, kde.ErrDimensionMismatch)
}

// TestCKNSGaussianKDE_DeterministicGivenSeed checks that two estimators
// built from the same seed over the same data produce identical estimates,
// exercising the explicit RNG-threading contract (no shared global RNG
// leaking nondeterminism across construction).
func TestCKNSGaussianKDE_DeterministicGivenSeed(t *testing.T) {
	pts := gaussianPoints(t, 500, 3, 16)
	k1, err := kde.NewCKNSGaussianKDE(pts, 0.5, 0.3, kde.WithSeed(7))
	require.NoError(t, err)
	k2, err := kde.NewCKNSGaussianKDE(pts, 0.5, 0.3, kde.WithSeed(7))
	require.NoError(t, err)

	q := []float64{0.1, -0.2, 0.3}
	v1, err := k1.Query(q)
	require.NoError(t, err)
	v2, err := k2.Query(q)
	require.NoError(t, err)
	assert.Equal(t, v1, v2)
}

func TestExactGaussianKDE_DistantQueryDecaysToZero(t *testing.T) {
	pts := gaussianPoints(t, 15, 2, 17)
	e, err := kde.NewExactGaussianKDE(pts, 0.3)
	require.NoError(t, err)
	q1 := []float64{0, 0}
	q2 := []float64{100, 100}
	v1, err := e.Query(q1)
	require.NoError(t, err)
	v2, err := e.Query(q2)
	require.NoError(t, err)
	assert.Less(t, v2, v1)
	assert.GreaterOrEqual(t, v2, 0.0)
	assert.Less(t, v2, 1e-10)
}
