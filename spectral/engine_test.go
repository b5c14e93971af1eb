// SPDX-License-Identifier: MIT
package spectral_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnav-sen/stagraph/matrix"
	"github.com/arnav-sen/stagraph/spectral"
)

func identityDense(t *testing.T, n int) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, d.Set(i, i, 1))
	}
	return d
}

func TestRayleighQuotient_Identity(t *testing.T) {
	d := identityDense(t, 3)
	q, err := spectral.RayleighQuotient(d, []float64{1, 2, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, q, 1e-12)
}

func TestRayleighQuotient_Errors(t *testing.T) {
	d := identityDense(t, 3)
	_, err := spectral.RayleighQuotient(d, []float64{1, 2})
	assert.ErrorIs(t, err, spectral.ErrDimensionMismatch)
	_, err = spectral.RayleighQuotient(d, []float64{0, 0, 0})
	assert.ErrorIs(t, err, spectral.ErrZeroVector)
	_, err = spectral.RayleighQuotient(nil, []float64{0})
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestPowerMethod_DominantEigenvector grounds PowerMethod against a diagonal
// matrix with a unique dominant eigenvalue, where the converged direction is
// exactly known: the standard basis vector for the largest diagonal entry.
func TestPowerMethod_DominantEigenvector(t *testing.T) {
	d, err := matrix.NewDense(3, 3)
	require.NoError(t, err)
	require.NoError(t, d.Set(0, 0, 1))
	require.NoError(t, d.Set(1, 1, 5))
	require.NoError(t, d.Set(2, 2, 2))

	v, err := spectral.PowerMethodDefault(d, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v[1]*v[1], 1e-6)
	assert.InDelta(t, 0.0, v[0], 1e-6)
	assert.InDelta(t, 0.0, v[2], 1e-6)

	lambda, err := spectral.RayleighQuotient(d, v)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, lambda, 1e-6)
}

func TestPowerMethod_Errors(t *testing.T) {
	d := identityDense(t, 2)
	_, err := spectral.PowerMethod(d, -1, nil)
	assert.ErrorIs(t, err, spectral.ErrNegativeIterations)
	_, err = spectral.PowerMethod(d, 1, []float64{1})
	assert.ErrorIs(t, err, spectral.ErrDimensionMismatch)
	_, err = spectral.PowerMethod(nil, 1, nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestPowerMethod_ZeroIterationsReturnsInitial(t *testing.T) {
	d := identityDense(t, 3)
	v, err := spectral.PowerMethod(d, 0, []float64{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 0}, v)
}

func TestComputeEigensystem_NilGraph(t *testing.T) {
	_, _, err := spectral.ComputeEigensystem(nil, spectral.Adjacency, 1, spectral.Smallest)
	assert.ErrorIs(t, err, matrix.ErrGraphNil)
}
