// SPDX-License-Identifier: MIT
package builder_test

import (
	"errors"
	"testing"

	"github.com/arnav-sen/stagraph/builder"
)

func TestSBM_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		n, k    int
		p, q    float64
		wantErr error
	}{
		{"too few vertices", 0, 1, 0.5, 0.1, builder.ErrTooFewVertices},
		{"k too small", 4, 0, 0.5, 0.1, builder.ErrInvalidClusterCount},
		{"n not divisible by k", 5, 2, 0.5, 0.1, builder.ErrInvalidClusterCount},
		{"p out of range", 4, 2, 1.5, 0.1, builder.ErrInvalidProbability},
		{"q out of range", 4, 2, 0.5, -0.1, builder.ErrInvalidProbability},
		{"stochastic without rng", 4, 2, 0.5, 0.1, builder.ErrNeedRandSource},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := builder.BuildGraph(nil, builder.SBM(tc.n, tc.k, tc.p, tc.q))
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("SBM(%d,%d,%.2f,%.2f): got %v, want %v", tc.n, tc.k, tc.p, tc.q, err, tc.wantErr)
			}
		})
	}
}

// TestSBM_DeterministicExtremes checks the noiseless corners p=1,q=0: every
// intra-cluster pair is an edge, no inter-cluster pair is.
func TestSBM_DeterministicExtremes(t *testing.T) {
	t.Parallel()

	sp, err := builder.BuildGraph(nil, builder.SBM(6, 2, 1.0, 0.0))
	if err != nil {
		t.Fatalf("SBM(6,2,1,0): %v", err)
	}
	if got := sp.Rows(); got != 6 {
		t.Fatalf("vertices: got %d, want 6", got)
	}
	// Each cluster of 3 forms a triangle (3 edges, 6 mirrored nonzeros); two
	// clusters -> 12 nonzeros, none crossing the cluster boundary.
	if got := sp.NNZ(); got != 12 {
		t.Fatalf("nonzeros: got %d, want 12", got)
	}
	for i := 0; i < 6; i++ {
		if err := sp.VisitRow(i, func(j int, v float64) {
			if clusterOf(i) != clusterOf(j) {
				t.Errorf("unexpected inter-cluster edge %d-%d at q=0", i, j)
			}
		}); err != nil {
			t.Fatalf("VisitRow(%d): %v", i, err)
		}
	}
}

func clusterOf(i int) int {
	if i < 3 {
		return 0
	}
	return 1
}
