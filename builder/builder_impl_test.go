// File: builder_impl_test.go
// Package builder_test contains functional tests for the Constructor
// implementations in the builder package, verifying correct topology, edge
// counts, idempotence, and default weights of the resulting matrix.Sparse.
package builder_test

import (
	"testing"

	"github.com/arnav-sen/stagraph/builder"
	"github.com/arnav-sen/stagraph/matrix"
)

// weightAt returns sp.At(i,j), failing the test on error.
func weightAt(t *testing.T, sp *matrix.Sparse, i, j int) float64 {
	t.Helper()
	v, err := sp.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}
	return v
}

// TestBuilders_Functional runs table-driven functional tests for each builder.
func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	const defaultWeight = float64(builder.DefaultEdgeWeight)

	tests := []struct {
		name        string
		ctor        builder.Constructor
		wantN       int // expected matrix dimension
		wantNNZ     int // expected stored nonzeros (each undirected edge mirrored)
		sampleCheck func(t *testing.T, sp *matrix.Sparse)
	}{
		{
			name:    "Cycle(5)",
			ctor:    builder.Cycle(5),
			wantN:   5, wantNNZ: 10,
			sampleCheck: func(t *testing.T, sp *matrix.Sparse) {
				for i := 0; i < 5; i++ {
					j := (i + 1) % 5
					if w := weightAt(t, sp, i, j); w != defaultWeight {
						t.Errorf("Cycle: edge %d->%d: got weight %v, want %v", i, j, w, defaultWeight)
					}
					if w := weightAt(t, sp, j, i); w != defaultWeight {
						t.Errorf("Cycle: mirrored edge %d->%d: got weight %v, want %v", j, i, w, defaultWeight)
					}
				}
			},
		},
		{
			name:    "Complete(4)",
			ctor:    builder.Complete(4),
			wantN:   4, wantNNZ: 12, // undirected K4 has 4*3/2 = 6 edges, 12 mirrored nonzeros
			sampleCheck: func(t *testing.T, sp *matrix.Sparse) {
				pairs := [][2]int{{0, 1}, {1, 2}, {2, 3}}
				for _, p := range pairs {
					if w := weightAt(t, sp, p[0], p[1]); w == 0 {
						t.Errorf("Complete: missing edge %d-%d", p[0], p[1])
					}
				}
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			sp, err := builder.BuildGraph(nil, tc.ctor)
			if err != nil {
				t.Fatalf("BuildGraph(%s) returned error: %v", tc.name, err)
			}

			if got := sp.Rows(); got != tc.wantN {
				t.Errorf("rows: got %d, want %d", got, tc.wantN)
			}
			if got := sp.NNZ(); got != tc.wantNNZ {
				t.Errorf("nonzeros: got %d, want %d", got, tc.wantNNZ)
			}

			tc.sampleCheck(t, sp)

			// idempotence: rerun the builder from a fresh accumulator.
			sp2, err2 := builder.BuildGraph(nil, tc.ctor)
			if err2 != nil {
				t.Fatalf("second BuildGraph(%s) returned error: %v", tc.name, err2)
			}
			if sp2.Rows() != tc.wantN || sp2.NNZ() != tc.wantNNZ {
				t.Errorf("idempotence: counts changed after re-run of %s", tc.name)
			}
		})
	}
}

// TestBuildGraph_DisjointFixture builds the two K_2 components used by
// spectral's disconnected-graph test, confirming Complete composes cleanly
// as a minimal per-component fixture generator.
func TestBuildGraph_DisjointFixture(t *testing.T) {
	t.Parallel()

	a, err := builder.BuildGraph(nil, builder.Complete(2))
	if err != nil {
		t.Fatalf("BuildGraph(Complete(2)) [a]: %v", err)
	}
	b, err := builder.BuildGraph(nil, builder.Complete(2))
	if err != nil {
		t.Fatalf("BuildGraph(Complete(2)) [b]: %v", err)
	}
	if a.Rows() != 2 || a.NNZ() != 2 {
		t.Fatalf("component a: got %d rows, %d nonzeros, want 2, 2", a.Rows(), a.NNZ())
	}
	if b.Rows() != 2 || b.NNZ() != 2 {
		t.Fatalf("component b: got %d rows, %d nonzeros, want 2, 2", b.Rows(), b.NNZ())
	}
}

func TestBuildGraph_NilConstructorRejected(t *testing.T) {
	t.Parallel()
	_, err := builder.BuildGraph(nil, nil)
	if err == nil {
		t.Fatal("BuildGraph(nil constructor): expected error, got nil")
	}
}
