// SPDX-License-Identifier: MIT

// Package kde implements the CKNS sublinear-time Gaussian kernel density
// estimator (Charikar-Kapralov-Nouri-Siminelakis-style) and an exact
// reference estimator, over a dense m x d point set (one point per row,
// *matrix.Dense).
package kde

import (
	"context"

	"github.com/arnav-sen/stagraph/matrix"
)

// CKNSGaussianKDE answers approximate Gaussian kernel density queries in
// sublinear time per query, after an O(n log n)-ish randomized
// preprocessing pass that builds the lattice once.
type CKNSGaussianKDE struct {
	n   int
	d   int
	a   float64
	eps float64
	lt  *lattice
}

// densePoints extracts m d-dimensional rows into a slice of plain
// []float64 point vectors, the shape every kde algorithm operates on.
func densePoints(m *matrix.Dense) ([][]float64, int, int, error) {
	rows, cols := m.Rows(), m.Cols()
	pts := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return nil, 0, 0, err
			}
			row[j] = v
		}
		pts[i] = row
	}
	return pts, rows, cols, nil
}

// NewCKNSGaussianKDE builds the randomized lattice over points for kernel
// scale a (the Gaussian is exp(-a * ||x-y||^2)) at approximation error eps.
//
// Errors:
//   - ErrEmptyDataset: points has zero rows.
//   - ErrInvalidScale: a <= 0.
//   - ErrInvalidEpsilon: eps outside (0, 1].
func NewCKNSGaussianKDE(points *matrix.Dense, a, eps float64, opts ...Option) (*CKNSGaussianKDE, error) {
	if points == nil || points.Rows() == 0 {
		return nil, ErrEmptyDataset
	}
	if a <= 0 {
		return nil, ErrInvalidScale
	}
	if eps <= 0 || eps > 1 {
		return nil, ErrInvalidEpsilon
	}

	pts, n, d, err := densePoints(points)
	if err != nil {
		return nil, err
	}

	cfg := resolveConfig(opts)
	lt, err := buildLattice(context.Background(), pts, a, eps, cfg)
	if err != nil {
		return nil, err
	}

	return &CKNSGaussianKDE{n: n, d: d, a: a, eps: eps, lt: lt}, nil
}

// Query returns the approximate kernel density sum sum_x exp(-a ||q-x||^2)
// for query point q (NOT divided by n, matching ExactGaussianKDE.Query;
// callers wanting the mean density divide by NumberOfPoints).
//
// Errors:
//   - ErrDimensionMismatch: len(q) != d.
func (k *CKNSGaussianKDE) Query(q []float64) (float64, error) {
	if len(q) != k.d {
		return 0, ErrDimensionMismatch
	}
	return k.lt.query(q, k.a) * float64(k.n), nil
}

// QueryBatch runs Query over every row of qs concurrently, using the same
// worker-pool sizing convention as construction. A single failing query
// fails the whole batch (ErrQueryFailed), per the "batched query is atomic"
// propagation policy.
func (k *CKNSGaussianKDE) QueryBatch(qs *matrix.Dense, opts ...Option) ([]float64, error) {
	pts, m, d, err := densePoints(qs)
	if err != nil {
		return nil, err
	}
	if d != k.d {
		return nil, ErrDimensionMismatch
	}

	cfg := resolveConfig(opts)
	out := make([]float64, m)
	errs := make([]error, m)

	jobs := make(chan int, m)
	for i := 0; i < m; i++ {
		jobs <- i
	}
	close(jobs)

	workers := cfg.workers
	if workers > m {
		workers = m
	}
	if workers < 1 {
		workers = 1
	}

	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := range jobs {
				v, e := k.Query(pts[i])
				out[i] = v
				errs[i] = e
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}

	for _, e := range errs {
		if e != nil {
			return nil, ErrQueryFailed
		}
	}
	return out, nil
}

// NumberOfPoints returns n, the number of indexed data points.
func (k *CKNSGaussianKDE) NumberOfPoints() int { return k.n }

// Dimension returns d, the shared dimensionality of every indexed point.
func (k *CKNSGaussianKDE) Dimension() int { return k.d }
