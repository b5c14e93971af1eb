// SPDX-License-Identifier: MIT

// ExactGaussianKDE is the brute-force reference estimator: an O(n) scan per
// query, dispatched across a worker pool for batches, used for correctness
// comparison against CKNSGaussianKDE and for small data sets where the
// randomized construction's overhead is not worth paying.
package kde

import (
	"math"

	"github.com/arnav-sen/stagraph/matrix"
)

// ExactGaussianKDE holds the point set and kernel scale; Query performs a
// direct O(n*d) scan with no subsampling.
type ExactGaussianKDE struct {
	points [][]float64
	n, d   int
	a      float64
}

// NewExactGaussianKDE wraps a dense point set for exact Gaussian kernel
// density sums under scale a.
//
// Errors:
//   - ErrEmptyDataset: points has zero rows.
//   - ErrInvalidScale: a <= 0.
func NewExactGaussianKDE(points *matrix.Dense, a float64) (*ExactGaussianKDE, error) {
	if points == nil || points.Rows() == 0 {
		return nil, ErrEmptyDataset
	}
	if a <= 0 {
		return nil, ErrInvalidScale
	}
	pts, n, d, err := densePoints(points)
	if err != nil {
		return nil, err
	}
	return &ExactGaussianKDE{points: pts, n: n, d: d, a: a}, nil
}

// Query returns the exact kernel density sum sum_x exp(-a ||q-x||^2).
//
// Errors:
//   - ErrDimensionMismatch: len(q) != d.
func (e *ExactGaussianKDE) Query(q []float64) (float64, error) {
	if len(q) != e.d {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for _, p := range e.points {
		sum += math.Exp(-e.a * squaredDistance(q, p))
	}
	return sum, nil
}

// QueryBatch runs Query over every row of qs, splitting the batch into
// cfg.workers contiguous chunks dispatched to a worker pool; for a batch of
// fewer than 2*cfg.workers queries it runs sequentially on the caller's
// goroutine instead, per the "small batches skip the pool" policy.
func (e *ExactGaussianKDE) QueryBatch(qs *matrix.Dense, opts ...Option) ([]float64, error) {
	pts, m, d, err := densePoints(qs)
	if err != nil {
		return nil, err
	}
	if d != e.d {
		return nil, ErrDimensionMismatch
	}

	cfg := resolveConfig(opts)
	out := make([]float64, m)

	if m < 2*cfg.workers {
		for i, p := range pts {
			out[i], err = e.Query(p)
			if err != nil {
				return nil, ErrQueryFailed
			}
		}
		return out, nil
	}

	chunk := (m + cfg.workers - 1) / cfg.workers
	errs := make([]error, cfg.workers)
	done := make(chan struct{}, cfg.workers)
	active := 0
	for w := 0; w < cfg.workers; w++ {
		lo := w * chunk
		if lo >= m {
			break
		}
		hi := lo + chunk
		if hi > m {
			hi = m
		}
		active++
		go func(w, lo, hi int) {
			defer func() { done <- struct{}{} }()
			for i := lo; i < hi; i++ {
				v, e2 := e.Query(pts[i])
				if e2 != nil {
					errs[w] = e2
					return
				}
				out[i] = v
			}
		}(w, lo, hi)
	}
	for i := 0; i < active; i++ {
		<-done
	}
	for _, e2 := range errs {
		if e2 != nil {
			return nil, ErrQueryFailed
		}
	}
	return out, nil
}

// NumberOfPoints returns n, the number of indexed data points.
func (e *ExactGaussianKDE) NumberOfPoints() int { return e.n }

// Dimension returns d, the shared dimensionality of every indexed point.
func (e *ExactGaussianKDE) Dimension() int { return e.d }
