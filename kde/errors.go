// SPDX-License-Identifier: MIT
// Package kde: sentinel error set, grouped by kind. All algorithms return
// these sentinels (optionally wrapped via fmt.Errorf("%w")); tests match via
// errors.Is.
package kde

import "errors"

var (
	// --- invalid-argument ---

	// ErrInvalidEpsilon indicates eps was outside (0, 1].
	ErrInvalidEpsilon = errors.New("kde: epsilon must be in (0, 1]")

	// ErrInvalidScale indicates the Gaussian scale parameter a was <= 0.
	ErrInvalidScale = errors.New("kde: kernel scale must be > 0")

	// ErrEmptyDataset indicates the point set had zero rows.
	ErrEmptyDataset = errors.New("kde: point set is empty")

	// ErrDimensionMismatch indicates a query vector's dimension did not
	// match the data set's dimension d.
	ErrDimensionMismatch = errors.New("kde: query dimension mismatch")

	// --- compute ---

	// ErrQueryFailed wraps a per-point query failure; per the "batched query
	// is atomic" propagation policy, a single failing point fails the batch.
	ErrQueryFailed = errors.New("kde: query failed")
)
