// SPDX-License-Identifier: MIT

// Package matrix - Sparse storage (CSR) for large, low-fill graph matrices.
//
// Purpose:
//   - Provide a compact row-major sparse representation (row-starts, inner
//     column indices, values) for adjacency/Laplacian-shaped matrices where
//     a dense r*c buffer would be wasteful.
//   - Preserve the row-start/inner-index/value naming used by the reference
//     CSR accessors (outer starts, inner indices) so callers porting formulas
//     from sparse linear-algebra literature recognize the layout.
//   - Offer read access compatible with the Matrix interface; writes are
//     restricted to existing structural nonzeros (CSR's pattern is fixed
//     at construction time; inserting a new nonzero requires rebuilding).
//
// AI-Hints:
//   - Build once via NewSparse from sorted (rowStart, colIndex, values) triplets;
//     use SparseFromTriplets when (row, col, value) arrives unsorted/unordered.
//   - Use ToDense only for small matrices or debugging; it is O(rows*cols).
//   - IsSymmetric is used by spectral graph construction to validate that the
//     adjacency matrix it ends up with is symmetric.
//
// Complexity quicksheet:
//   - NewSparse: O(nnz); At: O(log d) via binary search over a row's columns;
//     Set (existing nonzero): O(log d); Clone: O(nnz); ToDense: O(rows*cols).
package matrix

import (
	"fmt"
	"math"
	"sort"
)

// ---------- error context tags ----------

const (
	ctxSparseAt  = "At"
	ctxSparseSet = "Set"
)

// Sparse is a compressed-sparse-row matrix.
//   - rowStart has length rows+1; rowStart[i]..rowStart[i+1] delimits row i's
//     entries in colIndex/values.
//   - colIndex holds the column of each stored entry, sorted ascending within
//     each row (required for binary search in At/Set).
//   - values holds the stored entry at the same position as colIndex.
type Sparse struct {
	rows, cols int
	rowStart   []int     // length rows+1, monotonically non-decreasing
	colIndex   []int     // length nnz, ascending within each row
	values     []float64 // length nnz
}

// Compile-time assertion that *Sparse implements Matrix.
var _ Matrix = (*Sparse)(nil)

// NewSparse builds a CSR matrix from already-sorted row-start/column-index/value
// arrays. The caller owns the contract: rowStart must have length rows+1 and be
// monotonically non-decreasing, and colIndex must be ascending within each row.
// MAIN DESCRIPTION:
//   - Zero-copy-friendly constructor for CSR arrays already in canonical layout.
//
// Implementation:
//   - Stage 1: validate shape and array-length contracts.
//   - Stage 2: validate ascending column order within every row.
//   - Stage 3: wrap slices directly (no reallocation).
//
// Errors:
//   - ErrInvalidDimensions: rows<=0 or cols<=0.
//   - ErrBadShape: len(rowStart) != rows+1, len(colIndex) != len(values), or
//     column indices not strictly ascending within a row.
//   - ErrOutOfRange: a column index falls outside [0,cols), or rowStart is
//     negative, decreasing, or points past the end of values.
//
// Complexity:
//   - Time O(nnz) to validate ordering, Space O(1) extra.
func NewSparse(rows, cols int, rowStart, colIndex []int, values []float64) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(rowStart) != rows+1 {
		return nil, fmt.Errorf("matrix.NewSparse: rowStart length %d != rows+1=%d: %w", len(rowStart), rows+1, ErrBadShape)
	}
	if len(colIndex) != len(values) {
		return nil, fmt.Errorf("matrix.NewSparse: colIndex/values length mismatch (%d vs %d): %w", len(colIndex), len(values), ErrBadShape)
	}
	for i := 0; i < rows; i++ {
		if rowStart[i] < 0 || rowStart[i+1] < rowStart[i] || rowStart[i+1] > len(values) {
			return nil, fmt.Errorf("matrix.NewSparse: row %d: %w", i, ErrOutOfRange)
		}
		prev := -1
		for p := rowStart[i]; p < rowStart[i+1]; p++ {
			c := colIndex[p]
			if c < 0 || c >= cols {
				return nil, fmt.Errorf("matrix.NewSparse: row %d col %d: %w", i, c, ErrOutOfRange)
			}
			if c <= prev {
				return nil, fmt.Errorf("matrix.NewSparse: row %d: column indices must be strictly ascending: %w", i, ErrBadShape)
			}
			prev = c
		}
	}

	return &Sparse{rows: rows, cols: cols, rowStart: rowStart, colIndex: colIndex, values: values}, nil
}

// SparseFromTriplets builds a CSR matrix from unordered (row, col, value)
// triplets, summing duplicate (row,col) contributions.
// MAIN DESCRIPTION:
//   - General-purpose builder for edge-list-shaped input (e.g. graph ingestion).
//
// Implementation:
//   - Stage 1: validate shape and triplet slice lengths.
//   - Stage 2: bucket triplets by row, sort each bucket by column.
//   - Stage 3: merge duplicate columns within a row by summation.
//   - Stage 4: flatten into CSR arrays.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadShape, ErrOutOfRange, ErrNaNInf.
//
// Determinism:
//   - Stable sort by column; duplicate entries always summed in the same order
//     because input order is preserved by the stable sort.
//
// Complexity:
//   - Time O(nnz log nnz), Space O(nnz).
func SparseFromTriplets(rows, cols int, rowIdx, colIdx []int, vals []float64) (*Sparse, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(rowIdx) != len(colIdx) || len(colIdx) != len(vals) {
		return nil, fmt.Errorf("matrix.SparseFromTriplets: triplet length mismatch: %w", ErrBadShape)
	}

	type entry struct{ col int; val float64 }
	buckets := make([][]entry, rows)
	for k := range rowIdx {
		r, c, v := rowIdx[k], colIdx[k], vals[k]
		if r < 0 || r >= rows || c < 0 || c >= cols {
			return nil, fmt.Errorf("matrix.SparseFromTriplets: entry (%d,%d): %w", r, c, ErrOutOfRange)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("matrix.SparseFromTriplets: entry (%d,%d): %w", r, c, ErrNaNInf)
		}
		buckets[r] = append(buckets[r], entry{col: c, val: v})
	}

	rowStart := make([]int, rows+1)
	var colIndex []int
	var values []float64
	for i := 0; i < rows; i++ {
		sort.SliceStable(buckets[i], func(a, b int) bool { return buckets[i][a].col < buckets[i][b].col })
		j := 0
		for j < len(buckets[i]) {
			col := buckets[i][j].col
			sum := buckets[i][j].val
			j++
			for j < len(buckets[i]) && buckets[i][j].col == col {
				sum += buckets[i][j].val
				j++
			}
			colIndex = append(colIndex, col)
			values = append(values, sum)
		}
		rowStart[i+1] = len(colIndex)
	}

	return &Sparse{rows: rows, cols: cols, rowStart: rowStart, colIndex: colIndex, values: values}, nil
}

// Rows returns the row count. Complexity: O(1).
func (s *Sparse) Rows() int { return s.rows }

// Cols returns the column count. Complexity: O(1).
func (s *Sparse) Cols() int { return s.cols }

// NNZ returns the number of stored (structural) nonzeros. Complexity: O(1).
func (s *Sparse) NNZ() int { return len(s.values) }

// rowSlice returns the [start,end) index range into colIndex/values for row i.
func (s *Sparse) rowSlice(row int) (int, int, error) {
	if row < 0 || row >= s.rows {
		return 0, 0, ErrOutOfRange
	}
	return s.rowStart[row], s.rowStart[row+1], nil
}

// At returns the value at (row,col), 0 if the entry is not stored.
// MAIN DESCRIPTION:
//   - Safe element read via binary search over the row's ascending columns.
//
// Complexity:
//   - Time O(log d) where d is the row's nonzero count.
func (s *Sparse) At(row, col int) (float64, error) {
	start, end, err := s.rowSlice(row)
	if err != nil {
		return 0, fmt.Errorf("Sparse.%s(%d,%d): %w", ctxSparseAt, row, col, err)
	}
	if col < 0 || col >= s.cols {
		return 0, fmt.Errorf("Sparse.%s(%d,%d): %w", ctxSparseAt, row, col, ErrOutOfRange)
	}
	cols := s.colIndex[start:end]
	idx := sort.SearchInts(cols, col)
	if idx < len(cols) && cols[idx] == col {
		return s.values[start+idx], nil
	}
	return 0, nil
}

// Set overwrites the value at an existing structural nonzero (row,col).
// Inserting a new nonzero is not supported by CSR's fixed pattern; use
// SparseFromTriplets to rebuild the matrix when the pattern must change.
// MAIN DESCRIPTION:
//   - In-place update of an already-stored entry.
//
// Errors:
//   - ErrOutOfRange: bad indices.
//   - ErrNaNInf: non-finite value.
//   - ErrMatrixNotImplemented: (row,col) is not a structural nonzero.
//
// Complexity:
//   - Time O(log d).
func (s *Sparse) Set(row, col int, v float64) error {
	start, end, err := s.rowSlice(row)
	if err != nil {
		return fmt.Errorf("Sparse.%s(%d,%d): %w", ctxSparseSet, row, col, err)
	}
	if col < 0 || col >= s.cols {
		return fmt.Errorf("Sparse.%s(%d,%d): %w", ctxSparseSet, row, col, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("Sparse.%s(%d,%d): %w", ctxSparseSet, row, col, ErrNaNInf)
	}
	cols := s.colIndex[start:end]
	idx := sort.SearchInts(cols, col)
	if idx < len(cols) && cols[idx] == col {
		s.values[start+idx] = v
		return nil
	}
	return fmt.Errorf("Sparse.%s(%d,%d): inserting a new nonzero is unsupported: %w", ctxSparseSet, row, col, ErrMatrixNotImplemented)
}

// Clone returns a deep copy sharing no backing arrays with the original.
// Complexity: O(nnz).
func (s *Sparse) Clone() Matrix {
	rs := make([]int, len(s.rowStart))
	copy(rs, s.rowStart)
	ci := make([]int, len(s.colIndex))
	copy(ci, s.colIndex)
	vs := make([]float64, len(s.values))
	copy(vs, s.values)
	return &Sparse{rows: s.rows, cols: s.cols, rowStart: rs, colIndex: ci, values: vs}
}

// ToDense materializes the sparse matrix as a *Dense copy.
// Complexity: O(rows*cols).
func (s *Sparse) ToDense() (*Dense, error) {
	d, err := newDenseZeroOK(s.rows, s.cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < s.rows; i++ {
		for p := s.rowStart[i]; p < s.rowStart[i+1]; p++ {
			if err := d.Set(i, s.colIndex[p], s.values[p]); err != nil {
				return nil, err
			}
		}
	}
	return d, nil
}

// RowStarts, InnerIndices and Values expose the raw CSR arrays read-only,
// named after the outer-starts/inner-indices convention used by sparse
// matrix libraries (row pointers are "outer", column indices are "inner"
// for a row-major CSR layout).
func (s *Sparse) RowStarts() []int     { return s.rowStart }
func (s *Sparse) InnerIndices() []int  { return s.colIndex }
func (s *Sparse) Values() []float64    { return s.values }

// VisitRow calls f(col, val) for every stored nonzero in row, in ascending
// column order. Complexity: O(d) where d is the row's nonzero count.
func (s *Sparse) VisitRow(row int, f func(col int, val float64)) error {
	start, end, err := s.rowSlice(row)
	if err != nil {
		return err
	}
	for p := start; p < end; p++ {
		f(s.colIndex[p], s.values[p])
	}
	return nil
}

// IsSymmetric reports whether the matrix equals its transpose within eps.
// Used by spectral graph construction to reject an asymmetric adjacency
// matrix; it does not tell an adjacency matrix from a Laplacian (spectral
// does that by looking for a negative off-diagonal entry).
// MAIN DESCRIPTION:
//   - Symmetric comparison via dense materialization (intended for
//     construction-time checks, not hot paths).
//
// Complexity:
//   - Time O(rows*cols).
func (s *Sparse) IsSymmetric(eps float64) (bool, error) {
	if s.rows != s.cols {
		return false, nil
	}
	dense, err := s.ToDense()
	if err != nil {
		return false, err
	}
	for i := 0; i < s.rows; i++ {
		for j := i + 1; j < s.cols; j++ {
			a, _ := dense.At(i, j)
			b, _ := dense.At(j, i)
			if math.Abs(a-b) > eps {
				return false, nil
			}
		}
	}
	return true, nil
}
