// SPDX-License-Identifier: MIT

// Package matrix provides the row-major float64 buffer that backs a plate grid.
//
// What:
//
//   - Dense: an r×c matrix stored in one flat slice (offset = i*cols + j).
//   - Bounds-checked accessors (At/Set) that return sentinel errors instead of
//     panicking, and a numeric policy that rejects NaN/±Inf on Set.
//   - Whole-row and whole-column fills used for boundary initialization.
//   - Conversions to gonum's *mat.Dense and plain [][]float64.
//   - Small statistics helpers (L∞ distance, mean, min/max) over gonum's
//     floats and stat packages.
//
// Why:
//
//   - A plate grid is small, fixed-size and mutated in place thousands of
//     times; a single contiguous buffer keeps the sweep cache-friendly and
//     the hot loop free of bounds-check error paths (see RawData).
//
// Complexity:
//
//   - NewDense, Clone, ToRows, ToGonum: O(r*c) time and memory.
//   - At, Set, Rows, Cols: O(1).
//   - FillRow: O(c), FillCol: O(r).
//   - MaxAbsDiff, Mean, MinMax: O(r*c).
//
// Errors:
//
//   - ErrInvalidDimensions: rows or cols ≤ 0.
//   - ErrOutOfRange: row/col index (or fill range) outside the matrix.
//   - ErrNaNInf: NaN or ±Inf written through Set/Fill.
//   - ErrNilMatrix: nil matrix passed to a helper.
//   - ErrDimensionMismatch: operands differ in shape.
//   - ErrNonRectangular: ragged [][]float64 input.
package matrix
