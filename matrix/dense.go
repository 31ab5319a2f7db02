// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set/Fill* return errors instead of panicking.
//   - Keep determinism: fixed loop orders, no map iteration.
//   - Enforce the numeric policy (rejection of NaN/Inf) from a single place.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); FillRow: O(c); FillCol: O(r); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxFill    = "Fill"
	ctxFillRow = "FillRow"
	ctxFillCol = "FillCol"
	ctxRow     = "Row"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps a sentinel with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// isFinite reports whether v is neither NaN nor ±Inf.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Complexity: Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// NewDenseFromRows builds a Dense from a rectangular [][]float64, copying the input.
//
// Errors:
//   - ErrInvalidDimensions when values has no rows or no columns.
//   - ErrNonRectangular when row lengths differ.
//   - ErrNaNInf (wrapped with coordinates) on a non-finite element.
//
// Complexity: Time O(r*c), Space O(r*c).
func NewDenseFromRows(values [][]float64) (*Dense, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	rows, cols := len(values), len(values[0])
	m := &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}
	for i, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
		for j, v := range row {
			if !isFinite(v) {
				return nil, denseErrorf(ctxSet, i, j, ErrNaNInf)
			}
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}

	return m, nil
}

// Rows returns the number of rows. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols). Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf maps (row, col) to the flat offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Errors: ErrOutOfRange wrapped with the coordinates.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set assigns v at (row, col).
// Errors: ErrOutOfRange or ErrNaNInf, wrapped with the coordinates.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if !isFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Fill writes v into every element.
// Errors: ErrNaNInf.
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) error {
	if !isFinite(v) {
		return denseErrorf(ctxFill, 0, 0, ErrNaNInf)
	}
	for k := range m.data {
		m.data[k] = v
	}

	return nil
}

// FillRow writes v into columns [c0, c1) of row i.
//
// Behavior highlights:
//   - The range is half-open; c0 == c1 is a no-op.
//   - Validation happens before any write, so a failed call leaves m untouched.
//
// Errors: ErrOutOfRange (row or range), ErrNaNInf.
// Complexity: O(c1-c0).
func (m *Dense) FillRow(i, c0, c1 int, v float64) error {
	if i < 0 || i >= m.r || c0 < 0 || c1 > m.c || c0 > c1 {
		return denseErrorf(ctxFillRow, i, c0, ErrOutOfRange)
	}
	if !isFinite(v) {
		return denseErrorf(ctxFillRow, i, c0, ErrNaNInf)
	}
	base := i * m.c
	for j := c0; j < c1; j++ {
		m.data[base+j] = v
	}

	return nil
}

// FillCol writes v into rows [r0, r1) of column j.
// Same contract as FillRow, transposed.
// Complexity: O(r1-r0).
func (m *Dense) FillCol(j, r0, r1 int, v float64) error {
	if j < 0 || j >= m.c || r0 < 0 || r1 > m.r || r0 > r1 {
		return denseErrorf(ctxFillCol, r0, j, ErrOutOfRange)
	}
	if !isFinite(v) {
		return denseErrorf(ctxFillCol, r0, j, ErrNaNInf)
	}
	for i := r0; i < r1; i++ {
		m.data[i*m.c+j] = v
	}

	return nil
}

// Row returns a copy of row i.
// Errors: ErrOutOfRange.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// ToRows returns the matrix as freshly allocated rows.
// Complexity: O(r*c).
func (m *Dense) ToRows() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// RawData returns the backing row-major slice without copying.
//
// Writes through the returned slice bypass bounds and NaN/Inf checks; it
// exists for in-place stencil kernels that have already validated their
// index ranges. Element (i, j) lives at RawData()[i*Cols()+j].
func (m *Dense) RawData() []float64 { return m.data }

// Clone returns a deep copy. Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// Do visits each element in row-major order and stops early when f returns false.
// Complexity: O(r*c), no allocations.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// String is a row-wise dump for diagnostics; not for hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
