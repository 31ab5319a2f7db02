// SPDX-License-Identifier: MIT

package matrix

// Matrix is the read-only surface shared by Dense and by the immutable grid
// snapshots handed out by the plate solver. Validators and statistics accept
// it so they work on either.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns the element at (i, j) or a wrapped ErrOutOfRange.
	At(i, j int) (float64, error)
}
