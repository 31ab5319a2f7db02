// SPDX-License-Identifier: MIT

package plate

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/isotherm/matrix"
)

// Snapshot is a read-only copy of a plate grid taken between sweeps.
// Sweep is 0 for the initial grid and n after the n-th sweep.
type Snapshot struct {
	Sweep     int
	Converged bool
	MaxDelta  float64

	grid *matrix.Dense
}

var _ matrix.Matrix = Snapshot{}

// Rows returns the number of grid rows (0 for an empty snapshot).
func (s Snapshot) Rows() int {
	if s.grid == nil {
		return 0
	}

	return s.grid.Rows()
}

// Cols returns the number of grid columns (0 for an empty snapshot).
func (s Snapshot) Cols() int {
	if s.grid == nil {
		return 0
	}

	return s.grid.Cols()
}

// At returns the temperature at (r, c).
// Errors: matrix.ErrOutOfRange, or matrix.ErrNilMatrix for an empty snapshot.
func (s Snapshot) At(r, c int) (float64, error) {
	if s.grid == nil {
		return 0, fmt.Errorf("plate.Snapshot.At(%d,%d): %w", r, c, matrix.ErrNilMatrix)
	}

	return s.grid.At(r, c)
}

// Values returns a fresh copy of the full grid.
func (s Snapshot) Values() [][]float64 {
	if s.grid == nil {
		return nil
	}

	return s.grid.ToRows()
}

// Interior returns a fresh copy of the interior cells: rows 1..R-2, cols 1..C-2.
func (s Snapshot) Interior() [][]float64 {
	if s.grid == nil {
		return nil
	}
	rows, cols := s.grid.Shape()
	data := s.grid.RawData()
	out := make([][]float64, 0, rows-2)
	for r := 1; r < rows-1; r++ {
		row := make([]float64, cols-2)
		copy(row, data[r*cols+1:r*cols+cols-1])
		out = append(out, row)
	}

	return out
}

// Matrix returns the grid as a gonum *mat.Dense copy.
// Errors: matrix.ErrNilMatrix for an empty snapshot.
func (s Snapshot) Matrix() (*mat.Dense, error) {
	if s.grid == nil {
		return nil, fmt.Errorf("plate.Snapshot.Matrix: %w", matrix.ErrNilMatrix)
	}

	return matrix.ToGonum(s.grid)
}
