// SPDX-License-Identifier: MIT

package plate

import (
	"fmt"
	"math"

	"github.com/katalvlaran/isotherm/matrix"
)

// Solver owns one plate grid and relaxes it toward equilibrium.
// The zero value is Uninitialized; build solvers with NewSolver.
type Solver struct {
	cfg      Config
	grid     *matrix.Dense
	state    State
	sweeps   int
	maxDelta float64
}

// NewSolver validates cfg, allocates the grid and writes the initial values.
//
// Implementation:
//   - Stage 1: cfg.Validate (shape, then finiteness).
//   - Stage 2: allocate a Rows×Cols matrix.Dense.
//   - Stage 3: initialize (see Reset).
//
// Errors: ErrInvalidDimensions, ErrNonFinite (wrapped, match with errors.Is).
// Complexity: O(R×C).
func NewSolver(cfg Config) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("plate.NewSolver: %w", err)
	}
	grid, err := matrix.NewDense(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, fmt.Errorf("plate.NewSolver: %w", err)
	}
	s := &Solver{cfg: cfg, grid: grid}
	if err := s.initialize(); err != nil {
		return nil, fmt.Errorf("plate.NewSolver: %w", err)
	}

	return s, nil
}

// paintGrid fills every cell of grid with InteriorStart, then rows 0 and R-1
// with Top and Bottom across all columns, then column 0 and C-1 of rows
// 1..R-2 with Left and Right. The write order is what gives corners to the
// rows. grid must be cfg.Rows×cfg.Cols.
//
// Errors: matrix.ErrDimensionMismatch, matrix.ErrOutOfRange, matrix.ErrNaNInf (wrapped).
func paintGrid(grid *matrix.Dense, cfg Config) error {
	rows, cols := cfg.Rows, cfg.Cols
	if grid.Rows() != rows || grid.Cols() != cols {
		return fmt.Errorf("paint %dx%d grid as %dx%d: %w", grid.Rows(), grid.Cols(), rows, cols, matrix.ErrDimensionMismatch)
	}
	if err := grid.Fill(cfg.InteriorStart); err != nil {
		return fmt.Errorf("paint interior: %w", err)
	}
	if err := grid.FillRow(0, 0, cols, cfg.Top); err != nil {
		return fmt.Errorf("paint top: %w", err)
	}
	if err := grid.FillRow(rows-1, 0, cols, cfg.Bottom); err != nil {
		return fmt.Errorf("paint bottom: %w", err)
	}
	if err := grid.FillCol(0, 1, rows-1, cfg.Left); err != nil {
		return fmt.Errorf("paint left: %w", err)
	}
	if err := grid.FillCol(cols-1, 1, rows-1, cfg.Right); err != nil {
		return fmt.Errorf("paint right: %w", err)
	}

	return nil
}

// initialize paints the grid and rewinds the sweep counters.
func (s *Solver) initialize() error {
	if err := paintGrid(s.grid, s.cfg); err != nil {
		return err
	}
	s.state = Initialized
	s.sweeps = 0
	s.maxDelta = 0

	return nil
}

// Reset restores the freshly initialized grid, so the same trajectory can be
// replayed. It is a no-op on an Uninitialized solver.
// Panics if the grid can no longer be painted, which NewSolver rules out.
func (s *Solver) Reset() {
	if s.grid == nil {
		return
	}
	if err := s.initialize(); err != nil {
		panic("plate: Reset: " + err.Error())
	}
}

// Sweep relaxes every interior cell once and reports whether the plate is at
// equilibrium.
//
// Implementation:
//   - Visit r = 1..R-2, then c = 1..C-2 (row-major, ascending).
//   - new = (up + down + left + right) / 4.0 read from the live buffer.
//   - Compare |new - old| against Tolerance with the old value captured
//     before the write; any change > Tolerance marks the sweep unconverged.
//   - Write new immediately, so later cells of this sweep see it.
//
// Boundary cells are never written. On an Uninitialized solver Sweep does
// nothing and returns true.
//
// Complexity: O((R-2)×(C-2)), no allocations.
func (s *Solver) Sweep() bool {
	if s.grid == nil {
		return true
	}
	var (
		data      = s.grid.RawData()
		rows      = s.cfg.Rows
		cols      = s.cfg.Cols
		tol       = s.cfg.Tolerance
		converged = true
		maxDelta  float64
		r, c, k   int
		old, nv   float64
		delta     float64
	)
	for r = 1; r < rows-1; r++ {
		for c = 1; c < cols-1; c++ {
			k = r*cols + c
			old = data[k]
			nv = (data[k-cols] + data[k+cols] + data[k-1] + data[k+1]) / 4.0
			delta = math.Abs(nv - old)
			if delta > tol {
				converged = false
			}
			if delta > maxDelta {
				maxDelta = delta
			}
			data[k] = nv
		}
	}

	s.sweeps++
	s.maxDelta = maxDelta
	switch {
	case converged:
		s.state = Converged
	case s.state != Converged:
		s.state = Sweeping
	}

	return converged
}

// Snapshot returns an immutable copy of the current grid.
// Complexity: O(R×C).
func (s *Solver) Snapshot() Snapshot {
	if s.grid == nil {
		return Snapshot{}
	}

	return Snapshot{
		Sweep:     s.sweeps,
		Converged: s.state == Converged,
		MaxDelta:  s.maxDelta,
		grid:      s.grid.Clone(),
	}
}

// Config returns the configuration the solver was built with.
func (s *Solver) Config() Config { return s.cfg }

// State returns the current lifecycle stage.
func (s *Solver) State() State { return s.state }

// Sweeps returns how many sweeps ran since initialization (or the last Reset).
func (s *Solver) Sweeps() int { return s.sweeps }

// MaxDelta returns the largest per-cell change made by the most recent sweep,
// or 0 before the first sweep.
func (s *Solver) MaxDelta() float64 { return s.maxDelta }
