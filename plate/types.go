// SPDX-License-Identifier: MIT

package plate

import (
	"fmt"
	"math"
)

// MinDimension is the smallest row/column count that still has an interior cell.
const MinDimension = 3

// Reference scenario defaults.
const (
	DefaultRows          = 4
	DefaultCols          = 4
	DefaultTop           = 100.0
	DefaultBottom        = 200.0
	DefaultLeft          = 100.0
	DefaultRight         = 200.0
	DefaultInteriorStart = 0.0
	DefaultTolerance     = 0.2
)

// Config holds the plate shape, the four edge temperatures, the starting
// temperature of interior cells and the convergence tolerance.
// A Solver copies its Config; later changes to the caller's value have no effect.
type Config struct {
	Rows, Cols int

	Top    float64
	Bottom float64
	Left   float64
	Right  float64

	// InteriorStart is the initial value of every interior cell.
	InteriorStart float64

	// Tolerance is the largest per-cell change a sweep may make and still
	// count as converged. Negative values are accepted and never converge.
	Tolerance float64
}

// DefaultConfig returns the reference 4×4 plate: top=100, bottom=200,
// left=100, right=200, interior=0, tolerance=0.2.
func DefaultConfig() Config {
	return Config{
		Rows:          DefaultRows,
		Cols:          DefaultCols,
		Top:           DefaultTop,
		Bottom:        DefaultBottom,
		Left:          DefaultLeft,
		Right:         DefaultRight,
		InteriorStart: DefaultInteriorStart,
		Tolerance:     DefaultTolerance,
	}
}

// Validate checks the shape first, then that every numeric field is finite.
// Negative and non-physical temperatures are valid input.
func (c Config) Validate() error {
	if c.Rows < MinDimension || c.Cols < MinDimension {
		return fmt.Errorf("%dx%d: %w", c.Rows, c.Cols, ErrInvalidDimensions)
	}
	fields := []struct {
		name string
		v    float64
	}{
		{"top", c.Top},
		{"bottom", c.Bottom},
		{"left", c.Left},
		{"right", c.Right},
		{"interior start", c.InteriorStart},
		{"tolerance", c.Tolerance},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s=%v: %w", f.name, f.v, ErrNonFinite)
		}
	}

	return nil
}

// IsInterior reports whether (r, c) is an interior cell of a rows×cols plate.
func IsInterior(rows, cols, r, c int) bool {
	return r >= 1 && r <= rows-2 && c >= 1 && c <= cols-2
}

// IsBoundary reports whether (r, c) lies on the fixed outer edge of a rows×cols plate.
func IsBoundary(rows, cols, r, c int) bool {
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return false
	}

	return !IsInterior(rows, cols, r, c)
}

// BoundaryValue returns the constant a boundary cell is held at. Corners
// belong to the top/bottom rows. ok is false for interior or out-of-range cells.
func (c Config) BoundaryValue(r, col int) (v float64, ok bool) {
	if !IsBoundary(c.Rows, c.Cols, r, col) {
		return 0, false
	}
	switch {
	case r == 0:
		return c.Top, true
	case r == c.Rows-1:
		return c.Bottom, true
	case col == 0:
		return c.Left, true
	default:
		return c.Right, true
	}
}

// State is the solver lifecycle stage.
type State int

const (
	// Uninitialized is the zero Solver, never built by NewSolver.
	Uninitialized State = iota
	// Initialized holds the boundary and InteriorStart values; no sweep yet.
	Initialized
	// Sweeping means at least one sweep ran and none has converged.
	Sweeping
	// Converged means a sweep changed no interior cell by more than Tolerance.
	Converged
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Sweeping:
		return "sweeping"
	case Converged:
		return "converged"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}
