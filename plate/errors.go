// SPDX-License-Identifier: MIT

package plate

import "errors"

var (
	// ErrInvalidDimensions indicates a grid with fewer than 3 rows or columns,
	// which leaves no interior cell to relax.
	ErrInvalidDimensions = errors.New("plate: rows and cols must both be >= 3")

	// ErrNonFinite indicates a NaN or ±Inf temperature or tolerance.
	ErrNonFinite = errors.New("plate: temperatures and tolerance must be finite")

	// ErrNilSolver indicates a nil *Solver was passed to Solve.
	ErrNilSolver = errors.New("plate: solver is nil")

	// ErrUninitialized indicates a zero-value Solver that was never built by NewSolver.
	ErrUninitialized = errors.New("plate: solver is not initialized")

	// ErrSweepLimit indicates Solve reached its sweep cap before equilibrium.
	ErrSweepLimit = errors.New("plate: sweep limit reached before equilibrium")
)
