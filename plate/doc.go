// SPDX-License-Identifier: MIT

// Package plate computes the steady-state temperature distribution of a thin
// rectangular plate whose four edges are held at constant temperatures.
//
// What:
//
//   - Solver owns an R×C grid (R, C ≥ 3). Row 0 is held at Top, row R-1 at
//     Bottom (corners included), and column 0 / C-1 of the remaining rows at
//     Left / Right. Interior cells start at InteriorStart.
//   - Sweep relaxes every interior cell once, in row-major order, replacing it
//     in place with the mean of its four neighbours:
//
//	         up
//	   left  T0  right      T0 = (up + down + left + right) / 4
//	        down
//
//     Because writes happen immediately, a cell reads the already-updated
//     values above and to its left and the previous values below and to its
//     right (Gauss–Seidel ordering). A double-buffered Jacobi sweep converges
//     to the same plate along a different, longer trajectory.
//   - A sweep is converged when no interior cell moved by more than Tolerance
//     (a change exactly equal to Tolerance counts as converged).
//   - Snapshot returns an immutable copy of the grid for renderers.
//   - Solve drives Sweep until convergence and feeds every snapshot, starting
//     with the initial one, to the registered observers.
//
// State machine:
//
//	Uninitialized → Initialized → {Sweeping}* → Converged
//
// No transition leaves Converged; sweeping a converged plate again reports
// convergence again.
//
// Concurrency:
//
//   - A Solver is single-threaded state and is not safe for concurrent use.
//     Snapshots are independent copies and may be shared freely.
//
// Complexity:
//
//   - NewSolver, Reset, Snapshot: O(R×C) time and memory.
//   - Sweep: O((R-2)×(C-2)) time, O(1) extra memory.
//
// Errors:
//
//   - ErrInvalidDimensions: Rows < 3 or Cols < 3 (no interior cell).
//   - ErrNonFinite: a temperature or the tolerance is NaN or ±Inf.
//   - ErrNilSolver, ErrUninitialized: Solve called without a usable solver.
//   - ErrSweepLimit: Solve stopped by WithMaxSweeps before convergence.
package plate
