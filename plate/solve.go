// SPDX-License-Identifier: MIT

package plate

import "fmt"

// Result summarizes a Solve call.
type Result struct {
	// Sweeps is the number of sweeps this call ran.
	Sweeps int
	// Converged is true when the last sweep reached equilibrium.
	Converged bool
	// Final is the snapshot after the last sweep (the initial grid if none ran).
	Final Snapshot
}

// Solve runs the relaxation loop: it reports the current grid to the
// observers, then sweeps and reports again until a sweep converges.
//
// Behavior highlights:
//   - A solver that is already Converged is reported once and returned as is.
//   - With WithMaxSweeps(n), at most n sweeps run; hitting the cap before
//     equilibrium returns the partial Result together with ErrSweepLimit.
//   - An observer error aborts immediately and is returned wrapped with the
//     sweep number it was raised at.
//
// Errors: ErrNilSolver, ErrUninitialized, ErrSweepLimit, observer errors.
// Complexity: O(n×R×C) for n sweeps (one snapshot copy per sweep).
func Solve(s *Solver, opts ...Option) (Result, error) {
	if s == nil {
		return Result{}, ErrNilSolver
	}
	if s.State() == Uninitialized {
		return Result{}, fmt.Errorf("plate.Solve: %w", ErrUninitialized)
	}
	o := gatherOptions(opts...)

	res := Result{Final: s.Snapshot()}
	res.Converged = res.Final.Converged
	if err := o.notify(res.Final); err != nil {
		return res, fmt.Errorf("plate.Solve: observer at sweep %d: %w", res.Final.Sweep, err)
	}

	for !res.Converged {
		if o.maxSweeps > 0 && res.Sweeps >= o.maxSweeps {
			return res, fmt.Errorf("plate.Solve: %d sweeps, max delta %g: %w",
				res.Sweeps, s.MaxDelta(), ErrSweepLimit)
		}
		res.Converged = s.Sweep()
		res.Sweeps++
		res.Final = s.Snapshot()
		if err := o.notify(res.Final); err != nil {
			return res, fmt.Errorf("plate.Solve: observer at sweep %d: %w", res.Final.Sweep, err)
		}
	}

	return res, nil
}
