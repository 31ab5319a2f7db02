// SPDX-License-Identifier: MIT

// Package plate: functional configuration for the Solve driver.
//
// Design goals:
//   - Deterministic behavior: observers run in registration order.
//   - Safe by construction: constructors panic only on nonsensical values
//     (programmer error), never on data.
//   - Zero value works: no options means "sweep until equilibrium, observe nothing".

package plate

// DefaultMaxSweeps of 0 means Solve runs until equilibrium with no cap.
const DefaultMaxSweeps = 0

const (
	panicMaxSweepsNegative = "plate: WithMaxSweeps: n must be >= 0"
	panicObserverNil       = "plate: WithObserver: observer must not be nil"
)

// Observer receives every snapshot Solve produces, the initial grid first.
// A non-nil error stops the solve.
type Observer func(Snapshot) error

// Option configures Solve.
type Option func(*options)

type options struct {
	observers []Observer
	maxSweeps int
}

// WithObserver appends fn to the observers called after initialization and after each sweep.
// Panics if fn is nil.
func WithObserver(fn Observer) Option {
	if fn == nil {
		panic(panicObserverNil)
	}

	return func(o *options) {
		o.observers = append(o.observers, fn)
	}
}

// WithMaxSweeps caps the number of sweeps one Solve call may run.
// n == 0 disables the cap. Panics if n < 0.
func WithMaxSweeps(n int) Option {
	if n < 0 {
		panic(panicMaxSweepsNegative)
	}

	return func(o *options) {
		o.maxSweeps = n
	}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := options{maxSweeps: DefaultMaxSweeps}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// notify hands snap to every observer in order and stops at the first error.
func (o *options) notify(snap Snapshot) error {
	for _, fn := range o.observers {
		if err := fn(snap); err != nil {
			return err
		}
	}

	return nil
}
