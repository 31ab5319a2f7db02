// SPDX-License-Identifier: MIT

package history

import "errors"

var (
	// ErrRunNotFound indicates no run with the requested id exists.
	ErrRunNotFound = errors.New("history: run not found")

	// ErrNoFrames indicates SaveRun was given no snapshots.
	ErrNoFrames = errors.New("history: no frames to save")
)
