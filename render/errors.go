// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrEmptySnapshot indicates a snapshot without a grid.
	ErrEmptySnapshot = errors.New("render: snapshot has no grid")

	// ErrNoFrames indicates an HTML report with nothing to draw.
	ErrNoFrames = errors.New("render: no frames to render")
)
