// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidValue indicates an environment variable or flag value that
	// cannot be parsed into its setting.
	ErrInvalidValue = errors.New("config: invalid value")

	// ErrNegativeTolerance indicates a tolerance below zero, which no sweep
	// can ever satisfy.
	ErrNegativeTolerance = errors.New("config: tolerance must not be negative")
)
