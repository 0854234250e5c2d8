// SPDX-License-Identifier: MIT

// File: errors.go
// Role: sentinel errors shared by all constructors.
package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewVariables is returned when a size parameter is below the
	// minimum that gives the family any symmetry.
	ErrTooFewVariables = errors.New("builder: too few variables")

	// ErrBadParameter is returned for out-of-range weights, capacities,
	// edges or counts.
	ErrBadParameter = errors.New("builder: invalid parameter")

	// ErrNeedRandSource is returned by randomized constructors when no RNG
	// was configured via WithSeed or WithRand.
	ErrNeedRandSource = errors.New("builder: random source required")

	// ErrConstructFailed wraps failures reported by core while populating
	// the problem, and nil constructors.
	ErrConstructFailed = errors.New("builder: construction failed")
)

// builderErrorf prefixes an error with the constructor name and wraps the
// given sentinel.
func builderErrorf(method string, sentinel error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprintf(format, args...), sentinel)
}

// validateMin checks got >= min.
func validateMin(method, param string, got, min int) error {
	if got < min {
		return builderErrorf(method, ErrTooFewVariables, "%s=%d < min=%d", param, got, min)
	}
	return nil
}
