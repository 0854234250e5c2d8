// SPDX-License-Identifier: MIT

package orbitope

import "errors"

var (
	// ErrTooFewGenerators indicates fewer than two qualifying generators.
	ErrTooFewGenerators = errors.New("orbitope: fewer than two qualifying generators")

	// ErrNotInvolution indicates a generator with a cycle longer than two.
	ErrNotInvolution = errors.New("orbitope: generator is not an involution")

	// ErrCycleMismatch indicates generators with different 2-cycle counts.
	ErrCycleMismatch = errors.New("orbitope: generators differ in 2-cycle count")

	// ErrIncomplete indicates that too few generators could be placed as
	// column transpositions.
	ErrIncomplete = errors.New("orbitope: column extension incomplete")

	// ErrMixedRow indicates a row mixing binary and non-binary variables.
	ErrMixedRow = errors.New("orbitope: row mixes binary and non-binary variables")
)
