// SPDX-License-Identifier: MIT

package symmetry

import "errors"

var (
	// ErrNilProblem indicates NewEpisode was called without a problem.
	ErrNilProblem = errors.New("symmetry: problem is nil")

	// ErrNilOracle indicates NewEpisode was called without an oracle.
	ErrNilOracle = errors.New("symmetry: oracle is nil")

	// ErrInvalidSymmetry indicates a generator that is not an automorphism
	// of the encoded problem. Fatal for the episode.
	ErrInvalidSymmetry = errors.New("symmetry: generator is not an automorphism")

	// ErrInvalidConfig indicates a Config value out of range.
	ErrInvalidConfig = errors.New("symmetry: invalid config")
)
