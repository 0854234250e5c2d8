// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// All encoder entry points return these sentinels (possibly wrapped with
// fmt.Errorf("ctx: %w", ErrX)); callers branch with errors.Is.

package matrix

import "errors"

// ERROR CLASSES
// -------------
// ErrCannotEncode is a *signal*, not a failure: the caller is expected to
// skip symmetry computation for this episode and continue solving.
// ErrNilProblem and ErrNaN are programmer/input errors.

var (
	// ErrCannotEncode indicates the problem contains a constraint the encoder
	// cannot express as colored rows (unknown constraint type, pathological
	// bound disjunction, conflicting duplicate entries).
	ErrCannotEncode = errors.New("matrix: cannot encode problem")

	// ErrNilProblem indicates a nil *core.Problem was passed to Encode.
	ErrNilProblem = errors.New("matrix: problem is nil")

	// ErrNaN indicates a NaN coefficient, side or bound was encountered.
	ErrNaN = errors.New("matrix: NaN encountered")
)
