// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"errors"

	"github.com/katalvlaran/lvsym/matrix"
)

var (
	// ErrUnavailable is returned by oracles whose backend cannot be invoked.
	ErrUnavailable = errors.New("oracle: automorphism oracle unavailable")

	// ErrNilMatrix indicates a nil *matrix.ColoredMatrix argument.
	ErrNilMatrix = errors.New("oracle: matrix is nil")

	// ErrGeneratorShape indicates a precomputed generator whose length does
	// not match the number of columns, or which is not a bijection.
	ErrGeneratorShape = errors.New("oracle: malformed generator")
)

// Oracle computes generators of the automorphism group of a colored matrix.
type Oracle interface {
	// Name identifies the backend in logs and reports.
	Name() string

	// Available reports whether Automorphisms can be invoked at all.
	Available() bool

	// Automorphisms returns at most maxGenerators generators
	// (maxGenerators <= 0 means no cap).
	Automorphisms(ctx context.Context, m *matrix.ColoredMatrix, maxGenerators int) (*Result, error)
}

// Result is the outcome of one oracle call.
type Result struct {
	// Generators are permutations of [0, m.NVars); none is the identity.
	Generators [][]int

	// Log10Order is log10 of the group order (a lower bound when !Complete).
	Log10Order float64

	// Complete is false when a cap or budget truncated the search.
	Complete bool

	// Nodes counts search-tree nodes visited (0 for replaying oracles).
	Nodes int
}
