// SPDX-License-Identifier: MIT

package oracle

import (
	"context"
	"fmt"

	"github.com/katalvlaran/lvsym/matrix"
)

// Fixed replays a precomputed generator list. A Fixed built with
// available == false models a host without an oracle backend.
type Fixed struct {
	gens       [][]int
	log10Order float64
	available  bool
}

// NewFixed returns an available oracle answering gens and log10Order.
// The generators are copied.
func NewFixed(gens [][]int, log10Order float64) *Fixed {
	cp := make([][]int, len(gens))
	for i, g := range gens {
		cp[i] = append([]int(nil), g...)
	}

	return &Fixed{gens: cp, log10Order: log10Order, available: true}
}

// Unavailable returns an oracle whose capability query fails.
func Unavailable() *Fixed { return &Fixed{} }

// Name implements Oracle.
func (f *Fixed) Name() string { return "fixed" }

// Available implements Oracle.
func (f *Fixed) Available() bool { return f.available }

// Automorphisms implements Oracle. Generators are checked for shape only;
// automorphism verification is the caller's concern. Identity generators
// are dropped.
func (f *Fixed) Automorphisms(ctx context.Context, m *matrix.ColoredMatrix, maxGenerators int) (*Result, error) {
	if !f.available {
		return nil, ErrUnavailable
	}
	if m == nil {
		return nil, ErrNilMatrix
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("Automorphisms: %w", err)
		}
	}

	res := &Result{Log10Order: f.log10Order, Complete: true}
	for gi, g := range f.gens {
		if err := checkShape(g, m.NVars); err != nil {
			return nil, fmt.Errorf("Automorphisms: generator %d: %w", gi, err)
		}
		if isIdentity(g) {
			continue
		}
		if maxGenerators > 0 && len(res.Generators) >= maxGenerators {
			res.Complete = false
			break
		}
		res.Generators = append(res.Generators, append([]int(nil), g...))
	}

	return res, nil
}

func checkShape(perm []int, n int) error {
	if len(perm) != n {
		return ErrGeneratorShape
	}
	seen := make([]bool, n)
	for _, j := range perm {
		if j < 0 || j >= n || seen[j] {
			return ErrGeneratorShape
		}
		seen[j] = true
	}

	return nil
}

func isIdentity(perm []int) bool {
	for i, j := range perm {
		if i != j {
			return false
		}
	}
	return true
}
