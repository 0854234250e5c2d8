// SPDX-License-Identifier: MIT

// File: api.go
// Role: the Constructor type and the BuildProblem orchestrator.
package builder

import (
	"fmt"

	"github.com/katalvlaran/lvsym/core"
)

// Constructor appends one instance family to p using the resolved
// configuration. Constructors validate their parameters before touching p
// and return sentinel-wrapped errors; they never panic.
type Constructor func(p *core.Problem, cfg builderConfig) error

// BuildProblem creates a Problem named name, resolves bopts and applies cons
// in order. With more than one constructor, constructor k names its
// variables and rows under the scope "b<k>.".
//
// Errors: a nil constructor yields ErrConstructFailed; constructor errors
// are returned wrapped as "BuildProblem: %w".
func BuildProblem(name string, bopts []BuilderOption, cons ...Constructor) (*core.Problem, error) {
	p := core.NewProblem(core.WithName(name))
	cfg := newBuilderConfig(bopts...)

	for i, fn := range cons {
		if fn == nil {
			return nil, fmt.Errorf("BuildProblem: nil constructor at index %d: %w", i, ErrConstructFailed)
		}
		local := cfg
		if len(cons) > 1 {
			local.scope = fmt.Sprintf("b%d.", i)
		}
		if err := fn(p, local); err != nil {
			return nil, fmt.Errorf("BuildProblem: %w", err)
		}
	}

	return p, nil
}

// addBinary adds a binary variable, converting core failures to
// ErrConstructFailed.
func addBinary(method string, p *core.Problem, name string, obj float64) (int, error) {
	i, err := p.AddVariable(name, core.WithObj(obj))
	if err != nil {
		return 0, fmt.Errorf("%s: AddVariable(%s): %v: %w", method, name, err, ErrConstructFailed)
	}
	return i, nil
}

// addRow adds c, converting core failures to ErrConstructFailed.
func addRow(method string, p *core.Problem, c core.Constraint) error {
	if _, err := p.AddConstraint(c); err != nil {
		return fmt.Errorf("%s: AddConstraint(%s): %v: %w", method, c.Name, err, ErrConstructFailed)
	}
	return nil
}

// grid adds rows*cols binaries named base<r>_<c> with objective obj and
// returns their indices.
func grid(method string, p *core.Problem, cfg builderConfig, base string, rows, cols int, obj float64) ([][]int, error) {
	out := make([][]int, rows)
	for r := range out {
		out[r] = make([]int, cols)
		for c := range out[r] {
			i, err := addBinary(method, p, cfg.name(base, r, c), obj)
			if err != nil {
				return nil, err
			}
			out[r][c] = i
		}
	}
	return out, nil
}

func column(m [][]int, c int) []int {
	out := make([]int, len(m))
	for r := range m {
		out[r] = m[r][c]
	}
	return out
}
