// SPDX-License-Identifier: MIT

// File: instance.go
// Role: YAML instance format and its translation to core.Problem.
package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/oracle"
	"github.com/katalvlaran/lvsym/symmetry"
)

// instance is one problem file.
//
//	name: knapsack
//	vars:
//	  - {name: x0, obj: -1}
//	  - {name: y, type: integer, lb: 0, ub: 5}
//	constraints:
//	  - {name: cap, kind: linear, vars: [x0, x1], coefs: [3, 3], rhs: 4}
//	  - {kind: setpacking, vars: [x0, x1]}
//	generators:          # optional, skips the built-in search
//	  - [1, 0, 2]
//	log10_order: 0.301
type instance struct {
	Name        string     `yaml:"name"`
	Vars        []varSpec  `yaml:"vars"`
	Constraints []consSpec `yaml:"constraints"`
	Generators  [][]int    `yaml:"generators,omitempty"`
	Log10Order  float64    `yaml:"log10_order,omitempty"`
}

type varSpec struct {
	Name string   `yaml:"name"`
	Type string   `yaml:"type,omitempty"`
	Obj  float64  `yaml:"obj,omitempty"`
	LB   *float64 `yaml:"lb,omitempty"`
	UB   *float64 `yaml:"ub,omitempty"`
}

type consSpec struct {
	Name  string    `yaml:"name,omitempty"`
	Kind  string    `yaml:"kind"`
	Vars  []string  `yaml:"vars"`
	Coefs []float64 `yaml:"coefs,omitempty"`
	LHS   *float64  `yaml:"lhs,omitempty"`
	RHS   *float64  `yaml:"rhs,omitempty"`

	// Parity is used by xor rows.
	Parity bool `yaml:"parity,omitempty"`
	// Resultant is used by and/or rows.
	Resultant string `yaml:"resultant,omitempty"`
	// Senses (">=" or "<=") and Bounds are used by bound disjunctions.
	Senses []string  `yaml:"senses,omitempty"`
	Bounds []float64 `yaml:"bounds,omitempty"`
}

// loadInstance decodes one instance; unknown keys are rejected.
func loadInstance(r io.Reader) (*instance, error) {
	var in instance
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return nil, errors.Wrap(err, "decode instance")
	}
	return &in, nil
}

// problem builds the core.Problem the instance describes.
func (in *instance) problem() (*core.Problem, error) {
	p := core.NewProblem(core.WithName(in.Name), core.WithCapacity(len(in.Vars), len(in.Constraints)))

	for _, v := range in.Vars {
		var opts []core.VarOption
		if v.Type != "" {
			t, ok := core.ParseVarType(v.Type)
			if !ok {
				return nil, errors.Errorf("variable %s: unknown type %q", v.Name, v.Type)
			}
			opts = append(opts, core.WithType(t))
		}
		opts = append(opts, core.WithObj(v.Obj))
		if v.LB != nil || v.UB != nil {
			opts = append(opts, withBounds(v.LB, v.UB))
		}
		if _, err := p.AddVariable(v.Name, opts...); err != nil {
			return nil, err
		}
	}

	for k, c := range in.Constraints {
		cons, err := in.constraint(p, c)
		if err != nil {
			return nil, errors.Wrapf(err, "constraint %d (%s)", k, c.Name)
		}
		if _, err := p.AddConstraint(cons); err != nil {
			return nil, errors.Wrapf(err, "constraint %d (%s)", k, c.Name)
		}
	}

	return p, nil
}

// withBounds overrides only the bounds that are given.
func withBounds(lb, ub *float64) core.VarOption {
	return func(v *core.Variable) {
		if lb != nil {
			v.LB = *lb
		}
		if ub != nil {
			v.UB = *ub
		}
	}
}

func (in *instance) constraint(p *core.Problem, c consSpec) (core.Constraint, error) {
	kind, ok := core.ParseConsKind(c.Kind)
	if !ok {
		return core.Constraint{}, fmt.Errorf("unknown kind %q", c.Kind)
	}
	vars, err := indices(p, c.Vars)
	if err != nil {
		return core.Constraint{}, err
	}
	lhs, rhs := -core.Infinity, core.Infinity
	if c.LHS != nil {
		lhs = *c.LHS
	}
	if c.RHS != nil {
		rhs = *c.RHS
	}

	switch kind {
	case core.KindLinear:
		return core.Linear(c.Name, vars, c.Coefs, lhs, rhs), nil
	case core.KindKnapsack:
		return core.Knapsack(c.Name, vars, c.Coefs, rhs), nil
	case core.KindSetPartitioning:
		return core.SetPartitioning(c.Name, vars...), nil
	case core.KindSetPacking:
		return core.SetPacking(c.Name, vars...), nil
	case core.KindSetCovering:
		return core.SetCovering(c.Name, vars...), nil
	case core.KindLogicor:
		return core.Logicor(c.Name, vars...), nil
	case core.KindVarbound:
		if len(vars) != 2 || len(c.Coefs) != 2 {
			return core.Constraint{}, fmt.Errorf("varbound needs two variables and two coefficients")
		}
		return core.Varbound(c.Name, vars[0], vars[1], c.Coefs[1], lhs, rhs), nil
	case core.KindXor:
		return core.Xor(c.Name, c.Parity, vars...), nil
	case core.KindAnd, core.KindOr:
		r, ok := p.VarIndex(c.Resultant)
		if !ok {
			return core.Constraint{}, fmt.Errorf("unknown resultant %q", c.Resultant)
		}
		if kind == core.KindAnd {
			return core.And(c.Name, r, vars...), nil
		}
		return core.Or(c.Name, r, vars...), nil
	case core.KindBoundDisjunction:
		types := make([]core.BoundType, len(c.Senses))
		for k, s := range c.Senses {
			switch s {
			case ">=":
				types[k] = core.BoundLower
			case "<=":
				types[k] = core.BoundUpper
			default:
				return core.Constraint{}, fmt.Errorf("unknown sense %q", s)
			}
		}
		return core.BoundDisjunction(c.Name, vars, types, c.Bounds), nil
	default:
		return core.Constraint{Name: c.Name, Kind: core.KindCustom, Vars: vars}, nil
	}
}

func indices(p *core.Problem, names []string) ([]int, error) {
	out := make([]int, len(names))
	for k, n := range names {
		i, ok := p.VarIndex(n)
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", n)
		}
		out[k] = i
	}
	return out, nil
}

// oracle returns the fixed generators of the instance when it lists any,
// otherwise the built-in search configured by cfg.
func (in *instance) oracle(cfg symmetry.Config) oracle.Oracle {
	if len(in.Generators) > 0 {
		return oracle.NewFixed(in.Generators, in.Log10Order)
	}
	return cfg.NewOracle()
}

// fromProblem renders p in the instance format. Binary [0,1] variables
// omit type and bounds; infinite sides are omitted. Deleted rows are
// dropped.
func fromProblem(p *core.Problem) *instance {
	vars := p.Vars()
	in := &instance{Name: p.Name(), Vars: make([]varSpec, len(vars))}
	for i, v := range vars {
		s := varSpec{Name: v.Name, Obj: v.Obj}
		if v.Type != core.Binary {
			s.Type = v.Type.String()
		}
		if v.Type != core.Binary || v.LB != 0 || v.UB != 1 {
			s.LB, s.UB = finite(v.LB), finite(v.UB)
		}
		in.Vars[i] = s
	}

	varName := func(i int) string { return vars[i].Name }
	for _, c := range p.Constraints() {
		if c.Deleted {
			continue
		}
		s := consSpec{Name: c.Name, Kind: c.Kind.String(), Vars: make([]string, len(c.Vars))}
		for k, v := range c.Vars {
			s.Vars[k] = varName(v)
		}
		switch c.Kind {
		case core.KindLinear, core.KindVarbound:
			s.Coefs, s.LHS, s.RHS = c.Coefs, finite(c.LHS), finite(c.RHS)
		case core.KindKnapsack:
			s.Coefs, s.RHS = c.Coefs, finite(c.RHS)
		case core.KindXor:
			s.Parity = c.Parity
		case core.KindAnd, core.KindOr:
			s.Resultant = varName(c.Resultant)
		case core.KindBoundDisjunction:
			s.Bounds = c.Bounds
			s.Senses = make([]string, len(c.BoundTypes))
			for k, t := range c.BoundTypes {
				s.Senses[k] = ">="
				if t == core.BoundUpper {
					s.Senses[k] = "<="
				}
			}
		}
		in.Constraints = append(in.Constraints, s)
	}

	return in
}

func finite(v float64) *float64 {
	if core.IsInfinity(v) || core.IsNegInfinity(v) {
		return nil
	}
	return &v
}
