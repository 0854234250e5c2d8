// SPDX-License-Identifier: MIT
// File: methods.go
// Role: Variable and constraint lifecycle & queries on Problem.
//
// Determinism:
//   - Variables and constraints are enumerated in insertion order.
//
// Concurrency:
//   - Variable catalog protected by muVars, rows by muConss.
//   - Lock order is muVars -> muConss wherever both are held.
package core

import "fmt"

// Name returns the informational problem name.
func (p *Problem) Name() string { return p.name }

// AddVariable appends a binary [0,1] variable with zero objective, then
// applies opts in order.
//
// Implementation:
//   - Stage 1: Validate the name (ErrEmptyName).
//   - Stage 2: Apply options to a fresh Variable and validate bounds.
//   - Stage 3: Under muVars, reject duplicates and register.
//
// Returns the new variable index.
// Complexity: O(len(opts)).
func (p *Problem) AddVariable(name string, opts ...VarOption) (int, error) {
	if name == "" {
		return -1, ErrEmptyName
	}

	v := Variable{Name: name, LB: 0, UB: 1, Type: Binary}
	for _, opt := range opts {
		opt(&v)
	}
	if !validBounds(v.LB, v.UB) {
		return -1, fmt.Errorf("AddVariable(%s): %w", name, ErrBadBounds)
	}

	p.muVars.Lock()
	defer p.muVars.Unlock()

	if _, exists := p.names[name]; exists {
		return -1, fmt.Errorf("AddVariable(%s): %w", name, ErrDuplicateName)
	}
	p.vars = append(p.vars, v)
	p.names[name] = len(p.vars) - 1

	return len(p.vars) - 1, nil
}

// MustAddVariable is AddVariable for fixtures; it panics on error.
func (p *Problem) MustAddVariable(name string, opts ...VarOption) int {
	idx, err := p.AddVariable(name, opts...)
	if err != nil {
		panic(err)
	}
	return idx
}

// NVars returns the number of variables.
func (p *Problem) NVars() int {
	p.muVars.RLock()
	defer p.muVars.RUnlock()

	return len(p.vars)
}

// Var returns a copy of variable i.
func (p *Problem) Var(i int) (Variable, error) {
	p.muVars.RLock()
	defer p.muVars.RUnlock()

	if i < 0 || i >= len(p.vars) {
		return Variable{}, ErrVarIndex
	}

	return p.vars[i], nil
}

// Vars returns a snapshot copy of all variables in index order.
// Complexity: O(V).
func (p *Problem) Vars() []Variable {
	p.muVars.RLock()
	defer p.muVars.RUnlock()

	out := make([]Variable, len(p.vars))
	copy(out, p.vars)

	return out
}

// VarIndex looks a variable up by name.
func (p *Problem) VarIndex(name string) (int, bool) {
	p.muVars.RLock()
	defer p.muVars.RUnlock()

	i, ok := p.names[name]
	return i, ok
}

// SetBounds tightens or relaxes the bounds of variable i.
func (p *Problem) SetBounds(i int, lb, ub float64) error {
	if !validBounds(lb, ub) {
		return ErrBadBounds
	}

	p.muVars.Lock()
	defer p.muVars.Unlock()

	if i < 0 || i >= len(p.vars) {
		return ErrVarIndex
	}
	p.vars[i].LB, p.vars[i].UB = lb, ub

	return nil
}

// AddConstraint validates and appends c, returning its index.
//
// Implementation:
//   - Stage 1: Under muVars read lock, validate variable references.
//   - Stage 2: Validate kind-specific shape (coefficients, resultant, literals).
//   - Stage 3: Under muConss, deep-copy and append.
//
// Complexity: O(len(c.Vars)).
func (p *Problem) AddConstraint(c Constraint) (int, error) {
	p.muVars.RLock()
	nvars := len(p.vars)
	p.muVars.RUnlock()

	if err := validateConstraint(c, nvars); err != nil {
		return -1, fmt.Errorf("AddConstraint(%s): %w", c.Name, err)
	}

	p.muConss.Lock()
	defer p.muConss.Unlock()

	cc := cloneConstraint(c)
	if cc.Name == "" {
		cc.Name = fmt.Sprintf("c%d", len(p.conss))
	}
	p.conss = append(p.conss, cc)

	return len(p.conss) - 1, nil
}

// MustAddConstraint is AddConstraint for fixtures; it panics on error.
func (p *Problem) MustAddConstraint(c Constraint) int {
	idx, err := p.AddConstraint(c)
	if err != nil {
		panic(err)
	}
	return idx
}

// NConss returns the number of constraints, deleted ones included.
func (p *Problem) NConss() int {
	p.muConss.RLock()
	defer p.muConss.RUnlock()

	return len(p.conss)
}

// Constraint returns a copy of constraint i.
func (p *Problem) Constraint(i int) (Constraint, error) {
	p.muConss.RLock()
	defer p.muConss.RUnlock()

	if i < 0 || i >= len(p.conss) {
		return Constraint{}, ErrConsIndex
	}

	return cloneConstraint(p.conss[i]), nil
}

// Constraints returns a snapshot copy of all constraints, deleted ones
// included so that indices stay stable.
// Complexity: O(total nonzeros).
func (p *Problem) Constraints() []Constraint {
	p.muConss.RLock()
	defer p.muConss.RUnlock()

	out := make([]Constraint, len(p.conss))
	for i := range p.conss {
		out[i] = cloneConstraint(p.conss[i])
	}

	return out
}

// ActiveConstraints returns the indices of constraints not marked deleted.
func (p *Problem) ActiveConstraints() []int {
	p.muConss.RLock()
	defer p.muConss.RUnlock()

	out := make([]int, 0, len(p.conss))
	for i := range p.conss {
		if !p.conss[i].Deleted {
			out = append(out, i)
		}
	}

	return out
}

// DeleteConstraint marks constraint i deleted. Idempotent.
func (p *Problem) DeleteConstraint(i int) error {
	p.muConss.Lock()
	defer p.muConss.Unlock()

	if i < 0 || i >= len(p.conss) {
		return ErrConsIndex
	}
	p.conss[i].Deleted = true

	return nil
}

// Clone returns a deep copy of the problem.
// Complexity: O(V + total nonzeros).
func (p *Problem) Clone() *Problem {
	p.muVars.RLock()
	defer p.muVars.RUnlock()
	p.muConss.RLock()
	defer p.muConss.RUnlock()

	q := &Problem{
		name:  p.name,
		vars:  make([]Variable, len(p.vars)),
		names: make(map[string]int, len(p.names)),
		conss: make([]Constraint, len(p.conss)),
	}
	copy(q.vars, p.vars)
	for k, v := range p.names {
		q.names[k] = v
	}
	for i := range p.conss {
		q.conss[i] = cloneConstraint(p.conss[i])
	}

	return q
}

func cloneConstraint(c Constraint) Constraint {
	out := c
	out.Vars = append([]int(nil), c.Vars...)
	if c.Coefs != nil {
		out.Coefs = append([]float64(nil), c.Coefs...)
	}
	if c.BoundTypes != nil {
		out.BoundTypes = append([]BoundType(nil), c.BoundTypes...)
	}
	if c.Bounds != nil {
		out.Bounds = append([]float64(nil), c.Bounds...)
	}

	return out
}

func validateConstraint(c Constraint, nvars int) error {
	for _, v := range c.Vars {
		if v < 0 || v >= nvars {
			return ErrVarIndex
		}
	}
	if c.Coefs != nil && len(c.Coefs) != len(c.Vars) {
		return ErrCoefLength
	}

	switch c.Kind {
	case KindLinear, KindKnapsack, KindVarbound:
		if c.LHS > c.RHS {
			return ErrBadConstraint
		}
		if c.Kind == KindVarbound && len(c.Vars) != 2 {
			return ErrBadConstraint
		}
	case KindAnd, KindOr:
		if c.Resultant < 0 || c.Resultant >= nvars {
			return ErrVarIndex
		}
	case KindBoundDisjunction:
		if len(c.BoundTypes) != len(c.Vars) || len(c.Bounds) != len(c.Vars) {
			return ErrBadConstraint
		}
	}

	return nil
}
