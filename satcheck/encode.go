// SPDX-License-Identifier: MIT

// File: encode.go
// Role: problem rows and symmetry artifacts as circuit literals.
package satcheck

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/symmetry"
)

const intTol = 1e-9

// model is the compiled circuit.
type model struct {
	c     *logic.C
	x     []z.Lit // one input per problem variable
	roots []z.Lit // assumed true on every solve

	obj       *logic.CardSort // nil when not optimizing
	objOffset int
}

func compile(p *core.Problem, arts []symmetry.Artifact, o Options) (*model, error) {
	m := &model{c: logic.NewC()}
	vars := p.Vars()
	m.x = make([]z.Lit, len(vars))
	for i, v := range vars {
		m.x[i] = m.c.Lit()
		if err := m.bounds(i, v); err != nil {
			return nil, err
		}
	}

	for _, ci := range p.ActiveConstraints() {
		cons, err := p.Constraint(ci)
		if err != nil {
			return nil, err
		}
		root, err := m.constraint(cons, o)
		if err != nil {
			return nil, fmt.Errorf("constraint %s: %w", cons.Name, err)
		}
		m.roots = append(m.roots, root)
	}

	for ai, a := range arts {
		root, err := m.artifact(a)
		if err != nil {
			return nil, fmt.Errorf("artifact %d (%s): %w", ai, a.Kind, err)
		}
		m.roots = append(m.roots, root)
	}

	if o.optimize {
		if err := m.objective(vars, o); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *model) bounds(i int, v core.Variable) error {
	if v.Type == core.Continuous || v.LB < -intTol || v.UB > 1+intTol || v.LB > v.UB {
		return fmt.Errorf("variable %s: %w", v.Name, ErrUnsupported)
	}
	if v.LB > intTol {
		m.roots = append(m.roots, m.x[i])
	}
	if v.UB < 1-intTol {
		m.roots = append(m.roots, m.x[i].Not())
	}
	return nil
}

func (m *model) lit(v int) (z.Lit, error) {
	if v < 0 || v >= len(m.x) {
		return z.LitNull, ErrVarIndex
	}
	return m.x[v], nil
}

func integral(a float64) (int, bool) {
	r := math.Round(a)
	return int(r), math.Abs(a-r) <= intTol
}

// weighted replicates the literal of every term |a| times, using the
// negated literal for negative a. Returns the multiset and the shift
// sum(|a| for a < 0) so that sum a x = len(true lits) - shift.
func (m *model) weighted(vars []int, coefs []float64, maxWeight int) ([]z.Lit, int, error) {
	merged := make(map[int]float64, len(vars))
	order := make([]int, 0, len(vars))
	for k, v := range vars {
		if _, ok := merged[v]; !ok {
			order = append(order, v)
		}
		merged[v] += coefs[k]
	}
	sort.Ints(order)

	var ms []z.Lit
	shift := 0
	for _, v := range order {
		w, ok := integral(merged[v])
		if !ok {
			return nil, 0, fmt.Errorf("coefficient %g: %w", merged[v], ErrUnsupported)
		}
		x, err := m.lit(v)
		if err != nil {
			return nil, 0, err
		}
		if w < 0 {
			x, w = x.Not(), -w
			shift += w
		}
		if len(ms)+w > maxWeight {
			return nil, 0, fmt.Errorf("weight above %d: %w", maxWeight, ErrUnsupported)
		}
		for k := 0; k < w; k++ {
			ms = append(ms, x)
		}
	}
	return ms, shift, nil
}

func (m *model) constraint(cons core.Constraint, o Options) (z.Lit, error) {
	if vars, coefs, lhs, rhs, ok := cons.LinearForm(); ok {
		return m.linear(vars, coefs, lhs, rhs, o.maxWeight)
	}

	xs := make([]z.Lit, len(cons.Vars))
	for k, v := range cons.Vars {
		x, err := m.lit(v)
		if err != nil {
			return z.LitNull, err
		}
		xs[k] = x
	}

	switch cons.Kind {
	case core.KindXor:
		acc := m.c.F
		for _, x := range xs {
			acc = m.c.Xor(acc, x)
		}
		if cons.Parity {
			return acc, nil
		}
		return acc.Not(), nil

	case core.KindAnd, core.KindOr:
		r, err := m.lit(cons.Resultant)
		if err != nil {
			return z.LitNull, err
		}
		f := m.c.Ands(xs...)
		if cons.Kind == core.KindOr {
			f = m.c.Ors(xs...)
		}
		return m.c.Xor(r, f).Not(), nil

	case core.KindBoundDisjunction:
		terms := make([]z.Lit, 0, len(xs))
		for k, x := range xs {
			terms = append(terms, m.boundLiteral(x, cons.BoundTypes[k], cons.Bounds[k]))
		}
		return m.c.Ors(terms...), nil

	default:
		return z.LitNull, fmt.Errorf("kind %s: %w", cons.Kind, ErrUnsupported)
	}
}

// boundLiteral is x >= b or x <= b over a 0/1 variable.
func (m *model) boundLiteral(x z.Lit, t core.BoundType, b float64) z.Lit {
	if t == core.BoundLower {
		switch {
		case b <= intTol:
			return m.c.T
		case b > 1+intTol:
			return m.c.F
		default:
			return x
		}
	}
	switch {
	case b >= 1-intTol:
		return m.c.T
	case b < -intTol:
		return m.c.F
	default:
		return x.Not()
	}
}

func (m *model) linear(vars []int, coefs []float64, lhs, rhs float64, maxWeight int) (z.Lit, error) {
	ms, shift, err := m.weighted(vars, coefs, maxWeight)
	if err != nil {
		return z.LitNull, err
	}

	// lhs + shift <= count <= rhs + shift
	lo, hi := math.Inf(-1), math.Inf(1)
	if !core.IsNegInfinity(lhs) {
		lo = math.Ceil(lhs + float64(shift) - intTol)
	}
	if !core.IsInfinity(rhs) {
		hi = math.Floor(rhs + float64(shift) + intTol)
	}
	if lo > hi || hi < 0 || lo > float64(len(ms)) {
		return m.c.F, nil
	}
	if len(ms) == 0 {
		return m.c.T, nil
	}

	card := m.c.CardSort(ms)
	root := m.c.T
	if lo > 0 {
		root = m.c.And(root, card.Geq(int(lo)))
	}
	if hi < float64(len(ms)) {
		root = m.c.And(root, card.Leq(int(hi)))
	}
	return root, nil
}

func (m *model) objective(vars []core.Variable, o Options) error {
	idx := make([]int, 0, len(vars))
	coefs := make([]float64, 0, len(vars))
	for i, v := range vars {
		if v.Obj != 0 {
			idx = append(idx, i)
			coefs = append(coefs, v.Obj)
		}
	}
	if len(idx) == 0 {
		return nil
	}
	ms, shift, err := m.weighted(idx, coefs, o.maxWeight)
	if err != nil {
		return fmt.Errorf("objective: %w", err)
	}
	m.obj = m.c.CardSort(ms)
	m.objOffset = -shift
	return nil
}

// lexGeq is a >=lex b over literal vectors of equal length.
func (m *model) lexGeq(a, b []z.Lit) z.Lit {
	ge := m.c.T
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] == b[i] {
			continue
		}
		strict := m.c.And(a[i], b[i].Not())
		equal := m.c.Xor(a[i], b[i]).Not()
		ge = m.c.Or(strict, m.c.And(equal, ge))
	}
	return ge
}

func (m *model) lits(vars []int) ([]z.Lit, error) {
	out := make([]z.Lit, len(vars))
	for k, v := range vars {
		x, err := m.lit(v)
		if err != nil {
			return nil, err
		}
		out[k] = x
	}
	return out, nil
}

func (m *model) artifact(a symmetry.Artifact) (z.Lit, error) {
	switch a.Kind {
	case symmetry.ArtifactInequality, symmetry.ArtifactChain:
		xs, err := m.lits(a.Vars)
		if err != nil {
			return z.LitNull, err
		}
		root := m.c.T
		for k := 0; k+1 < len(xs); k++ {
			root = m.c.And(root, m.c.Implies(xs[k+1], xs[k]))
		}
		return root, nil

	case symmetry.ArtifactFixing:
		xs, err := m.lits(a.Vars)
		if err != nil {
			return z.LitNull, err
		}
		return m.c.Ands(notAll(xs)...), nil

	case symmetry.ArtifactOrbitope:
		if len(a.Matrix) == 0 {
			return m.c.T, nil
		}
		cols := make([][]z.Lit, len(a.Matrix[0]))
		for _, row := range a.Matrix {
			if len(row) != len(cols) {
				return z.LitNull, ErrUnsupported
			}
			xs, err := m.lits(row)
			if err != nil {
				return z.LitNull, err
			}
			for c, x := range xs {
				cols[c] = append(cols[c], x)
			}
		}
		root := m.c.T
		for c := 0; c+1 < len(cols); c++ {
			root = m.c.And(root, m.lexGeq(cols[c], cols[c+1]))
		}
		return root, nil

	case symmetry.ArtifactSymresack:
		if len(a.Perm) != len(m.x) {
			return z.LitNull, ErrVarIndex
		}
		var xs, ys []z.Lit
		for i, j := range a.Perm {
			if i != j {
				xs = append(xs, m.x[i])
				ys = append(ys, m.x[j])
			}
		}
		return m.lexGeq(xs, ys), nil

	default:
		return z.LitNull, ErrUnsupported
	}
}

func notAll(xs []z.Lit) []z.Lit {
	out := make([]z.Lit, len(xs))
	for k, x := range xs {
		out[k] = x.Not()
	}
	return out
}
