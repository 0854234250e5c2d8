// SPDX-License-Identifier: MIT

// File: satcheck.go
// Role: solve a 0/1 model with and without symmetry handling.
package satcheck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/symmetry"
)

var (
	// ErrUnsupported indicates a variable, row or artifact outside the
	// 0/1 fragment this package handles.
	ErrUnsupported = errors.New("satcheck: unsupported model")

	// ErrVarIndex indicates a variable index outside the problem.
	ErrVarIndex = errors.New("satcheck: variable index out of range")

	// ErrNilProblem indicates a nil problem.
	ErrNilProblem = errors.New("satcheck: problem is nil")
)

const (
	satisfiable   = 1
	unsatisfiable = -1
	pollInterval  = 10 * time.Millisecond
)

// Result is the outcome of one Solve.
type Result struct {
	// Feasible reports whether some 0/1 assignment satisfies everything.
	Feasible bool
	// Optimized is true when Objective is the minimum.
	Optimized bool
	// Objective is the objective value of Solution.
	Objective int
	// Solution is a satisfying assignment, nil when infeasible.
	Solution []bool
}

// Solve searches a solution of p that also satisfies arts, minimizing the
// objective when it is integral and optimization is enabled.
//
// Errors: ErrNilProblem, ErrUnsupported, ErrVarIndex (wrapped), ctx.Err().
func Solve(ctx context.Context, p *core.Problem, arts []symmetry.Artifact, opts ...Option) (*Result, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	o := gatherOptions(opts...)
	m, err := compile(p, arts, o)
	if err != nil {
		if o.optimize && errors.Is(err, ErrUnsupported) {
			// retry as a pure feasibility question when only the
			// objective is out of reach
			o.optimize = false
			if m2, err2 := compile(p, arts, o); err2 == nil {
				m, err = m2, nil
			}
		}
		if err != nil {
			return nil, fmt.Errorf("Solve: %w", err)
		}
	}

	g := gini.New()
	m.c.ToCnf(g)

	solve := func(bound int) (int, error) {
		if bound >= 0 {
			g.Assume(m.obj.Leq(bound))
		}
		g.Assume(m.roots...)
		return wait(ctx, g.GoSolve())
	}

	r, err := solve(-1)
	if err != nil {
		return nil, err
	}
	if r != satisfiable {
		return &Result{}, nil
	}
	res := &Result{Feasible: true}

	if m.obj != nil {
		// smallest bound that stays satisfiable
		lo, hi := 0, m.obj.N()
		for lo < hi {
			mid := lo + (hi-lo)/2
			r, err := solve(mid)
			if err != nil {
				return nil, err
			}
			if r == satisfiable {
				hi = mid
			} else {
				lo = mid + 1
			}
		}
		if r, err = solve(lo); err != nil {
			return nil, err
		}
		if r != satisfiable {
			return nil, fmt.Errorf("Solve: bound %d lost satisfiability", lo)
		}
	}
	res.Optimized = o.optimize

	vars := p.Vars()
	res.Solution = make([]bool, len(m.x))
	obj := 0.0
	for i, x := range m.x {
		res.Solution[i] = g.Value(x)
		if res.Solution[i] {
			obj += vars[i].Obj
		}
	}
	if res.Optimized {
		res.Objective, _ = integral(obj)
	}

	return res, nil
}

// wait polls a running solve until it ends or ctx is done.
func wait(ctx context.Context, gs inter.Solve) (int, error) {
	t := time.NewTicker(pollInterval)
	defer t.Stop()

	for {
		if r, ok := gs.Test(); ok {
			return r, nil
		}
		select {
		case <-ctx.Done():
			gs.Stop()
			return 0, ctx.Err()
		case <-t.C:
		}
	}
}

// Report compares a problem with and without symmetry handling.
type Report struct {
	Base    *Result
	Reduced *Result
}

// Valid reports whether the handling kept a solution, and an optimal one
// when both sides were optimized.
func (r *Report) Valid() bool {
	if !r.Base.Feasible {
		return !r.Reduced.Feasible
	}
	if !r.Reduced.Feasible {
		return false
	}
	if r.Base.Optimized && r.Reduced.Optimized {
		return r.Base.Objective == r.Reduced.Objective
	}
	return true
}

// String implements fmt.Stringer.
func (r *Report) String() string {
	side := func(x *Result) string {
		switch {
		case !x.Feasible:
			return "infeasible"
		case x.Optimized:
			return fmt.Sprintf("optimum %d", x.Objective)
		default:
			return "feasible"
		}
	}
	return fmt.Sprintf("base %s, with symmetry handling %s, valid=%t", side(r.Base), side(r.Reduced), r.Valid())
}

// Check solves p alone and p with arts.
func Check(ctx context.Context, p *core.Problem, arts []symmetry.Artifact, opts ...Option) (*Report, error) {
	base, err := Solve(ctx, p, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("Check: base: %w", err)
	}
	reduced, err := Solve(ctx, p, arts, opts...)
	if err != nil {
		return nil, fmt.Errorf("Check: reduced: %w", err)
	}
	return &Report{Base: base, Reduced: reduced}, nil
}

// Satisfies reports whether the 0/1 assignment x meets artifact a.
func Satisfies(a symmetry.Artifact, x []bool) bool {
	val := func(v int) int {
		if x[v] {
			return 1
		}
		return 0
	}
	lexGeq := func(a, b []int) bool {
		for i := range a {
			if va, vb := val(a[i]), val(b[i]); va != vb {
				return va > vb
			}
		}
		return true
	}

	switch a.Kind {
	case symmetry.ArtifactInequality, symmetry.ArtifactChain:
		for k := 0; k+1 < len(a.Vars); k++ {
			if val(a.Vars[k]) < val(a.Vars[k+1]) {
				return false
			}
		}
		return true
	case symmetry.ArtifactFixing:
		for _, v := range a.Vars {
			if x[v] {
				return false
			}
		}
		return true
	case symmetry.ArtifactOrbitope:
		for c := 0; len(a.Matrix) > 0 && c+1 < len(a.Matrix[0]); c++ {
			left, right := make([]int, len(a.Matrix)), make([]int, len(a.Matrix))
			for r, row := range a.Matrix {
				left[r], right[r] = row[c], row[c+1]
			}
			if !lexGeq(left, right) {
				return false
			}
		}
		return true
	case symmetry.ArtifactSymresack:
		ident := make([]int, len(a.Perm))
		for i := range ident {
			ident[i] = i
		}
		return lexGeq(ident, a.Perm)
	default:
		return false
	}
}
