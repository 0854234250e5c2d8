// SPDX-License-Identifier: MIT
// Package core_test verifies variable and constraint lifecycle of core.Problem.

package core_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/katalvlaran/lvsym/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddVariable_Defaults(t *testing.T) {
	p := core.NewProblem(core.WithName("p"))
	i, err := p.AddVariable("x")
	require.NoError(t, err)
	require.Equal(t, 0, i)

	v, err := p.Var(i)
	require.NoError(t, err)
	assert.Equal(t, core.Binary, v.Type)
	assert.Equal(t, 0.0, v.LB)
	assert.Equal(t, 1.0, v.UB)
	assert.Equal(t, "p", p.Name())
}

func TestAddVariable_Errors(t *testing.T) {
	p := core.NewProblem()
	_, err := p.AddVariable("")
	require.ErrorIs(t, err, core.ErrEmptyName)

	p.MustAddVariable("x")
	_, err = p.AddVariable("x")
	require.ErrorIs(t, err, core.ErrDuplicateName)

	_, err = p.AddVariable("y", core.WithBounds(2, 1))
	require.ErrorIs(t, err, core.ErrBadBounds)

	_, err = p.Var(7)
	require.ErrorIs(t, err, core.ErrVarIndex)
	require.ErrorIs(t, p.SetBounds(7, 0, 1), core.ErrVarIndex)
	require.ErrorIs(t, p.SetBounds(0, 1, 0), core.ErrBadBounds)
}

func TestWithType_Bounds(t *testing.T) {
	p := core.NewProblem()
	i := p.MustAddVariable("z", core.WithType(core.Integer))
	v, _ := p.Var(i)
	assert.Equal(t, core.Integer, v.Type)
	assert.True(t, core.IsInfinity(v.UB))

	j := p.MustAddVariable("w", core.WithType(core.Continuous), core.WithBounds(-1, 3), core.WithObj(2), core.WithNonlinear())
	w, _ := p.Var(j)
	assert.Equal(t, -1.0, w.LB)
	assert.Equal(t, 3.0, w.UB)
	assert.Equal(t, 2.0, w.Obj)
	assert.True(t, w.Nonlinear)

	idx, ok := p.VarIndex("w")
	assert.True(t, ok)
	assert.Equal(t, j, idx)
}

func TestParseNames(t *testing.T) {
	for _, vt := range []core.VarType{core.Binary, core.Integer, core.ImplInt, core.Continuous} {
		got, ok := core.ParseVarType(vt.String())
		require.True(t, ok, vt.String())
		assert.Equal(t, vt, got)
	}
	_, ok := core.ParseVarType("complex")
	assert.False(t, ok)

	for k := core.KindLinear; k <= core.KindCustom; k++ {
		got, ok := core.ParseConsKind(k.String())
		require.True(t, ok, k.String())
		assert.Equal(t, k, got)
	}
	_, ok = core.ParseConsKind("sos1")
	assert.False(t, ok)
}

func TestAddConstraint_Validation(t *testing.T) {
	p := core.NewProblem()
	x := p.MustAddVariable("x")
	y := p.MustAddVariable("y")

	cases := []struct {
		name string
		c    core.Constraint
		want error
	}{
		{"unknown var", core.SetPacking("a", x, 5), core.ErrVarIndex},
		{"coef length", core.Linear("b", []int{x, y}, []float64{1}, 0, 1), core.ErrCoefLength},
		{"sides", core.Linear("c", []int{x}, []float64{1}, 2, 1), core.ErrBadConstraint},
		{"varbound arity", core.Constraint{Kind: core.KindVarbound, Vars: []int{x}, LHS: 0, RHS: 1}, core.ErrBadConstraint},
		{"resultant", core.And("d", 9, x, y), core.ErrVarIndex},
		{"literals", core.BoundDisjunction("e", []int{x, y}, []core.BoundType{core.BoundLower}, []float64{1, 1}), core.ErrBadConstraint},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.AddConstraint(tc.c)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, p.NConss())
}

func TestAddConstraint_CopiesAndNames(t *testing.T) {
	p := core.NewProblem()
	x := p.MustAddVariable("x")
	y := p.MustAddVariable("y")

	vars := []int{x, y}
	i := p.MustAddConstraint(core.Constraint{Kind: core.KindSetPacking, Vars: vars, LHS: -core.Infinity, RHS: 1})
	vars[0] = y

	c, err := p.Constraint(i)
	require.NoError(t, err)
	assert.Equal(t, []int{x, y}, c.Vars)
	assert.Equal(t, "c0", c.Name)

	_, err = p.Constraint(3)
	require.ErrorIs(t, err, core.ErrConsIndex)
}

func TestDeleteConstraint_KeepsIndices(t *testing.T) {
	p := core.NewProblem()
	x := p.MustAddVariable("x")
	y := p.MustAddVariable("y")
	p.MustAddConstraint(core.SetPacking("a", x, y))
	p.MustAddConstraint(core.SetCovering("b", x, y))

	require.NoError(t, p.DeleteConstraint(0))
	require.NoError(t, p.DeleteConstraint(0))
	require.ErrorIs(t, p.DeleteConstraint(2), core.ErrConsIndex)

	assert.Equal(t, 2, p.NConss())
	assert.Equal(t, []int{1}, p.ActiveConstraints())
	assert.True(t, p.Constraints()[0].Deleted)
}

func TestClone_Deep(t *testing.T) {
	p := core.NewProblem(core.WithCapacity(2, 1))
	x := p.MustAddVariable("x")
	y := p.MustAddVariable("y")
	p.MustAddConstraint(core.Knapsack("k", []int{x, y}, []float64{2, 3}, 4))

	q := p.Clone()
	require.NoError(t, q.SetBounds(x, 0, 0))
	require.NoError(t, q.DeleteConstraint(0))

	v, _ := p.Var(x)
	assert.Equal(t, 1.0, v.UB)
	assert.False(t, p.Constraints()[0].Deleted)
	assert.Equal(t, 2, q.NVars())
}

func TestConcurrentAddVariable(t *testing.T) {
	p := core.NewProblem()
	const num = 100
	var wg sync.WaitGroup
	errs := make(chan error, num)
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(id int) {
			defer wg.Done()
			_, err := p.AddVariable(fmt.Sprintf("x%d", id))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, num, p.NVars())
}
