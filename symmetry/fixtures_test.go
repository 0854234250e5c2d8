// SPDX-License-Identifier: MIT

package symmetry_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/satcheck"
	"github.com/katalvlaran/lvsym/symmetry"
	"github.com/stretchr/testify/require"
)

// cardinality4 is max x0+..+x3 s.t. x0+..+x3 <= 2; its group is S4.
func cardinality4() *core.Problem {
	p := core.NewProblem(core.WithName("card4"))
	for i := 0; i < 4; i++ {
		p.MustAddVariable(fmt.Sprintf("x%d", i), core.WithObj(-1))
	}
	p.MustAddConstraint(core.Linear("cap", []int{0, 1, 2, 3}, nil, -core.Infinity, 2))
	return p
}

// assignment3 is a 3x3 assignment: x_ij at 3i+j, every row picks exactly
// one column and every column is used at most once.
func assignment3(rowKind func(string, ...int) core.Constraint) *core.Problem {
	p := core.NewProblem(core.WithName("assign3"))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.MustAddVariable(fmt.Sprintf("x%d%d", i, j), core.WithObj(-1))
		}
	}
	for i := 0; i < 3; i++ {
		p.MustAddConstraint(rowKind(fmt.Sprintf("row%d", i), 3*i, 3*i+1, 3*i+2))
	}
	for j := 0; j < 3; j++ {
		p.MustAddConstraint(core.SetPacking(fmt.Sprintf("col%d", j), j, j+3, j+6))
	}
	return p
}

// latin3 is assignment3 with every row and column "== 1". Its group also
// contains the transpose.
func latin3() *core.Problem {
	p := core.NewProblem(core.WithName("latin3"))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p.MustAddVariable(fmt.Sprintf("x%d%d", i, j), core.WithObj(-1))
		}
	}
	for i := 0; i < 3; i++ {
		p.MustAddConstraint(core.SetPartitioning(fmt.Sprintf("row%d", i), 3*i, 3*i+1, 3*i+2))
	}
	for j := 0; j < 3; j++ {
		p.MustAddConstraint(core.SetPartitioning(fmt.Sprintf("col%d", j), j, j+3, j+6))
	}
	return p
}

// colSwap and rowSwap are the grid symmetries of assignment3.
func colSwap(a, b int) []int {
	perm := identity(9)
	for i := 0; i < 3; i++ {
		perm[3*i+a], perm[3*i+b] = 3*i+b, 3*i+a
	}
	return perm
}

func rowSwap(a, b int) []int {
	perm := identity(9)
	for j := 0; j < 3; j++ {
		perm[3*a+j], perm[3*b+j] = 3*b+j, 3*a+j
	}
	return perm
}

// twoPairs has two independent interchangeable pairs {x0,x1} and {x2,x3},
// followed by extra variables with distinct objectives.
func twoPairs(extra int) *core.Problem {
	p := core.NewProblem(core.WithName("pairs"))
	p.MustAddVariable("a0", core.WithObj(-2))
	p.MustAddVariable("a1", core.WithObj(-2))
	p.MustAddVariable("b0", core.WithObj(-1))
	p.MustAddVariable("b1", core.WithObj(-1))
	for k := 0; k < extra; k++ {
		p.MustAddVariable(fmt.Sprintf("z%d", k), core.WithObj(float64(k+1)))
	}
	p.MustAddConstraint(core.Knapsack("ka", []int{0, 1}, []float64{3, 3}, 4))
	p.MustAddConstraint(core.Knapsack("kb", []int{2, 3}, []float64{5, 5}, 7))
	return p
}

// twoPairsGenerators returns (0 1) and (2 3) over n variables.
func twoPairsGenerators(n int) [][]int {
	a, b := identity(n), identity(n)
	a[0], a[1] = 1, 0
	b[2], b[3] = 3, 2
	return [][]int{a, b}
}

func identity(n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return perm
}

// requireValid checks that the artifacts keep an optimal solution.
func requireValid(t *testing.T, p *core.Problem, arts []symmetry.Artifact) {
	t.Helper()
	rep, err := satcheck.Check(context.Background(), p, arts)
	require.NoError(t, err)
	require.True(t, rep.Valid(), rep.String())
	for _, a := range arts {
		require.True(t, satcheck.Satisfies(a, rep.Reduced.Solution), a.String())
	}
}
