// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binaries adds n binary variables x0..x(n-1) with the given objective.
func binaries(p *core.Problem, n int, obj float64) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = p.MustAddVariable("x"+string(rune('0'+i)), core.WithObj(obj))
	}
	return out
}

func TestEncode_SymmetricPacking(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 1)
	p.MustAddConstraint(core.SetPacking("pack", x...))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NVars)
	assert.Equal(t, 1, m.NVarColors)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, matrix.SenseLE, m.Rows[0].Sense)
	assert.Equal(t, 1.0, m.Rows[0].RHS)
	assert.Equal(t, 3, m.NNZ())
	assert.False(t, m.Trivial())

	assert.True(t, m.IsAutomorphism([]int{1, 0, 2}))
	assert.True(t, m.IsAutomorphism([]int{1, 2, 0}))
}

func TestEncode_ObjectiveSplitsColors(t *testing.T) {
	p := core.NewProblem()
	a := p.MustAddVariable("a", core.WithObj(1))
	b := p.MustAddVariable("b", core.WithObj(2))
	c := p.MustAddVariable("c", core.WithObj(1))
	p.MustAddConstraint(core.SetPacking("pack", a, b, c))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NVarColors)
	assert.Equal(t, m.VarColors[a], m.VarColors[c])
	assert.NotEqual(t, m.VarColors[a], m.VarColors[b])
	assert.Equal(t, [][]int{{a, c}, {b}}, m.ColorClasses())

	assert.True(t, m.IsAutomorphism([]int{c, b, a}))
	assert.False(t, m.IsAutomorphism([]int{b, a, c}))
}

func TestEncode_ToleranceMergesNoise(t *testing.T) {
	p := core.NewProblem()
	a := p.MustAddVariable("a", core.WithObj(1))
	b := p.MustAddVariable("b", core.WithObj(1+1e-12))
	p.MustAddConstraint(core.SetCovering("cov", a, b))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NVarColors)

	m, err = matrix.Encode(p, matrix.WithEpsilon(0))
	require.NoError(t, err)
	assert.Equal(t, 2, m.NVarColors)
}

func TestEncode_RangedRowSplitsInTwo(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 2, 0)
	p.MustAddConstraint(core.Linear("r", x, []float64{1, 1}, 1, 2))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, -1.0, m.Rows[0].RHS)
	assert.Equal(t, 2.0, m.Rows[1].RHS)
	assert.NotEqual(t, m.Rows[0].Color, m.Rows[1].Color)
	assert.Equal(t, 2, m.NCoefColors) // +1 and -1
}

func TestEncode_GreaterEqualMatchesNegatedLessEqual(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 4, 0)
	p.MustAddConstraint(core.SetCovering("ge", x[0], x[1]))
	p.MustAddConstraint(core.Linear("le", []int{x[2], x[3]}, []float64{-1, -1}, -core.Infinity, -1))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 2)
	assert.Equal(t, m.Rows[0].Color, m.Rows[1].Color)
	assert.Equal(t, 1, m.NCoefColors)

	// x0<->x2, x1<->x3 exchanges the two rows.
	assert.True(t, m.IsAutomorphism([]int{2, 3, 0, 1}))
}

func TestEncode_EqualityRow(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 0)
	p.MustAddConstraint(core.SetPartitioning("eq", x...))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, matrix.SenseEQ, m.Rows[0].Sense)
}

func TestEncode_DuplicateEntriesMerge(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 2, 0)
	p.MustAddConstraint(core.Linear("dup", []int{x[0], x[0], x[1]}, []float64{1, 1, 2}, -core.Infinity, 3))
	p.MustAddConstraint(core.Linear("zero", []int{x[0], x[0]}, []float64{1, -1}, -core.Infinity, 3))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	require.Len(t, m.Rows[0].Entries, 2)
	assert.Equal(t, m.Rows[0].Entries[0].Color, m.Rows[0].Entries[1].Color)
}

func TestEncode_AndResultantIsDistinct(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 0)
	p.MustAddConstraint(core.And("and", x[2], x[0], x[1]))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, matrix.SenseAND, m.Rows[0].Sense)
	assert.Equal(t, 2, m.NCoefColors)

	assert.True(t, m.IsAutomorphism([]int{1, 0, 2}))
	assert.False(t, m.IsAutomorphism([]int{2, 1, 0}))
}

func TestEncode_AndOrDiffer(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 6, 0)
	p.MustAddConstraint(core.And("and", x[2], x[0], x[1]))
	p.MustAddConstraint(core.Or("or", x[5], x[3], x[4]))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NRowColors)
	assert.False(t, m.IsAutomorphism([]int{3, 4, 5, 0, 1, 2}))
}

func TestEncode_XorDuplicatesCancel(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 0)
	p.MustAddConstraint(core.Xor("x", true, x[0], x[1], x[1], x[2]))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	assert.Len(t, m.Rows[0].Entries, 2)
	assert.Equal(t, 1.0, m.Rows[0].RHS)
}

func TestEncode_BoundDisjunction(t *testing.T) {
	p := core.NewProblem()
	a := p.MustAddVariable("a", core.WithType(core.Integer), core.WithBounds(0, 5))
	b := p.MustAddVariable("b", core.WithType(core.Integer), core.WithBounds(0, 5))
	c := p.MustAddVariable("c", core.WithType(core.Integer), core.WithBounds(0, 5))

	p.MustAddConstraint(core.BoundDisjunction("bd",
		[]int{a, b, c, c},
		[]core.BoundType{core.BoundLower, core.BoundLower, core.BoundUpper, core.BoundLower},
		[]float64{3, 3, 1, 4}))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	require.Len(t, m.Rows[0].Entries, 3)
	assert.True(t, m.IsAutomorphism([]int{b, a, c}))
	assert.False(t, m.IsAutomorphism([]int{c, b, a}))
}

func TestEncode_Errors(t *testing.T) {
	_, err := matrix.Encode(nil)
	require.ErrorIs(t, err, matrix.ErrNilProblem)

	p := core.NewProblem()
	x := binaries(p, 2, 0)
	p.MustAddConstraint(core.Constraint{Name: "ext", Kind: core.KindCustom, Vars: x})
	_, err = matrix.Encode(p)
	require.ErrorIs(t, err, matrix.ErrCannotEncode)
	assert.Contains(t, err.Error(), "ext")

	q := core.NewProblem()
	y := binaries(q, 2, 0)
	q.MustAddConstraint(core.Linear("nan", y, []float64{1, math.NaN()}, 0, 1))
	_, err = matrix.Encode(q)
	require.ErrorIs(t, err, matrix.ErrNaN)

	r := core.NewProblem()
	z := r.MustAddVariable("z", core.WithType(core.Integer), core.WithBounds(0, 9))
	r.MustAddConstraint(core.BoundDisjunction("bd", []int{z, z, z},
		[]core.BoundType{core.BoundLower, core.BoundLower, core.BoundUpper}, []float64{1, 2, 3}))
	_, err = matrix.Encode(r)
	require.ErrorIs(t, err, matrix.ErrCannotEncode)
}

func TestEncode_SkipsDeleted(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 0)
	i := p.MustAddConstraint(core.Constraint{Name: "ext", Kind: core.KindCustom, Vars: x})
	p.MustAddConstraint(core.SetPacking("pack", x...))
	require.NoError(t, p.DeleteConstraint(i))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	require.Len(t, m.Rows, 1)
	assert.Equal(t, 1, m.Rows[0].Cons)
}

func TestEncode_DegreeColors(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 0)
	p.MustAddConstraint(core.SetPacking("a", x[0], x[1]))
	p.MustAddConstraint(core.SetCovering("b", x[0], x[2]))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, 1, m.NVarColors)

	m, err = matrix.Encode(p, matrix.WithDegreeColors(true))
	require.NoError(t, err)
	assert.Equal(t, 2, m.NVarColors)
	assert.Equal(t, m.VarColors[x[1]], m.VarColors[x[2]])
}

func TestEncode_TypesAndNonlinearity(t *testing.T) {
	p := core.NewProblem()
	a := p.MustAddVariable("a", core.WithType(core.Integer), core.WithBounds(0, 1))
	b := p.MustAddVariable("b")
	c := p.MustAddVariable("c", core.WithNonlinear())
	p.MustAddConstraint(core.Linear("l", []int{a, b, c}, []float64{1, 1, 1}, -core.Infinity, 2))

	m, err := matrix.Encode(p)
	require.NoError(t, err)
	assert.Equal(t, 3, m.NVarColors)
	assert.True(t, m.Trivial())
}

func TestIsAutomorphism_RejectsMalformed(t *testing.T) {
	p := core.NewProblem()
	x := binaries(p, 3, 0)
	p.MustAddConstraint(core.SetPacking("pack", x...))
	m, err := matrix.Encode(p)
	require.NoError(t, err)

	assert.False(t, m.IsAutomorphism([]int{0, 1}))
	assert.False(t, m.IsAutomorphism([]int{0, 0, 1}))
	assert.False(t, m.IsAutomorphism([]int{0, 1, 3}))
	assert.True(t, m.IsAutomorphism([]int{0, 1, 2}))
}

func TestWithEpsilon_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { matrix.WithEpsilon(-1) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.NaN()) })
	assert.Panics(t, func() { matrix.WithEpsilon(math.Inf(1)) })
	assert.NotPanics(t, func() { matrix.WithEpsilon(1e-6) })
}
