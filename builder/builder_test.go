// SPDX-License-Identifier: MIT

package builder_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvsym/builder"
	"github.com/katalvlaran/lvsym/core"
)

func kinds(p *core.Problem) map[core.ConsKind]int {
	out := make(map[core.ConsKind]int)
	for _, c := range p.Constraints() {
		out[c.Kind]++
	}
	return out
}

func names(p *core.Problem) []string {
	out := make([]string, 0, p.NVars())
	for _, v := range p.Vars() {
		out = append(out, v.Name)
	}
	return out
}

func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		ctor      builder.Constructor
		opts      []builder.BuilderOption
		wantVars  int
		wantKinds map[core.ConsKind]int
		check     func(t *testing.T, p *core.Problem)
	}{
		{
			name:      "Cardinality(4,2)",
			ctor:      builder.Cardinality(4, 2),
			wantVars:  4,
			wantKinds: map[core.ConsKind]int{core.KindLinear: 1},
			check: func(t *testing.T, p *core.Problem) {
				assert.Equal(t, []string{"x0", "x1", "x2", "x3"}, names(p))
				c := p.Constraints()[0]
				assert.Equal(t, "card", c.Name)
				assert.Equal(t, 2.0, c.RHS)
				for _, v := range p.Vars() {
					assert.Equal(t, builder.DefaultObjective, v.Obj)
					assert.Equal(t, core.Binary, v.Type)
				}
			},
		},
		{
			name:      "Pairs(3)",
			ctor:      builder.Pairs(3),
			opts:      []builder.BuilderOption{builder.WithObjective(-2)},
			wantVars:  6,
			wantKinds: map[core.ConsKind]int{core.KindKnapsack: 3},
			check: func(t *testing.T, p *core.Problem) {
				assert.Equal(t, []string{"a0", "b0", "a1", "b1", "a2", "b2"}, names(p))
				assert.Equal(t, -6.0, p.Vars()[5].Obj)
				c := p.Constraints()[2]
				assert.Equal(t, []float64{4, 4}, c.Coefs)
				assert.Equal(t, 7.0, c.RHS)
			},
		},
		{
			name:      "Assignment(3)",
			ctor:      builder.Assignment(3),
			wantVars:  9,
			wantKinds: map[core.ConsKind]int{core.KindSetPartitioning: 3, core.KindSetPacking: 3},
			check: func(t *testing.T, p *core.Problem) {
				i, ok := p.VarIndex("x1_2")
				require.True(t, ok)
				assert.Equal(t, 5, i)
				assert.Equal(t, []int{2, 5, 8}, p.Constraints()[5].Vars)
			},
		},
		{
			name:      "Pigeonhole(3,2)",
			ctor:      builder.Pigeonhole(3, 2),
			wantVars:  6,
			wantKinds: map[core.ConsKind]int{core.KindSetCovering: 3, core.KindSetPacking: 2},
			check: func(t *testing.T, p *core.Problem) {
				assert.Equal(t, "hole1", p.Constraints()[4].Name)
				assert.Equal(t, []int{1, 3, 5}, p.Constraints()[4].Vars)
			},
		},
		{
			name:      "BinPacking",
			ctor:      builder.BinPacking([]float64{2, 2, 3}, 2, 4),
			wantVars:  8,
			wantKinds: map[core.ConsKind]int{core.KindSetPartitioning: 3, core.KindLinear: 2},
			check: func(t *testing.T, p *core.Problem) {
				load := p.Constraints()[4]
				assert.Equal(t, "load1", load.Name)
				assert.Equal(t, []int{1, 3, 5, 7}, load.Vars)
				assert.Equal(t, []float64{2, 2, 3, -4}, load.Coefs)
				assert.Equal(t, 1.0, p.Vars()[7].Obj)
			},
		},
		{
			name:      "Coloring(C4,3)",
			ctor:      builder.Coloring(4, builder.CycleEdges(4), 3),
			wantVars:  15,
			wantKinds: map[core.ConsKind]int{core.KindSetPartitioning: 4, core.KindSetPacking: 12, core.KindVarbound: 12},
			check: func(t *testing.T, p *core.Problem) {
				edge := p.Constraints()[4+3*3+1]
				assert.Equal(t, "edge3_1", edge.Name)
				assert.Equal(t, []int{3*3 + 1, 0*3 + 1}, edge.Vars)
				link := p.Constraints()[len(p.Constraints())-1]
				assert.Equal(t, []int{11, 14}, link.Vars)
			},
		},
		{
			name:      "GroupedKnapsack",
			ctor:      builder.GroupedKnapsack(2, 3, 10),
			opts:      []builder.BuilderOption{builder.WithSeed(7), builder.WithUniformWeight(1, 5)},
			wantVars:  6,
			wantKinds: map[core.ConsKind]int{core.KindKnapsack: 1},
			check: func(t *testing.T, p *core.Problem) {
				c := p.Constraints()[0]
				for g := 0; g < 2; g++ {
					for i := 1; i < 3; i++ {
						assert.Equal(t, c.Coefs[3*g], c.Coefs[3*g+i])
						assert.Equal(t, p.Vars()[3*g].Obj, p.Vars()[3*g+i].Obj)
					}
				}
				for _, w := range c.Coefs {
					assert.True(t, w >= 1 && w <= 5, "weight %g", w)
				}
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, err := builder.BuildProblem(tc.name, tc.opts, tc.ctor)
			require.NoError(t, err)
			assert.Equal(t, tc.name, p.Name())
			assert.Equal(t, tc.wantVars, p.NVars())
			assert.Equal(t, tc.wantKinds, kinds(p))
			tc.check(t, p)
		})
	}
}

func TestBuildProblem_ComposeScopes(t *testing.T) {
	p, err := builder.BuildProblem("mix", nil, builder.Cardinality(2, 1), builder.Assignment(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"b0.x0", "b0.x1", "b1.x0_0", "b1.x0_1", "b1.x1_0", "b1.x1_1"}, names(p))
	assert.Equal(t, "b1.row0", p.Constraints()[1].Name)
}

func TestBuildProblem_Deterministic(t *testing.T) {
	build := func() *core.Problem {
		p, err := builder.BuildProblem("k", []builder.BuilderOption{builder.WithSeed(42), builder.WithUniformWeight(1, 9)},
			builder.GroupedKnapsack(3, 2, 12))
		require.NoError(t, err)
		return p
	}
	a, b := build(), build()
	assert.Equal(t, a.Vars(), b.Vars())
	assert.Equal(t, a.Constraints(), b.Constraints())
}

func TestBuildProblem_IDSchemes(t *testing.T) {
	p, err := builder.BuildProblem("x", []builder.BuilderOption{builder.WithExcelColumnIDs()}, builder.Assignment(2))
	require.NoError(t, err)
	assert.Equal(t, []string{"xA_A", "xA_B", "xB_A", "xB_B"}, names(p))

	p, err = builder.BuildProblem("x", []builder.BuilderOption{builder.WithAlphanumericIDs()}, builder.Cardinality(11, 3))
	require.NoError(t, err)
	assert.Equal(t, "xa", p.Vars()[10].Name)
}

func TestBuildProblem_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []builder.BuilderOption
		cons []builder.Constructor
		want error
	}{
		{"NilConstructor", nil, []builder.Constructor{nil}, builder.ErrConstructFailed},
		{"CardinalityTooSmall", nil, []builder.Constructor{builder.Cardinality(1, 0)}, builder.ErrTooFewVariables},
		{"CardinalityK", nil, []builder.Constructor{builder.Cardinality(3, 4)}, builder.ErrBadParameter},
		{"PairsZero", nil, []builder.Constructor{builder.Pairs(0)}, builder.ErrTooFewVariables},
		{"AssignmentOne", nil, []builder.Constructor{builder.Assignment(1)}, builder.ErrTooFewVariables},
		{"PigeonholeNoHoles", nil, []builder.Constructor{builder.Pigeonhole(2, 0)}, builder.ErrTooFewVariables},
		{"BinPackingOneBin", nil, []builder.Constructor{builder.BinPacking([]float64{1}, 1, 2)}, builder.ErrTooFewVariables},
		{"BinPackingNoItems", nil, []builder.Constructor{builder.BinPacking(nil, 2, 2)}, builder.ErrTooFewVariables},
		{"BinPackingHeavy", nil, []builder.Constructor{builder.BinPacking([]float64{3}, 2, 2)}, builder.ErrBadParameter},
		{"BinPackingCapacity", nil, []builder.Constructor{builder.BinPacking([]float64{1}, 2, 0)}, builder.ErrBadParameter},
		{"ColoringLoop", nil, []builder.Constructor{builder.Coloring(2, [][2]int{{1, 1}}, 2)}, builder.ErrBadParameter},
		{"ColoringRange", nil, []builder.Constructor{builder.Coloring(2, [][2]int{{0, 2}}, 2)}, builder.ErrBadParameter},
		{"ColoringOneColor", nil, []builder.Constructor{builder.Coloring(2, nil, 1)}, builder.ErrTooFewVariables},
		{"KnapsackNoRand", nil, []builder.Constructor{builder.GroupedKnapsack(1, 2, 3)}, builder.ErrNeedRandSource},
		{"KnapsackSize", []builder.BuilderOption{builder.WithSeed(1)}, []builder.Constructor{builder.GroupedKnapsack(1, 1, 3)}, builder.ErrTooFewVariables},
		{"KnapsackCapacity", []builder.BuilderOption{builder.WithRand(rand.New(rand.NewSource(1)))}, []builder.Constructor{builder.GroupedKnapsack(1, 2, -1)}, builder.ErrBadParameter},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			p, err := builder.BuildProblem(tc.name, tc.opts, tc.cons...)
			require.ErrorIs(t, err, tc.want)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), "BuildProblem: ")
		})
	}
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithWeightFn(nil) })
	assert.Panics(t, func() { builder.WithObjective(0 / zero()) })
	assert.Panics(t, func() { builder.WithUniformWeight(0, 3) })
	assert.Panics(t, func() { builder.WithUniformWeight(4, 3) })
	assert.Panics(t, func() { builder.WithConstantWeight(1.5) })
	assert.Panics(t, func() { builder.ExponentialWeightFn(0) })
	assert.Panics(t, func() { builder.ExcelColumnIDFn(-1) })
	assert.Panics(t, func() { builder.AlphanumericIDFn(-1) })
}

func zero() float64 { return 0 }

func TestIDAndWeightFns(t *testing.T) {
	assert.Equal(t, "A", builder.ExcelColumnIDFn(0))
	assert.Equal(t, "Z", builder.ExcelColumnIDFn(25))
	assert.Equal(t, "AA", builder.ExcelColumnIDFn(26))
	assert.Equal(t, "10", builder.AlphanumericIDFn(36))
	assert.Equal(t, "7", builder.DefaultIDFn(7))

	assert.Equal(t, builder.DefaultWeight, builder.UniformWeightFn(2, 9)(nil))
	assert.Equal(t, 3.0, builder.ConstantWeightFn(3)(nil))
	assert.Equal(t, 4.0, builder.UniformWeightFn(4, 4)(rand.New(rand.NewSource(3))))
	w := builder.ExponentialWeightFn(0.5)(rand.New(rand.NewSource(3)))
	assert.GreaterOrEqual(t, w, 1.0)
	assert.Equal(t, w, float64(int(w)))
}

func TestEdgeHelpers(t *testing.T) {
	assert.Nil(t, builder.CycleEdges(2))
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}, {2, 0}}, builder.CycleEdges(3))
	assert.Nil(t, builder.PathEdges(1))
	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, builder.PathEdges(3))
	assert.Len(t, builder.CompleteEdges(5), 10)
	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, builder.CompleteEdges(3))
}
