// SPDX-License-Identifier: MIT

package group_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/group"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binaryTypes(n int) []core.VarType {
	return make([]core.VarType, n) // core.Binary is the zero value
}

func TestNew_RejectsNonPermutations(t *testing.T) {
	_, err := group.New(binaryTypes(3), [][]int{{0, 1}}, 0, true)
	require.ErrorIs(t, err, group.ErrBadPermutation)

	_, err = group.New(binaryTypes(3), [][]int{{0, 0, 2}}, 0, true)
	require.ErrorIs(t, err, group.ErrBadPermutation)

	_, err = group.New(binaryTypes(3), [][]int{{0, 1, 3}}, 0, true)
	require.ErrorIs(t, err, group.ErrBadPermutation)
}

func TestNew_DropsIdentity(t *testing.T) {
	g, err := group.New(binaryTypes(3), [][]int{{0, 1, 2}, {1, 0, 2}}, 0.3, true)
	require.NoError(t, err)
	assert.Equal(t, 1, g.NPerms())
	assert.Equal(t, 0.3, g.Log10Order())
	assert.True(t, g.Complete())
}

// Two independent pairs plus a 3-cycle on a mixed-type block:
// positions 0..1 swapped, 2..3 swapped, 5,6,7 cycled, 4 and 8 fixed.
func fixture(t *testing.T) *group.Group {
	t.Helper()
	types := []core.VarType{
		core.Binary, core.Binary,
		core.Integer, core.Integer,
		core.Continuous,
		core.Binary, core.Binary, core.Integer,
		core.Binary,
	}
	perms := [][]int{
		{0, 1, 3, 2, 4, 5, 6, 7, 8}, // (2 3)
		{1, 0, 2, 3, 4, 5, 6, 7, 8}, // (0 1)
		{0, 1, 2, 3, 4, 6, 7, 5, 8}, // (5 6 7)
	}
	g, err := group.New(types, perms, 1.5, true)
	require.NoError(t, err)
	return g
}

func TestComponents_Partition(t *testing.T) {
	g := fixture(t)

	require.Equal(t, 3, g.NComponents())
	assert.Equal(t, 7, g.NMoved())
	assert.Equal(t, 4, g.MovedByType(core.Binary))
	assert.Equal(t, 3, g.MovedByType(core.Integer))
	assert.Equal(t, 0, g.MovedByType(core.Continuous))

	// Components are numbered by smallest member.
	assert.Equal(t, []int{0, 1}, g.ComponentVars(0))
	assert.Equal(t, []int{2, 3}, g.ComponentVars(1))
	assert.Equal(t, []int{5, 6, 7}, g.ComponentVars(2))
	assert.Equal(t, []int{1}, g.ComponentPerms(0))
	assert.Equal(t, []int{0}, g.ComponentPerms(1))
	assert.Equal(t, []int{2}, g.ComponentPerms(2))
	assert.Equal(t, 1, g.PermComponent(0))

	assert.Equal(t, group.NoComponent, g.VarComponent(4))
	assert.Equal(t, group.NoComponent, g.VarComponent(8))

	assert.True(t, g.ComponentUniform(0))
	assert.False(t, g.ComponentUniform(2))
	assert.True(t, g.ComponentHasType(2, core.Integer))
	assert.False(t, g.ComponentHasType(0, core.Integer))
}

// Every pair inside a component is connected by a generator chain and no
// generator moves variables of two components.
func TestComponents_NoGeneratorSpansTwo(t *testing.T) {
	g := fixture(t)
	for pi := 0; pi < g.NPerms(); pi++ {
		c := g.PermComponent(pi)
		for i, j := range g.Perm(pi) {
			if i != j {
				assert.Equal(t, c, g.VarComponent(i))
			}
		}
	}
	for c := 0; c < g.NComponents(); c++ {
		orbits := g.Orbits(g.ComponentPerms(c))
		require.Len(t, orbits, 1)
		assert.Equal(t, g.ComponentVars(c), orbits[0])
	}
}

func TestComponents_MergeAcrossGenerators(t *testing.T) {
	perms := [][]int{
		{1, 0, 2, 3},
		{0, 2, 1, 3},
	}
	g, err := group.New(binaryTypes(4), perms, 0, true)
	require.NoError(t, err)
	require.Equal(t, 1, g.NComponents())
	assert.Equal(t, []int{0, 1, 2}, g.ComponentVars(0))
	assert.Equal(t, []int{0, 1}, g.ComponentPerms(0))
}

func TestBlocking(t *testing.T) {
	g := fixture(t)
	assert.Equal(t, 0, g.NBlocked())
	require.NoError(t, g.Block(1, group.Orbitope))
	require.NoError(t, g.Block(1, group.SST))
	require.ErrorIs(t, g.Block(7, group.SST), group.ErrComponentIndex)

	assert.True(t, g.IsBlocked(1))
	assert.False(t, g.IsBlocked(0))
	assert.Equal(t, 1, g.NBlocked())
	assert.Equal(t, "orbitope+sst", g.Blocked(1).String())

	g.MarkHandled(1, core.Integer)
	assert.True(t, g.Handled(1, core.Integer))
	assert.False(t, g.Handled(1, core.Binary))
	assert.False(t, g.Handled(9, core.Binary))
}

func TestCompress(t *testing.T) {
	g := fixture(t)
	// 7 of 9 moved: a threshold of 0.5 keeps the full representation.
	assert.False(t, g.Compress(0.5))
	assert.False(t, g.Compressed())

	require.True(t, g.Compress(0.8))
	assert.True(t, g.Compressed())
	assert.Equal(t, 7, g.NVars())
	assert.Equal(t, []int{0, 1, 2, 3, 5, 6, 7}, g.Vars())
	assert.Equal(t, core.Integer, g.Type(6))

	want := [][]int{
		{0, 1, 3, 2, 4, 5, 6},
		{1, 0, 2, 3, 4, 5, 6},
		{0, 1, 2, 3, 5, 6, 4},
	}
	if diff := cmp.Diff(want, g.Perms()); diff != "" {
		t.Fatalf("compressed generators (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, g.NComponents())
	assert.Equal(t, []int{4, 5, 6}, g.ComponentVars(2))
	assert.Equal(t, 7, g.NMoved())

	// Second call is a no-op.
	assert.False(t, g.Compress(1))
}

func TestOrbits(t *testing.T) {
	perms := [][]int{{1, 2, 0, 3, 4}, {0, 1, 2, 4, 3}}
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4}}, group.Orbits(5, perms))
	assert.Equal(t, []int{3, 4}, group.Orbit(5, perms, 4))
	assert.Equal(t, []int{0}, group.Orbit(5, perms[1:], 0))
}

func TestIsInvolution(t *testing.T) {
	ok, n := group.IsInvolution([]int{1, 0, 3, 2, 4})
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	ok, _ = group.IsInvolution([]int{1, 2, 0})
	assert.False(t, ok)
}

func TestTechniqueSet(t *testing.T) {
	var s group.TechniqueSet
	assert.True(t, s.Empty())
	assert.Equal(t, "none", s.String())
	s.Add(group.Symresack)
	s.Add(group.Subgroup)
	assert.False(t, s.Empty())
	assert.True(t, s.Has(group.Subgroup))
	assert.False(t, s.Has(group.SST))
	assert.Equal(t, []group.Technique{group.Subgroup, group.Symresack}, s.Techniques())
	assert.Equal(t, "unknown", group.Technique(42).String())
}
