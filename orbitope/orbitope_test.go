// SPDX-License-Identifier: MIT

package orbitope_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvsym/orbitope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swap returns the permutation of [0,n) exchanging the given pairs.
func swap(n int, pairs ...[2]int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for _, c := range pairs {
		p[c[0]], p[c[1]] = c[1], c[0]
	}
	return p
}

func allBinary(int) bool { return true }

// Generators of the 3x3 grid (position i*3+j): column swaps and row swaps.
var (
	c01 = swap(9, [2]int{0, 1}, [2]int{3, 4}, [2]int{6, 7})
	c12 = swap(9, [2]int{1, 2}, [2]int{4, 5}, [2]int{7, 8})
	r01 = swap(9, [2]int{0, 3}, [2]int{1, 4}, [2]int{2, 5})
	r12 = swap(9, [2]int{3, 6}, [2]int{4, 7}, [2]int{5, 8})
)

func TestTwoCycles(t *testing.T) {
	cycles, ok := orbitope.TwoCycles([]int{1, 0, 2, 4, 3})
	require.True(t, ok)
	assert.Equal(t, [][2]int{{0, 1}, {3, 4}}, cycles)

	_, ok = orbitope.TwoCycles([]int{1, 2, 0})
	assert.False(t, ok)

	idx, cs := orbitope.Qualifying([][]int{{1, 2, 0}, {0, 1, 2}, {0, 2, 1}})
	assert.Equal(t, []int{2}, idx)
	assert.Len(t, cs, 1)
}

func TestDetect_SingleRow(t *testing.T) {
	gens := [][]int{
		swap(4, [2]int{2, 3}),
		swap(4, [2]int{1, 2}),
		swap(4, [2]int{0, 1}),
	}
	o, err := orbitope.Detect(gens, allBinary)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, o.Matrix)
	assert.Equal(t, 1, o.NRows())
	assert.Equal(t, 4, o.NCols())
	assert.Equal(t, 1, o.NBinRows)
	assert.Equal(t, []int{0, 1, 2}, o.Used)
	assert.Equal(t, orbitope.Full, o.Kind)
}

func TestDetect_RetriesAfterFrontierMoves(t *testing.T) {
	// (0 1) cannot be placed before (1 2) has extended the left frontier.
	gens := [][]int{
		swap(4, [2]int{2, 3}),
		swap(4, [2]int{0, 1}),
		swap(4, [2]int{1, 2}),
	}
	o, err := orbitope.Detect(gens, allBinary)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2, 3}}, o.Matrix)
}

func TestDetect_Rectangle(t *testing.T) {
	gens := [][]int{
		swap(6, [2]int{0, 1}, [2]int{3, 4}),
		swap(6, [2]int{1, 2}, [2]int{4, 5}),
	}
	o, err := orbitope.Detect(gens, allBinary)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{0, 1, 2}, {3, 4, 5}}, o.Matrix)

	// Every generator acts as the same column transposition in every row.
	for _, u := range o.Used {
		g := gens[u]
		for c := 0; c+1 < o.NCols(); c++ {
			swapsCols := true
			for r := 0; r < o.NRows(); r++ {
				if g[o.Matrix[r][c]] != o.Matrix[r][c+1] {
					swapsCols = false
				}
			}
			if swapsCols {
				for r := 0; r < o.NRows(); r++ {
					assert.Equal(t, o.Matrix[r][c], g[o.Matrix[r][c+1]])
				}
			}
		}
	}
}

func TestDetect_Failures(t *testing.T) {
	_, err := orbitope.Detect([][]int{swap(2, [2]int{0, 1})}, allBinary)
	require.ErrorIs(t, err, orbitope.ErrTooFewGenerators)

	_, err = orbitope.Detect([][]int{{1, 2, 0}, swap(3, [2]int{0, 1})}, allBinary)
	require.ErrorIs(t, err, orbitope.ErrNotInvolution)

	_, err = orbitope.Detect([][]int{
		swap(4, [2]int{0, 1}, [2]int{2, 3}),
		swap(4, [2]int{1, 2}),
	}, allBinary)
	require.ErrorIs(t, err, orbitope.ErrCycleMismatch)

	// Row swap plus column swap of a 2x2 block: both endpoints already placed.
	_, err = orbitope.Detect([][]int{
		swap(4, [2]int{0, 1}, [2]int{2, 3}),
		swap(4, [2]int{0, 2}, [2]int{1, 3}),
	}, allBinary)
	require.ErrorIs(t, err, orbitope.ErrIncomplete)

	_, err = orbitope.Detect([][]int{c12, c01, r12, r01}, allBinary)
	require.ErrorIs(t, err, orbitope.ErrIncomplete)
}

func TestDetect_RowTypes(t *testing.T) {
	gens := [][]int{
		swap(6, [2]int{0, 1}, [2]int{3, 4}),
		swap(6, [2]int{1, 2}, [2]int{4, 5}),
	}
	mixed := func(v int) bool { return v != 5 }
	_, err := orbitope.Detect(gens, mixed)
	require.ErrorIs(t, err, orbitope.ErrMixedRow)

	firstRowOnly := func(v int) bool { return v < 3 }
	o, err := orbitope.Detect(gens, firstRowOnly)
	require.NoError(t, err)
	assert.Equal(t, 1, o.NBinRows)
	assert.Equal(t, []bool{true, false}, o.Binary)

	bin := o.BinaryPart()
	require.NotNil(t, bin)
	assert.Equal(t, [][]int{{0, 1, 2}}, bin.Matrix)

	full, err := orbitope.Detect(gens, allBinary)
	require.NoError(t, err)
	assert.Same(t, full, full.BinaryPart())

	none, err := orbitope.Detect(gens, func(int) bool { return false })
	require.NoError(t, err)
	assert.Nil(t, none.BinaryPart())
}

func TestBuild_MinUsed(t *testing.T) {
	gens := [][]int{
		swap(4, [2]int{0, 1}, [2]int{2, 3}),
		swap(4, [2]int{0, 2}, [2]int{1, 3}),
	}
	o, err := orbitope.Build(gens, allBinary, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, o.Used)
	assert.Equal(t, 2, o.NCols())
}

func ExampleDetect() {
	gens := [][]int{
		{1, 0, 2, 4, 3, 5}, // swap columns 0,1
		{0, 2, 1, 3, 5, 4}, // swap columns 1,2
	}
	o, err := orbitope.Detect(gens, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(o.NRows(), "x", o.NCols(), o.Matrix)
	// Output: 2 x 3 [[0 1 2] [3 4 5]]
}
