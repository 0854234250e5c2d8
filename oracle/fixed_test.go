// SPDX-License-Identifier: MIT

package oracle_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvsym/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed_Replays(t *testing.T) {
	m := encode(t, cardinality4())
	gens := [][]int{{1, 0, 2, 3}, {0, 1, 2, 3}, {0, 1, 3, 2}}
	f := oracle.NewFixed(gens, 0.6)
	gens[0][0] = 3 // the oracle holds its own copy

	require.True(t, f.Available())
	res, err := f.Automorphisms(context.Background(), m, 0)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 0, 2, 3}, {0, 1, 3, 2}}, res.Generators)
	assert.Equal(t, 0.6, res.Log10Order)
	assert.True(t, res.Complete)

	res, err = f.Automorphisms(context.Background(), m, 1)
	require.NoError(t, err)
	assert.Len(t, res.Generators, 1)
	assert.False(t, res.Complete)
}

func TestFixed_Errors(t *testing.T) {
	m := encode(t, cardinality4())

	_, err := oracle.NewFixed([][]int{{0, 1}}, 0).Automorphisms(context.Background(), m, 0)
	require.ErrorIs(t, err, oracle.ErrGeneratorShape)

	_, err = oracle.NewFixed([][]int{{0, 0, 1, 2}}, 0).Automorphisms(context.Background(), m, 0)
	require.ErrorIs(t, err, oracle.ErrGeneratorShape)

	u := oracle.Unavailable()
	assert.False(t, u.Available())
	_, err = u.Automorphisms(context.Background(), m, 0)
	require.ErrorIs(t, err, oracle.ErrUnavailable)

	_, err = oracle.NewFixed(nil, 0).Automorphisms(context.Background(), nil, 0)
	require.ErrorIs(t, err, oracle.ErrNilMatrix)
}
