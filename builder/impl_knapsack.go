// SPDX-License-Identifier: MIT

// File: impl_knapsack.go
// Role: GroupedKnapsack(groups, size, capacity).
//
// Every group g draws one weight w_g and one profit p_g from cfg.weightFn
// (weight first) and adds size items z<g>_<i> with objective -p_g. A single
// knapsack row bounds the total weight. Items of a group are
// interchangeable; groups with equal draws merge into larger orbits.
package builder

import (
	"math"

	"github.com/katalvlaran/lvsym/core"
)

const (
	methodGroupedKnapsack = "GroupedKnapsack"
	minGroups             = 1
	minGroupSize          = 2
)

// GroupedKnapsack returns a Constructor for a random knapsack with groups
// of identical items.
// Errors: ErrNeedRandSource without WithSeed/WithRand; ErrTooFewVariables
// for groups < 1 or size < 2; ErrBadParameter for a non-positive or
// non-finite capacity.
func GroupedKnapsack(groups, size int, capacity float64) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if cfg.rng == nil {
			return builderErrorf(methodGroupedKnapsack, ErrNeedRandSource, "use WithSeed or WithRand")
		}
		if err := validateMin(methodGroupedKnapsack, "groups", groups, minGroups); err != nil {
			return err
		}
		if err := validateMin(methodGroupedKnapsack, "size", size, minGroupSize); err != nil {
			return err
		}
		if !(capacity > 0) || math.IsInf(capacity, 0) {
			return builderErrorf(methodGroupedKnapsack, ErrBadParameter, "capacity=%g", capacity)
		}

		vars := make([]int, 0, groups*size)
		weights := make([]float64, 0, groups*size)
		for g := 0; g < groups; g++ {
			w := cfg.weightFn(cfg.rng)
			profit := cfg.weightFn(cfg.rng)
			for i := 0; i < size; i++ {
				z, err := addBinary(methodGroupedKnapsack, p, cfg.name("z", g, i), -profit)
				if err != nil {
					return err
				}
				vars = append(vars, z)
				weights = append(weights, w)
			}
		}

		return addRow(methodGroupedKnapsack, p, core.Knapsack(cfg.name("cap"), vars, weights, capacity))
	}
}
