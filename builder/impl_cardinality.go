// SPDX-License-Identifier: MIT

// File: impl_cardinality.go
// Role: Cardinality(n, k) and Pairs(n).
//
// Cardinality adds x0..x<n-1> with the shared objective and the single row
// sum x_i <= k; its group is the full symmetric group on n points.
//
// Pairs adds n blocks {a<k>, b<k>}, each with its own knapsack row
// w_k*a + w_k*b <= 2w_k - 1 and objective (k+1)*obj. Blocks differ in
// weight, so the group is generated by the n transpositions (a<k> b<k>).
package builder

import (
	"github.com/katalvlaran/lvsym/core"
)

const (
	methodCardinality = "Cardinality"
	minCardinalityN   = 2

	methodPairs = "Pairs"
	minPairs    = 1
)

// Cardinality returns a Constructor for sum x_i <= k over n binaries.
// Errors: ErrTooFewVariables for n < 2, ErrBadParameter unless 0 <= k <= n.
func Cardinality(n, k int) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if err := validateMin(methodCardinality, "n", n, minCardinalityN); err != nil {
			return err
		}
		if k < 0 || k > n {
			return builderErrorf(methodCardinality, ErrBadParameter, "k=%d outside [0,%d]", k, n)
		}

		vars := make([]int, n)
		for i := range vars {
			v, err := addBinary(methodCardinality, p, cfg.name("x", i), cfg.objective)
			if err != nil {
				return err
			}
			vars[i] = v
		}

		return addRow(methodCardinality, p, core.Linear(cfg.name("card"), vars, nil, -core.Infinity, float64(k)))
	}
}

// Pairs returns a Constructor for n independent symmetric pairs.
// Errors: ErrTooFewVariables for n < 1.
func Pairs(n int) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if err := validateMin(methodPairs, "n", n, minPairs); err != nil {
			return err
		}

		for k := 0; k < n; k++ {
			obj := cfg.objective * float64(k+1)
			a, err := addBinary(methodPairs, p, cfg.name("a", k), obj)
			if err != nil {
				return err
			}
			b, err := addBinary(methodPairs, p, cfg.name("b", k), obj)
			if err != nil {
				return err
			}
			w := float64(k + 2)
			row := core.Knapsack(cfg.name("cap", k), []int{a, b}, []float64{w, w}, 2*w-1)
			if err := addRow(methodPairs, p, row); err != nil {
				return err
			}
		}

		return nil
	}
}
