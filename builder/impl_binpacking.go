// SPDX-License-Identifier: MIT

// File: impl_binpacking.go
// Role: BinPacking(weights, bins, capacity).
//
// Variables: x<i>_<j> (item i in bin j, objective 0) and y<j> (bin j used,
// objective 1). Rows:
//   - item<i>: sum_j x<i>_<j> == 1
//   - load<j>: sum_i w_i x<i>_<j> - capacity*y<j> <= 0
//
// Bins are interchangeable. Items of equal weight are interchangeable too.
package builder

import (
	"math"

	"github.com/katalvlaran/lvsym/core"
)

const (
	methodBinPacking = "BinPacking"
	minBins          = 2
	minItems         = 1
)

// BinPacking returns a Constructor for the assignment formulation of bin
// packing.
// Errors: ErrTooFewVariables for bins < 2 or no items; ErrBadParameter for
// a non-positive or non-finite capacity and for weights outside
// (0, capacity].
func BinPacking(weights []float64, bins int, capacity float64) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if err := validateMin(methodBinPacking, "bins", bins, minBins); err != nil {
			return err
		}
		if err := validateMin(methodBinPacking, "items", len(weights), minItems); err != nil {
			return err
		}
		if !(capacity > 0) || math.IsInf(capacity, 0) {
			return builderErrorf(methodBinPacking, ErrBadParameter, "capacity=%g", capacity)
		}
		for i, w := range weights {
			if !(w > 0) || w > capacity {
				return builderErrorf(methodBinPacking, ErrBadParameter, "weight[%d]=%g outside (0,%g]", i, w, capacity)
			}
		}

		x, err := grid(methodBinPacking, p, cfg, "x", len(weights), bins, 0)
		if err != nil {
			return err
		}
		y := make([]int, bins)
		for j := range y {
			if y[j], err = addBinary(methodBinPacking, p, cfg.name("y", j), 1); err != nil {
				return err
			}
		}

		for i := range x {
			if err := addRow(methodBinPacking, p, core.SetPartitioning(cfg.name("item", i), x[i]...)); err != nil {
				return err
			}
		}
		for j := 0; j < bins; j++ {
			vars := append(column(x, j), y[j])
			coefs := append(append([]float64(nil), weights...), -capacity)
			row := core.Linear(cfg.name("load", j), vars, coefs, -core.Infinity, 0)
			if err := addRow(methodBinPacking, p, row); err != nil {
				return err
			}
		}

		return nil
	}
}
