// SPDX-License-Identifier: MIT

// File: impl_assignment.go
// Role: Assignment(n) and Pigeonhole(p, h).
//
// Both families live on a matrix x<r>_<c> of binaries. Row sums are
// partitioning (Assignment) or covering (Pigeonhole) rows, column sums are
// packing rows. Permuting rows and permuting columns are independent
// symmetries, so the binary columns form a full orbitope.
package builder

import (
	"github.com/katalvlaran/lvsym/core"
)

const (
	methodAssignment = "Assignment"
	minAssignmentN   = 2

	methodPigeonhole = "Pigeonhole"
	minPigeonhole    = 1
)

// Assignment returns a Constructor for the n x n assignment polytope with
// every x<r>_<c> carrying the shared objective.
// Errors: ErrTooFewVariables for n < 2.
func Assignment(n int) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if err := validateMin(methodAssignment, "n", n, minAssignmentN); err != nil {
			return err
		}
		x, err := grid(methodAssignment, p, cfg, "x", n, n, cfg.objective)
		if err != nil {
			return err
		}
		for r := range x {
			if err := addRow(methodAssignment, p, core.SetPartitioning(cfg.name("row", r), x[r]...)); err != nil {
				return err
			}
		}
		for c := 0; c < n; c++ {
			if err := addRow(methodAssignment, p, core.SetPacking(cfg.name("col", c), column(x, c)...)); err != nil {
				return err
			}
		}

		return nil
	}
}

// Pigeonhole returns a Constructor placing pigeons into holes: every pigeon
// sits in some hole, every hole holds at most one pigeon. The instance is
// infeasible exactly when pigeons > holes. Variables have objective 0.
// Errors: ErrTooFewVariables when either count is below 1.
func Pigeonhole(pigeons, holes int) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if err := validateMin(methodPigeonhole, "pigeons", pigeons, minPigeonhole); err != nil {
			return err
		}
		if err := validateMin(methodPigeonhole, "holes", holes, minPigeonhole); err != nil {
			return err
		}
		x, err := grid(methodPigeonhole, p, cfg, "x", pigeons, holes, 0)
		if err != nil {
			return err
		}
		for r := range x {
			if err := addRow(methodPigeonhole, p, core.SetCovering(cfg.name("pigeon", r), x[r]...)); err != nil {
				return err
			}
		}
		for c := 0; c < holes; c++ {
			if err := addRow(methodPigeonhole, p, core.SetPacking(cfg.name("hole", c), column(x, c)...)); err != nil {
				return err
			}
		}

		return nil
	}
}
