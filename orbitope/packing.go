// SPDX-License-Identifier: MIT

// File: packing.go
// Role: packing-partitioning classification of orbitope rows and generators.
package orbitope

import "github.com/katalvlaran/lvsym/conflict"

// Classify sets and returns o.Kind. A row is a partitioning row when one
// equation clique consists of exactly its variables, a packing row when
// some clique contains all of them. The orbitope takes the weakest row kind.
// pos maps orbitope positions to the variable indices of cg.
func Classify(o *Orbitope, cg *conflict.Graph, pos func(int) int) Kind {
	o.Kind = Full
	if cg == nil || len(o.Matrix) == 0 {
		return o.Kind
	}

	kind := Partitioning
	for _, row := range o.Matrix {
		vars := make([]int, len(row))
		for c, v := range row {
			vars[c] = pos(v)
		}
		common := cg.CommonCliques(vars)
		if len(common) == 0 {
			return o.Kind
		}

		rowKind := Packing
		for _, id := range common {
			if cg.IsPartitioning(id) && len(cg.Clique(id)) == len(vars) {
				rowKind = Partitioning
				break
			}
		}
		if rowKind < kind {
			kind = rowKind
		}
	}
	o.Kind = kind

	return kind
}

// PPInvolution reports whether perm is an involution whose every 2-cycle
// joins two conflicting variables.
func PPInvolution(perm []int, cg *conflict.Graph, pos func(int) int) bool {
	cycles, ok := TwoCycles(perm)
	if !ok || len(cycles) == 0 || cg == nil {
		return false
	}
	for _, c := range cycles {
		if !cg.Conflicts(pos(c[0]), pos(c[1])) {
			return false
		}
	}
	return true
}

// PPFraction returns the share of perms that are packing-partitioning
// involutions; 0 for an empty list.
func PPFraction(perms [][]int, cg *conflict.Graph, pos func(int) int) float64 {
	if len(perms) == 0 {
		return 0
	}
	n := 0
	for _, p := range perms {
		if PPInvolution(p, cg, pos) {
			n++
		}
	}
	return float64(n) / float64(len(perms))
}
