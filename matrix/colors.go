// SPDX-License-Identifier: MIT

// Package matrix: tolerance-aware color class assignment.
//
// Colors are assigned by sorting keys with a tolerant comparator and
// sweeping once: a new color starts whenever a key differs from its
// predecessor. The comparator is not transitive under tolerance, so the
// sweep (not pairwise grouping) is what defines the classes; it is
// deterministic for a given input order because sort.SliceStable is used.
package matrix

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvsym/core"
)

// isEQ reports a ≈ b under relative tolerance eps.
func isEQ(a, b, eps float64) bool {
	if core.IsInfinity(a) && core.IsInfinity(b) {
		return true
	}
	if core.IsNegInfinity(a) && core.IsNegInfinity(b) {
		return true
	}
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))

	return math.Abs(a-b) <= eps*scale
}

// cmpFloat orders a and b, treating values within tolerance as equal.
func cmpFloat(a, b, eps float64) int {
	if isEQ(a, b, eps) {
		return 0
	}
	if a < b {
		return -1
	}

	return 1
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// assignColors sorts the n keys addressed by index with cmp and returns the
// color of every index plus the number of colors.
// Complexity: O(n log n) comparisons.
func assignColors(n int, cmp func(i, j int) int) ([]int, int) {
	colors := make([]int, n)
	if n == 0 {
		return colors, 0
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return cmp(order[a], order[b]) < 0
	})

	color := 0
	colors[order[0]] = 0
	for k := 1; k < n; k++ {
		if cmp(order[k-1], order[k]) != 0 {
			color++
		}
		colors[order[k]] = color
	}

	return colors, color + 1
}

// varKey is the color key of a column.
type varKey struct {
	obj, lb, ub float64
	typ         core.VarType
	nonlinear   bool
	degree      int
}

func cmpVarKey(a, b varKey, eps float64) int {
	if c := cmpInt(int(a.typ), int(b.typ)); c != 0 {
		return c
	}
	if c := cmpBool(a.nonlinear, b.nonlinear); c != 0 {
		return c
	}
	if c := cmpFloat(a.obj, b.obj, eps); c != 0 {
		return c
	}
	if c := cmpFloat(a.lb, b.lb, eps); c != 0 {
		return c
	}
	if c := cmpFloat(a.ub, b.ub, eps); c != 0 {
		return c
	}

	return cmpInt(a.degree, b.degree)
}

// rowKey is the color key of a row side.
type rowKey struct {
	sense Sense
	rhs   float64
}

func cmpRowKey(a, b rowKey, eps float64) int {
	if c := cmpInt(int(a.sense), int(b.sense)); c != 0 {
		return c
	}

	return cmpFloat(a.rhs, b.rhs, eps)
}

// coefTag separates coefficient roles that must never share a color even
// when their numeric values agree.
type coefTag int

const (
	tagValue     coefTag = iota // ordinary coefficient
	tagResultant                // resultant of AND/OR
	tagLower                    // bound disjunction literal x >= a
	tagUpper                    // bound disjunction literal x <= a
	tagPairLL                   // two literals on one variable: x >= a or x >= b
	tagPairLU                   // x >= a or x <= b
	tagPairUU                   // x <= a or x <= b
)

// coefKey is the color key of a matrix entry.
type coefKey struct {
	tag  coefTag
	a, b float64
}

func cmpCoefKey(x, y coefKey, eps float64) int {
	if c := cmpInt(int(x.tag), int(y.tag)); c != 0 {
		return c
	}
	if c := cmpFloat(x.a, y.a, eps); c != 0 {
		return c
	}

	return cmpFloat(x.b, y.b, eps)
}
