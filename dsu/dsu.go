// SPDX-License-Identifier: MIT
// Package dsu provides a disjoint-set (union-find) forest over the dense
// integer universe [0, n), with path compression and union by rank.
//
// What & Why
//
//   - The symmetry pipeline merges integer indices in several places:
//     variables moved by a common generator (orbit components), pieces of
//     the subgroup detection graph and their colors, conflict components,
//     and orbit tracking inside the automorphism search.
//   - All of them need the same three operations (Find, Union, grouping),
//     so they share this small abstraction instead of hand-maintained
//     parent/rank arrays.
//
// Complexity:
//
//   - Find/Union: O(α(n)) amortized.
//   - Groups: O(n) plus the output.
package dsu

// DSU is a disjoint-set forest over [0, n).
// The zero value is an empty forest; use New to size it.
type DSU struct {
	parent []int // parent[i] == i marks a root
	rank   []int // upper bound on tree height, meaningful at roots
	size   []int // set cardinality, meaningful at roots
	sets   int   // number of disjoint sets
}

// New returns a forest of n singleton sets.
// Complexity: O(n).
func New(n int) *DSU {
	d := &DSU{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
		sets:   n,
	}
	for i := 0; i < n; i++ {
		d.parent[i] = i
		d.size[i] = 1
	}

	return d
}

// Len returns the size of the universe.
func (d *DSU) Len() int { return len(d.parent) }

// Sets returns the current number of disjoint sets.
func (d *DSU) Sets() int { return d.sets }

// Find returns the representative of x.
// Iterative with path halving so deep chains never recurse.
func (d *DSU) Find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}

	return x
}

// Union merges the sets containing a and b and returns the new root.
// Attaches the lower-rank tree under the higher-rank root.
func (d *DSU) Union(a, b int) int {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return ra
	}
	if d.rank[ra] < d.rank[rb] {
		ra, rb = rb, ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	if d.rank[ra] == d.rank[rb] {
		d.rank[ra]++
	}
	d.sets--

	return ra
}

// UnionInto merges the set of b into the set of a and keeps a's root as
// the representative. Used where the representative carries meaning (for
// example a color that must stay attached to a fixed piece).
func (d *DSU) UnionInto(a, b int) int {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return ra
	}
	d.parent[rb] = ra
	d.size[ra] += d.size[rb]
	if d.rank[ra] <= d.rank[rb] {
		d.rank[ra] = d.rank[rb] + 1
	}
	d.sets--

	return ra
}

// Same reports whether a and b are in the same set.
func (d *DSU) Same(a, b int) bool { return d.Find(a) == d.Find(b) }

// SizeOf returns the cardinality of the set containing x.
func (d *DSU) SizeOf(x int) int { return d.size[d.Find(x)] }

// Groups returns the sets as slices of members. Sets are ordered by their
// smallest member and members ascend, so the result is deterministic.
// Singletons are included only when keepSingletons is true.
//
// Complexity: O(n α(n)) time, O(n) extra space.
func (d *DSU) Groups(keepSingletons bool) [][]int {
	index := make(map[int]int)
	var out [][]int
	for x := range d.parent {
		r := d.Find(x)
		if !keepSingletons && d.size[r] == 1 {
			continue
		}
		gi, ok := index[r]
		if !ok {
			gi = len(out)
			index[r] = gi
			out = append(out, make([]int, 0, d.size[r]))
		}
		out[gi] = append(out[gi], x)
	}

	return out
}
