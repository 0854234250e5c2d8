// SPDX-License-Identifier: MIT

// File: refine.go
// Role: bipartite variable-row graph and invariant color refinement.
//
// Node layout: variables occupy [0, nvars), row r occupies nvars+r.
// Every refinement step replaces the color of a node by the rank of its
// signature (own color, sorted multiset of (edge color, neighbor color)).
// Ranks are taken over sorted signatures, so the resulting coloring depends
// only on the colored graph and never on node numbering.
package oracle

import (
	"sort"

	"github.com/katalvlaran/lvsym/matrix"
)

type arc struct {
	to    int // neighbor node
	color int // coefficient color
}

type colorGraph struct {
	nvars int
	adj   [][]arc
	init  []int // initial node colors
}

func newColorGraph(m *matrix.ColoredMatrix) *colorGraph {
	n := m.NVars + len(m.Rows)
	g := &colorGraph{nvars: m.NVars, adj: make([][]arc, n), init: make([]int, n)}

	copy(g.init, m.VarColors)
	for r := range m.Rows {
		node := m.NVars + r
		g.init[node] = m.NVarColors + m.Rows[r].Color
		for _, e := range m.Rows[r].Entries {
			g.adj[node] = append(g.adj[node], arc{to: e.Col, color: e.Color})
			g.adj[e.Col] = append(g.adj[e.Col], arc{to: node, color: e.Color})
		}
	}

	return g
}

// refine returns the coarsest stable refinement of colors.
// Complexity: O(R · E log E) for R rounds.
func (g *colorGraph) refine(colors []int) []int {
	cur, k := rankInts(colors)
	sigs := make([][]int, len(cur))
	pairs := make([][2]int, 0, 8)

	for {
		for v := range cur {
			pairs = pairs[:0]
			for _, a := range g.adj[v] {
				pairs = append(pairs, [2]int{a.color, cur[a.to]})
			}
			sort.Slice(pairs, func(i, j int) bool {
				if pairs[i][0] != pairs[j][0] {
					return pairs[i][0] < pairs[j][0]
				}
				return pairs[i][1] < pairs[j][1]
			})

			s := append(sigs[v][:0], cur[v])
			for _, p := range pairs {
				s = append(s, p[0], p[1])
			}
			sigs[v] = s
		}

		next, k2 := rankSigs(sigs)
		if k2 == k {
			return cur
		}
		cur, k = next, k2
	}
}

// individualize splits v off its cell; v precedes the rest of the cell.
func individualize(colors []int, v int) []int {
	out := make([]int, len(colors))
	for i, c := range colors {
		out[i] = 2*c + 1
	}
	out[v] = 2 * colors[v]

	return out
}

// targetCell returns the variables of the smallest non-singleton variable
// color, ascending, or nil when every variable is alone in its cell.
func (g *colorGraph) targetCell(colors []int, shape []int) []int {
	best := -1
	for v := 0; v < g.nvars; v++ {
		c := colors[v]
		if shape[c] > 1 && (best < 0 || c < best) {
			best = c
		}
	}
	if best < 0 {
		return nil
	}

	cell := make([]int, 0, shape[best])
	for v := 0; v < g.nvars; v++ {
		if colors[v] == best {
			cell = append(cell, v)
		}
	}

	return cell
}

// shapeOf returns the size of every color class, indexed by color.
func shapeOf(colors []int) []int {
	k := 0
	for _, c := range colors {
		if c+1 > k {
			k = c + 1
		}
	}
	shape := make([]int, k)
	for _, c := range colors {
		shape[c]++
	}

	return shape
}

// rankInts compresses values to dense ranks preserving order.
func rankInts(values []int) ([]int, int) {
	distinct := append([]int(nil), values...)
	sort.Ints(distinct)
	w := 0
	for i, x := range distinct {
		if i == 0 || x != distinct[w-1] {
			distinct[w] = x
			w++
		}
	}
	distinct = distinct[:w]

	out := make([]int, len(values))
	for i, x := range values {
		out[i] = sort.SearchInts(distinct, x)
	}

	return out, w
}

// rankSigs assigns dense ranks to signatures in lexicographic order.
func rankSigs(sigs [][]int) ([]int, int) {
	order := make([]int, len(sigs))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return compareInts(sigs[order[a]], sigs[order[b]]) < 0
	})

	out := make([]int, len(sigs))
	if len(sigs) == 0 {
		return out, 0
	}
	rank := 0
	for k := 1; k < len(order); k++ {
		if compareInts(sigs[order[k-1]], sigs[order[k]]) != 0 {
			rank++
		}
		out[order[k]] = rank
	}

	return out, rank + 1
}

func compareInts(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}
