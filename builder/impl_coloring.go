// SPDX-License-Identifier: MIT

// File: impl_coloring.go
// Role: Coloring(nv, edges, colors) and the edge-list helpers.
//
// Variables: x<v>_<c> (vertex v takes color c, objective 0) and y<c>
// (color c used, objective 1). Rows:
//   - vertex<v>:     sum_c x<v>_<c> == 1
//   - edge<e>_<c>:   x<u>_<c> + x<w>_<c> <= 1 for edge e = {u, w}
//   - link<v>_<c>:   x<v>_<c> - y<c> <= 0
//
// Colors are interchangeable; automorphisms of the graph act on the
// vertex rows.
package builder

import (
	"github.com/katalvlaran/lvsym/core"
)

const (
	methodColoring = "Coloring"
	minVertices    = 1
	minColors      = 2
	minCycleNodes  = 3
)

// Coloring returns a Constructor for the assignment formulation of graph
// coloring with at most colors colors.
// Errors: ErrTooFewVariables for nv < 1 or colors < 2; ErrBadParameter for
// loops and endpoints outside [0, nv).
func Coloring(nv int, edges [][2]int, colors int) Constructor {
	return func(p *core.Problem, cfg builderConfig) error {
		if err := validateMin(methodColoring, "vertices", nv, minVertices); err != nil {
			return err
		}
		if err := validateMin(methodColoring, "colors", colors, minColors); err != nil {
			return err
		}
		for e, uv := range edges {
			if uv[0] < 0 || uv[0] >= nv || uv[1] < 0 || uv[1] >= nv || uv[0] == uv[1] {
				return builderErrorf(methodColoring, ErrBadParameter, "edge %d = %v", e, uv)
			}
		}

		x, err := grid(methodColoring, p, cfg, "x", nv, colors, 0)
		if err != nil {
			return err
		}
		y := make([]int, colors)
		for c := range y {
			if y[c], err = addBinary(methodColoring, p, cfg.name("y", c), 1); err != nil {
				return err
			}
		}

		for v := range x {
			if err := addRow(methodColoring, p, core.SetPartitioning(cfg.name("vertex", v), x[v]...)); err != nil {
				return err
			}
		}
		for e, uv := range edges {
			for c := 0; c < colors; c++ {
				row := core.SetPacking(cfg.name("edge", e, c), x[uv[0]][c], x[uv[1]][c])
				if err := addRow(methodColoring, p, row); err != nil {
					return err
				}
			}
		}
		for v := range x {
			for c := 0; c < colors; c++ {
				row := core.Varbound(cfg.name("link", v, c), x[v][c], y[c], -1, -core.Infinity, 0)
				if err := addRow(methodColoring, p, row); err != nil {
					return err
				}
			}
		}

		return nil
	}
}

// CycleEdges returns the edges of C_n: {i, i+1 mod n}. Returns nil for
// n < 3.
func CycleEdges(n int) [][2]int {
	if n < minCycleNodes {
		return nil
	}
	out := make([][2]int, n)
	for i := range out {
		out[i] = [2]int{i, (i + 1) % n}
	}
	return out
}

// PathEdges returns the edges of P_n: {i, i+1}. Returns nil for n < 2.
func PathEdges(n int) [][2]int {
	if n < 2 {
		return nil
	}
	out := make([][2]int, n-1)
	for i := range out {
		out[i] = [2]int{i, i + 1}
	}
	return out
}

// CompleteEdges returns the edges of K_n in lexicographic order.
func CompleteEdges(n int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}
