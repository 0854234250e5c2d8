// SPDX-License-Identifier: MIT

// File: search.go
// Role: refinement / individualization automorphism search.
//
// Algorithm:
//   - Stage 1: Refine the initial coloring and follow the first path of the
//     search tree (always individualize the smallest vertex of the target
//     cell) down to a leaf where every variable has its own color.
//   - Stage 2: Walk the levels bottom-up. At level l the found generators all
//     fix v_0..v_{l-1}; for every w of the level-l cell outside the current
//     orbit of v_l, search for an automorphism fixing the prefix and sending
//     v_l to w. Failing candidates prune their whole orbit.
//   - Stage 3: |G| = Π |orbit of v_l under G_l|, accumulated as log10.
//
// Pruning:
//
//	A candidate branch survives only while its cell-size vector matches the
//	first path at the same depth. Leaves are checked with
//	ColoredMatrix.IsAutomorphism before a generator is accepted.
package oracle

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/lvsym/dsu"
	"github.com/katalvlaran/lvsym/matrix"
)

// Search is the built-in automorphism oracle.
type Search struct {
	opts Options
}

// New returns a Search configured by opts.
func New(opts ...Option) *Search {
	return &Search{opts: gatherOptions(opts...)}
}

// Name implements Oracle.
func (s *Search) Name() string { return "refine" }

// Available implements Oracle. The built-in search is always available.
func (s *Search) Available() bool { return true }

// Automorphisms implements Oracle.
//
// Errors:
//   - ErrNilMatrix for a nil matrix.
//   - ctx.Err() (wrapped) when the context is cancelled during the search.
func (s *Search) Automorphisms(ctx context.Context, m *matrix.ColoredMatrix, maxGenerators int) (*Result, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res := &Result{Complete: true}
	if m.Trivial() {
		return res, nil
	}

	r := &runner{ctx: ctx, g: newColorGraph(m), m: m, opts: s.opts}
	r.firstPath()

	orbits := dsu.New(m.NVars)
levels:
	for l := len(r.path) - 1; l >= 0; l-- {
		v := r.path[l]
		var failed []int
		for _, w := range r.cells[l] {
			if w == v || orbits.Same(v, w) || sameAsAny(orbits, w, failed) {
				continue
			}
			if maxGenerators > 0 && len(res.Generators) >= maxGenerators {
				res.Complete = false
				break levels
			}

			perm := r.searchFrom(l, w)
			if r.err != nil {
				return nil, fmt.Errorf("Automorphisms: %w", r.err)
			}
			if r.exhausted {
				res.Complete = false
				break levels
			}
			if perm == nil {
				failed = append(failed, w)
				continue
			}

			res.Generators = append(res.Generators, perm)
			for i, j := range perm {
				orbits.Union(i, j)
			}
		}
		res.Log10Order += math.Log10(float64(orbits.SizeOf(v)))
	}
	res.Nodes = r.nodes

	return res, nil
}

func sameAsAny(d *dsu.DSU, w int, reps []int) bool {
	for _, f := range reps {
		if d.Same(w, f) {
			return true
		}
	}
	return false
}

// runner holds the state of one search.
type runner struct {
	ctx  context.Context
	g    *colorGraph
	m    *matrix.ColoredMatrix
	opts Options

	path   []int   // individualized vertex per level
	cells  [][]int // target cell per level
	states [][]int // coloring before individualization at each level; states[len(path)] is the leaf
	shapes [][]int // cell sizes of states[l]

	leafColor []int // first-leaf color of every variable

	nodes     int
	exhausted bool
	err       error
}

func (r *runner) firstPath() {
	st := r.g.refine(r.g.init)
	for {
		shape := shapeOf(st)
		r.states = append(r.states, st)
		r.shapes = append(r.shapes, shape)
		r.nodes++

		cell := r.g.targetCell(st, shape)
		if cell == nil {
			break
		}
		r.path = append(r.path, cell[0])
		r.cells = append(r.cells, cell)
		st = r.g.refine(individualize(st, cell[0]))
	}
	r.leafColor = st[:r.g.nvars]
}

// tick accounts one node and reports whether the search may continue.
func (r *runner) tick() bool {
	r.nodes++
	if r.nodes > r.opts.maxNodes {
		r.exhausted = true
		return false
	}
	if r.nodes%r.opts.cancelCheck == 0 {
		if err := r.ctx.Err(); err != nil {
			r.err = err
			return false
		}
	}

	return true
}

func (r *runner) stopped() bool { return r.exhausted || r.err != nil }

// searchFrom looks for an automorphism fixing path[:l] and mapping path[l]
// to w. Returns nil when none exists or the search stopped.
func (r *runner) searchFrom(l, w int) []int {
	if !r.tick() {
		return nil
	}
	st := r.g.refine(individualize(r.states[l], w))
	if !slices.Equal(shapeOf(st), r.shapes[l+1]) {
		return nil
	}

	return r.descend(l+1, st)
}

func (r *runner) descend(k int, st []int) []int {
	if k == len(r.path) {
		return r.leaf(st)
	}

	cell := r.g.targetCell(st, r.shapes[k])
	if cell == nil {
		return nil
	}
	for _, u := range preferFirst(cell, r.path[k]) {
		if !r.tick() {
			return nil
		}
		next := r.g.refine(individualize(st, u))
		if !slices.Equal(shapeOf(next), r.shapes[k+1]) {
			continue
		}
		if p := r.descend(k+1, next); p != nil || r.stopped() {
			return p
		}
	}

	return nil
}

// leaf maps the first leaf onto st color by color and verifies the result.
func (r *runner) leaf(st []int) []int {
	byColor := make(map[int]int, r.g.nvars)
	for u := 0; u < r.g.nvars; u++ {
		byColor[st[u]] = u
	}

	perm := make([]int, r.g.nvars)
	for v := range perm {
		u, ok := byColor[r.leafColor[v]]
		if !ok {
			return nil
		}
		perm[v] = u
	}
	if !r.m.IsAutomorphism(perm) {
		return nil
	}

	return perm
}

// preferFirst orders cell with want (if present) in front.
func preferFirst(cell []int, want int) []int {
	out := make([]int, 0, len(cell))
	for _, u := range cell {
		if u == want {
			out = append(out, u)
			break
		}
	}
	for _, u := range cell {
		if u != want {
			out = append(out, u)
		}
	}

	return out
}
