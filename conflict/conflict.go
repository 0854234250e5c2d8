// SPDX-License-Identifier: MIT

// Package conflict stores mutual-exclusion (clique) information over binary
// variables: for every variable the sorted list of cliques containing it.
// Two distinct variables conflict (can never both be 1) iff they share a
// clique. Conflict components, computed with a union-find over clique
// members, give a quick negative answer for unrelated pairs.
//
// Cliques come from the host (New) or are derived from the set packing and
// set partitioning rows of a problem (FromProblem).
package conflict

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/dsu"
)

// ErrVarIndex indicates a clique member outside [0, nvars).
var ErrVarIndex = errors.New("conflict: variable index out of range")

// Graph is the clique/conflict structure. Read-only after construction.
type Graph struct {
	cliques      [][]int // members, sorted, deduplicated
	partitioning []bool  // clique stems from an equation (exactly one)
	varCliques   [][]int // variable → sorted clique ids
	comp         []int   // conflict component per variable
}

// New builds the structure over nvars variables. Cliques with fewer than
// two distinct members carry no conflict and are ignored.
//
// Complexity: O(Σ|clique| log |clique|).
func New(nvars int, cliques [][]int) (*Graph, error) {
	return build(nvars, cliques, nil)
}

func build(nvars int, cliques [][]int, partitioning []bool) (*Graph, error) {
	g := &Graph{varCliques: make([][]int, nvars), comp: make([]int, nvars)}
	d := dsu.New(nvars)

	for ci, members := range cliques {
		set := append([]int(nil), members...)
		sort.Ints(set)
		w := 0
		for i, v := range set {
			if v < 0 || v >= nvars {
				return nil, fmt.Errorf("New: clique %d: %w", ci, ErrVarIndex)
			}
			if i == 0 || v != set[w-1] {
				set[w] = v
				w++
			}
		}
		set = set[:w]
		if len(set) < 2 {
			continue
		}

		id := len(g.cliques)
		g.cliques = append(g.cliques, set)
		g.partitioning = append(g.partitioning, partitioning != nil && partitioning[ci])
		for _, v := range set {
			g.varCliques[v] = append(g.varCliques[v], id)
			d.Union(set[0], v)
		}
	}

	for v := range g.comp {
		g.comp[v] = d.Find(v)
	}

	return g, nil
}

// FromProblem derives cliques from the active set packing / partitioning
// rows whose variables are all binary.
func FromProblem(p *core.Problem) *Graph {
	vars := p.Vars()
	var cliques [][]int
	var eq []bool
	for _, c := range p.Constraints() {
		if c.Deleted {
			continue
		}
		packing, partitioning := c.IsPackingLike()
		if !packing {
			continue
		}
		binary := true
		for _, v := range c.Vars {
			if !isBinary(vars[v]) {
				binary = false
				break
			}
		}
		if binary {
			cliques = append(cliques, c.Vars)
			eq = append(eq, partitioning)
		}
	}

	g, _ := build(len(vars), cliques, eq) // indices come from a validated problem
	return g
}

func isBinary(v core.Variable) bool {
	if v.Type == core.Continuous {
		return false
	}
	return v.LB >= 0 && v.UB <= 1
}

// NVars returns the size of the variable universe.
func (g *Graph) NVars() int { return len(g.varCliques) }

// NCliques returns the number of stored cliques.
func (g *Graph) NCliques() int { return len(g.cliques) }

// Clique returns the members of clique id. Shared.
func (g *Graph) Clique(id int) []int { return g.cliques[id] }

// IsPartitioning reports whether clique id is an equation (exactly one
// member is 1) rather than an inequality.
func (g *Graph) IsPartitioning(id int) bool { return g.partitioning[id] }

// CommonCliques returns the ids of the cliques containing every variable
// of vars, ascending.
func (g *Graph) CommonCliques(vars []int) []int {
	if len(vars) == 0 {
		return nil
	}
	common := append([]int(nil), g.varCliques[vars[0]]...)
	for _, v := range vars[1:] {
		common = intersect(common, g.varCliques[v])
		if len(common) == 0 {
			return nil
		}
	}
	return common
}

func intersect(x, y []int) []int {
	out := x[:0]
	for i, j := 0, 0; i < len(x) && j < len(y); {
		switch {
		case x[i] == y[j]:
			out = append(out, x[i])
			i++
			j++
		case x[i] < y[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// Cliques returns the sorted clique ids containing v. Shared.
func (g *Graph) Cliques(v int) []int { return g.varCliques[v] }

// SameComponent reports whether a and b are in one conflict component.
func (g *Graph) SameComponent(a, b int) bool { return g.comp[a] == g.comp[b] }

// Conflicts reports whether distinct a and b share a clique.
// Complexity: O(|cliques(a)| + |cliques(b)|).
func (g *Graph) Conflicts(a, b int) bool {
	if a == b || g.comp[a] != g.comp[b] {
		return false
	}
	x, y := g.varCliques[a], g.varCliques[b]
	for i, j := 0, 0; i < len(x) && j < len(y); {
		switch {
		case x[i] == y[j]:
			return true
		case x[i] < y[j]:
			i++
		default:
			j++
		}
	}
	return false
}

// CountConflicts returns how many of members conflict with v.
func (g *Graph) CountConflicts(v int, members []int) int {
	n := 0
	for _, u := range members {
		if g.Conflicts(v, u) {
			n++
		}
	}
	return n
}

// ConflictingMembers returns how many members conflict with at least one
// other member.
// Complexity: O(m² · d) for m members of clique degree d.
func (g *Graph) ConflictingMembers(members []int) int {
	n := 0
	for i, u := range members {
		for j, w := range members {
			if i != j && g.Conflicts(u, w) {
				n++
				break
			}
		}
	}
	return n
}
