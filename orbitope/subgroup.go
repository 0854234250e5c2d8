// SPDX-License-Identifier: MIT

// File: subgroup.go
// Role: subgroup detection graph and strong/weak inequality planning.
package orbitope

import (
	"math"
	"sort"

	"github.com/katalvlaran/lvsym/dsu"
	"github.com/katalvlaran/lvsym/group"
)

// Defaults for SubgroupOptions.
const (
	DefaultMinCols         = 3
	DefaultMinBinRows      = 1
	DefaultMinUsedFraction = 1.0
)

// SubgroupOptions tunes DetectSubgroups.
type SubgroupOptions struct {
	// MinCols is the smallest column count accepted for an orbitope.
	MinCols int
	// MinBinRows is the smallest number of binary rows accepted.
	MinBinRows int
	// MinUsedFraction of a color class's generators must become column
	// transpositions for the class to count as an orbitope.
	MinUsedFraction float64
	// WeakSBCs anchors the chain leader to its full orbit.
	WeakSBCs bool
}

// DefaultSubgroupOptions returns the documented defaults with weak
// inequalities enabled.
func DefaultSubgroupOptions() SubgroupOptions {
	return SubgroupOptions{
		MinCols:         DefaultMinCols,
		MinBinRows:      DefaultMinBinRows,
		MinUsedFraction: DefaultMinUsedFraction,
		WeakSBCs:        true,
	}
}

// SubgroupPlan is the symmetry handling found for one component.
type SubgroupPlan struct {
	// Orbitopes found per color class; Used refers to the input generators.
	Orbitopes []*Orbitope

	// Chain is a strong inequality chain Chain[0] >= Chain[1] >= ...,
	// empty when every color class became an orbitope.
	Chain []int

	// WeakLeader >= each of WeakOthers. WeakLeader is -1 when unused.
	WeakLeader int
	WeakOthers []int

	// Accepted lists the input generators kept by the detection graph.
	Accepted []int
}

// NInequalities returns the number of inequalities the chain and weak part
// amount to.
func (p *SubgroupPlan) NInequalities() int {
	n := len(p.WeakOthers)
	if len(p.Chain) > 1 {
		n += len(p.Chain) - 1
	}
	return n
}

// DetectSubgroups scans the generators of one component over n positions.
//
// Implementation:
//   - Stage 1: Keep the involutions, largest 2-cycle count first.
//   - Stage 2: Accept a generator into the detection graph when none of its
//     2-cycles joins a piece to itself or to a piece of the same color and
//     it touches every piece at most once; accepted generators join their
//     2-cycles and merge the colors of all pieces they touch.
//   - Stage 3: Per color class, try an orbitope; classes that are too small
//     offer their largest piece as the strong chain.
//   - Stage 4: Weak inequalities from the chain leader to the rest of its
//     orbit under all generators, when no orbitope was found.
//
// Acceptance is greedy, so stages 2-4 are repeated with every qualifying
// generator moved to the front. The plan covering most orbitope cells wins,
// then the longest chain; ties keep the earlier seed.
//
// Errors: ErrTooFewGenerators.
//
// Complexity: O(k · (k·c + B)) for k qualifying generators with c 2-cycles
// each, B the cost of one Build.
func DetectSubgroups(n int, perms [][]int, isBinary func(int) bool, opts SubgroupOptions) (*SubgroupPlan, error) {
	idx, cycles := Qualifying(perms)
	if len(idx) < 2 {
		return nil, ErrTooFewGenerators
	}

	order := make([]int, len(idx))
	for k := range order {
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool { return len(cycles[order[a]]) > len(cycles[order[b]]) })

	d := &detector{n: n, perms: perms, idx: idx, cycles: cycles, isBinary: isBinary, opts: opts}
	best := d.plan(order)
	if best.complete(len(idx)) {
		return best, nil
	}
	seeded := make([]int, 0, len(order))
	for s := 1; s < len(order); s++ {
		seeded = append(seeded[:0], order[s])
		seeded = append(seeded, order[:s]...)
		seeded = append(seeded, order[s+1:]...)
		if p := d.plan(seeded); p.better(best) {
			best = p
			if best.complete(len(idx)) {
				break
			}
		}
	}

	return best, nil
}

type detector struct {
	n        int
	perms    [][]int
	idx      []int
	cycles   [][][2]int
	isBinary func(int) bool
	opts     SubgroupOptions
}

// cells counts the positions covered by orbitopes.
func (p *SubgroupPlan) cells() int {
	n := 0
	for _, o := range p.Orbitopes {
		n += o.NRows() * o.NCols()
	}
	return n
}

func (p *SubgroupPlan) better(q *SubgroupPlan) bool {
	if pc, qc := p.cells(), q.cells(); pc != qc {
		return pc > qc
	}
	return len(p.Chain) > len(q.Chain)
}

// complete reports that every qualifying generator went into an orbitope.
func (p *SubgroupPlan) complete(nq int) bool {
	return len(p.Orbitopes) > 0 && len(p.Chain) == 0 && len(p.Accepted) == nq
}

// plan runs stages 2-4 with generators offered in order.
func (d *detector) plan(order []int) *SubgroupPlan {
	cycles, idx, opts := d.cycles, d.idx, d.opts

	// Stage 2
	graph, color := dsu.New(d.n), dsu.New(d.n)
	var accepted []int
	touched := make(map[int]bool)
	for _, k := range order {
		clear(touched)
		ok := true
		for _, c := range cycles[k] {
			ra, rb := graph.Find(c[0]), graph.Find(c[1])
			if ra == rb || color.Find(ra) == color.Find(rb) || touched[ra] || touched[rb] {
				ok = false
				break
			}
			touched[ra], touched[rb] = true, true
		}
		if !ok {
			continue
		}

		anchor := graph.Find(cycles[k][0][0])
		for _, c := range cycles[k] {
			ra, rb := graph.Find(c[0]), graph.Find(c[1])
			color.Union(anchor, ra)
			color.Union(anchor, rb)
			graph.Union(ra, rb)
		}
		accepted = append(accepted, k)
	}

	// Stage 3
	classOf := func(k int) int { return color.Find(graph.Find(cycles[k][0][0])) }
	var classes [][]int
	classIndex := make(map[int]int)
	for _, k := range accepted {
		c := classOf(k)
		ci, ok := classIndex[c]
		if !ok {
			ci = len(classes)
			classIndex[c] = ci
			classes = append(classes, nil)
		}
		classes[ci] = append(classes[ci], k)
	}

	plan := &SubgroupPlan{WeakLeader: -1}
	for _, k := range accepted {
		plan.Accepted = append(plan.Accepted, idx[k])
	}
	sort.Ints(plan.Accepted)

	pieces := piecesByColor(graph, color)
	var bestPiece []int
	for _, class := range classes {
		gens := make([][]int, len(class))
		for j, k := range class {
			gens[j] = d.perms[idx[k]]
		}
		minUsed := int(math.Ceil(opts.MinUsedFraction * float64(len(gens))))

		o, err := Build(gens, d.isBinary, minUsed)
		if err == nil && o.NCols() >= opts.MinCols && o.NBinRows >= opts.MinBinRows {
			for j, u := range o.Used {
				o.Used[j] = idx[class[u]]
			}
			sort.Ints(o.Used)
			plan.Orbitopes = append(plan.Orbitopes, o)
			continue
		}

		var candidate []int
		if err == nil {
			candidate = o.Matrix[0]
			for _, row := range o.Matrix[1:] {
				if len(row) > len(candidate) {
					candidate = row
				}
			}
		}
		for _, piece := range pieces[classOf(class[0])] {
			if len(piece) > len(candidate) {
				candidate = piece
			}
		}
		if len(candidate) > len(bestPiece) {
			bestPiece = candidate
		}
	}
	if len(bestPiece) > 1 {
		plan.Chain = append([]int(nil), bestPiece...)
	}

	// Stage 4
	if opts.WeakSBCs && len(plan.Orbitopes) == 0 && len(plan.Chain) > 1 {
		leader := plan.Chain[0]
		inChain := make(map[int]bool, len(plan.Chain))
		for _, v := range plan.Chain {
			inChain[v] = true
		}
		for _, v := range group.Orbit(d.n, d.perms, leader) {
			if !inChain[v] {
				plan.WeakOthers = append(plan.WeakOthers, v)
			}
		}
		if len(plan.WeakOthers) > 0 {
			plan.WeakLeader = leader
		}
	}

	return plan
}

// piecesByColor lists the non-trivial pieces of graph keyed by color,
// each sorted, pieces ordered by smallest member.
func piecesByColor(graph, color *dsu.DSU) map[int][][]int {
	out := make(map[int][][]int)
	for _, piece := range graph.Groups(false) {
		c := color.Find(graph.Find(piece[0]))
		out[c] = append(out[c], piece)
	}
	return out
}
