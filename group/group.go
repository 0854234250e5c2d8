// SPDX-License-Identifier: MIT

// File: group.go
// Role: generator storage, moved-variable statistics, components, compression.
package group

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/dsu"
)

// NoComponent is the component id of a variable no generator moves.
const NoComponent = -1

var (
	// ErrBadPermutation indicates a generator that is not a bijection on
	// [0, n) or has the wrong length.
	ErrBadPermutation = errors.New("group: generator is not a permutation")

	// ErrComponentIndex indicates a component id out of range.
	ErrComponentIndex = errors.New("group: component index out of range")
)

// Group is the generating set of a permutation group together with its
// component decomposition.
type Group struct {
	vars  []int          // problem variable index of every position
	types []core.VarType // domain type of every position
	perms [][]int        // generators over positions

	log10Order float64
	complete   bool
	compressed bool

	nmoved      int
	movedByType [core.NumVarTypes]int

	// components
	varComp    []int // component of every position, NoComponent if fixed
	permComp   []int // component of every generator
	varOrder   []int // positions grouped by component
	varBegins  []int // len = ncomps+1
	permOrder  []int // generators grouped by component
	permBegins []int // len = ncomps+1

	blocked []TechniqueSet
	handled [][core.NumVarTypes]bool
}

// New builds a Group over len(types) variables. types[i] is the domain type
// of variable i. Identity generators are dropped.
//
// Errors:
//   - ErrBadPermutation (wrapped with the generator index).
//
// Complexity: O(k·n α(n)) for k generators over n variables.
func New(types []core.VarType, perms [][]int, log10Order float64, complete bool) (*Group, error) {
	n := len(types)
	g := &Group{
		vars:       make([]int, n),
		types:      append([]core.VarType(nil), types...),
		log10Order: log10Order,
		complete:   complete,
	}
	for i := range g.vars {
		g.vars[i] = i
	}

	seen := make([]bool, n)
	for pi, p := range perms {
		if len(p) != n {
			return nil, fmt.Errorf("New: generator %d: %w", pi, ErrBadPermutation)
		}
		for i := range seen {
			seen[i] = false
		}
		identity := true
		for i, j := range p {
			if j < 0 || j >= n || seen[j] {
				return nil, fmt.Errorf("New: generator %d: %w", pi, ErrBadPermutation)
			}
			seen[j] = true
			if i != j {
				identity = false
			}
		}
		if !identity {
			g.perms = append(g.perms, append([]int(nil), p...))
		}
	}

	g.computeStats()
	g.computeComponents()

	return g, nil
}

// NVars returns the length of every generator.
func (g *Group) NVars() int { return len(g.vars) }

// NPerms returns the number of generators.
func (g *Group) NPerms() int { return len(g.perms) }

// Perm returns generator i. The slice is shared; callers must not modify it.
func (g *Group) Perm(i int) []int { return g.perms[i] }

// Perms returns all generators. The slices are shared.
func (g *Group) Perms() [][]int { return g.perms }

// Var maps position i to the problem variable index.
func (g *Group) Var(i int) int { return g.vars[i] }

// Vars returns the position → problem index map. Shared.
func (g *Group) Vars() []int { return g.vars }

// Type returns the domain type at position i.
func (g *Group) Type(i int) core.VarType { return g.types[i] }

// Log10Order returns log10 of the group order.
func (g *Group) Log10Order() float64 { return g.log10Order }

// Complete reports whether the oracle returned a full generating set.
func (g *Group) Complete() bool { return g.complete }

// Compressed reports whether positions were remapped to moved variables.
func (g *Group) Compressed() bool { return g.compressed }

// NMoved returns the number of variables moved by some generator.
func (g *Group) NMoved() int { return g.nmoved }

// MovedByType returns the number of moved variables of domain type t.
func (g *Group) MovedByType(t core.VarType) int {
	if t < 0 || int(t) >= core.NumVarTypes {
		return 0
	}
	return g.movedByType[t]
}

func (g *Group) computeStats() {
	moved := make([]bool, len(g.vars))
	for _, p := range g.perms {
		for i, j := range p {
			if i != j {
				moved[i] = true
			}
		}
	}
	g.nmoved = 0
	g.movedByType = [core.NumVarTypes]int{}
	for i, ok := range moved {
		if ok {
			g.nmoved++
			g.movedByType[g.types[i]]++
		}
	}
}

// computeComponents rebuilds the component partition.
//
// Implementation:
//   - Stage 1: Union every moved position with the first position its
//     generator moves.
//   - Stage 2: Number components by their smallest position.
//   - Stage 3: Lay out positions and generators contiguously per component.
func (g *Group) computeComponents() {
	n := len(g.vars)
	d := dsu.New(n)
	moved := make([]bool, n)
	firstMoved := make([]int, len(g.perms))

	for pi, p := range g.perms {
		firstMoved[pi] = -1
		for i, j := range p {
			if i == j {
				continue
			}
			moved[i] = true
			if firstMoved[pi] < 0 {
				firstMoved[pi] = i
			} else {
				d.Union(firstMoved[pi], i)
			}
		}
	}

	rootComp := make(map[int]int)
	g.varComp = make([]int, n)
	for i := 0; i < n; i++ {
		if !moved[i] {
			g.varComp[i] = NoComponent
			continue
		}
		r := d.Find(i)
		c, ok := rootComp[r]
		if !ok {
			c = len(rootComp)
			rootComp[r] = c
		}
		g.varComp[i] = c
	}
	ncomps := len(rootComp)

	g.permComp = make([]int, len(g.perms))
	for pi := range g.perms {
		g.permComp[pi] = g.varComp[firstMoved[pi]]
	}

	g.varOrder, g.varBegins = layout(g.varComp, ncomps)
	g.permOrder, g.permBegins = layout(g.permComp, ncomps)
	g.blocked = make([]TechniqueSet, ncomps)
	g.handled = make([][core.NumVarTypes]bool, ncomps)
}

// layout groups indices by component id, keeping index order inside each
// component. Negative ids are left out.
func layout(comp []int, ncomps int) (order, begins []int) {
	begins = make([]int, ncomps+1)
	for _, c := range comp {
		if c >= 0 {
			begins[c+1]++
		}
	}
	for c := 0; c < ncomps; c++ {
		begins[c+1] += begins[c]
	}

	order = make([]int, begins[ncomps])
	next := append([]int(nil), begins[:ncomps]...)
	for i, c := range comp {
		if c < 0 {
			continue
		}
		order[next[c]] = i
		next[c]++
	}

	return order, begins
}

// NComponents returns the number of components.
func (g *Group) NComponents() int { return len(g.blocked) }

// VarComponent returns the component of position i or NoComponent.
func (g *Group) VarComponent(i int) int { return g.varComp[i] }

// PermComponent returns the component of generator pi.
func (g *Group) PermComponent(pi int) int { return g.permComp[pi] }

// ComponentVars returns the positions of component c in ascending order.
func (g *Group) ComponentVars(c int) []int {
	return g.varOrder[g.varBegins[c]:g.varBegins[c+1]]
}

// ComponentPerms returns the generator indices of component c ascending.
func (g *Group) ComponentPerms(c int) []int {
	return g.permOrder[g.permBegins[c]:g.permBegins[c+1]]
}

// ComponentGenerators returns the generators of component c.
func (g *Group) ComponentGenerators(c int) [][]int {
	idx := g.ComponentPerms(c)
	out := make([][]int, len(idx))
	for k, pi := range idx {
		out[k] = g.perms[pi]
	}
	return out
}

// ComponentHasType reports whether component c contains a variable of type t.
func (g *Group) ComponentHasType(c int, t core.VarType) bool {
	for _, i := range g.ComponentVars(c) {
		if g.types[i] == t {
			return true
		}
	}
	return false
}

// ComponentUniform reports whether all variables of component c share a type.
func (g *Group) ComponentUniform(c int) bool {
	vs := g.ComponentVars(c)
	for _, i := range vs[1:] {
		if g.types[i] != g.types[vs[0]] {
			return false
		}
	}
	return true
}

// Blocked returns the techniques that claimed component c.
func (g *Group) Blocked(c int) TechniqueSet { return g.blocked[c] }

// IsBlocked reports whether any technique claimed component c.
func (g *Group) IsBlocked(c int) bool { return !g.blocked[c].Empty() }

// Block records that technique t claimed component c.
func (g *Group) Block(c int, t Technique) error {
	if c < 0 || c >= len(g.blocked) {
		return ErrComponentIndex
	}
	g.blocked[c].Add(t)
	return nil
}

// MarkHandled records that variables of type vt in component c are handled.
func (g *Group) MarkHandled(c int, vt core.VarType) {
	if c >= 0 && c < len(g.handled) && vt >= 0 && int(vt) < core.NumVarTypes {
		g.handled[c][vt] = true
	}
}

// Handled reports whether variables of type vt in component c are handled.
func (g *Group) Handled(c int, vt core.VarType) bool {
	if c < 0 || c >= len(g.handled) || vt < 0 || int(vt) >= core.NumVarTypes {
		return false
	}
	return g.handled[c][vt]
}

// NBlocked returns the number of components claimed by some technique.
func (g *Group) NBlocked() int {
	n := 0
	for _, s := range g.blocked {
		if !s.Empty() {
			n++
		}
	}
	return n
}

// Compress drops every variable fixed by all generators and renumbers
// positions, when the moved fraction nmoved/n is at most threshold.
// Generators, variable map, types and components are rewritten together.
// Returns true when compression happened. Blocking state is reset.
//
// Complexity: O(k·n).
func (g *Group) Compress(threshold float64) bool {
	n := len(g.vars)
	if g.compressed || n == 0 || len(g.perms) == 0 {
		return false
	}
	if float64(g.nmoved) > threshold*float64(n) || g.nmoved == n {
		return false
	}

	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	vars := make([]int, 0, g.nmoved)
	types := make([]core.VarType, 0, g.nmoved)
	for i := 0; i < n; i++ {
		if g.varComp[i] == NoComponent {
			continue
		}
		pos[i] = len(vars)
		vars = append(vars, g.vars[i])
		types = append(types, g.types[i])
	}

	perms := make([][]int, len(g.perms))
	for pi, p := range g.perms {
		q := make([]int, len(vars))
		for i, j := range p {
			if pos[i] >= 0 {
				q[pos[i]] = pos[j]
			}
		}
		perms[pi] = q
	}

	g.vars, g.types, g.perms = vars, types, perms
	g.compressed = true
	g.computeStats()
	g.computeComponents()

	return true
}

// Orbits returns the non-trivial orbits of the subgroup generated by the
// generators with indices idx (all generators when idx is nil), each sorted,
// ordered by smallest member.
func (g *Group) Orbits(idx []int) [][]int {
	if idx == nil {
		return Orbits(len(g.vars), g.perms)
	}
	sub := make([][]int, len(idx))
	for k, pi := range idx {
		sub[k] = g.perms[pi]
	}
	return Orbits(len(g.vars), sub)
}

// Orbits returns the non-trivial orbits of <perms> on [0, n), each sorted,
// ordered by smallest member.
// Complexity: O(n·k) for k generators.
func Orbits(n int, perms [][]int) [][]int {
	seen := make([]bool, n)
	var out [][]int
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		orbit := closure(perms, s, seen)
		if len(orbit) > 1 {
			sort.Ints(orbit)
			out = append(out, orbit)
		}
	}
	return out
}

// Orbit returns the orbit of x under <perms>, sorted.
func Orbit(n int, perms [][]int, x int) []int {
	orbit := closure(perms, x, make([]bool, n))
	sort.Ints(orbit)
	return orbit
}

// closure collects everything reachable from s, marking seen.
func closure(perms [][]int, s int, seen []bool) []int {
	seen[s] = true
	queue := []int{s}
	for qi := 0; qi < len(queue); qi++ {
		x := queue[qi]
		for _, p := range perms {
			y := p[x]
			if !seen[y] {
				seen[y] = true
				queue = append(queue, y)
			}
		}
	}
	return queue
}

// IsInvolution reports whether perm has only cycles of length 1 or 2 and
// returns the number of 2-cycles.
func IsInvolution(perm []int) (bool, int) {
	ncycles := 0
	for i, j := range perm {
		if perm[j] != i {
			return false, 0
		}
		if i < j {
			ncycles++
		}
	}
	return true, ncycles
}
