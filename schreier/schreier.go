// SPDX-License-Identifier: MIT

// File: schreier.go
// Role: leader / stabilizer loop over one component.
package schreier

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvsym/group"
)

var (
	// ErrNilGroup is returned for a nil group.
	ErrNilGroup = errors.New("schreier: nil group")

	// ErrIneligible indicates a component without a variable of the leader
	// type, or a mixed-type component while mixed components are disabled.
	ErrIneligible = errors.New("schreier: component not eligible")
)

// Step is one leader choice.
type Step struct {
	// Leader is the chosen position.
	Leader int

	// Orbit is the leader's orbit under the active generators, without
	// members fixed by earlier steps, ascending. It contains Leader.
	Orbit []int

	// Others receive one cut "Leader >= other" each.
	Others []int

	// Fixed conflict with Leader and are fixed to zero instead of cut.
	Fixed []int

	// Deactivated lists the generators (group indices) that move Leader.
	Deactivated []int

	// Active is the number of generators still active after this step.
	Active int
}

// Result collects the steps run on one component.
type Result struct {
	Component int
	Steps     []Step
}

// Leaders returns the leader of every step in order.
func (r *Result) Leaders() []int {
	out := make([]int, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Leader
	}
	return out
}

// NCuts returns the total number of cuts.
func (r *Result) NCuts() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Others)
	}
	return n
}

// NFixed returns the total number of zero fixings.
func (r *Result) NFixed() int {
	n := 0
	for _, s := range r.Steps {
		n += len(s.Fixed)
	}
	return n
}

// Eligible reports whether component c takes part under opts.
func Eligible(g *group.Group, c int, opts ...Option) bool {
	o := gatherOptions(opts...)
	return g != nil && c >= 0 && c < g.NComponents() && o.eligible(g, c)
}

func (o *Options) eligible(g *group.Group, c int) bool {
	return g.ComponentHasType(c, o.leaderType) && (o.mixed || g.ComponentUniform(c))
}

// Run executes the leader loop on component c of g.
//
// Implementation:
//   - Stage 1: active := generators of c, restricted to the pointwise
//     stabilizer of the WithStabilizerOf positions.
//   - Stage 2: Orbits of the active generators, minus fixed members; keep
//     orbits of size >= 2 that hold a variable of the leader type.
//   - Stage 3: Select orbit and leader; split the other members into cuts
//     and conflict fixings.
//   - Stage 4: Deactivate every active generator moving the leader and
//     repeat from Stage 2 until nothing is active or no orbit qualifies.
//
// Every step deactivates at least one generator, so the loop runs at most
// NPerms(c) times.
//
// Errors: ErrNilGroup, group.ErrComponentIndex (wrapped), ErrIneligible.
//
// Complexity: O(k² · n) for k generators over n positions.
func Run(g *group.Group, c int, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrNilGroup
	}
	if c < 0 || c >= g.NComponents() {
		return nil, fmt.Errorf("Run: component %d: %w", c, group.ErrComponentIndex)
	}
	o := gatherOptions(opts...)
	if !o.eligible(g, c) {
		return nil, fmt.Errorf("Run: component %d: %w", c, ErrIneligible)
	}

	active := o.stabilizer(g, g.ComponentPerms(c))
	fixed := make([]bool, g.NVars())
	res := &Result{Component: c}

	for len(active) > 0 {
		var candidates [][]int
		for _, orbit := range g.Orbits(active) {
			kept := orbit[:0:0]
			hasType := false
			for _, v := range orbit {
				if fixed[v] {
					continue
				}
				kept = append(kept, v)
				hasType = hasType || g.Type(v) == o.leaderType
			}
			if len(kept) > 1 && hasType {
				candidates = append(candidates, kept)
			}
		}
		if len(candidates) == 0 {
			break
		}

		orbit := o.selectOrbit(g, candidates)
		step := Step{Leader: o.selectLeader(g, orbit), Orbit: orbit}
		for _, v := range orbit {
			switch {
			case v == step.Leader:
			case o.conflict(g, step.Leader, v):
				step.Fixed = append(step.Fixed, v)
				fixed[v] = true
			default:
				step.Others = append(step.Others, v)
			}
		}

		next := make([]int, 0, len(active))
		for _, pi := range active {
			if g.Perm(pi)[step.Leader] != step.Leader {
				step.Deactivated = append(step.Deactivated, pi)
			} else {
				next = append(next, pi)
			}
		}
		active = next
		step.Active = len(active)
		res.Steps = append(res.Steps, step)
	}

	return res, nil
}

// stabilizer keeps the generators fixing every stabilized position.
func (o *Options) stabilizer(g *group.Group, perms []int) []int {
	out := make([]int, 0, len(perms))
	for _, pi := range perms {
		perm, keep := g.Perm(pi), true
		for _, v := range o.stabilize {
			if v >= 0 && v < len(perm) && perm[v] != v {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, pi)
		}
	}
	return out
}

// conflict reports whether positions a and b share a clique.
func (o *Options) conflict(g *group.Group, a, b int) bool {
	cg := o.conflicts
	if cg == nil {
		return false
	}
	va, vb := g.Var(a), g.Var(b)
	if va >= cg.NVars() || vb >= cg.NVars() {
		return false
	}
	return cg.Conflicts(va, vb)
}

func (o *Options) problemVars(g *group.Group, members []int) []int {
	out := make([]int, 0, len(members))
	for _, v := range members {
		if pv := g.Var(v); pv < o.conflicts.NVars() {
			out = append(out, pv)
		}
	}
	return out
}

// selectOrbit applies the orbit rule; ties keep the earlier orbit.
func (o *Options) selectOrbit(g *group.Group, candidates [][]int) []int {
	rule := o.orbitRule
	if rule == MostConflicts && o.conflicts == nil {
		rule = MaxOrbit
	}

	best, bestScore := candidates[0], o.orbitScore(g, rule, candidates[0])
	for _, orbit := range candidates[1:] {
		score := o.orbitScore(g, rule, orbit)
		if score[0] > bestScore[0] || (score[0] == bestScore[0] && score[1] > bestScore[1]) {
			best, bestScore = orbit, score
		}
	}
	return best
}

// orbitScore is compared lexicographically, larger wins.
func (o *Options) orbitScore(g *group.Group, rule OrbitRule, orbit []int) [2]int {
	switch rule {
	case MinOrbit:
		return [2]int{-len(orbit), 0}
	case MostConflicts:
		return [2]int{o.conflicts.ConflictingMembers(o.problemVars(g, orbit)), len(orbit)}
	default:
		return [2]int{len(orbit), 0}
	}
}

// selectLeader applies the leader rule to the members of the leader type.
func (o *Options) selectLeader(g *group.Group, orbit []int) int {
	var eligible []int
	for _, v := range orbit {
		if g.Type(v) == o.leaderType {
			eligible = append(eligible, v)
		}
	}

	switch {
	case o.leaderRule == LastInOrbit:
		return eligible[len(eligible)-1]
	case o.leaderRule == MaxConflicts && o.conflicts != nil:
		members := o.problemVars(g, orbit)
		best, bestCount := eligible[0], -1
		for _, v := range eligible {
			if g.Var(v) >= o.conflicts.NVars() {
				continue
			}
			if n := o.conflicts.CountConflicts(g.Var(v), members); n > bestCount {
				best, bestCount = v, n
			}
		}
		return best
	default:
		return eligible[0]
	}
}
