// SPDX-License-Identifier: MIT

package schreier

import (
	"fmt"

	"github.com/katalvlaran/lvsym/conflict"
	"github.com/katalvlaran/lvsym/core"
)

// LeaderRule picks the leader inside the selected orbit.
type LeaderRule int

const (
	// FirstInOrbit picks the smallest eligible position.
	FirstInOrbit LeaderRule = iota
	// LastInOrbit picks the largest eligible position.
	LastInOrbit
	// MaxConflicts picks the member conflicting with most others.
	// Falls back to FirstInOrbit without a conflict graph.
	MaxConflicts
)

var leaderRuleNames = [...]string{"first", "last", "maxconflicts"}

// String implements fmt.Stringer.
func (r LeaderRule) String() string {
	if r < 0 || int(r) >= len(leaderRuleNames) {
		return "unknown"
	}
	return leaderRuleNames[r]
}

// ParseLeaderRule is the inverse of LeaderRule.String.
func ParseLeaderRule(s string) (LeaderRule, bool) {
	for i, name := range leaderRuleNames {
		if name == s {
			return LeaderRule(i), true
		}
	}
	return 0, false
}

// OrbitRule picks the orbit a leader is taken from.
type OrbitRule int

const (
	// MaxOrbit prefers the largest orbit.
	MaxOrbit OrbitRule = iota
	// MinOrbit prefers the smallest non-trivial orbit.
	MinOrbit
	// MostConflicts prefers the orbit with most pairwise-conflicting
	// members. Falls back to MaxOrbit without a conflict graph.
	MostConflicts
)

var orbitRuleNames = [...]string{"maxorbit", "minorbit", "mostconflicts"}

// String implements fmt.Stringer.
func (r OrbitRule) String() string {
	if r < 0 || int(r) >= len(orbitRuleNames) {
		return "unknown"
	}
	return orbitRuleNames[r]
}

// ParseOrbitRule is the inverse of OrbitRule.String.
func ParseOrbitRule(s string) (OrbitRule, bool) {
	for i, name := range orbitRuleNames {
		if name == s {
			return OrbitRule(i), true
		}
	}
	return 0, false
}

// Defaults.
const (
	DefaultLeaderRule = FirstInOrbit
	DefaultOrbitRule  = MaxOrbit
	DefaultLeaderType = core.Binary
)

// Options holds the resolved engine configuration.
type Options struct {
	leaderRule LeaderRule
	orbitRule  OrbitRule
	leaderType core.VarType
	mixed      bool
	conflicts  *conflict.Graph
	stabilize  []int
}

// Option configures Run.
type Option func(*Options)

// WithLeaderRule sets the leader rule. Panics on an unknown rule.
func WithLeaderRule(r LeaderRule) Option {
	if r < FirstInOrbit || r > MaxConflicts {
		panic(fmt.Sprintf("schreier: WithLeaderRule(%d): unknown rule", r))
	}
	return func(o *Options) { o.leaderRule = r }
}

// WithOrbitRule sets the orbit selection rule. Panics on an unknown rule.
func WithOrbitRule(r OrbitRule) Option {
	if r < MaxOrbit || r > MostConflicts {
		panic(fmt.Sprintf("schreier: WithOrbitRule(%d): unknown rule", r))
	}
	return func(o *Options) { o.orbitRule = r }
}

// WithLeaderType restricts leaders (and the components that take part) to
// variables of type t. Panics on an unknown type.
func WithLeaderType(t core.VarType) Option {
	if t < 0 || int(t) >= core.NumVarTypes {
		panic(fmt.Sprintf("schreier: WithLeaderType(%d): unknown type", t))
	}
	return func(o *Options) { o.leaderType = t }
}

// WithMixedComponents lets components with several variable types take part.
func WithMixedComponents(ok bool) Option {
	return func(o *Options) { o.mixed = ok }
}

// WithConflicts supplies the conflict graph, indexed by problem variable.
// A nil graph disables conflict handling.
func WithConflicts(cg *conflict.Graph) Option {
	return func(o *Options) { o.conflicts = cg }
}

// WithStabilizerOf starts the leader loop from the generators that fix
// every listed position. Positions are group positions; other components'
// positions are ignored because their generators never move them.
func WithStabilizerOf(positions []int) Option {
	fixed := append([]int(nil), positions...)
	return func(o *Options) { o.stabilize = fixed }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		leaderRule: DefaultLeaderRule,
		orbitRule:  DefaultOrbitRule,
		leaderType: DefaultLeaderType,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
