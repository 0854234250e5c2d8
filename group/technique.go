// SPDX-License-Identifier: MIT

package group

import "strings"

// Technique names one way of handling the symmetry of a component.
type Technique int

const (
	// Orbitope is a (full or partial) orbitope constraint or reducer.
	Orbitope Technique = iota
	// Subgroup is strong/weak inequalities from subgroup detection.
	Subgroup
	// SST is Schreier–Sims cuts.
	SST
	// OrbitalReduction is the dynamic orbital reducer.
	OrbitalReduction
	// LexReduction is the dynamic lexicographic reducer.
	LexReduction
	// Symresack is the per-generator catch-all.
	Symresack

	numTechniques
)

var techniqueNames = [numTechniques]string{
	"orbitope", "subgroup", "sst", "orbital", "lexred", "symresack",
}

// String implements fmt.Stringer.
func (t Technique) String() string {
	if t < 0 || t >= numTechniques {
		return "unknown"
	}
	return techniqueNames[t]
}

// TechniqueSet is a small set of Technique values.
// The zero value is the empty set.
type TechniqueSet struct {
	members [numTechniques]bool
}

// Add inserts t.
func (s *TechniqueSet) Add(t Technique) {
	if t >= 0 && t < numTechniques {
		s.members[t] = true
	}
}

// Has reports membership of t.
func (s TechniqueSet) Has(t Technique) bool {
	return t >= 0 && t < numTechniques && s.members[t]
}

// Empty reports whether no technique is in the set.
func (s TechniqueSet) Empty() bool {
	for _, ok := range s.members {
		if ok {
			return false
		}
	}
	return true
}

// Techniques lists the members in declaration order.
func (s TechniqueSet) Techniques() []Technique {
	var out []Technique
	for t, ok := range s.members {
		if ok {
			out = append(out, Technique(t))
		}
	}
	return out
}

// String renders the set as "a+b", or "none".
func (s TechniqueSet) String() string {
	ts := s.Techniques()
	if len(ts) == 0 {
		return "none"
	}
	names := make([]string, len(ts))
	for i, t := range ts {
		names[i] = t.String()
	}
	return strings.Join(names, "+")
}
