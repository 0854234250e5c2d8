// SPDX-License-Identifier: MIT

// File: config.go
// Role: resolved constructor configuration and name generation.
//
// Deterministic defaults:
//   - idFn      = DefaultIDFn ("0","1",...)
//   - rng       = nil (randomized constructors fail with ErrNeedRandSource)
//   - weightFn  = DefaultWeightFn
//   - objective = DefaultObjective
package builder

import (
	"math/rand"
	"strings"
)

// DefaultObjective is the objective coefficient of the choice variables of
// Cardinality, Assignment and Pigeonhole: every selection is rewarded
// equally, which keeps the formulation group intact.
const DefaultObjective = -1.0

// builderConfig aggregates the knobs used by constructors. It is passed by
// value.
type builderConfig struct {
	idFn      IDFn
	rng       *rand.Rand
	weightFn  WeightFn
	objective float64

	// scope prefixes every generated name; set by BuildProblem when it
	// composes several constructors.
	scope string
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		idFn:      DefaultIDFn,
		weightFn:  DefaultWeightFn,
		objective: DefaultObjective,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// name joins base and the ids of idx: name("x", 1, 2) == "x1_2" under the
// default scheme.
func (c builderConfig) name(base string, idx ...int) string {
	var sb strings.Builder
	sb.WriteString(c.scope)
	sb.WriteString(base)
	for k, i := range idx {
		if k > 0 {
			sb.WriteByte('_')
		}
		sb.WriteString(c.idFn(i))
	}
	return sb.String()
}
