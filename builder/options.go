// SPDX-License-Identifier: MIT

// File: options.go
// Role: functional options for BuildProblem.
//
// Option constructors validate their input and panic on meaningless values;
// constructors never panic.
package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// BuilderOption mutates a builderConfig before any constructor runs.
type BuilderOption func(*builderConfig)

// WithIDScheme sets the index to string scheme used in variable names.
// Panics on nil.
func WithIDScheme(fn IDFn) BuilderOption {
	if fn == nil {
		panic("builder: WithIDScheme(nil)")
	}
	return func(c *builderConfig) { c.idFn = fn }
}

// WithRand provides an explicit RNG for randomized constructors.
// Panics on nil; prefer WithSeed for reproducible runs.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) { c.rng = r }
}

// WithSeed installs a fresh RNG seeded with seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithWeightFn overrides the generator of random weights and profits.
// Panics on nil.
func WithWeightFn(fn WeightFn) BuilderOption {
	if fn == nil {
		panic("builder: WithWeightFn(nil)")
	}
	return func(c *builderConfig) { c.weightFn = fn }
}

// WithObjective sets the objective coefficient shared by all choice
// variables. Panics on NaN or infinite values.
func WithObjective(obj float64) BuilderOption {
	if math.IsNaN(obj) || math.IsInf(obj, 0) {
		panic(fmt.Sprintf("builder: WithObjective(%g)", obj))
	}
	return func(c *builderConfig) { c.objective = obj }
}
