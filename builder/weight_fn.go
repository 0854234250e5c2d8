// SPDX-License-Identifier: MIT

// File: weight_fn.go
// Role: generators of integral weights and profits for randomized
// constructors.
package builder

import (
	"fmt"
	"math"
	"math/rand"
)

// DefaultWeight is returned by DefaultWeightFn and by every generator that
// runs without an RNG.
const DefaultWeight float64 = 1

// WeightFn draws one positive integral weight. Generated instances stay
// within the 0/1 integer programs that satcheck can verify.
type WeightFn func(rng *rand.Rand) float64

// DefaultWeightFn always returns DefaultWeight.
func DefaultWeightFn(_ *rand.Rand) float64 {
	return DefaultWeight
}

// ConstantWeightFn returns value for every draw. Panics unless value is a
// positive integer.
func ConstantWeightFn(value float64) WeightFn {
	if value < 1 || value != math.Trunc(value) {
		panic(fmt.Sprintf("ConstantWeightFn: value must be a positive integer, got %g", value))
	}
	return func(_ *rand.Rand) float64 { return value }
}

// UniformWeightFn draws uniformly from the integers in [min, max].
// Panics unless 1 <= min <= max.
func UniformWeightFn(min, max int) WeightFn {
	if min < 1 || max < min {
		panic(fmt.Sprintf("UniformWeightFn: require 1 <= min <= max, got min=%d, max=%d", min, max))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultWeight
		}
		return float64(min + rng.Intn(max-min+1))
	}
}

// ExponentialWeightFn draws 1 + round(Exp(rate)). Panics if rate <= 0.
func ExponentialWeightFn(rate float64) WeightFn {
	if rate <= 0 {
		panic(fmt.Sprintf("ExponentialWeightFn: rate must be > 0, got %f", rate))
	}
	return func(rng *rand.Rand) float64 {
		if rng == nil {
			return DefaultWeight
		}
		return 1 + math.Round(rng.ExpFloat64()/rate)
	}
}

// WithUniformWeight is shorthand for WithWeightFn(UniformWeightFn(min, max)).
func WithUniformWeight(min, max int) BuilderOption {
	return WithWeightFn(UniformWeightFn(min, max))
}

// WithConstantWeight is shorthand for WithWeightFn(ConstantWeightFn(w)).
func WithConstantWeight(w float64) BuilderOption {
	return WithWeightFn(ConstantWeightFn(w))
}
