// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for the coefficient encoder.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Numeric policy:
//   - Two values a, b fall into the same color class iff
//     |a-b| <= eps * max(1, |a|, |b|). The host should pass its own
//     feasibility tolerance so symmetry is neither split by noise nor merged
//     across genuinely different coefficients.
//   - Values at or beyond ±core.Infinity compare equal to each other.
package matrix

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the relative tolerance used for color classes.
	DefaultEpsilon = 1e-9

	// DefaultDegreeColors adds the constraint degree of a variable to its
	// color key. Cheap, and it lets the oracle start from a finer partition.
	DefaultDegreeColors = false
)

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective encoder configuration.
type Options struct {
	eps          float64
	degreeColors bool
}

// Epsilon returns the resolved tolerance.
func (o Options) Epsilon() float64 { return o.eps }

// WithEpsilon sets the numeric tolerance for color classes.
// Panics on NaN, Inf or negative eps (programmer error).
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}
	return func(o *Options) { o.eps = eps }
}

// WithDegreeColors toggles degree-aware variable colors.
func WithDegreeColors(on bool) Option {
	return func(o *Options) { o.degreeColors = on }
}

func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, degreeColors: DefaultDegreeColors}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
