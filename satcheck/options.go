// SPDX-License-Identifier: MIT

package satcheck

import "fmt"

// Defaults.
const (
	// DefaultMaxWeight bounds the literal multiset of one row or of the
	// objective.
	DefaultMaxWeight = 4096
	// DefaultOptimize minimizes an integral objective.
	DefaultOptimize = true
)

// Options holds the resolved configuration.
type Options struct {
	maxWeight int
	optimize  bool
}

// Option configures Solve and Check.
type Option func(*Options)

// WithMaxWeight sets the largest literal multiset per row. Panics if n <= 0.
func WithMaxWeight(n int) Option {
	if n <= 0 {
		panic(fmt.Sprintf("satcheck: WithMaxWeight(%d): must be positive", n))
	}
	return func(o *Options) { o.maxWeight = n }
}

// WithOptimize toggles objective minimization.
func WithOptimize(on bool) Option {
	return func(o *Options) { o.optimize = on }
}

func gatherOptions(opts ...Option) Options {
	o := Options{maxWeight: DefaultMaxWeight, optimize: DefaultOptimize}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
