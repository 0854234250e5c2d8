// SPDX-License-Identifier: MIT

package oracle

const (
	// DefaultMaxNodes bounds the number of search-tree nodes per call.
	DefaultMaxNodes = 200000

	// DefaultCancelCheck is the node interval between context polls.
	DefaultCancelCheck = 64
)

const (
	panicMaxNodes    = "oracle: WithMaxNodes: limit must be positive"
	panicCancelCheck = "oracle: WithCancelCheck: interval must be positive"
)

// Option configures a Search.
type Option func(*Options)

// Options holds the resolved Search configuration.
type Options struct {
	maxNodes    int
	cancelCheck int
}

// WithMaxNodes sets the node budget. Panics on n <= 0.
func WithMaxNodes(n int) Option {
	if n <= 0 {
		panic(panicMaxNodes)
	}
	return func(o *Options) { o.maxNodes = n }
}

// WithCancelCheck sets how often (in nodes) the context is polled.
// Panics on n <= 0.
func WithCancelCheck(n int) Option {
	if n <= 0 {
		panic(panicCancelCheck)
	}
	return func(o *Options) { o.cancelCheck = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{maxNodes: DefaultMaxNodes, cancelCheck: DefaultCancelCheck}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
