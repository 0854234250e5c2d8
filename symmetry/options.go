// SPDX-License-Identifier: MIT

package symmetry

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvsym/conflict"
)

// Option configures an Episode.
type Option func(*Episode)

// WithConfig replaces the default Config. Panics when cfg does not
// validate; use LoadConfig or Config.Validate for untrusted input.
func WithConfig(cfg Config) Option {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("symmetry: WithConfig: %v", err))
	}
	return func(e *Episode) { e.cfg = cfg }
}

// WithLogger sets the logger. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("symmetry: WithLogger: nil logger")
	}
	return func(e *Episode) { e.log = l }
}

// WithTracerProvider sets the source of the episode tracer. Panics on nil.
func WithTracerProvider(tp trace.TracerProvider) Option {
	if tp == nil {
		panic("symmetry: WithTracerProvider: nil provider")
	}
	return func(e *Episode) { e.tracer = tp.Tracer(tracerName) }
}

// WithMetrics records into m. Several episodes may share one Metrics.
// A nil m keeps the default.
func WithMetrics(m *Metrics) Option {
	return func(e *Episode) {
		if m != nil {
			e.metrics = m
		}
	}
}

// WithSink sends static constraints to s instead of an internal Collector.
func WithSink(s Sink) Option {
	return func(e *Episode) {
		if s != nil {
			e.sink = s
		}
	}
}

// WithOrbitalReducer registers the dynamic orbital reducer.
func WithOrbitalReducer(r PermutationReducer) Option {
	return func(e *Episode) { e.orbital = r }
}

// WithLexReducer registers the dynamic lexicographic reducer.
func WithLexReducer(r PermutationReducer) Option {
	return func(e *Episode) { e.lexred = r }
}

// WithOrbitopalReducer registers the dynamic orbitopal reducer.
func WithOrbitopalReducer(r OrbitopeReducer) Option {
	return func(e *Episode) { e.orbitopal = r }
}

// WithConflicts supplies host cliques. Without it the conflict structure
// is derived from the problem's packing and partitioning rows.
func WithConflicts(cg *conflict.Graph) Option {
	return func(e *Episode) { e.hostConflicts = cg }
}

// WithShouldStop installs the stop check polled after the oracle call.
func WithShouldStop(fn func() bool) Option {
	return func(e *Episode) { e.shouldStop = fn }
}
