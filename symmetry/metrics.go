// SPDX-License-Identifier: MIT

package symmetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the episode counters. They are registered on the Registerer
// given to NewMetrics; a nil Registerer leaves them unregistered.
type Metrics struct {
	Episodes   *prometheus.CounterVec // by status
	Generators prometheus.Counter
	Components prometheus.Counter
	Blocked    *prometheus.CounterVec // by technique
	Artifacts  *prometheus.CounterVec // by kind
}

// NewMetrics creates the counters on reg. Like promauto, it panics when
// the counters are already registered on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Episodes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvsym",
			Subsystem: "symmetry",
			Name:      "episodes_total",
			Help:      "Symmetry episodes by final status",
		}, []string{"status"}),
		Generators: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lvsym",
			Subsystem: "symmetry",
			Name:      "generators_total",
			Help:      "Generators returned by the oracle",
		}),
		Components: f.NewCounter(prometheus.CounterOpts{
			Namespace: "lvsym",
			Subsystem: "symmetry",
			Name:      "components_total",
			Help:      "Components of computed symmetry groups",
		}),
		Blocked: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvsym",
			Subsystem: "symmetry",
			Name:      "components_blocked_total",
			Help:      "Components claimed, by technique",
		}, []string{"technique"}),
		Artifacts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lvsym",
			Subsystem: "symmetry",
			Name:      "artifacts_total",
			Help:      "Static symmetry handling constraints emitted, by kind",
		}, []string{"kind"}),
	}
}
