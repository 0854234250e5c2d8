// SPDX-License-Identifier: MIT

// File: report.go
// Role: per-instance reports and their text / YAML rendering.
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsym/symmetry"
)

type report struct {
	File      string              `yaml:"file"`
	Problem   string              `yaml:"problem,omitempty"`
	Status    string              `yaml:"status"`
	Stats     symmetry.Statistics `yaml:"statistics"`
	Artifacts []string            `yaml:"artifacts,omitempty"`
	Check     string              `yaml:"check,omitempty"`
	Valid     *bool               `yaml:"valid,omitempty"`
}

func newReport(file, problem string, st symmetry.Status, stats symmetry.Statistics, arts []symmetry.Artifact) *report {
	r := &report{File: file, Problem: problem, Status: st.String(), Stats: stats}
	for _, a := range arts {
		r.Artifacts = append(r.Artifacts, a.String())
	}
	return r
}

func writeReports(w io.Writer, format string, reports []*report) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	}

	for _, r := range reports {
		s := r.Stats
		fmt.Fprintf(w, "%s: %s", r.File, r.Status)
		if s.Reason != "" {
			fmt.Fprintf(w, " (%s)", s.Reason)
		}
		fmt.Fprintln(w)
		if r.Status == symmetry.StatusComputed.String() {
			fmt.Fprintf(w, "  generators %d, log10|G| %.3f, components %d, blocked %d\n",
				s.NGenerators, s.Log10Order, s.NComponents, s.NBlocked)
			if len(s.ByTechnique) > 0 {
				fmt.Fprintf(w, "  techniques %s\n", counts(s.ByTechnique))
			}
		}
		for _, a := range r.Artifacts {
			fmt.Fprintf(w, "  %s\n", a)
		}
		if r.Check != "" {
			fmt.Fprintf(w, "  check: %s\n", r.Check)
		}
	}
	return nil
}

// counts renders a map as "k1=v1 k2=v2" in key order.
func counts(m map[string]int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}

// writeMetrics prints every non-zero counter of g, one per line.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			v := counterValue(m)
			if v == 0 {
				continue
			}
			fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labels(m), v)
		}
	}
	return nil
}

func counterValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	return 0
}

func labels(m *dto.Metric) string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, len(pairs))
	for i, l := range pairs {
		parts[i] = fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
