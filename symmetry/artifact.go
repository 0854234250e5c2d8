// SPDX-License-Identifier: MIT

// File: artifact.go
// Role: static symmetry handling passed to the host, and an in-memory sink.
package symmetry

import (
	"fmt"
	"strings"
	"sync"

	"github.com/katalvlaran/lvsym/group"
	"github.com/katalvlaran/lvsym/orbitope"
)

// ArtifactKind is the shape of a static symmetry handling constraint.
type ArtifactKind int

const (
	// ArtifactOrbitope: the columns of Matrix are lexicographically
	// non-increasing.
	ArtifactOrbitope ArtifactKind = iota
	// ArtifactChain: Vars[0] >= Vars[1] >= ... >= Vars[k-1].
	ArtifactChain
	// ArtifactInequality: Vars[0] >= Vars[1].
	ArtifactInequality
	// ArtifactFixing: Vars[0] == 0.
	ArtifactFixing
	// ArtifactSymresack: x >=lex (x[Perm[0]], x[Perm[1]], ...).
	ArtifactSymresack

	numArtifactKinds
)

var artifactKindNames = [numArtifactKinds]string{"orbitope", "chain", "inequality", "fixing", "symresack"}

// String implements fmt.Stringer.
func (k ArtifactKind) String() string {
	if k < 0 || k >= numArtifactKinds {
		return "unknown"
	}
	return artifactKindNames[k]
}

// Artifact is one static constraint. Variable indices refer to the
// problem.
type Artifact struct {
	Kind      ArtifactKind
	Name      string
	Component int
	Technique group.Technique

	// Matrix is set for ArtifactOrbitope, with its row structure in
	// OrbitopeKind.
	Matrix       [][]int
	OrbitopeKind orbitope.Kind

	// Vars is set for chains, inequalities and fixings.
	Vars []int

	// Perm is set for ArtifactSymresack; it spans all problem variables.
	// PP marks a packing-partitioning generator.
	Perm []int
	PP   bool
}

// NInequalities returns the number of linear inequalities the artifact
// stands for (0 for orbitopes and symresacks).
func (a Artifact) NInequalities() int {
	switch a.Kind {
	case ArtifactChain:
		if len(a.Vars) > 1 {
			return len(a.Vars) - 1
		}
		return 0
	case ArtifactInequality:
		return 1
	default:
		return 0
	}
}

// String renders a one-line description.
func (a Artifact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s [c%d %s]", a.Kind, a.Name, a.Component, a.Technique)
	switch a.Kind {
	case ArtifactOrbitope:
		fmt.Fprintf(&b, " %s %dx%d %v", a.OrbitopeKind, len(a.Matrix), len(a.Matrix[0]), a.Matrix)
	case ArtifactSymresack:
		fmt.Fprintf(&b, " pp=%t %v", a.PP, a.Perm)
	default:
		fmt.Fprintf(&b, " %v", a.Vars)
	}
	return b.String()
}

// Sink receives the static constraints of an episode.
type Sink interface {
	AddConstraint(a Artifact) error
}

// Collector is a Sink that keeps everything in memory. Safe for
// concurrent use.
type Collector struct {
	mu        sync.Mutex
	artifacts []Artifact
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector { return &Collector{} }

// AddConstraint implements Sink.
func (c *Collector) AddConstraint(a Artifact) error {
	c.mu.Lock()
	c.artifacts = append(c.artifacts, a)
	c.mu.Unlock()
	return nil
}

// Artifacts returns a copy of the collected artifacts in arrival order.
func (c *Collector) Artifacts() []Artifact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Artifact(nil), c.artifacts...)
}

// Count returns the number of artifacts of kind k.
func (c *Collector) Count(k ArtifactKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, a := range c.artifacts {
		if a.Kind == k {
			n++
		}
	}
	return n
}

// Reset drops everything collected so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.artifacts = nil
	c.mu.Unlock()
}
