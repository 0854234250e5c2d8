// SPDX-License-Identifier: MIT

// File: reducer.go
// Role: narrow interfaces of the dynamic reducers and a recording reducer.
package symmetry

import (
	"context"
	"slices"
	"sync"

	"github.com/katalvlaran/lvsym/orbitope"
)

// ReducerStats is reported by a dynamic reducer and passed through.
type ReducerStats struct {
	Calls      int `json:"calls" yaml:"calls"`
	Reductions int `json:"reductions" yaml:"reductions"`
	Cutoffs    int `json:"cutoffs" yaml:"cutoffs"`
}

// Add accumulates o into s.
func (s *ReducerStats) Add(o ReducerStats) {
	s.Calls += o.Calls
	s.Reductions += o.Reductions
	s.Cutoffs += o.Cutoffs
}

// Reducer is the lifecycle shared by the dynamic reducers.
type Reducer interface {
	Name() string
	// Propagate runs one propagation round and reports what it did.
	Propagate(ctx context.Context) (ReducerStats, error)
	// Reset drops all symmetry handed over so far.
	Reset()
	Statistics() ReducerStats
}

// PermutationReducer receives generators (over problem variables); the
// orbital and lexicographic reducers are of this kind.
type PermutationReducer interface {
	Reducer
	AddPermutations(component int, perms [][]int) error
}

// OrbitopeReducer receives orbitope matrices (of problem variables).
type OrbitopeReducer interface {
	Reducer
	AddOrbitope(component int, m [][]int, kind orbitope.Kind) error
}

// Recorder is a reducer that only records what it is given. It satisfies
// both PermutationReducer and OrbitopeReducer and never reduces anything.
type Recorder struct {
	name string

	mu        sync.Mutex
	perms     map[int][][]int
	orbitopes map[int][][]int
	stats     ReducerStats
}

// NewRecorder returns an empty Recorder called name.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name, perms: make(map[int][][]int), orbitopes: make(map[int][][]int)}
}

// Name implements Reducer.
func (r *Recorder) Name() string { return r.name }

// AddPermutations implements PermutationReducer.
func (r *Recorder) AddPermutations(component int, perms [][]int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.perms[component] = append(r.perms[component], perms...)
	return nil
}

// AddOrbitope implements OrbitopeReducer.
func (r *Recorder) AddOrbitope(component int, m [][]int, _ orbitope.Kind) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orbitopes[component] = m
	return nil
}

// Propagate implements Reducer. It checks ctx and counts the call.
func (r *Recorder) Propagate(ctx context.Context) (ReducerStats, error) {
	if err := ctx.Err(); err != nil {
		return ReducerStats{}, err
	}
	r.mu.Lock()
	r.stats.Calls++
	r.mu.Unlock()
	return ReducerStats{Calls: 1}, nil
}

// Reset implements Reducer.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.perms)
	clear(r.orbitopes)
	r.stats = ReducerStats{}
}

// Statistics implements Reducer.
func (r *Recorder) Statistics() ReducerStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Components returns the components that handed over permutations or an
// orbitope.
func (r *Recorder) Components() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for c := range r.perms {
		out = append(out, c)
	}
	for c := range r.orbitopes {
		if _, dup := r.perms[c]; !dup {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return out
}

// Permutations returns what component c handed over.
func (r *Recorder) Permutations(c int) [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.perms[c]
}

// Orbitope returns the matrix component c handed over, or nil.
func (r *Recorder) Orbitope(c int) [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.orbitopes[c]
}
