// SPDX-License-Identifier: MIT

// File: episode.go
// Role: the episode object owning one symmetry computation.
package symmetry

import (
	"context"
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lvsym/conflict"
	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/group"
	"github.com/katalvlaran/lvsym/matrix"
	"github.com/katalvlaran/lvsym/oracle"
)

const tracerName = "github.com/katalvlaran/lvsym/symmetry"

// Statistics summarizes an episode.
type Statistics struct {
	EpisodeID string `json:"episode_id" yaml:"episode_id"`
	Status    Status `json:"-" yaml:"-"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Oracle    string `json:"oracle" yaml:"oracle"`

	NVars       int `json:"nvars" yaml:"nvars"`
	NRows       int `json:"nrows" yaml:"nrows"`
	OracleNodes int `json:"oracle_nodes" yaml:"oracle_nodes"`

	NGenerators int            `json:"ngenerators" yaml:"ngenerators"`
	Log10Order  float64        `json:"log10_order" yaml:"log10_order"`
	Complete    bool           `json:"complete" yaml:"complete"`
	Compressed  bool           `json:"compressed" yaml:"compressed"`
	NMoved      int            `json:"nmoved" yaml:"nmoved"`
	MovedByType map[string]int `json:"moved_by_type,omitempty" yaml:"moved_by_type,omitempty"`

	NComponents int            `json:"ncomponents" yaml:"ncomponents"`
	NBlocked    int            `json:"nblocked" yaml:"nblocked"`
	ByTechnique map[string]int `json:"by_technique,omitempty" yaml:"by_technique,omitempty"`

	Artifacts     map[string]int `json:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	NInequalities int            `json:"ninequalities" yaml:"ninequalities"`

	Reducers map[string]ReducerStats `json:"reducers,omitempty" yaml:"reducers,omitempty"`
}

func (s Statistics) clone() Statistics {
	s.MovedByType = maps.Clone(s.MovedByType)
	s.ByTechnique = maps.Clone(s.ByTechnique)
	s.Artifacts = maps.Clone(s.Artifacts)
	s.Reducers = maps.Clone(s.Reducers)
	return s
}

// Episode owns every buffer of one symmetry computation on one problem.
// Methods serialize on an internal mutex; Compute holds it for the whole
// pipeline.
type Episode struct {
	problem *core.Problem
	oracle  oracle.Oracle

	cfg           Config
	log           logrus.FieldLogger
	tracer        trace.Tracer
	metrics       *Metrics
	sink          Sink
	orbital       PermutationReducer
	lexred        PermutationReducer
	orbitopal     OrbitopeReducer
	hostConflicts *conflict.Graph
	shouldStop    func() bool

	mu       sync.Mutex
	id       uuid.UUID
	status   Status
	err      error
	matrix   *matrix.ColoredMatrix
	group    *group.Group
	cg       *conflict.Graph
	used     []Reducer
	nemitted int
	stats    Statistics

	// constrained holds, per component, the group positions already
	// restricted by an orbitope, chain or inequality.
	constrained map[int][]int
}

// NewEpisode prepares an episode for p using o as automorphism oracle.
//
// Errors: ErrNilProblem, ErrNilOracle.
func NewEpisode(p *core.Problem, o oracle.Oracle, opts ...Option) (*Episode, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	if o == nil {
		return nil, ErrNilOracle
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)
	e := &Episode{
		problem: p,
		oracle:  o,
		cfg:     DefaultConfig(),
		log:     discard,
		tracer:  otel.GetTracerProvider().Tracer(tracerName),
		metrics: NewMetrics(nil),
		sink:    NewCollector(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.resetState()

	return e, nil
}

// resetState clears everything Compute produces. Caller holds mu or owns e.
func (e *Episode) resetState() {
	e.id = uuid.New()
	e.status, e.err = StatusNotComputed, nil
	e.matrix, e.group, e.cg = nil, nil, nil
	e.used = nil
	e.nemitted = 0
	e.constrained = nil
	e.stats = Statistics{EpisodeID: e.id.String(), Oracle: e.oracle.Name()}
}

// ID identifies the current computation; Reset assigns a new one.
func (e *Episode) ID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.id.String()
}

// Config returns the effective configuration.
func (e *Episode) Config() Config { return e.cfg }

// Sink returns the sink receiving static constraints.
func (e *Episode) Sink() Sink { return e.sink }

// Status returns the current status and, for StatusSkipped, the reason.
func (e *Episode) Status() (Status, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status, e.stats.Reason
}

// Group returns the computed group: variable list, generators, group order
// estimate and components. Nil unless Compute returned StatusComputed.
func (e *Episode) Group() *group.Group {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.group
}

// Matrix returns the colored matrix of the last Compute, or nil.
func (e *Episode) Matrix() *matrix.ColoredMatrix {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matrix
}

// Compute runs the pipeline once. Later calls return the first outcome
// until Reset.
//
// Recoverable problems yield StatusSkipped with a nil error. The error is
// non-nil only with StatusFailed: a generator failing verification
// (ErrInvalidSymmetry) or a sink / reducer refusing a constraint.
func (e *Episode) Compute(ctx context.Context) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.status != StatusNotComputed {
		return e.status, e.err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, span := e.tracer.Start(ctx, "symmetry.Compute",
		trace.WithAttributes(attribute.String("episode", e.id.String())))
	defer span.End()

	log := e.log.WithField("episode", e.id.String())
	st, err := e.compute(ctx, log)
	if err != nil {
		st = StatusFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.WithError(err).Error("symmetry computation failed")
	} else {
		span.SetStatus(codes.Ok, st.String())
	}
	e.status, e.err = st, err
	e.stats.Status = st
	e.metrics.Episodes.WithLabelValues(st.String()).Inc()

	return st, err
}

func (e *Episode) skip(log logrus.FieldLogger, format string, args ...any) (Status, error) {
	e.stats.Reason = fmt.Sprintf(format, args...)
	log.WithField("reason", e.stats.Reason).Info("symmetry handling skipped")
	return StatusSkipped, nil
}

func (e *Episode) compute(ctx context.Context, log logrus.FieldLogger) (Status, error) {
	e.stats.NVars = e.problem.NVars()

	// encode
	_, span := e.tracer.Start(ctx, "symmetry.Encode")
	m, err := matrix.Encode(e.problem, e.cfg.EncoderOptions()...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return e.skip(log, "encode: %v", err)
	}
	span.SetAttributes(attribute.Int("rows", len(m.Rows)), attribute.Int("var_colors", m.NVarColors))
	span.End()
	e.matrix = m
	e.stats.NRows = len(m.Rows)

	if m.Trivial() {
		log.Debug("variable colors admit no symmetry")
		return StatusTrivial, nil
	}

	// oracle
	if !e.oracle.Available() {
		return e.skip(log, "oracle %s unavailable", e.oracle.Name())
	}
	octx, span := e.tracer.Start(ctx, "symmetry.Oracle",
		trace.WithAttributes(attribute.String("oracle", e.oracle.Name())))
	res, err := e.oracle.Automorphisms(octx, m, e.cfg.Oracle.MaxGenerators)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.End()
		return e.skip(log, "oracle %s: %v", e.oracle.Name(), err)
	}
	span.SetAttributes(attribute.Int("generators", len(res.Generators)), attribute.Int("nodes", res.Nodes))
	span.End()
	e.stats.OracleNodes = res.Nodes

	if e.shouldStop != nil && e.shouldStop() {
		return e.skip(log, "stopped after oracle call")
	}

	if e.cfg.Group.Verify {
		for i, perm := range res.Generators {
			if !m.IsAutomorphism(perm) {
				return StatusFailed, errors.Wrapf(ErrInvalidSymmetry, "generator %d from oracle %s", i, e.oracle.Name())
			}
		}
	}

	// group
	vars := e.problem.Vars()
	types := make([]core.VarType, len(vars))
	for i, v := range vars {
		types[i] = v.Type
	}
	g, err := group.New(types, res.Generators, res.Log10Order, res.Complete)
	if err != nil {
		return StatusFailed, errors.Wrapf(ErrInvalidSymmetry, "oracle %s: %v", e.oracle.Name(), err)
	}
	if g.NPerms() == 0 {
		log.Debug("oracle found no generators")
		return StatusTrivial, nil
	}
	if e.cfg.Group.Compress && g.Compress(e.cfg.Group.CompressThreshold) {
		log.WithField("nmoved", g.NMoved()).Debug("group compressed")
	}
	e.group = g
	e.recordGroup(g)

	log.WithFields(logrus.Fields{
		"generators":  g.NPerms(),
		"components":  g.NComponents(),
		"log10_order": g.Log10Order(),
	}).Info("symmetry group computed")

	// techniques
	e.cg = e.hostConflicts
	if e.cg == nil {
		e.cg = conflict.FromProblem(e.problem)
	}
	if err := e.handle(ctx, log); err != nil {
		return StatusFailed, err
	}
	e.stats.NBlocked = g.NBlocked()

	return StatusComputed, nil
}

func (e *Episode) recordGroup(g *group.Group) {
	e.stats.NGenerators = g.NPerms()
	e.stats.Log10Order = g.Log10Order()
	e.stats.Complete = g.Complete()
	e.stats.Compressed = g.Compressed()
	e.stats.NMoved = g.NMoved()
	e.stats.NComponents = g.NComponents()
	e.stats.MovedByType = make(map[string]int)
	for t := core.VarType(0); int(t) < core.NumVarTypes; t++ {
		if n := g.MovedByType(t); n > 0 {
			e.stats.MovedByType[t.String()] = n
		}
	}
	e.metrics.Generators.Add(float64(g.NPerms()))
	e.metrics.Components.Add(float64(g.NComponents()))
}

// Propagate runs every reducer that received symmetry in this episode and
// returns the summed statistics of this round.
func (e *Episode) Propagate(ctx context.Context) (ReducerStats, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var total ReducerStats
	if e.status != StatusComputed {
		return total, nil
	}
	for _, r := range e.used {
		st, err := r.Propagate(ctx)
		if err != nil {
			return total, errors.Wrapf(err, "propagate %s", r.Name())
		}
		total.Add(st)
	}
	return total, nil
}

// Reset discards the computed symmetry and resets every reducer that
// received some. The next Compute starts from scratch.
func (e *Episode) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range e.used {
		r.Reset()
	}
	e.resetState()
}

// Statistics returns a snapshot, including the pass-through counters of
// the registered reducers.
func (e *Episode) Statistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.stats.clone()
	for _, r := range e.reducers() {
		if s.Reducers == nil {
			s.Reducers = make(map[string]ReducerStats)
		}
		s.Reducers[r.Name()] = r.Statistics()
	}
	return s
}

// reducers lists the registered reducers.
func (e *Episode) reducers() []Reducer {
	var out []Reducer
	if e.orbitopal != nil {
		out = append(out, e.orbitopal)
	}
	if e.orbital != nil {
		out = append(out, e.orbital)
	}
	if e.lexred != nil {
		out = append(out, e.lexred)
	}
	return out
}

// use records r as having received symmetry.
func (e *Episode) use(r Reducer) {
	for _, u := range e.used {
		if u == r {
			return
		}
	}
	e.used = append(e.used, r)
}
