// SPDX-License-Identifier: MIT

// File: techniques.go
// Role: per-component technique selection in priority order.
package symmetry

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/group"
	"github.com/katalvlaran/lvsym/orbitope"
	"github.com/katalvlaran/lvsym/schreier"
)

type technique struct {
	kind    group.Technique
	enabled bool
	try     func(c int, log logrus.FieldLogger) (bool, error)
}

// handle walks the techniques in priority order; each one visits every
// component it may claim.
func (e *Episode) handle(ctx context.Context, log logrus.FieldLogger) error {
	dynamic := e.cfg.Policy == PolicyDynamic &&
		((e.cfg.Techniques.OrbitalReduction && e.orbital != nil) ||
			(e.cfg.Techniques.LexReduction && e.lexred != nil))

	steps := []technique{
		{group.Orbitope, e.cfg.Techniques.Orbitopes, e.tryOrbitope},
		{group.Subgroup, e.cfg.Techniques.Subgroups, e.trySubgroup},
		{group.SST, e.cfg.Techniques.SST, e.trySST},
		{group.OrbitalReduction, dynamic, e.tryDynamic},
		{group.Symresack, e.cfg.Techniques.Symresacks, e.trySymresack},
	}

	g := e.group
	for _, step := range steps {
		if !step.enabled {
			continue
		}
		_, span := e.tracer.Start(ctx, "symmetry."+step.kind.String())
		claimed := 0
		for c := 0; c < g.NComponents(); c++ {
			if g.IsBlocked(c) && step.kind != group.SST {
				continue
			}
			clog := log.WithFields(logrus.Fields{"component": c, "technique": step.kind.String()})
			ok, err := step.try(c, clog)
			if err != nil {
				span.RecordError(err)
				span.End()
				return err
			}
			if ok {
				claimed++
				clog.Debug("component handled")
			}
		}
		span.SetAttributes(attribute.Int("claimed", claimed))
		span.End()
	}

	return nil
}

// claim blocks c for t and updates the counters.
func (e *Episode) claim(c int, t group.Technique) {
	_ = e.group.Block(c, t)
	if e.stats.ByTechnique == nil {
		e.stats.ByTechnique = make(map[string]int)
	}
	e.stats.ByTechnique[t.String()]++
	e.metrics.Blocked.WithLabelValues(t.String()).Inc()
}

// emit hands a to the sink.
func (e *Episode) emit(a Artifact) error {
	a.Name = fmt.Sprintf("sym_%s_c%d_%d", a.Technique, a.Component, e.nemitted)
	e.nemitted++
	if err := e.sink.AddConstraint(a); err != nil {
		return errors.Wrapf(err, "sink rejected %s", a.Name)
	}
	if e.stats.Artifacts == nil {
		e.stats.Artifacts = make(map[string]int)
	}
	e.stats.Artifacts[a.Kind.String()]++
	e.stats.NInequalities += a.NInequalities()
	e.metrics.Artifacts.WithLabelValues(a.Kind.String()).Inc()
	return nil
}

// constrain records positions of c restricted by a handling artifact.
func (e *Episode) constrain(c int, positions ...int) {
	if e.constrained == nil {
		e.constrained = make(map[int][]int)
	}
	e.constrained[c] = append(e.constrained[c], positions...)
}

func (e *Episode) constrainMatrix(c int, m [][]int) {
	for _, row := range m {
		e.constrain(c, row...)
	}
}

func (e *Episode) isBinary(i int) bool { return e.group.Type(i) == core.Binary }

func (e *Episode) vars(positions []int) []int {
	out := make([]int, len(positions))
	for k, i := range positions {
		out[k] = e.group.Var(i)
	}
	return out
}

func (e *Episode) matrixVars(m [][]int) [][]int {
	out := make([][]int, len(m))
	for r, row := range m {
		out[r] = e.vars(row)
	}
	return out
}

// problemPerm lifts a generator to all problem variables.
func (e *Episode) problemPerm(perm []int) []int {
	out := make([]int, e.problem.NVars())
	for i := range out {
		out[i] = i
	}
	for i, j := range perm {
		out[e.group.Var(i)] = e.group.Var(j)
	}
	return out
}

func (e *Episode) ppComponent(gens [][]int) bool {
	return orbitope.PPFraction(gens, e.cg, e.group.Var) >= e.cfg.Orbitope.PPThreshold
}

// emitOrbitope emits the binary part of o, as a chain when it has a single
// row. Reports whether anything was emitted.
func (e *Episode) emitOrbitope(c int, t group.Technique, o *orbitope.Orbitope) (bool, error) {
	bin := o.BinaryPart()
	if bin == nil {
		return false, nil
	}
	e.constrainMatrix(c, bin.Matrix)
	m := e.matrixVars(bin.Matrix)
	if bin.NRows() == 1 {
		return true, e.emit(Artifact{Kind: ArtifactChain, Component: c, Technique: t, Vars: m[0]})
	}
	orbitope.Classify(bin, e.cg, e.group.Var)
	return true, e.emit(Artifact{Kind: ArtifactOrbitope, Component: c, Technique: t, Matrix: m, OrbitopeKind: bin.Kind})
}

// tryOrbitope: the whole component is one orbitope.
func (e *Episode) tryOrbitope(c int, log logrus.FieldLogger) (bool, error) {
	gens := e.group.ComponentGenerators(c)
	o, err := orbitope.Detect(gens, e.isBinary)
	if err != nil {
		log.WithError(err).Debug("no full orbitope")
		return false, nil
	}
	bin := o.BinaryPart()
	if bin == nil {
		log.Debug("orbitope has no binary row")
		return false, nil
	}

	if e.cfg.Policy == PolicyDynamic && e.orbitopal != nil && bin.NRows() > 1 && bin.NCols() > 2 {
		kind := orbitope.Classify(bin, e.cg, e.group.Var)
		if kind == orbitope.Full || !e.ppComponent(gens) {
			if err := e.orbitopal.AddOrbitope(c, e.matrixVars(bin.Matrix), kind); err != nil {
				return false, errors.Wrapf(err, "orbitopal reducer, component %d", c)
			}
			e.use(e.orbitopal)
			e.constrainMatrix(c, bin.Matrix)
			e.group.MarkHandled(c, core.Binary)
			e.claim(c, group.Orbitope)
			return true, nil
		}
	}

	if _, err := e.emitOrbitope(c, group.Orbitope, bin); err != nil {
		return false, err
	}
	e.group.MarkHandled(c, core.Binary)
	e.claim(c, group.Orbitope)
	return true, nil
}

// trySubgroup: orbitopes on color classes plus strong and weak
// inequalities.
func (e *Episode) trySubgroup(c int, log logrus.FieldLogger) (bool, error) {
	g := e.group
	plan, err := orbitope.DetectSubgroups(g.NVars(), g.ComponentGenerators(c), e.isBinary, e.cfg.SubgroupOptions())
	if err != nil {
		log.WithError(err).Debug("no subgroup structure")
		return false, nil
	}

	emitted := false
	for _, o := range plan.Orbitopes {
		ok, err := e.emitOrbitope(c, group.Subgroup, o)
		if err != nil {
			return false, err
		}
		if ok {
			emitted = true
			g.MarkHandled(c, core.Binary)
		}
	}
	if len(plan.Chain) > 1 {
		e.constrain(c, plan.Chain...)
		if err := e.emit(Artifact{Kind: ArtifactChain, Component: c, Technique: group.Subgroup, Vars: e.vars(plan.Chain)}); err != nil {
			return false, err
		}
		emitted = true
		for _, i := range plan.Chain {
			g.MarkHandled(c, g.Type(i))
		}
	}
	if plan.WeakLeader >= 0 {
		e.constrain(c, plan.WeakLeader)
		e.constrain(c, plan.WeakOthers...)
		leader := g.Var(plan.WeakLeader)
		for _, i := range plan.WeakOthers {
			if err := e.emit(Artifact{Kind: ArtifactInequality, Component: c, Technique: group.Subgroup, Vars: []int{leader, g.Var(i)}}); err != nil {
				return false, err
			}
		}
	}
	if !emitted {
		return false, nil
	}

	log.WithFields(logrus.Fields{
		"orbitopes": len(plan.Orbitopes),
		"chain":     len(plan.Chain),
		"weak":      len(plan.WeakOthers),
	}).Debug("subgroup handling")
	e.claim(c, group.Subgroup)
	return true, nil
}

// trySST: Schreier–Sims cuts. A component claimed earlier takes part only
// when its leader type was left unhandled, and then only through the
// generators fixing every position the earlier handling restricted.
func (e *Episode) trySST(c int, log logrus.FieldLogger) (bool, error) {
	g := e.group
	lt := e.cfg.leaderType()
	if g.IsBlocked(c) && g.Handled(c, lt) {
		return false, nil
	}
	opts := e.cfg.SchreierOptions(e.cg)
	if g.IsBlocked(c) {
		opts = append(opts, schreier.WithStabilizerOf(e.constrained[c]))
	}
	if !schreier.Eligible(g, c, opts...) {
		return false, nil
	}
	res, err := schreier.Run(g, c, opts...)
	if err != nil {
		log.WithError(err).Debug("schreier-sims not applicable")
		return false, nil
	}

	emitted := false
	for _, s := range res.Steps {
		leader := g.Var(s.Leader)
		if e.cfg.SST.AddCuts {
			for _, o := range s.Others {
				if err := e.emit(Artifact{Kind: ArtifactInequality, Component: c, Technique: group.SST, Vars: []int{leader, g.Var(o)}}); err != nil {
					return false, err
				}
				emitted = true
			}
		}
		for _, f := range s.Fixed {
			if err := e.emit(Artifact{Kind: ArtifactFixing, Component: c, Technique: group.SST, Vars: []int{g.Var(f)}}); err != nil {
				return false, err
			}
			emitted = true
		}
	}
	if !emitted {
		return false, nil
	}

	log.WithFields(logrus.Fields{"leaders": len(res.Steps), "cuts": res.NCuts(), "fixed": res.NFixed()}).Debug("schreier-sims cuts")
	g.MarkHandled(c, lt)
	e.claim(c, group.SST)
	return true, nil
}

// tryDynamic hands the component to the orbital and lexicographic
// reducers. Packing-partitioning components are left to the symresacks.
func (e *Episode) tryDynamic(c int, log logrus.FieldLogger) (bool, error) {
	gens := e.group.ComponentGenerators(c)
	if e.ppComponent(gens) {
		log.Debug("packing-partitioning component left to symresacks")
		return false, nil
	}
	perms := make([][]int, len(gens))
	for k, p := range gens {
		perms[k] = e.problemPerm(p)
	}

	handled := false
	if e.cfg.Techniques.OrbitalReduction && e.orbital != nil {
		if err := e.orbital.AddPermutations(c, perms); err != nil {
			return false, errors.Wrapf(err, "orbital reducer, component %d", c)
		}
		e.use(e.orbital)
		e.claim(c, group.OrbitalReduction)
		handled = true
	}
	if e.cfg.Techniques.LexReduction && e.lexred != nil {
		if err := e.lexred.AddPermutations(c, perms); err != nil {
			return false, errors.Wrapf(err, "lexicographic reducer, component %d", c)
		}
		e.use(e.lexred)
		e.claim(c, group.LexReduction)
		handled = true
	}
	return handled, nil
}

// trySymresack emits one constraint per generator; a single transposition
// (a b) becomes x_a >= x_b.
func (e *Episode) trySymresack(c int, log logrus.FieldLogger) (bool, error) {
	g := e.group
	gens := g.ComponentGenerators(c)
	pp := e.ppComponent(gens)

	for _, p := range gens {
		perm := e.problemPerm(p)
		if a, b, ok := transposition(perm); ok {
			if err := e.emit(Artifact{Kind: ArtifactInequality, Component: c, Technique: group.Symresack, Vars: []int{a, b}}); err != nil {
				return false, err
			}
			continue
		}
		a := Artifact{Kind: ArtifactSymresack, Component: c, Technique: group.Symresack, Perm: perm}
		a.PP = pp && orbitope.PPInvolution(p, e.cg, g.Var)
		if err := e.emit(a); err != nil {
			return false, err
		}
	}

	log.WithField("generators", len(gens)).Debug("symresacks")
	e.claim(c, group.Symresack)
	return true, nil
}

// transposition returns a < b when perm swaps exactly a and b.
func transposition(perm []int) (int, int, bool) {
	a, b := -1, -1
	for i, j := range perm {
		if i == j {
			continue
		}
		switch {
		case a < 0:
			a = i
		case b < 0:
			b = i
		default:
			return 0, 0, false
		}
	}
	if a < 0 || b < 0 || perm[a] != b {
		return 0, 0, false
	}
	return a, b, true
}
