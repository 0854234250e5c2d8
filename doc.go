// SPDX-License-Identifier: MIT

// Package lvsym detects and exploits symmetry in mixed-integer programs.
//
// A symmetry episode takes a host problem, computes generators of its
// formulation group and turns them into symmetry handling: fixings,
// symmetry-breaking inequalities, orbitopes and symresacks, or
// permutations handed to dynamic reducers.
//
// Packages, bottom-up:
//
//	core/       Problem, Variable and Constraint as owned by the host
//	dsu/        union-find with size tracking
//	matrix/     colored constraint matrix and automorphism verification
//	oracle/     automorphism search (refinement/individualization) and fixed generators
//	group/      generators, permutation components, blocked components, orbits
//	conflict/   binary conflict graph used by Schreier-Sims leader selection
//	orbitope/   full and subgroup orbitope detection, packing/partitioning rows
//	schreier/   Schreier-Sims table leaders, orbit fixings and leader cuts
//	symmetry/   the episode: configuration, techniques, sinks, metrics, tracing
//	satcheck/   0/1 solver proving that the handling keeps an optimal solution
//	builder/    generators of symmetric benchmark families
//	cmd/lvsym/  CLI: detect, check and generate
//
// Quick start:
//
//	p, _ := builder.BuildProblem("assign", nil, builder.Assignment(4))
//	sink := symmetry.NewCollector()
//	e, _ := symmetry.NewEpisode(p, oracle.New(), symmetry.WithSink(sink))
//	st, err := e.Compute(ctx)
//
// Every package reports failures through sentinel errors wrapped with the
// method name; compare with errors.Is.
package lvsym
