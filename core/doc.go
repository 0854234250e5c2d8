// SPDX-License-Identifier: MIT

// Package core provides the thread-safe in-memory MIP model that the
// symmetry pipeline reads: variables, typed constraints and the helpers that
// view them as linear rows.
//
// A Problem P = (V, C) holds:
//
//   - Variables with objective, bounds, domain type and a nonlinear flag
//     (AddVariable + WithObj / WithBounds / WithType / WithNonlinear).
//   - Constraints of a fixed set of kinds: linear, knapsack, set
//     partitioning / packing / covering, logicor, varbound, xor, and, or,
//     bound disjunction and custom. Custom rows are accepted by the model
//     but cannot be encoded for symmetry detection.
//   - Deleted constraints stay in place so indices are stable across the
//     lifetime of a Problem.
//
// Concurrency:
//
//	Two sync.RWMutex guard the variable catalog (muVars) and the row list
//	(muConss). All readers return snapshot copies; callers never alias
//	internal slices.
//
// Numeric convention:
//
//	Values at or beyond ±Infinity (1e20) are treated as infinite. LinearForm
//	reports missing sides with these values.
//
// Example:
//
//	p := core.NewProblem(core.WithName("pigeons"))
//	x := p.MustAddVariable("x")
//	y := p.MustAddVariable("y")
//	p.MustAddConstraint(core.SetPacking("hole", x, y))
package core
