// SPDX-License-Identifier: MIT

// Package builder generates classic symmetric 0/1 programs as core.Problem
// values. The instances are the usual benchmarks for symmetry handling:
// their formulation group is known in closed form, so tests, benchmarks and
// the lvsym CLI can check detection results against it.
//
// Constructors:
//
//	Cardinality(n, k)                 sum x_i <= k                        S_n
//	Pairs(n)                          n independent knapsack pairs        (Z_2)^n
//	Assignment(n)                     rows == 1, columns <= 1             S_n x S_n
//	Pigeonhole(p, h)                  pigeons >= 1, holes <= 1            S_p x S_h
//	BinPacking(weights, bins, cap)    items == 1, load <= cap * used      S_bins (more with equal items)
//	Coloring(nv, edges, colors)       vertex == 1, x_u + x_v <= y_c       S_colors x Aut(graph)
//	GroupedKnapsack(groups, size, c)  items drawn per group               Π S_size
//
// A Constructor is a closure applied by BuildProblem to a fresh Problem with
// the resolved builderConfig. Several constructors may be combined. Each of
// them then gets its own name scope ("b0.", "b1.", ...), so variable names
// never clash.
//
// Options follow the functional style:
//
//	p, err := builder.BuildProblem("assign",
//		[]builder.BuilderOption{builder.WithObjective(-2), builder.WithExcelColumnIDs()},
//		builder.Assignment(4))
//
// Option constructors panic on meaningless input. Constructors themselves
// never panic and return errors wrapping the sentinels of errors.go.
//
// Determinism: equal arguments, options, seed and constructor order give
// identical problems, including variable and constraint order.
package builder
