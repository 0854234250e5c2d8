// SPDX-License-Identifier: MIT

// Package oracle defines the automorphism oracle consumed by the symmetry
// pipeline and ships two implementations.
//
// Contract:
//
//	Automorphisms(ctx, m, maxGenerators) returns a generating set of column
//	permutations of the colored matrix m that preserve every color, together
//	with log10 of the group order. A result with Complete == false means the
//	generator cap or the search budget was hit: generators are still valid
//	automorphisms, the order is a lower bound.
//
// Implementations:
//
//   - Search: a self-contained refinement / individualization search over
//     the bipartite variable-row graph of m. Generators are discovered
//     bottom-up along the first path of the search tree, with orbit pruning
//     through a union-find over the variables.
//   - Fixed: replays a precomputed generator list (instance files, tests).
//
// Complexity (Search):
//
//	Each search node costs one refinement, O(R·E log E) for R refinement
//	rounds over E matrix entries. The number of nodes is bounded by
//	WithMaxNodes.
package oracle
