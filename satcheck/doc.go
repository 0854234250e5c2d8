// SPDX-License-Identifier: MIT

// Package satcheck is a feasibility witness for 0/1 models: it solves a
// problem with and without the static symmetry handling of an episode and
// reports whether the handling kept a feasible (and, for integral
// objectives, an optimal) solution.
//
// Every variable must be binary, or integer with bounds inside [0, 1].
// Linear rows need integral coefficients; they become cardinality
// constraints over repeated literals, compiled with a sorting network
// (logic.CardSort) and solved with gini under assumptions. The objective
// is minimized by binary search on a cardinality bound.
package satcheck
