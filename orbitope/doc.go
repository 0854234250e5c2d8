// SPDX-License-Identifier: MIT

// Package orbitope recognizes orbitope structure in the generators of one
// orbit component.
//
// Per component the detector walks
//
//	UNPROCESSED → TWO_CYCLE_CHECK → {FULL_ORBITOPE | PARTIAL_SUBGROUP_SCAN | REJECTED}
//
//   - TwoCycles / Qualifying: a generator qualifies when it is an
//     involution; components with fewer than two qualifying generators are
//     rejected.
//   - Build / Detect: one row per 2-cycle of a seed generator, columns
//     grown at the left and right frontier by generators that meet every
//     row exactly once in a frontier column. Incompatible generators are
//     retried after the frontier moves.
//   - DetectSubgroups: a graph over the variables whose edges are 2-cycles,
//     with a second union-find coloring the connected pieces so that a
//     generator never joins two pieces of one color. Every color class is a
//     candidate orbitope; classes too small for an orbitope contribute a
//     strong inequality chain instead, optionally anchored to the full
//     orbit by weak inequalities.
//   - Classify / PPFraction: packing-partitioning structure of rows and
//     generators from a conflict.Graph.
//
// Detection failures are reported as errors from the sentinel set below;
// they are never fatal for the caller.
package orbitope
