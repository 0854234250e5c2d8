// SPDX-License-Identifier: MIT

// Package group stores the generators returned by an automorphism oracle
// and derives everything the symmetry handlers need from them:
//
//   - moved-variable statistics (total and per domain type),
//   - the orbit-component partition: union-find over the pairs (i, perm[i])
//     with perm[i] != i, merged across all generators, then grouped stably
//     so every component owns a contiguous range of generators and of
//     variables,
//   - optional compression onto the moved variables (all or nothing),
//   - orbits of arbitrary generator subsets,
//   - per-component bookkeeping of which techniques claimed it
//     (TechniqueSet) and which variable types they handled.
//
// A variable moved by no generator belongs to no component; VarComponent
// reports NoComponent for it.
//
// A Group is owned by a single episode and is not safe for concurrent
// mutation.
package group
