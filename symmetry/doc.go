// SPDX-License-Identifier: MIT

// Package symmetry runs one symmetry episode on a problem: encode, call the
// automorphism oracle, build the permutation group with its components, and
// hand every component to the first technique that can handle it.
//
// Technique priority per component:
//
//  1. orbitope detection (static orbitope, or a cheaper specialization under
//     the dynamic policy),
//  2. subgroup detection with strong and weak inequalities,
//  3. Schreier–Sims cuts (may share a component with 1 or 2 when they
//     handled a different variable type),
//  4. the dynamic orbital and lexicographic reducers,
//  5. one symresack per remaining generator.
//
// Results leave the episode through a Sink (static constraints) and through
// the Reducer interfaces (dynamic propagation). An Episode is not shared
// between goroutines; every worker owns its own.
//
// Recoverable conditions (an unencodable problem, a missing oracle backend,
// an oracle failure or a stop request) end the episode with StatusSkipped
// and a reason. Only a generator that fails verification, or a failing
// sink, is returned as an error.
package symmetry
