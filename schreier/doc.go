// SPDX-License-Identifier: MIT

// Package schreier computes Schreier–Sims cuts for one component of a
// permutation group.
//
// The engine repeatedly picks a leader variable, takes its orbit under the
// generators that fix every earlier leader, and emits "leader >= other" for
// each other orbit member. Members that share a clique with the leader are
// fixed to zero instead of cut. The generators that move the new leader are
// then deactivated and the loop continues on the shrunk stabilizer until no
// active generator is left or no eligible orbit remains.
//
// Leader and orbit choice are configured with functional options:
//
//	res, err := schreier.Run(g, comp,
//	    schreier.WithLeaderRule(schreier.MaxConflicts),
//	    schreier.WithOrbitRule(schreier.MostConflicts),
//	    schreier.WithConflicts(cg))
//
// All positions in a Result are positions of the group (see group.Group.Var
// for the problem index).
package schreier
