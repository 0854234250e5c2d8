// SPDX-License-Identifier: MIT
// File: constraints.go
// Role: Constraint constructors and the linear view shared by the encoder,
// the conflict structure and the feasibility checker.
package core

// Linear builds lhs <= sum coefs[i]*x[vars[i]] <= rhs.
func Linear(name string, vars []int, coefs []float64, lhs, rhs float64) Constraint {
	return Constraint{Name: name, Kind: KindLinear, Vars: vars, Coefs: coefs, LHS: lhs, RHS: rhs}
}

// Knapsack builds sum weights[i]*x[vars[i]] <= capacity.
func Knapsack(name string, vars []int, weights []float64, capacity float64) Constraint {
	return Constraint{Name: name, Kind: KindKnapsack, Vars: vars, Coefs: weights, LHS: -Infinity, RHS: capacity}
}

// SetPartitioning builds sum x[vars[i]] == 1.
func SetPartitioning(name string, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindSetPartitioning, Vars: vars, LHS: 1, RHS: 1}
}

// SetPacking builds sum x[vars[i]] <= 1.
func SetPacking(name string, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindSetPacking, Vars: vars, LHS: -Infinity, RHS: 1}
}

// SetCovering builds sum x[vars[i]] >= 1.
func SetCovering(name string, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindSetCovering, Vars: vars, LHS: 1, RHS: Infinity}
}

// Logicor builds the clause OR x[vars[i]].
func Logicor(name string, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindLogicor, Vars: vars, LHS: 1, RHS: Infinity}
}

// Varbound builds lhs <= x + coef*y <= rhs.
func Varbound(name string, x, y int, coef, lhs, rhs float64) Constraint {
	return Constraint{Name: name, Kind: KindVarbound, Vars: []int{x, y}, Coefs: []float64{1, coef}, LHS: lhs, RHS: rhs}
}

// Xor builds sum x[vars[i]] == parity (mod 2).
func Xor(name string, parity bool, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindXor, Vars: vars, Parity: parity}
}

// And builds resultant == AND x[vars[i]].
func And(name string, resultant int, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindAnd, Vars: vars, Resultant: resultant}
}

// Or builds resultant == OR x[vars[i]].
func Or(name string, resultant int, vars ...int) Constraint {
	return Constraint{Name: name, Kind: KindOr, Vars: vars, Resultant: resultant}
}

// BoundDisjunction builds OR (x[vars[i]] >=/<= bounds[i]).
func BoundDisjunction(name string, vars []int, types []BoundType, bounds []float64) Constraint {
	return Constraint{Name: name, Kind: KindBoundDisjunction, Vars: vars, BoundTypes: types, Bounds: bounds}
}

// Coefficient returns the coefficient of the k-th entry, defaulting to 1.
func (c Constraint) Coefficient(k int) float64 {
	if c.Coefs == nil {
		return 1
	}
	return c.Coefs[k]
}

// LinearForm returns the row as lhs <= sum a_i x_i <= rhs for linear-like
// kinds (linear, knapsack, set partitioning/packing/covering, logicor,
// varbound). ok is false for logical kinds that have no linear form.
func (c Constraint) LinearForm() (vars []int, coefs []float64, lhs, rhs float64, ok bool) {
	switch c.Kind {
	case KindLinear, KindVarbound:
		lhs, rhs = c.LHS, c.RHS
	case KindKnapsack:
		lhs, rhs = -Infinity, c.RHS
	case KindSetPartitioning:
		lhs, rhs = 1, 1
	case KindSetPacking:
		lhs, rhs = -Infinity, 1
	case KindSetCovering, KindLogicor:
		lhs, rhs = 1, Infinity
	default:
		return nil, nil, 0, 0, false
	}

	coefs = make([]float64, len(c.Vars))
	for k := range c.Vars {
		coefs[k] = c.Coefficient(k)
	}

	return c.Vars, coefs, lhs, rhs, true
}

// IsPackingLike reports whether the row states "at most one of Vars" over
// unit coefficients (set packing, set partitioning, or an equivalent
// linear row with rhs 1). partitioning is true when the row forces exactly
// one over integral values, i.e. 0 < lhs <= 1.
func (c Constraint) IsPackingLike() (packing bool, partitioning bool) {
	vars, coefs, lhs, rhs, ok := c.LinearForm()
	if !ok || len(vars) == 0 {
		return false, false
	}
	for _, a := range coefs {
		if a != 1 {
			return false, false
		}
	}
	if rhs != 1 {
		return false, false
	}
	if lhs > 0 && lhs <= 1 {
		return true, true
	}
	if lhs <= 0 || IsNegInfinity(lhs) {
		return true, false
	}

	return false, false
}
