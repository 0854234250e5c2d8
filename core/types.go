// SPDX-License-Identifier: MIT
// Package core defines the host-facing MIP object model consumed by the
// symmetry pipeline: Problem, Variable and Constraint, plus the sentinel
// errors and functional options used to build them.
//
// A Problem is owned by the host solver. The symmetry pipeline only indexes
// into it: variables are referenced by their position in Problem.Vars and
// constraints by their position in Problem.Constraints.
//
// Problem uses separate sync.RWMutex locks internally (muVars for the
// variable catalog, muConss for constraints), so a host may keep appending
// rows from one goroutine while another one reads a snapshot.
//
// Errors:
//
//	ErrEmptyName        - variable name is empty.
//	ErrDuplicateName    - variable name already registered.
//	ErrBadBounds        - lower bound exceeds upper bound, or NaN bound.
//	ErrVarIndex         - constraint references an unknown variable index.
//	ErrCoefLength       - coefficient slice length differs from variable slice length.
//	ErrBadConstraint    - kind-specific shape violation (resultant, literals, sides).
//	ErrConsIndex        - constraint index out of range.
package core

import (
	"errors"
	"math"
	"sync"
)

// Sentinel errors for core problem operations.
var (
	// ErrEmptyName indicates that a variable was added without a name.
	ErrEmptyName = errors.New("core: variable name is empty")

	// ErrDuplicateName indicates that a variable name is already registered.
	ErrDuplicateName = errors.New("core: duplicate variable name")

	// ErrBadBounds indicates lb > ub or a NaN bound.
	ErrBadBounds = errors.New("core: invalid variable bounds")

	// ErrVarIndex indicates a constraint referenced a non-existent variable.
	ErrVarIndex = errors.New("core: variable index out of range")

	// ErrCoefLength indicates len(Coefs) != len(Vars) for a weighted constraint.
	ErrCoefLength = errors.New("core: coefficient length mismatch")

	// ErrBadConstraint indicates a kind-specific shape violation.
	ErrBadConstraint = errors.New("core: malformed constraint")

	// ErrConsIndex indicates a constraint index out of range.
	ErrConsIndex = errors.New("core: constraint index out of range")
)

// Infinity is the host's infinity value. Sides and bounds with an absolute
// value of at least Infinity are treated as unbounded.
const Infinity = 1e20

// IsInfinity reports whether v is +Infinity under the host convention.
func IsInfinity(v float64) bool { return v >= Infinity }

// IsNegInfinity reports whether v is -Infinity under the host convention.
func IsNegInfinity(v float64) bool { return v <= -Infinity }

// VarType is the domain type of a variable.
type VarType int

const (
	// Binary variables take values in {0,1}.
	Binary VarType = iota
	// Integer variables take integral values.
	Integer
	// ImplInt variables are continuous but implied integral.
	ImplInt
	// Continuous variables take real values.
	Continuous
)

// NumVarTypes is the number of distinct VarType values.
const NumVarTypes = 4

// String implements fmt.Stringer.
func (t VarType) String() string {
	switch t {
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	case ImplInt:
		return "implint"
	case Continuous:
		return "continuous"
	default:
		return "unknown"
	}
}

// ParseVarType converts a textual type ("binary", "integer", "implint",
// "continuous") to a VarType. Unknown names report ok == false.
func ParseVarType(s string) (VarType, bool) {
	switch s {
	case "binary", "bin", "b":
		return Binary, true
	case "integer", "int", "i":
		return Integer, true
	case "implint", "implicit", "implicit-integer":
		return ImplInt, true
	case "continuous", "cont", "c":
		return Continuous, true
	default:
		return Continuous, false
	}
}

// Variable is one column of the problem.
type Variable struct {
	// Name uniquely identifies the variable inside its Problem.
	Name string

	// Obj is the objective coefficient.
	Obj float64

	// LB and UB are the current bounds.
	LB, UB float64

	// Type is the domain type.
	Type VarType

	// Nonlinear marks variables that appear in some nonlinear expression.
	// Linear and nonlinear occurrences must never be mixed by a symmetry.
	Nonlinear bool
}

// ConsKind tags the constraint handler a row belongs to.
type ConsKind int

const (
	// KindLinear is lhs <= sum a_i x_i <= rhs.
	KindLinear ConsKind = iota
	// KindKnapsack is sum w_i x_i <= capacity (RHS) over binaries.
	KindKnapsack
	// KindSetPartitioning is sum x_i == 1.
	KindSetPartitioning
	// KindSetPacking is sum x_i <= 1.
	KindSetPacking
	// KindSetCovering is sum x_i >= 1.
	KindSetCovering
	// KindLogicor is a clause over binaries, sum x_i >= 1.
	KindLogicor
	// KindVarbound is lhs <= x + c*y <= rhs.
	KindVarbound
	// KindXor is sum x_i == parity (mod 2).
	KindXor
	// KindAnd is resultant == AND(x_i).
	KindAnd
	// KindOr is resultant == OR(x_i).
	KindOr
	// KindBoundDisjunction is OR over bound literals (x_i >= b_i or x_i <= b_i).
	KindBoundDisjunction
	// KindCustom is a constraint type the encoder does not understand.
	KindCustom
)

var consKindNames = [...]string{
	"linear", "knapsack", "setpartitioning", "setpacking", "setcovering",
	"logicor", "varbound", "xor", "and", "or", "bounddisjunction", "custom",
}

// String implements fmt.Stringer.
func (k ConsKind) String() string {
	if k < 0 || int(k) >= len(consKindNames) {
		return "unknown"
	}
	return consKindNames[k]
}

// ParseConsKind converts a textual kind to a ConsKind.
func ParseConsKind(s string) (ConsKind, bool) {
	for i, n := range consKindNames {
		if n == s {
			return ConsKind(i), true
		}
	}
	return KindCustom, false
}

// BoundType distinguishes the two literal forms of a bound disjunction.
type BoundType int

const (
	// BoundLower is the literal x >= b.
	BoundLower BoundType = iota
	// BoundUpper is the literal x <= b.
	BoundUpper
)

// Constraint is one row of the problem. Which fields are meaningful depends
// on Kind; the constructor helpers in constraints.go fill them consistently.
type Constraint struct {
	// Name is informational; empty names are replaced by "c<index>".
	Name string

	// Kind selects the semantics.
	Kind ConsKind

	// Vars lists variable indices in the order of Coefs.
	Vars []int

	// Coefs holds one coefficient per entry of Vars. Nil means all ones.
	Coefs []float64

	// LHS and RHS are the row sides for linear-like kinds.
	LHS, RHS float64

	// Resultant is the output variable of AND/OR constraints.
	Resultant int

	// Parity is the right-hand side of a XOR constraint.
	Parity bool

	// BoundTypes and Bounds describe the literals of a bound disjunction,
	// one per entry of Vars.
	BoundTypes []BoundType
	Bounds     []float64

	// Deleted rows are kept for index stability but ignored by the encoder.
	Deleted bool
}

// Problem is the in-memory MIP owned by the host.
//
// muVars protects vars and names; muConss protects conss.
type Problem struct {
	muVars  sync.RWMutex // guards vars, names
	muConss sync.RWMutex // guards conss

	name  string
	vars  []Variable
	names map[string]int
	conss []Constraint
}

// ProblemOption configures a Problem before creation.
type ProblemOption func(p *Problem)

// WithName sets the informational problem name.
func WithName(name string) ProblemOption {
	return func(p *Problem) { p.name = name }
}

// WithCapacity pre-sizes the variable and constraint catalogs.
func WithCapacity(nvars, nconss int) ProblemOption {
	return func(p *Problem) {
		if nvars > 0 {
			p.vars = make([]Variable, 0, nvars)
			p.names = make(map[string]int, nvars)
		}
		if nconss > 0 {
			p.conss = make([]Constraint, 0, nconss)
		}
	}
}

// NewProblem creates an empty Problem.
// Complexity: O(1) unless WithCapacity pre-allocates.
func NewProblem(opts ...ProblemOption) *Problem {
	p := &Problem{names: make(map[string]int)}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// VarOption configures a Variable when added.
type VarOption func(v *Variable)

// WithObj sets the objective coefficient.
func WithObj(c float64) VarOption {
	return func(v *Variable) { v.Obj = c }
}

// WithBounds sets the variable bounds.
func WithBounds(lb, ub float64) VarOption {
	return func(v *Variable) { v.LB, v.UB = lb, ub }
}

// WithType sets the domain type. Binary variables get [0,1] bounds unless
// WithBounds is applied afterwards.
func WithType(t VarType) VarOption {
	return func(v *Variable) {
		v.Type = t
		switch t {
		case Binary:
			v.LB, v.UB = 0, 1
		default:
			if v.LB == 0 && v.UB == 1 {
				v.LB, v.UB = 0, Infinity
			}
		}
	}
}

// WithNonlinear marks the variable as appearing in a nonlinear expression.
func WithNonlinear() VarOption {
	return func(v *Variable) { v.Nonlinear = true }
}

func validBounds(lb, ub float64) bool {
	if math.IsNaN(lb) || math.IsNaN(ub) {
		return false
	}
	return lb <= ub
}
