// SPDX-License-Identifier: MIT

// Package matrix: colored sparse matrix types.
//
// A ColoredMatrix is the problem as the automorphism oracle sees it:
//   - columns are variables, each with a color (objective, bounds, type,
//     nonlinearity and optionally degree),
//   - rows are constraint sides, each with a color (sense and right-hand side),
//   - entries carry a coefficient color.
//
// A permutation of the columns is a symmetry iff it preserves column colors
// and maps the multiset of colored rows onto itself.
package matrix

import "sync"

// Sense is the semantic class of a row.
type Sense int

const (
	// SenseLE is sum a_i x_i <= rhs.
	SenseLE Sense = iota
	// SenseEQ is sum a_i x_i == rhs.
	SenseEQ
	// SenseXOR is sum x_i == rhs (mod 2).
	SenseXOR
	// SenseAND is resultant == AND(x_i).
	SenseAND
	// SenseOR is resultant == OR(x_i).
	SenseOR
	// SenseBoundDisjunction is OR over bound literals.
	SenseBoundDisjunction
)

// String implements fmt.Stringer.
func (s Sense) String() string {
	switch s {
	case SenseLE:
		return "<="
	case SenseEQ:
		return "=="
	case SenseXOR:
		return "xor"
	case SenseAND:
		return "and"
	case SenseOR:
		return "or"
	case SenseBoundDisjunction:
		return "bdisj"
	default:
		return "?"
	}
}

// Entry is one nonzero of a row.
type Entry struct {
	Col   int // variable index
	Color int // coefficient color in [0, NCoefColors)
}

// Row is one colored constraint side.
type Row struct {
	Cons    int     // originating constraint index in the problem
	Sense   Sense   // semantic class
	RHS     float64 // right-hand side after normalization
	Color   int     // row color in [0, NRowColors)
	Entries []Entry // sorted by Col, one entry per column
}

// ColoredMatrix is the encoder output.
type ColoredMatrix struct {
	// NVars is the number of columns.
	NVars int

	// VarColors[i] is the color of column i in [0, NVarColors).
	VarColors  []int
	NVarColors int

	// Rows are the colored rows in constraint order.
	Rows       []Row
	NRowColors int

	// NCoefColors is the number of distinct coefficient colors.
	NCoefColors int

	// rowIndex counts rows by signature; built lazily by IsAutomorphism.
	indexOnce sync.Once
	rowIndex  map[string]int
}

// NNZ returns the number of stored entries.
func (m *ColoredMatrix) NNZ() int {
	n := 0
	for i := range m.Rows {
		n += len(m.Rows[i].Entries)
	}

	return n
}

// Trivial reports whether the symmetry group is provably trivial without
// calling an oracle: no columns, no rows, or every column has its own color.
func (m *ColoredMatrix) Trivial() bool {
	return m.NVars == 0 || len(m.Rows) == 0 || m.NVarColors == m.NVars
}

// ColorClasses returns the columns grouped by color, in color order.
func (m *ColoredMatrix) ColorClasses() [][]int {
	out := make([][]int, m.NVarColors)
	for i, c := range m.VarColors {
		out[c] = append(out[c], i)
	}

	return out
}
