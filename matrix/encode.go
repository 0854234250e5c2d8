// SPDX-License-Identifier: MIT

// Package matrix: problem → colored matrix encoder.
//
// Row normalization (one problem constraint may yield several rows):
//   - lhs == rhs (within eps)      ⇒ one SenseEQ row  (a, rhs)
//   - finite lhs                   ⇒ one SenseLE row  (-a, -lhs)
//   - finite rhs                   ⇒ one SenseLE row  (a, rhs)
//
// so "≥" and "≤" sides of differently written constraints can share a color.
// Logical constraints keep their own senses (XOR/AND/OR/bound disjunction).
package matrix

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvsym/core"
)

type rawEntry struct {
	col int
	key coefKey
}

type rawRow struct {
	cons    int
	sense   Sense
	rhs     float64
	entries []rawEntry
}

// Encode builds the colored matrix of p.
//
// Implementation:
//   - Stage 1: Validate input and resolve options.
//   - Stage 2: Normalize every active constraint into raw rows; unknown
//     kinds abort with ErrCannotEncode.
//   - Stage 3: Assign coefficient, row and variable colors by tolerant sort.
//   - Stage 4: Materialize rows with entries sorted by column.
//
// Errors:
//   - ErrNilProblem, ErrNaN, ErrCannotEncode (wrapped with the constraint name).
//
// Complexity: O(V log V + Z log Z) for V variables and Z nonzeros.
func Encode(p *core.Problem, opts ...Option) (*ColoredMatrix, error) {
	if p == nil {
		return nil, ErrNilProblem
	}
	o := gatherOptions(opts...)

	vars := p.Vars()
	conss := p.Constraints()

	// Stage 2: normalize.
	var raws []rawRow
	for ci := range conss {
		c := conss[ci]
		if c.Deleted {
			continue
		}
		rows, err := encodeConstraint(ci, c, o.eps)
		if err != nil {
			return nil, fmt.Errorf("Encode(%s): %w", c.Name, err)
		}
		raws = append(raws, rows...)
	}

	// Stage 3a: coefficient colors over all entries.
	var keys []coefKey
	for r := range raws {
		for _, e := range raws[r].entries {
			keys = append(keys, e.key)
		}
	}
	coefColors, ncoef := assignColors(len(keys), func(i, j int) int {
		return cmpCoefKey(keys[i], keys[j], o.eps)
	})

	// Stage 3b: row colors.
	rowColors, nrow := assignColors(len(raws), func(i, j int) int {
		return cmpRowKey(rowKey{raws[i].sense, raws[i].rhs}, rowKey{raws[j].sense, raws[j].rhs}, o.eps)
	})

	// Stage 3c: variable colors.
	vkeys := make([]varKey, len(vars))
	for i, v := range vars {
		if math.IsNaN(v.Obj) {
			return nil, fmt.Errorf("Encode(var %s): %w", v.Name, ErrNaN)
		}
		vkeys[i] = varKey{obj: v.Obj, lb: v.LB, ub: v.UB, typ: v.Type, nonlinear: v.Nonlinear}
	}
	if o.degreeColors {
		for r := range raws {
			for _, e := range raws[r].entries {
				vkeys[e.col].degree++
			}
		}
	}
	varColors, nvarc := assignColors(len(vkeys), func(i, j int) int {
		return cmpVarKey(vkeys[i], vkeys[j], o.eps)
	})

	// Stage 4: materialize.
	m := &ColoredMatrix{
		NVars:       len(vars),
		VarColors:   varColors,
		NVarColors:  nvarc,
		Rows:        make([]Row, len(raws)),
		NRowColors:  nrow,
		NCoefColors: ncoef,
	}
	k := 0
	for r := range raws {
		row := Row{
			Cons:    raws[r].cons,
			Sense:   raws[r].sense,
			RHS:     raws[r].rhs,
			Color:   rowColors[r],
			Entries: make([]Entry, len(raws[r].entries)),
		}
		for j, e := range raws[r].entries {
			row.Entries[j] = Entry{Col: e.col, Color: coefColors[k]}
			k++
		}
		m.Rows[r] = row
	}

	return m, nil
}

// encodeConstraint normalizes one constraint into raw rows.
func encodeConstraint(ci int, c core.Constraint, eps float64) ([]rawRow, error) {
	switch c.Kind {
	case core.KindLinear, core.KindKnapsack, core.KindSetPartitioning, core.KindSetPacking,
		core.KindSetCovering, core.KindLogicor, core.KindVarbound:
		vars, coefs, lhs, rhs, _ := c.LinearForm()
		return encodeLinear(ci, vars, coefs, lhs, rhs, eps)

	case core.KindXor:
		return encodeXor(ci, c), nil

	case core.KindAnd, core.KindOr:
		return encodeAndOr(ci, c)

	case core.KindBoundDisjunction:
		return encodeBoundDisjunction(ci, c)

	default:
		return nil, ErrCannotEncode
	}
}

func encodeLinear(ci int, vars []int, coefs []float64, lhs, rhs, eps float64) ([]rawRow, error) {
	if math.IsNaN(lhs) || math.IsNaN(rhs) {
		return nil, ErrNaN
	}

	// Merge duplicate columns and drop coefficients that vanish.
	sum := make(map[int]float64, len(vars))
	for k, v := range vars {
		if math.IsNaN(coefs[k]) {
			return nil, ErrNaN
		}
		sum[v] += coefs[k]
	}
	cols := make([]int, 0, len(sum))
	for v, a := range sum {
		if isEQ(a, 0, eps) {
			continue
		}
		cols = append(cols, v)
	}
	if len(cols) == 0 {
		return nil, nil
	}
	sort.Ints(cols)

	side := func(sense Sense, sign, r float64) rawRow {
		row := rawRow{cons: ci, sense: sense, rhs: sign * r, entries: make([]rawEntry, len(cols))}
		for j, v := range cols {
			row.entries[j] = rawEntry{col: v, key: coefKey{tag: tagValue, a: sign * sum[v]}}
		}
		return row
	}

	finiteL := !core.IsNegInfinity(lhs)
	finiteR := !core.IsInfinity(rhs)
	switch {
	case finiteL && finiteR && isEQ(lhs, rhs, eps):
		return []rawRow{side(SenseEQ, 1, rhs)}, nil
	default:
		var out []rawRow
		if finiteL {
			out = append(out, side(SenseLE, -1, lhs))
		}
		if finiteR {
			out = append(out, side(SenseLE, 1, rhs))
		}
		return out, nil
	}
}

func encodeXor(ci int, c core.Constraint) []rawRow {
	// x xor x == 0, so duplicated columns cancel in pairs.
	count := make(map[int]int, len(c.Vars))
	for _, v := range c.Vars {
		count[v]++
	}
	cols := make([]int, 0, len(count))
	for v, n := range count {
		if n%2 == 1 {
			cols = append(cols, v)
		}
	}
	if len(cols) == 0 {
		return nil
	}
	sort.Ints(cols)

	rhs := 0.0
	if c.Parity {
		rhs = 1
	}
	row := rawRow{cons: ci, sense: SenseXOR, rhs: rhs, entries: make([]rawEntry, len(cols))}
	for j, v := range cols {
		row.entries[j] = rawEntry{col: v, key: coefKey{tag: tagValue, a: 1}}
	}

	return []rawRow{row}
}

func encodeAndOr(ci int, c core.Constraint) ([]rawRow, error) {
	sense := SenseAND
	if c.Kind == core.KindOr {
		sense = SenseOR
	}

	seen := make(map[int]bool, len(c.Vars)+1)
	row := rawRow{cons: ci, sense: sense}
	for _, v := range c.Vars {
		if v == c.Resultant {
			return nil, ErrCannotEncode
		}
		if seen[v] {
			continue // idempotent operand
		}
		seen[v] = true
		row.entries = append(row.entries, rawEntry{col: v, key: coefKey{tag: tagValue, a: 1}})
	}
	row.entries = append(row.entries, rawEntry{col: c.Resultant, key: coefKey{tag: tagResultant, a: 1}})
	sort.Slice(row.entries, func(i, j int) bool { return row.entries[i].col < row.entries[j].col })

	return []rawRow{row}, nil
}

// encodeBoundDisjunction folds the literals of each variable into a single
// entry. A variable with more than two literals cannot be expressed by one
// colored entry and aborts the encoding.
func encodeBoundDisjunction(ci int, c core.Constraint) ([]rawRow, error) {
	type literal struct {
		typ   core.BoundType
		bound float64
	}
	lits := make(map[int][]literal, len(c.Vars))
	for k, v := range c.Vars {
		if math.IsNaN(c.Bounds[k]) {
			return nil, ErrNaN
		}
		lits[v] = append(lits[v], literal{c.BoundTypes[k], c.Bounds[k]})
	}

	cols := make([]int, 0, len(lits))
	for v := range lits {
		cols = append(cols, v)
	}
	sort.Ints(cols)

	row := rawRow{cons: ci, sense: SenseBoundDisjunction, entries: make([]rawEntry, 0, len(cols))}
	for _, v := range cols {
		ls := lits[v]
		var key coefKey
		switch len(ls) {
		case 1:
			key = coefKey{tag: tagLower, a: ls[0].bound}
			if ls[0].typ == core.BoundUpper {
				key.tag = tagUpper
			}
		case 2:
			a, b := ls[0], ls[1]
			if a.typ > b.typ || (a.typ == b.typ && a.bound > b.bound) {
				a, b = b, a
			}
			switch {
			case a.typ == core.BoundLower && b.typ == core.BoundLower:
				key = coefKey{tag: tagPairLL, a: a.bound, b: b.bound}
			case a.typ == core.BoundLower:
				key = coefKey{tag: tagPairLU, a: a.bound, b: b.bound}
			default:
				key = coefKey{tag: tagPairUU, a: a.bound, b: b.bound}
			}
		default:
			return nil, ErrCannotEncode
		}
		row.entries = append(row.entries, rawEntry{col: v, key: key})
	}
	if len(row.entries) == 0 {
		return nil, nil
	}

	return []rawRow{row}, nil
}
