// SPDX-License-Identifier: MIT

// Package matrix: automorphism check.
package matrix

import (
	"sort"
	"strconv"
	"strings"
)

// IsAutomorphism reports whether perm is a color-preserving column
// permutation that maps the multiset of colored rows onto itself.
//
// perm must have length NVars and be a bijection on [0, NVars).
//
// Complexity: O(Z log Z) on first call (index build), O(Z log Z) per check.
func (m *ColoredMatrix) IsAutomorphism(perm []int) bool {
	if len(perm) != m.NVars {
		return false
	}
	seen := make([]bool, m.NVars)
	for i, j := range perm {
		if j < 0 || j >= m.NVars || seen[j] {
			return false
		}
		seen[j] = true
		if m.VarColors[i] != m.VarColors[j] {
			return false
		}
	}

	m.indexOnce.Do(m.buildRowIndex)

	need := make(map[string]int, len(m.Rows))
	buf := make([]Entry, 0, 8)
	for r := range m.Rows {
		row := &m.Rows[r]
		buf = buf[:0]
		for _, e := range row.Entries {
			buf = append(buf, Entry{Col: perm[e.Col], Color: e.Color})
		}
		sig := rowSignature(row.Color, buf)
		need[sig]++
		if need[sig] > m.rowIndex[sig] {
			return false
		}
	}

	return true
}

func (m *ColoredMatrix) buildRowIndex() {
	m.rowIndex = make(map[string]int, len(m.Rows))
	buf := make([]Entry, 0, 8)
	for r := range m.Rows {
		buf = append(buf[:0], m.Rows[r].Entries...)
		m.rowIndex[rowSignature(m.Rows[r].Color, buf)]++
	}
}

// rowSignature sorts entries in place and renders a canonical key.
func rowSignature(color int, entries []Entry) string {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Col < entries[j].Col })

	var sb strings.Builder
	sb.WriteString(strconv.Itoa(color))
	for _, e := range entries {
		sb.WriteByte('|')
		sb.WriteString(strconv.Itoa(e.Col))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(e.Color))
	}

	return sb.String()
}
