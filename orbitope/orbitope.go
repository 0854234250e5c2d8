// SPDX-License-Identifier: MIT

// File: orbitope.go
// Role: two-cycle classification and the full orbitope builder.
package orbitope

import "fmt"

// Kind is the row structure of an orbitope.
type Kind int

const (
	// Full rows carry no packing structure.
	Full Kind = iota
	// Packing rows each lie in a "sum <= 1" row.
	Packing
	// Partitioning rows each form a "sum == 1" row.
	Partitioning
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Packing:
		return "packing"
	case Partitioning:
		return "partitioning"
	default:
		return "full"
	}
}

// Orbitope is a rows × cols matrix of variable positions. Every generator
// listed in Used swaps two adjacent columns, identically in all rows.
type Orbitope struct {
	// Matrix[r][c] is a variable position.
	Matrix [][]int

	// Binary[r] is true when row r holds only binary variables.
	Binary []bool

	// NBinRows counts the binary rows.
	NBinRows int

	// Used lists the indices (into the input generator list) placed as
	// column transpositions.
	Used []int

	// Kind is set by Classify; Full until then.
	Kind Kind
}

// NRows returns the number of rows.
func (o *Orbitope) NRows() int { return len(o.Matrix) }

// NCols returns the number of columns.
func (o *Orbitope) NCols() int {
	if len(o.Matrix) == 0 {
		return 0
	}
	return len(o.Matrix[0])
}

// BinaryPart returns the orbitope restricted to its binary rows, or nil
// when there are none. The receiver is returned unchanged when all rows
// are binary.
func (o *Orbitope) BinaryPart() *Orbitope {
	if o.NBinRows == 0 {
		return nil
	}
	if o.NBinRows == len(o.Matrix) {
		return o
	}
	out := &Orbitope{Used: o.Used, Kind: o.Kind}
	for r, row := range o.Matrix {
		if o.Binary[r] {
			out.Matrix = append(out.Matrix, row)
			out.Binary = append(out.Binary, true)
		}
	}
	out.NBinRows = len(out.Matrix)

	return out
}

// TwoCycles returns the 2-cycles (i, perm[i]) with i < perm[i], ascending
// by i, and whether perm is an involution.
func TwoCycles(perm []int) ([][2]int, bool) {
	var cycles [][2]int
	for i, j := range perm {
		if perm[j] != i {
			return nil, false
		}
		if i < j {
			cycles = append(cycles, [2]int{i, j})
		}
	}
	return cycles, true
}

// Qualifying returns the indices of the involutions among perms together
// with their 2-cycles.
func Qualifying(perms [][]int) (idx []int, cycles [][][2]int) {
	for pi, p := range perms {
		c, ok := TwoCycles(p)
		if ok && len(c) > 0 {
			idx = append(idx, pi)
			cycles = append(cycles, c)
		}
	}
	return idx, cycles
}

// Detect checks whether the generators of a component form a full
// orbitope: all generators are involutions with the same number of
// 2-cycles and every one of them becomes a column transposition.
//
// Errors: ErrTooFewGenerators, ErrNotInvolution, ErrCycleMismatch,
// ErrIncomplete, ErrMixedRow.
func Detect(perms [][]int, isBinary func(int) bool) (*Orbitope, error) {
	if len(perms) < 2 {
		return nil, ErrTooFewGenerators
	}
	cycles := make([][][2]int, len(perms))
	for pi, p := range perms {
		c, ok := TwoCycles(p)
		if !ok {
			return nil, fmt.Errorf("Detect: generator %d: %w", pi, ErrNotInvolution)
		}
		cycles[pi] = c
	}

	return build(cycles, isBinary, len(perms))
}

// Build grows an orbitope from the 2-cycles of perms (which must all be
// involutions with equal 2-cycle counts), seeded by perms[0], and succeeds
// when at least minUsed generators are placed.
func Build(perms [][]int, isBinary func(int) bool, minUsed int) (*Orbitope, error) {
	cycles := make([][][2]int, len(perms))
	for pi, p := range perms {
		c, ok := TwoCycles(p)
		if !ok {
			return nil, fmt.Errorf("Build: generator %d: %w", pi, ErrNotInvolution)
		}
		cycles[pi] = c
	}

	return build(cycles, isBinary, minUsed)
}

type cell struct {
	row, col int
}

// build is the frontier extension.
//
// Implementation:
//   - Stage 1: Check equal 2-cycle counts; rows := 2-cycles of the seed,
//     columns -> logical indices 0 and 1.
//   - Stage 2: Sweep the unused generators until a sweep places nothing.
//     A generator is placed when each of its 2-cycles has exactly one
//     endpoint already in the matrix, all those endpoints sit in the same
//     frontier column and cover each row once; its free endpoints become a
//     new column beyond that frontier.
//   - Stage 3: Check the number placed, assemble the matrix left to right
//     and verify per-row binary homogeneity.
//
// Complexity: O(k² · r) for k generators with r 2-cycles each.
func build(cycles [][][2]int, isBinary func(int) bool, minUsed int) (*Orbitope, error) {
	if len(cycles) == 0 || len(cycles[0]) == 0 {
		return nil, ErrTooFewGenerators
	}
	nrows := len(cycles[0])
	for pi := range cycles {
		if len(cycles[pi]) != nrows {
			return nil, fmt.Errorf("build: generator %d: %w", pi, ErrCycleMismatch)
		}
	}

	where := make(map[int]cell, 4*nrows)
	columns := map[int][]int{0: make([]int, nrows), 1: make([]int, nrows)}
	for r, c := range cycles[0] {
		where[c[0]] = cell{r, 0}
		where[c[1]] = cell{r, 1}
		columns[0][r], columns[1][r] = c[0], c[1]
	}
	left, right := 0, 1

	used := make([]bool, len(cycles))
	used[0] = true
	nused := 1
	for progress := true; progress; {
		progress = false
		for pi := range cycles {
			if used[pi] {
				continue
			}
			col, fresh, ok := extension(cycles[pi], where, nrows)
			if !ok || (col != left && col != right) {
				continue
			}

			target := right + 1
			if col == left {
				left--
				target = left
			} else {
				right++
			}
			columns[target] = fresh
			for r, v := range fresh {
				where[v] = cell{r, target}
			}
			used[pi] = true
			nused++
			progress = true
		}
	}
	if nused < minUsed {
		return nil, ErrIncomplete
	}

	o := &Orbitope{Matrix: make([][]int, nrows), Binary: make([]bool, nrows)}
	for r := 0; r < nrows; r++ {
		row := make([]int, 0, right-left+1)
		for c := left; c <= right; c++ {
			row = append(row, columns[c][r])
		}
		o.Matrix[r] = row

		bin := isBinary == nil || isBinary(row[0])
		for _, v := range row[1:] {
			if (isBinary == nil || isBinary(v)) != bin {
				return nil, fmt.Errorf("build: row %d: %w", r, ErrMixedRow)
			}
		}
		o.Binary[r] = bin
		if bin {
			o.NBinRows++
		}
	}
	for pi, ok := range used {
		if ok {
			o.Used = append(o.Used, pi)
		}
	}

	return o, nil
}

// extension tests one generator against the current matrix. It returns the
// column all placed endpoints share and the free endpoints ordered by row.
func extension(cycles [][2]int, where map[int]cell, nrows int) (int, []int, bool) {
	col := 0
	fresh := make([]int, nrows)
	covered := make([]bool, nrows)
	for k, c := range cycles {
		ca, inA := where[c[0]]
		cb, inB := where[c[1]]
		if inA == inB {
			return 0, nil, false
		}
		placed, free := ca, c[1]
		if inB {
			placed, free = cb, c[0]
		}
		if k == 0 {
			col = placed.col
		} else if placed.col != col {
			return 0, nil, false
		}
		if covered[placed.row] {
			return 0, nil, false
		}
		covered[placed.row] = true
		fresh[placed.row] = free
	}

	return col, fresh, true
}
