// SPDX-License-Identifier: MIT

// File: id_fn.go
// Role: index to string schemes for generated variable names.
package builder

import (
	"fmt"
	"strconv"
)

// IDFn maps a zero-based index to the string used in a variable name. It
// must be pure: equal indices give equal strings.
type IDFn func(idx int) string

// DefaultIDFn returns the decimal string of idx.
func DefaultIDFn(idx int) string {
	return strconv.Itoa(idx)
}

// AlphanumericIDFn returns idx in base 36, e.g. 10 -> "a", 36 -> "10".
// Panics if idx < 0.
func AlphanumericIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("AlphanumericIDFn: idx must be >= 0, got %d", idx))
	}
	return strconv.FormatInt(int64(idx), 36)
}

// ExcelColumnIDFn returns spreadsheet column labels: 0 -> "A", 25 -> "Z",
// 26 -> "AA". Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be >= 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}

	return string(runes)
}

// WithExcelColumnIDs is shorthand for WithIDScheme(ExcelColumnIDFn).
func WithExcelColumnIDs() BuilderOption {
	return WithIDScheme(ExcelColumnIDFn)
}

// WithAlphanumericIDs is shorthand for WithIDScheme(AlphanumericIDFn).
func WithAlphanumericIDs() BuilderOption {
	return WithIDScheme(AlphanumericIDFn)
}
