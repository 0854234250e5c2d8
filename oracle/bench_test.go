// SPDX-License-Identifier: MIT

package oracle_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvsym/builder"
	"github.com/katalvlaran/lvsym/matrix"
	"github.com/katalvlaran/lvsym/oracle"
)

// BenchmarkSearch measures the built-in search on instances whose group
// is known: S_n x S_n for assignment, S_colors x D_n for cycle coloring.
func BenchmarkSearch(b *testing.B) {
	cases := []struct {
		name string
		ctor builder.Constructor
	}{
		{"Assignment8", builder.Assignment(8)},
		{"Assignment16", builder.Assignment(16)},
		{"Pigeonhole12x11", builder.Pigeonhole(12, 11)},
		{"ColoringC12x4", builder.Coloring(12, builder.CycleEdges(12), 4)},
	}

	for _, tc := range cases {
		tc := tc
		b.Run(tc.name, func(b *testing.B) {
			p, err := builder.BuildProblem(tc.name, nil, tc.ctor)
			if err != nil {
				b.Fatal(err)
			}
			m, err := matrix.Encode(p)
			if err != nil {
				b.Fatal(err)
			}
			s := oracle.New()
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Automorphisms(ctx, m, 0); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
