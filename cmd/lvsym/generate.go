// SPDX-License-Identifier: MIT

// File: generate.go
// Role: the generate subcommand, writing builder families as instances.
package main

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsym/builder"
)

// generateOptions are the flags of the generate subcommand.
type generateOptions struct {
	seed      int64
	objective float64
	weights   []float64
	graph     string
	maxWeight int
}

// family maps positional arguments to a constructor.
type family struct {
	args  string
	nargs int
	build func(a []float64, o *generateOptions) (builder.Constructor, error)
}

var families = map[string]family{
	"cardinality": {"N K", 2, func(a []float64, _ *generateOptions) (builder.Constructor, error) {
		return builder.Cardinality(int(a[0]), int(a[1])), nil
	}},
	"pairs": {"N", 1, func(a []float64, _ *generateOptions) (builder.Constructor, error) {
		return builder.Pairs(int(a[0])), nil
	}},
	"assignment": {"N", 1, func(a []float64, _ *generateOptions) (builder.Constructor, error) {
		return builder.Assignment(int(a[0])), nil
	}},
	"pigeonhole": {"PIGEONS HOLES", 2, func(a []float64, _ *generateOptions) (builder.Constructor, error) {
		return builder.Pigeonhole(int(a[0]), int(a[1])), nil
	}},
	"binpacking": {"BINS CAPACITY", 2, func(a []float64, o *generateOptions) (builder.Constructor, error) {
		return builder.BinPacking(o.weights, int(a[0]), a[1]), nil
	}},
	"coloring": {"VERTICES COLORS", 2, func(a []float64, o *generateOptions) (builder.Constructor, error) {
		n := int(a[0])
		var edges [][2]int
		switch o.graph {
		case "cycle":
			edges = builder.CycleEdges(n)
		case "path":
			edges = builder.PathEdges(n)
		case "complete":
			edges = builder.CompleteEdges(n)
		default:
			return nil, errors.Errorf("invalid --graph %q, expected cycle, path or complete", o.graph)
		}
		return builder.Coloring(n, edges, int(a[1])), nil
	}},
	"knapsack": {"GROUPS SIZE CAPACITY", 3, func(a []float64, _ *generateOptions) (builder.Constructor, error) {
		return builder.GroupedKnapsack(int(a[0]), int(a[1]), a[2]), nil
	}},
}

func newGenerateCmd() *cobra.Command {
	o := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate FAMILY ARGS...",
		Short: "Write a symmetric benchmark instance as YAML",
		Long: `Families and their arguments:
  cardinality N K
  pairs N
  assignment N
  pigeonhole PIGEONS HOLES
  binpacking BINS CAPACITY      (item weights from --weights)
  coloring VERTICES COLORS      (graph from --graph)
  knapsack GROUPS SIZE CAPACITY (random weights from --seed, --max-weight)`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, ok := families[args[0]]
			if !ok {
				return errors.Errorf("unknown family %q", args[0])
			}
			if len(args)-1 != f.nargs {
				return errors.Errorf("%s expects %s", args[0], f.args)
			}
			nums := make([]float64, f.nargs)
			for k, s := range args[1:] {
				v, err := strconv.ParseFloat(s, 64)
				if err != nil {
					return errors.Wrapf(err, "argument %d", k+1)
				}
				nums[k] = v
			}
			if o.maxWeight < 1 {
				return errors.Errorf("invalid --max-weight %d", o.maxWeight)
			}
			if math.IsNaN(o.objective) || math.IsInf(o.objective, 0) {
				return errors.Errorf("invalid --objective %g", o.objective)
			}
			ctor, err := f.build(nums, o)
			if err != nil {
				return err
			}

			p, err := builder.BuildProblem(args[0], []builder.BuilderOption{
				builder.WithSeed(o.seed),
				builder.WithObjective(o.objective),
				builder.WithUniformWeight(1, o.maxWeight),
			}, ctor)
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(fromProblem(p)); err != nil {
				return errors.Wrap(err, "encode instance")
			}
			return enc.Close()
		},
	}
	cmd.Flags().Int64Var(&o.seed, "seed", 1, "seed of the random families")
	cmd.Flags().Float64Var(&o.objective, "objective", builder.DefaultObjective, "objective of the choice variables")
	cmd.Flags().Float64SliceVar(&o.weights, "weights", nil, "item weights for binpacking")
	cmd.Flags().StringVar(&o.graph, "graph", "cycle", "graph of the coloring family (cycle|path|complete)")
	cmd.Flags().IntVar(&o.maxWeight, "max-weight", 10, "largest random weight or profit")
	return cmd
}
