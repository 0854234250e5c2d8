// SPDX-License-Identifier: MIT

// File: root.go
// Role: command tree, shared flags and the per-file worker.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvsym/satcheck"
	"github.com/katalvlaran/lvsym/symmetry"
)

const defaultJobs = 4

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	verbose    bool
	output     string
	jobs       int
	metrics    bool
}

func newRootCmd() *cobra.Command {
	var opts options
	root := &cobra.Command{
		Use:          "lvsym",
		Short:        "Symmetry detection for mixed-integer programs",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML file with symmetry settings")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every technique decision")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "report format (text|yaml)")
	root.PersistentFlags().IntVarP(&opts.jobs, "jobs", "j", defaultJobs, "instances processed concurrently")
	root.PersistentFlags().BoolVar(&opts.metrics, "metrics", false, "print episode counters after the report")

	root.AddCommand(newDetectCmd(&opts), newCheckCmd(&opts), newGenerateCmd())
	return root
}

func newDetectCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE...",
		Short: "Compute the symmetry group and the handling of every component",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := run(cmd, opts, args, false)
			return err
		},
	}
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Detect, then verify that the handling keeps an optimal 0/1 solution",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := run(cmd, opts, args, true)
			if err != nil {
				return err
			}
			for _, r := range reports {
				if r.Valid != nil && !*r.Valid {
					return errors.Errorf("%s: symmetry handling removed every optimal solution", r.File)
				}
			}
			return nil
		},
	}
}

// run processes every file on its own episode and writes the reports in
// argument order.
func run(cmd *cobra.Command, opts *options, files []string, check bool) ([]*report, error) {
	if opts.output != "text" && opts.output != "yaml" {
		return nil, errors.Errorf("invalid --output %q, expected text or yaml", opts.output)
	}
	if opts.jobs < 1 {
		return nil, errors.Errorf("invalid --jobs %d", opts.jobs)
	}

	log := logrus.New()
	log.SetOutput(cmd.ErrOrStderr())
	log.SetLevel(logrus.WarnLevel)
	if opts.verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	metrics := symmetry.NewMetrics(reg)

	reports := make([]*report, len(files))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(opts.jobs)
	for i, path := range files {
		g.Go(func() error {
			r, err := processFile(ctx, path, cfg, log.WithField("file", path), metrics, check)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	if err := writeReports(out, opts.output, reports); err != nil {
		return nil, err
	}
	if opts.metrics {
		if err := writeMetrics(out, reg); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func loadConfig(path string) (symmetry.Config, error) {
	if path == "" {
		return symmetry.DefaultConfig(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return symmetry.Config{}, errors.Wrap(err, "open config")
	}
	defer f.Close()

	cfg, err := symmetry.LoadConfig(f)
	if err != nil {
		return symmetry.Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func processFile(ctx context.Context, path string, cfg symmetry.Config, log logrus.FieldLogger, m *symmetry.Metrics, check bool) (*report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open instance")
	}
	defer f.Close()

	in, err := loadInstance(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	p, err := in.problem()
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	sink := symmetry.NewCollector()
	e, err := symmetry.NewEpisode(p, in.oracle(cfg),
		symmetry.WithConfig(cfg),
		symmetry.WithLogger(log),
		symmetry.WithMetrics(m),
		symmetry.WithSink(sink),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	st, err := e.Compute(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	r := newReport(path, p.Name(), st, e.Statistics(), sink.Artifacts())
	if !check {
		return r, nil
	}

	rep, err := satcheck.Check(ctx, p, sink.Artifacts())
	if err != nil {
		if errors.Is(err, satcheck.ErrUnsupported) {
			r.Check = fmt.Sprintf("not checked: %v", err)
			return r, nil
		}
		return nil, errors.Wrapf(err, "%s", path)
	}
	valid := rep.Valid()
	r.Check, r.Valid = rep.String(), &valid
	log.WithField("valid", valid).Debug("feasibility check done")
	return r, nil
}
