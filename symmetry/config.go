// SPDX-License-Identifier: MIT

// File: config.go
// Role: episode tunables, defaults and YAML loading.
package symmetry

import (
	"errors"
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvsym/conflict"
	"github.com/katalvlaran/lvsym/core"
	"github.com/katalvlaran/lvsym/matrix"
	"github.com/katalvlaran/lvsym/oracle"
	"github.com/katalvlaran/lvsym/orbitope"
	"github.com/katalvlaran/lvsym/schreier"
)

// Defaults not owned by a lower package.
const (
	DefaultMaxGenerators     = 1500
	DefaultCompressThreshold = 0.5
	DefaultPPThreshold       = 0.5
)

// Config holds every episode tunable.
type Config struct {
	// Encoder controls the colored matrix.
	Encoder EncoderConfig `json:"encoder" yaml:"encoder"`

	// Oracle controls the automorphism search.
	Oracle OracleConfig `json:"oracle" yaml:"oracle"`

	// Group controls post-processing of the generators.
	Group GroupConfig `json:"group" yaml:"group"`

	// Policy selects static constraints or dynamic reducers.
	Policy Policy `json:"policy" yaml:"policy"`

	// Techniques enables the individual handling methods.
	Techniques TechniqueConfig `json:"techniques" yaml:"techniques"`

	// Orbitope tunes orbitope and subgroup detection.
	Orbitope OrbitopeConfig `json:"orbitope" yaml:"orbitope"`

	// SST tunes the Schreier–Sims engine.
	SST SSTConfig `json:"sst" yaml:"sst"`
}

// EncoderConfig mirrors matrix.Options.
type EncoderConfig struct {
	Epsilon      float64 `json:"epsilon" yaml:"epsilon"`
	DegreeColors bool    `json:"degree_colors" yaml:"degree_colors"`
}

// OracleConfig caps the oracle call.
type OracleConfig struct {
	// MaxGenerators caps the generator count; 0 means no cap.
	MaxGenerators int `json:"max_generators" yaml:"max_generators"`
	// MaxNodes is the node budget of the built-in search.
	MaxNodes int `json:"max_nodes" yaml:"max_nodes"`
}

// GroupConfig controls compression and verification.
type GroupConfig struct {
	Compress          bool    `json:"compress" yaml:"compress"`
	CompressThreshold float64 `json:"compress_threshold" yaml:"compress_threshold"`
	Verify            bool    `json:"verify" yaml:"verify"`
}

// TechniqueConfig enables techniques.
type TechniqueConfig struct {
	Orbitopes        bool `json:"orbitopes" yaml:"orbitopes"`
	Subgroups        bool `json:"subgroups" yaml:"subgroups"`
	SST              bool `json:"sst" yaml:"sst"`
	OrbitalReduction bool `json:"orbital_reduction" yaml:"orbital_reduction"`
	LexReduction     bool `json:"lex_reduction" yaml:"lex_reduction"`
	Symresacks       bool `json:"symresacks" yaml:"symresacks"`
}

// OrbitopeConfig tunes orbitope and subgroup detection.
type OrbitopeConfig struct {
	// PPThreshold is the share of packing-partitioning generators from
	// which a component counts as packing-partitioning.
	PPThreshold float64 `json:"pp_threshold" yaml:"pp_threshold"`
	// SubgroupUsedFraction of a color class must be placed as columns.
	SubgroupUsedFraction float64 `json:"subgroup_used_fraction" yaml:"subgroup_used_fraction"`
	MinCols              int     `json:"min_cols" yaml:"min_cols"`
	MinBinRows           int     `json:"min_bin_rows" yaml:"min_bin_rows"`
	WeakSBCs             bool    `json:"weak_sbcs" yaml:"weak_sbcs"`
}

// SSTConfig tunes the Schreier–Sims engine. Rules use the names of
// schreier.LeaderRule, schreier.OrbitRule and core.VarType.
type SSTConfig struct {
	LeaderRule      string `json:"leader_rule" yaml:"leader_rule"`
	OrbitRule       string `json:"orbit_rule" yaml:"orbit_rule"`
	LeaderType      string `json:"leader_type" yaml:"leader_type"`
	MixedComponents bool   `json:"mixed_components" yaml:"mixed_components"`
	UseConflicts    bool   `json:"use_conflicts" yaml:"use_conflicts"`
	// AddCuts emits the leader inequalities; conflict fixings are emitted
	// either way.
	AddCuts bool `json:"add_cuts" yaml:"add_cuts"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		Encoder: EncoderConfig{
			Epsilon:      matrix.DefaultEpsilon,
			DegreeColors: matrix.DefaultDegreeColors,
		},
		Oracle: OracleConfig{
			MaxGenerators: DefaultMaxGenerators,
			MaxNodes:      oracle.DefaultMaxNodes,
		},
		Group: GroupConfig{
			Compress:          true,
			CompressThreshold: DefaultCompressThreshold,
			Verify:            true,
		},
		Policy: PolicyStatic,
		Techniques: TechniqueConfig{
			Orbitopes:        true,
			Subgroups:        true,
			OrbitalReduction: true,
			LexReduction:     true,
			Symresacks:       true,
		},
		Orbitope: OrbitopeConfig{
			PPThreshold:          DefaultPPThreshold,
			SubgroupUsedFraction: orbitope.DefaultMinUsedFraction,
			MinCols:              orbitope.DefaultMinCols,
			MinBinRows:           orbitope.DefaultMinBinRows,
			WeakSBCs:             true,
		},
		SST: SSTConfig{
			LeaderRule:   schreier.DefaultLeaderRule.String(),
			OrbitRule:    schreier.DefaultOrbitRule.String(),
			LeaderType:   schreier.DefaultLeaderType.String(),
			UseConflicts: true,
			AddCuts:      true,
		},
	}
}

// Validate reports the first out-of-range field, wrapping ErrInvalidConfig.
func (c Config) Validate() error {
	bad := func(field string, v any) error {
		return fmt.Errorf("%s = %v: %w", field, v, ErrInvalidConfig)
	}
	fraction := func(x float64) bool { return !math.IsNaN(x) && x >= 0 && x <= 1 }

	switch {
	case math.IsNaN(c.Encoder.Epsilon) || math.IsInf(c.Encoder.Epsilon, 0) || c.Encoder.Epsilon < 0:
		return bad("encoder.epsilon", c.Encoder.Epsilon)
	case c.Oracle.MaxGenerators < 0:
		return bad("oracle.max_generators", c.Oracle.MaxGenerators)
	case c.Oracle.MaxNodes <= 0:
		return bad("oracle.max_nodes", c.Oracle.MaxNodes)
	case !fraction(c.Group.CompressThreshold):
		return bad("group.compress_threshold", c.Group.CompressThreshold)
	case c.Policy != PolicyStatic && c.Policy != PolicyDynamic:
		return bad("policy", int(c.Policy))
	case !fraction(c.Orbitope.PPThreshold):
		return bad("orbitope.pp_threshold", c.Orbitope.PPThreshold)
	case !fraction(c.Orbitope.SubgroupUsedFraction):
		return bad("orbitope.subgroup_used_fraction", c.Orbitope.SubgroupUsedFraction)
	case c.Orbitope.MinCols < 2:
		return bad("orbitope.min_cols", c.Orbitope.MinCols)
	case c.Orbitope.MinBinRows < 0:
		return bad("orbitope.min_bin_rows", c.Orbitope.MinBinRows)
	}
	if _, ok := schreier.ParseLeaderRule(c.SST.LeaderRule); !ok {
		return bad("sst.leader_rule", c.SST.LeaderRule)
	}
	if _, ok := schreier.ParseOrbitRule(c.SST.OrbitRule); !ok {
		return bad("sst.orbit_rule", c.SST.OrbitRule)
	}
	if _, ok := core.ParseVarType(c.SST.LeaderType); !ok {
		return bad("sst.leader_type", c.SST.LeaderType)
	}

	return nil
}

// LoadConfig decodes YAML from r over the defaults and validates the
// result. Unknown keys are rejected; empty input yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("LoadConfig: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("LoadConfig: %w", err)
	}

	return cfg, nil
}

// EncoderOptions translates the encoder section.
func (c Config) EncoderOptions() []matrix.Option {
	return []matrix.Option{
		matrix.WithEpsilon(c.Encoder.Epsilon),
		matrix.WithDegreeColors(c.Encoder.DegreeColors),
	}
}

// NewOracle returns the built-in search configured by the oracle section.
func (c Config) NewOracle() *oracle.Search {
	return oracle.New(oracle.WithMaxNodes(c.Oracle.MaxNodes))
}

// SubgroupOptions translates the orbitope section.
func (c Config) SubgroupOptions() orbitope.SubgroupOptions {
	return orbitope.SubgroupOptions{
		MinCols:         c.Orbitope.MinCols,
		MinBinRows:      c.Orbitope.MinBinRows,
		MinUsedFraction: c.Orbitope.SubgroupUsedFraction,
		WeakSBCs:        c.Orbitope.WeakSBCs,
	}
}

// leaderType returns the parsed SST leader type; Validate guarantees it.
func (c Config) leaderType() core.VarType {
	t, _ := core.ParseVarType(c.SST.LeaderType)
	return t
}

// SchreierOptions translates the SST section. cg is used only when
// UseConflicts is set.
func (c Config) SchreierOptions(cg *conflict.Graph) []schreier.Option {
	lr, _ := schreier.ParseLeaderRule(c.SST.LeaderRule)
	or, _ := schreier.ParseOrbitRule(c.SST.OrbitRule)
	opts := []schreier.Option{
		schreier.WithLeaderRule(lr),
		schreier.WithOrbitRule(or),
		schreier.WithLeaderType(c.leaderType()),
		schreier.WithMixedComponents(c.SST.MixedComponents),
	}
	if c.SST.UseConflicts && cg != nil {
		opts = append(opts, schreier.WithConflicts(cg))
	}
	return opts
}
