// Package config reads dataset recipes from YAML files.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/synth"
)

const (
	DefaultSplit     = 0.2
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	EnvPrefix        = "TABSYNTH"
)

// Recipe describes one dataset run: what to synthesize (or load), how to split
// it and where to write the results
type Recipe struct {
	Name    string  `mapstructure:"name"`
	Records int     `mapstructure:"records"`
	Seed    int64   `mapstructure:"seed"`
	Source  string  `mapstructure:"source"`
	Split   float64 `mapstructure:"split"`
	Output  string  `mapstructure:"output"`
	SQLite  string  `mapstructure:"sqlite"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		SeqURL string `mapstructure:"seq_url"`
	} `mapstructure:"log"`

	Columns []ColumnConfig `mapstructure:"columns"`
}

// ColumnConfig is one column entry. Cases is a YAML integer (integer bound),
// float (float bound) or list (categorical values).
type ColumnConfig struct {
	Name      string      `mapstructure:"name"`
	Cases     interface{} `mapstructure:"cases"`
	DependsOn *int        `mapstructure:"depends_on"`
	Weights   []float64   `mapstructure:"weights"`
}

// Load reads the recipe at path. TABSYNTH_* environment variables override
// file values, with nested keys joined by "_" (TABSYNTH_LOG_LEVEL).
func Load(path string) (*Recipe, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("split", DefaultSplit)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.seq_url", "")
	v.SetDefault("output", "")
	v.SetDefault("sqlite", "")
	v.SetDefault("seed", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Recipe
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the recipe is either a load (source) or a synthesis (records + columns)
func (r *Recipe) Validate() error {
	if r.Name == "" {
		return errors.NewParamsError("name", nil, "recipe needs a name")
	}
	if r.Source != "" {
		if len(r.Columns) > 0 {
			return errors.NewParamsError("source", r.Source, "a recipe either loads a source or declares columns, not both")
		}
		return nil
	}
	if r.Records <= 0 {
		return errors.NewParamsError("records", r.Records, "number of records must be positive")
	}
	if len(r.Columns) == 0 {
		return errors.NewParamsError("columns", nil, "recipe declares no columns")
	}
	return nil
}

// ColumnSpecs converts the column entries into synthesizer specs
func (r *Recipe) ColumnSpecs() ([]synth.ColumnSpec, error) {
	names := make([]string, len(r.Columns))
	caseSet := make([]interface{}, len(r.Columns))
	dependance := make([]int, len(r.Columns))
	probability := make([][]float64, len(r.Columns))

	for i, col := range r.Columns {
		names[i] = col.Name
		caseSet[i] = col.Cases
		dependance[i] = synth.Independent
		if col.DependsOn != nil {
			dependance[i] = *col.DependsOn
		}
		probability[i] = col.Weights
	}

	return synth.FromParams(names, caseSet, dependance, probability)
}

// SynthOptions returns the synthesizer options implied by the recipe
func (r *Recipe) SynthOptions() []synth.Option {
	if r.Seed == 0 {
		return nil
	}
	return []synth.Option{synth.WithSeed(r.Seed)}
}
