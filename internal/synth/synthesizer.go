// Package synth builds tables of synthetic records from declarative column specs.
package synth

import (
	"math/rand"
	"time"

	"github.com/leengari/tabsynth/internal/domain/data"
	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// Option customizes a Synthesize call
type Option func(*config)

type config struct {
	rng *rand.Rand
}

// WithRand draws every cell from rng. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("synth: WithRand(nil)")
	}
	return func(c *config) { c.rng = rng }
}

// WithSeed makes the synthesized content reproducible
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

func newConfig(opts ...Option) config {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return cfg
}

// Validate checks every column spec without generating anything
func Validate(columns []ColumnSpec) error {
	_, err := compileAll(columns)
	return err
}

func compileAll(columns []ColumnSpec) ([]Rule, error) {
	if len(columns) == 0 {
		return nil, errors.NewParamsError("columns", nil, "at least one column is required")
	}

	seen := make(map[string]int, len(columns))
	rules := make([]Rule, len(columns))
	for i, col := range columns {
		if prev, dup := seen[col.Name]; dup {
			return nil, errors.NewColumnError(i, col.Name, "name", prev, "duplicate column name")
		}
		seen[col.Name] = i

		rule, err := col.compile(i, len(columns))
		if err != nil {
			return nil, err
		}
		rules[i] = rule
	}
	return rules, nil
}

// Synthesize generates numRecords rows, filling each column independently with
// its rule, then inserts the leading Record column (0..numRecords-1).
func Synthesize(name string, numRecords int, columns []ColumnSpec, opts ...Option) (*schema.Table, error) {
	if numRecords <= 0 {
		return nil, errors.NewParamsError("records", numRecords, "number of records must be positive")
	}

	rules, err := compileAll(columns)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)

	names := make([]string, len(columns))
	for i, col := range columns {
		names[i] = col.Name
	}

	table := schema.NewTable(name, names)
	rows := make([]data.Row, numRecords)
	for i := range rows {
		rows[i] = data.NewRow(make(map[string]interface{}, len(columns)+1))
	}

	// Column-major, so each column's draws come from one contiguous stretch of the stream.
	for c, rule := range rules {
		for _, row := range rows {
			row.Set(names[c], rule.Generate(cfg.rng))
		}
	}

	table.Rows = rows
	table.Reindex()
	return table, nil
}
