// Package dataset owns one main table, synthesized or loaded, and the
// train/test views split from it.
package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/domain/schema"
	"github.com/leengari/tabsynth/internal/split"
	"github.com/leengari/tabsynth/internal/storage/loader"
	"github.com/leengari/tabsynth/internal/storage/sqlite"
	"github.com/leengari/tabsynth/internal/storage/writer"
	"github.com/leengari/tabsynth/internal/synth"
)

// Dataset holds a main table and, once split, its train and test tables.
// The main table is never modified after construction.
type Dataset struct {
	name      string
	runID     string
	main      *schema.Table
	split     *split.Result
	observers []Observer
	synthOpts []synth.Option
	logger    *slog.Logger
}

// Option configures a Dataset at construction
type Option func(*Dataset)

// WithObserver registers an observer before construction starts, so it also
// sees construction failures
func WithObserver(o Observer) Option {
	return func(d *Dataset) { d.observers = append(d.observers, o) }
}

// WithSynthOptions forwards options to the synthesizer
func WithSynthOptions(opts ...synth.Option) Option {
	return func(d *Dataset) { d.synthOpts = append(d.synthOpts, opts...) }
}

// WithLogger sets the logger handed to file readers
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dataset) { d.logger = logger }
}

func newDataset(name string, opts []Option) *Dataset {
	d := &Dataset{
		name:  name,
		runID: uuid.New().String(),
		main:  schema.NewTable(name, nil),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.New(slog.DiscardHandler)
	}
	return d
}

// fail leaves d empty and reports err to observers and the caller
func (d *Dataset) fail(err error) (*Dataset, error) {
	d.main = schema.NewTable(d.name, nil)
	d.split = nil
	d.notify(Event{Type: EventConstructFailed, Data: map[string]interface{}{"error": err.Error()}})
	return d, err
}

// New builds a dataset from a loose parameter list:
//
//	[name, path]                                              load a file
//	[name, *schema.Table]                                     wrap a table
//	[name, numRecords, columns, caseSet]                      synthesize
//	[name, numRecords, columns, caseSet, dependance, weights] synthesize with weights
//
// On error the returned Dataset is non-nil and empty.
func New(params []interface{}, opts ...Option) (*Dataset, error) {
	name := ""
	if len(params) > 0 {
		name = fmt.Sprint(params[0])
	}
	d := newDataset(name, opts)

	switch len(params) {
	case 2:
		switch src := params[1].(type) {
		case *schema.Table:
			return d.wrap(src)
		case string:
			return d.load(src)
		default:
			return d.fail(errors.NewParamsError("source", fmt.Sprintf("%T", params[1]),
				"source must be a file path or a table"))
		}

	case 4, 6:
		specs, records, err := specsFromParams(params)
		if err != nil {
			return d.fail(err)
		}
		return d.synthesize(records, specs)
	}

	return d.fail(errors.NewParamsError("params", len(params),
		"expected 2, 4 or 6 parameters: [name, source] or [name, numRecords, columns, caseSet(, dependance, probability)]"))
}

func specsFromParams(params []interface{}) ([]synth.ColumnSpec, int, error) {
	rv := reflect.ValueOf(params[1])
	var records int
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		records = int(rv.Int())
	default:
		return nil, 0, errors.NewParamsError("records", fmt.Sprintf("%T", params[1]), "number of records must be an integer")
	}

	columns, ok := params[2].([]string)
	if !ok {
		return nil, 0, errors.NewParamsError("columns", fmt.Sprintf("%T", params[2]), "columns must be a []string")
	}

	caseSet, ok := params[3].([]interface{})
	if !ok {
		return nil, 0, errors.NewParamsError("caseSet", fmt.Sprintf("%T", params[3]), "case sets must be a []interface{}")
	}

	var dependance []int
	var probability [][]float64
	if len(params) == 6 {
		var err error
		if dependance, err = synth.Ints(params[4]); err != nil {
			return nil, 0, errors.NewParamsError("dependance", nil, err.Error())
		}
		if probability, err = synth.Weights(params[5]); err != nil {
			return nil, 0, errors.NewParamsError("probability", nil, err.Error())
		}
	}

	specs, err := synth.FromParams(columns, caseSet, dependance, probability)
	if err != nil {
		return nil, 0, err
	}
	return specs, records, nil
}

// Synthesize builds a dataset of numRecords synthetic rows
func Synthesize(name string, numRecords int, columns []synth.ColumnSpec, opts ...Option) (*Dataset, error) {
	return newDataset(name, opts).synthesize(numRecords, columns)
}

// Load builds a dataset from a .csv, .html/.htm, .json or .xlsx file. The
// loaded table's Record column is rebuilt from row positions.
func Load(name, path string, opts ...Option) (*Dataset, error) {
	return newDataset(name, opts).load(path)
}

// FromTable builds a dataset around an existing table, used as is
func FromTable(name string, table *schema.Table, opts ...Option) (*Dataset, error) {
	return newDataset(name, opts).wrap(table)
}

func (d *Dataset) synthesize(numRecords int, columns []synth.ColumnSpec) (*Dataset, error) {
	table, err := synth.Synthesize(d.name, numRecords, columns, d.synthOpts...)
	if err != nil {
		return d.fail(err)
	}
	d.main = table
	d.notify(Event{Type: EventSynthesized, Data: map[string]interface{}{
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}})
	return d, nil
}

func (d *Dataset) load(path string) (*Dataset, error) {
	table, err := loader.Load(path, d.logger)
	if err != nil {
		return d.fail(err)
	}
	table.Name = d.name
	table.Reindex()
	d.main = table
	d.notify(Event{Type: EventLoaded, Data: map[string]interface{}{
		"path":    path,
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}})
	return d, nil
}

func (d *Dataset) wrap(table *schema.Table) (*Dataset, error) {
	if table == nil {
		return d.fail(errors.NewParamsError("source", nil, "table is nil"))
	}
	d.main = table
	d.notify(Event{Type: EventLoaded, Data: map[string]interface{}{
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}})
	return d, nil
}

// Name returns the dataset name used for default file names
func (d *Dataset) Name() string { return d.name }

// RunID returns the unique ID attached to this dataset's events
func (d *Dataset) RunID() string { return d.runID }

// Main returns the main table; empty if construction failed
func (d *Dataset) Main() *schema.Table { return d.main }

// Train returns the train table, nil before SplitTrainTest
func (d *Dataset) Train() *schema.Table {
	if d.split == nil {
		return nil
	}
	return d.split.Train
}

// Test returns the test table, nil before SplitTrainTest
func (d *Dataset) Test() *schema.Table {
	if d.split == nil {
		return nil
	}
	return d.split.Test
}

// GetData returns the main, train and test tables; train and test are nil
// until SplitTrainTest succeeds
func (d *Dataset) GetData() (main, train, test *schema.Table) {
	return d.main, d.Train(), d.Test()
}

// SplitResult returns the last split, including the source positions of
// train and test rows
func (d *Dataset) SplitResult() (split.Result, bool) {
	if d.split == nil {
		return split.Result{}, false
	}
	return *d.split, true
}

// SplitTrainTest draws the train set and its test complement, replacing any
// previous split. Fractions strictly between 1 and 100 are read as percentages.
func (d *Dataset) SplitTrainTest(fraction float64) error {
	res, err := split.TrainTest(d.main, fraction)
	if err != nil {
		return fmt.Errorf("split %s: %w", d.name, err)
	}
	d.split = &res
	d.notify(Event{Type: EventSplit, Data: map[string]interface{}{
		"fraction":   fraction,
		"train_rows": res.Train.Len(),
		"test_rows":  res.Test.Len(),
	}})
	return nil
}

// SaveMain writes the main table to path, or {name}_main_data.csv if path is empty
func (d *Dataset) SaveMain(path string) error {
	if path == "" {
		path = writer.StemNames(d.name).Main
	}
	return d.save("main", d.main, path)
}

// SaveTrain writes the train table to path, or {name}_train_data.csv if path is empty
func (d *Dataset) SaveTrain(path string) error {
	if d.split == nil {
		return fmt.Errorf("save train: %w", errors.ErrNotSplit)
	}
	if path == "" {
		path = writer.StemNames(d.name).Train
	}
	return d.save("train", d.split.Train, path)
}

// SaveTest writes the test table to path, or {name}_test_data.csv if path is empty
func (d *Dataset) SaveTest(path string) error {
	if d.split == nil {
		return fmt.Errorf("save test: %w", errors.ErrNotSplit)
	}
	if path == "" {
		path = writer.StemNames(d.name).Test
	}
	return d.save("test", d.split.Test, path)
}

// SaveAll writes all three tables as {base}_main_data.csv, {base}_train_data.csv
// and {base}_test_data.csv. base defaults to the dataset name; an extension on
// an explicit base is dropped. Nothing is written before a split.
func (d *Dataset) SaveAll(base string) (writer.Names, error) {
	if d.split == nil {
		return writer.Names{}, fmt.Errorf("save all: %w", errors.ErrNotSplit)
	}

	names := writer.StemNames(d.name)
	if base != "" {
		names = writer.FileNames(base)
	}

	if err := d.SaveMain(names.Main); err != nil {
		return names, err
	}
	if err := d.SaveTrain(names.Train); err != nil {
		return names, err
	}
	if err := d.SaveTest(names.Test); err != nil {
		return names, err
	}
	return names, nil
}

func (d *Dataset) save(view string, t *schema.Table, path string) error {
	if err := writer.Save(t, path); err != nil {
		return fmt.Errorf("save %s: %w", view, err)
	}
	d.notify(Event{Type: EventSaved, Data: map[string]interface{}{
		"view": view,
		"path": path,
		"rows": t.Len(),
	}})
	return nil
}

// ExportSQLite writes the main table, and train/test when present, as tables
// "main", "train" and "test" of the SQLite database at path
func (d *Dataset) ExportSQLite(ctx context.Context, path string) error {
	tables := map[string]*schema.Table{"main": d.main}
	if d.split != nil {
		tables["train"] = d.split.Train
		tables["test"] = d.split.Test
	}
	if err := sqlite.Export(ctx, path, tables); err != nil {
		return fmt.Errorf("export %s: %w", d.name, err)
	}
	d.notify(Event{Type: EventExported, Data: map[string]interface{}{
		"path":   path,
		"tables": len(tables),
	}})
	return nil
}

// AddObserver registers an observer to receive lifecycle events
func (d *Dataset) AddObserver(observer Observer) {
	d.observers = append(d.observers, observer)
}

// RemoveObserver unregisters an observer
func (d *Dataset) RemoveObserver(observer Observer) {
	for i, o := range d.observers {
		if o == observer {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (d *Dataset) notify(event Event) {
	event.RunID = d.runID
	event.Dataset = d.name
	event.Timestamp = time.Now()
	for _, observer := range d.observers {
		observer.OnEvent(event)
	}
}
