package schema

import (
	"slices"
	"sync"

	"github.com/leengari/tabsynth/internal/domain/data"
)

const (
	// RecordColumn is the explicit leading column holding a row's position
	RecordColumn = "Record"

	// ReturnedColumn is the marker column appended to test tables
	ReturnedColumn = "returned"
)

// Table represents an ordered set of columns and the rows that fill them
type Table struct {
	mu      sync.RWMutex
	Name    string
	Columns []string
	Rows    []data.Row
}

// NewTable creates an empty table with the given column order
func NewTable(name string, columns []string) *Table {
	return &Table{
		Name:    name,
		Columns: slices.Clone(columns),
		Rows:    []data.Row{},
	}
}

// RLock acquires a read lock on the table for read operations
func (t *Table) RLock() {
	t.mu.RLock()
}

// RUnlock releases the read lock
func (t *Table) RUnlock() {
	t.mu.RUnlock()
}

// Len returns the number of rows; a nil table has none
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns
func (t *Table) HasColumn(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Contains(t.Columns, name)
}

// Append adds a row; columns it carries that the table does not know are ignored on save
func (t *Table) Append(row data.Row) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Rows = append(t.Rows, row)
}

// AddColumn appends a column and sets it to value on every row.
// An existing column of the same name is overwritten in place.
func (t *Table) AddColumn(name string, value interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !slices.Contains(t.Columns, name) {
		t.Columns = append(t.Columns, name)
	}
	for _, row := range t.Rows {
		row.Set(name, value)
	}
}

// Column returns the values of one column in row order
func (t *Table) Column(name string) []interface{} {
	t.mu.RLock()
	defer t.mu.RUnlock()

	values := make([]interface{}, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row.Data[name]
	}
	return values
}

// Reindex moves the Record column to the front and fills it with each row's
// 0-based position. Running it again yields the same table.
func (t *Table) Reindex() {
	t.mu.Lock()
	defer t.mu.Unlock()

	columns := make([]string, 0, len(t.Columns)+1)
	columns = append(columns, RecordColumn)
	for _, col := range t.Columns {
		if col != RecordColumn {
			columns = append(columns, col)
		}
	}
	t.Columns = columns

	for i, row := range t.Rows {
		row.Set(RecordColumn, int64(i))
	}
}

// Clone returns a deep copy of the table so the copy can be reshaped freely
func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]data.Row, len(t.Rows))
	for i, row := range t.Rows {
		rows[i] = row.Copy()
	}
	return &Table{
		Name:    t.Name,
		Columns: slices.Clone(t.Columns),
		Rows:    rows,
	}
}

// Subset returns a new table holding copies of the rows at the given positions,
// in the order given
func (t *Table) Subset(name string, positions []int) *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]data.Row, 0, len(positions))
	for _, pos := range positions {
		rows = append(rows, t.Rows[pos].Copy())
	}
	return &Table{
		Name:    name,
		Columns: slices.Clone(t.Columns),
		Rows:    rows,
	}
}
