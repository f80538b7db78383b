package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leengari/tabsynth/internal/domain/schema"
)

// AssertRecordSequence checks Record is the first column and holds 0..n-1
func AssertRecordSequence(t *testing.T, table *schema.Table) {
	t.Helper()
	require.NotEmpty(t, table.Columns, "table has no columns")
	require.Equal(t, schema.RecordColumn, table.Columns[0], "Record must lead the columns")
	for i, row := range table.Rows {
		require.Equal(t, int64(i), row.Data[schema.RecordColumn], "Record of row %d", i)
	}
}

// ContentCounts counts rows by their content over every column except the
// skipped ones, so row multisets can be compared
func ContentCounts(table *schema.Table, skip ...string) map[string]int {
	columns := make([]string, 0, len(table.Columns))
	for _, col := range table.Columns {
		skipped := false
		for _, s := range skip {
			if col == s {
				skipped = true
				break
			}
		}
		if !skipped {
			columns = append(columns, col)
		}
	}

	counts := make(map[string]int, len(table.Rows))
	for _, row := range table.Rows {
		counts[row.Key(columns)]++
	}
	return counts
}
