package split_test

import (
	stderrors "errors"
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/domain/schema"
	"github.com/leengari/tabsynth/internal/split"
	"github.com/leengari/tabsynth/internal/synth"
	"github.com/leengari/tabsynth/internal/testutil"
)

// distinctTable has n rows that all differ in the id column
func distinctTable(n int) *schema.Table {
	rows := make([][]interface{}, n)
	for i := range rows {
		rows[i] = []interface{}{fmt.Sprintf("id-%03d", i), float64(i % 7)}
	}
	table := testutil.NewTable("distinct", []string{"id", "score"}, rows...)
	table.Reindex()
	return table
}

func TestNormalizeFraction(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.2, 0.2},
		{1, 1},
		{10, 0.1},
		{99.5, 0.995},
		{100, 100},
		{250, 250},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, split.NormalizeFraction(tt.in), "NormalizeFraction(%v)", tt.in)
	}
}

func TestSampleSizeRoundsHalfToEven(t *testing.T) {
	assert.Equal(t, 10, split.SampleSize(0.2, 50))
	assert.Equal(t, 2, split.SampleSize(0.5, 5))
	assert.Equal(t, 4, split.SampleSize(0.5, 9))
	assert.Equal(t, 0, split.SampleSize(0.01, 10))
}

func TestTrainTestSizes(t *testing.T) {
	table := distinctTable(testutil.WorkshopRecords)

	res, err := split.TrainTest(table, 0.2)
	require.NoError(t, err)

	assert.Equal(t, 10, res.Train.Len())
	assert.Equal(t, 40, res.Test.Len())
	assert.Len(t, res.TrainIndex, 10)
	assert.Len(t, res.TestIndex, 40)
	assert.Equal(t, "distinct_train", res.Train.Name)
	assert.Equal(t, "distinct_test", res.Test.Name)
	assert.Equal(t, testutil.WorkshopRecords, table.Len(), "input table must not change")
}

func TestTrainKeepsSourceRecords(t *testing.T) {
	table := distinctTable(30)

	res, err := split.TrainTest(table, 0.3)
	require.NoError(t, err)

	assert.True(t, sort.IntsAreSorted(res.TrainIndex))
	assert.Equal(t, table.Columns, res.Train.Columns)
	for i, row := range res.Train.Rows {
		assert.Equal(t, int64(res.TrainIndex[i]), row.Data[schema.RecordColumn])
		assert.Equal(t, table.Rows[res.TrainIndex[i]].Data["id"], row.Data["id"])
	}
}

func TestTestIsReindexedAndMarked(t *testing.T) {
	table := distinctTable(30)

	res, err := split.TrainTest(table, 0.3)
	require.NoError(t, err)

	testutil.AssertRecordSequence(t, res.Test)
	assert.Equal(t, schema.ReturnedColumn, res.Test.Columns[len(res.Test.Columns)-1])
	for _, v := range res.Test.Column(schema.ReturnedColumn) {
		assert.Equal(t, split.ReturnedBlank, v)
	}
	for i, row := range res.Test.Rows {
		assert.Equal(t, table.Rows[res.TestIndex[i]].Data["id"], row.Data["id"])
	}
	assert.False(t, res.Train.HasColumn(schema.ReturnedColumn))
}

func TestSplitIsDisjointAndCovering(t *testing.T) {
	table := distinctTable(41)

	res, err := split.TrainTest(table, 0.25)
	require.NoError(t, err)

	seen := make(map[int]bool)
	for _, i := range res.TrainIndex {
		seen[i] = true
	}
	for _, i := range res.TestIndex {
		assert.False(t, seen[i], "position %d is in both halves", i)
		seen[i] = true
	}
	assert.Len(t, seen, table.Len())
}

func TestSplitPreservesRowMultiset(t *testing.T) {
	table, err := synth.Synthesize("workshop", testutil.WorkshopRecords, testutil.WorkshopColumns(), synth.WithSeed(2024))
	require.NoError(t, err)

	res, err := split.TrainTest(table, 0.2)
	require.NoError(t, err)

	skip := []string{schema.RecordColumn, schema.ReturnedColumn}
	trainKeys := testutil.ContentCounts(res.Train)

	// Rows identical to a train row are dropped from test along with it.
	expected := make(map[string]int)
	for _, row := range table.Rows {
		if trainKeys[row.Key(table.Columns)] > 0 {
			continue
		}
		expected[row.Key(trimmed(table.Columns, skip))]++
	}
	assert.Equal(t, expected, testutil.ContentCounts(res.Test, skip...))
	assert.Equal(t, 10, res.Train.Len())
	assert.LessOrEqual(t, res.Test.Len(), 40)
}

func trimmed(columns, skip []string) []string {
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		keep := true
		for _, s := range skip {
			if c == s {
				keep = false
			}
		}
		if keep {
			out = append(out, c)
		}
	}
	return out
}

func TestSplitIsDeterministic(t *testing.T) {
	table := distinctTable(50)

	a, err := split.TrainTest(table, 0.2)
	require.NoError(t, err)
	b, err := split.TrainTest(table, 0.2)
	require.NoError(t, err)
	c, err := split.TrainTest(table, 20)
	require.NoError(t, err)

	assert.Equal(t, a.TrainIndex, b.TrainIndex)
	assert.Equal(t, a.TrainIndex, c.TrainIndex, "20 and 0.2 select the same rows")
	assert.Equal(t, a.TestIndex, c.TestIndex)
}

func TestSplitDropsIncompleteRows(t *testing.T) {
	rows := make([][]interface{}, 20)
	for i := range rows {
		rows[i] = []interface{}{fmt.Sprintf("r%02d", i), float64(i)}
	}
	rows[3][1] = nil
	rows[7][1] = math.NaN()
	rows[12][0] = nil
	table := testutil.NewTable("gaps", []string{"id", "v"}, rows...)
	table.Reindex()

	res, err := split.TrainTest(table, 0.25)
	require.NoError(t, err)

	inTrain := make(map[int]bool)
	for _, i := range res.TrainIndex {
		inTrain[i] = true
	}
	expected := 0
	for i := range rows {
		if inTrain[i] || i == 3 || i == 7 || i == 12 {
			continue
		}
		expected++
	}

	assert.Equal(t, 5, res.Train.Len())
	assert.Equal(t, expected, res.Test.Len())
	for _, i := range res.TestIndex {
		assert.NotContains(t, []int{3, 7, 12}, i)
	}
}

func TestTrainTestErrors(t *testing.T) {
	tests := []struct {
		name     string
		table    *schema.Table
		fraction float64
		want     error
	}{
		{"zero fraction", distinctTable(10), 0, errors.ErrInvalidFraction},
		{"negative fraction", distinctTable(10), -0.5, errors.ErrInvalidFraction},
		{"NaN fraction", distinctTable(10), math.NaN(), errors.ErrInvalidFraction},
		{"hundred", distinctTable(10), 100, errors.ErrInvalidFraction},
		{"empty table", schema.NewTable("empty", []string{"a"}), 0.5, errors.ErrEmptySplit},
		{"rounds to zero", distinctTable(10), 0.01, errors.ErrEmptySplit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := split.TrainTest(tt.table, tt.fraction)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestWholeTableAsTrain(t *testing.T) {
	table := distinctTable(8)

	res, err := split.TrainTest(table, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, res.Train.Len())
	assert.Equal(t, 0, res.Test.Len())
	assert.Equal(t, []string{schema.RecordColumn, "id", "score", schema.ReturnedColumn}, res.Test.Columns)
}
