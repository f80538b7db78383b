// Package split partitions a table into a seeded train sample and its test complement.
package split

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/domain/schema"
)

// SampleSeed seeds every train draw so the same table and fraction always
// select the same rows
const SampleSeed int64 = 1

// ReturnedBlank fills the returned marker column of every test row
const ReturnedBlank = " "

// Result holds both halves of a split.
//
// TrainIndex and TestIndex list, for each row of Train and Test, the position
// of its source row in the input table. Train keeps those positions in its
// Record column; Test has its Record column renumbered 0..len(Test)-1.
type Result struct {
	Train      *schema.Table
	Test       *schema.Table
	TrainIndex []int
	TestIndex  []int
}

// NormalizeFraction reads values strictly between 1 and 100 as percentages.
// Everything else is returned unchanged.
func NormalizeFraction(fraction float64) float64 {
	if fraction > 1 && fraction < 100 {
		return fraction / 100
	}
	return fraction
}

// SampleSize is the number of train rows drawn for a table of rows rows
func SampleSize(fraction float64, rows int) int {
	return int(math.RoundToEven(fraction * float64(rows)))
}

// TrainTest draws round(fraction*rows) rows without replacement as the train
// set and returns every complete row outside it as the test set. The input
// table is not modified.
func TrainTest(table *schema.Table, fraction float64) (Result, error) {
	if math.IsNaN(fraction) || fraction <= 0 {
		return Result{}, fmt.Errorf("%w: %v must be > 0", errors.ErrInvalidFraction, fraction)
	}
	effective := NormalizeFraction(fraction)
	if effective > 1 {
		return Result{}, fmt.Errorf("%w: %v selects more rows than the table holds", errors.ErrInvalidFraction, fraction)
	}

	rows := table.Len()
	if rows == 0 {
		return Result{}, fmt.Errorf("%w: table %q has no rows", errors.ErrEmptySplit, table.Name)
	}
	k := SampleSize(effective, rows)
	if k == 0 {
		return Result{}, fmt.Errorf("%w: fraction %v of %d rows selects none", errors.ErrEmptySplit, fraction, rows)
	}

	trainIdx := sample(rows, k)
	train := table.Subset(table.Name+"_train", trainIdx)

	testIdx := complement(table, train)
	test := table.Subset(table.Name+"_test", testIdx)
	test.AddColumn(schema.ReturnedColumn, ReturnedBlank)
	test.Reindex()

	return Result{
		Train:      train,
		Test:       test,
		TrainIndex: trainIdx,
		TestIndex:  testIdx,
	}, nil
}

// sample picks k distinct positions out of n with the fixed seed and returns
// them in ascending order
func sample(n, k int) []int {
	rng := rand.New(rand.NewSource(SampleSeed))
	picked := rng.Perm(n)[:k]
	sort.Ints(picked)
	return picked
}

// complement returns the positions of rows in table whose content matches no
// train row, skipping rows with a missing value
func complement(table, train *schema.Table) []int {
	table.RLock()
	defer table.RUnlock()

	columns := table.Columns
	inTrain := make(map[string]struct{}, len(train.Rows))
	for _, row := range train.Rows {
		inTrain[row.Key(columns)] = struct{}{}
	}

	positions := make([]int, 0, len(table.Rows)-len(train.Rows))
	for i, row := range table.Rows {
		if !row.IsComplete(columns) {
			continue
		}
		if _, found := inTrain[row.Key(columns)]; found {
			continue
		}
		positions = append(positions, i)
	}
	return positions
}
