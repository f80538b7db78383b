package synth_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/synth"
)

func TestDomainOf(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		kind  synth.DomainKind
		bound float64
		size  int
	}{
		{"int", 40, synth.DomainInteger, 40, 0},
		{"int64", int64(7), synth.DomainInteger, 7, 0},
		{"uint8", uint8(3), synth.DomainInteger, 3, 0},
		{"float64", 2.5, synth.DomainFloat, 2.5, 0},
		{"float32", float32(0.5), synth.DomainFloat, 0.5, 0},
		{"string slice", []string{"a", "b"}, synth.DomainCategorical, 0, 2},
		{"interface slice", []interface{}{"a", 1, 2.0}, synth.DomainCategorical, 0, 3},
		{"array", [2]int{1, 2}, synth.DomainCategorical, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := synth.DomainOf(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, d.Kind())
			assert.Equal(t, tt.bound, d.Bound())
			assert.Len(t, d.Members(), tt.size)
		})
	}
}

func TestDomainOfRejects(t *testing.T) {
	for _, v := range []interface{}{nil, "abc", true, map[string]int{}} {
		_, err := synth.DomainOf(v)
		assert.Error(t, err, "%T", v)
	}
}

func TestFromParams(t *testing.T) {
	specs, err := synth.FromParams(
		[]string{"computer", "display", "sound"},
		[]interface{}{[]string{"PC", "Laptop"}, []string{"Yes", "No"}, 40},
		[]int{-1, 0, 0},
		[][]float64{nil, {90, 10}, nil},
	)
	require.NoError(t, err)
	require.Len(t, specs, 3)

	assert.Equal(t, synth.Independent, specs[0].DependencyIndex)
	assert.Equal(t, 0, specs[1].DependencyIndex)
	assert.Equal(t, []float64{90, 10}, specs[1].Weights)
	assert.Equal(t, synth.DomainInteger, specs[2].Domain.Kind())
}

func TestFromParamsWithoutDependencies(t *testing.T) {
	specs, err := synth.FromParams(
		[]string{"a", "b"},
		[]interface{}{3, 1.5},
		nil, nil,
	)
	require.NoError(t, err)
	for _, s := range specs {
		assert.Equal(t, synth.Independent, s.DependencyIndex)
	}
}

func TestFromParamsRejects(t *testing.T) {
	tests := []struct {
		name        string
		columns     []string
		caseSet     []interface{}
		dependance  []int
		probability [][]float64
	}{
		{
			name:    "case set length",
			columns: []string{"a", "b"},
			caseSet: []interface{}{1},
		},
		{
			name:       "dependance length",
			columns:    []string{"a"},
			caseSet:    []interface{}{1},
			dependance: []int{-1, -1},
		},
		{
			name:        "probability length",
			columns:     []string{"a"},
			caseSet:     []interface{}{1},
			probability: [][]float64{nil, nil},
		},
		{
			name:    "unclassifiable case set",
			columns: []string{"a"},
			caseSet: []interface{}{"text"},
		},
		{
			name:        "weights mismatch",
			columns:     []string{"a", "b"},
			caseSet:     []interface{}{[]string{"x"}, []string{"y", "z"}},
			dependance:  []int{-1, 0},
			probability: [][]float64{nil, {1, 2, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := synth.FromParams(tt.columns, tt.caseSet, tt.dependance, tt.probability)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, errors.ErrInvalidSpecification))
		})
	}
}

func TestInts(t *testing.T) {
	got, err := synth.Ints([]interface{}{-1, int64(0), uint(2)})
	require.NoError(t, err)
	assert.Equal(t, []int{-1, 0, 2}, got)

	got, err = synth.Ints([]int32{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	got, err = synth.Ints(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = synth.Ints([]interface{}{1, "two"})
	assert.Error(t, err)

	_, err = synth.Ints(3)
	assert.Error(t, err)
}

func TestWeights(t *testing.T) {
	got, err := synth.Weights([]interface{}{nil, []int{90, 10}, []float64{0.5, 0.5}, []int(nil)})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{nil, {90, 10}, {0.5, 0.5}, nil}, got)

	_, err = synth.Weights([]interface{}{[]string{"a"}})
	assert.Error(t, err)

	_, err = synth.Weights([]interface{}{5})
	assert.Error(t, err)
}
