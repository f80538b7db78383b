package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/tabsynth/internal/domain/errors"
	"github.com/leengari/tabsynth/internal/synth"
)

func writeRecipe(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const workshopRecipe = `
name: workshop
records: 50
seed: 7
columns:
  - name: computer
    cases: [PC, Laptop]
  - name: display
    cases: ["Yes", "No"]
    depends_on: 0
    weights: [90, 10]
  - name: sound
    cases: 40
  - name: price
    cases: 2.5
`

func TestLoadRecipe(t *testing.T) {
	recipe, err := Load(writeRecipe(t, workshopRecipe))
	require.NoError(t, err)

	assert.Equal(t, "workshop", recipe.Name)
	assert.Equal(t, 50, recipe.Records)
	assert.Equal(t, int64(7), recipe.Seed)
	assert.Equal(t, DefaultSplit, recipe.Split)
	assert.Equal(t, DefaultLogLevel, recipe.Log.Level)
	assert.Equal(t, DefaultLogFormat, recipe.Log.Format)
	require.Len(t, recipe.Columns, 4)
	require.NotNil(t, recipe.Columns[1].DependsOn)
	assert.Equal(t, 0, *recipe.Columns[1].DependsOn)
	assert.Equal(t, []float64{90, 10}, recipe.Columns[1].Weights)
	assert.Len(t, recipe.SynthOptions(), 1)
}

func TestColumnSpecs(t *testing.T) {
	recipe, err := Load(writeRecipe(t, workshopRecipe))
	require.NoError(t, err)

	specs, err := recipe.ColumnSpecs()
	require.NoError(t, err)
	require.Len(t, specs, 4)

	assert.Equal(t, synth.DomainCategorical, specs[0].Domain.Kind())
	assert.Equal(t, synth.Independent, specs[0].DependencyIndex)
	assert.Equal(t, 0, specs[1].DependencyIndex)
	assert.Equal(t, []float64{90, 10}, specs[1].Weights)
	assert.Equal(t, synth.DomainInteger, specs[2].Domain.Kind())
	assert.Equal(t, synth.DomainFloat, specs[3].Domain.Kind())
	assert.Equal(t, 2.5, specs[3].Domain.Bound())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TABSYNTH_SPLIT", "0.3")
	t.Setenv("TABSYNTH_LOG_LEVEL", "debug")

	recipe, err := Load(writeRecipe(t, workshopRecipe))
	require.NoError(t, err)
	assert.Equal(t, 0.3, recipe.Split)
	assert.Equal(t, "debug", recipe.Log.Level)
}

func TestSourceRecipe(t *testing.T) {
	recipe, err := Load(writeRecipe(t, "name: inv\nsource: inv.csv\nsplit: 10\n"))
	require.NoError(t, err)
	assert.Equal(t, "inv.csv", recipe.Source)
	assert.Equal(t, 10.0, recipe.Split)
	assert.Nil(t, recipe.SynthOptions())
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"no name", "records: 5\ncolumns:\n  - name: a\n    cases: 3\n", "name"},
		{"source and columns", "name: x\nsource: a.csv\ncolumns:\n  - name: a\n    cases: 3\n", "source"},
		{"no records", "name: x\ncolumns:\n  - name: a\n    cases: 3\n", "records"},
		{"no columns", "name: x\nrecords: 5\n", "columns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeRecipe(t, tt.content))
			require.Error(t, err)

			var specErr *errors.SpecError
			require.True(t, stderrors.As(err, &specErr), "got %v", err)
			assert.Equal(t, tt.field, specErr.Field)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestColumnSpecsRejectsBadCases(t *testing.T) {
	recipe, err := Load(writeRecipe(t, "name: x\nrecords: 5\ncolumns:\n  - name: a\n    cases: text\n"))
	require.NoError(t, err)

	_, err = recipe.ColumnSpecs()
	assert.True(t, stderrors.Is(err, errors.ErrInvalidSpecification), "got %v", err)
}
