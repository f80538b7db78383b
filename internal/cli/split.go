package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leengari/tabsynth/internal/config"
	"github.com/leengari/tabsynth/internal/dataset"
)

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	var (
		input      string
		name       string
		output     string
		sqlitePath string
		fraction   float64
		previewN   int
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split an existing CSV, HTML, JSON or XLSX table into train and test sets",
		Example: `  # Load workshop_main_data.csv, draw 10% as train and write workshop_*_data.csv
  tabsynth split --input workshop_main_data.csv --name workshop --fraction 10`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, closeFn, err := setupLogging(cmd, nil)
			if err != nil {
				return err
			}
			defer closeFn()

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
			}

			ds, err := dataset.Load(name, input,
				dataset.WithLogger(logger),
				dataset.WithObserver(dataset.NewLoggingObserver(logger)),
			)
			if err != nil {
				return err
			}
			return finish(cmd, ds, fraction, output, sqlitePath, previewN)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Table file to load (.csv, .html, .htm, .json, .xlsx)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Dataset name for default output files (default: input base name)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Base path for the output files (default: dataset name)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also export main/train/test into this SQLite file")
	cmd.Flags().Float64VarP(&fraction, "fraction", "f", config.DefaultSplit, "Train fraction (values in (1,100) are percentages)")
	cmd.Flags().IntVar(&previewN, "preview", 0, "Print the first N rows of each table")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
