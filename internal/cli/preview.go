package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leengari/tabsynth/internal/config"
	"github.com/leengari/tabsynth/internal/dataset"
	"github.com/leengari/tabsynth/internal/render"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	var (
		configPath string
		input      string
		view       string
		fraction   float64
		rows       int
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print a recipe's or a file's table without writing anything",
		Example: `  # First 10 synthesized rows of a recipe
  tabsynth preview --config workshop.yaml

  # Test view of an existing file split at 20%
  tabsynth preview --input workshop_main_data.csv --view test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (configPath == "") == (input == "") {
				return fmt.Errorf("exactly one of --config or --input is required")
			}

			var recipe *config.Recipe
			if configPath != "" {
				var err error
				if recipe, err = config.Load(configPath); err != nil {
					return err
				}
			}

			logger, closeFn, err := setupLogging(cmd, recipe)
			if err != nil {
				return err
			}
			defer closeFn()

			var ds *dataset.Dataset
			if recipe != nil {
				ds, err = buildFromRecipe(recipe, logger)
			} else {
				ds, err = dataset.Load(input, input, dataset.WithLogger(logger))
			}
			if err != nil {
				return err
			}

			switch view {
			case "main":
				return render.Table(cmd.OutOrStdout(), ds.Main(), rows)
			case "train", "test":
				if err := ds.SplitTrainTest(fraction); err != nil {
					return err
				}
				if view == "train" {
					return render.Table(cmd.OutOrStdout(), ds.Train(), rows)
				}
				return render.Table(cmd.OutOrStdout(), ds.Test(), rows)
			}
			return fmt.Errorf("unknown view %q (main|train|test)", view)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the YAML recipe")
	cmd.Flags().StringVarP(&input, "input", "i", "", "Table file to load")
	cmd.Flags().StringVar(&view, "view", "main", "Table to print (main|train|test)")
	cmd.Flags().Float64VarP(&fraction, "fraction", "f", config.DefaultSplit, "Train fraction for the train/test views")
	cmd.Flags().IntVarP(&rows, "rows", "r", 10, "Maximum rows to print (0 prints all)")

	return cmd
}
