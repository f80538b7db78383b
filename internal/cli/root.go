// Package cli provides the command-line interface for tabsynth.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leengari/tabsynth/internal/config"
	"github.com/leengari/tabsynth/internal/logging"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabsynth",
		Short: "tabsynth - synthetic tabular datasets with train/test splits",
		Long: `tabsynth synthesizes tabular datasets from a declarative column recipe
(integer and float ranges, categorical values, weighted categorical values),
or loads an existing CSV, HTML, JSON or XLSX table, then splits it into
train and test sets and writes main, train and test files.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text|json)")
	rootCmd.PersistentFlags().String("seq-url", "", "Seq endpoint to ship logs to (e.g. http://localhost:5341)")

	_ = rootCmd.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"debug", "info", "warn", "error"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewSplitCommand())
	rootCmd.AddCommand(NewPreviewCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// setupLogging builds the command logger. Flags win over the recipe's log
// section; recipe may be nil.
func setupLogging(cmd *cobra.Command, recipe *config.Recipe) (*slog.Logger, func(), error) {
	opts := logging.Options{
		Level:  config.DefaultLogLevel,
		Format: config.DefaultLogFormat,
		Output: cmd.ErrOrStderr(),
	}
	if recipe != nil {
		opts.Level = recipe.Log.Level
		opts.Format = recipe.Log.Format
		opts.SeqURL = recipe.Log.SeqURL
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		opts.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		opts.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("seq-url") {
		opts.SeqURL, _ = flags.GetString("seq-url")
	}

	return logging.Setup(opts)
}
