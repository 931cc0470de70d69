// Package commands implements the datavis subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datavis/internal/cli/config"
	"github.com/leapstack-labs/datavis/internal/cli/output"
	"github.com/leapstack-labs/datavis/pkg/dataset"
	"github.com/leapstack-labs/datavis/pkg/source"

	// Register the built-in table sources.
	_ "github.com/leapstack-labs/datavis/pkg/sources/delimited"
	_ "github.com/leapstack-labs/datavis/pkg/sources/duckdb"
	_ "github.com/leapstack-labs/datavis/pkg/sources/postgres"
	_ "github.com/leapstack-labs/datavis/pkg/sources/sqlite"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat)),
	}
}

// getConfig returns the current configuration, or defaults when none was
// loaded (commands run directly in tests).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// sourceConfig returns the configured source, pointed at args[0] when a
// file argument is given. A file argument re-infers the source type unless
// --source-type was set.
func sourceConfig(cmd *cobra.Command, cfg *config.Config, args []string) (source.Config, error) {
	sc := cfg.Source
	if len(args) > 0 {
		sc.Path = args[0]
		if f := cmd.Flags().Lookup("source-type"); f == nil || !f.Changed {
			sc.Type = ""
		}
	}
	if sc.Type == "" && sc.Path == "" {
		return sc, fmt.Errorf("no input: pass a file, or set source.path or source.type in datavis.yaml")
	}
	return sc, nil
}

// loadDataset reads the configured table and loads it into a dataset. A
// table that cannot be classified still yields a dataset together with the
// error; a nil dataset means the table could not be read.
func (c *CommandContext) loadDataset(cmd *cobra.Command, args []string) (*dataset.Dataset, error) {
	sc, err := sourceConfig(cmd, c.Cfg, args)
	if err != nil {
		return nil, err
	}

	raw, err := source.ReadTable(cmd.Context(), sc, c.Logger)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("table read", "rows", len(raw), "source", sc.Type, "path", sc.Path)

	return dataset.Load(raw, c.Cfg.LoadOptions())
}

// addSourceFlags registers the flags that override the source section.
func addSourceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("source-type", "", "Source type ("+strings.Join(source.ListSources(), "|")+")")
	f.String("query", "", "Query to run against a database source")
	f.String("table", "", "Table to read from a database source")
	f.String("delimiter", "", "Field delimiter for delimited text")
	f.String("comment", "", "Comment character for delimited text")
	f.String("kind", "", "Force the dataset kind (auto|numerical|categorical)")
	f.String("label-x", "", "X axis title")
	f.String("label-y", "", "Y axis title")
	f.String("label-z", "", "Z axis title")

	_ = cmd.RegisterFlagCompletionFunc("source-type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return source.ListSources(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "numerical", "categorical"}, cobra.ShellCompDirectiveNoFileComp
	})
}
