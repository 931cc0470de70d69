package commands

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/datavis/internal/cli/config"
	"github.com/leapstack-labs/datavis/internal/server"
	"github.com/leapstack-labs/datavis/internal/state"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve chart layouts over HTTP",
		Long: `Start an HTTP server that hands out chart layouts for the current dataset.

The dataset is read from the file argument or the source section of
datavis.yaml, and reloaded whenever the file changes (disable with
--watch=false). Without a source the server starts empty; upload a table with
PUT /dataset.

With --archive, finished layouts are kept in a SQLite file and can be fetched
again by ID.

Endpoints:
  GET  /healthz             liveness and dataset version
  GET  /dataset             dataset summary and supported chart kinds
  PUT  /dataset             load a table: {"rows": [[...]], "kind": "auto"}
  POST /layout/{kind}       chart layout; the body overrides chart options
  GET  /layouts             archived layouts, newest first (?kind=&limit=)
  GET  /layouts/{id}        one archived layout
  POST /schedule/columns    shape-key schedule over the animation tail
  POST /schedule/tween      two-key parameter tween
  GET  /events              datastar SSE stream of dataset changes`,
		Example: `  # Serve a CSV file on the default address
  datavis serve sales.csv

  # Serve a query result on all interfaces
  datavis serve --source-type postgres --query "SELECT city, total FROM sales" --addr :8765

  # Keep the last 100 layouts
  datavis serve sales.csv --archive layouts.db`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx := NewCommandContext(cmd)
			cfg := cmdCtx.Cfg

			srcCfg := cfg.Source
			if len(args) > 0 || srcCfg.Type != "" || srcCfg.Path != "" {
				var err error
				if srcCfg, err = sourceConfig(cmd, cfg, args); err != nil {
					return err
				}
			}

			var archive server.Archive
			if path := cfg.Server.Archive; path != "" {
				store := state.NewSQLiteStore()
				if err := store.Open(path); err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				if err := store.Migrate(); err != nil {
					return err
				}
				cmdCtx.Logger.Debug("layout archive opened", "path", path)
				archive = store
			}

			srv := server.New(server.Config{
				Addr:        cfg.Server.Addr,
				Source:      srcCfg,
				LoadOptions: cfg.LoadOptions(),
				Requests: func(kind layout.ChartKind) (layout.Request, error) {
					return cfg.Request(kind)
				},
				Watch:           cfg.Server.Watch,
				ShutdownTimeout: cfg.Server.ShutdownTimeout,
				Archive:         archive,
				ArchiveKeep:     cfg.Server.ArchiveKeep,
				Logger:          cmdCtx.Logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cmdCtx.Renderer.Muted("Serving on http://" + cfg.Server.Addr + " (Ctrl+C to stop)")
			return srv.Serve(ctx)
		},
	}

	addSourceFlags(cmd)
	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	cmd.Flags().Bool("watch", true, "Reload the dataset when the source file changes")
	cmd.Flags().String("archive", "", "SQLite file to archive finished layouts in")
	cmd.Flags().Int("archive-keep", config.DefaultArchiveKeep, "Number of archived layouts to keep (0 keeps all)")
	return cmd
}
