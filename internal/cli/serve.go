package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/siftdb/sift/internal/ingest"
	"github.com/siftdb/sift/internal/row"
	"github.com/siftdb/sift/internal/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	ConfigPath string
	Addr       string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the query planner HTTP API",
		Long: `Start the HTTP API server.

The server answers POST /run_query with the per-stage pipeline output
and GET /health with a liveness check. Tables listed in the config file
are preloaded from CSV into the in-memory catalog at startup.

Example:
  sift serve --config config.yaml
  sift serve --addr :9090`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(opts *ServeOptions) error {
	cfg := server.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := server.LoadConfig(opts.ConfigPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}

	base, err := preloadTables(cfg.Tables)
	if err != nil {
		return WrapExitError(ExitCommandError, "preload tables", err)
	}

	srv := server.New(cfg, base)
	slog.Info("server starting", "addr", cfg.Addr, "preloaded_tables", len(base))
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		return WrapExitError(ExitCommandError, "serve", err)
	}
	return nil
}

// preloadTables loads each configured CSV file into one shared catalog.
func preloadTables(tables map[string]string) (row.Catalog, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	base := make(row.Catalog, len(tables))
	for name, path := range tables {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read table %q: %w", name, err)
		}
		catalog, err := ingest.ParseCatalog(string(data), name)
		if err != nil {
			return nil, fmt.Errorf("parse table %q: %w", name, err)
		}
		canonical := row.CanonicalName(name)
		base[canonical] = catalog[canonical]
		slog.Info("table preloaded", "table", canonical, "rows", len(base[canonical]))
	}
	return base, nil
}
