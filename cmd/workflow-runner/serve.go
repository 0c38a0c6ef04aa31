package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rendis/workflow-runner/internal/fixtures"
	"github.com/rendis/workflow-runner/internal/logging"
	"github.com/rendis/workflow-runner/pkg/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(cfg *Config) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the fixture workflow tools as an MCP server",
		Long: "serve answers list_workflows, run_graph_workflow and query_trace from the built-in fixtures. " +
			"It speaks stdio by default, or streamable HTTP when --http is set.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

			srv := mcp.NewServer(mcp.ServerDeps{
				Backend: fixtures.NewCaller(),
				Logger:  logger,
				Version: version,
			})

			if addr == "" {
				logger.Info("mcp stdio server starting")
				return srv.Serve(ctx)
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenHTTP(addr) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("mcp http server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "http", "", "serve streamable HTTP on this address (e.g. :8080) instead of stdio")
	return cmd
}
