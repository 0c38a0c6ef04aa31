package mcp

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rendis/workflow-runner/internal/logging"
	"github.com/rendis/workflow-runner/pkg/runner"
)

// ServerDeps holds the dependencies for creating a Server.
type ServerDeps struct {
	// Backend answers every tool call. Usually the fixture caller.
	Backend runner.Caller
	Logger  *slog.Logger
	Version string
}

// Server exposes a runner.Caller as an MCP server with the three workflow
// tools: list_workflows, run_graph_workflow and query_trace.
type Server struct {
	backend   runner.Caller
	logger    *slog.Logger
	mcpServer *server.MCPServer
	http      *server.StreamableHTTPServer
}

// NewServer creates a new Server with all 3 tools registered.
func NewServer(deps ServerDeps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(logging.NewCorrelationHandler(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		backend: deps.Backend,
		logger:  logger,
	}

	mcpSrv := server.NewMCPServer(
		"workflow-runner",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Workflow orchestration test surface. Use list_workflows to list templates, run_graph_workflow with workflow \"list\" to enumerate graph workflows or with a workflow name to execute it, and query_trace to read the events of a past run."),
	)

	mcpSrv.AddTools(s.tools()...)
	s.mcpServer = mcpSrv
	s.http = server.NewStreamableHTTPServer(mcpSrv)
	return s
}

// Serve starts the stdio transport and blocks until ctx is cancelled or stdin closes.
func (s *Server) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// ListenHTTP starts the streamable HTTP transport on addr and blocks until
// Shutdown is called.
func (s *Server) ListenHTTP(addr string) error {
	s.logger.Info("mcp http server listening", "addr", addr)
	return s.http.Start(addr)
}

// Shutdown stops the HTTP transport, if running.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// HTTPHandler returns the streamable HTTP endpoint as an http.Handler, for
// mounting on an existing mux.
func (s *Server) HTTPHandler() http.Handler {
	return s.http
}

// MCPServer returns the underlying MCPServer for testing or custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}
