package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/rendis/workflow-runner/internal/fixtures"
	"github.com/rendis/workflow-runner/internal/logging"
	"github.com/rendis/workflow-runner/pkg/contract"
	"github.com/rendis/workflow-runner/pkg/mcp"
	"github.com/rendis/workflow-runner/pkg/report"
	"github.com/rendis/workflow-runner/pkg/runner"
	"github.com/spf13/cobra"
)

type runOptions struct {
	format         string
	inputsFile     string
	traceRunID     string
	traceEventType string
	traceLimit     int
	selectExpr     string
	skipGraph      bool
	auditTrail     bool
	query          string
	out            string
	strict         bool
	live           bool
}

func newRunCmd(cfg *Config) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the workflow pipeline and print a report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("live") {
				opts.live = cfg.Live
			}
			if !cmd.Flags().Changed("format") {
				opts.format = cfg.Format
			}
			return runPipeline(cmd, *cfg, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "f", cfg.Format, "report format (markdown, json, text)")
	f.StringVarP(&opts.inputsFile, "inputs", "i", "", "YAML or JSON run configuration file")
	f.StringVar(&opts.traceRunID, "trace-run-id", "", "query the trace of this run id")
	f.StringVar(&opts.traceEventType, "trace-event-type", "", "only fetch trace events of this type")
	f.IntVar(&opts.traceLimit, "trace-limit", 0, "maximum number of trace events (1-500)")
	f.StringVar(&opts.selectExpr, "select", "", `only execute matching workflows ("expr:", "cel:" or "jq:" expression)`)
	f.BoolVar(&opts.skipGraph, "skip-graph", false, "discover graph workflows without executing them")
	f.BoolVar(&opts.auditTrail, "audit-trail", false, "request an audit trail for every execution")
	f.StringVarP(&opts.query, "query", "q", "", "jq program applied to the JSON report")
	f.StringVarP(&opts.out, "out", "o", "", "write the report to this file instead of stdout")
	f.BoolVar(&opts.strict, "strict", false, "exit non-zero when any workflow did not complete")
	f.BoolVar(&opts.live, "live", false, "call a live MCP server instead of the fixtures")
	return cmd
}

func runPipeline(cmd *cobra.Command, cfg Config, opts runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	runCfg, err := buildRunConfig(cmd, opts)
	if err != nil {
		return err
	}

	caller, closeCaller, err := newCaller(ctx, cfg, opts.live, logger)
	if err != nil {
		return err
	}
	defer closeCaller()

	p, err := runner.NewPipeline(runner.PipelineDeps{Caller: caller, Logger: logger})
	if err != nil {
		return err
	}

	rep, err := p.Run(ctx, runCfg)
	if err != nil {
		return fmt.Errorf("pipeline aborted: %w", err)
	}

	var rendered string
	if opts.query != "" {
		rendered, err = report.Query(ctx, rep, opts.query)
	} else {
		rendered, err = report.Generate(rep, format)
	}
	if err != nil {
		return err
	}

	if err := writeReport(cmd, opts.out, rendered); err != nil {
		return err
	}

	if opts.strict && rep.Failed > 0 {
		return fmt.Errorf("%d of %d workflows did not complete", rep.Failed, len(rep.GraphResults))
	}
	return nil
}

// buildRunConfig loads the inputs file, then applies explicitly set flags.
func buildRunConfig(cmd *cobra.Command, opts runOptions) (runner.Config, error) {
	var cfg runner.Config
	if opts.inputsFile != "" {
		loaded, err := runner.LoadConfigFile(opts.inputsFile)
		if err != nil {
			return runner.Config{}, err
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("trace-run-id") {
		cfg.TraceRunID = opts.traceRunID
	}
	if f.Changed("trace-event-type") {
		cfg.TraceEventType = opts.traceEventType
	}
	if f.Changed("trace-limit") {
		cfg.TraceLimit = opts.traceLimit
	}
	if f.Changed("select") {
		cfg.Select = opts.selectExpr
	}
	if f.Changed("skip-graph") {
		cfg.RunGraphWorkflows = runner.Bool(!opts.skipGraph)
	}
	if f.Changed("audit-trail") {
		cfg.EnableAuditTrail = opts.auditTrail
	}
	return cfg, nil
}

// newCaller picks the fixture caller, or an MCP caller in live mode. The
// returned close function is always safe to call.
func newCaller(ctx context.Context, cfg Config, live bool, logger *slog.Logger) (runner.Caller, func(), error) {
	if !live {
		logger.Debug("using fixture caller")
		return fixtures.NewCaller(), func() {}, nil
	}

	var (
		c   *mcp.Caller
		err error
	)
	switch {
	case cfg.ServerURL != "":
		logger.Info("connecting to mcp server", "url", cfg.ServerURL)
		c, err = mcp.NewHTTPCaller(ctx, cfg.ServerURL, nil)
	case cfg.ServerCmd != "":
		logger.Info("launching mcp server", "command", cfg.ServerCmd, "args", cfg.ServerArgs)
		c, err = mcp.NewStdioCaller(ctx, cfg.ServerCmd, os.Environ(), cfg.ServerArgs...)
	default:
		return nil, nil, contract.NewError(contract.ErrCodeConfig,
			"live mode requires WORKFLOW_RUNNER_SERVER_URL or WORKFLOW_RUNNER_SERVER_CMD")
	}
	if err != nil {
		return nil, nil, err
	}

	return c, func() {
		if err := c.Close(); err != nil {
			logger.Warn("close mcp client", "error", err)
		}
	}, nil
}

func writeReport(cmd *cobra.Command, path, rendered string) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return err
	}
	if err := os.WriteFile(path, []byte(rendered+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
