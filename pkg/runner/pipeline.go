package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rendis/workflow-runner/internal/expressions"
	"github.com/rendis/workflow-runner/internal/logging"
	"github.com/rendis/workflow-runner/pkg/contract"
)

// PipelineDeps holds the dependencies for creating a Pipeline.
type PipelineDeps struct {
	Caller    Caller
	Validator *contract.Validator
	Logger    *slog.Logger
}

// Pipeline drives the discovery, execution and trace stages against a
// remote caller. Remote calls are issued strictly one at a time.
type Pipeline struct {
	client *Client
	logger *slog.Logger
}

// NewPipeline creates a Pipeline. A nil Validator uses the shared default.
func NewPipeline(deps PipelineDeps) (*Pipeline, error) {
	if deps.Caller == nil {
		return nil, contract.NewError(contract.ErrCodeConfig, "pipeline requires a caller")
	}

	validator := deps.Validator
	if validator == nil {
		v, err := contract.Default()
		if err != nil {
			return nil, fmt.Errorf("load contract schemas: %w", err)
		}
		validator = v
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(logging.NewCorrelationHandler(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
	}

	return &Pipeline{
		client: NewClient(deps.Caller, validator),
		logger: logger,
	}, nil
}

// RunWorkflowPipeline builds a default pipeline over caller and runs it once.
func RunWorkflowPipeline(ctx context.Context, caller Caller, cfg Config) (*contract.RunnerReport, error) {
	p, err := NewPipeline(PipelineDeps{Caller: caller})
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, cfg)
}

// Run executes the pipeline and assembles the report.
//
// Discovery failures abort the run and are returned. Failures of a single
// workflow execution become an error result, and a failed trace query
// leaves TraceResult nil; neither is returned. A cancelled context stops
// the run between remote calls, including after the last execution.
func (p *Pipeline) Run(ctx context.Context, cfg Config) (*contract.RunnerReport, error) {
	selector, err := expressions.ParseSelector(cfg.Select)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeConfig, "invalid select expression: %s", err.Error()).WithCause(err)
	}

	ctx = logging.WithRunID(ctx, uuid.New().String())
	log := logging.LogWith(ctx, p.logger)
	start := time.Now()
	log.Info("pipeline started", "run_graph_workflows", cfg.ShouldRunGraphWorkflows(), "select", selector.String())

	templates, err := p.client.ListTemplates(logging.WithTool(ctx, contract.ToolListWorkflows))
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	log.Debug("templates discovered", "count", templates.Count)

	workflows, err := p.client.ListGraphWorkflows(logging.WithTool(ctx, contract.ToolRunGraphWorkflow))
	if err != nil {
		return nil, fmt.Errorf("list graph workflows: %w", err)
	}
	log.Debug("graph workflows discovered", "count", len(workflows))

	results := make([]contract.WorkflowRunResult, 0, len(workflows))
	if cfg.ShouldRunGraphWorkflows() {
		for _, info := range workflows {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result, ok := p.runOne(ctx, cfg, selector, info)
			if ok {
				results = append(results, result)
			}
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var trace *contract.QueryTraceResponse
	if cfg.TraceRunID != "" {
		trace = p.queryTrace(ctx, cfg)
	}

	counts := CountResults(results)
	report := &contract.RunnerReport{
		TemplateCount:      templates.Count,
		GraphWorkflowCount: len(workflows),
		GraphResults:       results,
		Passed:             counts.Passed,
		Failed:             counts.Failed,
		TraceResult:        trace,
	}

	log.Info("pipeline finished",
		"passed", report.Passed,
		"failed", report.Failed,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return report, nil
}

// runOne executes a single workflow. ok is false when the selector
// excluded it.
func (p *Pipeline) runOne(ctx context.Context, cfg Config, selector *expressions.Selector, info contract.GraphWorkflowInfo) (contract.WorkflowRunResult, bool) {
	ctx = logging.WithWorkflow(ctx, info.Name)
	log := logging.LogWith(ctx, p.logger)

	matched, err := selector.Match(ctx, info)
	if err != nil {
		log.Warn("workflow selection failed", "error", err)
		return ToErrorResult(info.Name, ErrMsgSelectionFailed), true
	}
	if !matched {
		log.Debug("workflow skipped by selector")
		return contract.WorkflowRunResult{}, false
	}

	resp, err := p.client.ExecuteGraph(logging.WithTool(ctx, contract.ToolRunGraphWorkflow), contract.RunGraphInput{
		Workflow:         info.Name,
		Inputs:           resolveInputs(cfg.GraphInputs, info.Name),
		EnableAuditTrail: cfg.EnableAuditTrail,
	})
	if err != nil {
		log.Warn("workflow execution failed", "error", err, "code", contract.Code(err))
		return ToErrorResult(info.Name, ErrMsgExecutionFailed), true
	}

	result := ToRunResult(info, resp)
	log.Info("workflow executed",
		"status", result.Status,
		"steps", result.StepsExecuted,
		"duration_ms", result.DurationMs,
	)
	return result, true
}

func (p *Pipeline) queryTrace(ctx context.Context, cfg Config) *contract.QueryTraceResponse {
	ctx = logging.WithTool(ctx, contract.ToolQueryTrace)
	resp, err := p.client.QueryTrace(ctx, contract.QueryTraceInput{
		RunID:     cfg.TraceRunID,
		EventType: cfg.TraceEventType,
		Limit:     cfg.TraceLimit,
	})
	if err != nil {
		logging.LogWith(ctx, p.logger).Warn("trace query failed", "trace_run_id", cfg.TraceRunID, "error", err)
		return nil
	}
	return &resp
}
