package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rendis/workflow-runner/internal/logging"
	"github.com/rendis/workflow-runner/pkg/contract"
)

// tools returns the 3 registered MCP tools as ServerTool entries.
func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: listWorkflowsTool(), Handler: s.handleListWorkflows},
		{Tool: runGraphWorkflowTool(), Handler: s.handleRunGraphWorkflow},
		{Tool: queryTraceTool(), Handler: s.handleQueryTrace},
	}
}

// --- Tool definitions ---

func listWorkflowsTool() mcp.Tool {
	return mcp.NewTool(contract.ToolListWorkflows,
		mcp.WithDescription("List the available workflow templates"),
		mcp.WithString("category", mcp.Description("Only list templates in this category")),
		mcp.WithString("format",
			mcp.Enum(string(contract.TemplateFormatFull), string(contract.TemplateFormatNames)),
			mcp.Description("Response verbosity (default: full)"),
		),
	)
}

func runGraphWorkflowTool() mcp.Tool {
	return mcp.NewTool(contract.ToolRunGraphWorkflow,
		mcp.WithDescription("Execute a graph workflow, or list graph workflows when workflow is \"list\""),
		mcp.WithString("workflow", mcp.Required(),
			mcp.MinLength(1), mcp.MaxLength(100),
			mcp.Description("Graph workflow name, or \"list\" to enumerate them"),
		),
		mcp.WithObject("inputs", mcp.Description("Initial state for the workflow")),
		mcp.WithBoolean("enableCheckpointing", mcp.Description("Persist a checkpoint after every step")),
		mcp.WithBoolean("enableAuditTrail", mcp.Description("Record an audit trail of the execution")),
	)
}

func queryTraceTool() mcp.Tool {
	return mcp.NewTool(contract.ToolQueryTrace,
		mcp.WithDescription("Query the recorded events of a workflow run"),
		mcp.WithString("runId", mcp.Required(), mcp.MinLength(1), mcp.Description("Run identifier")),
		mcp.WithString("eventType", mcp.Description("Only return events of this type")),
		mcp.WithNumber("limit", mcp.Min(1), mcp.Max(500), mcp.Description("Maximum number of events to return")),
	)
}

// --- Handlers ---

func (s *Server) handleListWorkflows(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	format := req.GetString("format", "")
	if format != "" && format != string(contract.TemplateFormatFull) && format != string(contract.TemplateFormatNames) {
		return mcp.NewToolResultError("format must be full or names"), nil
	}
	return s.forward(ctx, contract.ToolListWorkflows, req.GetArguments())
}

func (s *Server) handleRunGraphWorkflow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workflow, err := req.RequireString("workflow")
	if err != nil || workflow == "" {
		return mcp.NewToolResultError("workflow is required"), nil
	}
	return s.forward(logging.WithWorkflow(ctx, workflow), contract.ToolRunGraphWorkflow, req.GetArguments())
}

func (s *Server) handleQueryTrace(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	runID, err := req.RequireString("runId")
	if err != nil || runID == "" {
		return mcp.NewToolResultError("runId is required"), nil
	}
	if limit := req.GetFloat("limit", 0); limit != 0 && (limit < 1 || limit > 500 || limit != float64(int(limit))) {
		return mcp.NewToolResultError("limit must be an integer between 1 and 500"), nil
	}
	return s.forward(ctx, contract.ToolQueryTrace, req.GetArguments())
}

// forward hands the call to the backend. Backend failures become tool
// errors so the client sees them as IsError results.
func (s *Server) forward(ctx context.Context, tool string, args map[string]any) (*mcp.CallToolResult, error) {
	ctx = logging.WithTool(ctx, tool)
	log := logging.LogWith(ctx, s.logger)

	if s.backend == nil {
		return mcp.NewToolResultError("no backend configured"), nil
	}
	if args == nil {
		args = map[string]any{}
	}

	out, err := s.backend.Call(ctx, tool, args)
	if err != nil {
		log.Warn("tool call failed", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("%s failed: %v", tool, err)), nil
	}

	log.Debug("tool call served")
	return marshalResult(out)
}

func marshalResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultJSON(json.RawMessage(data))
}
