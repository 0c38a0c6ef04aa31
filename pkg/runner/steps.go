package runner

import (
	"context"

	"github.com/rendis/workflow-runner/pkg/contract"
)

// Client performs the individual remote steps of the pipeline. Every step
// validates its outgoing arguments and its response against the contract
// shapes; failures come back as *contract.Error with a transport or
// validation code.
type Client struct {
	caller    Caller
	validator *contract.Validator
}

// NewClient creates a Client over caller.
func NewClient(caller Caller, validator *contract.Validator) *Client {
	return &Client{caller: caller, validator: validator}
}

// ListTemplates fetches the template inventory in names format.
func (c *Client) ListTemplates(ctx context.Context) (contract.ListTemplatesResponse, error) {
	args := map[string]any{"format": string(contract.TemplateFormatNames)}
	if err := c.validator.Validate(args, contract.ShapeListTemplatesInput); err != nil {
		return contract.ListTemplatesResponse{}, err
	}

	out, err := call(ctx, c.caller, contract.ToolListWorkflows, args)
	if err != nil {
		return contract.ListTemplatesResponse{}, err
	}
	return c.validator.ListTemplatesResponse(out)
}

// ListGraphWorkflows fetches the executable graph workflows, in the order
// the remote side reports them.
func (c *Client) ListGraphWorkflows(ctx context.Context) ([]contract.GraphWorkflowInfo, error) {
	args := map[string]any{"workflow": contract.ListSentinel}
	if err := c.validator.Validate(args, contract.ShapeRunGraphInput); err != nil {
		return nil, err
	}

	out, err := call(ctx, c.caller, contract.ToolRunGraphWorkflow, args)
	if err != nil {
		return nil, err
	}
	return c.validator.GraphWorkflowList(out)
}

// ExecuteGraph runs one graph workflow with checkpointing enabled.
func (c *Client) ExecuteGraph(ctx context.Context, in contract.RunGraphInput) (contract.RunGraphResponse, error) {
	args := map[string]any{
		"workflow":            in.Workflow,
		"inputs":              orEmpty(in.Inputs),
		"enableCheckpointing": true,
	}
	if in.EnableAuditTrail {
		args["enableAuditTrail"] = true
	}
	if err := c.validator.Validate(args, contract.ShapeRunGraphInput); err != nil {
		return contract.RunGraphResponse{}, err
	}

	out, err := call(ctx, c.caller, contract.ToolRunGraphWorkflow, args)
	if err != nil {
		return contract.RunGraphResponse{}, err
	}
	return c.validator.RunGraphResponse(out)
}

// QueryTrace fetches the recorded events of a previous run. EventType and
// Limit are forwarded only when set.
func (c *Client) QueryTrace(ctx context.Context, in contract.QueryTraceInput) (contract.QueryTraceResponse, error) {
	args := map[string]any{"runId": in.RunID}
	if in.EventType != "" {
		args["eventType"] = in.EventType
	}
	if in.Limit != 0 {
		args["limit"] = in.Limit
	}
	if err := c.validator.Validate(args, contract.ShapeQueryTraceInput); err != nil {
		return contract.QueryTraceResponse{}, err
	}

	out, err := call(ctx, c.caller, contract.ToolQueryTrace, args)
	if err != nil {
		return contract.QueryTraceResponse{}, err
	}
	return c.validator.QueryTraceResponse(out)
}
