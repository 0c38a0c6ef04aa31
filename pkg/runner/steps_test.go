package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/rendis/workflow-runner/internal/fixtures"
	"github.com/rendis/workflow-runner/pkg/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, caller Caller) *Client {
	t.Helper()
	v, err := contract.Default()
	require.NoError(t, err)
	return NewClient(caller, v)
}

func TestListTemplates(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	resp, err := c.ListTemplates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, resp.Count)
	assert.Len(t, resp.Workflows, resp.Count)

	names := make([]string, len(resp.Workflows))
	for i, w := range resp.Workflows {
		names[i] = w.Name
	}
	for _, want := range fixtures.TemplateNames {
		assert.Contains(t, names, want)
	}

	calls := fc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "names", calls[0].Args["format"])
}

func TestListTemplates_InvalidResponse(t *testing.T) {
	fc := fixtures.NewCaller().Respond(contract.ToolListWorkflows, map[string]any{"count": 1})
	c := newTestClient(t, fc)

	_, err := c.ListTemplates(context.Background())
	require.Error(t, err)
	assert.True(t, contract.IsValidation(err))
}

func TestListGraphWorkflows(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	workflows, err := c.ListGraphWorkflows(context.Background())
	require.NoError(t, err)
	require.Len(t, workflows, 7)
	assert.Equal(t, "echo", workflows[0].Name)
	assert.Equal(t, []string{"topic", "code"}, workflows[6].InputFields)

	calls := fc.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, contract.ToolRunGraphWorkflow, calls[0].Tool)
	assert.Equal(t, "list", calls[0].Args["workflow"])
}

func TestListGraphWorkflows_TransportError(t *testing.T) {
	fc := fixtures.NewCaller().Fail(fixtures.Route(contract.ToolRunGraphWorkflow, "list"), errors.New("socket closed"))
	c := newTestClient(t, fc)

	_, err := c.ListGraphWorkflows(context.Background())
	require.Error(t, err)
	assert.True(t, contract.IsTransport(err))

	var cerr *contract.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, contract.ToolRunGraphWorkflow, cerr.Tool)
	assert.EqualError(t, errors.Unwrap(err), "socket closed")
}

func TestExecuteGraph(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	resp, err := c.ExecuteGraph(context.Background(), contract.RunGraphInput{
		Workflow: "echo",
		Inputs:   map[string]any{"input": "hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, contract.GraphStatusCompleted, resp.Status)
	assert.Len(t, resp.Events, 5)

	args := fc.Calls()[0].Args
	assert.Equal(t, "echo", args["workflow"])
	assert.Equal(t, true, args["enableCheckpointing"])
	assert.Equal(t, map[string]any{"input": "hello"}, args["inputs"])
	assert.NotContains(t, args, "enableAuditTrail")
}

func TestExecuteGraph_AuditTrail(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	_, err := c.ExecuteGraph(context.Background(), contract.RunGraphInput{Workflow: "echo", EnableAuditTrail: true})
	require.NoError(t, err)

	args := fc.Calls()[0].Args
	assert.Equal(t, true, args["enableAuditTrail"])
	assert.Equal(t, map[string]any{}, args["inputs"])
}

func TestExecuteGraph_RejectsInvalidWorkflowName(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	for _, name := range []string{"", string(make([]byte, 101))} {
		_, err := c.ExecuteGraph(context.Background(), contract.RunGraphInput{Workflow: name})
		assert.True(t, contract.IsValidation(err))
	}
	assert.Empty(t, fc.Calls(), "invalid arguments must not reach the remote side")
}

func TestExecuteGraph_PendingStatusRejected(t *testing.T) {
	pending := fixtures.EchoResult()
	pending.Status = "pending"
	fc := fixtures.NewCaller().Respond(fixtures.Route(contract.ToolRunGraphWorkflow, "echo"), pending)
	c := newTestClient(t, fc)

	_, err := c.ExecuteGraph(context.Background(), contract.RunGraphInput{Workflow: "echo"})
	require.Error(t, err)
	assert.True(t, contract.IsValidation(err))
}

func TestExecuteGraph_FailedResponse(t *testing.T) {
	c := newTestClient(t, fixtures.NewCaller())

	resp, err := c.ExecuteGraph(context.Background(), contract.RunGraphInput{Workflow: "security-scan"})
	require.NoError(t, err)
	assert.Equal(t, contract.GraphStatusFailed, resp.Status)
	assert.Equal(t, "Empty code input", resp.Error)
}

func TestQueryTrace(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	resp, err := c.QueryTrace(context.Background(), contract.QueryTraceInput{RunID: fixtures.TraceRunID})
	require.NoError(t, err)
	assert.Equal(t, contract.TraceSourceDisk, resp.Source)
	assert.Equal(t, 3, resp.TotalEvents)
	assert.Equal(t, map[string]any{"runId": fixtures.TraceRunID}, fc.Calls()[0].Args)
}

func TestQueryTrace_NotFound(t *testing.T) {
	c := newTestClient(t, fixtures.NewCaller())

	resp, err := c.QueryTrace(context.Background(), contract.QueryTraceInput{RunID: "nonexistent"})
	require.NoError(t, err)
	assert.Equal(t, contract.TraceSourceNotFound, resp.Source)
	assert.Empty(t, resp.Events)
	assert.Zero(t, resp.TotalEvents)
}

func TestQueryTrace_Options(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	resp, err := c.QueryTrace(context.Background(), contract.QueryTraceInput{
		RunID: fixtures.TraceRunID, EventType: "workflow.started", Limit: 500,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Events, 1)

	args := fc.Calls()[0].Args
	assert.Equal(t, "workflow.started", args["eventType"])
	assert.Equal(t, 500, args["limit"])
}

func TestQueryTrace_LimitOutOfRange(t *testing.T) {
	fc := fixtures.NewCaller()
	c := newTestClient(t, fc)

	for _, limit := range []int{501, -1} {
		_, err := c.QueryTrace(context.Background(), contract.QueryTraceInput{RunID: fixtures.TraceRunID, Limit: limit})
		assert.True(t, contract.IsValidation(err), "limit %d", limit)
	}
	assert.Empty(t, fc.Calls())
}

func TestCall_KeepsCodedErrors(t *testing.T) {
	coded := contract.NewError(contract.ErrCodeValidation, "bad")
	caller := CallerFunc(func(context.Context, string, map[string]any) (any, error) {
		return nil, coded
	})

	_, err := call(context.Background(), caller, contract.ToolQueryTrace, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, coded)
	assert.True(t, contract.IsValidation(err))

	var cerr *contract.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, contract.ToolQueryTrace, cerr.Tool)
	assert.Equal(t, "bad", cerr.Message)
}

func TestCall_DoesNotModifySharedError(t *testing.T) {
	shared := contract.NewError(contract.ErrCodeTransport, "backend down")
	fc := fixtures.NewCaller().Fail(contract.ToolListWorkflows, shared)

	_, err := call(context.Background(), fc, contract.ToolListWorkflows, map[string]any{})
	require.Error(t, err)
	assert.Empty(t, shared.Tool)

	var cerr *contract.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, contract.ToolListWorkflows, cerr.Tool)
	assert.True(t, contract.IsTransport(err))
}

func TestCall_KeepsExistingTool(t *testing.T) {
	coded := contract.NewError(contract.ErrCodeTransport, "bad").WithTool("upstream_tool")
	caller := CallerFunc(func(context.Context, string, map[string]any) (any, error) {
		return nil, coded
	})

	_, err := call(context.Background(), caller, contract.ToolQueryTrace, nil)
	var cerr *contract.Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "upstream_tool", cerr.Tool)
}
