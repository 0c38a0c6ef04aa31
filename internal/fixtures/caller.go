package fixtures

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rendis/workflow-runner/pkg/contract"
)

// Call records one invocation received by the fixture caller.
type Call struct {
	Tool string
	Args map[string]any
}

// Caller is a deterministic in-memory stand-in for the remote tool API.
// Responses are routed by tool name and, for run_graph_workflow, by the
// workflow argument. Payloads and failures can be overridden per route.
// Safe for concurrent use.
type Caller struct {
	mu        sync.Mutex
	templates contract.ListTemplatesResponse
	workflows []contract.GraphWorkflowInfo
	results   map[string]contract.RunGraphResponse
	traces    map[string]contract.QueryTraceResponse
	responses map[string]any
	failures  map[string]error
	calls     []Call
}

// NewCaller creates a fixture caller loaded with the bundled fixture data.
func NewCaller() *Caller {
	trace := Trace()
	return &Caller{
		templates: TemplateList(),
		workflows: GraphWorkflows(),
		results:   ExecutionResults(),
		traces:    map[string]contract.QueryTraceResponse{trace.RunID: trace},
		responses: make(map[string]any),
		failures:  make(map[string]error),
	}
}

// Route builds the key addressing a tool call. An empty workflow addresses
// the tool as a whole; for run_graph_workflow, workflow "list" addresses
// the listing mode.
func Route(tool, workflow string) string {
	if workflow == "" {
		return tool
	}
	return tool + "/" + workflow
}

// Respond replaces the payload returned for route. The payload is returned
// as is, so malformed responses can be simulated.
func (c *Caller) Respond(route string, payload any) *Caller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses[route] = payload
	return c
}

// Fail makes every call matching route return err.
func (c *Caller) Fail(route string, err error) *Caller {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[route] = err
	return c
}

// Calls returns a copy of the invocations received so far, in order.
func (c *Caller) Calls() []Call {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.calls)
}

// Call implements the remote caller capability.
func (c *Caller) Call(ctx context.Context, tool string, args map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.calls = append(c.calls, Call{Tool: tool, Args: maps.Clone(args)})

	workflow, _ := args["workflow"].(string)
	for _, route := range []string{Route(tool, workflow), Route(tool, "")} {
		if err, ok := c.failures[route]; ok {
			return nil, err
		}
		if payload, ok := c.responses[route]; ok {
			return payload, nil
		}
	}

	switch tool {
	case contract.ToolListWorkflows:
		return c.listTemplates(args), nil
	case contract.ToolRunGraphWorkflow:
		return c.runGraph(workflow)
	case contract.ToolQueryTrace:
		return c.queryTrace(args), nil
	default:
		return nil, fmt.Errorf("unknown tool %q", tool)
	}
}

func (c *Caller) listTemplates(args map[string]any) contract.ListTemplatesResponse {
	category, _ := args["category"].(string)
	if category == "" {
		return c.templates
	}

	var filtered []contract.WorkflowTemplateInfo
	for _, t := range c.templates.Workflows {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return contract.ListTemplatesResponse{
		Workflows: orEmptyTemplates(filtered),
		Count:     len(filtered),
	}
}

func (c *Caller) runGraph(workflow string) (any, error) {
	if workflow == contract.ListSentinel {
		return c.workflows, nil
	}
	result, ok := c.results[workflow]
	if !ok {
		return nil, fmt.Errorf("unknown graph workflow %q", workflow)
	}
	return result, nil
}

// queryTrace filters the recorded events by eventType and truncates them
// to limit. TotalEvents always counts the unfiltered trace.
func (c *Caller) queryTrace(args map[string]any) contract.QueryTraceResponse {
	runID, _ := args["runId"].(string)
	trace, ok := c.traces[runID]
	if !ok {
		return TraceNotFound(runID)
	}

	events := trace.Events
	if eventType, _ := args["eventType"].(string); eventType != "" {
		events = nil
		for _, e := range trace.Events {
			if e["eventType"] == eventType {
				events = append(events, e)
			}
		}
	}

	truncated := trace.Truncated
	if limit := intArg(args["limit"]); limit > 0 && len(events) > limit {
		events = events[:limit]
		truncated = true
	}

	trace.Events = slices.Clone(events)
	if trace.Events == nil {
		trace.Events = []map[string]any{}
	}
	trace.Truncated = truncated
	return trace
}

func intArg(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func orEmptyTemplates(t []contract.WorkflowTemplateInfo) []contract.WorkflowTemplateInfo {
	if t == nil {
		return []contract.WorkflowTemplateInfo{}
	}
	return t
}
