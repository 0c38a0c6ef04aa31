package fixtures

import "github.com/rendis/workflow-runner/pkg/contract"

// TemplateNames lists the nine bundled workflow templates in listing order.
var TemplateNames = []string{
	"bug-fix",
	"code-review",
	"documentation-update",
	"feature-implementation",
	"refactoring",
	"research-review",
	"security-audit",
	"standards-review",
	"test-generation",
}

// TemplateList is the list_workflows response.
func TemplateList() contract.ListTemplatesResponse {
	workflows := make([]contract.WorkflowTemplateInfo, len(TemplateNames))
	for i, name := range TemplateNames {
		workflows[i] = contract.WorkflowTemplateInfo{Name: name, Version: "1.0.0"}
	}
	return contract.ListTemplatesResponse{Workflows: workflows, Count: len(workflows)}
}

// GraphWorkflows is the run_graph_workflow listing response. code-review
// and security-scan are the only workflows with conditional edges.
func GraphWorkflows() []contract.GraphWorkflowInfo {
	return []contract.GraphWorkflowInfo{
		{Name: "echo", Description: "Simple input echo (demo)", InputFields: []string{"input"}, NodeCount: 1},
		{Name: "pipeline", Description: "Two-step validate-process pipeline (demo)", InputFields: []string{"input"}, NodeCount: 2},
		{Name: "code-review", Description: "Complexity-based code review", InputFields: []string{"code"}, NodeCount: 4, HasConditionalEdges: true},
		{Name: "security-scan", Description: "Multi-step security analysis", InputFields: []string{"code"}, NodeCount: 4, HasConditionalEdges: true},
		{Name: "security-audit", Description: "Multi-CLI security audit", InputFields: []string{"code"}, NodeCount: 4},
		{Name: "test-generation", Description: "Multi-CLI test generation", InputFields: []string{"code"}, NodeCount: 4},
		{Name: "documentation", Description: "Multi-CLI documentation", InputFields: []string{"topic", "code"}, NodeCount: 4},
	}
}

// EchoResult is a completed single-node execution.
func EchoResult() contract.RunGraphResponse {
	return contract.RunGraphResponse{
		Workflow:      "echo",
		Status:        contract.GraphStatusCompleted,
		FinalState:    map[string]any{"input": "hello", "output": "echo: hello"},
		StepsExecuted: 1,
		NodesExecuted: 1,
		DurationMs:    1,
		Events: []contract.GraphEvent{
			{Type: "node_started", NodeID: "echo", Detail: "Starting echo"},
			{Type: "node_completed", NodeID: "echo", Detail: "echo in 0ms"},
			{Type: "state_updated", Detail: "output"},
			{Type: "step_completed", Detail: "1 nodes"},
			{Type: "execution_complete", Detail: "1 steps, 1ms"},
		},
		CheckpointCount: 1,
	}
}

// PipelineResult is a completed two-step execution.
func PipelineResult() contract.RunGraphResponse {
	return contract.RunGraphResponse{
		Workflow: "pipeline",
		Status:   contract.GraphStatusCompleted,
		FinalState: map[string]any{
			"input":  "test data",
			"steps":  []any{"validated: test data", "processed 1 inputs"},
			"output": "done: test data",
		},
		StepsExecuted: 2,
		NodesExecuted: 2,
		DurationMs:    1,
		Events: []contract.GraphEvent{
			{Type: "node_started", NodeID: "validate"},
			{Type: "node_completed", NodeID: "validate"},
			{Type: "step_completed", Detail: "1 nodes"},
			{Type: "node_started", NodeID: "process"},
			{Type: "node_completed", NodeID: "process"},
			{Type: "step_completed", Detail: "1 nodes"},
			{Type: "execution_complete", Detail: "2 steps, 1ms"},
		},
		CheckpointCount: 2,
	}
}

// CodeReviewResult is a completed execution that took the quick-review branch.
func CodeReviewResult() contract.RunGraphResponse {
	return contract.RunGraphResponse{
		Workflow: "code-review",
		Status:   contract.GraphStatusCompleted,
		FinalState: map[string]any{
			"code":       "function add(a, b) { return a + b; }",
			"complexity": 1,
			"review":     "Quick review: simple function",
			"output":     "Review complete: low complexity",
		},
		StepsExecuted: 3,
		NodesExecuted: 3,
		DurationMs:    2,
		Events: []contract.GraphEvent{
			{Type: "node_started", NodeID: "analyze"},
			{Type: "node_completed", NodeID: "analyze"},
			{Type: "node_started", NodeID: "quick-review"},
			{Type: "node_completed", NodeID: "quick-review"},
			{Type: "node_started", NodeID: "report"},
			{Type: "node_completed", NodeID: "report"},
			{Type: "execution_complete", Detail: "3 steps"},
		},
		CheckpointCount: 3,
	}
}

// FailedResult is a remote failure reported by the graph engine itself.
func FailedResult() contract.RunGraphResponse {
	return contract.RunGraphResponse{
		Workflow:      "security-scan",
		Status:        contract.GraphStatusFailed,
		FinalState:    map[string]any{"code": "", "error": "No code provided"},
		StepsExecuted: 1,
		NodesExecuted: 1,
		DurationMs:    0,
		Events: []contract.GraphEvent{
			{Type: "node_started", NodeID: "scan-imports"},
			{Type: "node_completed", NodeID: "scan-imports"},
			{Type: "execution_complete", Detail: "failed"},
		},
		CheckpointCount: 1,
		Error:           "Empty code input",
	}
}

// multiCLIResult builds the completed result shared by the multi-CLI
// workflows: fan out to the reviewers, then merge.
func multiCLIResult(workflow, output string, durationMs int64) contract.RunGraphResponse {
	return contract.RunGraphResponse{
		Workflow:      workflow,
		Status:        contract.GraphStatusCompleted,
		FinalState:    map[string]any{"output": output},
		StepsExecuted: 3,
		NodesExecuted: 4,
		DurationMs:    durationMs,
		Events: []contract.GraphEvent{
			{Type: "node_started", NodeID: "prepare"},
			{Type: "node_completed", NodeID: "prepare"},
			{Type: "step_completed", Detail: "1 nodes"},
			{Type: "node_started", NodeID: "claude"},
			{Type: "node_started", NodeID: "gemini"},
			{Type: "node_completed", NodeID: "claude"},
			{Type: "node_completed", NodeID: "gemini"},
			{Type: "step_completed", Detail: "2 nodes"},
			{Type: "node_started", NodeID: "merge"},
			{Type: "node_completed", NodeID: "merge"},
			{Type: "execution_complete", Detail: "3 steps"},
		},
		CheckpointCount: 3,
	}
}

// ExecutionResults maps every fixture graph workflow to its execution
// response. A full run yields six completed and one failed result.
func ExecutionResults() map[string]contract.RunGraphResponse {
	return map[string]contract.RunGraphResponse{
		"echo":            EchoResult(),
		"pipeline":        PipelineResult(),
		"code-review":     CodeReviewResult(),
		"security-scan":   FailedResult(),
		"security-audit":  multiCLIResult("security-audit", "Audit complete: 1 finding", 4),
		"test-generation": multiCLIResult("test-generation", "Generated 3 tests", 3),
		"documentation":   multiCLIResult("documentation", "Documentation drafted", 3),
	}
}

// TraceRunID is the run id with a recorded trace.
const TraceRunID = "wf-run-001"

// Trace is the recorded trace of TraceRunID.
func Trace() contract.QueryTraceResponse {
	return contract.QueryTraceResponse{
		RunID: TraceRunID,
		Events: []map[string]any{
			{"eventType": "workflow.started", "workflow": "echo", "timestamp": "2026-02-14T12:00:00Z"},
			{"eventType": "node.executed", "nodeId": "echo", "durationMs": 1},
			{"eventType": "workflow.completed", "status": "completed"},
		},
		TotalEvents: 3,
		Truncated:   false,
		Source:      contract.TraceSourceDisk,
	}
}

// TraceNotFound is the response for a run id without a trace.
func TraceNotFound(runID string) contract.QueryTraceResponse {
	return contract.QueryTraceResponse{
		RunID:       runID,
		Events:      []map[string]any{},
		TotalEvents: 0,
		Truncated:   false,
		Source:      contract.TraceSourceNotFound,
	}
}
