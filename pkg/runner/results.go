package runner

import "github.com/rendis/workflow-runner/pkg/contract"

// Local error messages recorded on synthesized results. The underlying
// cause is logged, never stored.
const (
	ErrMsgExecutionFailed = "Execution failed"
	ErrMsgSelectionFailed = "Selection failed"
)

// ToRunResult converts a graph execution response into a run result. The
// name is the one the execution reports; the conditional-edge flag comes
// from discovery since executions do not report it.
func ToRunResult(info contract.GraphWorkflowInfo, resp contract.RunGraphResponse) contract.WorkflowRunResult {
	return contract.WorkflowRunResult{
		Name:                resp.Workflow,
		Status:              contract.RunStatus(resp.Status),
		StepsExecuted:       resp.StepsExecuted,
		NodesExecuted:       resp.NodesExecuted,
		DurationMs:          resp.DurationMs,
		Checkpoints:         resp.CheckpointCount,
		EventCount:          len(resp.Events),
		HasConditionalEdges: info.HasConditionalEdges,
		Error:               resp.Error,
	}
}

// ToErrorResult synthesizes the result of a workflow that failed locally.
func ToErrorResult(name, msg string) contract.WorkflowRunResult {
	return contract.WorkflowRunResult{
		Name:   name,
		Status: contract.RunStatusError,
		Error:  msg,
	}
}

// Counts tallies completed against non-completed results.
type Counts struct {
	Passed int
	Failed int
}

// CountResults counts results with status completed as passed and
// everything else as failed.
func CountResults(results []contract.WorkflowRunResult) Counts {
	var c Counts
	for _, r := range results {
		if r.Passed() {
			c.Passed++
		} else {
			c.Failed++
		}
	}
	return c
}
