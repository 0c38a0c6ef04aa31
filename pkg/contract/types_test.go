package contract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflowRunResult_Passed(t *testing.T) {
	assert.True(t, WorkflowRunResult{Status: RunStatusCompleted}.Passed())
	assert.False(t, WorkflowRunResult{Status: RunStatusFailed}.Passed())
	assert.False(t, WorkflowRunResult{Status: RunStatusError}.Passed())
}

func TestRunnerReport_JSONFieldNames(t *testing.T) {
	report := RunnerReport{GraphResults: []WorkflowRunResult{}}

	raw, err := json.Marshal(report)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	for _, key := range []string{"templateCount", "graphWorkflowCount", "graphResults", "passed", "failed", "traceResult"} {
		assert.Contains(t, m, key)
	}
	assert.Nil(t, m["traceResult"])
}

func TestRunGraphInput_OmitsUnsetOptionals(t *testing.T) {
	raw, err := json.Marshal(RunGraphInput{Workflow: "list"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"workflow":"list"}`, string(raw))
}
