package contract

// TemplateFormat selects the verbosity of a list_workflows response.
type TemplateFormat string

const (
	TemplateFormatFull  TemplateFormat = "full"
	TemplateFormatNames TemplateFormat = "names"
)

// ListTemplatesInput is the argument bag of list_workflows.
type ListTemplatesInput struct {
	Category string         `json:"category,omitempty"`
	Format   TemplateFormat `json:"format,omitempty"`
}

// WorkflowTemplateInfo is a static template descriptor.
type WorkflowTemplateInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// ListTemplatesResponse is the result of list_workflows.
type ListTemplatesResponse struct {
	Workflows  []WorkflowTemplateInfo `json:"workflows"`
	Count      int                    `json:"count"`
	Categories []string               `json:"categories,omitempty"`
}

// RunGraphInput is the argument bag of run_graph_workflow.
type RunGraphInput struct {
	Workflow            string         `json:"workflow"`
	Inputs              map[string]any `json:"inputs,omitempty"`
	EnableCheckpointing bool           `json:"enableCheckpointing,omitempty"`
	EnableAuditTrail    bool           `json:"enableAuditTrail,omitempty"`
}

// GraphWorkflowInfo describes an executable graph workflow as returned by
// the listing mode of run_graph_workflow.
type GraphWorkflowInfo struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	InputFields         []string `json:"inputFields"`
	NodeCount           int      `json:"nodeCount"`
	HasConditionalEdges bool     `json:"hasConditionalEdges"`
}

// GraphEvent is one entry of an execution trace, in emission order.
type GraphEvent struct {
	Type   string `json:"type"`
	NodeID string `json:"nodeId,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// GraphStatus is the terminal status reported by the remote graph engine.
type GraphStatus string

const (
	GraphStatusCompleted GraphStatus = "completed"
	GraphStatusFailed    GraphStatus = "failed"
)

// RunGraphResponse is the result of executing one graph workflow.
// Error is not required to agree with Status.
type RunGraphResponse struct {
	Workflow        string         `json:"workflow"`
	Status          GraphStatus    `json:"status"`
	FinalState      map[string]any `json:"finalState"`
	StepsExecuted   int            `json:"stepsExecuted"`
	NodesExecuted   int            `json:"nodesExecuted"`
	DurationMs      int64          `json:"durationMs"`
	Events          []GraphEvent   `json:"events"`
	CheckpointCount int            `json:"checkpointCount"`
	Error           string         `json:"error,omitempty"`
}

// QueryTraceInput is the argument bag of query_trace.
type QueryTraceInput struct {
	RunID     string `json:"runId"`
	EventType string `json:"eventType,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// TraceSource tells where the trace data came from.
type TraceSource string

const (
	TraceSourceDisk     TraceSource = "disk"
	TraceSourceNotFound TraceSource = "not_found"
)

// QueryTraceResponse is the result of query_trace.
type QueryTraceResponse struct {
	RunID       string           `json:"runId"`
	Events      []map[string]any `json:"events"`
	TotalEvents int              `json:"totalEvents"`
	Truncated   bool             `json:"truncated"`
	Source      TraceSource      `json:"source"`
}

// RunStatus is the normalized outcome of one workflow execution.
// RunStatusError is produced locally and never by the remote side.
type RunStatus string

const (
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
	RunStatusError     RunStatus = "error"
)

// WorkflowRunResult is the runner's uniform record of one workflow execution.
type WorkflowRunResult struct {
	Name                string    `json:"name"`
	Status              RunStatus `json:"status"`
	StepsExecuted       int       `json:"stepsExecuted"`
	NodesExecuted       int       `json:"nodesExecuted"`
	DurationMs          int64     `json:"durationMs"`
	Checkpoints         int       `json:"checkpoints"`
	EventCount          int       `json:"eventCount"`
	HasConditionalEdges bool      `json:"hasConditionalEdges"`
	Error               string    `json:"error,omitempty"`
}

// Passed reports whether the run completed.
func (r WorkflowRunResult) Passed() bool {
	return r.Status == RunStatusCompleted
}

// RunnerReport is the terminal aggregate of one pipeline run.
// Passed + Failed always equals len(GraphResults).
type RunnerReport struct {
	TemplateCount      int                 `json:"templateCount"`
	GraphWorkflowCount int                 `json:"graphWorkflowCount"`
	GraphResults       []WorkflowRunResult `json:"graphResults"`
	Passed             int                 `json:"passed"`
	Failed             int                 `json:"failed"`
	TraceResult        *QueryTraceResponse `json:"traceResult"`
}
