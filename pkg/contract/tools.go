package contract

// Remote tool names.
const (
	ToolListWorkflows    = "list_workflows"
	ToolRunGraphWorkflow = "run_graph_workflow"
	ToolQueryTrace       = "query_trace"
)

// ListSentinel is the workflow argument that switches run_graph_workflow
// into listing mode. It is a protocol convention of the remote side: a
// workflow literally named "list" cannot be executed through this API.
const ListSentinel = "list"
