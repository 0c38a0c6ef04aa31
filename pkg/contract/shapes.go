package contract

// Shape identifies one of the payload shapes known to the contract layer.
type Shape string

const (
	ShapeListTemplatesInput    Shape = "list-templates-input"
	ShapeListTemplatesResponse Shape = "list-templates-response"
	ShapeRunGraphInput         Shape = "run-graph-input"
	ShapeRunGraphResponse      Shape = "run-graph-response"
	ShapeGraphWorkflowList     Shape = "graph-workflow-list"
	ShapeQueryTraceInput       Shape = "query-trace-input"
	ShapeQueryTraceResponse    Shape = "query-trace-response"
	ShapeWorkflowRunResult     Shape = "workflow-run-result"
	ShapeRunnerReport          Shape = "runner-report"
)

const schemaBaseURL = "https://workflow-runner.dev/schemas/"

// url returns the resource URL the shape's schema is registered under.
func (s Shape) url() string {
	return schemaBaseURL + string(s) + ".json"
}

// Unknown properties are accepted everywhere: the remote side may grow
// fields without breaking the runner.
var shapeSchemas = map[Shape]string{
	ShapeListTemplatesInput: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "category": { "type": "string" },
    "format": { "type": "string", "enum": ["full", "names"] }
  }
}`,

	ShapeListTemplatesResponse: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["workflows", "count"],
  "properties": {
    "workflows": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": { "type": "string" },
          "version": { "type": "string" },
          "description": { "type": "string" },
          "category": { "type": "string" }
        }
      }
    },
    "count": { "type": "integer" },
    "categories": { "type": "array", "items": { "type": "string" } }
  }
}`,

	ShapeRunGraphInput: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["workflow"],
  "properties": {
    "workflow": { "type": "string", "minLength": 1, "maxLength": 100 },
    "inputs": { "type": "object" },
    "enableCheckpointing": { "type": "boolean" },
    "enableAuditTrail": { "type": "boolean" }
  }
}`,

	ShapeRunGraphResponse: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["workflow", "status", "finalState", "stepsExecuted", "nodesExecuted", "durationMs", "events", "checkpointCount"],
  "properties": {
    "workflow": { "type": "string" },
    "status": { "type": "string", "enum": ["completed", "failed"] },
    "finalState": { "type": "object" },
    "stepsExecuted": { "type": "integer" },
    "nodesExecuted": { "type": "integer" },
    "durationMs": { "type": "integer" },
    "events": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": { "type": "string" },
          "nodeId": { "type": "string" },
          "detail": { "type": "string" }
        }
      }
    },
    "checkpointCount": { "type": "integer" },
    "error": { "type": "string" }
  }
}`,

	ShapeGraphWorkflowList: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["name", "description", "inputFields", "nodeCount", "hasConditionalEdges"],
    "properties": {
      "name": { "type": "string" },
      "description": { "type": "string" },
      "inputFields": { "type": "array", "items": { "type": "string" } },
      "nodeCount": { "type": "integer" },
      "hasConditionalEdges": { "type": "boolean" }
    }
  }
}`,

	ShapeQueryTraceInput: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["runId"],
  "properties": {
    "runId": { "type": "string", "minLength": 1 },
    "eventType": { "type": "string" },
    "limit": { "type": "integer", "minimum": 1, "maximum": 500 }
  }
}`,

	ShapeQueryTraceResponse: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["runId", "events", "totalEvents", "truncated", "source"],
  "properties": {
    "runId": { "type": "string" },
    "events": { "type": "array", "items": { "type": "object" } },
    "totalEvents": { "type": "integer" },
    "truncated": { "type": "boolean" },
    "source": { "type": "string", "enum": ["disk", "not_found"] }
  }
}`,

	ShapeWorkflowRunResult: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "status", "stepsExecuted", "nodesExecuted", "durationMs", "checkpoints", "eventCount", "hasConditionalEdges"],
  "properties": {
    "name": { "type": "string" },
    "status": { "type": "string", "enum": ["completed", "failed", "error"] },
    "stepsExecuted": { "type": "integer", "minimum": 0 },
    "nodesExecuted": { "type": "integer", "minimum": 0 },
    "durationMs": { "type": "integer", "minimum": 0 },
    "checkpoints": { "type": "integer", "minimum": 0 },
    "eventCount": { "type": "integer", "minimum": 0 },
    "hasConditionalEdges": { "type": "boolean" },
    "error": { "type": "string" }
  }
}`,

	ShapeRunnerReport: `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["templateCount", "graphWorkflowCount", "graphResults", "passed", "failed", "traceResult"],
  "properties": {
    "templateCount": { "type": "integer", "minimum": 0 },
    "graphWorkflowCount": { "type": "integer", "minimum": 0 },
    "graphResults": {
      "type": "array",
      "items": { "$ref": "https://workflow-runner.dev/schemas/workflow-run-result.json" }
    },
    "passed": { "type": "integer", "minimum": 0 },
    "failed": { "type": "integer", "minimum": 0 },
    "traceResult": {
      "anyOf": [
        { "type": "null" },
        { "$ref": "https://workflow-runner.dev/schemas/query-trace-response.json" }
      ]
    }
  }
}`,
}
