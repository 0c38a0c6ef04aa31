package expressions

import (
	"context"
	"strings"

	"github.com/rendis/workflow-runner/pkg/contract"
)

// Selector is a boolean predicate over discovered graph workflows.
// Its source form is "<engine>:<expression>"; without a known engine
// prefix the whole string is an expr expression.
type Selector struct {
	engine     Engine
	expression string
}

// ParseSelector builds and compiles a selector. An empty source yields a
// nil selector, which matches every workflow.
func ParseSelector(source string) (*Selector, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}

	engineName, expression := EngineExpr, source
	if prefix, rest, ok := strings.Cut(source, ":"); ok {
		switch prefix {
		case EngineCEL, EngineExpr, EngineJQ:
			engineName, expression = prefix, strings.TrimSpace(rest)
		}
	}

	engine, err := NewEngine(engineName)
	if err != nil {
		return nil, err
	}
	if err := engine.Compile(expression); err != nil {
		return nil, err
	}

	return &Selector{engine: engine, expression: expression}, nil
}

// String returns the canonical source form.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	return s.engine.Name() + ":" + s.expression
}

// Match evaluates the selector against one workflow. A nil selector
// matches everything.
func (s *Selector) Match(ctx context.Context, info contract.GraphWorkflowInfo) (bool, error) {
	if s == nil {
		return true, nil
	}

	out, err := s.engine.Evaluate(ctx, s.expression, workflowData(info))
	if err != nil {
		return false, err
	}

	matched, ok := out.(bool)
	if !ok {
		return false, contract.NewErrorf(contract.ErrCodeExecution,
			"selector %s must evaluate to a boolean, got %T", s, out)
	}
	return matched, nil
}

// workflowData exposes the workflow fields both at the top level and under
// "workflow", using only JSON-compatible value types.
func workflowData(info contract.GraphWorkflowInfo) map[string]any {
	fields := make([]any, len(info.InputFields))
	for i, f := range info.InputFields {
		fields[i] = f
	}

	wf := map[string]any{
		"name":                info.Name,
		"description":         info.Description,
		"inputFields":         fields,
		"nodeCount":           info.NodeCount,
		"hasConditionalEdges": info.HasConditionalEdges,
	}

	data := make(map[string]any, len(wf)+1)
	for k, v := range wf {
		data[k] = v
	}
	data["workflow"] = wf
	return data
}
