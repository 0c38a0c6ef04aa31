package expressions

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/rendis/workflow-runner/pkg/contract"
)

// celVariables are the top-level names visible to CEL expressions. They
// mirror the fields of a discovered graph workflow, also reachable through
// the "workflow" map.
var celVariables = []string{"workflow", "name", "description", "inputFields", "nodeCount", "hasConditionalEdges"}

// CELEngine implements the Engine interface using Google's Common Expression
// Language. Thread-safe: compiled programs are cached and reused.
type CELEngine struct {
	env *cel.Env

	mu    sync.RWMutex
	cache map[string]cel.Program
}

// NewCELEngine creates a new CEL engine with a sandboxed environment:
//   - workflow:            map(string, dyn)
//   - name, description:   string
//   - inputFields:         list(string)
//   - nodeCount:           int
//   - hasConditionalEdges: bool
func NewCELEngine() (*CELEngine, error) {
	env, err := cel.NewEnv(
		cel.Variable("workflow", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("name", cel.StringType),
		cel.Variable("description", cel.StringType),
		cel.Variable("inputFields", cel.ListType(cel.StringType)),
		cel.Variable("nodeCount", cel.IntType),
		cel.Variable("hasConditionalEdges", cel.BoolType),
	)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return &CELEngine{
		env:   env,
		cache: make(map[string]cel.Program),
	}, nil
}

// Name returns the engine identifier.
func (e *CELEngine) Name() string {
	return EngineCEL
}

// Compile type-checks the expression and caches the program.
func (e *CELEngine) Compile(expression string) error {
	if expression == "" {
		return contract.NewError(contract.ErrCodeValidation, "empty CEL expression")
	}
	_, err := e.getOrCompile(expression)
	return err
}

// Evaluate compiles (or retrieves from cache) a CEL expression and evaluates
// it against the provided data.
func (e *CELEngine) Evaluate(ctx context.Context, expression string, data map[string]any) (any, error) {
	if expression == "" {
		return nil, contract.NewError(contract.ErrCodeValidation, "empty CEL expression")
	}

	prg, err := e.getOrCompile(expression)
	if err != nil {
		return nil, err
	}

	out, _, err := prg.ContextEval(ctx, buildActivation(data))
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeExecution,
			"CEL evaluation failed for %q: %s", expression, err.Error()).
			WithCause(err).
			WithDetails(map[string]any{"expression": expression})
	}

	return out.Value(), nil
}

func (e *CELEngine) getOrCompile(expression string) (cel.Program, error) {
	e.mu.RLock()
	if prg, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return prg, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if prg, ok := e.cache[expression]; ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, contract.NewErrorf(contract.ErrCodeValidation,
			"CEL compile error in %q: %s", expression, issues.Err().Error()).
			WithCause(issues.Err()).
			WithDetails(map[string]any{"expression": expression})
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeValidation,
			"CEL program error for %q: %s", expression, err.Error()).
			WithCause(err).
			WithDetails(map[string]any{"expression": expression})
	}

	e.cache[expression] = prg
	return prg, nil
}

// buildActivation fills missing variables with zero values so evaluation
// never fails on an absent key.
func buildActivation(data map[string]any) map[string]any {
	zero := map[string]any{
		"workflow":            map[string]any{},
		"name":                "",
		"description":         "",
		"inputFields":         []any{},
		"nodeCount":           0,
		"hasConditionalEdges": false,
	}

	activation := make(map[string]any, len(celVariables))
	for _, key := range celVariables {
		if v, ok := data[key]; ok && v != nil {
			activation[key] = v
		} else {
			activation[key] = zero[key]
		}
	}
	return activation
}

var _ Engine = (*CELEngine)(nil)
