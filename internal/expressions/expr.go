package expressions

import (
	"context"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rendis/workflow-runner/pkg/contract"
)

// ExprEngine implements the Engine interface using expr-lang/expr. The data
// map is the expression environment, so every key is a top-level variable.
// Thread-safe: compiled *vm.Program objects are cached and reused.
type ExprEngine struct {
	mu    sync.RWMutex
	cache map[string]*vm.Program
}

// NewExprEngine creates a new Expr expression engine.
func NewExprEngine() *ExprEngine {
	return &ExprEngine{
		cache: make(map[string]*vm.Program),
	}
}

// Name returns the engine identifier.
func (e *ExprEngine) Name() string {
	return EngineExpr
}

// Compile checks the expression syntax without an environment.
func (e *ExprEngine) Compile(expression string) error {
	if expression == "" {
		return contract.NewError(contract.ErrCodeValidation, "empty expr expression")
	}
	if _, err := expr.Compile(expression, expr.AllowUndefinedVariables()); err != nil {
		return contract.NewErrorf(contract.ErrCodeValidation,
			"expr compile error in %q: %s", expression, err.Error()).
			WithCause(err)
	}
	return nil
}

// Evaluate compiles (or retrieves from cache) an Expr expression and
// evaluates it against the provided data.
func (e *ExprEngine) Evaluate(ctx context.Context, expression string, data map[string]any) (any, error) {
	if expression == "" {
		return nil, contract.NewError(contract.ErrCodeValidation, "empty expr expression")
	}

	env := data
	if env == nil {
		env = map[string]any{}
	}

	prg, err := e.getOrCompile(expression, env)
	if err != nil {
		return nil, err
	}

	out, err := vm.Run(prg, env)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeExecution,
			"expr evaluation failed for %q: %s", expression, err.Error()).
			WithCause(err).
			WithDetails(map[string]any{"expression": expression})
	}

	return out, nil
}

// getOrCompile returns a cached program or compiles and caches a new one.
// The first data map seen fixes the environment types for the expression.
func (e *ExprEngine) getOrCompile(expression string, env map[string]any) (*vm.Program, error) {
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

	prg, err := expr.Compile(expression,
		expr.Env(env),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, contract.NewErrorf(contract.ErrCodeValidation,
			"expr compile error in %q: %s", expression, err.Error()).
			WithCause(err).
			WithDetails(map[string]any{"expression": expression})
	}

	e.cache[expression] = prg
	return prg, nil
}

var _ Engine = (*ExprEngine)(nil)
