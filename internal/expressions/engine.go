package expressions

import (
	"context"
	"fmt"
)

// Engine evaluates expressions against a JSON-like data map.
// Three implementations: CEL, Expr and GoJQ.
type Engine interface {
	Name() string
	Compile(expression string) error
	Evaluate(ctx context.Context, expression string, data map[string]any) (any, error)
}

// Engine names accepted as selector prefixes.
const (
	EngineCEL  = "cel"
	EngineExpr = "expr"
	EngineJQ   = "jq"
)

// NewEngine builds the engine registered under name.
func NewEngine(name string) (Engine, error) {
	switch name {
	case EngineCEL:
		return NewCELEngine()
	case EngineExpr:
		return NewExprEngine(), nil
	case EngineJQ:
		return NewGoJQEngine(), nil
	default:
		return nil, fmt.Errorf("unknown expression engine %q", name)
	}
}
