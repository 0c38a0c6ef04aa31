package runner

import (
	"context"
	"errors"

	"github.com/rendis/workflow-runner/pkg/contract"
)

// Caller invokes a named remote tool with an argument bag and returns the
// untyped, JSON-compatible result. Implementations own timeouts and
// cancellation; the pipeline issues one call at a time.
type Caller interface {
	Call(ctx context.Context, tool string, args map[string]any) (any, error)
}

// CallerFunc adapts a function to the Caller interface.
type CallerFunc func(ctx context.Context, tool string, args map[string]any) (any, error)

// Call implements Caller.
func (f CallerFunc) Call(ctx context.Context, tool string, args map[string]any) (any, error) {
	return f(ctx, tool, args)
}

// call invokes the caller and normalizes failures into errors tagged with
// the tool name. Errors that already carry a code keep it; the caller's
// error value is wrapped, never modified.
func call(ctx context.Context, c Caller, tool string, args map[string]any) (any, error) {
	out, err := c.Call(ctx, tool, args)
	if err == nil {
		return out, nil
	}

	var cerr *contract.Error
	if errors.As(err, &cerr) {
		wrapped := contract.NewError(cerr.Code, cerr.Message).WithTool(tool).WithCause(err)
		if cerr.Tool != "" {
			wrapped.Tool = cerr.Tool
		}
		wrapped.Issues = cerr.Issues
		wrapped.Details = cerr.Details
		return nil, wrapped
	}
	return nil, contract.NewError(contract.ErrCodeTransport, err.Error()).
		WithTool(tool).
		WithCause(err)
}
