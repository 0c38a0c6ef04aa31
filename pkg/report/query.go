package report

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rendis/workflow-runner/internal/expressions"
	"github.com/rendis/workflow-runner/pkg/contract"
)

// Query applies a jq program to the JSON form of r and returns the result
// as indented JSON. Several outputs are returned as an array.
func Query(ctx context.Context, r *contract.RunnerReport, program string) (string, error) {
	raw, err := jsonReport(r)
	if err != nil {
		return "", err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return "", fmt.Errorf("decode report: %w", err)
	}

	out, err := expressions.NewGoJQEngine().Evaluate(ctx, program, doc)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal query result: %w", err)
	}
	return string(data), nil
}
