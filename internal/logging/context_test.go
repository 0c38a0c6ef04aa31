package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeys(t *testing.T) {
	ctx := context.Background()

	assert.Equal(t, "", RunID(ctx))
	assert.Equal(t, "", Workflow(ctx))
	assert.Equal(t, "", Tool(ctx))

	ctx = WithRunID(ctx, "run-123")
	ctx = WithWorkflow(ctx, "echo")
	ctx = WithTool(ctx, "run_graph_workflow")

	assert.Equal(t, "run-123", RunID(ctx))
	assert.Equal(t, "echo", Workflow(ctx))
	assert.Equal(t, "run_graph_workflow", Tool(ctx))
}

func TestLogWith(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithRunID(context.Background(), "run-abc")
	ctx = WithWorkflow(ctx, "pipeline")
	ctx = WithTool(ctx, "query_trace")

	LogWith(ctx, logger).Info("test message")

	output := buf.String()
	assert.Contains(t, output, "run_id=run-abc")
	assert.Contains(t, output, "workflow=pipeline")
	assert.Contains(t, output, "tool=query_trace")
	assert.Contains(t, output, "test message")
}

func TestLogWithEmptyContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	LogWith(context.Background(), logger).Info("no context")

	output := buf.String()
	assert.NotContains(t, output, "run_id")
	assert.NotContains(t, output, "workflow=")
	assert.Contains(t, output, "no context")
}

func TestCorrelationHandler(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewCorrelationHandler(inner))

	ctx := WithWorkflow(WithRunID(context.Background(), "run-auto"), "code-review")
	logger.InfoContext(ctx, "auto inject")

	output := buf.String()
	assert.Contains(t, output, `"run_id":"run-auto"`)
	assert.Contains(t, output, `"workflow":"code-review"`)
	assert.NotContains(t, output, `"tool"`)
}

func TestCorrelationHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewCorrelationHandler(inner).WithAttrs([]slog.Attr{slog.String("component", "runner")}))

	logger.InfoContext(WithRunID(context.Background(), "run-attr"), "with attrs")

	output := buf.String()
	assert.Contains(t, output, `"run_id":"run-attr"`)
	assert.Contains(t, output, `"component":"runner"`)
}

func TestCorrelationHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewCorrelationHandler(inner).WithGroup("runner"))

	logger.InfoContext(WithRunID(context.Background(), "run-grp"), "grouped", "key", "val")

	output := buf.String()
	assert.Contains(t, output, "run-grp")
	assert.Contains(t, output, "grouped")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseLevel(tc.in))
		})
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "warn")

	logger.Info("hidden")
	logger.WarnContext(WithTool(context.Background(), "list_workflows"), "shown")

	output := buf.String()
	assert.NotContains(t, output, "hidden")
	assert.Contains(t, output, "shown")
	assert.Contains(t, output, "tool=list_workflows")
}
