package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rendis/workflow-runner/pkg/contract"
)

// Format selects the textual encoding of a report.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatText     Format = "text"
)

// Formats lists every supported format.
var Formats = []Format{FormatMarkdown, FormatJSON, FormatText}

// ParseFormat resolves a format name. An empty name means markdown.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "":
		return FormatMarkdown, nil
	case FormatMarkdown, FormatJSON, FormatText:
		return f, nil
	default:
		return "", contract.NewErrorf(contract.ErrCodeConfig,
			"unknown report format %q (want markdown, json or text)", name)
	}
}

// Generate renders r in the given format. It is pure: no I/O, no state.
func Generate(r *contract.RunnerReport, format Format) (string, error) {
	switch format {
	case "", FormatMarkdown:
		return markdown(r), nil
	case FormatJSON:
		return jsonReport(r)
	case FormatText:
		return text(r), nil
	default:
		return "", contract.NewErrorf(contract.ErrCodeConfig, "unknown report format %q", format)
	}
}

func status(res contract.WorkflowRunResult) string {
	if res.Passed() {
		return "PASS"
	}
	return "FAIL"
}

func markdown(r *contract.RunnerReport) string {
	lines := []string{"# Workflow Runner Report", ""}

	lines = append(lines,
		fmt.Sprintf("**Templates:** %d", r.TemplateCount),
		fmt.Sprintf("**Graph Workflows:** %d", r.GraphWorkflowCount),
		fmt.Sprintf("**Results:** %d passed, %d failed", r.Passed, r.Failed),
		"",
	)

	if len(r.GraphResults) > 0 {
		lines = append(lines,
			"## Graph Workflow Results", "",
			"| Workflow | Status | Steps | Nodes | Events | Checkpoints |",
			"|----------|--------|-------|-------|--------|-------------|",
		)
		for _, res := range r.GraphResults {
			lines = append(lines, fmt.Sprintf("| %s | %s | %d | %d | %d | %d |",
				res.Name, status(res), res.StepsExecuted, res.NodesExecuted, res.EventCount, res.Checkpoints))
		}
		lines = append(lines, "")
	}

	var failures []string
	for _, res := range r.GraphResults {
		if res.Passed() {
			continue
		}
		reason := res.Error
		if reason == "" {
			reason = string(res.Status)
		}
		failures = append(failures, fmt.Sprintf("- **%s**: %s", res.Name, reason))
	}
	if len(failures) > 0 {
		lines = append(lines, "## Failures", "")
		lines = append(lines, failures...)
		lines = append(lines, "")
	}

	if t := r.TraceResult; t != nil {
		lines = append(lines,
			"## Trace Data", "",
			fmt.Sprintf("- Run ID: %s", t.RunID),
			fmt.Sprintf("- Events: %d", t.TotalEvents),
			fmt.Sprintf("- Source: %s", t.Source),
			"",
		)
	}

	return strings.Join(lines, "\n")
}

func text(r *contract.RunnerReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Workflow Runner: %d/%d passed", r.Passed, len(r.GraphResults))
	for _, res := range r.GraphResults {
		fmt.Fprintf(&b, "\n[%s] %s (%d steps, %dms)", status(res), res.Name, res.StepsExecuted, res.DurationMs)
	}
	return b.String()
}

func jsonReport(r *contract.RunnerReport) (string, error) {
	out := *r
	if out.GraphResults == nil {
		out.GraphResults = []contract.WorkflowRunResult{}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}
