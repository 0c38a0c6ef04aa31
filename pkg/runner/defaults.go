package runner

import "maps"

// DefaultGraphInputs holds the built-in argument bag for every known graph
// workflow. Workflows not listed here run with an empty bag.
var DefaultGraphInputs = map[string]map[string]any{
	"echo":     {"input": "workflow-runner test"},
	"pipeline": {"input": "validation test data"},
	"code-review": {
		"code": "function add(a: number, b: number): number { return a + b; }",
	},
	"security-scan": {
		"code": `import fs from "fs"; fs.readFileSync("/etc/passwd");`,
	},
	"security-audit": {
		"code": "const password = process.env.DB_PASSWORD;",
	},
	"test-generation": {
		"code": "export function sum(a: number, b: number): number { return a + b; }",
	},
	"documentation": {
		"topic": "API design",
		"code":  `app.get("/users", getUsers);`,
	},
}

// resolveInputs returns the configured argument bag for name, falling back
// to the built-in default. A nil override counts as unset. The result is
// always a fresh map.
func resolveInputs(overrides map[string]map[string]any, name string) map[string]any {
	if in := overrides[name]; in != nil {
		return maps.Clone(in)
	}
	if in, ok := DefaultGraphInputs[name]; ok {
		return maps.Clone(in)
	}
	return map[string]any{}
}

func orEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}
