package runner

import (
	"os"

	"github.com/rendis/workflow-runner/pkg/contract"
	"gopkg.in/yaml.v3"
)

// Config controls one pipeline run. The zero value runs every discovered
// workflow with the built-in inputs and skips the trace query.
type Config struct {
	// RunGraphWorkflows disables the execution stage when set to false.
	RunGraphWorkflows *bool `json:"runGraphWorkflows,omitempty" yaml:"runGraphWorkflows,omitempty"`

	// TraceRunID enables the trace query stage. Empty means absent.
	TraceRunID     string `json:"traceRunId,omitempty" yaml:"traceRunId,omitempty"`
	TraceEventType string `json:"traceEventType,omitempty" yaml:"traceEventType,omitempty"`
	TraceLimit     int    `json:"traceLimit,omitempty" yaml:"traceLimit,omitempty"`

	// GraphInputs overrides the built-in argument bag per workflow name.
	GraphInputs map[string]map[string]any `json:"graphInputs,omitempty" yaml:"graphInputs,omitempty"`

	EnableAuditTrail bool `json:"enableAuditTrail,omitempty" yaml:"enableAuditTrail,omitempty"`

	// Select is an "<engine>:<expression>" predicate over discovered
	// workflows; only matching workflows are executed.
	Select string `json:"select,omitempty" yaml:"select,omitempty"`
}

// ShouldRunGraphWorkflows reports whether the execution stage is enabled.
func (c Config) ShouldRunGraphWorkflows() bool {
	return c.RunGraphWorkflows == nil || *c.RunGraphWorkflows
}

// Bool returns a pointer to b, for RunGraphWorkflows literals.
func Bool(b bool) *bool {
	return &b
}

// LoadConfigFile reads a YAML or JSON run configuration.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, contract.NewErrorf(contract.ErrCodeConfig, "read config %s: %s", path, err.Error()).WithCause(err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML or JSON run configuration.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, contract.NewErrorf(contract.ErrCodeConfig, "parse config: %s", err.Error()).WithCause(err)
	}
	return cfg, nil
}
