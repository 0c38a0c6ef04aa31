package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"NEXUS_LIVE",
		"WORKFLOW_RUNNER_SERVER_CMD",
		"WORKFLOW_RUNNER_SERVER_ARGS",
		"WORKFLOW_RUNNER_SERVER_URL",
		"WORKFLOW_RUNNER_LOG_LEVEL",
		"WORKFLOW_RUNNER_FORMAT",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)
	assert.Equal(t, defaultConfig(), loadConfig())
}

func TestLoadConfig_SettingsFile(t *testing.T) {
	home := isolateEnv(t)
	dir := filepath.Join(home, ".workflow-runner")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"),
		[]byte(`{"live": true, "server_url": "http://localhost:8080/mcp", "format": "text"}`), 0o644))

	cfg := loadConfig()
	assert.True(t, cfg.Live)
	assert.Equal(t, "http://localhost:8080/mcp", cfg.ServerURL)
	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadConfig_EnvOverridesSettings(t *testing.T) {
	home := isolateEnv(t)
	dir := filepath.Join(home, ".workflow-runner")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"),
		[]byte(`{"live": true, "format": "text"}`), 0o644))

	t.Setenv("NEXUS_LIVE", "false")
	t.Setenv("WORKFLOW_RUNNER_SERVER_CMD", "nexus")
	t.Setenv("WORKFLOW_RUNNER_SERVER_ARGS", "serve --stdio")
	t.Setenv("WORKFLOW_RUNNER_LOG_LEVEL", "debug")
	t.Setenv("WORKFLOW_RUNNER_FORMAT", "json")

	cfg := loadConfig()
	assert.False(t, cfg.Live)
	assert.Equal(t, "nexus", cfg.ServerCmd)
	assert.Equal(t, []string{"serve", "--stdio"}, cfg.ServerArgs)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
}

func TestLoadConfig_MalformedSettingsIgnored(t *testing.T) {
	home := isolateEnv(t)
	dir := filepath.Join(home, ".workflow-runner")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "settings.json"), []byte(`{not json`), 0o644))

	assert.Equal(t, defaultConfig(), loadConfig())
}

func TestSettingsPath(t *testing.T) {
	home := isolateEnv(t)
	assert.Equal(t, filepath.Join(home, ".workflow-runner", "settings.json"), settingsPath())
}
