package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the process-level settings of workflow-runner.
// Priority: flags > env vars > settings.json > defaults.
type Config struct {
	// Live selects the MCP caller instead of the fixture caller.
	Live       bool     `json:"live"`
	ServerCmd  string   `json:"server_cmd"`
	ServerArgs []string `json:"server_args"`
	ServerURL  string   `json:"server_url"`
	LogLevel   string   `json:"log_level"`
	Format     string   `json:"format"`
}

func defaultConfig() Config {
	return Config{
		LogLevel: "warn",
		Format:   "markdown",
	}
}

func runnerDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".workflow-runner"
	}
	return filepath.Join(home, ".workflow-runner")
}

func settingsPath() string {
	return filepath.Join(runnerDir(), "settings.json")
}

func loadConfig() Config {
	cfg := defaultConfig()

	// Layer 2: settings.json (ignore if missing).
	if data, err := os.ReadFile(settingsPath()); err == nil {
		_ = json.Unmarshal(data, &cfg)
	}

	// Layer 3: env vars override.
	if v := os.Getenv("NEXUS_LIVE"); v != "" {
		cfg.Live = v == "true"
	}
	if v := os.Getenv("WORKFLOW_RUNNER_SERVER_CMD"); v != "" {
		cfg.ServerCmd = v
	}
	if v := os.Getenv("WORKFLOW_RUNNER_SERVER_ARGS"); v != "" {
		cfg.ServerArgs = strings.Fields(v)
	}
	if v := os.Getenv("WORKFLOW_RUNNER_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("WORKFLOW_RUNNER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("WORKFLOW_RUNNER_FORMAT"); v != "" {
		cfg.Format = v
	}

	return cfg
}
