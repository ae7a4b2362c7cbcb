package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

const (
	envConfigPath     = "FRAMELINK_CONFIG"
	envAllowedInboxes = "FRAMELINK_ALLOWED_INBOXES"
	envTimeoutMs      = "FRAMELINK_TIMEOUT_MS"
	envTransportURL   = "FRAMELINK_TRANSPORT_URL"

	defaultTimeoutMs    = 5000
	defaultPanelEntries = 200
)

// Config is the root runtime configuration loaded from config.json.
type Config struct {
	Bridge    BridgeConfig    `json:"bridge"`
	Transport TransportConfig `json:"transport"`
	Panel     PanelConfig     `json:"panel,omitempty"`
	Logging   LoggingConfig   `json:"logging,omitempty"`
}

// BridgeConfig controls the context controller.
type BridgeConfig struct {
	Debug           bool    `json:"debug"`
	TimeoutMs       int     `json:"timeout_ms"`
	AllowedInboxIDs []int64 `json:"allowed_inbox_ids"`
}

// TransportConfig configures the host connection.
type TransportConfig struct {
	URL    string `json:"url"`
	Origin string `json:"origin,omitempty"`
}

// PanelConfig configures the diagnostic panel sink.
type PanelConfig struct {
	ID         string `json:"id,omitempty"`
	MaxEntries int    `json:"max_entries,omitempty"`
}

// LoggingConfig controls structured log output format and verbosity.
type LoggingConfig struct {
	Format    string `json:"format,omitempty"`
	Level     string `json:"level,omitempty"`
	AddSource bool   `json:"add_source,omitempty"`
}

// Default returns the configuration used when no file is present: open
// inbox policy, five second watchdog, debug off.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig resolves config.json, unmarshals it, and applies environment
// overrides and defaults.
func LoadConfig() (*Config, error) {
	configPath, err := findConfigPath()
	if err != nil {
		return nil, err
	}
	if configPath == "" {
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Bridge.TimeoutMs <= 0 {
		cfg.Bridge.TimeoutMs = defaultTimeoutMs
	}
	if cfg.Panel.MaxEntries <= 0 {
		cfg.Panel.MaxEntries = defaultPanelEntries
	}
}

// applyEnvOverrides injects selected env-driven settings on top of file
// config.
func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if url := strings.TrimSpace(os.Getenv(envTransportURL)); url != "" {
		cfg.Transport.URL = url
	}

	if raw := strings.TrimSpace(os.Getenv(envAllowedInboxes)); raw != "" {
		cfg.Bridge.AllowedInboxIDs = parseIDList(raw)
	}

	if raw := strings.TrimSpace(os.Getenv(envTimeoutMs)); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.Bridge.TimeoutMs = value
		}
	}
}

// parseIDList splits comma-separated inbox ids, dropping anything that is
// not an integer.
func parseIDList(input string) []int64 {
	parts := strings.Split(input, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		id, err := strconv.ParseInt(trimmed, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return slices.Clip(ids)
}

// findConfigPath resolves the active config file location.
//
// Precedence is FRAMELINK_CONFIG first, then cwd-local fallback paths. An
// empty result with nil error means "no config file, run on defaults".
func findConfigPath() (string, error) {
	if value := strings.TrimSpace(os.Getenv(envConfigPath)); value != "" {
		if info, err := os.Stat(value); err == nil && !info.IsDir() {
			return value, nil
		}
		return "", fmt.Errorf("%s does not point to a file: %s", envConfigPath, value)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get current working directory: %w", err)
	}

	candidates := []string{
		filepath.Join(cwd, "config.json"),
		filepath.Join(cwd, "framelink.json"),
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", nil
}
