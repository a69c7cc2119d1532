package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/marrow/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	ConfigPath   string        // MARROW_CONFIG: config file name or path
	Addr         string        // MARROW_ADDR: listen address of the view server
	Highlight    string        // MARROW_HIGHLIGHT: chroma style for code blocks
	SettingsPath string        // MARROW_SETTINGS: per-extension settings file
	AssetPath    string        // MARROW_ASSETS: custom asset directory
	Timeout      time.Duration // MARROW_TIMEOUT: PDF export timeout
	PageSize     string        // MARROW_PAGE_SIZE: letter, a4, legal
}

// knownEnvVars lists valid MARROW_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MARROW_CONFIG":    true,
	"MARROW_ADDR":      true,
	"MARROW_HIGHLIGHT": true,
	"MARROW_SETTINGS":  true,
	"MARROW_ASSETS":    true,
	"MARROW_TIMEOUT":   true,
	"MARROW_PAGE_SIZE": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:   os.Getenv("MARROW_CONFIG"),
		Addr:         os.Getenv("MARROW_ADDR"),
		Highlight:    os.Getenv("MARROW_HIGHLIGHT"),
		SettingsPath: os.Getenv("MARROW_SETTINGS"),
		AssetPath:    os.Getenv("MARROW_ASSETS"),
		PageSize:     os.Getenv("MARROW_PAGE_SIZE"),
	}

	if timeout := os.Getenv("MARROW_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MARROW_* variables.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MARROW_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is still its
// default. This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if env.Addr != "" && cfg.Server.Addr == defaults.Server.Addr {
		cfg.Server.Addr = env.Addr
	}
	if env.Highlight != "" && cfg.Render.Highlight == "" {
		cfg.Render.Highlight = env.Highlight
	}
	if env.SettingsPath != "" && cfg.Settings.Path == "" {
		cfg.Settings.Path = env.SettingsPath
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 && cfg.PDF.Timeout == defaults.PDF.Timeout {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.PageSize != "" && cfg.PDF.PageSize == defaults.PDF.PageSize {
		cfg.PDF.PageSize = env.PageSize
	}
}
