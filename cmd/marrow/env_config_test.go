package main

// Notes:
// - Tests here call t.Setenv and therefore cannot run in parallel.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/marrow/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variables
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("MARROW_CONFIG", "work")
	t.Setenv("MARROW_ADDR", "127.0.0.1:9000")
	t.Setenv("MARROW_HIGHLIGHT", "monokai")
	t.Setenv("MARROW_SETTINGS", "/tmp/s.yaml")
	t.Setenv("MARROW_ASSETS", "/tmp/assets")
	t.Setenv("MARROW_TIMEOUT", "45s")
	t.Setenv("MARROW_PAGE_SIZE", "a4")

	want := &envConfig{
		ConfigPath:   "work",
		Addr:         "127.0.0.1:9000",
		Highlight:    "monokai",
		SettingsPath: "/tmp/s.yaml",
		AssetPath:    "/tmp/assets",
		Timeout:      45 * time.Second,
		PageSize:     "a4",
	}
	if diff := cmp.Diff(want, loadEnvConfig()); diff != "" {
		t.Errorf("loadEnvConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadEnvConfig_InvalidTimeout(t *testing.T) {
	for _, value := range []string{"soon", "-5s", "0s"} {
		t.Setenv("MARROW_TIMEOUT", value)
		if got := loadEnvConfig().Timeout; got != 0 {
			t.Errorf("MARROW_TIMEOUT=%q gave %v, want 0", value, got)
		}
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("MARROW_ADRR", "x")
	t.Setenv("MARROW_ADDR", "127.0.0.1:0")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	got := buf.String()
	if !strings.Contains(got, "unknown environment variable MARROW_ADRR") {
		t.Errorf("warning missing: %q", got)
	}
	if strings.Contains(got, "MARROW_ADDR ") {
		t.Errorf("known variable reported: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Precedence over config file values
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Addr:         "127.0.0.1:9000",
		Highlight:    "monokai",
		SettingsPath: "/tmp/s.yaml",
		AssetPath:    "/tmp/assets",
		Timeout:      time.Minute,
		PageSize:     "a4",
	}

	t.Run("defaults are overridden", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Render.Highlight != "monokai" ||
			cfg.Settings.Path != "/tmp/s.yaml" || cfg.Assets.BasePath != "/tmp/assets" ||
			cfg.PDF.Timeout != "1m0s" || cfg.PDF.PageSize != "a4" {
			t.Errorf("applyEnvConfig() = %+v", cfg)
		}
	})

	t.Run("file values win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Server.Addr = "127.0.0.1:7000"
		cfg.Render.Highlight = "dracula"
		cfg.PDF.PageSize = "legal"
		applyEnvConfig(env, cfg)

		if cfg.Server.Addr != "127.0.0.1:7000" || cfg.Render.Highlight != "dracula" || cfg.PDF.PageSize != "legal" {
			t.Errorf("applyEnvConfig() overrode file values: %+v", cfg)
		}
	})

	t.Run("empty env changes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(&envConfig{}, cfg)
		if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
			t.Errorf("config changed (-want +got):\n%s", diff)
		}
	})
}

func TestLoadConfig_FromEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "marrow.yaml", "render:\n  highlight: dracula\n")
	t.Setenv("MARROW_CONFIG", path)
	t.Setenv("MARROW_HIGHLIGHT", "monokai")

	cfg, err := loadConfig(commonFlags{}, loadEnvConfig())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Highlight != "dracula" {
		t.Errorf("Highlight = %q, want file value %q", cfg.Render.Highlight, "dracula")
	}
}
