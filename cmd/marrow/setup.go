package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alnah/marrow"
	"github.com/alnah/marrow/internal/assets"
	"github.com/alnah/marrow/internal/config"
	"github.com/alnah/marrow/internal/settings"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input specified")
	ErrWriteOutput = errors.New("failed to write output")
)

// loadConfig loads the config file named by the flags or MARROW_CONFIG, then
// applies environment overrides.
func loadConfig(common commonFlags, env *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}
	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergeRenderFlags applies rendering flags to cfg (CLI wins).
func mergeRenderFlags(f renderFlags, cfg *config.Config) {
	if f.highlight != "" {
		cfg.Render.Highlight = f.highlight
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// newViewer builds a Viewer from cfg. A nil store keeps settings in memory.
func newViewer(cfg *config.Config, store *settings.Store) (*marrow.Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout, err := cfg.PDF.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	opts := []marrow.Option{
		marrow.WithHighlighting(cfg.Render.Highlight),
		marrow.WithTimeout(timeout),
	}
	if cfg.Assets.BasePath != "" {
		loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, marrow.WithAssetLoader(loader))
	}
	if store != nil {
		opts = append(opts, marrow.WithSettings(store))
	}
	return marrow.New(opts...)
}

// openSettings opens the persistent settings store. A corrupt file is
// reported and replaced by defaults.
func openSettings(path string, w io.Writer) (*settings.Store, error) {
	if path == "" {
		var err error
		if path, err = settings.DefaultPath(); err != nil {
			return nil, fmt.Errorf("locating settings: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating settings directory: %w", err)
	}
	store, err := settings.Open(path)
	if err != nil {
		fmt.Fprintf(w, "warning: %v (using defaults)\n", err)
	}
	return store, nil
}

// newLogger returns the structured logger of long-running commands.
func newLogger(w io.Writer, common commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// singleInput returns the one positional argument of a file command.
func singleInput(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", ErrNoInput
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one file, got %d", ErrUsage, len(args))
	}
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(path string, data []byte, w io.Writer) error {
	if path == "" {
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteOutput, err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
