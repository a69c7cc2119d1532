// Package config loads the marrow configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/marrow/internal/fileutil"
	"github.com/alnah/marrow/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidTimeout  = errors.New("invalid timeout")
)

// Field length limits.
const (
	MaxPathLength     = 4096 // Filesystem paths
	MaxAddrLength     = 255  // host:port
	MaxStyleLength    = 64   // chroma style name
	MaxPageSizeLength = 10   // "letter", "a4", "legal"
	MaxTimeoutLength  = 20   // "2m30s"
)

// Defaults applied by DefaultConfig.
const (
	DefaultAddr       = "127.0.0.1:0"
	DefaultPDFTimeout = 30 * time.Second
	DefaultPageSize   = "letter"
)

// appDir is the directory name under the user config directory.
const appDir = "marrow"

// Config holds all configuration for the viewer.
type Config struct {
	Render   RenderConfig   `yaml:"render"`
	Server   ServerConfig   `yaml:"server"`
	Assets   AssetsConfig   `yaml:"assets"`
	Settings SettingsConfig `yaml:"settings"`
	PDF      PDFConfig      `yaml:"pdf"`
}

// RenderConfig defines Markdown rendering options.
type RenderConfig struct {
	Highlight string `yaml:"highlight"` // chroma style for server-side highlighting (empty = client-side)
}

// ServerConfig defines the local display server.
type ServerConfig struct {
	Addr string `yaml:"addr"` // listen address, port 0 picks a free port
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// SettingsConfig defines where per-extension view settings are persisted.
type SettingsConfig struct {
	Path string `yaml:"path"` // Empty = <user config dir>/marrow/settings.yaml
}

// PDFConfig defines PDF export options.
type PDFConfig struct {
	Timeout       string `yaml:"timeout"`       // Go duration, e.g. "45s"
	PageSize      string `yaml:"pageSize"`      // "letter", "a4", "legal"
	ExpandOutputs bool   `yaml:"expandOutputs"` // render truncated notebook outputs in full
}

// Validate checks field lengths and enumerated values.
func (c *Config) Validate() error {
	if err := validateFieldLength("render.highlight", c.Render.Highlight, MaxStyleLength); err != nil {
		return err
	}
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("settings.path", c.Settings.Path, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("pdf.timeout", c.PDF.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if c.PDF.Timeout != "" {
		if _, err := c.PDF.TimeoutDuration(); err != nil {
			return err
		}
	}

	if err := validateFieldLength("pdf.pageSize", c.PDF.PageSize, MaxPageSizeLength); err != nil {
		return err
	}
	if c.PDF.PageSize != "" {
		switch strings.ToLower(c.PDF.PageSize) {
		case "letter", "a4", "legal":
			// valid
		default:
			return fmt.Errorf("%w: pdf.pageSize %q (must be letter, a4, or legal)", ErrInvalidPageSize, c.PDF.PageSize)
		}
	}

	return nil
}

// TimeoutDuration parses Timeout, falling back to DefaultPDFTimeout when empty.
func (p PDFConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return DefaultPDFTimeout, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: pdf.timeout %q (must be a positive duration like 30s)", ErrInvalidTimeout, p.Timeout)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Render:   RenderConfig{Highlight: ""},
		Server:   ServerConfig{Addr: DefaultAddr},
		Assets:   AssetsConfig{BasePath: ""},
		Settings: SettingsConfig{Path: ""},
		PDF: PDFConfig{
			Timeout:       DefaultPDFTimeout.String(),
			PageSize:      DefaultPageSize,
			ExpandOutputs: true,
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig value.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UserDir returns the marrow directory under the user config directory.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDir), nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/marrow/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userDir, err := UserDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
