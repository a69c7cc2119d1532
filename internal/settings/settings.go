// Package settings keeps the per-extension view settings the page reports
// back through save_settings messages, persisted as YAML.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/alnah/marrow/internal/config"
	"github.com/alnah/marrow/internal/yamlutil"
)

// FileName is the settings file created under the user config directory.
const FileName = "settings.yaml"

// DefaultExtension is used for documents without a file extension.
const DefaultExtension = "md"

// Sentinel errors for settings operations.
var (
	ErrSettingsParse = errors.New("failed to parse settings")
	ErrEmptyExt      = errors.New("settings extension cannot be empty")
)

// Settings is the view state of one document type.
type Settings struct {
	WindowWidth   float64 `json:"window_width" yaml:"window_width"`
	WindowHeight  float64 `json:"window_height" yaml:"window_height"`
	TOCVisible    bool    `json:"toc_visible" yaml:"toc_visible"`
	ViewMode      string  `json:"view_mode" yaml:"view_mode"`
	FontSizeLevel int     `json:"font_size_level" yaml:"font_size_level"`
	Theme         string  `json:"theme" yaml:"theme"`
}

// Default returns the settings used for extensions never saved before.
func Default() Settings {
	return Settings{
		WindowWidth:   800,
		WindowHeight:  900,
		TOCVisible:    true,
		ViewMode:      "github",
		FontSizeLevel: 0,
		Theme:         "dark",
	}
}

// Decode parses the JSON object sent by the page. Fields the page omits keep
// their Default value.
func Decode(data []byte) (Settings, error) {
	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("%w: %v", ErrSettingsParse, err)
	}
	return s, nil
}

// File is the on-disk document.
type File struct {
	Default    Settings            `yaml:"default"`
	Extensions map[string]Settings `yaml:"extensions"`
}

// Store is safe for concurrent use by every open view.
type Store struct {
	mu   sync.Mutex
	path string
	file File
}

// DefaultPath returns <user config dir>/marrow/settings.yaml.
func DefaultPath() (string, error) {
	dir, err := config.UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Open loads the store at path. A missing file yields defaults. An unreadable
// or corrupt file also yields a usable store with defaults, together with an
// error the caller may report. An empty path keeps settings in memory only.
func Open(path string) (*Store, error) {
	s := &Store{path: path, file: File{Default: Default(), Extensions: map[string]Settings{}}}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- path comes from config
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}

	loaded := File{Default: Default()}
	if err := yamlutil.Unmarshal(data, &loaded); err != nil {
		return s, fmt.Errorf("%w: %s: %v", ErrSettingsParse, path, err)
	}
	if loaded.Extensions == nil {
		loaded.Extensions = map[string]Settings{}
	}
	s.file = loaded
	return s, nil
}

// Path returns the backing file, empty for in-memory stores.
func (s *Store) Path() string {
	return s.path
}

// For returns the settings saved for ext, or the default entry.
func (s *Store) For(ext string) Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.file.Extensions[ext]; ok {
		return v
	}
	return s.file.Default
}

// Set records settings for ext and persists the whole file.
func (s *Store) Set(ext string, v Settings) error {
	if ext == "" {
		return ErrEmptyExt
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.Extensions[ext] = v
	if s.path == "" {
		return nil
	}
	return yamlutil.WriteFile(s.path, s.file)
}

// Snapshot returns a copy of the stored document.
func (s *Store) Snapshot() File {
	s.mu.Lock()
	defer s.mu.Unlock()
	return File{Default: s.file.Default, Extensions: maps.Clone(s.file.Extensions)}
}

// JSON returns s encoded for the page, with the document extension added.
func JSON(s Settings, ext string) string {
	data, err := json.Marshal(struct {
		Settings
		Extension string `json:"extension"`
	}{s, ext})
	if err != nil {
		return "{}"
	}
	return string(data)
}
