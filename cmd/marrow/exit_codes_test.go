package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/alnah/marrow"
	"github.com/alnah/marrow/internal/assets"
	"github.com/alnah/marrow/internal/config"
	"github.com/alnah/marrow/internal/markdown"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error classification
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"listen", fmt.Errorf("%w on :80", ErrListen), ExitGeneral},

		{"browser connect", marrow.ErrBrowserConnect, ExitBrowser},
		{"page create", marrow.ErrPageCreate, ExitBrowser},
		{"page load wrapped", fmt.Errorf("%w: timeout", marrow.ErrPageLoad), ExitBrowser},
		{"pdf generation", marrow.ErrPDFGeneration, ExitBrowser},

		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"load source", marrow.ErrLoadSource, ExitIO},
		{"parse notebook", marrow.ErrParseNotebook, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},

		{"usage", fmt.Errorf("%w: bad flag", ErrUsage), ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config page size", config.ErrInvalidPageSize, ExitUsage},
		{"config timeout", config.ErrInvalidTimeout, ExitUsage},
		{"pdf page size", marrow.ErrInvalidPageSize, ExitUsage},
		{"template", marrow.ErrTemplate, ExitUsage},
		{"style", markdown.ErrUnknownStyle, ExitUsage},
		{"asset base path", assets.ErrInvalidBasePath, ExitUsage},
		{"template asset", assets.ErrTemplateNotFound, ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint string // substring, empty means no hint
	}{
		{"timeout", context.DeadlineExceeded, "--timeout"},
		{"page load", marrow.ErrPageLoad, "--timeout"},
		{"config not found", fmt.Errorf("%w: tried a.yaml", config.ErrConfigNotFound), "use --config"},
		{"style", markdown.ErrUnknownStyle, "try one of:"},
		{"output directory", ErrWriteOutput, "writable"},
		{"no hint", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.wantHint == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantHint) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.wantHint)
			}
		})
	}
}

func TestSearchedPaths(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading config: %w", fmt.Errorf("%w: tried a.yaml, /home/u/.config/marrow/a.yaml", config.ErrConfigNotFound))
	got := searchedPaths(err)
	if len(got) != 2 || got[1] != "/home/u/.config/marrow/a.yaml" {
		t.Errorf("searchedPaths() = %v", got)
	}
	if got := searchedPaths(errors.New("plain")); got != nil {
		t.Errorf("searchedPaths(plain) = %v, want nil", got)
	}
}
