package main

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/marrow"
	"github.com/alnah/marrow/internal/assets"
	"github.com/alnah/marrow/internal/config"
	"github.com/alnah/marrow/internal/hints"
	"github.com/alnah/marrow/internal/markdown"
)

// Exit codes for the marrow CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, unreadable input
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, marrow.ErrBrowserConnect) ||
		errors.Is(err, marrow.ErrPageCreate) ||
		errors.Is(err, marrow.ErrPageLoad) ||
		errors.Is(err, marrow.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, marrow.ErrLoadSource) ||
		errors.Is(err, marrow.ErrParseNotebook) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidPageSize) ||
		errors.Is(err, config.ErrInvalidTimeout) ||
		errors.Is(err, marrow.ErrInvalidPageSize) ||
		errors.Is(err, marrow.ErrTemplate) ||
		errors.Is(err, markdown.ErrUnknownStyle) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrStyleNotFound) ||
		errors.Is(err, assets.ErrScriptNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint to print after err, if one applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, marrow.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, marrow.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedPaths(err))
	case errors.Is(err, markdown.ErrUnknownStyle):
		return hints.ForHighlightStyle(styles.Names())
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}

// searchedPaths extracts the locations listed by a config-not-found error.
func searchedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
