package marrow

import "errors"

// Sentinel errors for library operations.
var (
	// Document loading. Open reports these through View.Err and never
	// returns them.
	ErrLoadSource    = errors.New("could not load file")
	ErrParseNotebook = errors.New("could not parse notebook")

	ErrTemplate = errors.New("page template rendering failed")

	// PDF export.
	ErrPDFGeneration   = errors.New("PDF generation failed")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrPageCreate      = errors.New("failed to create browser page")
	ErrPageLoad        = errors.New("failed to load page")
	ErrInvalidPageSize = errors.New("invalid page size")
)
