package marrow

import (
	"time"

	"github.com/alnah/marrow/internal/assets"
	"github.com/alnah/marrow/internal/settings"
)

// Option configures a Viewer.
type Option func(*Viewer)

// defaultTimeout bounds PDF export when no timeout is given.
const defaultTimeout = 30 * time.Second

// WithHighlighting renders fenced code server-side with the named chroma
// style. The name is checked by New.
func WithHighlighting(style string) Option {
	return func(v *Viewer) {
		v.style = style
	}
}

// WithAssetLoader replaces the embedded page assets.
func WithAssetLoader(l assets.AssetLoader) Option {
	return func(v *Viewer) {
		v.assets = l
	}
}

// WithSettings shares a settings store between the viewer and its caller.
func WithSettings(s *settings.Store) Option {
	return func(v *Viewer) {
		v.settings = s
	}
}

// WithTimeout sets the PDF export timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("marrow: WithTimeout duration must be positive")
	}
	return func(v *Viewer) {
		v.timeout = d
	}
}

// withPDFRenderer injects the PDF backend (tests).
func withPDFRenderer(r pdfRenderer) Option {
	return func(v *Viewer) {
		v.pdf = r
	}
}
