package marrow

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/alnah/marrow/internal/fileutil"
)

// LinkAction is what the viewer does with a followed link.
type LinkAction int

const (
	// LinkBlock refuses the navigation.
	LinkBlock LinkAction = iota
	// LinkAllow lets the page navigate in place (about:, data: and in-page anchors).
	LinkAllow
	// LinkExternal hands a web URL to the system browser.
	LinkExternal
	// LinkLocal opens an existing local file; Target is its path.
	LinkLocal
)

func (a LinkAction) String() string {
	switch a {
	case LinkAllow:
		return "allow"
	case LinkExternal:
		return "external"
	case LinkLocal:
		return "local"
	default:
		return "block"
	}
}

// Link is a classified navigation request.
type Link struct {
	Action LinkAction
	Target string
}

// ClassifyLink decides how to follow href from a document in baseDir.
// Relative links resolve against baseDir and are opened only when the file
// exists; anything unrecognized is blocked.
func ClassifyLink(href, baseDir string) Link {
	switch {
	case strings.HasPrefix(href, "about:"), strings.HasPrefix(href, "data:"):
		return Link{Action: LinkAllow, Target: href}
	case fileutil.IsURL(href):
		return Link{Action: LinkExternal, Target: href}
	case strings.HasPrefix(href, "#"):
		return Link{Action: LinkAllow, Target: href}
	case strings.HasPrefix(href, "file://"):
		path := decodePath(strings.TrimPrefix(href, "file://"))
		if path != "" && fileutil.Exists(path) {
			return Link{Action: LinkLocal, Target: path}
		}
		return Link{Action: LinkBlock}
	}

	if baseDir == "" || strings.Contains(href, "://") || strings.HasPrefix(href, "javascript:") {
		return Link{Action: LinkBlock}
	}
	rel := decodePath(href)
	if rel == "" {
		return Link{Action: LinkBlock}
	}
	path := rel
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, rel)
	}
	if fileutil.Exists(path) {
		return Link{Action: LinkLocal, Target: path}
	}
	return Link{Action: LinkBlock}
}

// decodePath percent-decodes p and drops a #fragment.
func decodePath(p string) string {
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[:i]
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	return filepath.FromSlash(p)
}
