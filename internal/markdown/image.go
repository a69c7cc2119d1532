package markdown

import (
	"encoding/base64"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ResolveImage returns the src to emit for an image reference.
//
// Web URLs, data URIs and file:// URLs pass through. Absolute paths are read
// as is, other references are joined with baseDir. When the file can be read
// it is inlined as a base64 data URI. A missing file or an empty baseDir
// leaves the reference as is, so a broken image renders broken instead of
// failing the document.
func ResolveImage(ref, baseDir string) string {
	if strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "file://") ||
		strings.HasPrefix(ref, "data:") {
		return ref
	}
	if baseDir == "" || ref == "" {
		return ref
	}

	candidates := []string{ref}
	if unescaped, err := url.PathUnescape(ref); err == nil && unescaped != ref {
		candidates = append(candidates, unescaped)
	}

	for _, c := range candidates {
		path := filepath.FromSlash(c)
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		data, err := os.ReadFile(path) // #nosec G304 -- images referenced by the document being viewed
		if err != nil {
			continue
		}
		return "data:" + MimeType(path) + ";base64," + base64.StdEncoding.EncodeToString(data)
	}
	return ref
}

// MimeType maps an image file extension to its MIME type.
func MimeType(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	case "bmp":
		return "image/bmp"
	default:
		return "application/octet-stream"
	}
}
