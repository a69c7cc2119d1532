package marrow

import "strings"

// Title segment limits, in characters.
const (
	maxHeadingTitle  = 20
	maxFilenameTitle = 20
)

const ellipsis = "…"

// WindowTitle builds "<heading> · <file> · Marrow", dropping the heading
// segment when the document has none.
func WindowTitle(firstHeading, filename string) string {
	file := TruncateMiddle(filename, maxFilenameTitle)
	if firstHeading == "" {
		return file + " · " + AppName
	}
	return TruncateEnd(firstHeading, maxHeadingTitle) + " · " + file + " · " + AppName
}

// TruncateEnd shortens s to limit characters, the last being an ellipsis.
func TruncateEnd(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit < 1 {
		return ""
	}
	return string(r[:limit-1]) + ellipsis
}

// TruncateMiddle shortens s to limit characters by replacing its middle with an
// ellipsis, keeping the extension of a file name visible.
func TruncateMiddle(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit < 1 {
		return ""
	}
	keep := limit - 1
	left := keep / 2
	right := keep - left

	var b strings.Builder
	b.WriteString(string(r[:left]))
	b.WriteString(ellipsis)
	b.WriteString(string(r[len(r)-right:]))
	return b.String()
}
