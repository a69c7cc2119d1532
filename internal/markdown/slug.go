package markdown

import "strings"

// Slugify converts heading text to an anchor identifier.
//
// The text is lower-cased, every rune that is not an ASCII letter or digit
// becomes a separator, and runs of separators collapse to a single '-'.
// Leading and trailing separators are dropped. scrollToHeading in viewer.js
// reimplements this byte for byte; anchors are matched by string equality.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pending := false
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	return b.String()
}
