package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// TOCEntry is one heading of a document outline.
type TOCEntry struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Slug returns the anchor id the renderer assigns to this heading.
func (e TOCEntry) Slug() string {
	return Slugify(e.Text)
}

var tocMarkdown = goldmark.New(goldmark.WithExtensions(extension.GFM, extension.Footnote))

// ExtractTOC lists the headings of source in document order. Headings whose
// plain text is empty are omitted.
func ExtractTOC(source []byte) []TOCEntry {
	doc := tocMarkdown.Parser().Parse(text.NewReader(source))

	var entries []TOCEntry
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if plain := HeadingText(h, source); plain != "" {
			entries = append(entries, TOCEntry{Level: h.Level, Text: plain})
		}
		return ast.WalkSkipChildren, nil
	})
	return entries
}
