package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// HeadingText returns the plain text of a heading: the concatenation of its
// text nodes and code span contents. Emphasis and link markers, raw inline
// HTML and line breaks contribute nothing.
func HeadingText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			b.Write(v.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.String:
			b.Write(v.Value)
		case *ast.Text:
			value := v.Segment.Value(src)
			if _, inCode := v.Parent().(*ast.CodeSpan); !inCode {
				value = unescape(value)
			}
			b.Write(value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// unescape resolves backslash escapes and character references the same way
// the HTML renderer does before writing text.
func unescape(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}
