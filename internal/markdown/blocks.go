package markdown

import (
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// blockRenderer writes code and math blocks with their data-lines attribute,
// which goldmark's default code block renderer does not emit.
type blockRenderer struct {
	// fenced is false when goldmark-highlighting owns fenced code blocks.
	fenced bool
}

func (r *blockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindCodeBlock, r.renderCode)
	reg.Register(KindMathBlock, r.renderMath)
	if r.fenced {
		reg.Register(ast.KindFencedCodeBlock, r.renderCode)
	}
}

func (r *blockRenderer) renderCode(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<pre")
	html.RenderAttributes(w, node, nil)
	_, _ = w.WriteString("><code")
	if fenced, ok := node.(*ast.FencedCodeBlock); ok {
		if lang := fenced.Language(source); len(lang) > 0 {
			_, _ = w.WriteString(` class="language-`)
			_, _ = w.Write(util.EscapeHTML(lang))
			_ = w.WriteByte('"')
		}
	}
	_ = w.WriteByte('>')
	writeLines(w, source, node)
	return ast.WalkContinue, nil
}

func (r *blockRenderer) renderMath(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("$$</div>\n")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<div class="math-block"`)
	html.RenderAttributes(w, node, nil)
	_, _ = w.WriteString(">$$")
	writeLines(w, source, node)
	return ast.WalkContinue, nil
}

// writeLines writes the escaped content lines of a raw block.
func writeLines(w util.BufWriter, source []byte, node ast.Node) {
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		html.DefaultWriter.RawWrite(w, line.Value(source))
	}
}

// wrapHighlighted opens and closes chroma output so highlighted blocks keep
// the same <pre data-lines><code> shape as plain ones.
func wrapHighlighted(w util.BufWriter, ctx highlighting.CodeBlockContext, entering bool) {
	if !entering {
		_, _ = w.WriteString("</code></pre>\n")
		return
	}

	_, _ = w.WriteString("<pre")
	if attrs := ctx.Attributes(); attrs != nil {
		if v, ok := attrs.GetString(dataLinesAttr); ok {
			if lines, isBytes := v.([]byte); isBytes {
				_, _ = w.WriteString(` data-lines="`)
				_, _ = w.Write(lines)
				_ = w.WriteByte('"')
			}
		}
	}
	if ctx.Highlighted() {
		_, _ = w.WriteString(` class="chroma"`)
	}
	_, _ = w.WriteString("><code")
	if lang, ok := ctx.Language(); ok && len(lang) > 0 {
		_, _ = w.WriteString(` class="language-`)
		_, _ = w.Write(util.EscapeHTML(lang))
		_ = w.WriteByte('"')
	}
	_ = w.WriteByte('>')
}
