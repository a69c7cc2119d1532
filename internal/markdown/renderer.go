package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ErrUnknownStyle indicates a highlighting style chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// Renderer converts Markdown to HTML annotated with source line spans.
// A Renderer is safe for concurrent use.
type Renderer struct {
	md    goldmark.Markdown
	style string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithHighlighting highlights fenced code on the server with the named chroma
// style. Without it, code blocks carry a language-* class for the client.
func WithHighlighting(style string) Option {
	return func(r *Renderer) {
		r.style = style
	}
}

// NewRenderer creates a Renderer with GFM and footnotes enabled.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}

	exts := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
	}
	if r.style != "" {
		exts = append(exts, highlighting.NewHighlighting(
			highlighting.WithStyle(r.style),
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true),
				chromahtml.PreventSurroundingPre(true),
			),
			highlighting.WithWrapperRenderer(wrapHighlighted),
		))
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithASTTransformers(util.Prioritized(&sourceLines{}, 100)),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(), // Documents are local and trusted, raw HTML renders as written
			html.WithXHTML(),
			renderer.WithNodeRenderers(
				util.Prioritized(&blockRenderer{fenced: r.style == ""}, 100),
			),
		),
	)
	return r
}

// Render converts source to annotated HTML. Relative image references are
// resolved against baseDir; an empty baseDir leaves them untouched.
// Render never fails: malformed Markdown is rendered as goldmark sees it.
func (r *Renderer) Render(source []byte, baseDir string) string {
	pc := parser.NewContext()
	pc.Set(baseDirKey, baseDir)
	doc := r.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))

	var buf bytes.Buffer
	_ = r.md.Renderer().Render(&buf, source, doc) // bytes.Buffer writes cannot fail
	return buf.String()
}

// Style returns the highlighting style, or "" when highlighting is client-side.
func (r *Renderer) Style() string {
	return r.style
}

// HighlightCSS returns the stylesheet for server-side highlighted code, or ""
// when highlighting is client-side.
func (r *Renderer) HighlightCSS() string {
	if r.style == "" {
		return ""
	}
	var b strings.Builder
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&b, styles.Get(r.style)); err != nil {
		return ""
	}
	return b.String()
}

// ValidateStyle returns ErrUnknownStyle when name is not a registered chroma
// style. An empty name is valid and selects client-side highlighting.
func ValidateStyle(name string) error {
	if name == "" {
		return nil
	}
	for _, known := range styles.Names() {
		if strings.EqualFold(known, name) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}
