package notebook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/marrow/internal/markdown"
	"github.com/alnah/marrow/internal/paginate"
)

// Result is a rendered notebook.
type Result struct {
	HTML      string
	TOC       []markdown.TOCEntry
	Truncated map[paginate.Key]*paginate.Output
}

// Renderer converts notebooks to HTML.
type Renderer struct {
	md     *markdown.Renderer
	expand bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithExpandedOutputs renders long outputs in full instead of truncating
// them. Used for exports where no reveal control can be clicked.
func WithExpandedOutputs() Option {
	return func(r *Renderer) {
		r.expand = true
	}
}

// NewRenderer returns a Renderer that renders Markdown cells with md. When md
// highlights on the server, code cell inputs are highlighted with the same
// chroma style.
func NewRenderer(md *markdown.Renderer, opts ...Option) *Renderer {
	r := &Renderer{md: md}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts nb to HTML. Images in Markdown cells are resolved against
// baseDir. Render never fails.
func (r *Renderer) Render(nb *Notebook, baseDir string) Result {
	res := Result{Truncated: make(map[paginate.Key]*paginate.Output)}
	lang := nb.Language()

	var b strings.Builder
	b.WriteString("<div class=\"notebook\">\n")

	for ci, cell := range nb.Cells {
		switch cell.Type {
		case CellMarkdown:
			src := []byte(cell.Source.String())
			res.TOC = append(res.TOC, markdown.ExtractTOC(src)...)
			fmt.Fprintf(&b, "<div class=\"nb-cell nb-markdown-cell\" data-cell-idx=\"%d\">\n%s\n</div>\n",
				ci, r.md.Render(src, baseDir))

		case CellCode:
			count := executionCount(cell.ExecutionCount)
			fmt.Fprintf(&b, `<div class="nb-cell nb-code-cell" data-cell-idx="%d">
    <div class="nb-cell-header">
        <span class="nb-prompt nb-in">In [%s]:</span>
        <button class="nb-collapse-btn">▼</button>
    </div>
    <div class="nb-input">
        %s
    </div>
`, ci, count, r.codeInput(cell.Source.String(), lang))

			if len(cell.Outputs) > 0 {
				b.WriteString("    <div class=\"nb-outputs\">\n")
				for oi := range cell.Outputs {
					if out := r.renderOutput(&b, &cell.Outputs[oi], count, ci, oi); out != nil {
						res.Truncated[paginate.Key{Cell: ci, Output: oi}] = out
					}
				}
				b.WriteString("    </div>\n")
			}
			b.WriteString("</div>\n")

		case CellRaw:
			fmt.Fprintf(&b, `<div class="nb-cell nb-raw-cell" data-cell-idx="%d">
    <div class="nb-raw-content">%s</div>
</div>
`, ci, escape(cell.Source.String()))
		}
	}

	b.WriteString("</div>\n")
	res.HTML = b.String()
	return res
}

func executionCount(n *int) string {
	if n == nil {
		return " "
	}
	return strconv.Itoa(*n)
}

// codeInput renders a code cell source, highlighted when a style is set.
func (r *Renderer) codeInput(src, lang string) string {
	if style := r.md.Style(); style != "" {
		if highlighted, ok := highlight(src, lang, style); ok {
			return fmt.Sprintf(`<pre class="chroma"><code class="language-%s">%s</code></pre>`, escape(lang), highlighted)
		}
	}
	return fmt.Sprintf(`<pre><code class="language-%s">%s</code></pre>`, escape(lang), escape(src))
}

func highlight(src, lang, style string) (string, bool) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", false
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		return "", false
	}
	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))

	var b strings.Builder
	if err := formatter.Format(&b, styles.Get(style), iterator); err != nil {
		return "", false
	}
	return b.String(), true
}

// renderOutput writes one output and returns its reveal state when it was
// truncated.
func (r *Renderer) renderOutput(b *strings.Builder, o *Output, count string, ci, oi int) *paginate.Output {
	switch o.Type {
	case OutputStream:
		text := o.Text.String()
		return r.writeText(b, "nb-output nb-output-stream", "", escape(text), escapeLines(text), ci, oi)

	case OutputExecuteResult, OutputDisplayData:
		if img, ok := o.DataString("image/png"); ok {
			writeImage(b, "image/png", img)
			return nil
		}
		if img, ok := o.DataString("image/jpeg"); ok {
			writeImage(b, "image/jpeg", img)
			return nil
		}

		prompt := ""
		if o.Type == OutputExecuteResult {
			prompt = fmt.Sprintf(`<div class="nb-output-header"><span class="nb-prompt nb-out">Out[%s]:</span></div>`, count)
		}
		if content, ok := o.DataString("text/html"); ok {
			fmt.Fprintf(b, `        <div class="nb-output nb-output-html">
            %s
            <div class="nb-output-content">%s</div>
        </div>
`, prompt, stripPreWrapper(content))
			return nil
		}
		if text, ok := o.DataString("text/plain"); ok {
			return r.writeText(b, "nb-output nb-output-text", prompt, escape(text), escapeLines(text), ci, oi)
		}

	case OutputError:
		lines := errorLines(o)
		return r.writeText(b, "nb-output nb-output-error", "", strings.Join(lines, "\n"), lines, ci, oi)
	}
	return nil
}

// writeText writes a text output. short is the markup used when the output
// fits under the threshold; lines are its per-line markup for truncation.
func (r *Renderer) writeText(b *strings.Builder, class, prompt, short string, lines []string, ci, oi int) *paginate.Output {
	out, truncated := paginate.Truncate(lines)
	if truncated {
		if !r.expand {
			writeTruncated(b, class, prompt, out, ci, oi)
			return out
		}
		short = out.AllHTML()
	}

	if prompt != "" {
		fmt.Fprintf(b, `        <div class="%s">
            %s
            <div class="nb-output-content">%s</div>
        </div>
`, class, prompt, short)
		return nil
	}
	fmt.Fprintf(b, `        <div class="%s">
            <div class="nb-output-content">%s</div>
        </div>
`, class, short)
	return nil
}

func writeTruncated(b *strings.Builder, class, prompt string, out *paginate.Output, ci, oi int) {
	fmt.Fprintf(b, `        <div class="%s" data-cell-idx="%d" data-output-idx="%d">
            %s
            <div class="nb-output-content"><div class="nb-output-head">%s</div>
            <div class="nb-output-truncated">
                <span class="nb-truncated-info">%d lines hidden</span>
                <button class="nb-show-more" data-amount="%d">Show %d more</button>
                <button class="nb-show-all">Show all</button>
            </div>
            <div class="nb-output-tail">%s</div></div>
        </div>
`, class, ci, oi, prompt, out.HeadHTML(), out.Hidden(), paginate.DefaultStep, paginate.DefaultStep, out.TailHTML())
}

func writeImage(b *strings.Builder, mime, payload string) {
	fmt.Fprintf(b, `        <div class="nb-output nb-output-image">
            <img src="data:%s;base64,%s" class="nb-figure" alt="output">
        </div>
`, mime, strings.ReplaceAll(payload, "\n", ""))
}

// errorLines renders the bold name: value line followed by the translated
// traceback.
func errorLines(o *Output) []string {
	var lines []string
	if o.EName != "" {
		first := `<span style="color:#e06c75;font-weight:bold">` + escape(o.EName) + "</span>"
		if o.EValue != "" {
			first += ": " + escape(o.EValue)
		}
		lines = append(lines, first)
	}
	for _, tb := range o.Traceback {
		lines = append(lines, ANSIToHTML(tb))
	}
	return lines
}

func escapeLines(text string) []string {
	lines := markdown.SplitLines(text)
	for i, l := range lines {
		lines[i] = escape(l)
	}
	return lines
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return htmlEscaper.Replace(s)
}
