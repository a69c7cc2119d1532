package markdown

import (
	"bytes"
	"strconv"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const dataLinesAttr = "data-lines"

// baseDirKey carries the directory images are resolved against for one parse.
var baseDirKey = parser.NewContextKey()

// span is an inclusive 1-based range of source lines.
type span struct {
	start, end int
}

func (s span) String() string {
	return strconv.Itoa(s.start) + "-" + strconv.Itoa(s.end)
}

func (s span) union(o span) span {
	return span{start: min(s.start, o.start), end: max(s.end, o.end)}
}

// sourceLines is an AST transformer. It annotates block elements with their
// line span, assigns heading ids, resolves image sources and turns fenced
// math blocks into MathBlock nodes.
type sourceLines struct{}

func (t *sourceLines) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	src := reader.Source()
	baseDir, _ := pc.Get(baseDirKey).(string)

	a := &annotator{
		src:     src,
		index:   NewLineIndex(src),
		baseDir: baseDir,
	}
	a.resolve(doc)

	for _, fence := range a.math {
		m := NewMathBlock(fence.Lines())
		for _, attr := range fence.Attributes() {
			m.SetAttribute(attr.Name, attr.Value)
		}
		if parent := fence.Parent(); parent != nil {
			parent.ReplaceChild(parent, fence, m)
		}
	}
}

type annotator struct {
	src     []byte
	index   *LineIndex
	baseDir string
	last    int // last source line consumed by a resolved block
	math    []*ast.FencedCodeBlock
}

// annotated reports whether n is written with a data-lines attribute.
func annotated(n ast.Node) bool {
	switch n.Kind() {
	case ast.KindParagraph, ast.KindHeading, ast.KindBlockquote,
		ast.KindList, ast.KindListItem, ast.KindCodeBlock,
		ast.KindFencedCodeBlock, ast.KindThematicBreak, extast.KindTable:
		return true
	}
	return false
}

// lines maps the byte range [start, stop) to its line span.
func (a *annotator) lines(start, stop int) span {
	end := start
	if stop > start {
		end = stop - 1
	}
	return span{start: a.index.Line(start), end: a.index.Line(end)}
}

// resolve computes the span of n from its own segments and those of its
// descendants, visiting children first so the cursor moves in document order.
func (a *annotator) resolve(n ast.Node) (span, bool) {
	var sp span
	found := false
	merge := func(s span) {
		if !found {
			sp, found = s, true
			return
		}
		sp = sp.union(s)
	}

	if n.Type() == ast.TypeInline {
		switch v := n.(type) {
		case *ast.Text:
			if v.Segment.Len() > 0 {
				merge(a.lines(v.Segment.Start, v.Segment.Stop))
			}
		case *ast.Image:
			v.Destination = []byte(ResolveImage(string(v.Destination), a.baseDir))
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if cs, ok := a.resolve(c); ok {
				merge(cs)
			}
		}
		return sp, found
	}

	if n.Type() == ast.TypeBlock {
		if segs := n.Lines(); segs != nil && segs.Len() > 0 {
			first, last := segs.At(0), segs.At(segs.Len()-1)
			merge(a.lines(first.Start, last.Stop))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if cs, ok := a.resolve(c); ok {
			merge(cs)
		}
	}

	switch v := n.(type) {
	case *ast.FencedCodeBlock:
		sp, found = a.fence(v, sp, found)
		if string(v.Language(a.src)) == "math" {
			a.math = append(a.math, v)
		}
	case *ast.Heading:
		if found && a.setext(v) {
			sp.end++
		}
	}

	if !found {
		if !annotated(n) {
			return sp, false
		}
		line := a.nextContentLine()
		sp, found = span{start: line, end: line}, true
	}
	sp = a.clamp(sp)
	a.last = max(a.last, sp.end)

	if h, ok := n.(*ast.Heading); ok {
		if slug := Slugify(HeadingText(h, a.src)); slug != "" {
			h.SetAttributeString("id", []byte(slug))
		}
	}
	if annotated(n) {
		n.SetAttributeString(dataLinesAttr, []byte(sp.String()))
	}
	return sp, found
}

// fence extends a fenced code block span over its opening and closing fences.
func (a *annotator) fence(n *ast.FencedCodeBlock, sp span, found bool) (span, bool) {
	switch {
	case n.Info != nil:
		info := a.index.Line(n.Info.Segment.Start)
		if !found {
			sp, found = span{start: info, end: info}, true
		} else {
			sp.start = info
		}
	case found:
		sp.start--
	default:
		line := a.nextContentLine()
		sp, found = span{start: line, end: line}, true
	}
	sp.end++
	return sp, found
}

// setext reports whether h is underlined rather than opened with '#'.
func (a *annotator) setext(h *ast.Heading) bool {
	segs := h.Lines()
	if segs == nil || segs.Len() == 0 {
		return false
	}
	first := segs.At(0)
	lineStart := a.index.LineStart(a.index.Line(first.Start))
	prefix := bytes.TrimRight(a.src[lineStart:first.Start], " \t")
	return !bytes.HasSuffix(prefix, []byte("#"))
}

// nextContentLine returns the first line after the cursor holding more than
// whitespace and blockquote markers. Nodes without source segments, such as
// thematic breaks or empty headings, are placed there.
func (a *annotator) nextContentLine() int {
	total := a.index.Lines()
	for line := a.last + 1; line <= total; line++ {
		start, end := a.index.LineStart(line), a.index.LineEnd(line)
		if len(bytes.Trim(a.src[start:end], " \t\r>")) > 0 {
			return line
		}
	}
	return min(a.last+1, total)
}

func (a *annotator) clamp(sp span) span {
	total := a.index.Lines()
	sp.start = min(max(sp.start, 1), total)
	sp.end = min(max(sp.end, sp.start), total)
	return sp
}
