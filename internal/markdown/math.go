package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// KindMathBlock is the node kind of a display math block.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathBlock is a fenced code block tagged "math". Its content is emitted
// verbatim between $$ delimiters for client-side typesetting.
type MathBlock struct {
	ast.BaseBlock
}

// NewMathBlock returns a MathBlock holding the given content lines.
func NewMathBlock(lines *text.Segments) *MathBlock {
	m := &MathBlock{}
	m.SetLines(lines)
	return m
}

// Kind implements ast.Node.
func (n *MathBlock) Kind() ast.NodeKind {
	return KindMathBlock
}

// IsRaw implements ast.Node.
func (n *MathBlock) IsRaw() bool {
	return true
}

// Dump implements ast.Node.
func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}
