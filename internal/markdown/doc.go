// Package markdown renders Markdown to HTML annotated with source line spans.
//
// # Line Spans
//
// Every block-level element (paragraph, heading, blockquote, list, list item,
// table, code block, math block, thematic break) carries a data-lines
// attribute holding the inclusive 1-based range of source lines it was built
// from:
//
//	<p data-lines="3-4">…</p>
//
// The viewer uses these ranges to slice the original source when the user
// copies a selection as Markdown.
//
// Spans are resolved on goldmark's AST by a parser transformer once parsing
// is complete, then the tree is serialized in a single pass. Fenced code and
// math blocks extend through their closing fence line.
//
// # Headings
//
// Heading ids come from Slugify applied to the heading's plain text: text
// nodes and code span contents, without formatting markers. ExtractTOC uses
// the same plain text rule, so TOC links and heading ids always agree.
package markdown
