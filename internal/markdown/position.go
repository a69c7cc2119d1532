package markdown

import (
	"bytes"
	"sort"
	"strings"
)

// LineOf returns the 1-based line number of byte offset in src.
// Offsets outside src are clamped.
func LineOf(src []byte, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(src) {
		offset = len(src)
	}
	return bytes.Count(src[:offset], []byte{'\n'}) + 1
}

// LineIndex answers LineOf queries for a single source in O(log n).
type LineIndex struct {
	newlines []int // byte offsets of every '\n'
	size     int
	trailing bool // source ends with '\n'
}

// NewLineIndex scans src once and records its newline offsets.
func NewLineIndex(src []byte) *LineIndex {
	idx := &LineIndex{size: len(src)}
	for i, c := range src {
		if c == '\n' {
			idx.newlines = append(idx.newlines, i)
		}
	}
	idx.trailing = len(src) > 0 && src[len(src)-1] == '\n'
	return idx
}

// Line returns the 1-based line containing offset. Same result as LineOf.
func (x *LineIndex) Line(offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > x.size {
		offset = x.size
	}
	return sort.SearchInts(x.newlines, offset) + 1
}

// Lines returns the number of source lines. A final newline does not open
// a new line, and an empty source still has one line.
func (x *LineIndex) Lines() int {
	n := len(x.newlines) + 1
	if x.trailing {
		n--
	}
	if n < 1 {
		n = 1
	}
	return n
}

// LineStart returns the byte offset where the 1-based line begins.
func (x *LineIndex) LineStart(line int) int {
	if line <= 1 {
		return 0
	}
	if line-2 >= len(x.newlines) {
		return x.size
	}
	return x.newlines[line-2] + 1
}

// LineEnd returns the byte offset of the newline ending line, or the
// source length for the last line.
func (x *LineIndex) LineEnd(line int) int {
	if line < 1 {
		line = 1
	}
	if line-1 >= len(x.newlines) {
		return x.size
	}
	return x.newlines[line-1]
}

// SplitLines splits text into display lines: a final newline does not start
// a new line and a trailing carriage return is dropped. Line n of the result
// is line n+1 of a data-lines range.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
