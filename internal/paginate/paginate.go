// Package paginate holds the incremental reveal state of long notebook outputs.
//
// An output longer than Threshold lines is rendered as its first Head lines
// and last Tail lines. The lines in between are revealed on request, a batch
// at a time or all at once, through a per-view Paginator.
package paginate

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"sync"
)

const (
	// Threshold is the line count above which an output is truncated.
	Threshold = 290
	// Head is the number of leading lines rendered up front.
	Head = 200
	// Tail is the number of trailing lines that are always visible.
	Tail = 10
	// DefaultStep is the reveal batch size when none or a malformed one is given.
	DefaultStep = 50
)

// AllKeyword requests every remaining hidden line.
const AllKeyword = "all"

// Key addresses one output of one notebook cell.
type Key struct {
	Cell   int
	Output int
}

// Output is the reveal state of one truncated output.
type Output struct {
	lines []string // rendered HTML, one entry per source line
	shown int      // leading lines already displayed
}

// Truncate returns the reveal state for lines, or false when lines fit under
// Threshold and should be rendered in full.
func Truncate(lines []string) (*Output, bool) {
	if len(lines) <= Threshold {
		return nil, false
	}
	return &Output{lines: lines, shown: Head}, true
}

// Total returns the number of lines in the output.
func (o *Output) Total() int {
	return len(o.lines)
}

// Shown returns the number of leading lines displayed so far.
func (o *Output) Shown() int {
	return o.shown
}

// Hidden returns the number of lines between the shown head and the tail.
func (o *Output) Hidden() int {
	return o.Total() - Tail - o.shown
}

// HeadHTML returns the initially displayed lines, newline-joined.
func (o *Output) HeadHTML() string {
	return strings.Join(o.lines[:Head], "\n")
}

// TailHTML returns the always-visible trailing lines, newline-joined.
func (o *Output) TailHTML() string {
	return strings.Join(o.lines[o.Total()-Tail:], "\n")
}

// AllHTML returns every line, newline-joined.
func (o *Output) AllHTML() string {
	return strings.Join(o.lines, "\n")
}

// Amount is how many hidden lines a reveal request asks for.
type Amount struct {
	All bool
	N   int
}

// ParseAmount reads the amount field of a reveal request: the keyword "all"
// or a decimal count. Anything else, including a negative count, yields
// DefaultStep.
func ParseAmount(s string) Amount {
	if s == AllKeyword {
		return Amount{All: true}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return Amount{N: DefaultStep}
	}
	return Amount{N: n}
}

// String renders the amount in request form.
func (a Amount) String() string {
	if a.All {
		return AllKeyword
	}
	return strconv.Itoa(a.N)
}

// Fragment is the answer to a reveal request.
type Fragment struct {
	LinesHTML string
	Hidden    int
	Complete  bool
}

// reveal moves the shown boundary forward and returns the newly shown lines.
func (o *Output) reveal(a Amount) Fragment {
	limit := o.Total() - Tail
	end := limit
	if !a.All {
		end = min(o.shown+a.N, limit)
	}
	lines := o.lines[o.shown:end]
	o.shown = end

	hidden := limit - end
	return Fragment{
		LinesHTML: strings.Join(lines, "\n"),
		Hidden:    hidden,
		Complete:  hidden == 0,
	}
}

// Paginator owns the reveal state of every truncated output of one view.
// It is safe for concurrent use.
type Paginator struct {
	mu      sync.Mutex
	outputs map[Key]*Output
}

// New returns a Paginator tracking the given outputs.
func New(outputs map[Key]*Output) *Paginator {
	p := &Paginator{outputs: make(map[Key]*Output, len(outputs))}
	for k, o := range outputs {
		p.outputs[k] = o
	}
	return p
}

// Track registers or replaces the state for key.
func (p *Paginator) Track(key Key, o *Output) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outputs[key] = o
}

// Len returns the number of truncated outputs.
func (p *Paginator) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.outputs)
}

// Keys returns the tracked keys in cell then output order.
func (p *Paginator) Keys() []Key {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := make([]Key, 0, len(p.outputs))
	for k := range p.outputs {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Cell, b.Cell); c != 0 {
			return c
		}
		return cmp.Compare(a.Output, b.Output)
	})
	return keys
}

// Reveal serves a reveal request. It reports false for keys that were never
// truncated, and changes nothing in that case.
func (p *Paginator) Reveal(key Key, a Amount) (Fragment, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	o, ok := p.outputs[key]
	if !ok {
		return Fragment{}, false
	}
	return o.reveal(a), true
}
