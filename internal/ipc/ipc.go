// Package ipc parses the string messages a viewer page posts to the core and
// builds the replies sent back to it.
package ipc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/marrow/internal/paginate"
)

// Kind identifies a message.
type Kind int

const (
	KindUnknown Kind = iota
	KindOutputLines
	KindResize
	KindClipboard
	KindSaveSettings
	KindCloseWindow
	KindQuitApp
)

var kindNames = [...]string{
	KindUnknown:      "unknown",
	KindOutputLines:  "get_output_lines",
	KindResize:       "resize",
	KindClipboard:    "clipboard",
	KindSaveSettings: "save_settings",
	KindCloseWindow:  "close_window",
	KindQuitApp:      "quit_app",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

const (
	prefixOutputLines  = "get_output_lines:"
	prefixResize       = "resize:"
	prefixClipboard    = "clipboard:"
	prefixSaveSettings = "save_settings:"
)

// Message is a parsed page message. Only the fields of its Kind are set.
type Message struct {
	Kind Kind

	// get_output_lines
	Key    paginate.Key
	Amount paginate.Amount

	// resize
	Width, Height float64

	// clipboard
	Text string

	// save_settings
	Ext      string
	Settings []byte
}

// Parse never fails: malformed messages come back as KindUnknown and
// malformed reveal parameters fall back to their defaults.
func Parse(raw string) Message {
	switch {
	case strings.HasPrefix(raw, prefixResize):
		return parseResize(raw)
	case strings.HasPrefix(raw, prefixClipboard):
		return Message{Kind: KindClipboard, Text: raw[len(prefixClipboard):]}
	case strings.HasPrefix(raw, prefixSaveSettings):
		return parseSaveSettings(raw)
	case strings.HasPrefix(raw, prefixOutputLines):
		return parseOutputLines(raw)
	case raw == "close_window":
		return Message{Kind: KindCloseWindow}
	case raw == "quit_app":
		return Message{Kind: KindQuitApp}
	default:
		return Message{Kind: KindUnknown}
	}
}

func parseResize(raw string) Message {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return Message{Kind: KindUnknown}
	}
	w, errW := strconv.ParseFloat(parts[1], 64)
	h, errH := strconv.ParseFloat(parts[2], 64)
	if errW != nil || errH != nil {
		return Message{Kind: KindUnknown}
	}
	return Message{Kind: KindResize, Width: w, Height: h}
}

func parseSaveSettings(raw string) Message {
	ext, payload, ok := strings.Cut(raw[len(prefixSaveSettings):], ":")
	if !ok {
		return Message{Kind: KindUnknown}
	}
	return Message{Kind: KindSaveSettings, Ext: ext, Settings: []byte(payload)}
}

func parseOutputLines(raw string) Message {
	parts := strings.Split(raw[len(prefixOutputLines):], ":")
	if len(parts) != 3 {
		return Message{Kind: KindUnknown}
	}
	return Message{
		Kind: KindOutputLines,
		Key: paginate.Key{
			Cell:   parseIndex(parts[0]),
			Output: parseIndex(parts[1]),
		},
		Amount: paginate.ParseAmount(parts[2]),
	}
}

func parseIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// OutputLines answers a get_output_lines message.
type OutputLines struct {
	CellIdx         int    `json:"cell_idx"`
	OutputIdx       int    `json:"output_idx"`
	LinesHTML       string `json:"lines_html"`
	HiddenRemaining int    `json:"hidden_remaining"`
	IsComplete      bool   `json:"is_complete"`
}

// NewOutputLines builds the reply for key from a revealed fragment.
func NewOutputLines(key paginate.Key, f paginate.Fragment) OutputLines {
	return OutputLines{
		CellIdx:         key.Cell,
		OutputIdx:       key.Output,
		LinesHTML:       f.LinesHTML,
		HiddenRemaining: f.Hidden,
		IsComplete:      f.Complete,
	}
}

// Script renders the reply as the page callback invocation
// receiveOutputLines(cell, output, "<html>", hidden, complete).
func (o OutputLines) Script() string {
	lines, err := json.Marshal(o.LinesHTML)
	if err != nil {
		lines = []byte(`""`)
	}
	return fmt.Sprintf("receiveOutputLines(%d, %d, %s, %d, %t)",
		o.CellIdx, o.OutputIdx, lines, o.HiddenRemaining, o.IsComplete)
}

// Envelope is the JSON frame written to the page socket.
type Envelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Frame types sent to the page.
const (
	FrameOutputLines = "output_lines"
	FrameClose       = "close"
	FrameResize      = "resize"
)
