package server

import "github.com/atotto/clipboard"

// Clipboard receives the text of clipboard messages.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Compile-time interface check.
var _ Clipboard = SystemClipboard{}
