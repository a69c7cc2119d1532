package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/marrow/internal/process"
	"github.com/alnah/marrow/internal/server"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the desktop integrations of the view command.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	Opener    process.Opener   // opens the viewer page and external links
	Clipboard server.Clipboard // target of copy-as-Markdown
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Opener:    process.SystemOpener{},
		Clipboard: server.SystemClipboard{},
	}
}
