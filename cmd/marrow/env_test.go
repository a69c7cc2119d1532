package main

import (
	"os"
	"testing"

	"github.com/alnah/marrow/internal/process"
	"github.com/alnah/marrow/internal/server"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Now == nil {
		t.Fatal("Now is nil")
	}
	if env.Stdout != os.Stdout || env.Stderr != os.Stderr {
		t.Error("standard streams not wired")
	}
	if _, ok := env.Opener.(process.SystemOpener); !ok {
		t.Errorf("Opener = %T, want process.SystemOpener", env.Opener)
	}
	if _, ok := env.Clipboard.(server.SystemClipboard); !ok {
		t.Errorf("Clipboard = %T, want server.SystemClipboard", env.Clipboard)
	}
}
