package main

// Notes:
// - runMain: we test exit codes and output for each command. PDF export is
//   only tested up to the browser boundary; printing needs Chrome.
// - runView: a mock opener fetches the page and then stops the server, so
//   the full serve/shutdown cycle runs without a browser.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

type fakeOpener struct {
	mu      sync.Mutex
	targets []string
	onOpen  func(target string)
}

func (f *fakeOpener) Open(target string) error {
	f.mu.Lock()
	f.targets = append(f.targets, target)
	f.mu.Unlock()
	if f.onOpen != nil {
		f.onOpen(target)
	}
	return nil
}

type fakeClipboard struct{}

func (fakeClipboard) WriteAll(string) error { return nil }

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	opener *fakeOpener
}

func newTestEnv() *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	opener := &fakeOpener{}
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &testEnv{
		Environment: &Environment{
			Now:       func() time.Time { return fixed },
			Stdout:    stdout,
			Stderr:    stderr,
			Opener:    opener,
			Clipboard: fakeClipboard{},
		},
		stdout: stdout,
		stderr: stderr,
		opener: opener,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const sampleNotebook = `{
  "cells": [
    {"cell_type": "markdown", "source": ["# Report\n", "\n", "## Data"]},
    {"cell_type": "code", "execution_count": 1, "source": "print('hi')",
     "outputs": [{"output_type": "stream", "name": "stdout", "text": "hi\n"}]}
  ],
  "metadata": {"kernelspec": {"language": "python"}},
  "nbformat": 4, "nbformat_minor": 5
}`

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "# Doc\n\ntext")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no command", args: []string{"marrow"}, wantCode: ExitUsage, wantStderr: "Usage: marrow"},
		{name: "unknown command", args: []string{"marrow", "frobnicate"}, wantCode: ExitUsage, wantStderr: "Unknown command: frobnicate"},
		{name: "version", args: []string{"marrow", "version"}, wantCode: ExitSuccess, wantStdout: "marrow dev"},
		{name: "help", args: []string{"marrow", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help topic", args: []string{"marrow", "help", "pdf"}, wantCode: ExitSuccess, wantStdout: "Usage: marrow pdf"},
		{name: "command -h", args: []string{"marrow", "render", "-h"}, wantCode: ExitSuccess, wantStderr: "Usage: marrow render"},
		{name: "bad flag", args: []string{"marrow", "toc", "--nope", doc}, wantCode: ExitUsage, wantStderr: "unknown flag"},
		{name: "no input", args: []string{"marrow", "render"}, wantCode: ExitIO, wantStderr: "no input specified"},
		{name: "two inputs", args: []string{"marrow", "toc", doc, doc}, wantCode: ExitUsage, wantStderr: "expected one file"},
		{name: "missing file", args: []string{"marrow", "render", filepath.Join(dir, "none.md")}, wantCode: ExitIO},
		{
			name:       "unknown highlight style",
			args:       []string{"marrow", "render", "--highlight", "no-such-style", doc},
			wantCode:   ExitUsage,
			wantStderr: "hint: try one of:",
		},
		{
			name:       "config not found",
			args:       []string{"marrow", "toc", "--config", filepath.Join(dir, "missing.yaml"), doc},
			wantCode:   ExitUsage,
			wantStderr: "config file not found",
		},
		{name: "pdf invalid page size", args: []string{"marrow", "pdf", "-p", "tabloid", doc}, wantCode: ExitUsage},
		{name: "pdf invalid timeout", args: []string{"marrow", "pdf", "-t", "soon", doc}, wantCode: ExitUsage},
		{name: "pdf missing file", args: []string{"marrow", "pdf", filepath.Join(dir, "none.md")}, wantCode: ExitIO},
		{name: "pdf bad notebook", args: []string{"marrow", "pdf", writeFile(t, dir, "bad.ipynb", "{")}, wantCode: ExitIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv()
			code := runMain(context.Background(), tt.args, env.Environment)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", env.stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want it to contain %q", env.stderr, tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRender - render command
// ---------------------------------------------------------------------------

func TestRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "# Doc\n\n```go\nx := 1\n```\n")
	nb := writeFile(t, dir, "nb.ipynb", sampleNotebook)

	t.Run("page to file", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		out := filepath.Join(dir, "out", "doc.html")
		code := runMain(context.Background(), []string{"marrow", "render", "--theme", "light", "-o", out, doc}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}

		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		page := string(data)
		for _, want := range []string{
			"<title>Doc · doc.md · Marrow</title>",
			`<h1 id="doc" data-lines="1-1">Doc</h1>`,
			`<body class="theme-light">`,
			`socketPath: ""`,
		} {
			if !strings.Contains(page, want) {
				t.Errorf("page missing %q", want)
			}
		}
	})

	t.Run("highlighted page to stdout", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		code := runMain(context.Background(), []string{"marrow", "render", "--highlight", "monokai", doc}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}
		if !strings.Contains(env.stdout.String(), `class="chroma"`) {
			t.Error("code block was not highlighted")
		}
	})

	t.Run("notebook as markdown", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		code := runMain(context.Background(), []string{"marrow", "render", "--markdown", "-v", nb}, env.Environment)
		if code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}
		got := env.stdout.String()
		for _, want := range []string{"# Report", "```python\nprint('hi')\n```", "```\nhi\n```"} {
			if !strings.Contains(got, want) {
				t.Errorf("markdown missing %q:\n%s", want, got)
			}
		}
		if !strings.Contains(env.stderr.String(), "Rendered "+nb) {
			t.Errorf("verbose timing missing: %s", env.stderr)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTOC - toc command
// ---------------------------------------------------------------------------

func TestTOC(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeFile(t, dir, "doc.md", "## Intro\n\n### Setup Steps\n\n## Usage\n")
	nb := writeFile(t, dir, "nb.ipynb", sampleNotebook)

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		if code := runMain(context.Background(), []string{"marrow", "toc", doc}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}
		want := "- Intro (#intro)\n  - Setup Steps (#setup-steps)\n- Usage (#usage)\n"
		if diff := cmp.Diff(want, env.stdout.String()); diff != "" {
			t.Errorf("toc mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("json notebook", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		if code := runMain(context.Background(), []string{"marrow", "toc", "--json", nb}, env.Environment); code != ExitSuccess {
			t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
		}
		var got []tocItem
		if err := json.Unmarshal(env.stdout.Bytes(), &got); err != nil {
			t.Fatal(err)
		}
		want := []tocItem{{Level: 1, Text: "Report", Slug: "report"}, {Level: 2, Text: "Data", Slug: "data"}}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("toc mismatch (-want +got):\n%s", diff)
		}
	})
}

// ---------------------------------------------------------------------------
// TestView - view command
// ---------------------------------------------------------------------------

func TestView(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    func(doc, settings string) []string
		wantDoc string
	}{
		{
			name: "view command",
			args: func(doc, settings string) []string {
				return []string{"marrow", "view", "--addr", "127.0.0.1:0", "--settings", settings, doc}
			},
			wantDoc: `<h1 id="served" data-lines="1-1">Served</h1>`,
		},
		{
			name: "document shorthand",
			args: func(doc, settings string) []string {
				return []string{"marrow", doc, "--settings", settings, "-q"}
			},
			wantDoc: `<h1 id="served" data-lines="1-1">Served</h1>`,
		},
		{
			name: "welcome page",
			args: func(doc, settings string) []string {
				return []string{"marrow", "view", "--settings", settings}
			},
			wantDoc: "Welcome to Marrow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			doc := writeFile(t, dir, "served.md", "# Served\n")
			settingsPath := filepath.Join(dir, "conf", "settings.yaml")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			env := newTestEnv()
			var page string
			var fetchErr error
			env.opener.onOpen = func(target string) {
				defer cancel()
				resp, err := http.Get(target)
				if err != nil {
					fetchErr = err
					return
				}
				defer resp.Body.Close()
				body, err := io.ReadAll(resp.Body)
				fetchErr = err
				page = string(body)
			}

			code := runMain(ctx, tt.args(doc, settingsPath), env.Environment)
			if code != ExitSuccess {
				t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
			}
			if fetchErr != nil {
				t.Fatalf("fetching page: %v", fetchErr)
			}
			if !strings.Contains(page, tt.wantDoc) {
				t.Errorf("page missing %q", tt.wantDoc)
			}
			if len(env.opener.targets) != 1 || !strings.HasPrefix(env.opener.targets[0], "http://127.0.0.1:") {
				t.Errorf("opened %v", env.opener.targets)
			}
		})
	}
}

func TestView_NoBrowser(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env := newTestEnv()
	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
	code := runMain(ctx, []string{"marrow", "view", "--no-browser", "--settings", settingsPath}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
	}
	if len(env.opener.targets) != 0 {
		t.Errorf("browser opened: %v", env.opener.targets)
	}
	if !strings.Contains(env.stdout.String(), "Viewing at http://") {
		t.Errorf("stdout = %q", env.stdout)
	}
}

func TestView_ListenError(t *testing.T) {
	t.Parallel()

	env := newTestEnv()
	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
	code := runMain(context.Background(), []string{"marrow", "view", "--addr", "127.0.0.1:-1", "--settings", settingsPath}, env.Environment)
	if code != ExitGeneral {
		t.Errorf("runMain() = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(env.stderr.String(), "hint: another process is listening") {
		t.Errorf("stderr = %q", env.stderr)
	}
}

// ---------------------------------------------------------------------------
// TestHelpers - Argument helpers
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	for _, name := range commands {
		if !isCommand(name) {
			t.Errorf("isCommand(%q) = false", name)
		}
	}
	for _, name := range []string{"", "convert", "doc.md", "--help"} {
		if isCommand(name) {
			t.Errorf("isCommand(%q) = true", name)
		}
	}
}

func TestLooksLikeDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		arg  string
		want bool
	}{
		{"notes.md", true},
		{"dir/analysis.ipynb", true},
		{"README.markdown", true},
		{"NOTES.MD", true},
		{"image.png", false},
		{"--config", false},
		{"-v", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := looksLikeDocument(tt.arg); got != tt.want {
			t.Errorf("looksLikeDocument(%q) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestHasVerboseFlag(t *testing.T) {
	t.Parallel()

	if !hasVerboseFlag([]string{"render", "-v", "a.md"}) || !hasVerboseFlag([]string{"--verbose"}) {
		t.Error("verbose flag not detected")
	}
	if hasVerboseFlag([]string{"render", "--version"}) {
		t.Error("--version detected as verbose")
	}
}

func TestPDFOutputPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"doc.md":             "doc.pdf",
		"dir/analysis.ipynb": "dir/analysis.pdf",
		"noext":              "noext.pdf",
	}
	for in, want := range tests {
		if got := pdfOutputPath(in); got != want {
			t.Errorf("pdfOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}
