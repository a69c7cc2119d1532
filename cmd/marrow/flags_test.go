package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Per-command flag sets
// ---------------------------------------------------------------------------

func TestParseViewFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, rest, err := parseViewFlags([]string{"notes.md", "-a", "127.0.0.1:8080", "--settings", "s.yaml", "--no-browser", "--highlight", "monokai", "-v"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	want := viewFlags{
		common:    commonFlags{verbose: true},
		render:    renderFlags{highlight: "monokai"},
		addr:      "127.0.0.1:8080",
		settings:  "s.yaml",
		noBrowser: true,
	}
	if diff := cmp.Diff(want, *f, cmp.AllowUnexported(viewFlags{}, commonFlags{}, renderFlags{})); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"notes.md"}, rest); diff != "" {
		t.Errorf("positional mismatch (-want +got):\n%s", diff)
	}
}

func TestParseRenderFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, rest, err := parseRenderFlags([]string{"-m", "-o", "out.md", "--theme", "light", "--asset-path", "assets", "nb.ipynb"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !f.markdown || f.output != "out.md" || f.theme != "light" || f.render.assetPath != "assets" {
		t.Errorf("parseRenderFlags() = %+v", f)
	}
	if len(rest) != 1 || rest[0] != "nb.ipynb" {
		t.Errorf("positional = %v", rest)
	}
}

func TestParseTOCFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, _, err := parseTOCFlags([]string{"--json", "-c", "work", "-q", "a.md"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	if !f.json || f.common.config != "work" || !f.common.quiet {
		t.Errorf("parseTOCFlags() = %+v", f)
	}
}

func TestParsePDFFlags(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	f, _, err := parsePDFFlags([]string{"-p", "a4", "-t", "1m", "--no-expand", "--theme", "dark", "-o", "x.pdf", "a.md"}, &buf)
	if err != nil {
		t.Fatal(err)
	}

	want := pdfFlags{output: "x.pdf", pageSize: "a4", timeout: "1m", theme: "dark", noExpand: true}
	if diff := cmp.Diff(want, *f, cmp.AllowUnexported(pdfFlags{}, commonFlags{}, renderFlags{})); diff != "" {
		t.Errorf("flags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		parse   func([]string) error
		args    []string
		wantErr error
	}{
		{
			name:    "unknown flag is a usage error",
			parse:   func(a []string) error { _, _, err := parseTOCFlags(a, &bytes.Buffer{}); return err },
			args:    []string{"--frobnicate"},
			wantErr: ErrUsage,
		},
		{
			name:    "missing value is a usage error",
			parse:   func(a []string) error { _, _, err := parsePDFFlags(a, &bytes.Buffer{}); return err },
			args:    []string{"--page-size"},
			wantErr: ErrUsage,
		},
		{
			name:    "help passes through",
			parse:   func(a []string) error { _, _, err := parseViewFlags(a, &bytes.Buffer{}); return err },
			args:    []string{"--help"},
			wantErr: flag.ErrHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.parse(tt.args); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewFlagSet_Usage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	_, _, err := parsePDFFlags([]string{"-h"}, &buf)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("error = %v, want ErrHelp", err)
	}
	if !strings.Contains(buf.String(), "Usage: marrow pdf") {
		t.Errorf("usage not printed: %q", buf.String())
	}
}
