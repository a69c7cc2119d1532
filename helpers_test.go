package marrow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// numberedText returns n lines "line 1".."line n".
func numberedText(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	return b.String()
}

// notebookJSON builds a notebook with a heading cell and one code cell whose
// stream output has the given number of lines.
func notebookJSON(t *testing.T, streamLines int) string {
	t.Helper()
	nb := map[string]any{
		"cells": []any{
			map[string]any{"cell_type": "markdown", "source": []string{"# Analysis\n", "\n", "Intro."}},
			map[string]any{
				"cell_type":       "code",
				"execution_count": 1,
				"source":          "for i in range(n): print(f'line {i}')",
				"outputs": []any{
					map[string]any{"output_type": "stream", "name": "stdout", "text": numberedText(streamLines)},
				},
			},
		},
		"metadata":       map[string]any{"kernelspec": map[string]any{"language": "python"}},
		"nbformat":       4,
		"nbformat_minor": 5,
	}
	data, err := json.Marshal(nb)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func newViewer(t *testing.T, opts ...Option) *Viewer {
	t.Helper()
	v, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v
}
