package marrow

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/marrow/internal/settings"
)

// ---------------------------------------------------------------------------
// TestBuildPage - Page assembly
// ---------------------------------------------------------------------------

func TestBuildPage_Markdown(t *testing.T) {
	t.Parallel()

	v := newViewer(t)
	view := v.OpenSource("notes.md", []byte("# Title\n\nBody <b>bold</b>"), "")

	page, err := v.BuildPage(view, settings.Default(), "/ws?view=v1")
	if err != nil {
		t.Fatalf("BuildPage() error = %v", err)
	}
	got := string(page)

	wants := []string{
		"<title>Title · notes.md · Marrow</title>",
		`<a href="#title" onclick="scrollToHeading('title'); return false;" class="toc-item toc-level-1">Title</a>`,
		`<h1 id="title" data-lines="1-1">Title</h1>`,
		`"extension":"md"`,
		`"view_mode":"github"`,
		`markdownLines: ["# Title","","Body \u003cb\u003ebold\u003c/b\u003e"]`,
		`"/ws?view=v1"`,
		`<body class="theme-dark">`,
		"Body &lt;b&gt;bold&lt;/b&gt;</pre>",
		`id="toggle-view"`,
	}
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestBuildPage_Notebook(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "nb.ipynb", notebookJSON(t, 2))
	v := newViewer(t)
	view := v.Open(path)

	s := settings.Default()
	s.Theme = "light"
	page, err := v.BuildPage(view, s, "")
	if err != nil {
		t.Fatalf("BuildPage() error = %v", err)
	}
	got := string(page)

	if !strings.Contains(got, `<article id="notebook-view" class="notebook-body" style="display: block">`) {
		t.Error("notebook view not displayed")
	}
	if !strings.Contains(got, `"extension":"ipynb"`) {
		t.Error("settings missing notebook extension")
	}
	if !strings.Contains(got, "markdownLines: []") {
		t.Error("notebook page should carry no Markdown lines")
	}
	if strings.Contains(got, `id="toggle-view"`) {
		t.Error("notebook page should not offer the source view")
	}
	if !strings.Contains(got, `<body class="theme-light">`) {
		t.Error("theme not applied")
	}
}

func TestBuildPage_TemplateError(t *testing.T) {
	t.Parallel()

	v := newViewer(t, WithAssetLoader(&stubLoader{template: "{{.Missing}}"}))
	view := v.OpenSource("a.md", []byte("a"), "")

	_, err := v.BuildPage(view, settings.Default(), "")
	if !errors.Is(err, ErrTemplate) {
		t.Errorf("BuildPage() error = %v, want ErrTemplate", err)
	}
}
