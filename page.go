package marrow

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/alnah/marrow/internal/markdown"
	"github.com/alnah/marrow/internal/settings"
)

// PageData is the data a page template renders. Custom templates loaded
// through WithAssetLoader receive the same fields.
type PageData struct {
	Title        string
	Theme        string
	Style        template.CSS
	HighlightCSS template.CSS
	Script       template.JS

	GitHubView   template.HTML // rendered Markdown
	TerminalView string        // raw Markdown, escaped by the template
	NotebookView template.HTML
	Notebook     bool

	TOC           []TOCLink
	MarkdownLines []string    // source lines for copy-as-Markdown
	Settings      template.JS // settings object including the extension
	SocketPath    string      // IPC endpoint, empty for static pages
}

// TOCLink is one table of contents entry of a page.
type TOCLink struct {
	Level int
	Text  string
	Slug  string
}

// BuildPage renders view into a complete HTML page. socketPath is the
// WebSocket endpoint the page script connects to; an empty path produces a
// static page, as used for PDF export.
func (v *Viewer) BuildPage(view *View, s settings.Settings, socketPath string) ([]byte, error) {
	data := v.pageData(view, s, socketPath)

	var buf bytes.Buffer
	if err := v.page.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.Bytes(), nil
}

func (v *Viewer) pageData(view *View, s settings.Settings, socketPath string) PageData {
	toc := make([]TOCLink, 0, len(view.TOC))
	for _, e := range view.TOC {
		toc = append(toc, TOCLink{Level: e.Level, Text: e.Text, Slug: e.Slug()})
	}

	// Assets, chroma CSS and both renderers are trusted sources; the
	// remaining fields go through the template's contextual escaping.
	data := PageData{
		Title:         view.Title(),
		Theme:         s.Theme,
		Style:         template.CSS(v.bundle.Style),            // #nosec G203
		HighlightCSS:  template.CSS(v.md.HighlightCSS()),       // #nosec G203
		Script:        template.JS(v.bundle.Script),            // #nosec G203
		Settings:      template.JS(settings.JSON(s, view.Ext)), // #nosec G203
		TOC:           toc,
		MarkdownLines: []string{},
		SocketPath:    socketPath,
		Notebook:      view.Notebook,
	}

	if view.Notebook {
		data.NotebookView = template.HTML(view.HTML) // #nosec G203
		return data
	}
	data.GitHubView = template.HTML(view.HTML) // #nosec G203
	data.TerminalView = view.Source
	if lines := markdown.SplitLines(view.Source); lines != nil {
		data.MarkdownLines = lines
	}
	return data
}
