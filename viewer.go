package marrow

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/marrow/internal/assets"
	"github.com/alnah/marrow/internal/fileutil"
	"github.com/alnah/marrow/internal/ipc"
	"github.com/alnah/marrow/internal/markdown"
	"github.com/alnah/marrow/internal/notebook"
	"github.com/alnah/marrow/internal/paginate"
	"github.com/alnah/marrow/internal/settings"
)

// AppName ends every window title.
const AppName = "Marrow"

// ErrorTitle names documents that failed to load.
const ErrorTitle = "Error"

const welcomeMarkdown = "# Welcome to Marrow\n\n" +
	"Open a Markdown file or a Jupyter notebook to get started.\n\n" +
	"Run `marrow view notes.md` or `marrow view analysis.ipynb`, or follow a link to a `.md` or `.ipynb` file."

// Viewer turns documents into Views and Views into pages.
// A Viewer is safe for concurrent use.
type Viewer struct {
	style    string
	assets   assets.AssetLoader
	settings *settings.Store
	timeout  time.Duration
	pdf      pdfRenderer

	md       *markdown.Renderer
	nb       *notebook.Renderer
	expanded *notebook.Renderer
	bundle   *assets.Bundle
	page     *template.Template
}

// New creates a Viewer. It fails when the highlighting style is unknown or
// the page assets cannot be loaded.
func New(opts ...Option) (*Viewer, error) {
	v := &Viewer{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(v)
	}

	if err := markdown.ValidateStyle(v.style); err != nil {
		return nil, err
	}
	var mdOpts []markdown.Option
	if v.style != "" {
		mdOpts = append(mdOpts, markdown.WithHighlighting(v.style))
	}
	v.md = markdown.NewRenderer(mdOpts...)
	v.nb = notebook.NewRenderer(v.md)
	v.expanded = notebook.NewRenderer(v.md, notebook.WithExpandedOutputs())

	if v.assets == nil {
		v.assets = assets.NewEmbeddedLoader()
	}
	bundle, err := assets.LoadBundle(v.assets, assets.DefaultName)
	if err != nil {
		return nil, err
	}
	page, err := template.New(assets.DefaultName).Parse(bundle.Template)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	v.bundle = bundle
	v.page = page

	if v.settings == nil {
		v.settings, _ = settings.Open("") // in-memory stores never fail
	}
	if v.pdf == nil {
		v.pdf = newRodRenderer(v.timeout)
	}
	return v, nil
}

// Settings returns the store views read their initial settings from.
func (v *Viewer) Settings() *settings.Store {
	return v.settings
}

// Close releases the PDF browser, if one was started.
func (v *Viewer) Close() error {
	if c, ok := v.pdf.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// View is one loaded document.
type View struct {
	Path     string // empty for the welcome document
	Name     string // file name, ErrorTitle on failure, AppName for the welcome document
	Ext      string // settings key
	BaseDir  string
	Source   string // Markdown source; empty for notebooks
	HTML     string
	TOC      []markdown.TOCEntry
	Notebook bool
	Err      error // load failure shown in the page, nil otherwise

	outputs *paginate.Paginator
}

// Title returns the window title of the view.
func (v *View) Title() string {
	first := ""
	if len(v.TOC) > 0 {
		first = v.TOC[0].Text
	}
	return WindowTitle(first, v.Name)
}

// Truncated returns the number of outputs waiting for reveal requests.
func (v *View) Truncated() int {
	return v.outputs.Len()
}

// Reveal answers a get_output_lines request. It reports false when key does
// not name a truncated output.
func (v *View) Reveal(key paginate.Key, amount paginate.Amount) (ipc.OutputLines, bool) {
	f, ok := v.outputs.Reveal(key, amount)
	if !ok {
		return ipc.OutputLines{}, false
	}
	return ipc.NewOutputLines(key, f), true
}

// Open loads and renders path. An empty path opens the welcome document.
// Open never fails; see View.Err.
func (v *Viewer) Open(path string) *View {
	return v.open(path, v.nb)
}

// OpenSource renders Markdown held in memory, as if read from a file named
// name in baseDir.
func (v *Viewer) OpenSource(name string, source []byte, baseDir string) *View {
	return v.markdownView("", name, fileutil.Ext(name), baseDir, string(source))
}

func (v *Viewer) open(path string, nb *notebook.Renderer) *View {
	if path == "" {
		return v.markdownView("", AppName, fileutil.DefaultExt, "", welcomeMarkdown)
	}

	ext := fileutil.Ext(path)
	baseDir := filepath.Dir(path)

	data, err := os.ReadFile(path) // #nosec G304 -- the user chose the document
	if err != nil {
		view := v.markdownView(path, ErrorTitle, ext, baseDir,
			fmt.Sprintf("# Error\n\nCould not load file: %v", err))
		view.Err = fmt.Errorf("%w: %v", ErrLoadSource, err)
		return view
	}

	if fileutil.IsNotebook(path) {
		doc, err := notebook.Parse(data)
		if err != nil {
			view := v.markdownView(path, ErrorTitle, ext, baseDir,
				fmt.Sprintf("# Error\n\nCould not parse notebook: %v", err))
			view.Err = fmt.Errorf("%w: %v", ErrParseNotebook, err)
			return view
		}
		res := nb.Render(doc, baseDir)
		return &View{
			Path:     path,
			Name:     filepath.Base(path),
			Ext:      ext,
			BaseDir:  baseDir,
			HTML:     res.HTML,
			TOC:      res.TOC,
			Notebook: true,
			outputs:  paginate.New(res.Truncated),
		}
	}

	return v.markdownView(path, filepath.Base(path), ext, baseDir, string(data))
}

func (v *Viewer) markdownView(path, name, ext, baseDir, source string) *View {
	src := []byte(source)
	return &View{
		Path:    path,
		Name:    name,
		Ext:     ext,
		BaseDir: baseDir,
		Source:  source,
		HTML:    v.md.Render(src, baseDir),
		TOC:     markdown.ExtractTOC(src),
		outputs: paginate.New(nil),
	}
}

// Markdown returns the Markdown form of path: the file itself, or for
// notebooks the cells materialized as Markdown with fenced code and outputs.
func (v *Viewer) Markdown(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- the user chose the document
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrLoadSource, err)
	}
	if !fileutil.IsNotebook(path) {
		return string(data), nil
	}
	doc, err := notebook.Parse(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrParseNotebook, err)
	}
	return notebook.ToMarkdown(doc), nil
}
