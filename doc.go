// Package marrow renders Markdown documents and Jupyter notebooks into
// self-contained viewer pages.
//
// # Quick Start
//
//	v, err := marrow.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	view := v.Open("README.md")
//	page, err := v.BuildPage(view, settings.Default(), "")
//
// Open never fails. A file that cannot be read or a notebook that cannot be
// parsed becomes an error document titled "Error", rendered through the same
// pipeline as any other Markdown.
//
// # Source Positions
//
// Every block element of a rendered Markdown document carries a
// data-lines="start-end" attribute naming the 1-based source lines it came
// from. The page script maps a text selection back to those lines, so copying
// rendered text yields the original Markdown.
//
// # Notebooks
//
// Text outputs longer than paginate.Threshold lines render their head and
// tail only. Each View owns the paginator holding the hidden lines; the page
// asks for more through get_output_lines messages answered by View.Reveal.
//
// # PDF Export
//
// ExportPDF renders a document with every notebook output expanded and prints
// it through headless Chrome (go-rod):
//
//	pdf, err := v.ExportPDF(ctx, "analysis.ipynb", marrow.PDFOptions{PageSize: "a4"})
package marrow
