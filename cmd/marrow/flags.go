package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds the rendering flags shared by view, render and pdf.
type renderFlags struct {
	highlight string // chroma style, empty = client-side highlighting
	assetPath string // override asset directory
}

// viewFlags holds flags for the view command.
type viewFlags struct {
	common    commonFlags
	render    renderFlags
	addr      string
	settings  string
	noBrowser bool
}

// renderCmdFlags holds flags for the render command.
type renderCmdFlags struct {
	common   commonFlags
	render   renderFlags
	output   string
	markdown bool
	theme    string
}

// tocCmdFlags holds flags for the toc command.
type tocCmdFlags struct {
	common commonFlags
	json   bool
}

// pdfFlags holds flags for the pdf command.
type pdfFlags struct {
	common   commonFlags
	render   renderFlags
	output   string
	pageSize string
	timeout  string
	theme    string
	noExpand bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed logs and timing")
}

// addRenderFlags adds rendering flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.highlight, "highlight", "", "chroma style for server-side code highlighting")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newFlagSet creates a FlagSet that reports to w and prints usage on -h.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs over args, marking failures as usage errors.
func parse(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseViewFlags parses view command flags and returns positional args.
func parseViewFlags(args []string, w io.Writer) (*viewFlags, []string, error) {
	f := &viewFlags{}
	fs := newFlagSet("view", w, printViewUsage)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (host:port, port 0 picks a free port)")
	fs.StringVar(&f.settings, "settings", "", "settings file path")
	fs.BoolVar(&f.noBrowser, "no-browser", false, "do not open the page in a browser")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseRenderFlags parses render command flags and returns positional args.
func parseRenderFlags(args []string, w io.Writer) (*renderCmdFlags, []string, error) {
	f := &renderCmdFlags{}
	fs := newFlagSet("render", w, printRenderUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	fs.BoolVarP(&f.markdown, "markdown", "m", false, "write Markdown instead of an HTML page")
	fs.StringVar(&f.theme, "theme", "", "page theme: dark, light")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parseTOCFlags parses toc command flags and returns positional args.
func parseTOCFlags(args []string, w io.Writer) (*tocCmdFlags, []string, error) {
	f := &tocCmdFlags{}
	fs := newFlagSet("toc", w, printTOCUsage)
	fs.BoolVar(&f.json, "json", false, "print the outline as JSON")
	addCommonFlags(fs, &f.common)

	rest, err := parse(fs, args)
	return f, rest, err
}

// parsePDFFlags parses pdf command flags and returns positional args.
func parsePDFFlags(args []string, w io.Writer) (*pdfFlags, []string, error) {
	f := &pdfFlags{}
	fs := newFlagSet("pdf", w, printPDFUsage)
	fs.StringVarP(&f.output, "output", "o", "", "output PDF file (default: input name with .pdf)")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.theme, "theme", "", "page theme: light, dark")
	fs.BoolVar(&f.noExpand, "no-expand", false, "keep long notebook outputs truncated")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)

	rest, err := parse(fs, args)
	return f, rest, err
}
