package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marrow <command> [flags] [args]")
	fmt.Fprintln(w, "       marrow <file.md|file.ipynb>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  view       Open a document in the browser viewer")
	fmt.Fprintln(w, "  render     Write a document as an HTML page or Markdown")
	fmt.Fprintln(w, "  toc        Print the outline of a document")
	fmt.Fprintln(w, "  pdf        Export a document to PDF")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'marrow help <command>' for details on a specific command.")
}

func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed logs and timing")
}

func printRenderFlagUsage(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --highlight <style>   Chroma style for code blocks (default: client-side)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory (styles/, scripts/, templates/)")
}

// printViewUsage prints usage for the view command.
func printViewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marrow view [file] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve a Markdown file or Jupyter notebook on a local address and open it")
	fmt.Fprintln(w, "in the browser. Without a file, a welcome page is shown.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: 127.0.0.1:0)")
	fmt.Fprintln(w, "      --settings <path>     Settings file (default: user config directory)")
	fmt.Fprintln(w, "      --no-browser          Print the address without opening a browser")
	printRenderFlagUsage(w)
	printCommonUsage(w)
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marrow render <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the viewer page of a document, or with --markdown its Markdown source.")
	fmt.Fprintln(w, "Notebooks are converted to Markdown with fenced code and outputs.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: stdout)")
	fmt.Fprintln(w, "  -m, --markdown            Write Markdown instead of HTML")
	fmt.Fprintln(w, "      --theme <s>           Page theme: dark, light")
	printRenderFlagUsage(w)
	printCommonUsage(w)
}

// printTOCUsage prints usage for the toc command.
func printTOCUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marrow toc <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the headings of a document with their anchors.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "      --json                Print a JSON array of {level, text, slug}")
	printCommonUsage(w)
}

// printPDFUsage prints usage for the pdf command.
func printPDFUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marrow pdf <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the rendered document to PDF with headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input name with .pdf)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --theme <s>           Page theme: light, dark")
	fmt.Fprintln(w, "      --no-expand           Keep long notebook outputs truncated")
	printRenderFlagUsage(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "view":
		printViewUsage(env.Stdout)
	case "render":
		printRenderUsage(env.Stdout)
	case "toc":
		printTOCUsage(env.Stdout)
	case "pdf":
		printPDFUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: marrow version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: marrow help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
