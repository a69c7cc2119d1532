// Command marrow views Markdown documents and Jupyter notebooks in the
// browser, and renders them to HTML, Markdown or PDF.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/marrow/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches the command line and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	// "marrow notes.md" is short for "marrow view notes.md".
	if !isCommand(cmd) && looksLikeDocument(cmd) {
		cmd, rest = "view", args[1:]
	}

	var err error
	switch cmd {
	case "view":
		err = runView(ctx, rest, env)
	case "render":
		err = runRender(rest, env)
	case "toc":
		err = runTOC(rest, env)
	case "pdf":
		err = runPDF(ctx, rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "marrow %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

var commands = []string{"view", "render", "toc", "pdf", "version", "help"}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

// looksLikeDocument reports whether arg names a Markdown or notebook file.
func looksLikeDocument(arg string) bool {
	return len(arg) > 0 && arg[0] != '-' && fileutil.IsDocument(arg)
}

// hasVerboseFlag scans args for -v/--verbose before flags are parsed.
func hasVerboseFlag(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}
