package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/marrow"
)

// runPDF exports a document to PDF.
func runPDF(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parsePDFFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)
	cfg, err := loadConfig(flags.common, envCfg)
	if err != nil {
		return err
	}
	mergeRenderFlags(flags.render, cfg)
	if flags.pageSize != "" {
		cfg.PDF.PageSize = flags.pageSize
	}
	if flags.timeout != "" {
		cfg.PDF.Timeout = flags.timeout
	}
	if flags.noExpand {
		cfg.PDF.ExpandOutputs = false
	}

	viewer, err := newViewer(cfg, nil)
	if err != nil {
		return err
	}
	defer viewer.Close()

	output := flags.output
	if output == "" {
		output = pdfOutputPath(input)
	}

	start := env.Now()
	data, err := viewer.ExportPDF(ctx, input, marrow.PDFOptions{
		PageSize:      cfg.PDF.PageSize,
		Theme:         flags.theme,
		ExpandOutputs: cfg.PDF.ExpandOutputs,
	})
	if err != nil {
		return err
	}
	if err := writeOutput(output, data, env.Stdout); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", output)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Exported %s in %v\n", input, env.Now().Sub(start))
	}
	return nil
}

// pdfOutputPath replaces the extension of input with .pdf.
func pdfOutputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}
