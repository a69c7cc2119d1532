package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alnah/marrow/internal/markdown"
)

// runRender writes the viewer page of a document, or its Markdown.
func runRender(args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	mergeRenderFlags(flags.render, cfg)

	viewer, err := newViewer(cfg, nil)
	if err != nil {
		return err
	}
	defer viewer.Close()

	start := env.Now()
	var out []byte
	if flags.markdown {
		md, err := viewer.Markdown(input)
		if err != nil {
			return err
		}
		out = []byte(md)
	} else {
		view := viewer.Open(input)
		if view.Err != nil {
			return view.Err
		}
		s := viewer.Settings().For(view.Ext)
		if flags.theme != "" {
			s.Theme = flags.theme
		}
		if out, err = viewer.BuildPage(view, s, ""); err != nil {
			return err
		}
	}

	if err := writeOutput(flags.output, out, env.Stdout); err != nil {
		return err
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Rendered %s in %v\n", input, env.Now().Sub(start))
	}
	return nil
}

// tocItem is one heading in JSON output.
type tocItem struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Slug  string `json:"slug"`
}

// runTOC prints the outline of a document.
func runTOC(args []string, env *Environment) error {
	flags, positional, err := parseTOCFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	input, err := singleInput(positional)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig())
	if err != nil {
		return err
	}
	viewer, err := newViewer(cfg, nil)
	if err != nil {
		return err
	}
	defer viewer.Close()

	view := viewer.Open(input)
	if view.Err != nil {
		return view.Err
	}

	if flags.json {
		items := make([]tocItem, 0, len(view.TOC))
		for _, e := range view.TOC {
			items = append(items, tocItem{Level: e.Level, Text: e.Text, Slug: e.Slug()})
		}
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	fmt.Fprint(env.Stdout, formatTOC(view.TOC))
	return nil
}

// formatTOC renders entries as an indented list, nested by level relative to
// the shallowest heading.
func formatTOC(entries []markdown.TOCEntry) string {
	if len(entries) == 0 {
		return ""
	}
	top := entries[0].Level
	for _, e := range entries {
		top = min(top, e.Level)
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s- %s (#%s)\n", strings.Repeat("  ", e.Level-top), e.Text, e.Slug())
	}
	return b.String()
}
