package assets

import "fmt"

// DefaultName names the built-in template, style and script.
const DefaultName = "viewer"

// Bundle is everything a page needs from the asset layer.
type Bundle struct {
	Template string
	Style    string
	Script   string
}

// LoadBundle loads the template, style and script sharing name.
func LoadBundle(l AssetLoader, name string) (*Bundle, error) {
	tmpl, err := l.LoadTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("loading page template: %w", err)
	}
	style, err := l.LoadStyle(name)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}
	script, err := l.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("loading script: %w", err)
	}
	return &Bundle{Template: tmpl, Style: style, Script: script}, nil
}

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadDefaultBundle loads the embedded default bundle.
func LoadDefaultBundle() (*Bundle, error) {
	return LoadBundle(defaultLoader, DefaultName)
}
