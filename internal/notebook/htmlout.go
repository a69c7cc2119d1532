package notebook

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// stripPreWrapper unwraps an HTML output that consists of a single <pre>
// element, keeping its inner markup. Anything else is returned unchanged.
func stripPreWrapper(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "<pre") || !strings.HasSuffix(trimmed, "</pre>") {
		return content
	}

	nodes, err := parseFragment(trimmed)
	if err != nil {
		return content
	}

	var pre *html.Node
	for _, n := range nodes {
		switch {
		case n.Type == html.TextNode && strings.TrimSpace(n.Data) == "":
			continue
		case n.Type == html.ElementNode && n.DataAtom == atom.Pre && pre == nil:
			pre = n
		default:
			return content
		}
	}
	if pre == nil {
		return content
	}

	inner, err := renderChildren(pre)
	if err != nil {
		return content
	}
	return strings.TrimRight(inner, "\n")
}

// parseFragment parses content in a body context so no <html> or <body>
// wrapper is added.
func parseFragment(content string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(content), context)
}

func renderChildren(n *html.Node) (string, error) {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
