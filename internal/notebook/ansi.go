package notebook

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ansiPalette maps SGR parameter strings to foreground colors.
var ansiPalette = map[string]string{
	"31": "#e06c75", "0;31": "#e06c75", "1;31": "#e06c75",
	"32": "#98c379", "0;32": "#98c379", "1;32": "#98c379",
	"33": "#e5c07b", "0;33": "#e5c07b", "1;33": "#e5c07b",
	"34": "#61afef", "0;34": "#61afef", "1;34": "#61afef",
	"35": "#c678dd", "0;35": "#c678dd", "1;35": "#c678dd",
	"36": "#56b6c2", "0;36": "#56b6c2", "1;36": "#56b6c2",
	"37": "#abb2bf", "0;37": "#abb2bf", "1;37": "#abb2bf",

	"38;5;160": "#e06c75", "38;5;196": "#e06c75",
	"38;5;28": "#98c379", "38;5;34": "#98c379",
}

const csiPrefix = "\x1b["

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// ANSIToHTML translates terminal color sequences into styled spans and
// escapes &, < and > in the remaining text.
//
// Each CSI sequence closes the open span, if any, and opens a new one when
// its params name a palette color. Unknown codes, resets included, only
// close. Other escape sequences are dropped, as StripANSI drops them.
func ANSIToHTML(s string) string {
	var b strings.Builder
	open := false

	for len(s) > 0 {
		seq, _, n, _ := ansi.DecodeSequence(s, ansi.NormalState, nil)
		if n <= 0 {
			break
		}
		s = s[n:]

		if seq[0] != ansi.ESC {
			b.WriteString(textEscaper.Replace(seq))
			continue
		}
		if !strings.HasPrefix(seq, csiPrefix) {
			continue
		}

		if open {
			b.WriteString("</span>")
			open = false
		}
		if color, ok := ansiPalette[csiParams(seq)]; ok {
			b.WriteString(`<span style="color:`)
			b.WriteString(color)
			b.WriteString(`">`)
			open = true
		}
	}

	if open {
		b.WriteString("</span>")
	}
	return b.String()
}

// csiParams returns the numeric parameter string of a CSI sequence.
func csiParams(seq string) string {
	params := seq[len(csiPrefix):]
	end := 0
	for end < len(params) && (params[end] >= '0' && params[end] <= '9' || params[end] == ';') {
		end++
	}
	return params[:end]
}

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}
