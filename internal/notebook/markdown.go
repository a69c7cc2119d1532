package notebook

import "strings"

// ToMarkdown converts nb to a Markdown document. Cells are separated by
// thematic breaks, code and raw cells become fenced blocks, images become
// data URI images and error tracebacks lose their color codes.
func ToMarkdown(nb *Notebook) string {
	var b strings.Builder
	lang := nb.Language()

	for i, cell := range nb.Cells {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}

		switch cell.Type {
		case CellMarkdown:
			b.WriteString(cell.Source.String())
			b.WriteString("\n\n")
		case CellCode:
			writeFence(&b, lang, cell.Source.String())
			for oi := range cell.Outputs {
				writeOutputMarkdown(&b, &cell.Outputs[oi])
			}
		case CellRaw:
			writeFence(&b, "", cell.Source.String())
		}
	}
	return b.String()
}

func writeOutputMarkdown(b *strings.Builder, o *Output) {
	switch o.Type {
	case OutputStream:
		writeFence(b, "", o.Text.String())

	case OutputExecuteResult, OutputDisplayData:
		for _, mime := range []string{"image/png", "image/jpeg"} {
			if img, ok := o.DataString(mime); ok {
				b.WriteString("![output](data:" + mime + ";base64," + strings.ReplaceAll(img, "\n", "") + ")\n\n")
				return
			}
		}
		if text, ok := o.DataString("text/plain"); ok {
			writeFence(b, "", text)
		}

	case OutputError:
		var body strings.Builder
		if o.EName != "" {
			body.WriteString(o.EName)
			if o.EValue != "" {
				body.WriteString(": " + o.EValue)
			}
			body.WriteByte('\n')
		}
		for _, line := range o.Traceback {
			body.WriteString(StripANSI(line))
			body.WriteByte('\n')
		}
		writeFence(b, "", body.String())
	}
}

// writeFence writes body as a fenced code block tagged with lang. The fence
// is longer than any backtick run in body so the body cannot close it.
func writeFence(b *strings.Builder, lang, body string) {
	fence := strings.Repeat("`", max(3, longestRun(body, '`')+1))
	b.WriteString(fence + lang + "\n")
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(fence + "\n\n")
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			run = 0
			continue
		}
		run++
		longest = max(longest, run)
	}
	return longest
}
