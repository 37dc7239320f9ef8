package rendering

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jonathan/fire-protocols/internal/types"
)

// Markdown renders the document blocks as GitHub-flavoured Markdown.
func Markdown(doc *types.ReportDocument) string {
	var sb strings.Builder
	for _, b := range doc.Blocks {
		switch b.Kind {
		case types.BlockHeading:
			sb.WriteString(strings.Repeat("#", b.Level+1))
			sb.WriteByte(' ')
			sb.WriteString(EscapeMarkdown(b.Text()))
		case types.BlockKeyValue:
			sb.WriteString("**")
			sb.WriteString(EscapeMarkdown(b.Key))
			sb.WriteString(":** ")
			sb.WriteString(EscapeMarkdown(b.Text()))
		case types.BlockParagraph:
			sb.WriteString(escapeLineStart(runsMarkdown(b.Runs)))
		case types.BlockTable:
			if b.Table != nil {
				writeTable(&sb, *b.Table)
			}
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func runsMarkdown(runs []types.Run) string {
	var sb strings.Builder
	for _, r := range runs {
		text := EscapeMarkdown(r.Text)
		if r.Bold && strings.TrimSpace(r.Text) != "" {
			sb.WriteString("**" + text + "**")
			continue
		}
		sb.WriteString(text)
	}
	// Leading spaces would start a code block.
	return strings.TrimLeft(sb.String(), " \t")
}

func writeTable(sb *strings.Builder, t types.Table) {
	writeRow(sb, t.Headers)
	sb.WriteByte('|')
	for range t.Headers {
		sb.WriteString(" --- |")
	}
	sb.WriteByte('\n')
	for _, row := range t.Rows {
		writeRow(sb, row)
	}
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteByte('|')
	for _, c := range cells {
		sb.WriteByte(' ')
		sb.WriteString(EscapeMarkdown(c))
		sb.WriteString(" |")
	}
	sb.WriteByte('\n')
}

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML renders the document as an HTML fragment for previews.
func HTML(doc *types.ReportDocument) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(doc)), &buf); err != nil {
		return "", &RenderError{Message: "failed to convert preview to HTML", Cause: err}
	}
	return buf.String(), nil
}
