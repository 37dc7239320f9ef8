package rendering

import (
	"regexp"
	"strings"
)

// EscapeMarkdown escapes characters that Markdown would treat as markup.
// Special characters: \ ` * _ [ ] < > # | ~
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '<', '>', '#', '|', '~':
			result.WriteByte('\\')
			result.WriteRune(r)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

var listMarker = regexp.MustCompile(`^(\d+)([.)])(\s)`)

// escapeLineStart keeps a paragraph from being read as a list item.
func escapeLineStart(line string) string {
	if m := listMarker.FindStringSubmatchIndex(line); m != nil {
		return line[:m[3]] + `\` + line[m[3]:]
	}
	if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "+ ") {
		return `\` + line
	}
	return line
}
