// Package ingestion reads contract documents into the plain text the field
// extractor works on.
package ingestion

import "strings"

// Content is the text of a document split the way Word stores it.
type Content struct {
	Paragraphs []string
	Cells      []string
}

// Text joins the non-empty trimmed body paragraphs and then the non-empty
// trimmed table cells, one per line.
func (c Content) Text() string {
	lines := make([]string, 0, len(c.Paragraphs)+len(c.Cells))
	for _, p := range c.Paragraphs {
		if p = CleanLine(p); p != "" {
			lines = append(lines, p)
		}
	}
	for _, cell := range c.Cells {
		if cell = CleanLine(cell); cell != "" {
			lines = append(lines, cell)
		}
	}
	return strings.Join(lines, "\n")
}

// CleanLine trims a paragraph and replaces the non-breaking and narrow spaces
// Word likes to insert with plain spaces.
func CleanLine(s string) string {
	return strings.TrimSpace(spaceReplacer.Replace(s))
}

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2007", " ")
