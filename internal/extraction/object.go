package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	clauseStart = regexp.MustCompile(`1\.2\s*\.?\s*`)

	// clauseEnd marks the next sibling (1.3–1.9) or top-level (2.) clause.
	clauseEnd = regexp.MustCompile(`\n\s*(?:1\.[3-9]|2\.)`)

	objectAnchors = []*regexp.Regexp{
		regexp.MustCompile(`(?is)на\s+объекте\s+заказчика[:\s]*[-–—]?\s*(.+)`),
		regexp.MustCompile(`(?is)объекте?\s+заказчика[:\s]*[-–—]?\s*(.+)`),
	}

	whitespaceRun = regexp.MustCompile(`\s+`)
	trailingTerms = regexp.MustCompile(`(?is)\s+(?:Исполнитель|Срок\s+выполнения|В\s+течени[ие]).*$`)
)

const (
	fallbackLines = 20
	minObjectLen  = 5
	maxObjectLen  = 1000
)

// ExtractObjectSection returns the object description found in clause 1.2 after
// the "на объекте заказчика" phrase. The second result is false when the clause
// or the phrase is missing, or the text has an unacceptable length.
func ExtractObjectSection(text string) (string, bool) {
	text = normalizeSpaces(text)
	clause, ok := clauseSpan(text)
	if !ok {
		return "", false
	}

	for _, re := range objectAnchors {
		m := re.FindStringSubmatch(clause)
		if m == nil {
			continue
		}
		obj := whitespaceRun.ReplaceAllString(m[1], " ")
		obj = strings.TrimSpace(obj)
		obj = strings.TrimSpace(trailingTerms.ReplaceAllString(obj, ""))
		if n := utf8.RuneCountInString(obj); n > minObjectLen && n < maxObjectLen {
			return obj, true
		}
	}
	return "", false
}

// clauseSpan returns the text of clause 1.2. Without a following clause marker
// it takes the first line of the clause plus at most fallbackLines more.
func clauseSpan(text string) (string, bool) {
	loc := clauseStart.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[1]:]

	if end := clauseEnd.FindStringIndex(rest); end != nil {
		return rest[:end[0]], true
	}

	lines := strings.SplitN(rest, "\n", fallbackLines+2)
	if len(lines) > fallbackLines+1 {
		lines = lines[:fallbackLines+1]
	}
	return strings.Join(lines, "\n"), true
}
