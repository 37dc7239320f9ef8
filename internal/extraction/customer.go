// Package extraction pulls the customer name and the object description out of
// contract text with a fixed cascade of regular expressions.
package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// customerSuffix is the "именуемое в дальнейшем «Заказчик»" phrase every
// customer pattern must end with.
const customerSuffix = `\s*,?\s*именуем[а-яё]{0,3}\s+в\s+дальнейшем\s*["\s'«]*\s*Заказчик`

// formStart keeps an abbreviated legal form from matching inside a word.
const formStart = `(?:^|[^\p{L}])`

// customerPatterns are tried in order. Specific legal-entity forms come first,
// the loose comma-delimited fallback last.
var customerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)(Общество\s+с\s+ограниченной\s+ответственностью\s*["\s'«]+[^"'»]+["\s'»]+)` + customerSuffix),
	regexp.MustCompile(`(?is)` + formStart + `(ООО\s*["\s'«]+[^"'»]+["\s'»]+)` + customerSuffix),
	regexp.MustCompile(`(?is)((?:Закрытое|Открытое|Публичное)?\s*Акционерное\s+общество\s*["\s'«]+[^"'»]+["\s'»]+)` + customerSuffix),
	regexp.MustCompile(`(?is)` + formStart + `([ЗОП]?АО\s*["\s'«]+[^"'»]+["\s'»]+)` + customerSuffix),
	regexp.MustCompile(`(?is)(Индивидуальный\s+предприниматель\s+[А-ЯЁ][а-яё]+\s+[А-ЯЁ][а-яё]+\s+[А-ЯЁ][а-яё]+)` + customerSuffix),
	regexp.MustCompile(`(?is)` + formStart + `(ИП\s+[А-ЯЁ][а-яё]+\s+[А-ЯЁ][а-яё]+\s+[А-ЯЁ][а-яё]+)` + customerSuffix),
	regexp.MustCompile(`(?is),\s*([^,]{10,200}?)` + customerSuffix),
}

// nameCutset is trimmed from both ends of an extracted name.
const nameCutset = "\",'«»:;.\n\r\t "

var leadingFiller = regexp.MustCompile(`(?i)^(?:в\s+лице|далее)\s*[-–—]?\s*`)

const (
	minCustomerLen = 5
	maxCustomerLen = 250
)

// ExtractCustomer returns the customer's legal name. The second result is false
// when no pattern produced a name of acceptable length.
func ExtractCustomer(text string) (string, bool) {
	text = normalizeSpaces(text)
	for _, re := range customerPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := cleanName(m[1])
		if n := utf8.RuneCountInString(name); n > minCustomerLen && n < maxCustomerLen {
			return name, true
		}
	}
	return "", false
}

// cleanName trims punctuation and filler words around a captured name. A closing
// quote is kept when it balances an opening quote inside the name.
func cleanName(raw string) string {
	s := strings.TrimLeft(raw, nameCutset)
	core := strings.TrimRight(s, nameCutset)
	if q := unbalancedQuote(core); q != "" && strings.Contains(s[len(core):], q) {
		core += q
	}
	core = leadingFiller.ReplaceAllString(core, "")
	return strings.TrimSpace(core)
}

// unbalancedQuote returns the closing quote needed to balance s, if any.
func unbalancedQuote(s string) string {
	switch {
	case strings.Count(s, "«") > strings.Count(s, "»"):
		return "»"
	case strings.Count(s, `"`)%2 == 1:
		return `"`
	case strings.Count(s, "'")%2 == 1:
		return "'"
	}
	return ""
}

// normalizeSpaces turns non-breaking spaces, common in Word documents, into
// plain spaces so that \s matches them.
func normalizeSpaces(s string) string {
	return spaceReplacer.Replace(s)
}

var spaceReplacer = strings.NewReplacer("\u00a0", " ", "\u202f", " ", "\u2007", " ")
