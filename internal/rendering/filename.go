package rendering

import (
	"strings"
	"time"
	"unicode"

	"github.com/jonathan/fire-protocols/internal/types"
)

const maxBaseNameRunes = 50

// FilePrefix returns the file name prefix of a protocol.
func FilePrefix(p types.ProtocolType) string {
	switch p {
	case types.ProtocolStair:
		return "Protocol_stair"
	case types.ProtocolRoof:
		return "Протокол_ограждения"
	default:
		return "Отчёт"
	}
}

// FileName returns "{prefix}_{date}_{HH-MM-SS}_{name}.docx". The name is the
// first ladder name for vertical reports and the object otherwise.
func FileName(report types.Report, now time.Time) string {
	prefix := FilePrefix(report.Protocol())
	c := report.Base()

	date := strings.TrimSpace(c.Date)
	if date == "" {
		date = now.Format("2006-01-02")
	}
	date = strings.NewReplacer(".", "-", "/", "-").Replace(date)

	base := c.ObjectDescription
	if v, ok := report.(*types.VerticalReport); ok && len(v.Ladders) > 0 && strings.TrimSpace(v.Ladders[0].Name) != "" {
		base = v.Ladders[0].Name
	}
	base = sanitizeName(base)
	if base == "" {
		base = prefix
	}

	return prefix + "_" + date + "_" + now.Format("15-04-05") + "_" + base + ".docx"
}

// sanitizeName keeps letters, digits, spaces, hyphens and underscores, and
// cuts the result to maxBaseNameRunes.
func sanitizeName(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			sb.WriteRune(r)
		}
	}
	runes := []rune(strings.TrimSpace(sb.String()))
	if len(runes) > maxBaseNameRunes {
		runes = runes[:maxBaseNameRunes]
	}
	return strings.TrimSpace(string(runes))
}
