package rendering

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/fire-protocols/internal/types"
)

// inspectionWording names the inspected structure in the first two findings.
type inspectionWording struct {
	damage string
	mount  string
}

var (
	elementWording = inspectionWording{
		damage: "внешние повреждения",
		mount:  "следы нарушения крепления к стене",
	}
	stairWording = inspectionWording{
		damage: "внешние повреждения конструкций лестницы",
		mount:  "следы нарушения крепления конструкции лестницы к стене здания",
	}
)

// allClear reports whether an inspection found nothing to remark on.
func allClear(in types.Inspection) bool {
	return !in.HasDefects() && in.PaintCompliant
}

// findingRuns renders the four findings as one sentence. Defects are bold.
func findingRuns(in types.Inspection, w inspectionWording, capitalize bool) []types.Run {
	findings := []struct {
		text   string
		defect bool
	}{
		{detected(w.damage, "обнаружены", in.DamageFound), in.DamageFound},
		{detected(w.mount, "обнаружены", in.MountViolationFound), in.MountViolationFound},
		{detected("нарушение сварных швов", "обнаружено", in.WeldViolationFound), in.WeldViolationFound},
		{detected("защитное покрытие требованиям ГОСТ 9.302", "соответствует", in.PaintCompliant), !in.PaintCompliant},
	}

	runs := make([]types.Run, 0, 2*len(findings))
	for i, f := range findings {
		text := f.text
		if i == 0 && capitalize {
			text = upperFirst(text)
		}
		if i > 0 {
			runs = append(runs, types.Run{Text: ", "})
		}
		runs = append(runs, types.Run{Text: text, Bold: f.defect})
	}
	return append(runs, types.Run{Text: "."})
}

func detected(subject, verb string, yes bool) string {
	if yes {
		return subject + " " + verb
	}
	return subject + " не " + verb
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// ladderGroup is a set of ladders with identical inspection results.
type ladderGroup struct {
	result  types.Inspection
	indexes []int
}

// groupLadders groups ladders by inspection result in order of first appearance.
func groupLadders(ladders []types.LadderSpec) []ladderGroup {
	var groups []ladderGroup
	pos := make(map[types.Inspection]int)
	for i, l := range ladders {
		g, ok := pos[l.Inspection]
		if !ok {
			g = len(groups)
			pos[l.Inspection] = g
			groups = append(groups, ladderGroup{result: l.Inspection})
		}
		groups[g].indexes = append(groups[g].indexes, i)
	}
	return groups
}

// ladderInspection returns one sentence per group. A group is named when the
// report has several ladders or the group has something to remark on.
func ladderInspection(r *types.VerticalReport) [][]types.Run {
	groups := groupLadders(r.Ladders)
	out := make([][]types.Run, 0, len(groups))
	for _, g := range groups {
		if len(r.Ladders) == 1 && allClear(g.result) {
			out = append(out, findingRuns(g.result, elementWording, true))
			continue
		}
		runs := []types.Run{{Text: groupName(r.Ladders, g.indexes), Bold: true}, {Text: ": "}}
		out = append(out, append(runs, findingRuns(g.result, elementWording, false)...))
	}
	return out
}

// groupName is the ladder title for a single ladder, otherwise the names or
// numbers of all ladders in number order.
func groupName(ladders []types.LadderSpec, indexes []int) string {
	if len(indexes) == 1 {
		i := indexes[0]
		return ladders[i].Title(i)
	}
	sorted := slices.Clone(indexes)
	slices.SortStableFunc(sorted, func(a, b int) int {
		return ladders[a].NumberAt(a) - ladders[b].NumberAt(b)
	})
	names := make([]string, 0, len(sorted))
	for _, i := range sorted {
		if name := strings.TrimSpace(ladders[i].Name); name != "" {
			names = append(names, name)
		} else {
			names = append(names, "№"+itoa(ladders[i].NumberAt(i)))
		}
	}
	return strings.Join(names, ", ")
}
