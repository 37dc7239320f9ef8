package rendering

import (
	"slices"
	"strings"

	"github.com/jonathan/fire-protocols/internal/types"
)

const (
	passedText  = "в прочностные испытания выдержали, нагрузка выдерживалась в течение 2 минут. После испытания не имеет трещин, прогибов, изломов."
	fitText     = "Пригодны к эксплуатации."
	restoreText = "Требуется восстановить защитное покрытие."
	unfitText   = "не пригодны к эксплуатации"
)

// verdict is what the conclusion is decided from.
type verdict struct {
	subject string
	// defects names the defects found, in inspection order.
	defects []string
	// listDefects prints the defect names after the unfit verdict.
	listDefects bool
	// restoreWhenUnfit keeps the coating sentence after an unfit verdict.
	restoreWhenUnfit bool
	paintOK          bool
	// checklistFailed is set when a vertical ladder failed its checklist.
	checklistFailed bool
	nonconformities []string
}

func defectNames(in types.Inspection) []string {
	var names []string
	if in.DamageFound {
		names = append(names, "внешние повреждения")
	}
	if in.MountViolationFound {
		names = append(names, "следы нарушения крепления")
	}
	if in.WeldViolationFound {
		names = append(names, "нарушения сварных швов")
	}
	return names
}

func verdictFor(report types.Report) verdict {
	switch r := report.(type) {
	case *types.VerticalReport:
		return verticalVerdict(r)
	case *types.StairReport:
		return verdict{
			subject:          "Конструкции маршевых лестниц",
			defects:          defectNames(r.Inspection),
			restoreWhenUnfit: true,
			paintOK:          r.PaintCompliant,
		}
	case *types.RoofReport:
		return verdict{
			subject:     "Ограждения кровли",
			defects:     defectNames(r.Inspection),
			listDefects: true,
			paintOK:     r.PaintCompliant,
		}
	}
	return verdict{paintOK: true}
}

// verticalVerdict merges the findings and checklists of all ladders. A
// paint_coating checklist violation counts as non-compliant paint.
func verticalVerdict(r *types.VerticalReport) verdict {
	v := verdict{subject: "Конструкции вертикальных пожарных лестниц", paintOK: true}
	violated := make(map[types.Violation]bool)
	for i, l := range r.Ladders {
		for _, name := range defectNames(l.Inspection) {
			if !slices.Contains(v.defects, name) {
				v.defects = append(v.defects, name)
			}
		}
		rec := r.Compliance(i)
		if !rec.Compliant {
			v.checklistFailed = true
			for _, viol := range rec.Ordered() {
				violated[viol] = true
			}
		}
		if !l.PaintCompliant || (!rec.Compliant && rec.Violations[types.ViolationPaintCoating]) {
			v.paintOK = false
		}
	}
	v.nonconformities = orderedTitles(violated)
	return v
}

// orderedTitles returns the violation titles in checklist order, paint excluded.
func orderedTitles(set map[types.Violation]bool) []string {
	delete(set, types.ViolationPaintCoating)
	titles := make([]string, 0, len(set))
	for _, v := range (types.ComplianceRecord{Violations: set}).Ordered() {
		titles = append(titles, v.Title())
	}
	return titles
}

// conclusion returns the conclusion paragraphs.
func conclusion(report types.Report, opts Options) []string {
	v := verdictFor(report)
	code := opts.standardCode()
	passed := v.subject + " " + passedText

	var text string
	switch {
	case len(v.defects) > 0:
		text = v.subject + " " + unfitText
		if v.listDefects {
			text += " (" + strings.Join(v.defects, ", ") + ")"
		}
		text += "."
		if !v.paintOK && v.restoreWhenUnfit {
			text += " " + restoreText
		}
	case v.checklistFailed:
		switch {
		case len(v.nonconformities) > 0:
			text = passed + " Требованиям " + code + " не соответствует (" + strings.Join(v.nonconformities, ", ") + ")."
			if !v.paintOK {
				text += " " + restoreText
			}
		case !v.paintOK:
			text = passed + " " + restoreText
		default:
			text = passed + " Требованиям " + code + " не соответствует."
		}
	case !v.paintOK:
		text = passed + " " + restoreText
	default:
		text = passed + " " + fitText + " Соответствует " + opts.Standard + "."
	}

	paragraphs := []string{text}
	c := report.Base()
	if c.ProjectCompliant && strings.TrimSpace(c.ProjectNumber) != "" {
		paragraphs = append(paragraphs, "Соответствует проекту "+strings.TrimSpace(c.ProjectNumber)+".")
	}
	return paragraphs
}
