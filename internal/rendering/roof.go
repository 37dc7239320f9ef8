package rendering

import (
	"strings"

	"github.com/jonathan/fire-protocols/internal/types"
)

const roofConstruction = "Конструкция ограждений – металлическая конструкция с вертикальными и горизонтальными ограждающими элементами"

func composeRoof(b *builder, r *types.RoofReport, opts Options) {
	addTitle(b, "Протокол испытания ограждений кровли", r.Date)
	addOverview(b, &r.Common, "Адрес/наименование объекта")

	b.in(types.SectionCharacteristics)
	b.heading("Характеристика испытываемых конструкций", 1)
	b.text(roofCharacteristics(r))

	addEnvironment(b, &r.Common)
	addEquipment(b, opts)

	b.in(types.SectionInspection)
	b.heading("Визуальный осмотр ограждений", 1)
	b.paragraph(findingRuns(r.Inspection, elementWording, true)...)

	addCalculation(b, "Расчет величины нагрузки на ограждения", opts)
}

func roofCharacteristics(r *types.RoofReport) string {
	text := r.Title() + " " + roofConstruction

	var parts []string
	if v := r.ParapetHeight.String(); v != "" {
		parts = append(parts, "высота от плоскости кровли "+v+" м")
	}
	if v := r.Height.String(); v != "" {
		parts = append(parts, "высота ограждений "+v+" м")
	}
	if v := r.MountPoints.String(); v != "" {
		parts = append(parts, "количество точек креплений "+v+" шт")
	}
	if v := r.MountPitch.String(); v != "" {
		parts = append(parts, "шаг креплений "+v+" м")
	}

	if v := r.Length.String(); v != "" {
		text += " - длиной " + v + " м.п."
		if len(parts) > 0 {
			text += ","
		}
	}
	if len(parts) > 0 {
		text += " " + strings.Join(parts, ", ")
	}
	return strings.TrimSuffix(text, ".") + "."
}
