package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/fire-protocols/internal/calc"
	"github.com/jonathan/fire-protocols/internal/types"
)

func composeVertical(b *builder, r *types.VerticalReport, opts Options) {
	addTitle(b, "Протокол испытания вертикальных пожарных лестниц", r.Date)
	addOverview(b, &r.Common, "Адрес/наименование испытываемого объекта")

	b.in(types.SectionCharacteristics)
	b.heading("Характеристика испытываемых конструкций", 1)
	for i, l := range r.Ladders {
		b.paragraph(types.Run{Text: l.Title(i), Bold: true}, types.Run{Text: ladderCharacteristics(l)})
	}

	addEnvironment(b, &r.Common)
	addEquipment(b, opts)

	b.in(types.SectionInspection)
	b.heading("Визуальный осмотр лестниц", 1)
	for _, runs := range ladderInspection(r) {
		b.paragraph(runs...)
	}

	addCalculation(b, "Расчет величины нагрузки на лестницу", opts)
}

// ladderCharacteristics lists the filled-in dimensions of one ladder.
func ladderCharacteristics(l types.LadderSpec) string {
	var parts []string
	add := func(format string, d types.Decimal) {
		if v := d.String(); v != "" {
			parts = append(parts, fmt.Sprintf(format, v))
		}
	}

	if h, ok := l.Height.Parse(); ok {
		parts = append(parts, "тип лестницы "+string(calc.ClassifyLadder(h)))
	}
	add("высота лестницы %s м", l.Height)
	add("ширина лестницы %s м", l.Width)
	add("количество ступеней %s (шт.)", l.StepsCount)
	add("количество точек крепления %s (шт.)", l.MountPoints)

	var platform []string
	if v := l.PlatformLength.String(); v != "" {
		platform = append(platform, "длина "+v+" м")
	}
	if v := l.PlatformWidth.String(); v != "" {
		platform = append(platform, "ширина "+v+" м")
	}
	if len(platform) > 0 {
		parts = append(parts, "размер площадки: "+strings.Join(platform, ", "))
	}

	add("высота ограждений площадки %s м", l.FenceHeight)
	add("расстояние от стены %s м", l.WallDistance)
	add("расстояние от земли %s м", l.GroundDistance)
	add("расстояние между ступенями %s м", l.StepDistance)

	if len(parts) == 0 {
		return ": характеристики не указаны."
	}
	return ": " + strings.Join(parts, ", ") + "."
}
