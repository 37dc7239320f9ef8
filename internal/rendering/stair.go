package rendering

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jonathan/fire-protocols/internal/types"
)

// DefaultStairName is used when the stair has no name of its own.
const DefaultStairName = "Маршевая лестница №1"

func composeStair(b *builder, r *types.StairReport, opts Options) {
	addTitle(b, "Протокол испытания маршевых лестниц", r.Date)
	addOverview(b, &r.Common, "Адрес/наименование объекта")

	b.in(types.SectionCharacteristics)
	b.heading("Характеристика испытываемого объекта", 1)
	name := strings.TrimSpace(r.LadderName)
	if name == "" {
		name = DefaultStairName
	}
	b.text(name + ". Тип П-2.")
	if elements := stairElements(r); elements != "" {
		b.text("Элементы лестницы: " + elements)
	}

	addEnvironment(b, &r.Common)
	addEquipment(b, opts)

	b.in(types.SectionInspection)
	b.heading("Визуальный осмотр лестниц", 1)
	b.paragraph(findingRuns(r.Inspection, stairWording, true)...)

	addCalculation(b, "Расчет величины нагрузки на лестницу", opts)
}

// stairElements describes every march and platform, then the fence heights and
// the mount point count, as one sentence.
func stairElements(r *types.StairReport) string {
	var elements, marchFences, platformFences []string
	for i, m := range r.Marches {
		n := m.NumberAt(i)
		var parts []string
		add := func(format string, d types.Decimal) {
			if v := d.String(); v != "" {
				parts = append(parts, fmt.Sprintf(format, n, v))
			}
		}

		if m.HasMarch {
			add("ширина марша №%d – %sм", m.MarchWidth)
			add("кол-во ступеней марш №%d - %sшт.", m.StepsCount)
			add("длина марша №%d – %sм", m.MarchLength)
			add("ширина ступени марша №%d – %sм", m.StepWidth)
			add("расстояние между ступенями марша №%d – %sм", m.StepDistance)
			if v := m.MarchFenceHeight.String(); v != "" {
				marchFences = append(marchFences, v)
			}
		}
		if m.HasPlatform {
			l, w := m.PlatformLength.String(), m.PlatformWidth.String()
			if l != "" && w != "" {
				parts = append(parts, fmt.Sprintf("площадка №%d размером – %s*%sм", n, l, w))
			}
			if v := m.PlatformFenceHeight.String(); v != "" {
				platformFences = append(platformFences, v)
			}
		}
		if len(parts) > 0 {
			elements = append(elements, strings.Join(parts, ", "))
		}
	}
	if len(elements) == 0 {
		return ""
	}

	for i := range len(elements) - 1 {
		elements[i] = strings.TrimSuffix(elements[i], ".") + ";"
	}
	text := strings.TrimSuffix(strings.Join(elements, " "), ".")

	if fence := fenceHeights(marchFences, platformFences); fence != "" {
		text += ", " + fence
	}
	if mp := r.MountPoints.String(); mp != "" {
		text += ", количество точек крепления " + mp + " шт."
	}
	if !strings.HasSuffix(text, ".") {
		text += "."
	}
	return text
}

// fenceHeights reports the lowest march and platform fence heights, merged
// when they are the same.
func fenceHeights(march, platform []string) string {
	var mf, pf string
	if len(march) > 0 {
		mf = slices.Min(march)
	}
	if len(platform) > 0 {
		pf = slices.Min(platform)
	}
	switch {
	case mf != "" && mf == pf:
		return "высота ограждений марша и площадки лестницы " + mf + "м"
	case mf != "" && pf != "":
		return "высота ограждений марша " + mf + "м, высота ограждений площадки лестницы " + pf + "м"
	case mf != "":
		return "высота ограждений марша " + mf + "м"
	case pf != "":
		return "высота ограждений площадки лестницы " + pf + "м"
	}
	return ""
}
