package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fire-protocols/internal/config"
	"github.com/jonathan/fire-protocols/internal/types"
)

func TestCompose_SectionsInCanonicalOrder(t *testing.T) {
	reports := map[string]types.Report{
		"vertical": testVertical(testLadder(1, "", "8"), testLadder(2, "", "5")),
		"stair":    testStair(),
		"roof":     testRoof(),
	}

	for name, r := range reports {
		t.Run(name, func(t *testing.T) {
			doc := compose(t, r)
			require.NoError(t, doc.Check())
			assert.Equal(t, r.Protocol(), doc.Protocol)

			var order []types.Section
			for _, b := range doc.Blocks {
				if len(order) == 0 || order[len(order)-1] != b.Section {
					order = append(order, b.Section)
				}
			}
			assert.Equal(t, types.Sections, order)
		})
	}
}

func TestCompose_Errors(t *testing.T) {
	_, err := Compose(types.ReportInput{}, []types.LoadTableRow{{SequenceNo: 1}}, Options{})
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)

	_, err = Compose(types.ReportInput{Report: testRoof()}, nil, Options{})
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, err.Error(), "load table has no rows")
}

func TestCompose_HeaderTitleAndOverview(t *testing.T) {
	doc := compose(t, testRoof())

	header := sectionText(doc, types.SectionHeader)
	assert.Equal(t, config.Default().Company.Lines(), header)
	assert.True(t, doc.BlocksIn(types.SectionHeader)[0].Runs[0].Bold)

	title := doc.BlocksIn(types.SectionTitle)
	require.Len(t, title, 2)
	assert.Equal(t, "Протокол испытания ограждений кровли", title[0].Text())
	assert.Equal(t, types.AlignCenter, title[0].Align)
	assert.Equal(t, "от 15.03.2024", title[1].Text())

	overview := doc.BlocksIn(types.SectionOverview)
	require.Len(t, overview, 2)
	assert.Equal(t, "Заказчик", overview[0].Key)
	assert.Equal(t, `ООО "Ромашка"`, overview[0].Text())
	assert.Equal(t, "склад, г. Уфа", overview[1].Text())
}

func TestCompose_UsesOptions(t *testing.T) {
	r := testRoof()
	rows := []types.LoadTableRow{{SequenceNo: 1, ElementName: "x", TestPointCount: 1, Verdict: "Выдержали"}}
	doc, err := Compose(types.ReportInput{Report: r}, rows, Options{
		HeaderLines: []string{"ООО «Пожтест»"},
		Equipment:   "Динамометр ДПУ-1.",
		Standard:    "ГОСТ Р 53254-2009 «Техника пожарная»",
		Now:         fixedNow,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"ООО «Пожтест»"}, sectionText(doc, types.SectionHeader))
	assert.Equal(t, []string{"Динамометр ДПУ-1."}, sectionText(doc, types.SectionEquipment))
	assert.Equal(t, []string{"Расчет величины нагрузки согласно: ГОСТ Р 53254-2009 «Техника пожарная»."},
		sectionText(doc, types.SectionCalculation))
}

func TestCompose_LoadTable(t *testing.T) {
	doc := compose(t, testVertical(testLadder(1, "", "8")))

	var table *types.Table
	for _, b := range doc.BlocksIn(types.SectionResults) {
		if b.Kind == types.BlockTable {
			table = b.Table
		}
	}
	require.NotNil(t, table)
	assert.Equal(t, loadTableHeaders, table.Headers)
	require.Len(t, table.Rows, 3)
	assert.Equal(t, []string{"1", "Ступени", "3", "1.80 кН (180 кгс)", "Выдержали"}, table.Rows[0])
	assert.Equal(t, []string{"2", "Ограждения лестницы и площадки", "8", "0.54 кН (54 кгс)", "Выдержали"}, table.Rows[1])
	assert.Equal(t, []string{"3", "Балки крепления к стене", "4", "1.44 кН (144 кгс)", "Выдержали"}, table.Rows[2])
}

func TestEnvironmentText(t *testing.T) {
	tests := []struct {
		name   string
		common types.Common
		want   string
	}{
		{
			name:   "full",
			common: types.Common{TestTime: "утреннее время", Temperature: "-5", WindSpeed: "2.5"},
			want:   "Испытания проводились в утреннее время при температуре воздуха -5°C и скорости ветра 2.5 м/с.",
		},
		{
			name:   "default time",
			common: types.Common{Temperature: "12", WindSpeed: "3"},
			want:   "Испытания проводились в дневное время при температуре воздуха 12°C и скорости ветра 3 м/с.",
		},
		{
			name:   "temperature only",
			common: types.Common{Temperature: "12"},
			want:   "Испытания проводились в дневное время при температуре воздуха 12°C.",
		},
		{
			name:   "wind only",
			common: types.Common{WindSpeed: "4"},
			want:   "Испытания проводились в дневное время при скорости ветра 4 м/с.",
		},
		{
			name: "nothing measured",
			want: "Испытания проводились в дневное время.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, environmentText(&tt.common))
		})
	}
}

func TestCharacteristics(t *testing.T) {
	t.Run("vertical ladder", func(t *testing.T) {
		l := testLadder(1, "", "8")
		l.PlatformLength = "1.5"
		l.PlatformWidth = "1"
		assert.Equal(t,
			": тип лестницы П1-2, высота лестницы 8 м, ширина лестницы 0.7 м, количество ступеней 20 (шт.), "+
				"количество точек крепления 4 (шт.), размер площадки: длина 1.5 м, ширина 1 м, расстояние между ступенями 0.3 м.",
			ladderCharacteristics(l))
		assert.Equal(t, ": характеристики не указаны.", ladderCharacteristics(types.LadderSpec{}))
	})

	t.Run("vertical block has bold title", func(t *testing.T) {
		doc := compose(t, testVertical(testLadder(3, "", "5")))
		blocks := doc.BlocksIn(types.SectionCharacteristics)
		require.Len(t, blocks, 2)
		assert.Equal(t, "Характеристика испытываемых конструкций", blocks[0].Text())
		assert.Equal(t, types.Run{Text: "Лестница №3", Bold: true}, blocks[1].Runs[0])
	})

	t.Run("stair", func(t *testing.T) {
		doc := compose(t, testStair())
		assert.Equal(t, []string{
			"Маршевая лестница №1. Тип П-2.",
			"Элементы лестницы: ширина марша №1 – 1.2м, кол-во ступеней марш №1 - 10шт., длина марша №1 – 3м, " +
				"ширина ступени марша №1 – 0.3м, расстояние между ступенями марша №1 – 0.2м, площадка №1 размером – 1.5*1.2м, " +
				"высота ограждений марша и площадки лестницы 0.9м, количество точек крепления 4 шт.",
		}, sectionText(doc, types.SectionCharacteristics))
	})

	t.Run("stair with two marches and different fences", func(t *testing.T) {
		r := testStair()
		r.LadderName = "Лестница у входа"
		r.MountPoints = ""
		r.Marches = append(r.Marches, types.MarchSpec{
			Number:              2,
			HasPlatform:         true,
			PlatformLength:      "2",
			PlatformWidth:       "1",
			PlatformFenceHeight: "1.1",
		})
		r.Marches[0].PlatformFenceHeight = "1.2"
		assert.Equal(t,
			"ширина марша №1 – 1.2м, кол-во ступеней марш №1 - 10шт., длина марша №1 – 3м, ширина ступени марша №1 – 0.3м, "+
				"расстояние между ступенями марша №1 – 0.2м, площадка №1 размером – 1.5*1.2м; площадка №2 размером – 2*1м, "+
				"высота ограждений марша 0.9м, высота ограждений площадки лестницы 1.1м.",
			stairElements(r))
	})

	t.Run("roof", func(t *testing.T) {
		assert.Equal(t,
			"Ограждения кровли А Конструкция ограждений – металлическая конструкция с вертикальными и горизонтальными "+
				"ограждающими элементами - длиной 50 м.п., высота от плоскости кровли 0.5 м, высота ограждений 1.2 м, "+
				"количество точек креплений 20 шт.",
			roofCharacteristics(testRoof()))
	})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Equipment = "Рулетка."
	opts := OptionsFromConfig(cfg)
	assert.Equal(t, "Рулетка.", opts.Equipment)
	assert.Equal(t, cfg.Company.Lines(), opts.HeaderLines)
	assert.Equal(t, "ГОСТ Р 53254-2009", opts.standardCode())
}
