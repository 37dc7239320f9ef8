package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/fire-protocols/internal/types"
)

func validCommon() types.Common {
	return types.Common{
		Date:              "01.06.2024",
		Customer:          `ООО "Ромашка"`,
		ObjectDescription: "здание по адресу г. Екатеринбург, ул. Ленина 1",
		Temperature:       "+18",
		WindSpeed:         "3,5",
	}
}

func validLadder() types.LadderSpec {
	return types.LadderSpec{
		Height:       "8",
		Width:        "0,7",
		StepsCount:   "27",
		MountPoints:  "4",
		StepDistance: "0.3",
		Inspection:   types.Inspection{PaintCompliant: true},
	}
}

func validationErr(t *testing.T, err error) *ValidationError {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.NotEmpty(t, ve.Errors)
	return ve
}

func TestValidate_ValidReports(t *testing.T) {
	v := New()

	tests := []struct {
		name   string
		report types.Report
	}{
		{
			name:   "vertical",
			report: &types.VerticalReport{Common: validCommon(), Ladders: []types.LadderSpec{validLadder()}},
		},
		{
			name: "stair with march and platform",
			report: &types.StairReport{
				Common:      validCommon(),
				MountPoints: "4",
				Marches: []types.MarchSpec{{
					HasMarch: true, HasPlatform: true,
					MarchWidth: "1", MarchLength: "3", StepWidth: "0.3", StepDistance: "0.2",
					StepsCount: "12", MarchFenceHeight: "1.2",
					PlatformLength: "1.5", PlatformWidth: "1.2", PlatformFenceHeight: "1.2",
				}},
			},
		},
		{
			name: "stair platform only skips march fields",
			report: &types.StairReport{
				Common:      validCommon(),
				MountPoints: "2",
				Marches: []types.MarchSpec{{
					HasPlatform: true, PlatformLength: "1.5", PlatformWidth: "1.2", PlatformFenceHeight: "1",
				}},
			},
		},
		{
			name:   "roof",
			report: &types.RoofReport{Common: validCommon(), Length: "120", Height: "1.2", MountPoints: "40"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, v.Validate(types.ReportInput{Report: tt.report}))
		})
	}
}

func TestValidate_RoofLengthOutOfRange(t *testing.T) {
	r := &types.RoofReport{Common: validCommon(), Length: "600", Height: "1.2", MountPoints: "40"}

	ve := validationErr(t, New().Validate(types.ReportInput{Report: r}))
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "Length", ve.Errors[0].Field)
	assert.Equal(t, "Поле «Длина ограждения» должно быть в диапазоне от 1 до 500", ve.Errors[0].Message)
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	r := &types.RoofReport{
		Common: types.Common{
			Date:        "2024/06/01",
			Customer:    "ИП",
			Temperature: "-70",
			WindSpeed:   "сильный",
		},
		Length:      "600",
		Height:      "0,5",
		MountPoints: "1",
	}

	ve := validationErr(t, New().Validate(types.ReportInput{Report: r}))
	msgs := ve.Messages()
	assert.Len(t, msgs, 8)
	assert.Contains(t, msgs, "Поле «Дата» должно быть датой в формате ДД.ММ.ГГГГ, ГГГГ-ММ-ДД или ДД/ММ/ГГГГ")
	assert.Contains(t, msgs, "Поле «Заказчик» должно содержать не менее 3 символов")
	assert.Contains(t, msgs, "Поле «Объект» обязательно для заполнения")
	assert.Contains(t, msgs, "Поле «Температура воздуха» должно быть в диапазоне от -50 до 50")
	assert.Contains(t, msgs, "Поле «Скорость ветра» должно быть числом")
	assert.Contains(t, msgs, "Поле «Высота ограждения» должно быть в диапазоне от 0.6 до 2.5")
	assert.Contains(t, msgs, "Поле «Количество точек крепления» должно быть в диапазоне от 2 до 500")
	assert.Contains(t, ve.Error(), "8 problem(s)")
}

func TestValidate_VerticalPerLadderPrefix(t *testing.T) {
	bad := validLadder()
	bad.Height = "0"
	bad.StepsCount = ""

	r := &types.VerticalReport{Common: validCommon(), Ladders: []types.LadderSpec{validLadder(), bad}}
	ve := validationErr(t, New().Validate(types.ReportInput{Report: r}))

	assert.ElementsMatch(t, []string{
		"Лестница №2: Поле «Высота» должно быть в диапазоне от 0.1 до 1000",
		"Лестница №2: Поле «Количество ступеней» обязательно для заполнения",
	}, ve.Messages())
	assert.Equal(t, "Ladders[1].Height", ve.Errors[0].Field)
}

func TestValidate_VerticalNeedsLadders(t *testing.T) {
	r := &types.VerticalReport{Common: validCommon()}
	ve := validationErr(t, New().Validate(types.ReportInput{Report: r}))
	assert.Equal(t, []string{"Добавьте хотя бы один элемент в разделе «Лестницы»"}, ve.Messages())
}

func TestValidate_StairRules(t *testing.T) {
	r := &types.StairReport{
		Common: validCommon(),
		Marches: []types.MarchSpec{
			{},
			{HasMarch: true, MarchWidth: "1", MarchLength: "3", StepWidth: "0.3", StepDistance: "0.6", StepsCount: "12", MarchFenceHeight: "1"},
		},
	}

	ve := validationErr(t, New().Validate(types.ReportInput{Report: r}))
	assert.ElementsMatch(t, []string{
		"Поле «Количество точек крепления» обязательно для заполнения",
		"Марш №1: укажите марш и/или площадку",
		"Марш №2: Поле «Расстояние между ступенями» должно быть в диапазоне от 0.15 до 0.5",
	}, ve.Messages())
}

func TestValidate_CountsMustBeWhole(t *testing.T) {
	tests := []struct {
		name   string
		report types.Report
		want   []string
	}{
		{
			name:   "roof mount points",
			report: &types.RoofReport{Common: validCommon(), Length: "120", Height: "1.2", MountPoints: "2,5"},
			want:   []string{"Поле «Количество точек крепления» должно быть целым числом"},
		},
		{
			name: "stair mount points",
			report: &types.StairReport{
				Common:      validCommon(),
				MountPoints: "3.5",
				Marches:     []types.MarchSpec{{HasPlatform: true, PlatformLength: "1", PlatformWidth: "1", PlatformFenceHeight: "1"}},
			},
			want: []string{"Поле «Количество точек крепления» должно быть целым числом"},
		},
		{
			name: "ladder steps",
			report: func() types.Report {
				l := validLadder()
				l.StepsCount = "27.5"
				return &types.VerticalReport{Common: validCommon(), Ladders: []types.LadderSpec{l}}
			}(),
			want: []string{"Лестница №1: Поле «Количество ступеней» должно быть целым числом"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := validationErr(t, New().Validate(types.ReportInput{Report: tt.report}))
			assert.Equal(t, tt.want, ve.Messages())
		})
	}
}

func TestValidate_WholeCountWithTrailingZeros(t *testing.T) {
	r := &types.RoofReport{Common: validCommon(), Length: "120", Height: "1.2", MountPoints: "40,0"}
	assert.NoError(t, New().Validate(types.ReportInput{Report: r}))
}

func TestValidate_ProjectNumberRequired(t *testing.T) {
	c := validCommon()
	c.ProjectCompliant = true
	r := &types.RoofReport{Common: c, Length: "120", Height: "1.2", MountPoints: "40"}

	ve := validationErr(t, New().Validate(types.ReportInput{Report: r}))
	assert.Equal(t, []string{"Поле «Номер проекта» обязательно для заполнения"}, ve.Messages())
}

func TestValidate_EmptyInput(t *testing.T) {
	ve := validationErr(t, New().Validate(types.ReportInput{}))
	assert.Equal(t, "protocol_type", ve.Errors[0].Field)
}

func TestParseDate(t *testing.T) {
	for _, s := range []string{"01.06.2024", "2024-06-01", "01/06/2024"} {
		d, ok := ParseDate(s)
		require.True(t, ok, s)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, 6, int(d.Month()))
	}

	_, ok := ParseDate("1 июня 2024")
	assert.False(t, ok)
}
