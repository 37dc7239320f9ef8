package export

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jonathan/fire-protocols/internal/types"
)

func testEntries() []types.HistoryEntry {
	ts := time.Date(2024, 3, 15, 10, 30, 0, 0, time.Local)
	return []types.HistoryEntry{
		{
			ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
			Timestamp: ts,
			Data: types.ReportInput{Report: &types.VerticalReport{Common: types.Common{
				Date:              "15.03.2024",
				Customer:          "ООО «Ромашка»",
				ObjectDescription: "склад, г. Екатеринбург",
				Temperature:       "-5,5",
				ProjectCompliant:  true,
				ProjectNumber:     "12-2023-ПБ",
			}}},
		},
		{
			ID:        uuid.MustParse("22222222-2222-2222-2222-222222222222"),
			Timestamp: ts.Add(time.Hour),
			Data: types.ReportInput{Report: &types.RoofReport{Common: types.Common{
				Date:              "16.03.2024",
				Customer:          "АО «Лютик»",
				ObjectDescription: "административное здание",
			}}},
		},
	}
}

func TestWriteHistory(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistory(&buf, testEntries()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{HistorySheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, historyHeaders, rows[0])
	assert.Equal(t, []string{
		"15.03.2024 10:30:00", "Вертикальная лестница", "15.03.2024", "ООО «Ромашка»",
		"склад, г. Екатеринбург", "-5.5", "", "12-2023-ПБ", "11111111-1111-1111-1111-111111111111",
	}, rows[1])
	assert.Equal(t, "Ограждение кровли", rows[2][1])
	assert.Equal(t, "", rows[2][5])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Тип протокола", "Количество"},
		{"Вертикальная лестница", "1"},
		{"Маршевая лестница", "0"},
		{"Ограждение кровли", "1"},
		{"Всего", "2"},
	}, summary)
}

func TestSaveHistory_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.xlsx")
	require.NoError(t, SaveHistory(path, nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(HistorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSaveHistory_BadPath(t *testing.T) {
	err := SaveHistory(filepath.Join(t.TempDir(), "missing", "history.xlsx"), testEntries())

	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
}
