// Package export writes the report history to spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/fire-protocols/internal/types"
)

const (
	HistorySheet = "История"
	SummarySheet = "Сводка"
	timeLayout   = "02.01.2006 15:04:05"
)

var historyHeaders = []string{
	"Создан", "Тип протокола", "Дата испытаний", "Заказчик", "Объект",
	"Температура, °C", "Ветер, м/с", "Проект", "ID",
}

// Error is returned when a spreadsheet cannot be built or written.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("export error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("export error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HistoryWorkbook builds a workbook with one row per entry, in the given
// order, plus a per-protocol summary sheet.
func HistoryWorkbook(entries []types.HistoryEntry) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", HistorySheet); err != nil {
		return nil, &Error{Message: "failed to name history sheet", Cause: err}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, &Error{Message: "failed to create header style", Cause: err}
	}

	header := make([]any, len(historyHeaders))
	for i, h := range historyHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(HistorySheet, "A1", &header); err != nil {
		return nil, &Error{Message: "failed to write header", Cause: err}
	}

	counts := make(map[types.ProtocolType]int)
	for i, e := range entries {
		row := historyRow(e)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(HistorySheet, cell, &row); err != nil {
			return nil, &Error{Message: fmt.Sprintf("failed to write row %d", i+2), Cause: err}
		}
		counts[e.Data.Protocol()]++
	}
	_ = f.SetRowStyle(HistorySheet, 1, 1, headerStyle)
	_ = f.SetColWidth(HistorySheet, "A", "A", 20)
	_ = f.SetColWidth(HistorySheet, "B", "C", 22)
	_ = f.SetColWidth(HistorySheet, "D", "E", 40)
	_ = f.SetColWidth(HistorySheet, "F", "H", 15)
	_ = f.SetColWidth(HistorySheet, "I", "I", 38)

	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, &Error{Message: "failed to create summary sheet", Cause: err}
	}
	summary := [][]any{{"Тип протокола", "Количество"}}
	for _, p := range types.ProtocolTypes {
		summary = append(summary, []any{p.Label(), counts[p]})
	}
	summary = append(summary, []any{"Всего", len(entries)})
	for i, row := range summary {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return nil, &Error{Message: "failed to write summary", Cause: err}
		}
	}
	_ = f.SetRowStyle(SummarySheet, 1, 1, headerStyle)
	_ = f.SetColWidth(SummarySheet, "A", "A", 25)

	return f, nil
}

// WriteHistory writes the history workbook to w.
func WriteHistory(w io.Writer, entries []types.HistoryEntry) error {
	f, err := HistoryWorkbook(entries)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteTo(w); err != nil {
		return &Error{Message: "failed to write workbook", Cause: err}
	}
	return nil
}

// SaveHistory writes the history workbook to path.
func SaveHistory(path string, entries []types.HistoryEntry) error {
	f, err := HistoryWorkbook(entries)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	if err := f.SaveAs(path); err != nil {
		return &Error{Message: "failed to save " + path, Cause: err}
	}
	return nil
}

func historyRow(e types.HistoryEntry) []any {
	row := []any{e.Timestamp.Local().Format(timeLayout), e.Data.Protocol().Label()}
	if e.Data.Report == nil {
		return append(row, "", "", "", "", "", "", e.ID.String())
	}
	c := e.Data.Report.Base()
	project := ""
	if c.ProjectCompliant {
		project = c.ProjectNumber
	}
	return append(row,
		c.Date,
		c.Customer,
		c.ObjectDescription,
		decimalCell(c.Temperature),
		decimalCell(c.WindSpeed),
		project,
		e.ID.String(),
	)
}

// decimalCell keeps blank values blank instead of writing 0.
func decimalCell(d types.Decimal) any {
	if v, ok := d.Parse(); ok {
		return v
	}
	return ""
}
