package calc

import (
	"fmt"

	"github.com/jonathan/fire-protocols/internal/types"
)

// Verdict is the result column text. Failures are recorded in the conclusion,
// never in the table.
const Verdict = "Выдержали"

// Fixed loads, kN.
const (
	StepLoad  = 1.8
	FenceLoad = 0.54
)

// Rows returns the load table rows for a report.
func Rows(report types.Report) ([]types.LoadTableRow, error) {
	var rows []types.LoadTableRow
	switch r := report.(type) {
	case *types.VerticalReport:
		rows = VerticalRows(r)
	case *types.StairReport:
		rows = StairRows(r)
	case *types.RoofReport:
		rows = RoofRows(r)
	default:
		return nil, fmt.Errorf("calc: unsupported report type %T", report)
	}
	return number(rows), nil
}

func number(rows []types.LoadTableRow) []types.LoadTableRow {
	for i := range rows {
		rows[i].SequenceNo = i + 1
		if rows[i].Verdict == "" {
			rows[i].Verdict = Verdict
		}
	}
	return rows
}

func loadRow(name string, points int, kn float64) types.LoadTableRow {
	kn = Round2(kn)
	return types.LoadTableRow{
		ElementName:    name,
		TestPointCount: points,
		HasLoad:        true,
		LoadKN:         kn,
		LoadKGF:        KGF(kn),
	}
}
