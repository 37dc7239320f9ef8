package rendering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/fire-protocols/internal/calc"
	"github.com/jonathan/fire-protocols/internal/types"
)

var fixedNow = time.Date(2024, 3, 15, 10, 30, 5, 0, time.UTC)

func testCommon() types.Common {
	return types.Common{
		Date:              "15.03.2024",
		Customer:          `ООО "Ромашка"`,
		ObjectDescription: "склад, г. Уфа",
		Temperature:       "12",
		WindSpeed:         "3",
	}
}

func testLadder(n int, name, height string) types.LadderSpec {
	return types.LadderSpec{
		Number:       n,
		Name:         name,
		Height:       types.Decimal(height),
		Width:        "0.7",
		StepsCount:   "20",
		MountPoints:  "4",
		StepDistance: "0.3",
		Inspection:   types.Inspection{PaintCompliant: true},
	}
}

func testVertical(ladders ...types.LadderSpec) *types.VerticalReport {
	return &types.VerticalReport{Common: testCommon(), Ladders: ladders}
}

func testStair() *types.StairReport {
	return &types.StairReport{
		Common:      testCommon(),
		MountPoints: "4",
		Marches: []types.MarchSpec{{
			HasMarch:            true,
			HasPlatform:         true,
			MarchWidth:          "1.2",
			MarchLength:         "3",
			StepWidth:           "0.3",
			StepDistance:        "0.2",
			StepsCount:          "10",
			MarchFenceHeight:    "0.9",
			PlatformFenceHeight: "0.9",
			PlatformLength:      "1.5",
			PlatformWidth:       "1.2",
		}},
		Inspection: types.Inspection{PaintCompliant: true},
	}
}

func testRoof() *types.RoofReport {
	return &types.RoofReport{
		Common:        testCommon(),
		FenceName:     "А",
		Length:        "50",
		Height:        "1.2",
		MountPoints:   "20",
		ParapetHeight: "0.5",
		Inspection:    types.Inspection{PaintCompliant: true},
	}
}

func compose(t *testing.T, r types.Report) *types.ReportDocument {
	t.Helper()
	rows, err := calc.Rows(r)
	require.NoError(t, err)
	doc, err := Compose(types.ReportInput{Report: r}, rows, Options{Now: fixedNow})
	require.NoError(t, err)
	return doc
}

// sectionText returns the paragraph texts of one section.
func sectionText(doc *types.ReportDocument, s types.Section) []string {
	var out []string
	for _, b := range doc.BlocksIn(s) {
		if b.Kind == types.BlockParagraph {
			out = append(out, b.Text())
		}
	}
	return out
}
