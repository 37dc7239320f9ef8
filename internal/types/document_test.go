package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeDocument() *ReportDocument {
	doc := &ReportDocument{Protocol: ProtocolRoof}
	for _, s := range Sections {
		b := Block{Section: s, Kind: BlockParagraph, Runs: []Run{{Text: string(s)}}}
		if s == SectionResults {
			b = Block{Section: s, Kind: BlockTable, Table: &Table{
				Headers: []string{"№"},
				Rows:    [][]string{{"1"}},
			}}
		}
		doc.Blocks = append(doc.Blocks, b)
	}
	return doc
}

func TestReportDocument_Check(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *ReportDocument)
		wantErr string
	}{
		{name: "complete", mutate: func(*ReportDocument) {}},
		{
			name: "second block in same section",
			mutate: func(d *ReportDocument) {
				d.Blocks = append(d.Blocks[:3], append([]Block{{Section: SectionOverview, Kind: BlockKeyValue}}, d.Blocks[3:]...)...)
			},
		},
		{
			name:    "missing section",
			mutate:  func(d *ReportDocument) { d.Blocks = d.Blocks[:len(d.Blocks)-1] },
			wantErr: `section "signatures" is missing`,
		},
		{
			name:    "out of order",
			mutate:  func(d *ReportDocument) { d.Blocks[0], d.Blocks[1] = d.Blocks[1], d.Blocks[0] },
			wantErr: "out of order",
		},
		{
			name: "repeated section",
			mutate: func(d *ReportDocument) {
				d.Blocks = append(d.Blocks, Block{Section: SectionTitle, Kind: BlockHeading})
			},
			wantErr: "more than once",
		},
		{
			name: "empty table",
			mutate: func(d *ReportDocument) {
				for i := range d.Blocks {
					if d.Blocks[i].Kind == BlockTable {
						d.Blocks[i].Table.Rows = nil
					}
				}
			},
			wantErr: "no rows",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := completeDocument()
			tt.mutate(doc)
			err := doc.Check()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadTableRow_Text(t *testing.T) {
	row := LoadTableRow{TestPointCount: 3, HasLoad: true, LoadKN: 1.8, LoadKGF: 180}
	assert.Equal(t, "1.80 кН (180 кгс)", row.LoadText())
	assert.Equal(t, "3", row.PointsText())

	empty := LoadTableRow{}
	assert.Empty(t, empty.LoadText())
	assert.Empty(t, empty.PointsText())
}
