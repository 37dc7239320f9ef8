package types

import (
	"fmt"
	"strings"
)

// LoadTableRow is one row of the load test results table.
type LoadTableRow struct {
	SequenceNo     int     `json:"sequence_no"`
	ElementName    string  `json:"element_name"`
	TestPointCount int     `json:"test_point_count"`
	HasLoad        bool    `json:"has_load"`
	LoadKN         float64 `json:"load_kn"`
	LoadKGF        int     `json:"load_kgf"`
	Verdict        string  `json:"verdict"`
}

// LoadText renders the load column, e.g. "1.80 кН (180 кгс)".
func (r LoadTableRow) LoadText() string {
	if !r.HasLoad {
		return ""
	}
	return fmt.Sprintf("%.2f кН (%d кгс)", r.LoadKN, r.LoadKGF)
}

// PointsText renders the test point column, blank when unknown.
func (r LoadTableRow) PointsText() string {
	if r.TestPointCount <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", r.TestPointCount)
}

// Section names a part of a report document.
type Section string

const (
	SectionHeader          Section = "header"
	SectionTitle           Section = "title"
	SectionOverview        Section = "overview"
	SectionCharacteristics Section = "characteristics"
	SectionEnvironment     Section = "environment"
	SectionEquipment       Section = "equipment"
	SectionInspection      Section = "inspection"
	SectionCalculation     Section = "calculation"
	SectionResults         Section = "results"
	SectionConclusion      Section = "conclusion"
	SectionSignatures      Section = "signatures"
)

// Sections is the order every report follows.
var Sections = []Section{
	SectionHeader,
	SectionTitle,
	SectionOverview,
	SectionCharacteristics,
	SectionEnvironment,
	SectionEquipment,
	SectionInspection,
	SectionCalculation,
	SectionResults,
	SectionConclusion,
	SectionSignatures,
}

// BlockKind is the shape of a document block.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockKeyValue  BlockKind = "key_value"
	BlockParagraph BlockKind = "paragraph"
	BlockTable     BlockKind = "table"
)

// Align is the horizontal alignment of a block.
type Align string

const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "both"
)

// Run is a span of text with uniform formatting.
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Table is a grid with a header row.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Block is one typed element of a report document.
type Block struct {
	Section Section   `json:"section"`
	Kind    BlockKind `json:"kind"`
	Level   int       `json:"level,omitempty"`
	Key     string    `json:"key,omitempty"`
	Runs    []Run     `json:"runs,omitempty"`
	Align   Align     `json:"align,omitempty"`
	Table   *Table    `json:"table,omitempty"`
}

// Text joins the block runs.
func (b Block) Text() string {
	var sb strings.Builder
	for _, r := range b.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// ReportDocument is a composed report ready for serialization.
type ReportDocument struct {
	Protocol ProtocolType `json:"protocol"`
	FileName string       `json:"file_name"`
	Blocks   []Block      `json:"blocks"`
}

// BlocksIn returns the blocks of one section.
func (d *ReportDocument) BlocksIn(s Section) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Section == s {
			out = append(out, b)
		}
	}
	return out
}

// DocumentError reports a structurally invalid document.
type DocumentError struct {
	Message string
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document error: %s", e.Message)
}

// Check verifies that every section is present once, as one contiguous run,
// in canonical order, and that the results table has rows.
func (d *ReportDocument) Check() error {
	order := make(map[Section]int, len(Sections))
	for i, s := range Sections {
		order[s] = i
	}

	seen := make(map[Section]bool, len(Sections))
	var current Section
	last := -1
	for _, b := range d.Blocks {
		if b.Section == current {
			continue
		}
		idx, ok := order[b.Section]
		if !ok {
			return &DocumentError{Message: fmt.Sprintf("unknown section %q", b.Section)}
		}
		if seen[b.Section] {
			return &DocumentError{Message: fmt.Sprintf("section %q appears more than once", b.Section)}
		}
		if idx < last {
			return &DocumentError{Message: fmt.Sprintf("section %q is out of order", b.Section)}
		}
		seen[b.Section] = true
		current = b.Section
		last = idx
	}

	for _, s := range Sections {
		if !seen[s] {
			return &DocumentError{Message: fmt.Sprintf("section %q is missing", s)}
		}
	}

	for _, b := range d.BlocksIn(SectionResults) {
		if b.Kind == BlockTable && b.Table != nil && len(b.Table.Rows) > 0 {
			return nil
		}
	}
	return &DocumentError{Message: "load table has no rows"}
}
