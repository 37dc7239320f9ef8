package rendering

import (
	"io"
	"os"
	"path/filepath"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/jonathan/fire-protocols/internal/types"
)

const fontFamily = "Times New Roman"

// Font sizes, points.
const (
	titleSize   = 16
	headingSize = 11
	bodySize    = 10
)

var alignments = map[types.Align]wml.ST_Jc{
	types.AlignLeft:    wml.ST_JcLeft,
	types.AlignCenter:  wml.ST_JcCenter,
	types.AlignRight:   wml.ST_JcRight,
	types.AlignJustify: wml.ST_JcBoth,
}

// WriteDocx serializes doc as a Word document to w.
func WriteDocx(doc *types.ReportDocument, w io.Writer) error {
	if doc == nil {
		return &SerializeError{Message: "document is nil"}
	}
	d := document.New()
	for _, b := range doc.Blocks {
		switch b.Kind {
		case types.BlockHeading:
			size := measurement.Distance(headingSize)
			if b.Level == 0 {
				size = titleSize
			}
			p := newParagraph(d, b.Align)
			for _, r := range b.Runs {
				addRun(p, r.Text, true, size)
			}
		case types.BlockKeyValue:
			p := newParagraph(d, b.Align)
			addRun(p, b.Key+": ", true, headingSize)
			for _, r := range b.Runs {
				addRun(p, r.Text, r.Bold, headingSize)
			}
		case types.BlockParagraph:
			p := newParagraph(d, b.Align)
			for _, r := range b.Runs {
				addRun(p, r.Text, r.Bold, bodySize)
			}
		case types.BlockTable:
			if b.Table != nil {
				addTable(d, *b.Table)
			}
		}
	}
	if err := d.Save(w); err != nil {
		return &SerializeError{Message: "failed to write document", Cause: err}
	}
	return nil
}

// SaveDocx writes doc into dir under its file name and returns the path.
func SaveDocx(doc *types.ReportDocument, dir string) (string, error) {
	if doc == nil || doc.FileName == "" {
		return "", &SerializeError{Path: dir, Message: "document has no file name"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &SerializeError{Path: dir, Message: "failed to create output directory", Cause: err}
	}
	path := filepath.Join(dir, doc.FileName)
	f, err := os.Create(path)
	if err != nil {
		return "", &SerializeError{Path: path, Message: "failed to create file", Cause: err}
	}
	if err := WriteDocx(doc, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", &SerializeError{Path: path, Message: "failed to close file", Cause: err}
	}
	return path, nil
}

func newParagraph(d *document.Document, align types.Align) document.Paragraph {
	p := d.AddParagraph()
	if jc, ok := alignments[align]; ok {
		p.Properties().SetAlignment(jc)
	}
	return p
}

func addRun(p document.Paragraph, text string, bold bool, size measurement.Distance) {
	run := p.AddRun()
	run.Properties().SetFontFamily(fontFamily)
	run.Properties().SetSize(size * measurement.Point)
	if bold {
		run.Properties().SetBold(true)
	}
	run.AddText(text)
}

func addTable(d *document.Document, t types.Table) {
	table := d.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Auto, 1*measurement.Point)

	header := table.AddRow()
	for _, h := range t.Headers {
		p := header.AddCell().AddParagraph()
		p.Properties().SetAlignment(wml.ST_JcCenter)
		addRun(p, h, true, bodySize)
	}
	for _, row := range t.Rows {
		r := table.AddRow()
		for _, v := range row {
			addRun(r.AddCell().AddParagraph(), v, false, bodySize)
		}
	}
}
