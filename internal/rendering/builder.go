package rendering

import (
	"strconv"

	"github.com/jonathan/fire-protocols/internal/types"
)

// builder appends blocks to the section currently selected with in.
type builder struct {
	doc     *types.ReportDocument
	section types.Section
}

func newBuilder(p types.ProtocolType) *builder {
	return &builder{doc: &types.ReportDocument{Protocol: p}}
}

func (b *builder) in(s types.Section) {
	b.section = s
}

func (b *builder) add(blk types.Block) {
	blk.Section = b.section
	b.doc.Blocks = append(b.doc.Blocks, blk)
}

func (b *builder) heading(text string, level int) {
	b.headingAligned(text, level, types.AlignLeft)
}

func (b *builder) headingAligned(text string, level int, align types.Align) {
	b.add(types.Block{Kind: types.BlockHeading, Level: level, Align: align, Runs: []types.Run{{Text: text, Bold: true}}})
}

func (b *builder) keyValue(key, value string) {
	b.add(types.Block{Kind: types.BlockKeyValue, Key: key, Runs: []types.Run{{Text: value}}})
}

func (b *builder) text(s string) {
	b.paragraph(types.Run{Text: s})
}

func (b *builder) paragraph(runs ...types.Run) {
	b.paragraphAligned(types.AlignJustify, runs...)
}

func (b *builder) paragraphAligned(align types.Align, runs ...types.Run) {
	b.add(types.Block{Kind: types.BlockParagraph, Align: align, Runs: runs})
}

func (b *builder) table(t types.Table) {
	b.add(types.Block{Kind: types.BlockTable, Table: &t})
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
