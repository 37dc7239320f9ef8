package rendering

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/fire-protocols/internal/config"
	"github.com/jonathan/fire-protocols/internal/types"
)

// Options carries the document content that does not come from the input.
type Options struct {
	// HeaderLines are the contractor requisites, name first.
	HeaderLines []string
	Equipment   string
	// Standard is the full normative reference, e.g. ГОСТ Р 53254-2009 «…».
	Standard string
	// Now stamps the file name. Zero means time.Now.
	Now time.Time
}

// OptionsFromConfig builds Options from the application configuration.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		HeaderLines: cfg.Company.Lines(),
		Equipment:   cfg.Equipment,
		Standard:    cfg.Standard,
	}
}

func (o Options) withDefaults() Options {
	def := config.Default()
	if len(o.HeaderLines) == 0 {
		o.HeaderLines = def.Company.Lines()
	}
	if strings.TrimSpace(o.Equipment) == "" {
		o.Equipment = def.Equipment
	}
	if strings.TrimSpace(o.Standard) == "" {
		o.Standard = def.Standard
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// standardCode returns the reference without its quoted title.
func (o Options) standardCode() string {
	code, _, _ := strings.Cut(o.Standard, " «")
	return strings.TrimSpace(code)
}

// Compose builds the report document for input from its computed load rows.
// Sections always follow types.Sections.
func Compose(input types.ReportInput, rows []types.LoadTableRow, opts Options) (*types.ReportDocument, error) {
	if input.Report == nil {
		return nil, &RenderError{Message: "report input is empty"}
	}
	if len(rows) == 0 {
		return nil, &RenderError{Message: "load table has no rows"}
	}
	opts = opts.withDefaults()

	b := newBuilder(input.Protocol())
	b.in(types.SectionHeader)
	addHeader(b, opts)

	switch r := input.Report.(type) {
	case *types.VerticalReport:
		composeVertical(b, r, opts)
	case *types.StairReport:
		composeStair(b, r, opts)
	case *types.RoofReport:
		composeRoof(b, r, opts)
	default:
		return nil, &RenderError{Message: "unsupported report type " + string(input.Protocol())}
	}

	b.in(types.SectionResults)
	b.heading("Результаты испытаний", 1)
	b.table(loadTable(rows))

	b.in(types.SectionConclusion)
	b.heading("Выводы по результатам испытаний", 1)
	for _, p := range conclusion(input.Report, opts) {
		b.text(p)
	}

	b.in(types.SectionSignatures)
	addSignatures(b)

	doc := b.doc
	doc.FileName = FileName(input.Report, opts.Now)
	if err := doc.Check(); err != nil {
		return nil, &RenderError{Message: "composed document is malformed", Cause: err}
	}
	return doc, nil
}

// Headers of the load table.
var loadTableHeaders = []string{
	"№ п/п",
	"Наименование испытываемого элемента",
	"Кол/во испытываемых точек",
	"Нагрузка кН (кгс)",
	"Результаты испытаний",
}

func loadTable(rows []types.LoadTableRow) types.Table {
	t := types.Table{Headers: loadTableHeaders}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			itoa(r.SequenceNo),
			r.ElementName,
			r.PointsText(),
			r.LoadText(),
			r.Verdict,
		})
	}
	return t
}

func addHeader(b *builder, opts Options) {
	for i, line := range opts.HeaderLines {
		b.paragraphAligned(types.AlignRight, types.Run{Text: line, Bold: i == 0})
	}
}

func addTitle(b *builder, title, date string) {
	b.in(types.SectionTitle)
	b.headingAligned(title, 0, types.AlignCenter)
	b.paragraphAligned(types.AlignCenter, types.Run{Text: strings.TrimSpace("от " + date)})
}

func addOverview(b *builder, c *types.Common, objectKey string) {
	b.in(types.SectionOverview)
	b.keyValue("Заказчик", c.Customer)
	b.keyValue(objectKey, c.ObjectDescription)
}

func addEnvironment(b *builder, c *types.Common) {
	b.in(types.SectionEnvironment)
	b.heading("Условия проведения испытаний", 1)
	b.text(environmentText(c))
}

// environmentText leaves out a measurement that was not taken.
func environmentText(c *types.Common) string {
	when := strings.TrimSpace(c.TestTime)
	if when == "" {
		when = "дневное время"
	}
	text := "Испытания проводились в " + when
	temp, wind := c.Temperature.String(), c.WindSpeed.String()
	switch {
	case temp != "" && wind != "":
		text += fmt.Sprintf(" при температуре воздуха %s°C и скорости ветра %s м/с", temp, wind)
	case temp != "":
		text += fmt.Sprintf(" при температуре воздуха %s°C", temp)
	case wind != "":
		text += fmt.Sprintf(" при скорости ветра %s м/с", wind)
	}
	return text + "."
}

func addEquipment(b *builder, opts Options) {
	b.in(types.SectionEquipment)
	b.heading("Средства проведения испытаний", 1)
	b.text(opts.Equipment)
}

func addCalculation(b *builder, heading string, opts Options) {
	b.in(types.SectionCalculation)
	b.heading(heading, 1)
	b.text("Расчет величины нагрузки согласно: " + opts.Standard + ".")
}

func addSignatures(b *builder) {
	b.text("Ответственный за проведение испытаний:")
	b.text("___________________ / _________________ /")
	b.text("        (подпись)                 (Ф.И.О.)")
}
