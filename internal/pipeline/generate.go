// Package pipeline provides the high-level orchestration for report generation.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/calc"
	"github.com/jonathan/fire-protocols/internal/notify"
	"github.com/jonathan/fire-protocols/internal/observability"
	"github.com/jonathan/fire-protocols/internal/rendering"
	"github.com/jonathan/fire-protocols/internal/schemas"
	"github.com/jonathan/fire-protocols/internal/types"
	"github.com/jonathan/fire-protocols/internal/validation"
	"github.com/jonathan/fire-protocols/internal/weather"
	schemadocs "github.com/jonathan/fire-protocols/schemas"
)

// Step names reported through ProgressCallback.
const (
	StepWeather   = "weather"
	StepValidate  = "validate"
	StepCalculate = "calculate"
	StepCompose   = "compose"
	StepWrite     = "write"
	StepHistory   = "history"
	StepEmail     = "email"
)

// ProgressEvent represents a progress update during generation
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// WeatherSource reports current conditions at the test site.
type WeatherSource interface {
	Current(ctx context.Context) (weather.Conditions, error)
}

// HistoryRecorder stores successfully generated inputs.
type HistoryRecorder interface {
	Append(in types.ReportInput) (types.HistoryEntry, error)
}

// ReportMailer sends a written report.
type ReportMailer interface {
	SendReport(path, customer, object string) notify.Result
}

// Generator turns a report input into a .docx file. Weather, History and
// Mailer are optional.
type Generator struct {
	Validator *validation.Validator
	Render    rendering.Options
	OutputDir string
	Weather   WeatherSource
	History   HistoryRecorder
	Mailer    ReportMailer
	Logger    *zap.Logger
	// Printer, when set, receives the load table.
	Printer *observability.Printer
}

// Options controls a single generation.
type Options struct {
	// AutoWeather fills a blank temperature or wind speed from Weather.
	AutoWeather bool
	SendEmail   bool
	OnProgress  ProgressCallback
}

// Result describes a generated report.
type Result struct {
	Path     string                `json:"path"`
	FileName string                `json:"file_name"`
	Rows     []types.LoadTableRow  `json:"rows"`
	Document *types.ReportDocument `json:"-"`
	Weather  *weather.Conditions   `json:"weather,omitempty"`
	Email    *notify.Result        `json:"email,omitempty"`
}

func emitProgress(opts Options, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// DecodeInput checks data against the report input schema and decodes it.
func DecodeInput(data []byte) (types.ReportInput, error) {
	var in types.ReportInput
	if err := schemas.ValidateBytes(schemadocs.ReportInput, data); err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, &InputError{Message: "failed to decode report input", Cause: err}
	}
	return in, nil
}

// ReadInput is DecodeInput over a reader.
func ReadInput(r io.Reader) (types.ReportInput, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.ReportInput{}, &InputError{Message: "failed to read report input", Cause: err}
	}
	return DecodeInput(data)
}

// Validate runs the validation gate alone.
func (g *Generator) Validate(in types.ReportInput) error {
	return g.validator().Validate(in)
}

// Prepare validates in and computes its load table without writing anything.
func (g *Generator) Prepare(in types.ReportInput) ([]types.LoadTableRow, *types.ReportDocument, error) {
	if err := g.validator().Validate(in); err != nil {
		return nil, nil, err
	}
	rows, err := calc.Rows(in.Report)
	if err != nil {
		return nil, nil, err
	}
	doc, err := rendering.Compose(in, rows, g.Render)
	if err != nil {
		return nil, nil, err
	}
	if err := doc.Check(); err != nil {
		return nil, nil, &rendering.RenderError{Message: "composed document is malformed", Cause: err}
	}
	return rows, doc, nil
}

// Generate runs the whole chain. Nothing is written when validation fails.
// History and e-mail failures are logged and never fail the generation.
func (g *Generator) Generate(ctx context.Context, in types.ReportInput, opts Options) (*Result, error) {
	if in.Report == nil {
		return nil, &InputError{Message: "report input is empty"}
	}
	res := &Result{}

	if opts.AutoWeather && g.Weather != nil && needsWeather(in.Report.Base()) {
		cond, err := g.Weather.Current(ctx)
		if err != nil {
			g.logger().Warn("weather unavailable, leaving fields blank", zap.Error(err))
		} else {
			fillWeather(in.Report.Base(), cond)
			res.Weather = &cond
			emitProgress(opts, StepWeather, fmt.Sprintf("Weather from %s", cond.Source), cond)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, doc, err := g.Prepare(in)
	if err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			g.logger().Info("report input rejected", zap.Int("problems", len(verr.Errors)))
		}
		return nil, err
	}
	res.Rows = rows
	res.Document = doc
	emitProgress(opts, StepCalculate, fmt.Sprintf("Computed %d load rows", len(rows)), rows)
	if g.Printer != nil {
		g.Printer.PrintLoadTable(in.Protocol(), rows)
	}

	path, err := rendering.SaveDocx(doc, g.OutputDir)
	if err != nil {
		return nil, err
	}
	res.Path = path
	res.FileName = doc.FileName
	g.logger().Info("report generated",
		zap.String("protocol", string(in.Protocol())),
		zap.String("path", path))
	emitProgress(opts, StepWrite, "Report written to "+path, nil)

	if g.History != nil {
		if _, err := g.History.Append(in); err != nil {
			g.logger().Warn("failed to record history", zap.Error(err))
		} else {
			emitProgress(opts, StepHistory, "Recorded in history", nil)
		}
	}

	if opts.SendEmail && g.Mailer != nil {
		c := in.Report.Base()
		mail := g.Mailer.SendReport(path, c.Customer, c.ObjectDescription)
		res.Email = &mail
		if !mail.Sent {
			g.logger().Warn("report not emailed", zap.String("reason", mail.Message))
		}
		emitProgress(opts, StepEmail, mail.Message, mail)
	}

	return res, nil
}

func (g *Generator) validator() *validation.Validator {
	if g.Validator == nil {
		g.Validator = validation.New()
	}
	return g.Validator
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger == nil {
		return zap.NewNop()
	}
	return g.Logger
}

func needsWeather(c *types.Common) bool {
	return c.Temperature.IsBlank() || c.WindSpeed.IsBlank()
}

// fillWeather sets only the fields the operator left blank.
func fillWeather(c *types.Common, cond weather.Conditions) {
	if c.Temperature.IsBlank() {
		c.Temperature = types.Decimal(strconv.FormatFloat(cond.Temperature, 'f', 1, 64))
	}
	if c.WindSpeed.IsBlank() {
		c.WindSpeed = types.Decimal(strconv.FormatFloat(cond.WindSpeed, 'f', 1, 64))
	}
}
