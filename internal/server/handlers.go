package server

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/contracts"
	"github.com/jonathan/fire-protocols/internal/pipeline"
	"github.com/jonathan/fire-protocols/internal/rendering"
	"github.com/jonathan/fire-protocols/internal/schemas"
	"github.com/jonathan/fire-protocols/internal/store"
	"github.com/jonathan/fire-protocols/internal/types"
	"github.com/jonathan/fire-protocols/internal/validation"
)

const (
	docxMIME     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	maxBodyBytes = 1 << 20
)

// GenerateResponse is returned by POST /api/generate.
type GenerateResponse struct {
	FileName    string               `json:"file_name"`
	DownloadURL string               `json:"download_url"`
	Rows        []types.LoadTableRow `json:"rows"`
	Weather     any                  `json:"weather,omitempty"`
	Email       any                  `json:"email,omitempty"`
}

// ValidateResponse is returned by POST /api/validate.
type ValidateResponse struct {
	Valid  bool                    `json:"valid"`
	Errors []validation.FieldError `json:"errors"`
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok", "version": Version})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	if s.opts.Weather == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Получение погоды отключено")
		return
	}
	cond, err := s.opts.Weather.Current(r.Context())
	if err != nil {
		s.logger.Warn("weather lookup failed", zap.Error(err))
		s.errorResponse(w, http.StatusServiceUnavailable, "Не удалось получить данные о погоде")
		return
	}
	s.jsonResponse(w, http.StatusOK, cond)
}

// handleCustomers lists contract customers and the ones used most recently.
func (s *Server) handleCustomers(w http.ResponseWriter, _ *http.Request) {
	customers, err := s.opts.Contracts.AllCustomers()
	if err != nil {
		s.internalError(w, "failed to list customers", err)
		return
	}
	recent, err := s.opts.History.RecentCustomers(store.DefaultCustomersLimit)
	if err != nil {
		s.internalError(w, "failed to list recent customers", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"customers": nonNil(customers),
		"recent":    nonNil(recent),
	})
}

func (s *Server) handleContract(w http.ResponseWriter, r *http.Request) {
	rec, ok, err := s.opts.Contracts.LatestForCustomer(r.PathValue("customer"))
	if err != nil {
		s.internalError(w, "failed to read contracts", err)
		return
	}
	if !ok {
		s.errorResponse(w, http.StatusNotFound, "Договор не найден")
		return
	}
	s.jsonResponse(w, http.StatusOK, rec)
}

func (s *Server) handleContractSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.errorResponse(w, http.StatusBadRequest, "query parameter q is required")
		return
	}
	records, err := s.opts.Contracts.FindSimilar(q)
	if err != nil {
		s.internalError(w, "failed to search contracts", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"contracts": nonNil(records)})
}

func (s *Server) handleContractsUpdate(w http.ResponseWriter, r *http.Request) {
	if s.opts.Scanner == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Папка с договорами не настроена")
		return
	}
	scan, err := contracts.Update(r.Context(), s.opts.Scanner, s.opts.Contracts)
	switch {
	case errors.Is(err, contracts.ErrNoContracts):
		s.errorResponse(w, http.StatusNotFound, "В папке не найдено договоров")
		return
	case errors.Is(err, os.ErrNotExist):
		s.errorResponse(w, http.StatusNotFound, "Папка с договорами не найдена: "+s.opts.Scanner.Dir())
		return
	case err != nil:
		s.internalError(w, "failed to update contracts", err)
		return
	}
	stats, err := s.opts.Contracts.Stats()
	if err != nil {
		s.internalError(w, "failed to read contract stats", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"scan": scan, "stats": stats})
}

func (s *Server) handleContractsStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.opts.Contracts.Stats()
	if err != nil {
		s.internalError(w, "failed to read contract stats", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	resp := ValidateResponse{Valid: true, Errors: []validation.FieldError{}}
	if err := s.opts.Generator.Validate(in); err != nil {
		var verr *validation.ValidationError
		if !errors.As(err, &verr) {
			s.internalError(w, "validation failed", err)
			return
		}
		resp.Valid = false
		resp.Errors = verr.Errors
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerate writes a report. Query flags: auto_weather=1, email=1.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	res, err := s.opts.Generator.Generate(r.Context(), in, pipeline.Options{
		AutoWeather: queryBool(q.Get("auto_weather")),
		SendEmail:   queryBool(q.Get("email")),
	})
	if err != nil {
		s.inputError(w, err)
		return
	}

	resp := GenerateResponse{
		FileName:    res.FileName,
		DownloadURL: "/api/download/" + url.PathEscape(res.FileName),
		Rows:        res.Rows,
	}
	if res.Weather != nil {
		resp.Weather = res.Weather
	}
	if res.Email != nil {
		resp.Email = res.Email
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handlePreview renders the report as HTML, or Markdown with format=markdown,
// without writing a file.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	in, ok := s.decodeInput(w, r)
	if !ok {
		return
	}
	_, doc, err := s.opts.Generator.Prepare(in)
	if err != nil {
		s.inputError(w, err)
		return
	}

	if r.URL.Query().Get("format") == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = io.WriteString(w, rendering.Markdown(doc))
		return
	}
	html, err := rendering.HTML(doc)
	if err != nil {
		s.internalError(w, "failed to render preview", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	if !safeFileName(name) {
		s.errorResponse(w, http.StatusBadRequest, "Недопустимое имя файла")
		return
	}

	f, err := os.Open(filepath.Join(s.opts.ReportsDir, name))
	if errors.Is(err, os.ErrNotExist) {
		s.errorResponse(w, http.StatusNotFound, "Файл не найден")
		return
	}
	if err != nil {
		s.internalError(w, "failed to open report", err)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		s.errorResponse(w, http.StatusNotFound, "Файл не найден")
		return
	}
	w.Header().Set("Content-Type", docxMIME)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > store.MaxHistoryEntries {
			s.errorResponse(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(store.MaxHistoryEntries))
			return
		}
		limit = n
	}
	entries, err := s.opts.History.Recent(limit)
	if err != nil {
		s.internalError(w, "failed to read history", err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"entries": nonNil(entries)})
}

// decodeInput reads and schema-checks the request body, answering 400 on
// failure.
func (s *Server) decodeInput(w http.ResponseWriter, r *http.Request) (types.ReportInput, bool) {
	in, err := pipeline.ReadInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.inputError(w, err)
		return in, false
	}
	return in, true
}

// inputError answers with the status for err, listing every problem of a
// validation or schema failure.
func (s *Server) inputError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.internalError(w, "request failed", err)
		return
	}

	var (
		verr *validation.ValidationError
		serr *schemas.ValidationError
	)
	switch {
	case errors.As(err, &verr):
		s.jsonResponse(w, status, map[string]any{"error": "Ошибки в данных", "errors": verr.Errors})
	case errors.As(err, &serr):
		s.jsonResponse(w, status, map[string]any{"error": "Неверный формат данных", "errors": serr.Errors})
	default:
		s.errorResponse(w, status, err.Error())
	}
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, zap.Error(err))
	s.errorResponse(w, http.StatusInternalServerError, msg)
}

// safeFileName accepts a bare .docx name with no path elements.
func safeFileName(name string) bool {
	return name != "" &&
		name == filepath.Base(name) &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.HasPrefix(name, ".") &&
		strings.EqualFold(filepath.Ext(name), ".docx")
}

func queryBool(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
