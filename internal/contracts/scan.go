package contracts

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/fire-protocols/internal/extraction"
	"github.com/jonathan/fire-protocols/internal/ingestion"
	"github.com/jonathan/fire-protocols/internal/store"
	"github.com/jonathan/fire-protocols/internal/types"
)

// DefaultWorkers bounds the number of files parsed at once.
const DefaultWorkers = 4

// ScanStats counts the outcome of a scan.
type ScanStats struct {
	Files     int `json:"files"`
	Extracted int `json:"extracted"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}

// Scanner extracts ContractRecords from the .docx files of one directory.
type Scanner struct {
	dir     string
	workers int
	logger  *zap.Logger
	read    func(path string) (string, error)
}

// NewScanner returns a Scanner for dir. workers <= 0 means DefaultWorkers.
func NewScanner(dir string, workers int, logger *zap.Logger) *Scanner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Scanner{dir: dir, workers: workers, logger: logger, read: ingestion.ReadDocxText}
}

// Dir returns the scanned directory.
func (s *Scanner) Dir() string {
	return s.dir
}

// IsContractFile reports whether name is a contract document rather than a
// Word lock file or something else.
func IsContractFile(name string) bool {
	base := filepath.Base(name)
	return strings.EqualFold(filepath.Ext(base), ".docx") && !strings.HasPrefix(base, "~$")
}

// Files lists the contract documents of the directory in name order.
func (s *Scanner) Files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, &ScanError{Dir: s.dir, Message: "failed to list directory", Cause: err}
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() && IsContractFile(e.Name()) {
			files = append(files, filepath.Join(s.dir, e.Name()))
		}
	}
	return files, nil
}

// Scan parses every contract document in parallel. Records come back in file
// name order, so scanning an unchanged directory twice gives identical results.
func (s *Scanner) Scan(ctx context.Context) ([]types.ContractRecord, ScanStats, error) {
	files, err := s.Files()
	if err != nil {
		return nil, ScanStats{}, err
	}

	type outcome struct {
		record types.ContractRecord
		ok     bool
		failed bool
	}
	results := make([]outcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, ok, err := s.ParseFile(path)
			if err != nil {
				s.logger.Warn("failed to read contract", zap.String("file", path), zap.Error(err))
				results[i] = outcome{failed: true}
				return nil
			}
			results[i] = outcome{record: rec, ok: ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, ScanStats{}, &ScanError{Dir: s.dir, Message: "scan interrupted", Cause: err}
	}

	stats := ScanStats{Files: len(files)}
	records := make([]types.ContractRecord, 0, len(files))
	for _, r := range results {
		switch {
		case r.failed:
			stats.Failed++
		case r.ok:
			stats.Extracted++
			records = append(records, r.record)
		default:
			stats.Skipped++
		}
	}

	s.logger.Info("contracts scanned",
		zap.String("dir", s.dir),
		zap.Int("processed", stats.Files),
		zap.Int("extracted", stats.Extracted),
		zap.Int("skipped", stats.Skipped),
		zap.Int("failed", stats.Failed),
	)
	return records, stats, nil
}

// ParseFile extracts one record. The bool is false when the contract names no
// recognisable customer; such contracts are skipped, not stored partially.
func (s *Scanner) ParseFile(path string) (types.ContractRecord, bool, error) {
	text, err := s.read(path)
	if err != nil {
		return types.ContractRecord{}, false, err
	}
	if strings.TrimSpace(text) == "" {
		s.logger.Warn("contract has no text", zap.String("file", path))
		return types.ContractRecord{}, false, nil
	}

	customer, ok := extraction.ExtractCustomer(text)
	if !ok {
		s.logger.Warn("customer not found in contract", zap.String("file", path))
		return types.ContractRecord{}, false, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	rec := types.ContractRecord{
		FileName: filepath.Base(path),
		FilePath: abs,
		Customer: customer,
	}
	if obj, ok := extraction.ExtractObjectSection(text); ok {
		rec.ObjectDescription = &obj
	} else {
		s.logger.Debug("object description not found in contract", zap.String("file", path))
	}
	return rec, true, nil
}

// Update rescans the directory and replaces the cache with the result. A
// scan that yields nothing keeps the old cache.
func Update(ctx context.Context, sc *Scanner, st *store.ContractStore) (ScanStats, error) {
	records, stats, err := sc.Scan(ctx)
	if err != nil {
		return stats, err
	}
	if len(records) == 0 {
		return stats, &ScanError{Dir: sc.Dir(), Message: "nothing to update", Cause: ErrNoContracts}
	}
	if _, err := st.Replace(records); err != nil {
		return stats, err
	}
	return stats, nil
}
