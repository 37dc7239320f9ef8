package store

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/types"
	schemadocs "github.com/jonathan/fire-protocols/schemas"
)

// History limits.
const (
	MaxHistoryEntries     = 100
	DefaultHistoryLimit   = 10
	DefaultCustomersLimit = 5
)

// HistoryStore keeps the most recent report inputs, oldest first on disk.
type HistoryStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// NewHistoryStore returns a store backed by the JSON file at path.
func NewHistoryStore(path string, logger *zap.Logger) *HistoryStore {
	return &HistoryStore{path: path, logger: logger, now: time.Now}
}

// Append records an input, dropping the oldest entries beyond MaxHistoryEntries.
func (s *HistoryStore) Append(in types.ReportInput) (types.HistoryEntry, error) {
	if in.Report == nil {
		return types.HistoryEntry{}, &StoreError{Path: s.path, Message: "refusing to record an empty report"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return types.HistoryEntry{}, err
	}
	entry := types.HistoryEntry{ID: uuid.New(), Timestamp: s.now(), Data: in}
	entries = append(entries, entry)
	if len(entries) > MaxHistoryEntries {
		entries = entries[len(entries)-MaxHistoryEntries:]
	}
	if err := writeJSON(s.path, entries); err != nil {
		return types.HistoryEntry{}, err
	}
	return entry, nil
}

// Entries returns every entry, oldest first.
func (s *HistoryStore) Entries() ([]types.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Recent returns up to limit entries, newest first.
func (s *HistoryStore) Recent(limit int) ([]types.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	out := make([]types.HistoryEntry, 0, min(limit, len(entries)))
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

// RecentCustomers returns up to limit distinct customers, most recent first.
func (s *HistoryStore) RecentCustomers(limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultCustomersLimit
	}
	entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		if entries[i].Data.Report == nil {
			continue
		}
		c := entries[i].Data.Report.Base().Customer
		if c != "" && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out, nil
}

// Clear removes every entry.
func (s *HistoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, []types.HistoryEntry{})
}

// load skips entries that no longer decode, such as ones with an unknown
// protocol type, instead of losing the whole history.
func (s *HistoryStore) load() ([]types.HistoryEntry, error) {
	data, err := readFile(s.path)
	if err != nil || data == nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := decodeChecked(s.path, schemadocs.History, data, &raw); err != nil {
		s.logger.Warn("ignoring unreadable history", zap.String("path", s.path), zap.Error(err))
		return nil, nil
	}

	entries := make([]types.HistoryEntry, 0, len(raw))
	for i, r := range raw {
		var e types.HistoryEntry
		if err := json.Unmarshal(r, &e); err != nil {
			s.logger.Warn("skipping history entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
