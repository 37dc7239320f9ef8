package store

import (
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/types"
	schemadocs "github.com/jonathan/fire-protocols/schemas"
)

// ContractStore keeps the result of the latest contracts scan.
type ContractStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
	now    func() time.Time
}

// NewContractStore returns a store backed by the JSON file at path.
func NewContractStore(path string, logger *zap.Logger) *ContractStore {
	return &ContractStore{path: path, logger: logger, now: time.Now}
}

// Path returns the backing file.
func (s *ContractStore) Path() string {
	return s.path
}

// Load reads the cache. A missing file is an empty cache; so is a corrupt one,
// which is logged and left on disk until the next Replace.
func (s *ContractStore) Load() (*types.ContractCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *ContractStore) load() (*types.ContractCache, error) {
	data, err := readFile(s.path)
	if err != nil {
		return nil, err
	}
	cache := &types.ContractCache{Contracts: []types.ContractRecord{}}
	if data == nil {
		return cache, nil
	}
	if err := decodeChecked(s.path, schemadocs.ContractCache, data, cache); err != nil {
		s.logger.Warn("ignoring unreadable contract cache", zap.String("path", s.path), zap.Error(err))
		return &types.ContractCache{Contracts: []types.ContractRecord{}}, nil
	}
	return cache, nil
}

// Replace overwrites the cache with records and stamps it with the current time.
func (s *ContractStore) Replace(records []types.ContractRecord) (*types.ContractCache, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []types.ContractRecord{}
	}
	now := s.now().UTC().Truncate(time.Second)
	cache := &types.ContractCache{Contracts: records, LastUpdated: &now}
	if err := writeJSON(s.path, cache); err != nil {
		return nil, err
	}
	s.logger.Info("contract cache saved", zap.String("path", s.path), zap.Int("contracts", len(records)))
	return cache, nil
}

// All returns every cached record.
func (s *ContractStore) All() ([]types.ContractRecord, error) {
	cache, err := s.Load()
	if err != nil {
		return nil, err
	}
	return cache.Contracts, nil
}

// AllCustomers returns the distinct customer names, sorted.
func (s *ContractStore) AllCustomers() ([]string, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(records))
	customers := make([]string, 0, len(records))
	for _, r := range records {
		if r.Customer != "" && !seen[r.Customer] {
			seen[r.Customer] = true
			customers = append(customers, r.Customer)
		}
	}
	slices.Sort(customers)
	return customers, nil
}

// FindByCustomer returns the records whose customer equals name, ignoring case.
func (s *ContractStore) FindByCustomer(name string) ([]types.ContractRecord, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	return s.filter(func(r types.ContractRecord) bool {
		return strings.ToLower(r.Customer) == want
	})
}

// FindSimilar returns the records whose customer contains partial, ignoring case.
func (s *ContractStore) FindSimilar(partial string) ([]types.ContractRecord, error) {
	want := strings.ToLower(strings.TrimSpace(partial))
	return s.filter(func(r types.ContractRecord) bool {
		return strings.Contains(strings.ToLower(r.Customer), want)
	})
}

// LatestForCustomer returns the last record for the customer in scan order.
func (s *ContractStore) LatestForCustomer(name string) (types.ContractRecord, bool, error) {
	records, err := s.FindByCustomer(name)
	if err != nil || len(records) == 0 {
		return types.ContractRecord{}, false, err
	}
	return records[len(records)-1], true, nil
}

// Stats summarizes the cache.
func (s *ContractStore) Stats() (types.ContractStats, error) {
	cache, err := s.Load()
	if err != nil {
		return types.ContractStats{}, err
	}
	customers := make(map[string]bool)
	for _, r := range cache.Contracts {
		customers[r.Customer] = true
	}
	return types.ContractStats{
		TotalContracts:  len(cache.Contracts),
		UniqueCustomers: len(customers),
		LastUpdated:     cache.LastUpdated,
	}, nil
}

func (s *ContractStore) filter(keep func(types.ContractRecord) bool) ([]types.ContractRecord, error) {
	records, err := s.All()
	if err != nil {
		return nil, err
	}
	var out []types.ContractRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
