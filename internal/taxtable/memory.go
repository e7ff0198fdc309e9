package taxtable

import (
	"fmt"
	"sync"

	"github.com/finplan/household-planner/internal/domain"
)

// Store is the lookup-and-load surface every tax table backend implements.
type Store interface {
	// Lookup returns the table for the given year, falling back to the
	// most recent earlier year for the same status and jurisdiction.
	Lookup(year int, status domain.FilingStatus, jurisdiction string) (*domain.TaxParameters, error)
	Put(params *domain.TaxParameters) error
	Close() error
}

type tableKey struct {
	year         int
	status       domain.FilingStatus
	jurisdiction string
}

// MemoryStore keeps tables in a map. It backs tests and runs that have no
// database on disk.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[tableKey]domain.TaxParameters
}

// NewMemoryStore creates a store pre-seeded with the built-in defaults.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{tables: make(map[tableKey]domain.TaxParameters)}
	for _, params := range Defaults2025() {
		p := params
		_ = s.Put(&p)
	}
	return s
}

// Put validates a table and stores it, replacing any existing entry for the
// same key.
func (s *MemoryStore) Put(params *domain.TaxParameters) error {
	if err := params.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[tableKey{params.Year, params.FilingStatus, params.Jurisdiction}] = *params
	return nil
}

// Lookup finds the table for the given year, or the most recent earlier
// year when the exact year is absent.
func (s *MemoryStore) Lookup(year int, status domain.FilingStatus, jurisdiction string) (*domain.TaxParameters, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params, ok := s.tables[tableKey{year, status, jurisdiction}]; ok {
		return &params, nil
	}

	var best *domain.TaxParameters
	for key, params := range s.tables {
		if key.status != status || key.jurisdiction != jurisdiction || key.year > year {
			continue
		}
		if best == nil || key.year > best.Year {
			p := params
			best = &p
		}
	}
	if best == nil {
		return nil, fmt.Errorf("no tax table for %s/%s in or before %d", jurisdiction, status, year)
	}
	return best, nil
}

// Close satisfies Store; a memory store holds nothing to release.
func (s *MemoryStore) Close() error { return nil }
