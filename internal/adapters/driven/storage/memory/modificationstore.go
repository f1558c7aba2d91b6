package memory

import (
	"context"
	"sync"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure ModificationStore implements the interface.
var _ driven.ModificationStore = (*ModificationStore)(nil)

// ModificationStore is an in-memory implementation of
// driven.ModificationStore. Records are append-only.
type ModificationStore struct {
	mu      sync.RWMutex
	records map[string][]domain.ModificationRecord
}

// NewModificationStore creates a new in-memory modification store.
func NewModificationStore() *ModificationStore {
	return &ModificationStore{
		records: make(map[string][]domain.ModificationRecord),
	}
}

// Append writes a single modification record.
func (s *ModificationStore) Append(_ context.Context, record *domain.ModificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.FileID] = append(s.records[record.FileID], *record)
	return nil
}

// ListByFile returns a file's modification records, newest first.
func (s *ModificationStore) ListByFile(_ context.Context, fileID string) ([]domain.ModificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[fileID]
	out := make([]domain.ModificationRecord, len(recs))
	for i, r := range recs {
		out[len(recs)-1-i] = r
	}
	return out, nil
}

// Latest returns the most recent record for a file.
func (s *ModificationStore) Latest(_ context.Context, fileID string) (*domain.ModificationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[fileID]
	if len(recs) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := recs[len(recs)-1]
	return &latest, nil
}
