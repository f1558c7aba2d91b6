package memory

import (
	"context"
	"sync"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore is an in-memory implementation of driven.ContentStore,
// used in tests and offline mode. PutContent keeps the uploaded bytes
// so tests can assert on the exact serialization.
type ContentStore struct {
	mu       sync.RWMutex
	files    map[string]driven.FileContent
	uploads  map[string][]byte
	putError error
}

// NewContentStore creates a new in-memory content store.
func NewContentStore() *ContentStore {
	return &ContentStore{
		files:   make(map[string]driven.FileContent),
		uploads: make(map[string][]byte),
	}
}

// AddFile seeds the store with a file's content.
func (s *ContentStore) AddFile(file domain.DataFile, columns []string, rows []domain.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.ID] = driven.FileContent{File: file, Columns: columns, Rows: rows}
}

// FailPuts makes subsequent PutContent calls return err. Pass nil to
// restore normal behaviour.
func (s *ContentStore) FailPuts(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putError = err
}

// LastUpload returns the bytes last uploaded for a file.
func (s *ContentStore) LastUpload(fileID string) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.uploads[fileID]
}

// GetContent retrieves a file's row records and metadata by ID.
func (s *ContentStore) GetContent(_ context.Context, fileID string) (*driven.FileContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fc, ok := s.files[fileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &fc, nil
}

// PutContent records an upload of serialized content.
func (s *ContentStore) PutContent(_ context.Context, fileID string, serialized []byte, _ *domain.ModificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.putError != nil {
		return s.putError
	}
	s.uploads[fileID] = append([]byte(nil), serialized...)
	return nil
}
