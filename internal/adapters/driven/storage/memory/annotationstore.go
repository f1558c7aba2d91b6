package memory

import (
	"context"
	"sync"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore is an in-memory implementation of
// driven.AnnotationStore, used in tests and offline mode.
type AnnotationStore struct {
	mu sync.RWMutex
	// byFile maps fileID -> cell key -> annotation.
	byFile map[string]map[domain.CellKey]domain.Annotation
}

// NewAnnotationStore creates a new in-memory annotation store.
func NewAnnotationStore() *AnnotationStore {
	return &AnnotationStore{
		byFile: make(map[string]map[domain.CellKey]domain.Annotation),
	}
}

// ListByFile returns all annotations for a file.
func (s *AnnotationStore) ListByFile(_ context.Context, fileID string) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cells := s.byFile[fileID]
	out := make([]domain.Annotation, 0, len(cells))
	for _, a := range cells {
		out = append(out, a)
	}
	return out, nil
}

// Upsert stores or overwrites a single annotation.
func (s *AnnotationStore) Upsert(_ context.Context, annotation *domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cells, ok := s.byFile[annotation.FileID]
	if !ok {
		cells = make(map[domain.CellKey]domain.Annotation)
		s.byFile[annotation.FileID] = cells
	}
	cells[annotation.Key()] = *annotation
	return nil
}
