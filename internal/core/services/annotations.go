package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
)

// Ensure AnnotationLedger implements the interface.
var _ driving.AnnotationLedger = (*AnnotationLedger)(nil)

// AnnotationLedger is the sole writer of per-cell annotations for one
// open file. Writes are local-first: the in-memory entry stands even
// when the persist call fails.
type AnnotationLedger struct {
	store    driven.AnnotationStore
	identity driven.IdentityService
	timeout  time.Duration

	fileID  string
	entries map[domain.CellKey]*domain.Annotation
}

// NewAnnotationLedger creates an empty ledger for a file.
func NewAnnotationLedger(store driven.AnnotationStore, identity driven.IdentityService, fileID string, persistTimeout time.Duration) *AnnotationLedger {
	if persistTimeout <= 0 {
		persistTimeout = domain.DefaultEditorSettings().PersistTimeout
	}
	return &AnnotationLedger{
		store:    store,
		identity: identity,
		timeout:  persistTimeout,
		fileID:   fileID,
		entries:  make(map[domain.CellKey]*domain.Annotation),
	}
}

// LoadAll replaces the ledger's contents with the file's persisted
// annotations. Not a merge.
func (l *AnnotationLedger) LoadAll(ctx context.Context, fileID string) error {
	if l.store == nil {
		l.fileID = fileID
		l.entries = make(map[domain.CellKey]*domain.Annotation)
		return nil
	}

	annotations, err := l.store.ListByFile(ctx, fileID)
	if err != nil {
		return err
	}

	entries := make(map[domain.CellKey]*domain.Annotation, len(annotations))
	for i := range annotations {
		a := annotations[i]
		entries[a.Key()] = &a
	}
	l.fileID = fileID
	l.entries = entries
	return nil
}

// Get returns the annotation for a cell, if any.
func (l *AnnotationLedger) Get(row int, column string) (*domain.Annotation, bool) {
	a, ok := l.entries[domain.CellKey{Row: row, Column: column}]
	return a, ok
}

// Set creates or overwrites a cell's annotation. The first annotation
// of a cell draws the next palette colour; overwriting keeps the
// existing colour and replaces explanation, author and timestamp.
func (l *AnnotationLedger) Set(ctx context.Context, row int, column, explanation string) (*domain.Annotation, error) {
	if strings.TrimSpace(explanation) == "" {
		return nil, domain.ErrEmptyExplanation
	}

	key := domain.CellKey{Row: row, Column: column}
	author := l.resolveAuthor(ctx)

	a, exists := l.entries[key]
	if exists {
		a.Explanation = explanation
		a.Author = author
		a.CreatedAt = time.Now()
	} else {
		a = &domain.Annotation{
			ID:          uuid.NewString(),
			FileID:      l.fileID,
			Row:         row,
			Column:      column,
			Explanation: explanation,
			Author:      author,
			Color:       domain.PaletteColor(len(l.entries)),
			CreatedAt:   time.Now(),
		}
		l.entries[key] = a
	}

	if err := l.persist(ctx, a); err != nil {
		// Local-first: the visible state is optimistic.
		return a, err
	}
	return a, nil
}

// All returns every annotation, ordered by row then column.
func (l *AnnotationLedger) All() []domain.Annotation {
	out := make([]domain.Annotation, 0, len(l.entries))
	for _, a := range l.entries {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out
}

// Count returns the number of annotations in the ledger.
func (l *AnnotationLedger) Count() int {
	return len(l.entries)
}

// resolveAuthor asks the identity service for the current actor,
// degrading to the anonymous identity on any failure.
func (l *AnnotationLedger) resolveAuthor(ctx context.Context) domain.Actor {
	if l.identity == nil {
		return domain.AnonymousActor()
	}
	actor, err := l.identity.Resolve(ctx)
	if err != nil || actor == nil {
		logger.Warn("identity resolution failed, using anonymous: %v", err)
		return domain.AnonymousActor()
	}
	return *actor
}

func (l *AnnotationLedger) persist(ctx context.Context, a *domain.Annotation) error {
	if l.store == nil {
		return nil
	}
	pctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()
	return l.store.Upsert(pctx, a)
}
