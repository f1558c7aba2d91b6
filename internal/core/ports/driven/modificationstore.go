package driven

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// ModificationStore persists the append-only modification log.
// Records are immutable once written: there is no update or delete.
type ModificationStore interface {
	// Append writes a single modification record.
	Append(ctx context.Context, record *domain.ModificationRecord) error

	// ListByFile returns a file's modification records, newest first.
	ListByFile(ctx context.Context, fileID string) ([]domain.ModificationRecord, error)

	// Latest returns the most recent record for a file, or
	// domain.ErrNotFound when the file has never been modified.
	Latest(ctx context.Context, fileID string) (*domain.ModificationRecord, error)
}
