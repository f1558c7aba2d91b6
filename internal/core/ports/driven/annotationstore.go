package driven

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// AnnotationStore persists cell annotations.
// The in-memory ledger is optimistic: a failed persist is reported but
// does not roll back the local annotation.
type AnnotationStore interface {
	// ListByFile returns all annotations for a file.
	ListByFile(ctx context.Context, fileID string) ([]domain.Annotation, error)

	// Upsert stores or overwrites a single annotation.
	Upsert(ctx context.Context, annotation *domain.Annotation) error
}
