package driving

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// AnnotationLedger is the keyed store of per-cell annotations for one
// open file. The ledger is the sole writer; renderers only read.
type AnnotationLedger interface {
	// LoadAll replaces the ledger's entire contents with the file's
	// persisted annotations. Not a merge.
	LoadAll(ctx context.Context, fileID string) error

	// Get returns the annotation for a cell, if any.
	Get(row int, column string) (*domain.Annotation, bool)

	// Set creates or overwrites a cell's annotation. First
	// annotation of a cell assigns the next palette colour;
	// overwrites keep the existing colour. The write is local-first:
	// persistence failure is returned but the in-memory annotation
	// stands.
	Set(ctx context.Context, row int, column, explanation string) (*domain.Annotation, error)

	// All returns every annotation in the ledger, ordered by row
	// then column.
	All() []domain.Annotation

	// Count returns the number of annotations in the ledger.
	Count() int
}
