package driven

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// FileContent bundles a file's metadata with its parsed tabular
// content.
type FileContent struct {
	// File is the content service's metadata for the file.
	File domain.DataFile

	// Columns is the uniform column header.
	Columns []string

	// Rows is the ordered sequence of row records.
	Rows []domain.Row
}

// ContentStore fetches and persists file content.
// The far side is the File Content Service; transport failures surface
// as errors and local state is preserved.
type ContentStore interface {
	// GetContent retrieves a file's row records and metadata by ID.
	GetContent(ctx context.Context, fileID string) (*FileContent, error)

	// PutContent uploads the canonical serialization of a modified
	// dataset together with the modification record that justifies it.
	PutContent(ctx context.Context, fileID string, serialized []byte, record *domain.ModificationRecord) error
}
