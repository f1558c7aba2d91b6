// Package localfs provides a content store over local CSV files. It
// backs offline mode, where file IDs are filesystem paths and no
// content service is configured.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/tabular"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore reads and writes tabular files on the local filesystem.
type ContentStore struct{}

// NewContentStore creates a local filesystem content store.
func NewContentStore() *ContentStore {
	return &ContentStore{}
}

// GetContent reads and parses the CSV file at the given path.
func (s *ContentStore) GetContent(_ context.Context, fileID string) (*driven.FileContent, error) {
	info, err := os.Stat(fileID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", fileID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", fileID, err)
	}

	data, err := os.ReadFile(fileID)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileID, err)
	}

	columns, rows, err := tabular.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileID, err)
	}

	return &driven.FileContent{
		File: domain.DataFile{
			ID:        fileID,
			Name:      filepath.Base(fileID),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		},
		Columns: columns,
		Rows:    rows,
	}, nil
}

// PutContent replaces the file with the canonical serialization. The
// write goes through a temp file and rename so a crash cannot leave a
// half-written dataset. The modification record is persisted separately
// by the modification store.
func (s *ContentStore) PutContent(_ context.Context, fileID string, serialized []byte, _ *domain.ModificationRecord) error {
	dir := filepath.Dir(fileID)
	tmp, err := os.CreateTemp(dir, ".tabtrace-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", fileID, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(serialized); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", fileID, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", fileID, err)
	}

	if err := os.Rename(tmpName, fileID); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", fileID, err)
	}
	return nil
}
