package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure ContentStore implements the interface.
var _ driven.ContentStore = (*ContentStore)(nil)

// ContentStore fetches and persists file content through the hosted
// content service.
type ContentStore struct {
	client *Client
}

// NewContentStore creates a content store backed by the remote service.
func NewContentStore(client *Client) *ContentStore {
	return &ContentStore{client: client}
}

// fileJSON is the wire format of file metadata.
type fileJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// contentResponse is the GET /files/{id}/content response format.
type contentResponse struct {
	File    fileJSON   `json:"file"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// recordJSON is the wire format of a modification record.
type recordJSON struct {
	ID                string    `json:"id"`
	FileID            string    `json:"file_id"`
	Reason            string    `json:"reason"`
	Details           string    `json:"details,omitempty"`
	FingerprintBefore string    `json:"fingerprint_before"`
	FingerprintAfter  string    `json:"fingerprint_after"`
	AuthorID          string    `json:"author_id,omitempty"`
	AuthorName        string    `json:"author_name"`
	AuthorEmail       string    `json:"author_email,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// putContentRequest is the PUT /files/{id}/content request format. The
// serialized table travels as a single canonical CSV string so the
// service can fingerprint the exact bytes that were uploaded.
type putContentRequest struct {
	Content string     `json:"content"`
	Record  recordJSON `json:"record"`
}

// GetContent retrieves a file's row records and metadata by ID.
func (s *ContentStore) GetContent(ctx context.Context, fileID string) (*driven.FileContent, error) {
	var resp contentResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/files/"+pathEscape(fileID)+"/content", nil, &resp); err != nil {
		return nil, err
	}

	rows := make([]domain.Row, len(resp.Rows))
	for i, r := range resp.Rows {
		rows[i] = domain.Row(r)
	}

	return &driven.FileContent{
		File: domain.DataFile{
			ID:        resp.File.ID,
			Name:      resp.File.Name,
			Size:      resp.File.Size,
			CreatedAt: resp.File.CreatedAt,
		},
		Columns: resp.Columns,
		Rows:    rows,
	}, nil
}

// PutContent uploads the canonical serialization of a modified dataset
// together with the modification record that justifies it.
func (s *ContentStore) PutContent(ctx context.Context, fileID string, serialized []byte, record *domain.ModificationRecord) error {
	req := putContentRequest{
		Content: string(serialized),
	}
	if record != nil {
		req.Record = recordJSON{
			ID:                record.ID,
			FileID:            record.FileID,
			Reason:            string(record.Reason),
			Details:           record.Details,
			FingerprintBefore: record.FingerprintBefore,
			FingerprintAfter:  record.FingerprintAfter,
			AuthorID:          record.Author.ID,
			AuthorName:        record.Author.DisplayName,
			AuthorEmail:       record.Author.Email,
			CreatedAt:         record.CreatedAt,
		}
	}

	return s.client.doJSON(ctx, http.MethodPut, "/files/"+pathEscape(fileID)+"/content", req, nil)
}
