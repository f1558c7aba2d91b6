package remote

import (
	"context"
	"net/http"
	"time"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure AnnotationStore implements the interface.
var _ driven.AnnotationStore = (*AnnotationStore)(nil)

// AnnotationStore persists annotations through the hosted annotation
// service. The in-memory ledger is the source of truth while editing;
// a failed persist here is reported but never rolls the ledger back.
type AnnotationStore struct {
	client *Client
}

// NewAnnotationStore creates an annotation store backed by the remote
// service.
func NewAnnotationStore(client *Client) *AnnotationStore {
	return &AnnotationStore{client: client}
}

// annotationJSON is the wire format of a cell annotation.
type annotationJSON struct {
	ID          string    `json:"id"`
	FileID      string    `json:"file_id"`
	Row         int       `json:"row"`
	Column      string    `json:"column"`
	Explanation string    `json:"explanation"`
	AuthorID    string    `json:"author_id,omitempty"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email,omitempty"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"created_at"`
}

// listResponse is the GET /files/{id}/annotations response format.
type listResponse struct {
	Annotations []annotationJSON `json:"annotations"`
}

// ListByFile returns all annotations for a file.
func (s *AnnotationStore) ListByFile(ctx context.Context, fileID string) ([]domain.Annotation, error) {
	var resp listResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/files/"+pathEscape(fileID)+"/annotations", nil, &resp); err != nil {
		return nil, err
	}

	annotations := make([]domain.Annotation, len(resp.Annotations))
	for i, a := range resp.Annotations {
		annotations[i] = domain.Annotation{
			ID:          a.ID,
			FileID:      a.FileID,
			Row:         a.Row,
			Column:      a.Column,
			Explanation: a.Explanation,
			Author: domain.Actor{
				ID:          a.AuthorID,
				DisplayName: a.AuthorName,
				Email:       a.AuthorEmail,
			},
			Color:     a.Color,
			CreatedAt: a.CreatedAt,
		}
	}
	return annotations, nil
}

// Upsert stores or overwrites a single annotation.
func (s *AnnotationStore) Upsert(ctx context.Context, annotation *domain.Annotation) error {
	req := annotationJSON{
		ID:          annotation.ID,
		FileID:      annotation.FileID,
		Row:         annotation.Row,
		Column:      annotation.Column,
		Explanation: annotation.Explanation,
		AuthorID:    annotation.Author.ID,
		AuthorName:  annotation.Author.DisplayName,
		AuthorEmail: annotation.Author.Email,
		Color:       annotation.Color,
		CreatedAt:   annotation.CreatedAt,
	}
	return s.client.doJSON(ctx, http.MethodPut,
		"/files/"+pathEscape(annotation.FileID)+"/annotations", req, nil)
}
