package remote

import (
	"context"
	"net/http"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure IdentityService implements the interface.
var _ driven.IdentityService = (*IdentityService)(nil)

// IdentityService resolves the current actor from the remote identity
// endpoint. Callers degrade to the anonymous actor when resolution
// fails.
type IdentityService struct {
	client *Client
}

// NewIdentityService creates an identity service backed by the remote
// endpoint.
func NewIdentityService(client *Client) *IdentityService {
	return &IdentityService{client: client}
}

// identityResponse is the GET /identity response format.
type identityResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}

// Resolve returns the current actor's identity.
func (s *IdentityService) Resolve(ctx context.Context) (*domain.Actor, error) {
	var resp identityResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/identity", nil, &resp); err != nil {
		return nil, err
	}
	return &domain.Actor{
		ID:          resp.ID,
		DisplayName: resp.DisplayName,
		Email:       resp.Email,
	}, nil
}
