package memory

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Ensure IdentityService implements the interface.
var _ driven.IdentityService = (*IdentityService)(nil)

// IdentityService is a static identity resolver for tests and offline
// mode.
type IdentityService struct {
	actor domain.Actor
	err   error
}

// NewIdentityService creates a resolver that always returns actor.
func NewIdentityService(actor domain.Actor) *IdentityService {
	return &IdentityService{actor: actor}
}

// Fail makes subsequent Resolve calls return err.
func (s *IdentityService) Fail(err error) {
	s.err = err
}

// Resolve returns the configured actor.
func (s *IdentityService) Resolve(_ context.Context) (*domain.Actor, error) {
	if s.err != nil {
		return nil, s.err
	}
	actor := s.actor
	return &actor, nil
}
