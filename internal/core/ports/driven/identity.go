package driven

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// IdentityService resolves the current actor for attribution in
// annotations and modification records. Resolution failure degrades to
// domain.AnonymousActor at the caller; it never blocks the annotate or
// modify flow.
type IdentityService interface {
	// Resolve returns the current actor's identity.
	Resolve(ctx context.Context) (*domain.Actor, error)
}
