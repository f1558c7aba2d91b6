package domain

// Actor is the identity attributed to annotations and modification
// records, resolved from the identity service.
type Actor struct {
	// ID is the actor's stable identifier.
	ID string

	// DisplayName is the human-readable name.
	DisplayName string

	// Email is the actor's email address.
	Email string
}

// AnonymousName is the display name used when identity resolution fails.
const AnonymousName = "Unknown User"

// AnonymousActor returns the degraded identity used when the identity
// service is unreachable. Identity failure never blocks the annotate
// or modify flow.
func AnonymousActor() Actor {
	return Actor{DisplayName: AnonymousName}
}

// IsAnonymous reports whether the actor is the degraded identity.
func (a Actor) IsAnonymous() bool {
	return a.ID == "" && a.DisplayName == AnonymousName
}
