// Package tui provides the interactive terminal editor for tabtrace.
// It implements a driving adapter following hexagonal architecture
// principles.
package tui

import (
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Session is the editor session for one open file. Its Window,
	// Annotations and Audit accessors cover the remaining surfaces,
	// so a single port is enough.
	Session driving.EditorSession
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
