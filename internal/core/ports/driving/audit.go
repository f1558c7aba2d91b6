package driving

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// AuditTrail drives the apply flow for one open file and reads its
// modification history. A pending modification moves
// EDITING -> REASON_REQUIRED -> READY -> SUBMITTING -> COMMITTED or
// FAILED. Submission is never retried automatically.
type AuditTrail interface {
	// State returns the pending modification's current state.
	State() domain.ApplyState

	// BeginApply moves an edited dataset into REASON_REQUIRED.
	BeginApply() error

	// SetReason records the reason code and details. Moves to READY
	// when valid; domain.ErrDetailsRequired when the code is "other"
	// and details are empty.
	SetReason(code domain.ReasonCode, details string) error

	// Submit serializes the working table, computes the after
	// fingerprint and hands the package to the content service. On
	// success the edit becomes the new baseline and the selection is
	// cleared; on failure the flow returns to READY for a fresh
	// user-initiated retry.
	Submit(ctx context.Context) error

	// LastError returns the failure that sent the flow back to
	// READY, or nil.
	LastError() error

	// Records returns a file's modification history, newest first.
	Records(ctx context.Context, fileID string) ([]domain.ModificationRecord, error)
}
