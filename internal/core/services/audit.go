package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	"github.com/tabtrace-labs/tabtrace-cli/internal/fingerprint"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
	"github.com/tabtrace-labs/tabtrace-cli/internal/tabular"
)

// Ensure AuditTrail implements the interface.
var _ driving.AuditTrail = (*AuditTrail)(nil)

// AuditTrail drives the apply flow for one open file. Each committed
// modification is anchored to before/after fingerprints of the
// canonical serialization and recorded append-only.
type AuditTrail struct {
	dataset   *domain.Dataset
	selection *domain.Selection
	content   driven.ContentStore
	mods      driven.ModificationStore
	identity  driven.IdentityService

	fileID   string
	fpBefore string

	state   domain.ApplyState
	reason  domain.ReasonCode
	details string
	lastErr error
}

// NewAuditTrail creates an apply flow in the EDITING state.
// fpBefore is the fingerprint captured when editing began.
func NewAuditTrail(
	dataset *domain.Dataset,
	selection *domain.Selection,
	content driven.ContentStore,
	mods driven.ModificationStore,
	identity driven.IdentityService,
	fileID, fpBefore string,
) *AuditTrail {
	return &AuditTrail{
		dataset:   dataset,
		selection: selection,
		content:   content,
		mods:      mods,
		identity:  identity,
		fileID:    fileID,
		fpBefore:  fpBefore,
		state:     domain.StateEditing,
	}
}

// State returns the pending modification's current state.
func (t *AuditTrail) State() domain.ApplyState {
	return t.state
}

// FingerprintBefore returns the digest the next record will anchor to.
func (t *AuditTrail) FingerprintBefore() string {
	return t.fpBefore
}

// BeginApply moves an edited dataset into REASON_REQUIRED.
func (t *AuditTrail) BeginApply() error {
	switch t.state {
	case domain.StateEditing, domain.StateCommitted:
	case domain.StateReasonRequired, domain.StateReady, domain.StateFailed:
		return nil // already in the apply flow
	default:
		return domain.ErrOperationInProgress
	}
	if !t.dataset.Dirty() {
		return fmt.Errorf("%w: no changes to apply", domain.ErrNotReady)
	}
	t.state = domain.StateReasonRequired
	t.reason = ""
	t.details = ""
	t.lastErr = nil
	return nil
}

// SetReason records the reason code and details, moving to READY when
// valid. "other" requires non-empty details; the transition is refused
// and the flow stays in REASON_REQUIRED otherwise. After a failed
// submission this is also the retry path out of FAILED.
func (t *AuditTrail) SetReason(code domain.ReasonCode, details string) error {
	if t.state != domain.StateReasonRequired && t.state != domain.StateReady &&
		t.state != domain.StateFailed {
		return domain.ErrNotReady
	}
	if !code.IsValid() {
		return domain.ErrInvalidReason
	}
	if code.RequiresDetails() && strings.TrimSpace(details) == "" {
		t.state = domain.StateReasonRequired
		return domain.ErrDetailsRequired
	}
	t.reason = code
	t.details = details
	t.state = domain.StateReady
	return nil
}

// Submit serializes the working table, fingerprints it and hands the
// package to the content service. Success commits the edit as the new
// baseline; failure parks the flow in FAILED, and re-confirming the
// reason returns it to READY for a fresh user-initiated retry. Never
// retried automatically.
func (t *AuditTrail) Submit(ctx context.Context) error {
	if t.state != domain.StateReady {
		return domain.ErrNotReady
	}
	t.state = domain.StateSubmitting

	serialized, err := tabular.EncodeDataset(t.dataset)
	if err != nil {
		return t.fail(fmt.Errorf("serializing dataset: %w", err))
	}
	fpAfter := fingerprint.Sum(serialized)

	record := &domain.ModificationRecord{
		ID:                uuid.NewString(),
		FileID:            t.fileID,
		Reason:            t.reason,
		Details:           t.details,
		FingerprintBefore: t.fpBefore,
		FingerprintAfter:  fpAfter,
		Author:            t.resolveAuthor(ctx),
		CreatedAt:         time.Now(),
	}

	if t.content != nil {
		if err := t.content.PutContent(ctx, t.fileID, serialized, record); err != nil {
			return t.fail(fmt.Errorf("uploading content: %w", err))
		}
	}

	// The local log is bookkeeping on top of the committed upload;
	// a failure here is surfaced in verbose output, not rolled back.
	if t.mods != nil {
		if err := t.mods.Append(ctx, record); err != nil {
			logger.Warn("appending modification record locally: %v", err)
		}
	}

	t.dataset.CommitBaseline()
	if t.selection != nil {
		t.selection.Clear()
	}
	t.fpBefore = fpAfter
	t.state = domain.StateCommitted
	t.lastErr = nil
	return nil
}

// LastError returns the failure that parked the flow in FAILED.
func (t *AuditTrail) LastError() error {
	return t.lastErr
}

// Records returns a file's modification history, newest first.
func (t *AuditTrail) Records(ctx context.Context, fileID string) ([]domain.ModificationRecord, error) {
	if t.mods == nil {
		return nil, nil
	}
	return t.mods.ListByFile(ctx, fileID)
}

// reset returns the flow to EDITING. Called when the dataset is
// discarded or reloaded.
func (t *AuditTrail) reset(fpBefore string) {
	t.state = domain.StateEditing
	t.reason = ""
	t.details = ""
	t.lastErr = nil
	if fpBefore != "" {
		t.fpBefore = fpBefore
	}
}

// fail records a submission failure: no partial commit is visible, the
// pending reason survives, and SetReason is the retry path back to
// READY.
func (t *AuditTrail) fail(err error) error {
	t.lastErr = err
	t.state = domain.StateFailed
	return err
}

func (t *AuditTrail) resolveAuthor(ctx context.Context) domain.Actor {
	if t.identity == nil {
		return domain.AnonymousActor()
	}
	actor, err := t.identity.Resolve(ctx)
	if err != nil || actor == nil {
		logger.Warn("identity resolution failed, using anonymous: %v", err)
		return domain.AnonymousActor()
	}
	return *actor
}
