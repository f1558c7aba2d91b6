package services

import (
	"context"
	"fmt"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	"github.com/tabtrace-labs/tabtrace-cli/internal/fingerprint"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
	"github.com/tabtrace-labs/tabtrace-cli/internal/tabular"
)

// Ensure Session implements the interface.
var _ driving.EditorSession = (*Session)(nil)

// Session is one open dataset plus its selection, window, annotation
// ledger and apply flow. Sessions are constructed explicitly and owned
// by the caller.
type Session struct {
	content     driven.ContentStore
	identity    driven.IdentityService
	annotations driven.AnnotationStore
	mods        driven.ModificationStore
	settings    domain.EditorSettings
	render      driving.RowRenderer

	file      *domain.DataFile
	dataset   *domain.Dataset
	selection *domain.Selection
	window    *WindowController
	ranges    *rangeEngine
	ledger    *AnnotationLedger
	audit     *AuditTrail
}

// NewSession creates a session. The content store is required; the
// identity service and both persistence stores may be nil, in which
// case attribution degrades to anonymous and persistence is skipped.
func NewSession(
	content driven.ContentStore,
	identity driven.IdentityService,
	annotations driven.AnnotationStore,
	mods driven.ModificationStore,
	settings domain.EditorSettings,
	render driving.RowRenderer,
) *Session {
	return &Session{
		content:     content,
		identity:    identity,
		annotations: annotations,
		mods:        mods,
		settings:    settings.Normalize(),
		render:      render,
	}
}

// Open loads a file into the session, replacing any previous state.
func (s *Session) Open(ctx context.Context, fileID string) error {
	if s.content == nil {
		return fmt.Errorf("content store not configured")
	}

	fc, err := s.content.GetContent(ctx, fileID)
	if err != nil {
		return fmt.Errorf("loading file %s: %w", fileID, err)
	}

	return s.load(ctx, &fc.File, fc.Columns, fc.Rows)
}

func (s *Session) load(ctx context.Context, file *domain.DataFile, columns []string, rows []domain.Row) error {
	dataset, err := domain.NewDataset(columns, rows, s.settings.CopyThreshold)
	if err != nil {
		return err
	}

	serialized, err := tabular.Encode(columns, rows)
	if err != nil {
		return fmt.Errorf("serializing baseline: %w", err)
	}

	s.file = file
	s.dataset = dataset
	s.selection = domain.NewSelection()
	s.window = NewWindowController(dataset, s.render, s.settings)
	s.ranges = newRangeEngine(s.selection, s.settings)
	s.ledger = NewAnnotationLedger(s.annotations, s.identity, file.ID, s.settings.PersistTimeout)
	s.audit = NewAuditTrail(dataset, s.selection, s.content, s.mods, s.identity, file.ID, fingerprint.Sum(serialized))

	// Annotation load failure is a dismissable degradation, never a
	// blocked open.
	if err := s.ledger.LoadAll(ctx, file.ID); err != nil {
		logger.Warn("loading annotations for %s: %v", file.ID, err)
	}
	return nil
}

// File returns the open file's metadata, or nil before Open.
func (s *Session) File() *domain.DataFile {
	return s.file
}

// Columns returns the dataset's column header.
func (s *Session) Columns() []string {
	if s.dataset == nil {
		return nil
	}
	return s.dataset.Columns()
}

// RowCount returns the working table's row count.
func (s *Session) RowCount() int {
	if s.dataset == nil {
		return 0
	}
	return s.dataset.RowCount()
}

// Row returns the working row at a position.
func (s *Session) Row(pos int) (domain.Row, error) {
	if s.dataset == nil {
		return nil, domain.ErrEmptyDataset
	}
	return s.dataset.Row(pos)
}

// Dirty reports whether the working table differs from the baseline.
func (s *Session) Dirty() bool {
	return s.dataset != nil && s.dataset.Dirty()
}

// DiffSummary counts modified, added and deleted rows.
func (s *Session) DiffSummary() domain.DiffSummary {
	if s.dataset == nil {
		return domain.DiffSummary{}
	}
	return s.dataset.DiffSummary()
}

// FingerprintBefore returns the digest editing is anchored to.
func (s *Session) FingerprintBefore() string {
	if s.audit == nil {
		return ""
	}
	return s.audit.FingerprintBefore()
}

// CheckExternal reloads the file from its store and compares the
// stored content against the digest editing started from. A mismatch
// means the file changed outside this session.
func (s *Session) CheckExternal(ctx context.Context) (bool, error) {
	if s.file == nil || s.audit == nil {
		return false, domain.ErrEmptyDataset
	}

	fc, err := s.content.GetContent(ctx, s.file.ID)
	if err != nil {
		return false, fmt.Errorf("reloading %s: %w", s.file.ID, err)
	}

	serialized, err := tabular.Encode(fc.Columns, fc.Rows)
	if err != nil {
		return false, fmt.Errorf("serializing reloaded content: %w", err)
	}

	return fingerprint.Verify(serialized, s.audit.FingerprintBefore()), nil
}

// UpdateCell writes one cell and refreshes its materialized view.
// Cell writes cannot invalidate row indices, so they are allowed while
// chunked operations are in flight.
func (s *Session) UpdateCell(pos int, column, value string) error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	if err := s.dataset.UpdateCell(pos, column, value); err != nil {
		return err
	}
	s.window.InvalidateRow(pos)
	return nil
}

// InsertRow appends an empty row. Rejected while a chunked operation
// is in flight: its index math would go stale.
func (s *Session) InsertRow() error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	if err := s.guardStructural(); err != nil {
		return err
	}
	s.dataset.InsertRow()
	s.window.Refresh()
	return nil
}

// DeleteRows removes rows at the given positions and renumbers the
// selection. Rejected while a chunked operation is in flight.
func (s *Session) DeleteRows(positions []int) error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	if err := s.guardStructural(); err != nil {
		return err
	}
	deleted := s.dataset.DeleteRows(positions)
	s.selection.OnRowsDeleted(deleted, s.dataset.RowCount())
	s.window.Refresh()
	return nil
}

// DeleteSelected removes the currently selected rows.
func (s *Session) DeleteSelected() error {
	if s.selection == nil || s.selection.Size() == 0 {
		return nil
	}
	return s.DeleteRows(s.selection.Members())
}

// Discard resets the working table to the original snapshot.
func (s *Session) Discard() error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	if err := s.guardStructural(); err != nil {
		return err
	}
	s.dataset.Discard()
	s.selection.Clear()
	s.window.Refresh()
	s.audit.reset("")
	return nil
}

// Toggle flips selection membership of one row.
func (s *Session) Toggle(pos int) error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	if pos < 0 || pos >= s.dataset.RowCount() {
		return domain.ErrIndexOutOfRange
	}
	s.selection.Toggle(pos)
	return nil
}

// SelectAll selects every working row.
func (s *Session) SelectAll() error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	if s.ranges.Busy() {
		return domain.ErrOperationInProgress
	}
	s.selection.SelectAll(s.dataset.RowCount())
	return nil
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() {
	if s.selection != nil {
		s.selection.Clear()
	}
}

// ApplyRange replaces the selection with a one-based inclusive range.
func (s *Session) ApplyRange(startOneBased, endOneBased int) error {
	if s.dataset == nil {
		return domain.ErrEmptyDataset
	}
	return s.ranges.Start(startOneBased, endOneBased, s.dataset.RowCount())
}

// StepRange advances an in-flight chunked range application.
func (s *Session) StepRange() (bool, error) {
	if s.ranges == nil {
		return true, nil
	}
	return s.ranges.Step()
}

// RunRange drives an in-flight range application to completion under
// the range liveness budget. Used by non-interactive callers.
func (s *Session) RunRange(ctx context.Context) error {
	if s.ranges == nil || !s.ranges.Busy() {
		return nil
	}
	wd := NewWatchdog(s.settings.RangeTimeout, 0)
	return wd.Run(ctx, s.ranges.Step, s.ranges.reset)
}

// RangeBusy reports whether a range application is in flight.
func (s *Session) RangeBusy() bool {
	return s.ranges != nil && s.ranges.Busy()
}

// AbortRange cancels an in-flight chunked range application. The
// partially applied selection is discarded, matching the replace
// semantics of a range that never completed.
func (s *Session) AbortRange() {
	if s.ranges == nil || !s.ranges.Busy() {
		return
	}
	s.ranges.reset()
	if s.selection != nil {
		s.selection.Clear()
	}
}

// SelectionSize returns the number of selected rows.
func (s *Session) SelectionSize() int {
	if s.selection == nil {
		return 0
	}
	return s.selection.Size()
}

// IsSelected reports whether a row is selected.
func (s *Session) IsSelected(pos int) bool {
	return s.selection != nil && s.selection.Contains(pos)
}

// SelectedPositions returns the selected rows in ascending order.
func (s *Session) SelectedPositions() []int {
	if s.selection == nil {
		return nil
	}
	return s.selection.Members()
}

// Window returns the session's windowing controller.
func (s *Session) Window() driving.WindowController {
	return s.window
}

// Annotations returns the session's annotation ledger.
func (s *Session) Annotations() driving.AnnotationLedger {
	return s.ledger
}

// Audit returns the session's modification audit trail.
func (s *Session) Audit() driving.AuditTrail {
	return s.audit
}

// guardStructural rejects structural edits while any chunked operation
// is in flight, so indices are never computed against a stale row
// count.
func (s *Session) guardStructural() error {
	if s.ranges.Busy() || s.window.Busy() {
		return domain.ErrOperationInProgress
	}
	return nil
}
