package driving

import (
	"context"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// EditorSession is a single open dataset plus its selection, window and
// apply flow. Sessions are explicitly constructed and owned by the
// caller; there is no page-wide singleton.
type EditorSession interface {
	// Open loads a file's content into the session, replacing any
	// previous dataset, selection and annotations.
	Open(ctx context.Context, fileID string) error

	// File returns the open file's metadata, or nil before Open.
	File() *domain.DataFile

	// Columns returns the dataset's column header.
	Columns() []string

	// RowCount returns the working table's row count.
	RowCount() int

	// Row returns the working row at a position.
	Row(pos int) (domain.Row, error)

	// Dirty reports whether the working table differs from the
	// load-time snapshot.
	Dirty() bool

	// DiffSummary counts modified, added and deleted rows.
	DiffSummary() domain.DiffSummary

	// FingerprintBefore returns the digest captured when editing
	// began (at Open, and again after each commit).
	FingerprintBefore() string

	// CheckExternal reloads the file from its store and reports
	// whether the stored content still matches the digest editing
	// started from. It never touches the working table.
	CheckExternal(ctx context.Context) (bool, error)

	// UpdateCell writes one cell. Rejected with
	// domain.ErrOperationInProgress while a chunked operation is in
	// flight only for structural edits; cell writes are always
	// allowed because they cannot invalidate row indices.
	UpdateCell(pos int, column, value string) error

	// InsertRow appends an empty row. Rejected while a chunked
	// operation is in flight.
	InsertRow() error

	// DeleteRows removes rows at the given positions. Rejected while
	// a chunked operation is in flight.
	DeleteRows(positions []int) error

	// DeleteSelected removes the currently selected rows.
	DeleteSelected() error

	// Discard resets the working table to the original snapshot and
	// clears the selection.
	Discard() error

	// Toggle flips selection membership of one row.
	Toggle(pos int) error

	// SelectAll selects every working row.
	SelectAll() error

	// ClearSelection empties the selection.
	ClearSelection()

	// ApplyRange replaces the selection with a one-based inclusive
	// range. Large ranges are applied incrementally; drive the
	// in-flight application with StepRange. Returns
	// domain.ErrInvalidRange on bad bounds (selection untouched) and
	// domain.ErrOperationInProgress when an application is already
	// in flight.
	ApplyRange(startOneBased, endOneBased int) error

	// StepRange advances an in-flight chunked range application by
	// one batch. Returns true when the application has completed.
	StepRange() (done bool, err error)

	// RangeBusy reports whether a range application is in flight.
	RangeBusy() bool

	// AbortRange cancels an in-flight chunked range application and
	// discards the partially applied selection, so the engine is
	// never left unrecoverably busy.
	AbortRange()

	// SelectionSize returns the number of selected rows.
	SelectionSize() int

	// IsSelected reports whether a row is selected.
	IsSelected(pos int) bool

	// SelectedPositions returns the selected rows in ascending order.
	SelectedPositions() []int

	// Window returns the session's windowing controller.
	Window() WindowController

	// Annotations returns the session's annotation ledger.
	Annotations() AnnotationLedger

	// Audit returns the session's modification audit trail.
	Audit() AuditTrail
}
