package driving

import "github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"

// RenderState is the windowing controller's explicit state. It replaces
// scattered boolean "processing" flags.
type RenderState int

const (
	// RenderIdle means no materialization is in progress and the
	// visible window is complete.
	RenderIdle RenderState = iota

	// RenderRendering means a chunked materialization pass is in
	// flight. New render requests are rejected, not interleaved.
	RenderRendering

	// RenderVirtualized means the dataset is at or above the
	// virtualize threshold and only a window of rows is materialized.
	RenderVirtualized
)

// String returns the string representation of the render state.
func (s RenderState) String() string {
	switch s {
	case RenderIdle:
		return "idle"
	case RenderRendering:
		return "rendering"
	case RenderVirtualized:
		return "virtualized"
	default:
		return "unknown"
	}
}

// RowRenderer materializes one row's display representation.
type RowRenderer func(pos int, row domain.Row) string

// WindowController converts dataset and selection state into a bounded
// sequence of visible rows without materializing the whole dataset at
// once.
type WindowController interface {
	// Begin starts materialization of the current dataset. Below the
	// virtualize threshold the pass is chunked and driven by Step;
	// at or above it the controller switches to a virtualized window
	// of the first rows. Returns domain.ErrOperationInProgress when
	// a pass is already in flight.
	Begin() error

	// Step advances an in-flight chunked pass by one batch. Returns
	// true when the visible window is fully materialized.
	Step() (done bool, err error)

	// State returns the controller's current state.
	State() RenderState

	// Busy reports whether a chunked pass is in flight.
	Busy() bool

	// VisibleCount returns the number of materialized rows.
	VisibleCount() int

	// TotalRows returns the working table's row count.
	TotalRows() int

	// VisibleLines returns the materialized display rows, in order.
	VisibleLines() []string

	// LoadMore extends a virtualized window by step rows, capped at
	// the total row count. Returns the new visible count.
	LoadMore(step int) int

	// ShowAll leaves virtualized mode and materializes the full
	// dataset via the chunked path. Explicitly slower; opt-in.
	ShowAll() error

	// InvalidateRow discards one row's materialized representation
	// so the next read reflects the working table. Unchanged rows
	// are never re-materialized.
	InvalidateRow(pos int)
}
