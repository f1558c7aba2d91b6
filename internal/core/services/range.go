package services

import (
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// rangeEngine applies a one-based row range to the selection. Small
// ranges apply synchronously; ranges at or above the chunk threshold
// are staged and applied batch by batch so the event loop is never
// blocked. At most one application is in flight per engine.
type rangeEngine struct {
	selection *domain.Selection
	settings  domain.EditorSettings

	busy bool
	next int // next zero-based position to apply
	end  int // last zero-based position, inclusive
}

func newRangeEngine(selection *domain.Selection, settings domain.EditorSettings) *rangeEngine {
	return &rangeEngine{
		selection: selection,
		settings:  settings.Normalize(),
	}
}

// Start validates and begins a range application. The new range
// replaces the current selection; it does not union. An invalid range
// leaves the selection untouched.
func (e *rangeEngine) Start(startOneBased, endOneBased, rowCount int) error {
	if e.busy {
		return domain.ErrOperationInProgress
	}
	if err := domain.ValidateRange(startOneBased, endOneBased, rowCount); err != nil {
		return err
	}

	start := startOneBased - 1
	end := endOneBased - 1
	length := end - start + 1

	if length < e.settings.RangeChunkThreshold {
		positions := make([]int, 0, length)
		for pos := start; pos <= end; pos++ {
			positions = append(positions, pos)
		}
		e.selection.Replace(positions)
		return nil
	}

	// Chunked path: replace semantics means clearing up front, then
	// filling in batches driven by Step. The busy flag disables
	// conflicting controls until the fill completes.
	e.selection.Clear()
	e.busy = true
	e.next = start
	e.end = end
	return nil
}

// Step applies one batch of an in-flight application. Returns true
// when the application has completed (or none is in flight).
func (e *rangeEngine) Step() (bool, error) {
	if !e.busy {
		return true, nil
	}

	upto := e.next + e.settings.RangeBatchSize - 1
	if upto > e.end {
		upto = e.end
	}
	batch := make([]int, 0, upto-e.next+1)
	for pos := e.next; pos <= upto; pos++ {
		batch = append(batch, pos)
	}
	e.selection.Add(batch)
	e.next = upto + 1

	if e.next > e.end {
		e.busy = false
		return true, nil
	}
	return false, nil
}

// Busy reports whether an application is in flight.
func (e *rangeEngine) Busy() bool {
	return e.busy
}

// reset forcibly clears the busy flag. Used by the watchdog so a
// timed-out application can never leave the engine unrecoverable.
func (e *rangeEngine) reset() {
	e.busy = false
}
