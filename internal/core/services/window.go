package services

import (
	"strings"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

// Ensure WindowController implements the interface.
var _ driving.WindowController = (*WindowController)(nil)

// WindowController materializes a bounded view of the working table.
// Below the virtualize threshold it renders the whole dataset in
// chunked passes; at or above it, only a window of the first rows is
// materialized and the rest is opt-in via LoadMore or ShowAll.
type WindowController struct {
	dataset  *domain.Dataset
	render   driving.RowRenderer
	settings domain.EditorSettings

	state driving.RenderState

	// lines caches materialized rows. A row is rendered once and
	// reused until explicitly invalidated.
	lines []string

	// next is the next row to materialize during a chunked pass.
	next int
}

// NewWindowController creates a controller for a dataset. A nil
// renderer falls back to a plain tab join.
func NewWindowController(dataset *domain.Dataset, render driving.RowRenderer, settings domain.EditorSettings) *WindowController {
	if render == nil {
		render = func(_ int, row domain.Row) string {
			return strings.Join(row, "\t")
		}
	}
	return &WindowController{
		dataset:  dataset,
		render:   render,
		settings: settings.Normalize(),
		state:    driving.RenderIdle,
	}
}

// Begin starts materialization of the current dataset.
func (c *WindowController) Begin() error {
	if c.state == driving.RenderRendering {
		return domain.ErrOperationInProgress
	}

	total := c.dataset.RowCount()
	c.lines = c.lines[:0]
	c.next = 0

	if total >= c.settings.VirtualizeThreshold {
		// Virtualized window: first WindowSize rows only.
		c.materialize(min(total, c.settings.WindowSize))
		c.state = driving.RenderVirtualized
		return nil
	}

	c.state = driving.RenderRendering
	return nil
}

// Step advances an in-flight chunked pass by one batch.
func (c *WindowController) Step() (bool, error) {
	if c.state != driving.RenderRendering {
		return true, nil
	}

	total := c.dataset.RowCount()
	c.materialize(min(total, c.next+c.settings.ChunkSize))

	if c.next >= total {
		c.state = driving.RenderIdle
		return true, nil
	}
	return false, nil
}

// State returns the controller's current state.
func (c *WindowController) State() driving.RenderState {
	return c.state
}

// Busy reports whether a chunked pass is in flight.
func (c *WindowController) Busy() bool {
	return c.state == driving.RenderRendering
}

// VisibleCount returns the number of materialized rows.
func (c *WindowController) VisibleCount() int {
	return len(c.lines)
}

// TotalRows returns the working table's row count.
func (c *WindowController) TotalRows() int {
	return c.dataset.RowCount()
}

// VisibleLines returns the materialized display rows.
func (c *WindowController) VisibleLines() []string {
	return c.lines
}

// LoadMore extends a virtualized window, capped at the row count.
func (c *WindowController) LoadMore(step int) int {
	if c.state != driving.RenderVirtualized {
		return len(c.lines)
	}
	if step <= 0 {
		step = c.settings.WindowSize
	}
	c.materialize(min(c.dataset.RowCount(), len(c.lines)+step))
	return len(c.lines)
}

// ShowAll leaves virtualized mode and materializes the remainder of
// the dataset through the chunked path.
func (c *WindowController) ShowAll() error {
	if c.state == driving.RenderRendering {
		return domain.ErrOperationInProgress
	}
	c.state = driving.RenderRendering
	return nil
}

// InvalidateRow re-materializes a single row in place. Rows outside
// the visible window are left for their own materialization step.
func (c *WindowController) InvalidateRow(pos int) {
	if pos < 0 || pos >= len(c.lines) || pos >= c.dataset.RowCount() {
		return
	}
	row, err := c.dataset.Row(pos)
	if err != nil {
		return
	}
	c.lines[pos] = c.render(pos, row)
}

// Refresh reconciles the visible window after a structural edit.
// The window length is clamped to the new row count and every still
// visible row is re-materialized, since deletion shifts positions.
func (c *WindowController) Refresh() {
	total := c.dataset.RowCount()
	if len(c.lines) > total {
		c.lines = c.lines[:total]
	}
	for pos := range c.lines {
		row, err := c.dataset.Row(pos)
		if err != nil {
			return
		}
		c.lines[pos] = c.render(pos, row)
	}
	c.next = len(c.lines)

	// A complete chunked view grows with the table.
	if c.state == driving.RenderIdle && len(c.lines) < total {
		c.materialize(total)
	}
}

// materialize renders rows [next, upto) and appends them to the cache.
func (c *WindowController) materialize(upto int) {
	for ; c.next < upto; c.next++ {
		row, err := c.dataset.Row(c.next)
		if err != nil {
			return
		}
		c.lines = append(c.lines, c.render(c.next, row))
	}
}
