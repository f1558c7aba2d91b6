package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

func windowDataset(t *testing.T, n int) *domain.Dataset {
	t.Helper()
	rows := make([]domain.Row, n)
	for i := range rows {
		rows[i] = domain.Row{fmt.Sprintf("v%d", i), "x"}
	}
	d, err := domain.NewDataset([]string{"a", "b"}, rows, 0)
	require.NoError(t, err)
	return d
}

// countingRenderer counts how many times each row is materialized.
type countingRenderer struct {
	calls map[int]int
}

func newCountingRenderer() *countingRenderer {
	return &countingRenderer{calls: make(map[int]int)}
}

func (r *countingRenderer) render(pos int, row domain.Row) string {
	r.calls[pos]++
	return strings.Join(row, "|")
}

func runToCompletion(t *testing.T, c *WindowController) int {
	t.Helper()
	steps := 0
	for {
		done, err := c.Step()
		require.NoError(t, err)
		steps++
		if done {
			return steps
		}
		require.Less(t, steps, 10000, "render pass did not terminate")
	}
}

func TestWindowController_ChunkedRender(t *testing.T) {
	d := windowDataset(t, 60)
	c := NewWindowController(d, nil, domain.EditorSettings{ChunkSize: 25})

	require.NoError(t, c.Begin())
	assert.Equal(t, driving.RenderRendering, c.State())
	assert.True(t, c.Busy())

	// 60 rows at 25 per chunk: 25, 50, 60.
	done, err := c.Step()
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 25, c.VisibleCount())

	runToCompletion(t, c)
	assert.Equal(t, driving.RenderIdle, c.State())
	assert.Equal(t, 60, c.VisibleCount())
	assert.False(t, c.Busy())
}

func TestWindowController_ReentrancyRejected(t *testing.T) {
	d := windowDataset(t, 60)
	c := NewWindowController(d, nil, domain.EditorSettings{})

	require.NoError(t, c.Begin())
	assert.ErrorIs(t, c.Begin(), domain.ErrOperationInProgress)
	assert.ErrorIs(t, c.ShowAll(), domain.ErrOperationInProgress)
}

func TestWindowController_VirtualizedWindow(t *testing.T) {
	d := windowDataset(t, 1200)
	c := NewWindowController(d, nil, domain.EditorSettings{})

	require.NoError(t, c.Begin())
	assert.Equal(t, driving.RenderVirtualized, c.State())
	assert.Equal(t, 100, c.VisibleCount())
	assert.Equal(t, 1200, c.TotalRows())

	assert.Equal(t, 200, c.LoadMore(100))

	// Oversized step is capped at the total row count.
	assert.Equal(t, 1200, c.LoadMore(2000))
}

func TestWindowController_ShowAll(t *testing.T) {
	d := windowDataset(t, 1200)
	c := NewWindowController(d, nil, domain.EditorSettings{})

	require.NoError(t, c.Begin())
	require.Equal(t, driving.RenderVirtualized, c.State())

	require.NoError(t, c.ShowAll())
	assert.Equal(t, driving.RenderRendering, c.State())

	runToCompletion(t, c)
	assert.Equal(t, driving.RenderIdle, c.State())
	assert.Equal(t, 1200, c.VisibleCount())
}

func TestWindowController_InvalidateRowOnly(t *testing.T) {
	d := windowDataset(t, 10)
	r := newCountingRenderer()
	c := NewWindowController(d, r.render, domain.EditorSettings{})

	require.NoError(t, c.Begin())
	runToCompletion(t, c)
	require.Equal(t, 1, r.calls[3])

	require.NoError(t, d.UpdateCell(3, "a", "edited"))
	c.InvalidateRow(3)

	// Only the edited row is re-materialized.
	assert.Equal(t, 2, r.calls[3])
	assert.Equal(t, 1, r.calls[2])
	assert.Equal(t, "edited|x", c.VisibleLines()[3])
	assert.Equal(t, "v2|x", c.VisibleLines()[2])
}

func TestWindowController_InvalidateRow_OutOfWindow(t *testing.T) {
	d := windowDataset(t, 1200)
	c := NewWindowController(d, nil, domain.EditorSettings{})
	require.NoError(t, c.Begin())

	// Rows beyond the window have no materialized line to refresh.
	c.InvalidateRow(500)
	c.InvalidateRow(-1)
	assert.Equal(t, 100, c.VisibleCount())
}

func TestWindowController_RefreshAfterDelete(t *testing.T) {
	d := windowDataset(t, 10)
	c := NewWindowController(d, nil, domain.EditorSettings{})
	require.NoError(t, c.Begin())
	runToCompletion(t, c)

	d.DeleteRows([]int{0})
	c.Refresh()

	require.Equal(t, 9, c.VisibleCount())
	assert.Equal(t, "v1\tx", c.VisibleLines()[0])
}

func TestWindowController_RefreshAfterInsert(t *testing.T) {
	d := windowDataset(t, 10)
	c := NewWindowController(d, nil, domain.EditorSettings{})
	require.NoError(t, c.Begin())
	runToCompletion(t, c)

	d.InsertRow()
	c.Refresh()

	require.Equal(t, 11, c.VisibleCount())
	assert.Equal(t, "\t", c.VisibleLines()[10])
}
