package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

func TestNewBar(t *testing.T) {
	b := NewBar(nil, nil)

	require.NotNil(t, b)
	assert.Equal(t, StateReady, b.State())
}

func TestBar_View_ShowsCounts(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)
	b.SetCounts(100, 5000)

	assert.Contains(t, b.View(), "100/5000 rows")
}

func TestBar_View_ShowsSelection(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)
	b.SetCounts(10, 10)
	b.SetSelection(3)

	assert.Contains(t, b.View(), "3 selected")
}

func TestBar_View_ShowsDiff(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(160)
	b.SetCounts(10, 10)
	b.SetDiff(true, domain.DiffSummary{ModifiedRows: 2, DeletedRows: 1})

	out := b.View()
	assert.Contains(t, out, "2 modified")
	assert.Contains(t, out, "1 deleted")
}

func TestBar_View_ErrorState(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)
	b.SetState(StateError)
	b.SetMessage("boom")

	assert.Contains(t, b.View(), "boom")
}

func TestBar_View_CommittedState(t *testing.T) {
	b := NewBar(nil, nil)
	b.SetWidth(120)
	b.SetState(StateCommitted)

	assert.Contains(t, b.View(), "committed")
}

func TestBar_StateTransitions(t *testing.T) {
	b := NewBar(nil, nil)

	b.SetState(StateRendering)
	assert.Equal(t, StateRendering, b.State())

	b.SetState(StateApplying)
	assert.Equal(t, StateApplying, b.State())
}
