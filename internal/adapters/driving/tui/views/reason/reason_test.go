package reason

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/memory"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/messages"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/services"
)

// newTestView builds a reason view over a session with one pending
// edit already in the reason-required state.
func newTestView(t *testing.T) (*View, driving.EditorSession) {
	t.Helper()

	content := memory.NewContentStore()
	content.AddFile(
		domain.DataFile{ID: "file-1", Name: "data.csv", Size: 32, CreatedAt: time.Now()},
		[]string{"a", "b"},
		[]domain.Row{{"1", "2"}, {"3", "4"}},
	)

	session := services.NewSession(
		content,
		memory.NewIdentityService(domain.Actor{ID: "u-1", DisplayName: "Dana"}),
		memory.NewAnnotationStore(),
		memory.NewModificationStore(),
		domain.EditorSettings{},
		nil,
	)
	require.NoError(t, session.Open(context.Background(), "file-1"))
	require.NoError(t, session.UpdateCell(0, "a", "99"))
	require.NoError(t, session.Audit().BeginApply())

	v := NewView(nil, session.Audit())
	v.Reset()
	return v, session
}

// press sends one key and feeds any resulting message back.
func press(v *View, msg tea.KeyMsg) {
	next, cmd := v.Update(msg)
	for cmd != nil {
		m := cmd()
		if m == nil {
			return
		}
		next, cmd = next.Update(m)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_ListsAllReasonCodes(t *testing.T) {
	v, _ := newTestView(t)

	out := v.View()
	for _, code := range domain.ReasonCodes() {
		assert.Contains(t, out, code.Description())
	}
}

func TestView_Navigation(t *testing.T) {
	v, _ := newTestView(t)

	press(v, tea.KeyMsg{Type: tea.KeyDown})
	press(v, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, v.selected)

	press(v, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, v.selected)
}

func TestView_SubmitWithFirstCode(t *testing.T) {
	v, session := newTestView(t)

	press(v, tea.KeyMsg{Type: tea.KeyEnter}) // pick data_correction
	press(v, tea.KeyMsg{Type: tea.KeyEnter}) // submit with empty details

	assert.True(t, v.Committed())
	assert.Equal(t, domain.StateCommitted, session.Audit().State())
	assert.False(t, session.Dirty())
}

func TestView_SubmitRecordsDetails(t *testing.T) {
	v, session := newTestView(t)

	press(v, tea.KeyMsg{Type: tea.KeyDown}) // outlier_removal
	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	press(v, runes("sensor glitch at 14:02"))
	press(v, tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, v.Committed())
	records, err := session.Audit().Records(context.Background(), "file-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.ReasonOutlierRemoval, records[0].Reason)
	assert.Equal(t, "sensor glitch at 14:02", records[0].Details)
}

func TestView_OtherRequiresDetails(t *testing.T) {
	v, _ := newTestView(t)

	// "other" is the last code in the list.
	for range len(domain.ReasonCodes()) - 1 {
		press(v, tea.KeyMsg{Type: tea.KeyDown})
	}
	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	press(v, tea.KeyMsg{Type: tea.KeyEnter}) // empty details

	assert.ErrorIs(t, v.Err(), domain.ErrDetailsRequired)
	assert.False(t, v.Committed())
}

func TestView_OtherWithDetailsSucceeds(t *testing.T) {
	v, _ := newTestView(t)

	for range len(domain.ReasonCodes()) - 1 {
		press(v, tea.KeyMsg{Type: tea.KeyDown})
	}
	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	press(v, runes("one-off correction"))
	press(v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, v.Committed())
}

func TestView_EscReturnsToEditor(t *testing.T) {
	v, _ := newTestView(t)

	next, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_ = next

	assert.Equal(t, messages.ViewChanged{View: messages.ViewEditor}, cmd())
}

func TestView_FailedSubmitAllowsRetry(t *testing.T) {
	content := memory.NewContentStore()
	content.AddFile(
		domain.DataFile{ID: "file-1", Name: "data.csv", Size: 32, CreatedAt: time.Now()},
		[]string{"a"},
		[]domain.Row{{"1"}},
	)
	content.FailPuts(assert.AnError)

	session := services.NewSession(content, nil,
		memory.NewAnnotationStore(), memory.NewModificationStore(),
		domain.EditorSettings{}, nil)
	require.NoError(t, session.Open(context.Background(), "file-1"))
	require.NoError(t, session.UpdateCell(0, "a", "2"))
	require.NoError(t, session.Audit().BeginApply())

	v := NewView(nil, session.Audit())
	v.Reset()

	press(v, tea.KeyMsg{Type: tea.KeyEnter})
	press(v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, v.Committed())
	assert.Error(t, v.Err())
	assert.Equal(t, domain.StateFailed, session.Audit().State())

	// Resubmitting from the details prompt re-confirms the reason and
	// retries; the second attempt succeeds once puts work again.
	content.FailPuts(nil)
	press(v, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, v.Committed())
	assert.Equal(t, domain.StateCommitted, session.Audit().State())
}
