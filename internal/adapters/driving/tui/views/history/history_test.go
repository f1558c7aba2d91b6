package history

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
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/services"
)

// newTestView builds a history view over a session whose store holds
// the given records.
func newTestView(t *testing.T, records ...domain.ModificationRecord) *View {
	t.Helper()

	content := memory.NewContentStore()
	content.AddFile(
		domain.DataFile{ID: "file-1", Name: "data.csv", Size: 32, CreatedAt: time.Now()},
		[]string{"a"},
		[]domain.Row{{"1"}},
	)

	mods := memory.NewModificationStore()
	for _, rec := range records {
		require.NoError(t, mods.Append(context.Background(), &rec))
	}

	session := services.NewSession(content, nil,
		memory.NewAnnotationStore(), mods,
		domain.EditorSettings{}, nil)
	require.NoError(t, session.Open(context.Background(), "file-1"))

	return NewView(nil, session.Audit(), "file-1")
}

// load runs the view's Init command and applies the result.
func load(v *View) {
	cmd := v.Init()
	if cmd == nil {
		return
	}
	v.Update(cmd())
}

func record(id, details string) domain.ModificationRecord {
	return domain.ModificationRecord{
		ID:                id,
		FileID:            "file-1",
		Reason:            domain.ReasonOutlierRemoval,
		Details:           details,
		FingerprintBefore: "sha256:aaaa",
		FingerprintAfter:  "sha256:bbbb",
		Author:            domain.Actor{ID: "u-1", DisplayName: "Dana"},
		CreatedAt:         time.Now(),
	}
}

func TestView_EmptyHistory(t *testing.T) {
	v := newTestView(t)
	load(v)

	assert.Contains(t, v.View(), "No modifications recorded")
	assert.NoError(t, v.Err())
}

func TestView_ListsRecords(t *testing.T) {
	v := newTestView(t, record("m-1", "sensor glitch"))
	load(v)

	require.Len(t, v.Records(), 1)
	out := v.View()
	assert.Contains(t, out, "outlier_removal")
	assert.Contains(t, out, "Dana")
}

func TestView_SelectedRecordShowsFingerprints(t *testing.T) {
	v := newTestView(t, record("m-1", "sensor glitch"))
	load(v)

	out := v.View()
	assert.Contains(t, out, "sensor glitch")
	assert.Contains(t, out, "sha256:aaaa -> sha256:bbbb")
}

func TestView_Navigation(t *testing.T) {
	v := newTestView(t, record("m-1", ""), record("m-2", ""))
	load(v)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, v.selected)

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.selected)
}

func TestView_EscReturnsToEditor(t *testing.T) {
	v := newTestView(t)
	load(v)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewEditor}, cmd())
}

func TestView_LoadError(t *testing.T) {
	v := newTestView(t)

	v.Update(messages.HistoryLoaded{Err: assert.AnError})

	assert.Error(t, v.Err())
	assert.Contains(t, v.View(), assert.AnError.Error())
}
