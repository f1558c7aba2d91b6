package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/memory"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// failingAnnotationStore rejects every persist call.
type failingAnnotationStore struct {
	memory.AnnotationStore
	err error
}

func (s *failingAnnotationStore) Upsert(_ context.Context, _ *domain.Annotation) error {
	return s.err
}

func TestAnnotationLedger_SetAndGet(t *testing.T) {
	store := memory.NewAnnotationStore()
	identity := memory.NewIdentityService(domain.Actor{ID: "u1", DisplayName: "Dana", Email: "dana@example.com"})
	l := NewAnnotationLedger(store, identity, "file-1", 0)

	a, err := l.Set(context.Background(), 0, "x", "suspicious value")
	require.NoError(t, err)
	assert.Equal(t, "Dana", a.Author.DisplayName)
	assert.Equal(t, domain.PaletteColor(0), a.Color)
	assert.NotEmpty(t, a.ID)

	got, ok := l.Get(0, "x")
	require.True(t, ok)
	assert.Equal(t, "suspicious value", got.Explanation)

	_, ok = l.Get(0, "y")
	assert.False(t, ok)
}

func TestAnnotationLedger_ColorStableAcrossOverwrite(t *testing.T) {
	l := NewAnnotationLedger(memory.NewAnnotationStore(), nil, "file-1", 0)
	ctx := context.Background()

	first, err := l.Set(ctx, 0, "x", "first explanation")
	require.NoError(t, err)

	// A second cell takes the next palette colour.
	second, err := l.Set(ctx, 1, "x", "second cell")
	require.NoError(t, err)
	assert.NotEqual(t, first.Color, second.Color)

	// Re-annotating overwrites text but keeps the original colour.
	updated, err := l.Set(ctx, 0, "x", "revised explanation")
	require.NoError(t, err)
	assert.Equal(t, first.Color, updated.Color)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "revised explanation", updated.Explanation)
	assert.Equal(t, 2, l.Count())
}

func TestAnnotationLedger_EmptyExplanationRejected(t *testing.T) {
	l := NewAnnotationLedger(memory.NewAnnotationStore(), nil, "file-1", 0)

	_, err := l.Set(context.Background(), 0, "x", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyExplanation)
	assert.Equal(t, 0, l.Count())
}

func TestAnnotationLedger_LocalFirstOnPersistFailure(t *testing.T) {
	store := &failingAnnotationStore{err: errors.New("service unreachable")}
	l := NewAnnotationLedger(store, nil, "file-1", 0)

	a, err := l.Set(context.Background(), 2, "b", "kept locally")

	// The failure is reported but the in-memory annotation stands.
	require.Error(t, err)
	require.NotNil(t, a)
	got, ok := l.Get(2, "b")
	assert.True(t, ok)
	assert.Equal(t, "kept locally", got.Explanation)
}

func TestAnnotationLedger_AnonymousOnIdentityFailure(t *testing.T) {
	identity := memory.NewIdentityService(domain.Actor{ID: "u1", DisplayName: "Dana"})
	identity.Fail(errors.New("identity service down"))
	l := NewAnnotationLedger(memory.NewAnnotationStore(), identity, "file-1", 0)

	a, err := l.Set(context.Background(), 0, "x", "still works")
	require.NoError(t, err)
	assert.Equal(t, domain.AnonymousName, a.Author.DisplayName)
}

func TestAnnotationLedger_LoadAllReplaces(t *testing.T) {
	store := memory.NewAnnotationStore()
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, &domain.Annotation{
		ID: "ann-1", FileID: "file-2", Row: 5, Column: "c",
		Explanation: "persisted", Color: domain.PaletteColor(0),
	}))

	l := NewAnnotationLedger(store, nil, "file-1", 0)
	_, err := l.Set(ctx, 0, "x", "local note")
	require.NoError(t, err)
	require.Equal(t, 1, l.Count())

	// Loading another file replaces, not merges.
	require.NoError(t, l.LoadAll(ctx, "file-2"))
	assert.Equal(t, 1, l.Count())
	got, ok := l.Get(5, "c")
	require.True(t, ok)
	assert.Equal(t, "persisted", got.Explanation)
	_, ok = l.Get(0, "x")
	assert.False(t, ok)
}

func TestAnnotationLedger_AllSorted(t *testing.T) {
	l := NewAnnotationLedger(memory.NewAnnotationStore(), nil, "file-1", 0)
	ctx := context.Background()

	for _, cell := range []struct {
		row int
		col string
	}{{3, "b"}, {0, "z"}, {3, "a"}, {0, "a"}} {
		_, err := l.Set(ctx, cell.row, cell.col, "note")
		require.NoError(t, err)
	}

	all := l.All()
	require.Len(t, all, 4)
	assert.Equal(t, 0, all[0].Row)
	assert.Equal(t, "a", all[0].Column)
	assert.Equal(t, "z", all[1].Column)
	assert.Equal(t, 3, all[2].Row)
	assert.Equal(t, "a", all[2].Column)
}
