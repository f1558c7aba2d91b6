package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsWriteToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0600))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(path))
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,3\n"), 0600))

	select {
	case event := <-w.Events():
		abs, err := filepath.Abs(path)
		require.NoError(t, err)
		got, err := filepath.Abs(event.Path)
		require.NoError(t, err)
		assert.Equal(t, abs, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change event")
	}
}

func TestWatcher_IgnoresUnwatchedSiblings(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "data.csv")
	sibling := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(watched, []byte("a\n"), 0600))

	w, err := NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(watched))
	require.NoError(t, os.WriteFile(sibling, []byte("b\n"), 0600))

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event for %s", event.Path)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_CloseClosesEvents(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close()) // idempotent

	select {
	case _, ok := <-w.Events():
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("events channel not closed")
	}
}

func TestWatcher_WatchAfterClose(t *testing.T) {
	w, err := NewWatcher()
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "x.csv")))
}
