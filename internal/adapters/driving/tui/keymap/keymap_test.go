package keymap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_QuitBinding(t *testing.T) {
	km := DefaultKeyMap()

	keys := km.Quit.Keys()
	assert.Contains(t, keys, "q")
	assert.Contains(t, keys, "ctrl+c")
}

func TestDefaultKeyMap_ToggleBinding(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Toggle.Keys(), " ")
}

func TestDefaultKeyMap_SelectionBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.SelectAll.Keys(), "a")
	assert.Contains(t, km.Range.Keys(), "r")
	assert.Contains(t, km.Delete.Keys(), "d")
}

func TestDefaultKeyMap_EditBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.Edit.Keys(), "e")
	assert.Contains(t, km.Insert.Keys(), "o")
	assert.Contains(t, km.Annotate.Keys(), "n")
	assert.Contains(t, km.Apply.Keys(), "enter")
}

func TestDefaultKeyMap_WindowBindings(t *testing.T) {
	km := DefaultKeyMap()

	assert.Contains(t, km.LoadMore.Keys(), "m")
	assert.Contains(t, km.ShowAll.Keys(), "M")
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.False(t, Matches("x", km.Quit))
}

func TestShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.ShortHelp())
}

func TestEditorHelp(t *testing.T) {
	km := DefaultKeyMap()

	assert.NotEmpty(t, km.EditorHelp())
}

func TestFullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()
	require.NotEmpty(t, groups)
	for _, group := range groups {
		assert.NotEmpty(t, group)
	}
}
