package file

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

func TestEditorSettings_DefaultsWhenUnset(t *testing.T) {
	store := newStore(t)

	settings := EditorSettings(store)

	assert.Equal(t, domain.DefaultEditorSettings(), settings)
}

func TestEditorSettings_NilStore(t *testing.T) {
	assert.Equal(t, domain.DefaultEditorSettings(), EditorSettings(nil))
}

func TestEditorSettings_OverridesApply(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Set(KeyCopyThreshold, 2500))
	require.NoError(t, store.Set(KeyChunkSize, 50))
	require.NoError(t, store.Set(KeyRangeTimeoutMS, 5000))

	settings := EditorSettings(store)

	assert.Equal(t, 2500, settings.CopyThreshold)
	assert.Equal(t, 50, settings.ChunkSize)
	assert.Equal(t, 5*time.Second, settings.RangeTimeout)
	// Untouched fields keep defaults.
	assert.Equal(t, domain.DefaultEditorSettings().WindowSize, settings.WindowSize)
	assert.Equal(t, domain.DefaultEditorSettings().RenderTimeout, settings.RenderTimeout)
}
