package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, theme.Primary)
	assert.NotEmpty(t, theme.Error)
}

func TestNewStyles_NilThemeFallsBack(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s)
	assert.NotNil(t, s.Theme())
}

func TestNewStyles_UsesTheme(t *testing.T) {
	theme := &Theme{Primary: lipgloss.Color("#FF0000")}
	s := NewStyles(theme)

	assert.Equal(t, theme, s.Theme())
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()

	require.NotNil(t, s)
	// Rendering should not panic and should return the input text.
	out := s.Title.Render("hello")
	assert.Contains(t, out, "hello")
}

func TestAnnotated_UsesPaletteColour(t *testing.T) {
	s := DefaultStyles()

	style := s.Annotated("#F38BA8")
	out := style.Render("42.0")
	assert.Contains(t, out, "42.0")
}
