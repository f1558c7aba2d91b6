package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrompt(t *testing.T) {
	p := NewPrompt(nil, "Value", "type here")

	require.NotNil(t, p)
	assert.Empty(t, p.Value())
	assert.False(t, p.Focused())
}

func TestPrompt_SetValue(t *testing.T) {
	p := NewPrompt(nil, "Value", "")

	p.SetValue("42.0")

	assert.Equal(t, "42.0", p.Value())
}

func TestPrompt_FocusBlur(t *testing.T) {
	p := NewPrompt(nil, "Value", "")

	p.Focus()
	assert.True(t, p.Focused())

	p.Blur()
	assert.False(t, p.Focused())
}

func TestPrompt_Update_TypesRunes(t *testing.T) {
	p := NewPrompt(nil, "Value", "")
	p.Focus()

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc")})

	assert.Equal(t, "abc", p.Value())
}

func TestPrompt_Reset(t *testing.T) {
	p := NewPrompt(nil, "Value", "")
	p.SetValue("something")

	p.Reset()

	assert.Empty(t, p.Value())
}

func TestPrompt_View_ContainsLabel(t *testing.T) {
	p := NewPrompt(nil, "Rows", "start-end")

	assert.Contains(t, p.View(), "Rows")
}

func TestPrompt_SetLabel(t *testing.T) {
	p := NewPrompt(nil, "Value", "")

	p.SetLabel("Details", "optional")

	assert.Contains(t, p.View(), "Details")
}

func TestPrompt_SetWidth_Minimum(t *testing.T) {
	p := NewPrompt(nil, "Value", "")

	// Very narrow widths must not produce a negative input width.
	p.SetWidth(5)

	assert.NotPanics(t, func() { _ = p.View() })
}
