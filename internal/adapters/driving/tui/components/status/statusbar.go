// Package status provides the status bar for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/keymap"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/styles"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateRendering State = "rendering"
	StateApplying  State = "applying"
	StateCommitted State = "committed"
	StateError     State = "error"
)

// Bar displays session state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string

	diff      domain.DiffSummary
	dirty     bool
	selection int
	visible   int
	total     int
	width     int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the session summary and state message.
func (b *Bar) renderLeft() string {
	parts := []string{fmt.Sprintf("%d/%d rows", b.visible, b.total)}
	if b.selection > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", b.selection))
	}
	if b.dirty {
		parts = append(parts, fmt.Sprintf("%d modified, %d added, %d deleted",
			b.diff.ModifiedRows, b.diff.AddedRows, b.diff.DeletedRows))
	}
	summary := b.styles.Normal.Render(strings.Join(parts, " | "))

	switch b.state {
	case StateRendering:
		return summary + " " + b.styles.Muted.Render("rendering...")
	case StateApplying:
		return summary + " " + b.styles.Warning.Render("applying...")
	case StateCommitted:
		return summary + " " + b.styles.Success.Render("committed")
	case StateError:
		if b.message != "" {
			return summary + " " + b.styles.Error.Render("Error: "+b.message)
		}
		return summary + " " + b.styles.Error.Render("Error")
	case StateReady:
		if b.message != "" {
			return summary + " " + b.styles.Muted.Render(b.message)
		}
	}
	return summary
}

// renderRight renders keybinding hints.
func (b *Bar) renderRight() string {
	var bindings []key.Binding
	if b.dirty {
		bindings = b.keymap.EditorHelp()
	} else {
		bindings = b.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, bnd := range bindings {
		h := bnd.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the state message.
func (b *Bar) SetMessage(msg string) {
	b.message = msg
}

// SetCounts sets the visible and total row counts.
func (b *Bar) SetCounts(visible, total int) {
	b.visible = visible
	b.total = total
}

// SetSelection sets the selected row count.
func (b *Bar) SetSelection(n int) {
	b.selection = n
}

// SetDiff sets the pending edit summary.
func (b *Bar) SetDiff(dirty bool, diff domain.DiffSummary) {
	b.dirty = dirty
	b.diff = diff
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
