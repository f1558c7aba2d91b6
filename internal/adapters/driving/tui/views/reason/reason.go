// Package reason provides the apply flow's reason selection view.
package reason

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/components/input"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/messages"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/styles"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

// phase tracks where the user is in the apply flow.
type phase int

const (
	phasePickCode phase = iota
	phaseDetails
	phaseSubmitting
	phaseDone
)

// View walks a pending modification through reason selection, details
// entry and submission.
type View struct {
	styles  *styles.Styles
	details *input.Prompt

	audit driving.AuditTrail
	ctx   context.Context

	codes    []domain.ReasonCode
	selected int
	phase    phase
	err      error

	width  int
	height int
}

// NewView creates the reason view.
func NewView(s *styles.Styles, audit driving.AuditTrail) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		details: input.NewPrompt(s, "Details", "optional free text"),
		audit:   audit,
		ctx:     context.Background(),
		codes:   domain.ReasonCodes(),
		width:   80,
		height:  24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Reset returns the view to reason selection for a fresh apply.
func (v *View) Reset() {
	v.phase = phasePickCode
	v.selected = 0
	v.err = nil
	v.details.Reset()
	v.details.Blur()
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the reason view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.ApplyCompleted:
		if msg.Err != nil {
			// Enter re-confirms the reason, which moves the flow out
			// of FAILED and retries.
			v.phase = phaseDetails
			v.err = msg.Err
			return v, v.details.Focus()
		}
		v.phase = phaseDone
		v.err = nil
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.Type == tea.KeyEsc && v.phase != phaseSubmitting {
		return v, backToEditor()
	}

	switch v.phase {
	case phasePickCode:
		return v.handlePickKey(msg)

	case phaseDetails:
		if msg.Type == tea.KeyEnter {
			return v.submit()
		}
		var cmd tea.Cmd
		v.details, cmd = v.details.Update(msg)
		return v, cmd

	case phaseSubmitting:
		return v, nil

	case phaseDone:
		if msg.Type == tea.KeyEnter {
			return v, backToEditor()
		}
	}
	return v, nil
}

// handlePickKey navigates the reason code list.
func (v *View) handlePickKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.codes)-1 {
			v.selected++
		}
	case "enter":
		v.phase = phaseDetails
		v.err = nil
		if v.codes[v.selected].RequiresDetails() {
			v.details.SetLabel("Details", "required for \"other\"")
		} else {
			v.details.SetLabel("Details", "optional free text")
		}
		return v, v.details.Focus()
	}
	return v, nil
}

// submit records the reason and hands the package to the content
// service.
func (v *View) submit() (*View, tea.Cmd) {
	code := v.codes[v.selected]
	details := strings.TrimSpace(v.details.Value())

	if err := v.audit.SetReason(code, details); err != nil {
		v.err = err
		return v, nil
	}

	v.phase = phaseSubmitting
	v.err = nil
	v.details.Blur()
	return v, func() tea.Msg {
		return messages.ApplyCompleted{Err: v.audit.Submit(v.ctx)}
	}
}

// View renders the reason view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Apply changes"))
	b.WriteString("\n\n")

	switch v.phase {
	case phaseSubmitting:
		b.WriteString(v.styles.Warning.Render("Submitting..."))
		b.WriteString("\n")

	case phaseDone:
		b.WriteString(v.styles.Success.Render("Changes committed."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Muted.Render("enter: back to editor"))
		b.WriteString("\n")

	default:
		b.WriteString(v.styles.Subtitle.Render("Why was this data modified?"))
		b.WriteString("\n\n")
		for i, code := range v.codes {
			line := fmt.Sprintf("  %s", code.Description())
			if i == v.selected {
				line = v.styles.Selected.Render("> " + code.Description())
			} else {
				line = v.styles.Normal.Render(line)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if v.phase == phaseDetails {
			b.WriteString(v.details.View())
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render("enter: submit | esc: cancel"))
		} else {
			b.WriteString(v.styles.Muted.Render("↑/↓: choose | enter: next | esc: cancel"))
		}
		b.WriteString("\n")
	}

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	return b.String()
}

// SetDimensions updates the view's dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.details.SetWidth(width)
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// Committed reports whether the apply flow finished successfully.
func (v *View) Committed() bool {
	return v.phase == phaseDone
}

func backToEditor() tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: messages.ViewEditor}
	}
}
