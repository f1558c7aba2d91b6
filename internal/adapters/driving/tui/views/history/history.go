// Package history provides the modification history view.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/messages"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/styles"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

// View lists a file's modification records, newest first.
type View struct {
	styles *styles.Styles

	audit  driving.AuditTrail
	fileID string
	ctx    context.Context

	records []domain.ModificationRecord
	loading bool
	err     error

	selected int
	width    int
	height   int
}

// NewView creates the history view.
func NewView(s *styles.Styles, audit driving.AuditTrail, fileID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		audit:  audit,
		fileID: fileID,
		ctx:    context.Background(),
		width:  80,
		height: 24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the modification history.
func (v *View) Init() tea.Cmd {
	v.loading = true
	v.err = nil
	return func() tea.Msg {
		records, err := v.audit.Records(v.ctx, v.fileID)
		return messages.HistoryLoaded{Records: records, Err: err}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		v.records = msg.Records
		v.err = msg.Err
		v.selected = 0
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewEditor}
			}
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
		case "down", "j":
			if v.selected < len(v.records)-1 {
				v.selected++
			}
		}
		return v, nil
	}

	return v, nil
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Modification history"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
		b.WriteString("\n")

	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")

	case len(v.records) == 0:
		b.WriteString(v.styles.Muted.Render("No modifications recorded."))
		b.WriteString("\n")

	default:
		for i, rec := range v.records {
			b.WriteString(v.renderRecord(i, rec))
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("↑/↓: navigate | esc: back"))
	return b.String()
}

// renderRecord renders one audit entry.
func (v *View) renderRecord(i int, rec domain.ModificationRecord) string {
	var b strings.Builder

	head := fmt.Sprintf("%s  %s  %s",
		rec.CreatedAt.Format("2006-01-02 15:04"),
		rec.Reason,
		rec.Author.DisplayName,
	)
	if i == v.selected {
		b.WriteString(v.styles.Selected.Render("> " + head))
	} else {
		b.WriteString(v.styles.Normal.Render("  " + head))
	}
	b.WriteString("\n")

	if i == v.selected {
		if rec.Details != "" {
			b.WriteString(v.styles.Muted.Render("    " + rec.Details))
			b.WriteString("\n")
		}
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    %s -> %s",
			shorten(rec.FingerprintBefore), shorten(rec.FingerprintAfter))))
		b.WriteString("\n")
	}
	return b.String()
}

// SetDimensions updates the view's dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Records returns the loaded records.
func (v *View) Records() []domain.ModificationRecord {
	return v.records
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

func shorten(fp string) string {
	const max = 23
	if len(fp) > max {
		return fp[:max]
	}
	return fp
}
