// Package editor provides the main table editing view for the TUI.
package editor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/components/input"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/components/status"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/keymap"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/messages"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/styles"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

// promptMode says what an open prompt is collecting.
type promptMode int

const (
	promptNone promptMode = iota
	promptEditCell
	promptAnnotate
	promptRange
)

const (
	// cellWidth is the fixed display width of one column.
	cellWidth = 16

	// loadMoreStep is how many rows a virtualized window grows by.
	loadMoreStep = 100
)

// View is the table editing view. It renders a bounded window of the
// working table and drives selection, cell edits and annotations.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	prompt    *input.Prompt
	statusbar *status.Bar

	session driving.EditorSession
	ctx     context.Context

	// cursor is the row under the cursor, a working table position.
	cursor int

	// column is the column cursor, an index into Columns().
	column int

	// offset is the first visible table row on screen.
	offset int

	mode promptMode
	err  error

	width  int
	height int
}

// NewView creates the editor view.
func NewView(s *styles.Styles, km *keymap.KeyMap, session driving.EditorSession) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		prompt:    input.NewPrompt(s, "Value", ""),
		statusbar: status.NewBar(s, km),
		session:   session,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init starts materialization of the open dataset.
func (v *View) Init() tea.Cmd {
	if err := v.session.Window().Begin(); err != nil {
		return func() tea.Msg { return messages.ErrorOccurred{Err: err} }
	}
	if v.session.Window().Busy() {
		v.statusbar.SetState(status.StateRendering)
		return v.stepRender()
	}
	return nil
}

// Update handles messages for the editor view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.RenderStepped:
		if msg.Err != nil {
			v.setError(msg.Err)
			return v, nil
		}
		if !msg.Done {
			return v, v.stepRender()
		}
		v.statusbar.SetState(status.StateReady)
		return v, nil

	case messages.RangeStepped:
		if msg.Err != nil {
			// A broken step chain must not leave the engine busy.
			v.session.AbortRange()
			v.setError(msg.Err)
			return v, nil
		}
		if !msg.Done {
			return v, v.stepRange()
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage(fmt.Sprintf("%d rows selected", v.session.SelectionSize()))
		return v, nil

	case messages.AnnotationSaved:
		if msg.Warning != nil {
			v.statusbar.SetState(status.StateReady)
			v.statusbar.SetMessage("annotation saved locally; persistence failed")
			return v, nil
		}
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("annotated")
		return v, nil

	case messages.ExternalChange:
		return v, v.checkExternal()

	case messages.ExternalVerified:
		switch {
		case msg.Err != nil:
			v.statusbar.SetMessage("file changed on disk")
		case msg.Match:
			v.statusbar.SetMessage("file touched on disk; content unchanged")
		default:
			v.statusbar.SetMessage("modified outside the editor")
		}
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	return v, nil
}

// handleKeyMsg processes keyboard input.
//
//nolint:gocognit,gocyclo // central key dispatch requires complexity
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.mode != promptNone {
		return v.handlePromptKey(msg)
	}

	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, func() tea.Msg { return messages.Quit{} }

	case keymap.Matches(keyStr, v.keymap.Help):
		return v, changeView(messages.ViewHelp)

	case keymap.Matches(keyStr, v.keymap.History):
		return v, changeView(messages.ViewHistory)

	case keymap.Matches(keyStr, v.keymap.Back):
		v.session.ClearSelection()
		v.err = nil
		v.statusbar.SetState(status.StateReady)
		v.statusbar.SetMessage("")
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Up):
		v.moveCursor(-1)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		v.moveCursor(1)
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Left):
		if v.column > 0 {
			v.column--
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Right):
		if v.column < len(v.session.Columns())-1 {
			v.column++
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Toggle):
		if err := v.session.Toggle(v.cursor); err != nil {
			v.setError(err)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.SelectAll):
		if err := v.session.SelectAll(); err != nil {
			v.setError(err)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Range):
		return v, v.openPrompt(promptRange, "Rows", "start-end, e.g. 10-500")

	case keymap.Matches(keyStr, v.keymap.Edit):
		col, ok := v.currentColumn()
		if !ok {
			return v, nil
		}
		row, err := v.session.Row(v.cursor)
		if err != nil {
			v.setError(err)
			return v, nil
		}
		cmd := v.openPrompt(promptEditCell, col, "")
		if v.column < len(row) {
			v.prompt.SetValue(row[v.column])
		}
		return v, cmd

	case keymap.Matches(keyStr, v.keymap.Annotate):
		col, ok := v.currentColumn()
		if !ok {
			return v, nil
		}
		cmd := v.openPrompt(promptAnnotate, "Note "+col, "why this value changed")
		if a, found := v.session.Annotations().Get(v.cursor, col); found {
			v.prompt.SetValue(a.Explanation)
		}
		return v, cmd

	case keymap.Matches(keyStr, v.keymap.Insert):
		if err := v.session.InsertRow(); err != nil {
			v.setError(err)
			return v, nil
		}
		return v, v.rerender()

	case keymap.Matches(keyStr, v.keymap.Delete):
		if v.session.SelectionSize() == 0 {
			v.statusbar.SetMessage("no rows selected")
			return v, nil
		}
		if err := v.session.DeleteSelected(); err != nil {
			v.setError(err)
			return v, nil
		}
		v.clampCursor()
		return v, v.rerender()

	case keymap.Matches(keyStr, v.keymap.Discard):
		if err := v.session.Discard(); err != nil {
			v.setError(err)
			return v, nil
		}
		v.statusbar.SetMessage("changes discarded")
		return v, v.rerender()

	case keymap.Matches(keyStr, v.keymap.LoadMore):
		if v.session.Window().State() == driving.RenderVirtualized {
			v.session.Window().LoadMore(loadMoreStep)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ShowAll):
		if v.session.Window().State() != driving.RenderVirtualized {
			return v, nil
		}
		if err := v.session.Window().ShowAll(); err != nil {
			v.setError(err)
			return v, nil
		}
		v.statusbar.SetState(status.StateRendering)
		return v, v.stepRender()

	case keymap.Matches(keyStr, v.keymap.Apply):
		if !v.session.Dirty() {
			v.statusbar.SetMessage("nothing to apply")
			return v, nil
		}
		if err := v.session.Audit().BeginApply(); err != nil {
			v.setError(err)
			return v, nil
		}
		return v, changeView(messages.ViewReason)
	}

	return v, nil
}

// handlePromptKey processes keyboard input while a prompt is open.
func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.closePrompt()
		return v, nil

	case tea.KeyEnter:
		mode, value := v.mode, strings.TrimSpace(v.prompt.Value())
		v.closePrompt()
		return v, v.commitPrompt(mode, value)
	}

	var cmd tea.Cmd
	v.prompt, cmd = v.prompt.Update(msg)
	return v, cmd
}

// commitPrompt applies a completed prompt entry.
func (v *View) commitPrompt(mode promptMode, value string) tea.Cmd {
	switch mode {
	case promptEditCell:
		col, ok := v.currentColumn()
		if !ok {
			return nil
		}
		if err := v.session.UpdateCell(v.cursor, col, value); err != nil {
			v.setError(err)
			return nil
		}
		v.session.Window().InvalidateRow(v.cursor)
		return nil

	case promptAnnotate:
		if value == "" {
			return nil
		}
		col, ok := v.currentColumn()
		if !ok {
			return nil
		}
		pos := v.cursor
		return func() tea.Msg {
			a, err := v.session.Annotations().Set(v.ctx, pos, col, value)
			if a != nil {
				return messages.AnnotationSaved{Annotation: a, Warning: err}
			}
			return messages.ErrorOccurred{Err: err}
		}

	case promptRange:
		start, end, err := parseRange(value)
		if err != nil {
			v.setError(err)
			return nil
		}
		if err := v.session.ApplyRange(start, end); err != nil {
			v.setError(err)
			return nil
		}
		if v.session.RangeBusy() {
			v.statusbar.SetState(status.StateApplying)
			return v.stepRange()
		}
		v.statusbar.SetMessage(fmt.Sprintf("%d rows selected", v.session.SelectionSize()))
		return nil
	}
	return nil
}

// View renders the editor.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	b.WriteString(v.renderRows())

	if v.session.Window().State() == driving.RenderVirtualized {
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf(
			"showing %d of %d rows (m: more, M: all)",
			v.session.Window().VisibleCount(), v.session.RowCount(),
		)))
		b.WriteString("\n")
	}

	if v.mode != promptNone {
		b.WriteString(v.prompt.View())
		b.WriteString("\n")
	}
	if v.err != nil {
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	v.syncStatus()
	b.WriteString(v.statusbar.View())

	return b.String()
}

// renderHeader renders the file line and the column header row.
func (v *View) renderHeader() string {
	var b strings.Builder

	if f := v.session.File(); f != nil {
		b.WriteString(v.styles.Title.Render(f.Name))
		b.WriteString("  ")
		b.WriteString(v.styles.Muted.Render(shortFingerprint(v.session.FingerprintBefore())))
		b.WriteString("\n")
	}

	cells := make([]string, 0, len(v.session.Columns())+1)
	cells = append(cells, pad("", 6))
	for i, col := range v.session.Columns() {
		cell := pad(col, cellWidth)
		if i == v.column {
			cells = append(cells, v.styles.Header.Render(cell))
		} else {
			cells = append(cells, v.styles.Subtitle.Render(cell))
		}
	}
	b.WriteString(strings.Join(cells, " "))
	return b.String()
}

// renderRows renders the visible slice of the working table.
func (v *View) renderRows() string {
	var b strings.Builder

	count := v.session.Window().VisibleCount()
	end := v.offset + v.pageSize()
	if end > count {
		end = count
	}

	for pos := v.offset; pos < end; pos++ {
		b.WriteString(v.renderRow(pos))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow renders one table row with selection and annotation marks.
func (v *View) renderRow(pos int) string {
	row, err := v.session.Row(pos)
	if err != nil {
		return v.styles.Error.Render(err.Error())
	}

	marker := "  "
	if v.session.IsSelected(pos) {
		marker = "* "
	}
	gutter := pad(fmt.Sprintf("%s%d", marker, pos+1), 6)
	if pos == v.cursor {
		gutter = v.styles.Cursor.Render(gutter)
	} else if v.session.IsSelected(pos) {
		gutter = v.styles.Selected.Render(gutter)
	} else {
		gutter = v.styles.Muted.Render(gutter)
	}

	cells := make([]string, 0, len(row)+1)
	cells = append(cells, gutter)
	for i, col := range v.session.Columns() {
		value := ""
		if i < len(row) {
			value = row[i]
		}
		cell := pad(value, cellWidth)
		if a, found := v.session.Annotations().Get(pos, col); found {
			cells = append(cells, v.styles.Annotated(a.Color).Render(cell))
		} else if pos == v.cursor && i == v.column {
			cells = append(cells, v.styles.Cursor.Render(cell))
		} else {
			cells = append(cells, v.styles.Normal.Render(cell))
		}
	}
	return strings.Join(cells, " ")
}

// syncStatus pushes session counters into the status bar.
func (v *View) syncStatus() {
	v.statusbar.SetCounts(v.session.Window().VisibleCount(), v.session.RowCount())
	v.statusbar.SetSelection(v.session.SelectionSize())
	v.statusbar.SetDiff(v.session.Dirty(), v.session.DiffSummary())
}

// SetDimensions updates the view's dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.prompt.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.clampCursor()
}

// Err returns the last error shown by the view.
func (v *View) Err() error {
	return v.err
}

// Cursor returns the cursor's working table position.
func (v *View) Cursor() int {
	return v.cursor
}

func (v *View) openPrompt(mode promptMode, label, placeholder string) tea.Cmd {
	v.mode = mode
	v.prompt.Reset()
	v.prompt.SetLabel(label, placeholder)
	return v.prompt.Focus()
}

func (v *View) closePrompt() {
	v.mode = promptNone
	v.prompt.Blur()
	v.prompt.Reset()
}

func (v *View) currentColumn() (string, bool) {
	cols := v.session.Columns()
	if v.column < 0 || v.column >= len(cols) {
		return "", false
	}
	return cols[v.column], true
}

func (v *View) moveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *View) clampCursor() {
	max := v.session.Window().VisibleCount() - 1
	if v.cursor > max {
		v.cursor = max
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	// Keep the cursor on screen.
	page := v.pageSize()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+page {
		v.offset = v.cursor - page + 1
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

// pageSize is how many table rows fit between header and status bar.
func (v *View) pageSize() int {
	size := v.height - 6
	if size < 1 {
		size = 1
	}
	return size
}

// rerender restarts materialization after a structural edit.
func (v *View) rerender() tea.Cmd {
	if err := v.session.Window().Begin(); err != nil {
		v.setError(err)
		return nil
	}
	if v.session.Window().Busy() {
		v.statusbar.SetState(status.StateRendering)
		return v.stepRender()
	}
	v.clampCursor()
	return nil
}

func (v *View) stepRender() tea.Cmd {
	return func() tea.Msg {
		done, err := v.session.Window().Step()
		return messages.RenderStepped{Done: done, Err: err}
	}
}

func (v *View) stepRange() tea.Cmd {
	return func() tea.Msg {
		done, err := v.session.StepRange()
		return messages.RangeStepped{Done: done, Err: err}
	}
}

func (v *View) checkExternal() tea.Cmd {
	return func() tea.Msg {
		match, err := v.session.CheckExternal(v.ctx)
		return messages.ExternalVerified{Match: match, Err: err}
	}
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(err.Error())
}

func changeView(view messages.ViewType) tea.Cmd {
	return func() tea.Msg {
		return messages.ViewChanged{View: view}
	}
}

// parseRange parses "start-end" or "start:end" one-based row bounds.
// A single number selects one row.
func parseRange(s string) (int, int, error) {
	sep := "-"
	if strings.Contains(s, ":") {
		sep = ":"
	}
	parts := strings.SplitN(s, sep, 2)

	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, domain.ErrInvalidRange
	}
	end := start
	if len(parts) == 2 {
		end, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return 0, 0, domain.ErrInvalidRange
		}
	}
	return start, end, nil
}

func pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func shortFingerprint(fp string) string {
	const max = 23
	if len(fp) > max {
		return fp[:max]
	}
	return fp
}
