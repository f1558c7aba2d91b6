package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/keymap"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/messages"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/styles"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/views/editor"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/views/history"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/views/reason"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// fileID is the file opened by this editor instance.
	fileID string

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// editorView is the table editing view component.
	editorView *editor.View

	// reasonView is the apply flow view component.
	reasonView *reason.View

	// historyView is the modification history view component.
	historyView *history.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// opened reports whether the file loaded successfully.
	opened bool

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application editing one file. Invalid ports
// surface as an error screen on the first frame rather than a
// constructor failure; the CLI validates its services before getting
// here.
func NewApp(ports *Ports, fileID string) *App {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:       ports,
		fileID:      fileID,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		currentView: messages.ViewEditor,
	}

	if err := ports.Validate(); err != nil {
		a.err = err
		return a
	}
	if fileID == "" {
		a.err = ErrMissingFileID
		return a
	}

	a.editorView = editor.NewView(s, km, ports.Session)
	a.reasonView = reason.NewView(s, ports.Session.Audit())
	a.historyView = history.NewView(s, ports.Session.Audit(), fileID)
	return a
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	if a.editorView != nil {
		a.editorView.WithContext(ctx)
		a.reasonView.WithContext(ctx)
		a.historyView.WithContext(ctx)
	}
	return a
}

// Init implements tea.Model.
// It opens the file and starts the first render pass.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("tabtrace - " + a.fileID),
	}
	if a.err == nil {
		cmds = append(cmds, a.openFile())
	}
	return tea.Batch(cmds...)
}

// openFile loads the file into the session.
func (a *App) openFile() tea.Cmd {
	return func() tea.Msg {
		return messages.FileOpened{Err: a.ports.Session.Open(a.ctx, a.fileID)}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.editorView != nil {
			a.editorView.SetDimensions(msg.Width, msg.Height)
			a.reasonView.SetDimensions(msg.Width, msg.Height)
			a.historyView.SetDimensions(msg.Width, msg.Height)
		}
		return a, nil

	case messages.FileOpened:
		if msg.Err != nil {
			a.err = fmt.Errorf("opening %s: %w", a.fileID, msg.Err)
			return a, nil
		}
		a.opened = true
		return a, a.editorView.Init()

	case messages.Quit:
		return a, tea.Quit

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.ViewChanged:
		return a.changeView(msg.View)

	case messages.RenderStepped, messages.RangeStepped, messages.AnnotationSaved,
		messages.ExternalChange, messages.ExternalVerified:
		if a.editorView == nil {
			return a, nil
		}
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.ApplyCompleted:
		a.reasonView, cmd = a.reasonView.Update(msg)
		return a, cmd

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil
	}

	return a, nil
}

// handleKeyMsg routes keyboard input to the active view.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.opened {
		// Fatal error screen: any key exits.
		if a.err != nil {
			return a, tea.Quit
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewEditor:
		a.editorView, cmd = a.editorView.Update(msg)
		return a, cmd

	case messages.ViewReason:
		a.reasonView, cmd = a.reasonView.Update(msg)
		return a, cmd

	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		// Esc or q from help goes back to the editor
		if msg.Type == tea.KeyEsc || msg.String() == "q" {
			a.currentView = messages.ViewEditor
			return a, nil
		}
		return a, nil
	}
	return a, nil
}

// changeView switches the active view, initialising it as needed.
func (a *App) changeView(view messages.ViewType) (tea.Model, tea.Cmd) {
	a.currentView = view

	switch view {
	case messages.ViewReason:
		a.reasonView.Reset()
		return a, a.reasonView.Init()

	case messages.ViewHistory:
		return a, a.historyView.Init()
	}
	return a, nil
}

// View implements tea.Model.
// It renders the current view state.
func (a *App) View() string {
	if !a.opened {
		if a.err != nil {
			return a.styles.Error.Render("Error: "+a.err.Error()) + "\n\n" +
				a.styles.Muted.Render("press any key to exit")
		}
		return a.styles.Muted.Render("Loading " + a.fileID + "...")
	}

	switch a.currentView {
	case messages.ViewEditor:
		return a.editorView.View()
	case messages.ViewReason:
		return a.reasonView.View()
	case messages.ViewHistory:
		return a.historyView.View()
	case messages.ViewHelp:
		return a.helpView()
	}
	return ""
}

// helpView renders the full keybinding reference.
func (a *App) helpView() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Keybindings"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %s  %s\n",
				a.styles.Subtitle.Render(fmt.Sprintf("%-8s", h.Key)),
				a.styles.Normal.Render(h.Desc),
			))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Muted.Render("esc: back"))
	return b.String()
}

// CurrentView returns the active view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}
