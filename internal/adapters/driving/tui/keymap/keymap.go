// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up moves the cursor up one row.
	Up key.Binding

	// Down moves the cursor down one row.
	Down key.Binding

	// Toggle flips selection of the cursor row.
	Toggle key.Binding

	// SelectAll selects every row.
	SelectAll key.Binding

	// Range starts a row range selection.
	Range key.Binding

	// Annotate opens the annotation prompt on the cursor cell.
	Annotate key.Binding

	// Edit opens the cell edit prompt on the cursor cell.
	Edit key.Binding

	// Delete removes the selected rows.
	Delete key.Binding

	// Insert appends an empty row.
	Insert key.Binding

	// Apply begins the apply flow.
	Apply key.Binding

	// Discard resets the working table to the loaded snapshot.
	Discard key.Binding

	// LoadMore extends a virtualized window.
	LoadMore key.Binding

	// ShowAll materializes the full dataset.
	ShowAll key.Binding

	// History shows the modification history view.
	History key.Binding

	// Left moves the column cursor left.
	Left key.Binding

	// Right moves the column cursor right.
	Right key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all"),
		),
		Range: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "range"),
		),
		Annotate: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "annotate"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit cell"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Insert: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "insert row"),
		),
		Apply: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		Discard: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "discard"),
		),
		LoadMore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "more rows"),
		),
		ShowAll: key.NewBinding(
			key.WithKeys("M"),
			key.WithHelp("M", "show all"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "column left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "column right"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Apply, k.Help, k.Quit}
}

// EditorHelp returns keybindings shown while editing.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Annotate, k.Delete, k.Apply, k.Help}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Toggle, k.SelectAll, k.Range, k.Delete},
		{k.Edit, k.Insert, k.Annotate, k.Discard},
		{k.Apply, k.History},
		{k.LoadMore, k.ShowAll},
		{k.Help, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
