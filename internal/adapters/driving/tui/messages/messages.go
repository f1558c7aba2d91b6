// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm
// architecture.
package messages

import (
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewEditor is the main table editing view.
	ViewEditor ViewType = iota
	// ViewReason is the apply flow's reason selection view.
	ViewReason
	// ViewHistory is the modification history view.
	ViewHistory
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewEditor:
		return "editor"
	case ViewReason:
		return "reason"
	case ViewHistory:
		return "history"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// FileOpened signals that the session finished loading the file.
type FileOpened struct {
	Err error
}

// RenderStepped signals that a chunked materialization pass advanced
// by one batch.
type RenderStepped struct {
	Done bool
	Err  error
}

// RangeStepped signals that an in-flight range application advanced by
// one batch.
type RangeStepped struct {
	Done bool
	Err  error
}

// ApplyCompleted signals that an apply submission finished.
type ApplyCompleted struct {
	Err error
}

// AnnotationSaved signals that a cell annotation was written. Warning
// carries a persistence failure for a write that still stands locally.
type AnnotationSaved struct {
	Annotation *domain.Annotation
	Warning    error
}

// HistoryLoaded carries a file's modification records, newest first.
type HistoryLoaded struct {
	Records []domain.ModificationRecord
	Err     error
}

// ExternalChange signals that the open file changed outside the
// editor.
type ExternalChange struct {
	Path string
}

// ExternalVerified carries the result of re-checking the on-disk
// content against the digest editing started from.
type ExternalVerified struct {
	Match bool
	Err   error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
