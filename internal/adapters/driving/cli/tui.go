package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/watch"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/tui/messages"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
)

var tuiWatchPath string

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file-id]",
	Short: "Launch the interactive terminal editor",
	Long: `Launch the interactive terminal editor on a file.

Controls:
  ↑/k, ↓/j - Move between rows
  Space    - Toggle row selection
  a        - Select all rows
  r        - Select a row range
  n        - Annotate the current cell
  d        - Delete selected rows
  Enter    - Apply changes
  Esc      - Back / Cancel
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiWatchPath, "watch", "",
		"local path to watch for external changes while editing")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	// Panic recovery so terminal state problems come with a trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	session := newSession()
	if session == nil {
		return errors.New("editor not configured")
	}

	app := tui.NewApp(&tui.Ports{Session: session}, args[0])
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if tuiWatchPath != "" {
		stop, err := watchInto(p, tuiWatchPath)
		if err != nil {
			return fmt.Errorf("watching %s: %w", tuiWatchPath, err)
		}
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchInto forwards external file changes into the running program.
func watchInto(p *tea.Program, path string) (func(), error) {
	watcher, err := watch.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Watch(path); err != nil {
		watcher.Close()
		return nil, err
	}

	go func() {
		for ev := range watcher.Events() {
			logger.Debug("External change detected: %s", ev.Path)
			p.Send(messages.ExternalChange{Path: ev.Path})
		}
	}()

	return func() { _ = watcher.Close() }, nil
}
