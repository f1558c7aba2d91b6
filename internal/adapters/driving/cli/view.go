package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
)

var (
	viewLimit int
	viewDiff  bool
)

var openCmd = &cobra.Command{
	Use:   "open [file-id]",
	Short: "Open a file and print its summary",
	Long: `Loads a file from the content service and prints its column
header, row count and the fingerprint editing would be anchored to.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

var viewCmd = &cobra.Command{
	Use:   "view [file-id]",
	Short: "Print a file's rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func init() {
	viewCmd.Flags().IntVarP(&viewLimit, "limit", "n", 20, "maximum number of rows to print")
	viewCmd.Flags().BoolVar(&viewDiff, "diff", false, "print the diff summary instead of rows")
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(viewCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	file := session.File()
	cmd.Printf("%s (%s)\n", file.Name, file.ID)
	cmd.Printf("  Columns:     %s\n", strings.Join(session.Columns(), ", "))
	cmd.Printf("  Rows:        %d\n", session.RowCount())
	cmd.Printf("  Fingerprint: %s\n", session.FingerprintBefore())
	cmd.Printf("  Annotations: %d\n", session.Annotations().Count())
	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	if viewDiff {
		diff := session.DiffSummary()
		cmd.Printf("%d modified, %d added, %d deleted\n",
			diff.ModifiedRows, diff.AddedRows, diff.DeletedRows)
		return nil
	}

	cellWidth := cellWidthFor(len(session.Columns()))
	cmd.Println(formatRow(session.Columns(), cellWidth))
	limit := session.RowCount()
	if viewLimit > 0 && viewLimit < limit {
		limit = viewLimit
	}
	for pos := 0; pos < limit; pos++ {
		row, err := session.Row(pos)
		if err != nil {
			return fmt.Errorf("reading row %d: %w", pos, err)
		}
		cmd.Println(formatRow(row, cellWidth))
	}
	if limit < session.RowCount() {
		cmd.Printf("... %d more rows\n", session.RowCount()-limit)
	}
	return nil
}

// cellWidthFor sizes columns to the terminal. Piped output is not
// truncated.
func cellWidthFor(columns int) int {
	if columns == 0 {
		return 0
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0
	}
	cell := width/columns - 1
	if cell < 8 {
		cell = 8
	}
	return cell
}

// formatRow joins cells with tabs, truncating to the cell width when
// one is set.
func formatRow(row domain.Row, cellWidth int) string {
	if cellWidth <= 0 {
		return strings.Join(row, "\t")
	}
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = runewidth.Truncate(cell, cellWidth, "…")
	}
	return strings.Join(cells, "\t")
}

// openSession creates a session and opens the given file in it.
func openSession(cmd *cobra.Command, fileID string) (driving.EditorSession, error) {
	session := newSession()
	if session == nil {
		return nil, errors.New("editor not configured")
	}
	if err := session.Open(cmd.Context(), fileID); err != nil {
		return nil, fmt.Errorf("opening %s: %w", fileID, err)
	}
	return session, nil
}
