package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var annotateList bool

var annotateCmd = &cobra.Command{
	Use:   "annotate [file-id] [row] [column] [explanation]",
	Short: "Annotate a cell or list a file's annotations",
	Long: `Attaches an explanatory note to a single cell, identified by its
zero-based row position and column name. Re-annotating a cell replaces
the note but keeps its colour tag. With --list, prints the file's
annotations instead.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if annotateList {
			return cobra.ExactArgs(1)(cmd, args)
		}
		return cobra.ExactArgs(4)(cmd, args)
	},
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().BoolVarP(&annotateList, "list", "l", false, "list the file's annotations")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	if annotateList {
		annotations := session.Annotations().All()
		if len(annotations) == 0 {
			cmd.Println("No annotations.")
			return nil
		}
		for _, a := range annotations {
			cmd.Printf("  [%d, %s] %s - %s (%s)\n",
				a.Row, a.Column, a.Explanation, a.Author.DisplayName,
				a.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	}

	row, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid row position %q", args[1])
	}

	annotation, err := session.Annotations().Set(cmd.Context(), row, args[2], args[3])
	if err != nil {
		// Local-first: the annotation may stand even when the
		// persist failed, so report both.
		if annotation != nil {
			cmd.PrintErrf("Warning: annotation saved locally but not persisted: %v\n", err)
			return nil
		}
		return err
	}

	cmd.Printf("Annotated [%d, %s] (%s)\n", annotation.Row, annotation.Column, annotation.Color)
	return nil
}
