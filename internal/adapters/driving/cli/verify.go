package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/fingerprint"
	"github.com/tabtrace-labs/tabtrace-cli/internal/tabular"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file-id]",
	Short: "Verify a file against its last committed fingerprint",
	Long: `Fetches a file's current content, computes the fingerprint of its
canonical serialization and compares it with the fingerprint recorded
by the most recent committed modification.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	if services.Content == nil || services.Modifications == nil {
		return errors.New("verification not configured")
	}
	fileID := args[0]
	ctx := cmd.Context()

	fc, err := services.Content.GetContent(ctx, fileID)
	if err != nil {
		return fmt.Errorf("loading %s: %w", fileID, err)
	}

	serialized, err := tabular.Encode(fc.Columns, fc.Rows)
	if err != nil {
		return fmt.Errorf("serializing content: %w", err)
	}
	actual := fingerprint.Sum(serialized)

	latest, err := services.Modifications.Latest(ctx, fileID)
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Printf("%s: no modifications recorded\n", fc.File.Name)
		cmd.Printf("  Current fingerprint: %s\n", actual)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading modification log: %w", err)
	}

	if !fingerprint.Equal(actual, latest.FingerprintAfter) {
		cmd.PrintErrf("%s: FINGERPRINT MISMATCH\n", fc.File.Name)
		cmd.PrintErrf("  Recorded: %s\n", latest.FingerprintAfter)
		cmd.PrintErrf("  Actual:   %s\n", actual)
		return domain.ErrFingerprintMismatch
	}

	cmd.Printf("%s: verified (%s)\n", fc.File.Name, actual)
	return nil
}
