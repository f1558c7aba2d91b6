package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
)

var auditJSON bool

var auditCmd = &cobra.Command{
	Use:   "audit [file-id]",
	Short: "Print a file's modification history",
	Long: `Prints the append-only modification log for a file, newest first.
Each record carries the reason for the change and the before/after
fingerprints of the canonical serialization.`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	auditCmd.Flags().BoolVar(&auditJSON, "json", false, "output records as JSON")
	rootCmd.AddCommand(auditCmd)
}

// auditRecord is the JSON output format of a modification record.
type auditRecord struct {
	ID                string    `json:"id"`
	Reason            string    `json:"reason"`
	Details           string    `json:"details,omitempty"`
	FingerprintBefore string    `json:"fingerprint_before"`
	FingerprintAfter  string    `json:"fingerprint_after"`
	Author            string    `json:"author"`
	CreatedAt         time.Time `json:"created_at"`
}

func runAudit(cmd *cobra.Command, args []string) error {
	if services.Modifications == nil {
		return errors.New("modification store not configured")
	}

	records, err := services.Modifications.ListByFile(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("listing modifications: %w", err)
	}

	if auditJSON {
		return outputAuditJSON(cmd, records)
	}
	return outputAuditTable(cmd, records)
}

func outputAuditJSON(cmd *cobra.Command, records []domain.ModificationRecord) error {
	out := make([]auditRecord, len(records))
	for i, r := range records {
		out[i] = auditRecord{
			ID:                r.ID,
			Reason:            string(r.Reason),
			Details:           r.Details,
			FingerprintBefore: r.FingerprintBefore,
			FingerprintAfter:  r.FingerprintAfter,
			Author:            r.Author.DisplayName,
			CreatedAt:         r.CreatedAt,
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal records: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAuditTable(cmd *cobra.Command, records []domain.ModificationRecord) error {
	if len(records) == 0 {
		cmd.Println("No modifications recorded.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("%s  %s  %s\n", r.CreatedAt.Format("2006-01-02 15:04"),
			r.Reason.Description(), r.Author.DisplayName)
		if r.Details != "" {
			cmd.Printf("    %s\n", r.Details)
		}
		cmd.Printf("    %s -> %s\n", r.FingerprintBefore, r.FingerprintAfter)
	}
	return nil
}
