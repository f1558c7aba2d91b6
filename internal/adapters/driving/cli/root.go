// Package cli implements the tabtrace command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
)

// version is set by SetVersion at startup.
var version = "dev"

var verbose bool

// Services bundles the ports the CLI commands drive.
type Services struct {
	// NewSession returns a fresh editing session.
	NewSession func() driving.EditorSession

	// Content is the content store, used directly by verify.
	Content driven.ContentStore

	// Modifications is the modification log, used directly by audit
	// and verify.
	Modifications driven.ModificationStore
}

var services Services

// SetServices injects the dependencies the commands use.
func SetServices(s Services) {
	services = s
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "tabtrace",
	Short: "Audited editing for tabular datasets",
	Long: `Tabtrace is a terminal editor for tabular datasets with a
cryptographic audit trail. Every applied modification is tied to a
reason code and to before/after fingerprints of the canonical
serialization, so any copy of the data can be verified later.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// newSession returns a fresh session or nil when not configured.
func newSession() driving.EditorSession {
	if services.NewSession == nil {
		return nil
	}
	return services.NewSession()
}
