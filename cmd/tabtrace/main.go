// Command tabtrace is a terminal editor for tabular datasets with a
// cryptographic audit trail.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	configfile "github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/config/file"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/remote"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/localfs"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driven/storage/sqlite"
	"github.com/tabtrace-labs/tabtrace-cli/internal/adapters/driving/cli"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driving"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/services"
	"github.com/tabtrace-labs/tabtrace-cli/internal/logger"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	wiring, cleanup, err := buildWiring(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	cli.SetVersion(version)
	cli.SetServices(wiring)
	return cli.Execute(ctx)
}

// buildWiring selects remote or offline adapters based on config. The
// modification log always lives in the local database; content,
// annotations and identity come from the remote services when an
// endpoint is configured, and from the local filesystem and database
// otherwise.
func buildWiring(cfg driven.ConfigStore) (cli.Services, func(), error) {
	settings := configfile.EditorSettings(cfg)

	store, err := sqlite.NewStore(cfg.GetString(configfile.KeyDataDir))
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("opening local database: %w", err)
	}
	cleanup := func() { _ = store.Close() }
	mods := store.ModificationStore()

	var (
		content     driven.ContentStore
		annotations driven.AnnotationStore
		identity    driven.IdentityService
	)

	if endpoint := cfg.GetString(configfile.KeyRemoteEndpoint); endpoint != "" {
		client := remote.NewClient(remote.Config{
			BaseURL: endpoint,
			Token:   cfg.GetString(configfile.KeyRemoteToken),
		})
		content = remote.NewContentStore(client)
		annotations = remote.NewAnnotationStore(client)
		identity = remote.NewIdentityService(client)
		logger.Debug("Using remote content service at %s", endpoint)
	} else {
		// Offline mode: file IDs are local CSV paths and
		// attribution degrades to anonymous.
		content = localfs.NewContentStore()
		annotations = store.AnnotationStore()
		logger.Debug("Using offline mode with database at %s", store.Path())
	}

	return cli.Services{
		NewSession: func() driving.EditorSession {
			return services.NewSession(content, identity, annotations, mods, settings, nil)
		},
		Content:       content,
		Modifications: mods,
	}, cleanup, nil
}
