package file

import (
	"time"

	"github.com/tabtrace-labs/tabtrace-cli/internal/core/domain"
	"github.com/tabtrace-labs/tabtrace-cli/internal/core/ports/driven"
)

// Configuration keys recognised in config.toml.
const (
	KeyRemoteEndpoint = "remote.endpoint"
	KeyRemoteToken    = "remote.token"
	KeyDataDir        = "storage.data_dir"

	KeyCopyThreshold       = "editor.copy_threshold"
	KeyVirtualizeThreshold = "editor.virtualize_threshold"
	KeyChunkSize           = "editor.chunk_size"
	KeyWindowSize          = "editor.window_size"
	KeyRangeBatchSize      = "editor.range_batch_size"
	KeyRangeChunkThreshold = "editor.range_chunk_threshold"
	KeyRenderTimeoutMS     = "editor.render_timeout_ms"
	KeyRangeTimeoutMS      = "editor.range_timeout_ms"
	KeyPersistTimeoutMS    = "editor.persist_timeout_ms"
)

// EditorSettings maps configuration values onto editor settings.
// Unset or non-positive values fall back to the reference defaults.
func EditorSettings(cfg driven.ConfigStore) domain.EditorSettings {
	if cfg == nil {
		return domain.DefaultEditorSettings()
	}
	return domain.EditorSettings{
		CopyThreshold:       cfg.GetInt(KeyCopyThreshold),
		VirtualizeThreshold: cfg.GetInt(KeyVirtualizeThreshold),
		ChunkSize:           cfg.GetInt(KeyChunkSize),
		WindowSize:          cfg.GetInt(KeyWindowSize),
		RangeBatchSize:      cfg.GetInt(KeyRangeBatchSize),
		RangeChunkThreshold: cfg.GetInt(KeyRangeChunkThreshold),
		RenderTimeout:       time.Duration(cfg.GetInt(KeyRenderTimeoutMS)) * time.Millisecond,
		RangeTimeout:        time.Duration(cfg.GetInt(KeyRangeTimeoutMS)) * time.Millisecond,
		PersistTimeout:      time.Duration(cfg.GetInt(KeyPersistTimeoutMS)) * time.Millisecond,
	}.Normalize()
}
