package domain

import "time"

// EditorSettings holds the tunable thresholds and budgets of the
// editor. Zero values are replaced with defaults by Normalize.
type EditorSettings struct {
	// CopyThreshold is the row count above which the working copy
	// initially aliases the original snapshot until the first write.
	CopyThreshold int

	// VirtualizeThreshold is the row count at or above which the
	// renderer switches from chunked to virtualized mode.
	VirtualizeThreshold int

	// ChunkSize is the number of rows materialized per render step
	// in chunked mode.
	ChunkSize int

	// WindowSize is the number of rows initially materialized in
	// virtualized mode, and the default LoadMore step.
	WindowSize int

	// RangeBatchSize is the number of indices applied per step during
	// a chunked range application.
	RangeBatchSize int

	// RangeChunkThreshold is the range length at or above which range
	// application is performed incrementally.
	RangeChunkThreshold int

	// RenderTimeout is the liveness budget for a full chunked render.
	RenderTimeout time.Duration

	// RangeTimeout is the liveness budget for a chunked range apply.
	RangeTimeout time.Duration

	// PersistTimeout is the budget for a single remote persist call.
	PersistTimeout time.Duration
}

// DefaultEditorSettings returns the reference thresholds and budgets.
func DefaultEditorSettings() EditorSettings {
	return EditorSettings{
		CopyThreshold:       DefaultCopyThreshold,
		VirtualizeThreshold: 1000,
		ChunkSize:           25,
		WindowSize:          100,
		RangeBatchSize:      200,
		RangeChunkThreshold: 1000,
		RenderTimeout:       15 * time.Second,
		RangeTimeout:        3 * time.Second,
		PersistTimeout:      2 * time.Second,
	}
}

// Normalize replaces non-positive fields with their defaults.
func (s EditorSettings) Normalize() EditorSettings {
	def := DefaultEditorSettings()
	if s.CopyThreshold <= 0 {
		s.CopyThreshold = def.CopyThreshold
	}
	if s.VirtualizeThreshold <= 0 {
		s.VirtualizeThreshold = def.VirtualizeThreshold
	}
	if s.ChunkSize <= 0 {
		s.ChunkSize = def.ChunkSize
	}
	if s.WindowSize <= 0 {
		s.WindowSize = def.WindowSize
	}
	if s.RangeBatchSize <= 0 {
		s.RangeBatchSize = def.RangeBatchSize
	}
	if s.RangeChunkThreshold <= 0 {
		s.RangeChunkThreshold = def.RangeChunkThreshold
	}
	if s.RenderTimeout <= 0 {
		s.RenderTimeout = def.RenderTimeout
	}
	if s.RangeTimeout <= 0 {
		s.RangeTimeout = def.RangeTimeout
	}
	if s.PersistTimeout <= 0 {
		s.PersistTimeout = def.PersistTimeout
	}
	return s
}
