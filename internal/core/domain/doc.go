// Package domain defines the core business entities for tabtrace.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Dataset: The authoritative in-memory table (original/working/dirty)
//   - Selection: The set of selected row positions
//   - Annotation: A per-cell explanatory note with authorship
//   - ModificationRecord: A reason-coded, fingerprint-anchored audit entry
//   - Actor: The identity attributed to annotations and modifications
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
