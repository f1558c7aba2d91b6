// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ContentStore: File content and metadata persistence
//   - AnnotationStore: Cell annotation persistence
//   - ModificationStore: Append-only modification record persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - IdentityService: Actor resolution. Without it, attribution
//     degrades to the anonymous identity ("Unknown User").
//   - ChangeWatcher: External-change detection on open files. Without
//     it, integrity re-verification only happens on demand.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
