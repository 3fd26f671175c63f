// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RepositoryHost: Search, commit listing, trees and file contents (GitHub)
//   - Cloner: Clones a repository at a commit and reads selected files (git)
//   - DocumentSink: Append-only JSON-lines output
//   - CuratedListStore: Reads and writes the curated repository list
//   - TokenProvider: Access token for the hosting API
//   - ConfigStore: Optional TOML configuration file
//
// # Optional Interfaces
//
// These can be nil - services fall back to a no-op:
//
//   - ProgressTracker: Progress display for long loops
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
