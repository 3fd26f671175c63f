// Package domain defines the core entities for repoqa-curate.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RepositoryCandidate: A repository returned by a hosting search
//   - Tree, TreeEntry: A recursive file listing at one commit
//   - Commit: A commit reduced to its SHA and timestamp
//   - Document: One extracted source file, the unit of JSON-lines output
//   - CuratedRepo, CuratedList: The static list used by the clone pipeline
//   - CrawlConfig, CloneConfig: Validated run configuration
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
