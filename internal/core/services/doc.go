// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Two pipelines live here and are never composed:
//
//   - CrawlService: search → commit activity → size diversification → extraction
//   - EnsembleService: curated list → clone at pinned commit → populated list
//
// Services are pure Go with no external dependencies.
package services
