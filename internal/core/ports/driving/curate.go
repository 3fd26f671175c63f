package driving

import (
	"context"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

// Curator populates the curated repository list by cloning.
type Curator interface {
	// Curate populates every entry lacking content and writes the whole list.
	// Nothing is written if any clone fails.
	Curate(ctx context.Context, cfg domain.CloneConfig) (*CurateStats, error)
}

// CurateStats summarises one curate run.
type CurateStats struct {
	// Cloned counts repositories cloned in this run.
	Cloned int

	// Skipped counts entries that already had content.
	Skipped int

	// Files counts files read across all cloned repositories.
	Files int
}
