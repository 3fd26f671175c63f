package driven

import (
	"context"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

// CuratedListStore reads the curated list and writes the populated result.
type CuratedListStore interface {
	Load(ctx context.Context, path string) (domain.CuratedList, error)

	// Save writes the whole list to path as one document.
	Save(ctx context.Context, path string, list domain.CuratedList) error
}
