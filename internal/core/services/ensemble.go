package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driving"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// Ensure EnsembleService implements the interface.
var _ driving.Curator = (*EnsembleService)(nil)

// EnsembleService populates the curated list by cloning each repository.
type EnsembleService struct {
	store    driven.CuratedListStore
	cloner   driven.Cloner
	progress driven.ProgressTracker
}

// NewEnsembleService creates the clone-based curator. progress may be nil.
func NewEnsembleService(
	store driven.CuratedListStore,
	cloner driven.Cloner,
	progress driven.ProgressTracker,
) *EnsembleService {
	return &EnsembleService{
		store:    store,
		cloner:   cloner,
		progress: progressOrNop(progress),
	}
}

// Curate fills in content for every entry that lacks it and writes the whole
// list to cfg.TargetPath. Entries that already have content are never cloned.
// The list is only written once every entry succeeded.
func (s *EnsembleService) Curate(ctx context.Context, cfg domain.CloneConfig) (*driving.CurateStats, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	list, err := s.store.Load(ctx, cfg.ListPath)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.ListPath, err)
	}

	// Resolve every language before the first clone.
	suffixes := make(map[string][]string, len(list))
	for _, lang := range list.Languages() {
		sfx, err := domain.CloneSuffixes.Lookup(lang)
		if err != nil {
			return nil, err
		}
		suffixes[lang] = sfx
	}

	logger.Info("Loaded %s: %d languages, %d entries to clone",
		cfg.ListPath, len(list), list.Pending())

	stats := &driving.CurateStats{}
	for _, lang := range list.Languages() {
		logger.Section(lang)
		repos := list[lang]

		s.progress.Begin(lang, len(repos))
		for i := range repos {
			if err := s.populate(ctx, &repos[i], suffixes[lang], stats); err != nil {
				s.progress.Done()
				return stats, err
			}
			s.progress.Advance()
		}
		s.progress.Done()
	}

	if err := s.store.Save(ctx, cfg.TargetPath, list); err != nil {
		return stats, fmt.Errorf("save %s: %w", cfg.TargetPath, err)
	}
	logger.Info("Wrote %s: %d cloned, %d skipped, %d files",
		cfg.TargetPath, stats.Cloned, stats.Skipped, stats.Files)
	return stats, nil
}

func (s *EnsembleService) populate(
	ctx context.Context, repo *domain.CuratedRepo, suffixes []string, stats *driving.CurateStats,
) error {
	logger.Info("Visiting %s", repo.TreeURL())

	if repo.HasContent() {
		logger.Info("Skipping %s as it already has content", repo.Repo)
		stats.Skipped++
		return nil
	}

	content, err := s.cloner.Snapshot(ctx, repo.CloneURL(), repo.CommitSHA,
		EntrypointSelector(repo.EntrypointPath, suffixes))
	if err != nil {
		return fmt.Errorf("%w: %s@%s: %w", domain.ErrCloneFailed, repo.Repo, repo.CommitSHA, err)
	}

	if content == nil {
		content = map[string]string{}
	}
	repo.Content = content
	stats.Cloned++
	stats.Files += len(content)
	return nil
}

// EntrypointSelector matches paths under prefix that end with a source suffix.
func EntrypointSelector(prefix string, suffixes []string) func(string) bool {
	return func(path string) bool {
		return strings.HasPrefix(path, prefix) && domain.HasSuffix(path, suffixes)
	}
}
