package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driving"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// Ensure CrawlService implements the interface.
var _ driving.Crawler = (*CrawlService)(nil)

// SearchResultCap is the most results the search API will page through.
const SearchResultCap = 1000

// CrawlService runs the search-based crawl.
type CrawlService struct {
	host     driven.RepositoryHost
	sinks    driven.DocumentSinkFactory
	progress driven.ProgressTracker
	now      func() time.Time
}

// NewCrawlService creates a crawl service. progress may be nil.
func NewCrawlService(
	host driven.RepositoryHost,
	sinks driven.DocumentSinkFactory,
	progress driven.ProgressTracker,
) *CrawlService {
	return &CrawlService{
		host:     host,
		sinks:    sinks,
		progress: progressOrNop(progress),
		now:      time.Now,
	}
}

// crawlRun holds the state of one Crawl call.
type crawlRun struct {
	suffixes    []string
	activity    *CommitActivityFilter
	diversifier *SizeDiversifier
	extractor   *FileExtractor
	stats       *driving.CrawlStats
}

// Crawl searches, filters and extracts repositories into a new JSON-lines file.
func (s *CrawlService) Crawl(ctx context.Context, cfg domain.CrawlConfig) (stats *driving.CrawlStats, err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lang := cfg.NormalisedLanguage()
	suffixes, err := domain.SearchSuffixes.Lookup(lang)
	if err != nil {
		return nil, err
	}
	cutoff, err := cfg.CommitCutoff()
	if err != nil {
		return nil, err
	}

	stats = &driving.CrawlStats{
		Query: domain.BuildSearchQuery(domain.QueryConstraints{
			Language:    lang,
			MinStars:    cfg.Stars,
			PushedSince: cfg.PushedSince,
		}),
		OutputPath: filepath.Join(cfg.OutputDir, fmt.Sprintf("%s-%s.jsonl", lang, domain.FileTimestamp(s.now()))),
	}

	sink, err := s.sinks.Create(stats.OutputPath)
	if err != nil {
		return stats, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close output: %w", cerr))
		}
	}()

	run := &crawlRun{
		suffixes:    suffixes,
		activity:    NewCommitActivityFilter(s.host, cutoff, cfg.CommitCount, cfg.PerPage),
		diversifier: NewSizeDiversifier(cfg.RepoSizeInterval),
		extractor:   NewFileExtractor(s.host, sink, s.now),
		stats:       stats,
	}

	logger.Section("Crawl")
	logger.Info("Query: %s", stats.Query)
	logger.Info("Writing to %s", stats.OutputPath)

	defer s.progress.Done()
	for page := 1; page != 0; {
		res, err := s.host.SearchRepositories(ctx, stats.Query, page, cfg.PerPage)
		if err != nil {
			return stats, fmt.Errorf("search repositories: %w", err)
		}

		if page == 1 {
			stats.Total = res.Total
			logger.Info("Total count %d", res.Total)
			s.progress.Begin("repositories", min(res.Total, SearchResultCap))
		}

		for _, repo := range res.Repos {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
			if err := s.visit(ctx, run, repo); err != nil {
				return stats, err
			}
			s.progress.Advance()
		}
		page = res.NextPage
	}

	stats.Buckets = run.diversifier.Seen()
	logger.Info("Crawl complete: %d accepted of %d visited across %d size buckets, %d records",
		stats.Accepted, stats.Visited, stats.Buckets, stats.Records)
	return stats, nil
}

// visit runs one repository through the filters and the extractor.
func (s *CrawlService) visit(ctx context.Context, run *crawlRun, repo domain.RepositoryCandidate) error {
	run.stats.Visited++
	name := repo.FullName()

	count, ok, err := run.activity.Accept(ctx, repo)
	if err != nil {
		return err
	}
	if !ok {
		logger.Debug("Rejecting %s: %d recent commits", name, count)
		run.stats.RejectedActivity++
		return nil
	}

	head, err := s.host.BranchHead(ctx, repo.Owner, repo.Name, repo.DefaultBranch)
	if err != nil {
		return fmt.Errorf("resolve %s@%s: %w", name, repo.DefaultBranch, err)
	}

	tree, err := s.host.GetTree(ctx, repo.Owner, repo.Name, head)
	if err != nil {
		return fmt.Errorf("get tree %s: %w", name, err)
	}
	if tree.Truncated {
		logger.Warn("Tree for %s is truncated, size is a lower bound", name)
	}

	matched := MatchSourceFiles(tree.Entries, run.suffixes)
	sizeKB := SourceSizeKB(matched)
	bucket, ok := run.diversifier.Admit(sizeKB)
	if !ok {
		logger.Debug("Rejecting %s: size bucket %d already taken (%d KB)", name, bucket, sizeKB)
		run.stats.RejectedSize++
		return nil
	}

	logger.Info("Accepting %s: %d files, %d KB, bucket %d", name, len(matched), sizeKB, bucket)
	run.stats.Accepted++

	res, err := run.extractor.Extract(ctx, repo, head, sizeKB, matched)
	run.stats.Records += res.Records
	run.stats.SkippedEncoding += res.Skipped
	return err
}
