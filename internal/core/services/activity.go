package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// CommitActivityFilter rejects repositories with too few recent commits.
type CommitActivityFilter struct {
	host       driven.RepositoryHost
	cutoff     time.Time
	minCommits int
	perPage    int
}

// NewCommitActivityFilter creates a filter counting commits at or after cutoff.
func NewCommitActivityFilter(host driven.RepositoryHost, cutoff time.Time, minCommits, perPage int) *CommitActivityFilter {
	return &CommitActivityFilter{
		host:       host,
		cutoff:     cutoff.UTC(),
		minCommits: minCommits,
		perPage:    perPage,
	}
}

// Accept counts commits on the default branch at or after the cutoff and
// accepts when the count reaches the minimum. Listing stops as soon as the
// minimum is met, so the returned count is exact only for rejected repos.
func (f *CommitActivityFilter) Accept(ctx context.Context, repo domain.RepositoryCandidate) (int, bool, error) {
	if f.minCommits <= 0 {
		return 0, true, nil
	}

	count := 0
	q := driven.CommitQuery{
		Branch:  repo.DefaultBranch,
		Since:   f.cutoff,
		Page:    1,
		PerPage: f.perPage,
	}
	for {
		page, err := f.host.ListCommits(ctx, repo.Owner, repo.Name, q)
		if err != nil {
			return count, false, fmt.Errorf("list commits %s: %w", repo.FullName(), err)
		}

		count += CountSince(page.Commits, f.cutoff)
		if count >= f.minCommits {
			return count, true, nil
		}
		if page.NextPage == 0 {
			return count, false, nil
		}
		q.Page = page.NextPage
	}
}

// CountSince counts commits whose timestamp is at or after cutoff.
func CountSince(commits []domain.Commit, cutoff time.Time) int {
	n := 0
	for _, c := range commits {
		if !c.Timestamp.Before(cutoff) {
			n++
		}
	}
	return n
}
