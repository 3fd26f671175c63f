package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

// SearchPage is one page of repository search results.
type SearchPage struct {
	// Total is the total match count reported by the API.
	Total int

	Repos []domain.RepositoryCandidate

	// NextPage is 0 on the last page.
	NextPage int
}

// CommitQuery selects a page of commits on a branch.
type CommitQuery struct {
	Branch string

	// Since is passed to the API as a lower bound hint. Zero means unbounded.
	Since time.Time

	Page    int
	PerPage int
}

// CommitPage is one page of commits, newest first.
type CommitPage struct {
	Commits  []domain.Commit
	NextPage int
}

// RepositoryHost is the remote repository-hosting API.
type RepositoryHost interface {
	// SearchRepositories runs a repository search and returns one page.
	SearchRepositories(ctx context.Context, query string, page, perPage int) (*SearchPage, error)

	// ListCommits returns one page of commits.
	ListCommits(ctx context.Context, owner, name string, q CommitQuery) (*CommitPage, error)

	// BranchHead resolves a branch to its head commit SHA.
	BranchHead(ctx context.Context, owner, name, branch string) (string, error)

	// GetTree returns the full recursive tree at sha.
	GetTree(ctx context.Context, owner, name, sha string) (*domain.Tree, error)

	// GetFileContent fetches one file at ref. Content is decoded only when
	// the reported encoding is base64.
	GetFileContent(ctx context.Context, owner, name, path, ref string) (*domain.FileContent, error)
}
