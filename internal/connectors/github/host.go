package github

import (
	"context"
	"fmt"
	"time"

	gh "github.com/google/go-github/v80/github"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// Ensure Host implements the interface.
var _ driven.RepositoryHost = (*Host)(nil)

// Host adapts Client to the RepositoryHost port.
type Host struct {
	client *Client
}

// NewHost creates a repository host backed by client.
func NewHost(client *Client) *Host {
	return &Host{client: client}
}

// SearchRepositories runs a repository search and returns one page.
func (h *Host) SearchRepositories(ctx context.Context, query string, page, perPage int) (*driven.SearchPage, error) {
	result, next, err := h.client.SearchRepositories(ctx, query, page, perPage)
	if err != nil {
		return nil, classify(err, "search")
	}
	q := h.client.RateLimiter().Quota(ResourceSearch)
	logger.Debug("Search page %d: %d results, quota %d/%d until %s",
		page, len(result.Repositories), q.Remaining, q.Limit, q.ResetAt.Format(time.RFC3339))

	out := &driven.SearchPage{
		Total:    result.GetTotal(),
		Repos:    make([]domain.RepositoryCandidate, 0, len(result.Repositories)),
		NextPage: next,
	}
	for _, r := range result.Repositories {
		out.Repos = append(out.Repos, domain.RepositoryCandidate{
			Owner:         r.GetOwner().GetLogin(),
			Name:          r.GetName(),
			DefaultBranch: r.GetDefaultBranch(),
			SizeKB:        r.GetSize(),
			Stars:         r.GetStargazersCount(),
		})
	}
	return out, nil
}

// ListCommits returns one page of commits. An empty repository yields an
// empty last page.
func (h *Host) ListCommits(ctx context.Context, owner, name string, q driven.CommitQuery) (*driven.CommitPage, error) {
	opts := &gh.CommitsListOptions{
		SHA:         q.Branch,
		Since:       q.Since,
		ListOptions: gh.ListOptions{Page: q.Page, PerPage: q.PerPage},
	}
	commits, next, err := h.client.ListCommits(ctx, owner, name, opts)
	if err != nil {
		if IsEmptyRepository(err) {
			return &driven.CommitPage{}, nil
		}
		return nil, classify(err, owner+"/"+name)
	}

	out := &driven.CommitPage{
		Commits:  make([]domain.Commit, 0, len(commits)),
		NextPage: next,
	}
	for _, rc := range commits {
		out.Commits = append(out.Commits, domain.Commit{
			SHA:       rc.GetSHA(),
			Timestamp: commitTime(rc),
		})
	}
	return out, nil
}

// classify maps rejected credentials onto the domain's auth errors so a bad
// token surfaces the same way as a missing one.
func classify(err error, target string) error {
	switch {
	case IsUnauthorized(err):
		return fmt.Errorf("%w: %s: %w", domain.ErrAuthRequired, target, err)
	case IsForbidden(err):
		return fmt.Errorf("%w: %s: %w", domain.ErrAccessDenied, target, err)
	}
	return err
}

// commitTime prefers the committer date and falls back to the author date.
func commitTime(rc *gh.RepositoryCommit) time.Time {
	c := rc.GetCommit()
	if t := c.GetCommitter().GetDate(); !t.IsZero() {
		return t.UTC()
	}
	return c.GetAuthor().GetDate().UTC()
}

// BranchHead resolves a branch to its head commit SHA.
func (h *Host) BranchHead(ctx context.Context, owner, name, branch string) (string, error) {
	sha, err := h.client.CommitSHA(ctx, owner, name, branch)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("%w: %s/%s@%s", ErrBranchNotFound, owner, name, branch)
		}
		return "", classify(err, owner+"/"+name)
	}
	return sha, nil
}

// GetTree returns the full recursive tree at sha.
func (h *Host) GetTree(ctx context.Context, owner, name, sha string) (*domain.Tree, error) {
	tree, err := h.client.GetTree(ctx, owner, name, sha)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrRepoNotFound, owner, name)
		}
		return nil, classify(err, owner+"/"+name)
	}

	out := &domain.Tree{
		SHA:       tree.GetSHA(),
		Entries:   make([]domain.TreeEntry, 0, len(tree.Entries)),
		Truncated: tree.GetTruncated(),
	}
	for _, e := range tree.Entries {
		out.Entries = append(out.Entries, domain.TreeEntry{
			Path: e.GetPath(),
			Type: e.GetType(),
			Size: int64(e.GetSize()),
		})
	}
	return out, nil
}

// GetFileContent fetches one file at ref. Content is decoded only when the
// reported encoding is base64.
func (h *Host) GetFileContent(ctx context.Context, owner, name, path, ref string) (*domain.FileContent, error) {
	file, err := h.client.GetContents(ctx, owner, name, path, ref)
	if err != nil {
		return nil, classify(err, owner+"/"+name+"/"+path)
	}

	out := &domain.FileContent{
		Path:     path,
		Encoding: file.GetEncoding(),
	}
	if out.Encoding != domain.EncodingBase64 {
		return out, nil
	}

	decoded, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	out.Content = []byte(decoded)
	return out, nil
}
