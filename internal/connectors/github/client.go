package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the default number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second
)

// Client wraps the go-github client with rate limiting and retries.
type Client struct {
	gh            *gh.Client
	tokenProvider driven.TokenProvider
	rateLimiter   *RateLimiter
	retry         RetryPolicy
	baseURL       string
	httpClient    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) { c.retry = p }
}

// WithRateLimiter overrides the default rate limiter.
func WithRateLimiter(r *RateLimiter) Option {
	return func(c *Client) { c.rateLimiter = r }
}

// WithBaseURL points the client at another API root, such as a GitHub
// Enterprise server or a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient uses httpClient instead of an oauth2 client built from the
// token provider.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// NewClient creates a new GitHub API client with a token provider.
func NewClient(tokenProvider driven.TokenProvider, opts ...Option) *Client {
	c := &Client{
		tokenProvider: tokenProvider,
		rateLimiter:   NewRateLimiter(),
		retry:         DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so we can get the token when needed.
func (c *Client) ensureClient(ctx context.Context) error {
	if c.gh != nil {
		return nil
	}

	httpClient := c.httpClient
	if httpClient == nil {
		token, err := c.tokenProvider.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("get token: %w", err)
		}

		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		// The oauth2 transport must outlive ctx, which may be a single call's.
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = DefaultTimeout
	}

	client := gh.NewClient(httpClient)
	if c.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(c.baseURL, "/") + "/")
		if err != nil {
			return fmt.Errorf("parse base url: %w", err)
		}
		client.BaseURL = u
	}
	c.gh = client

	return nil
}

// call runs one API request against resource under the rate limiter and
// retry policy.
func call[T any](
	ctx context.Context, c *Client, resource, op string, fn func() (T, *gh.Response, error),
) (T, *gh.Response, error) {
	var zero T
	if err := c.ensureClient(ctx); err != nil {
		return zero, nil, err
	}

	var resp *gh.Response
	val, err := withRetry(ctx, c.retry, op, func() (T, error) {
		if err := c.rateLimiter.Wait(ctx, resource); err != nil {
			return zero, fmt.Errorf("rate limit wait: %w", err)
		}

		v, r, err := fn()
		c.updateRateLimitFromResponse(r, resource)
		resp = r
		if err != nil {
			return zero, c.wrapError(err, op, resource)
		}
		return v, nil
	})
	return val, resp, err
}

// nextPage returns the next page number, or 0 on the last page.
func nextPage(resp *gh.Response) int {
	if resp == nil {
		return 0
	}
	return resp.NextPage
}

// SearchRepositories runs a repository search and returns one page of results
// plus the next page number.
func (c *Client) SearchRepositories(
	ctx context.Context, query string, page, perPage int,
) (*gh.RepositoriesSearchResult, int, error) {
	opts := &gh.SearchOptions{
		ListOptions: gh.ListOptions{Page: page, PerPage: perPage},
	}
	result, resp, err := call(ctx, c, ResourceSearch, "search repositories",
		func() (*gh.RepositoriesSearchResult, *gh.Response, error) {
			return c.gh.Search.Repositories(ctx, query, opts)
		})
	if err != nil {
		return nil, 0, err
	}
	return result, nextPage(resp), nil
}

// ListCommits lists one page of commits for a repository.
func (c *Client) ListCommits(
	ctx context.Context, owner, repo string, opts *gh.CommitsListOptions,
) ([]*gh.RepositoryCommit, int, error) {
	commits, resp, err := call(ctx, c, ResourceCore, "list commits",
		func() ([]*gh.RepositoryCommit, *gh.Response, error) {
			return c.gh.Repositories.ListCommits(ctx, owner, repo, opts)
		})
	if err != nil {
		return nil, 0, err
	}
	return commits, nextPage(resp), nil
}

// CommitSHA resolves a ref (branch, tag or SHA) to a commit SHA.
func (c *Client) CommitSHA(ctx context.Context, owner, repo, ref string) (string, error) {
	sha, _, err := call(ctx, c, ResourceCore, "get commit sha",
		func() (string, *gh.Response, error) {
			return c.gh.Repositories.GetCommitSHA1(ctx, owner, repo, ref, "")
		})
	return sha, err
}

// GetTree fetches the entire tree for a repository recursively.
// This is efficient for getting all file paths in one API call.
func (c *Client) GetTree(ctx context.Context, owner, repo, sha string) (*gh.Tree, error) {
	tree, _, err := call(ctx, c, ResourceCore, "get tree",
		func() (*gh.Tree, *gh.Response, error) {
			return c.gh.Git.GetTree(ctx, owner, repo, sha, true) // recursive=true
		})
	return tree, err
}

// GetContents fetches a single file at ref.
// For files < 1MB, content is base64 encoded in the response.
func (c *Client) GetContents(ctx context.Context, owner, repo, path, ref string) (*gh.RepositoryContent, error) {
	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	file, _, err := call(ctx, c, ResourceCore, "get contents",
		func() (*gh.RepositoryContent, *gh.Response, error) {
			file, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
			return file, resp, err
		})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return file, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// updateRateLimitFromResponse updates the rate limiter from GitHub response headers.
func (c *Client) updateRateLimitFromResponse(resp *gh.Response, resource string) {
	if resp == nil || resp.Response == nil {
		return
	}
	c.rateLimiter.UpdateFromResponse(resp.Response, resource)
}

// wrapError converts go-github errors to our error types.
func (c *Client) wrapError(err error, operation, resource string) error {
	if err == nil {
		return nil
	}

	// Primary rate limit
	var rateLimitErr *gh.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RateLimitError{
			ResetAt:   rateLimitErr.Rate.Reset.Time,
			Remaining: rateLimitErr.Rate.Remaining,
			Limit:     rateLimitErr.Rate.Limit,
		}
	}

	// Secondary rate limit (abuse detection)
	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		resetAt := time.Time{}
		if abuseErr.RetryAfter != nil {
			resetAt = time.Now().Add(*abuseErr.RetryAfter)
		}
		q := c.rateLimiter.Quota(resource)
		return &RateLimitError{
			ResetAt:   resetAt,
			Remaining: q.Remaining,
			Limit:     q.Limit,
		}
	}

	// Check for GitHub error response
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		apiErr := &APIError{
			StatusCode: ghErr.Response.StatusCode,
			Message:    ghErr.Message,
		}
		if ghErr.Response.Request != nil && ghErr.Response.Request.URL != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	return fmt.Errorf("%s: %w", operation, err)
}
