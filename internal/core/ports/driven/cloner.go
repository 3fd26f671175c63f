package driven

import "context"

// Cloner materialises a repository at a pinned commit.
type Cloner interface {
	// Snapshot clones cloneURL into a scratch directory, checks out commitSHA,
	// walks the commit tree and returns the on-disk content of every file
	// path for which include returns true. The scratch directory is removed
	// before Snapshot returns, on success or failure.
	Snapshot(ctx context.Context, cloneURL, commitSHA string, include func(path string) bool) (map[string]string, error)
}
