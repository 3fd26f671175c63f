// Package git materialises repositories at a pinned commit with go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// Ensure Cloner implements the interface.
var _ driven.Cloner = (*Cloner)(nil)

// scratchPattern names the per-clone scratch directories.
const scratchPattern = "repoqa-clone-*"

// Cloner clones repositories into scratch directories.
type Cloner struct {
	// root is where scratch directories are created. Empty means os.TempDir.
	root string
}

// NewCloner creates a cloner whose scratch directories live under root.
// An empty root uses the system temp directory.
func NewCloner(root string) *Cloner {
	return &Cloner{root: root}
}

// Snapshot clones cloneURL, checks out commitSHA and returns the content of
// every file in the commit tree accepted by include, keyed by
// repository-relative path.
func (c *Cloner) Snapshot(
	ctx context.Context, cloneURL, commitSHA string, include func(path string) bool,
) (files map[string]string, err error) {
	dir, err := os.MkdirTemp(c.root, scratchPattern)
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if rerr := os.RemoveAll(dir); rerr != nil {
			err = errors.Join(err, fmt.Errorf("remove scratch dir: %w", rerr))
		}
	}()

	logger.Debug("Cloning %s into %s", cloneURL, dir)
	repo, err := gogit.PlainCloneContext(ctx, dir, false, &gogit.CloneOptions{URL: cloneURL})
	if err != nil {
		return nil, fmt.Errorf("clone %s: %w", cloneURL, err)
	}

	return collect(repo, dir, commitSHA, include)
}

// collect checks out commitSHA in repo's worktree at dir and reads the
// selected files from disk. commitSHA may be abbreviated.
func collect(repo *gogit.Repository, dir, commitSHA string, include func(path string) bool) (map[string]string, error) {
	resolved, err := repo.ResolveRevision(plumbing.Revision(commitSHA))
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", commitSHA, err)
	}
	hash := *resolved

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}
	if err := wt.Checkout(&gogit.CheckoutOptions{Hash: hash, Force: true}); err != nil {
		return nil, fmt.Errorf("checkout %s: %w", commitSHA, err)
	}

	commit, err := repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("read commit %s: %w", commitSHA, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("read tree %s: %w", commitSHA, err)
	}

	files := make(map[string]string)
	err = tree.Files().ForEach(func(f *object.File) error {
		if !include(f.Name) {
			return nil
		}
		if f.Mode == filemode.Symlink {
			logger.Debug("Skipping symlink %s", f.Name)
			return nil
		}

		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Name)))
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		if !utf8.Valid(data) {
			return fmt.Errorf("%w: %s", domain.ErrInvalidUTF8, f.Name)
		}
		files[f.Name] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
