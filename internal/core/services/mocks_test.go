package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// --- Mock implementations of driven ports ---

// mockHost implements driven.RepositoryHost from in-memory fixtures.
type mockHost struct {
	searchPages []*driven.SearchPage
	searchErr   error
	queries     []string

	// commitPages is keyed by owner/name.
	commitPages   map[string][]*driven.CommitPage
	commitErr     error
	commitCalls   int
	commitQueries []driven.CommitQuery

	heads   map[string]string
	trees   map[string]*domain.Tree
	treeErr error

	// files is keyed by path.
	files     map[string]*domain.FileContent
	fileErr   error
	fileCalls []string
	fileRefs  []string
}

var errMockNotFound = errors.New("mock: not found")

func (m *mockHost) SearchRepositories(_ context.Context, query string, page, _ int) (*driven.SearchPage, error) {
	m.queries = append(m.queries, query)
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if page < 1 || page > len(m.searchPages) {
		return &driven.SearchPage{}, nil
	}
	return m.searchPages[page-1], nil
}

func (m *mockHost) ListCommits(_ context.Context, owner, name string, q driven.CommitQuery) (*driven.CommitPage, error) {
	m.commitCalls++
	m.commitQueries = append(m.commitQueries, q)
	if m.commitErr != nil {
		return nil, m.commitErr
	}
	pages := m.commitPages[owner+"/"+name]
	if q.Page < 1 || q.Page > len(pages) {
		return &driven.CommitPage{}, nil
	}
	return pages[q.Page-1], nil
}

func (m *mockHost) BranchHead(_ context.Context, owner, name, _ string) (string, error) {
	sha, ok := m.heads[owner+"/"+name]
	if !ok {
		return "", errMockNotFound
	}
	return sha, nil
}

func (m *mockHost) GetTree(_ context.Context, _, _, sha string) (*domain.Tree, error) {
	if m.treeErr != nil {
		return nil, m.treeErr
	}
	tree, ok := m.trees[sha]
	if !ok {
		return nil, errMockNotFound
	}
	return tree, nil
}

func (m *mockHost) GetFileContent(_ context.Context, _, _, path, ref string) (*domain.FileContent, error) {
	m.fileCalls = append(m.fileCalls, path)
	m.fileRefs = append(m.fileRefs, ref)
	if m.fileErr != nil {
		return nil, m.fileErr
	}
	fc, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errMockNotFound, path)
	}
	return fc, nil
}

// mockSink implements driven.DocumentSink.
type mockSink struct {
	docs     []domain.Document
	writeErr error
	closed   bool
}

func (s *mockSink) Write(doc domain.Document) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.docs = append(s.docs, doc)
	return nil
}

func (s *mockSink) Close() error {
	s.closed = true
	return nil
}

// mockSinkFactory implements driven.DocumentSinkFactory.
type mockSinkFactory struct {
	sink      *mockSink
	path      string
	createErr error
}

func (f *mockSinkFactory) Create(path string) (driven.DocumentSink, error) {
	f.path = path
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.sink == nil {
		f.sink = &mockSink{}
	}
	return f.sink, nil
}

// mockStore implements driven.CuratedListStore.
type mockStore struct {
	list     domain.CuratedList
	loadErr  error
	saved    domain.CuratedList
	savedTo  string
	saveHits int
}

func (s *mockStore) Load(_ context.Context, _ string) (domain.CuratedList, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.list, nil
}

func (s *mockStore) Save(_ context.Context, path string, list domain.CuratedList) error {
	s.saveHits++
	s.savedTo = path
	s.saved = list
	return nil
}

// mockCloner implements driven.Cloner over per-URL file sets.
type mockCloner struct {
	// repos maps clone URL to path -> content.
	repos map[string]map[string]string
	fail  map[string]error
	calls []string
}

func (c *mockCloner) Snapshot(_ context.Context, cloneURL, commitSHA string, include func(string) bool) (map[string]string, error) {
	c.calls = append(c.calls, cloneURL+"@"+commitSHA)
	if err := c.fail[cloneURL]; err != nil {
		return nil, err
	}
	out := make(map[string]string)
	for path, content := range c.repos[cloneURL] {
		if include(path) {
			out[path] = content
		}
	}
	return out, nil
}

// recordingProgress implements driven.ProgressTracker.
type recordingProgress struct {
	labels   []string
	totals   []int
	advances int
	done     int
}

func (p *recordingProgress) Begin(label string, total int) {
	p.labels = append(p.labels, label)
	p.totals = append(p.totals, total)
}

func (p *recordingProgress) Advance() { p.advances++ }
func (p *recordingProgress) Done()    { p.done++ }
