package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driving"
)

var testNow = time.Date(2024, 3, 1, 12, 30, 0, 0, time.Local)

// mockCrawler implements driving.Crawler for testing.
type mockCrawler struct {
	cfg    domain.CrawlConfig
	calls  int
	stats  *driving.CrawlStats
	err    error
	hasCtx bool
}

func (m *mockCrawler) Crawl(ctx context.Context, cfg domain.CrawlConfig) (*driving.CrawlStats, error) {
	m.calls++
	m.cfg = cfg
	m.hasCtx = ctx != nil
	return m.stats, m.err
}

// mockCurator implements driving.Curator for testing.
type mockCurator struct {
	cfg   domain.CloneConfig
	calls int
	stats *driving.CurateStats
	err   error
}

func (m *mockCurator) Curate(_ context.Context, cfg domain.CloneConfig) (*driving.CurateStats, error) {
	m.calls++
	m.cfg = cfg
	return m.stats, m.err
}

// mockTokenProvider implements driven.TokenProvider for testing.
type mockTokenProvider struct {
	token string
}

func (p *mockTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthRequired
	}
	return p.token, nil
}

func (p *mockTokenProvider) IsAuthenticated() bool {
	return p.token != ""
}

// mockConfigStore implements driven.ConfigStore for testing.
type mockConfigStore struct {
	apply     func(*domain.Settings)
	loadErr   error
	loadedAt  string
	saved     *domain.Settings
	savedPath string
	saveErr   error
}

func (s *mockConfigStore) Load(path string, settings *domain.Settings) error {
	s.loadedAt = path
	if s.loadErr != nil {
		return s.loadErr
	}
	if s.apply != nil {
		s.apply(settings)
	}
	return nil
}

func (s *mockConfigStore) Save(path string, settings domain.Settings) error {
	s.savedPath = path
	s.saved = &settings
	return s.saveErr
}

// testEnv holds the mocks wired into the commands.
type testEnv struct {
	crawler *mockCrawler
	curator *mockCurator
	tokens  *mockTokenProvider
	config  *mockConfigStore
	opts    []RunOptions
}

// setupTest wires mocks into the package and resets every flag.
func setupTest(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		crawler: &mockCrawler{stats: &driving.CrawlStats{OutputPath: "go.jsonl"}},
		curator: &mockCurator{stats: &driving.CurateStats{}},
		tokens:  &mockTokenProvider{token: "ghp_test"},
		config:  &mockConfigStore{},
	}

	SetServices(&ServiceConfig{
		NewCrawler: func(opts RunOptions) driving.Crawler {
			env.opts = append(env.opts, opts)
			return env.crawler
		},
		NewCurator: func(opts RunOptions) driving.Curator {
			env.opts = append(env.opts, opts)
			return env.curator
		},
		Tokens: env.tokens,
		Config: env.config,
		Now:    func() time.Time { return testNow },
	})

	resetFlags(rootCmd)
	t.Cleanup(func() {
		SetServices(&ServiceConfig{})
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})
	return env
}

// resetFlags restores every flag of cmd and its children to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command with args and returns its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}
