package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the YYYY-MM-DD layout used for date options.
const DateLayout = "2006-01-02"

// CrawlConfig enumerates every option of the search-based crawl.
type CrawlConfig struct {
	// Language selects the search language and the suffix table entry.
	Language string `toml:"language"`

	// Stars is the minimum stargazer count.
	Stars int `toml:"stars"`

	// RepoSizeInterval is the bucket width in KB used for size diversification.
	RepoSizeInterval int `toml:"repo_size_interval"`

	// CommitCount is the minimum number of commits since NewCommitSince.
	CommitCount int `toml:"commit_count"`

	// NewCommitSince is the commit-activity cutoff (YYYY-MM-DD, UTC).
	NewCommitSince string `toml:"new_commit_since"`

	// PushedSince is the minimum last-push date passed to the search (YYYY-MM-DD).
	PushedSince string `toml:"pushed_since"`

	// PerPage is the search page size.
	PerPage int `toml:"per_page"`

	// OutputDir receives the JSON-lines file.
	OutputDir string `toml:"output_dir"`

	// MaxRetries bounds attempts per API call.
	MaxRetries int `toml:"max_retries"`
}

// DefaultCrawlConfig returns the crawl defaults.
func DefaultCrawlConfig() CrawlConfig {
	return CrawlConfig{
		Language:         "python",
		Stars:            10,
		RepoSizeInterval: 10,
		CommitCount:      100,
		NewCommitSince:   "2023-09-01",
		PushedSince:      "2023-09-01",
		PerPage:          100,
		OutputDir:        ".",
		MaxRetries:       3,
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c CrawlConfig) Validate() error {
	if _, err := SearchSuffixes.Lookup(c.Language); err != nil {
		return err
	}
	if c.Stars < 0 {
		return fmt.Errorf("%w: stars must be >= 0, got %d", ErrInvalidInput, c.Stars)
	}
	if c.RepoSizeInterval <= 0 {
		return fmt.Errorf("%w: repo size interval must be > 0, got %d", ErrInvalidInput, c.RepoSizeInterval)
	}
	if c.CommitCount < 0 {
		return fmt.Errorf("%w: commit count must be >= 0, got %d", ErrInvalidInput, c.CommitCount)
	}
	if _, err := c.CommitCutoff(); err != nil {
		return err
	}
	if _, err := ParseDate(c.PushedSince); err != nil {
		return err
	}
	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("%w: per page must be within 1..100, got %d", ErrInvalidInput, c.PerPage)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%w: max retries must be >= 0, got %d", ErrInvalidInput, c.MaxRetries)
	}
	return nil
}

// CommitCutoff parses NewCommitSince as midnight UTC.
func (c CrawlConfig) CommitCutoff() (time.Time, error) {
	return ParseDate(c.NewCommitSince)
}

// NormalisedLanguage returns the language lower-cased and trimmed.
func (c CrawlConfig) NormalisedLanguage() string {
	return strings.ToLower(strings.TrimSpace(c.Language))
}

// CloneConfig enumerates every option of the clone-based pipeline.
type CloneConfig struct {
	// ListPath is the curated list to read.
	ListPath string `toml:"list_path"`

	// TargetPath receives the populated list.
	TargetPath string `toml:"target_path,omitempty"`
}

// DefaultCloneConfig returns the clone defaults. TargetPath is stamped with now.
func DefaultCloneConfig(now time.Time) CloneConfig {
	return CloneConfig{
		ListPath:   "scripts/cherrypick/lists.json",
		TargetPath: fmt.Sprintf("repoqa-%s.json", FileTimestamp(now)),
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c CloneConfig) Validate() error {
	if strings.TrimSpace(c.ListPath) == "" {
		return fmt.Errorf("%w: list path is required", ErrInvalidInput)
	}
	if strings.TrimSpace(c.TargetPath) == "" {
		return fmt.Errorf("%w: target path is required", ErrInvalidInput)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date at 00:00 UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t, nil
}

// FileTimestamp renders t as a local ISO timestamp for output file names.
func FileTimestamp(t time.Time) string {
	return t.Format("2006-01-02T15:04:05.000000")
}

// Settings is the layout of the optional configuration file.
type Settings struct {
	Crawl CrawlConfig `toml:"crawl"`
	Clone CloneConfig `toml:"clone"`
}

// DefaultSettings returns the defaults for both pipelines.
func DefaultSettings(now time.Time) Settings {
	return Settings{
		Crawl: DefaultCrawlConfig(),
		Clone: DefaultCloneConfig(now),
	}
}
