package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

var crawlFlags struct {
	configPath       string
	repoSizeInterval int
	commitCount      int
	newCommitSince   string
	pushedSince      string
	perPage          int
	outputDir        string
	maxRetries       int
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [language] [stars]",
	Short: "Crawl GitHub for source files of one language",
	Long: `Searches GitHub for permissively licensed repositories of one language
with at least the given number of stars, keeps those with enough recent
commits and an unseen source size bucket, and writes every matching source
file as one JSON line to {output-dir}/{language}-{timestamp}.jsonl.

Language defaults to python and stars to 10. Requires GITHUB_TOKEN.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runCrawl,
}

func init() {
	defaults := domain.DefaultCrawlConfig()
	f := crawlCmd.Flags()
	f.StringVar(&crawlFlags.configPath, "config", "", "TOML config file")
	f.IntVar(&crawlFlags.repoSizeInterval, "repo-size-interval", defaults.RepoSizeInterval,
		"size bucket width in KB")
	f.IntVar(&crawlFlags.commitCount, "commit-count", defaults.CommitCount,
		"minimum commits since --new-commit-since")
	f.StringVar(&crawlFlags.newCommitSince, "new-commit-since", defaults.NewCommitSince,
		"commit activity cutoff (YYYY-MM-DD)")
	f.StringVar(&crawlFlags.pushedSince, "pushed-since", defaults.PushedSince,
		"minimum last push date (YYYY-MM-DD)")
	f.IntVar(&crawlFlags.perPage, "per-page", defaults.PerPage, "search page size (1-100)")
	f.StringVar(&crawlFlags.outputDir, "output-dir", defaults.OutputDir, "directory for the output file")
	f.IntVar(&crawlFlags.maxRetries, "max-retries", defaults.MaxRetries, "retries per API call")

	rootCmd.AddCommand(crawlCmd)
}

// crawlConfig merges defaults, the config file, positional args and changed flags.
func crawlConfig(cmd *cobra.Command, args []string) (domain.CrawlConfig, error) {
	settings, err := loadSettings(crawlFlags.configPath)
	if err != nil {
		return domain.CrawlConfig{}, err
	}
	cfg := settings.Crawl

	if len(args) > 0 {
		cfg.Language = args[0]
	}
	if len(args) > 1 {
		stars, err := strconv.Atoi(args[1])
		if err != nil {
			return cfg, fmt.Errorf("%w: stars must be an integer, got %q", domain.ErrInvalidInput, args[1])
		}
		cfg.Stars = stars
	}

	flags := cmd.Flags()
	if flags.Changed("repo-size-interval") {
		cfg.RepoSizeInterval = crawlFlags.repoSizeInterval
	}
	if flags.Changed("commit-count") {
		cfg.CommitCount = crawlFlags.commitCount
	}
	if flags.Changed("new-commit-since") {
		cfg.NewCommitSince = crawlFlags.newCommitSince
	}
	if flags.Changed("pushed-since") {
		cfg.PushedSince = crawlFlags.pushedSince
	}
	if flags.Changed("per-page") {
		cfg.PerPage = crawlFlags.perPage
	}
	if flags.Changed("output-dir") {
		cfg.OutputDir = crawlFlags.outputDir
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = crawlFlags.maxRetries
	}

	return cfg, cfg.Validate()
}

func runCrawl(cmd *cobra.Command, args []string) error {
	if newCrawler == nil {
		return errors.New("crawl service not configured")
	}

	cfg, err := crawlConfig(cmd, args)
	if err != nil {
		return err
	}

	if tokenProvider == nil || !tokenProvider.IsAuthenticated() {
		return fmt.Errorf("%w: set GITHUB_TOKEN", domain.ErrAuthRequired)
	}

	logger.SetRunID(uuid.NewString())
	defer logger.SetRunID("")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := newCrawler(runOptions(cfg.MaxRetries)).Crawl(ctx, cfg)
	if stats != nil {
		cmd.Printf("Visited %d of %d repositories: %d accepted, %d rejected for activity, %d rejected for size\n",
			stats.Visited, stats.Total, stats.Accepted, stats.RejectedActivity, stats.RejectedSize)
		cmd.Printf("Wrote %d records to %s\n", stats.Records, stats.OutputPath)
	}
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}
	return nil
}
