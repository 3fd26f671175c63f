// Package cli implements the repoqa-curate command line on cobra.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driving"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// version is set at build time.
var version = "dev"

// RunOptions are the per-run settings a service factory needs.
type RunOptions struct {
	// MaxRetries bounds retries per API call.
	MaxRetries int

	// ShowProgress enables progress bars.
	ShowProgress bool
}

// ServiceConfig holds the services the commands run.
type ServiceConfig struct {
	// NewCrawler builds a crawler for one run.
	NewCrawler func(opts RunOptions) driving.Crawler

	// NewCurator builds a curator for one run.
	NewCurator func(opts RunOptions) driving.Curator

	// Tokens is checked before any crawl work starts.
	Tokens driven.TokenProvider

	// Config reads and writes the optional TOML file.
	Config driven.ConfigStore

	// Now stamps default output names. Nil means time.Now.
	Now func() time.Time
}

var (
	newCrawler    func(opts RunOptions) driving.Crawler
	newCurator    func(opts RunOptions) driving.Curator
	tokenProvider driven.TokenProvider
	configStore   driven.ConfigStore
	now           = time.Now
)

// Global flags.
var (
	verbose    bool
	noProgress bool
)

var rootCmd = &cobra.Command{
	Use:   "repoqa-curate",
	Short: "Curate source code datasets from GitHub",
	Long: `repoqa-curate builds source code datasets from GitHub.

crawl searches GitHub for active, permissively licensed repositories of one
language and writes their source files as JSON lines. clone fills a curated
list of pinned repositories with the source files of each commit.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noProgress, "no-progress", false, "disable progress bars")
}

// SetServices wires the commands to their services.
func SetServices(cfg *ServiceConfig) {
	newCrawler = cfg.NewCrawler
	newCurator = cfg.NewCurator
	tokenProvider = cfg.Tokens
	configStore = cfg.Config
	now = time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// runOptions collects the per-run options shared by crawl and clone.
// Bars are off in verbose mode so they do not garble the debug log.
func runOptions(maxRetries int) RunOptions {
	return RunOptions{MaxRetries: maxRetries, ShowProgress: !noProgress && !logger.IsVerbose()}
}
