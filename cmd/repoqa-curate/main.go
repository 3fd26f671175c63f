// Command repoqa-curate builds source code datasets from GitHub.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/repoqa-curate/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/repoqa-curate/internal/adapters/driven/config/file"
	"github.com/custodia-labs/repoqa-curate/internal/adapters/driven/progress"
	"github.com/custodia-labs/repoqa-curate/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/repoqa-curate/internal/adapters/driven/storage/jsonl"
	"github.com/custodia-labs/repoqa-curate/internal/adapters/driving/cli"
	"github.com/custodia-labs/repoqa-curate/internal/connectors/git"
	"github.com/custodia-labs/repoqa-curate/internal/connectors/github"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driving"
	"github.com/custodia-labs/repoqa-curate/internal/core/services"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	tokens := auth.NewEnvPATProvider(auth.TokenEnvVar)

	cli.SetVersion(version)
	cli.SetServices(&cli.ServiceConfig{
		NewCrawler: func(opts cli.RunOptions) driving.Crawler {
			client := github.NewClient(tokens,
				github.WithRetryPolicy(github.RetryPolicyWithRetries(opts.MaxRetries)))
			return services.NewCrawlService(
				github.NewHost(client),
				jsonl.NewSinkFactory(),
				progress.ForTerminal(os.Stderr, !opts.ShowProgress),
			)
		},
		NewCurator: func(opts cli.RunOptions) driving.Curator {
			return services.NewEnsembleService(
				jsonfile.NewCuratedListStore(),
				git.NewCloner(""),
				progress.ForTerminal(os.Stderr, !opts.ShowProgress),
			)
		},
		Tokens: tokens,
		Config: configfile.NewConfigStore(),
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
