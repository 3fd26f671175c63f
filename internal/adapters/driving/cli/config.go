package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

// DefaultConfigPath is where config init writes when no path is given.
const DefaultConfigPath = "repoqa.toml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a configuration file with the default settings",
	Long: `Writes every crawl and clone option with its default value to a TOML file
that can be passed to crawl and clone with --config. An existing file is
never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	path := DefaultConfigPath
	if len(args) > 0 {
		path = args[0]
	}

	// The clone target is stamped per run, so it is left out of the file.
	settings := domain.DefaultSettings(now())
	settings.Clone.TargetPath = ""

	if err := configStore.Save(path, settings); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
