package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

var cloneFlags struct {
	configPath string
	listPath   string
}

var cloneCmd = &cobra.Command{
	Use:   "clone [target_path]",
	Short: "Fill a curated list with source files by cloning",
	Long: `Reads the curated list, clones every repository that has no content yet,
checks out its pinned commit and stores the source files under its
entrypoint path. The populated list is written to target_path, by default
repoqa-{timestamp}.json. Nothing is written if any clone fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClone,
}

func init() {
	f := cloneCmd.Flags()
	f.StringVar(&cloneFlags.configPath, "config", "", "TOML config file")
	f.StringVar(&cloneFlags.listPath, "list", "scripts/cherrypick/lists.json", "curated list to read")

	rootCmd.AddCommand(cloneCmd)
}

// cloneConfig merges defaults, the config file, positional args and changed flags.
func cloneConfig(cmd *cobra.Command, args []string) (domain.CloneConfig, error) {
	settings, err := loadSettings(cloneFlags.configPath)
	if err != nil {
		return domain.CloneConfig{}, err
	}
	cfg := settings.Clone

	if len(args) > 0 {
		cfg.TargetPath = args[0]
	}
	if cmd.Flags().Changed("list") {
		cfg.ListPath = cloneFlags.listPath
	}
	return cfg, cfg.Validate()
}

func runClone(cmd *cobra.Command, args []string) error {
	if newCurator == nil {
		return errors.New("clone service not configured")
	}

	cfg, err := cloneConfig(cmd, args)
	if err != nil {
		return err
	}

	logger.SetRunID(uuid.NewString())
	defer logger.SetRunID("")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := newCurator(runOptions(0)).Curate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("clone failed: %w", err)
	}

	cmd.Printf("Cloned %d repositories (%d files), skipped %d\n", stats.Cloned, stats.Files, stats.Skipped)
	cmd.Printf("Wrote %s\n", cfg.TargetPath)
	return nil
}
