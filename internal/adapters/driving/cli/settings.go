package cli

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

// loadSettings returns the defaults overlaid with the file at path, if any.
func loadSettings(path string) (domain.Settings, error) {
	settings := domain.DefaultSettings(now())
	if path == "" {
		return settings, nil
	}
	if configStore == nil {
		return settings, errors.New("config store not configured")
	}
	if err := configStore.Load(path, &settings); err != nil {
		return settings, fmt.Errorf("load config: %w", err)
	}
	return settings, nil
}
