package driven

import "github.com/custodia-labs/repoqa-curate/internal/core/domain"

// ConfigStore reads and writes the optional configuration file.
// Implementations handle persistence (e.g., TOML files).
type ConfigStore interface {
	// Load overlays the values present in the file at path onto settings.
	// Keys absent from the file leave settings untouched.
	Load(path string, settings *domain.Settings) error

	// Save writes settings to path. An existing file is not overwritten.
	Save(path string, settings domain.Settings) error
}
