package file

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore is a file-based implementation of driven.ConfigStore using TOML.
//
// The file has one table per pipeline:
//
//	[crawl]
//	language = "go"
//	stars = 100
//
//	[clone]
//	list_path = "lists.json"
type ConfigStore struct{}

// NewConfigStore creates a new TOML-based config store.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

// Load reads the TOML file at path onto settings. Unknown keys are rejected
// so that a misspelt option does not silently fall back to its default.
func (s *ConfigStore) Load(path string, settings *domain.Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(settings); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("%w: config %s: %s", domain.ErrInvalidInput, path, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("%w: config %s:%d:%d: %s", domain.ErrInvalidInput, path, row, col, decodeErr.Error())
		}
		return fmt.Errorf("%w: config %s: %w", domain.ErrInvalidInput, path, err)
	}
	return nil
}

// Save writes settings to path as TOML. It refuses to replace an existing file.
func (s *ConfigStore) Save(path string, settings domain.Settings) error {
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create config: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("write config: %w", err)
	}
	return f.Close()
}
