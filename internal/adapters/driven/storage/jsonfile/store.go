// Package jsonfile stores the curated repository list as a single JSON document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// Ensure CuratedListStore implements the interface.
var _ driven.CuratedListStore = (*CuratedListStore)(nil)

// CuratedListStore reads and writes curated lists on the local filesystem.
type CuratedListStore struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewCuratedListStore creates a store that validates every entry it loads.
func NewCuratedListStore() *CuratedListStore {
	enLoc := en.New()
	uni := ut.New(enLoc, enLoc)
	trans, _ := uni.GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())

	// prefer json tag names in messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		tag := fld.Tag.Get("json")
		if tag == "-" || tag == "" {
			return fld.Name
		}
		if idx := strings.Index(tag, ","); idx >= 0 {
			tag = tag[:idx]
		}
		return tag
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	return &CuratedListStore{validate: v, trans: trans}
}

// Load reads the list at path and validates each entry.
func (s *CuratedListStore) Load(_ context.Context, path string) (domain.CuratedList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read list: %w", err)
	}

	var list domain.CuratedList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", domain.ErrInvalidInput, path, err)
	}

	for _, lang := range list.Languages() {
		for i, repo := range list[lang] {
			if err := s.check(repo); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %s", domain.ErrInvalidInput, lang, i, err)
			}
		}
	}
	return list, nil
}

// check validates one entry and renders field errors as one message.
func (s *CuratedListStore) check(repo domain.CuratedRepo) error {
	err := s.validate.Struct(repo)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(s.trans))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Save writes the whole list to path in one piece. The document is written
// to a temporary file in the same directory and renamed into place, so a
// failed write never leaves a partial list at path.
func (s *CuratedListStore) Save(_ context.Context, path string, list domain.CuratedList) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode list: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".repoqa-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close list: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename list: %w", err)
	}
	return nil
}
