package domain

import (
	"fmt"
	"sort"
	"strings"
)

// SuffixTable maps a language name to the filename suffixes that count as
// source code for it.
type SuffixTable map[string][]string

// SearchSuffixes is used by the search-based crawl.
var SearchSuffixes = SuffixTable{
	"python":     {".py"},
	"javascript": {".js"},
	"go":         {".go"},
	"c++":        {".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx", ".c", ".h"},
	"java":       {".java"},
	"typescript": {".ts"},
	"c":          {".c", ".h"},
	"c#":         {".cs"},
	"php":        {".php"},
	"rust":       {".rs"},
}

// CloneSuffixes is used by the clone-based pipeline over the curated list.
var CloneSuffixes = SuffixTable{
	"python":     {".py"},
	"go":         {".go"},
	"c++":        {".cpp", ".hpp", ".cc", ".hh", ".cxx", ".hxx", ".c", ".h"},
	"java":       {".java"},
	"typescript": {".ts"},
	"php":        {".php"},
	"rust":       {".rs"},
}

// Lookup returns the suffixes registered for language.
// Matching is case-insensitive.
func (t SuffixTable) Lookup(language string) ([]string, error) {
	suffixes, ok := t[strings.ToLower(strings.TrimSpace(language))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedLanguage, language, strings.Join(t.Languages(), ", "))
	}
	return suffixes, nil
}

// Languages returns the table's language names in sorted order.
func (t SuffixTable) Languages() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasSuffix reports whether path ends with any of suffixes.
func HasSuffix(path string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}
