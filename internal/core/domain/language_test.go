package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuffixTable_Lookup(t *testing.T) {
	t.Run("returns suffixes for known language", func(t *testing.T) {
		suffixes, err := SearchSuffixes.Lookup("go")

		require.NoError(t, err)
		assert.Equal(t, []string{".go"}, suffixes)
	})

	t.Run("is case insensitive", func(t *testing.T) {
		suffixes, err := SearchSuffixes.Lookup("  Python ")

		require.NoError(t, err)
		assert.Equal(t, []string{".py"}, suffixes)
	})

	t.Run("rejects unknown language", func(t *testing.T) {
		_, err := SearchSuffixes.Lookup("cobol")

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnsupportedLanguage))
		assert.Contains(t, err.Error(), "cobol")
		assert.Contains(t, err.Error(), "supported: c, c#, c++, go, java, javascript, php, python, rust, typescript")
	})

	t.Run("clone table is narrower than search table", func(t *testing.T) {
		_, err := CloneSuffixes.Lookup("javascript")
		assert.ErrorIs(t, err, ErrUnsupportedLanguage)

		_, err = SearchSuffixes.Lookup("javascript")
		assert.NoError(t, err)
	})
}

func TestSuffixTable_Languages(t *testing.T) {
	langs := CloneSuffixes.Languages()

	assert.Equal(t, []string{"c++", "go", "java", "php", "python", "rust", "typescript"}, langs)
}

func TestHasSuffix(t *testing.T) {
	cpp := SearchSuffixes["c++"]

	assert.True(t, HasSuffix("src/main.cpp", cpp))
	assert.True(t, HasSuffix("include/util.h", cpp))
	assert.False(t, HasSuffix("README.md", cpp))
	assert.False(t, HasSuffix("Makefile", cpp))
	assert.False(t, HasSuffix("a.go", nil))
}
