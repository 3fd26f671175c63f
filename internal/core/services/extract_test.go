package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

var fixedNow = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func b64File(path, content string) *domain.FileContent {
	return &domain.FileContent{Path: path, Encoding: domain.EncodingBase64, Content: []byte(content)}
}

func TestFileExtractor_Extract(t *testing.T) {
	repo := domain.RepositoryCandidate{Owner: "acme", Name: "app", DefaultBranch: "main"}
	entries := []domain.TreeEntry{
		{Path: "a.go", Type: domain.EntryBlob, Size: 10},
		{Path: "big.go", Type: domain.EntryBlob, Size: 2 << 20},
		{Path: "pkg/b.go", Type: domain.EntryBlob, Size: 20},
	}

	t.Run("writes one record per base64 file and skips the rest", func(t *testing.T) {
		host := &mockHost{files: map[string]*domain.FileContent{
			"a.go":     b64File("a.go", "package a\n"),
			"big.go":   {Path: "big.go", Encoding: "none"},
			"pkg/b.go": b64File("pkg/b.go", "package pkg\n"),
		}}
		sink := &mockSink{}
		x := NewFileExtractor(host, sink, fixedClock)

		res, err := x.Extract(context.Background(), repo, "deadbeef", 7, entries)

		require.NoError(t, err)
		assert.Equal(t, ExtractResult{Records: 2, Skipped: 1}, res)
		require.Len(t, sink.docs, 2)
		assert.Equal(t, domain.Document{
			RepoName:  "app",
			RepoOwner: "acme",
			CommitSHA: "deadbeef",
			RepoSize:  7,
			Timestamp: "2024-04-01T10:00:00Z",
			Path:      "a.go",
			Content:   "package a\n",
		}, sink.docs[0])
		assert.Equal(t, "pkg/b.go", sink.docs[1].Path)
		assert.Equal(t, []string{"deadbeef", "deadbeef", "deadbeef"}, host.fileRefs)
	})

	t.Run("invalid UTF-8 aborts and keeps earlier records", func(t *testing.T) {
		host := &mockHost{files: map[string]*domain.FileContent{
			"a.go":     b64File("a.go", "package a\n"),
			"big.go":   {Path: "big.go", Encoding: domain.EncodingBase64, Content: []byte{0xff, 0xfe, 0xfd}},
			"pkg/b.go": b64File("pkg/b.go", "package pkg\n"),
		}}
		sink := &mockSink{}
		x := NewFileExtractor(host, sink, fixedClock)

		res, err := x.Extract(context.Background(), repo, "deadbeef", 7, entries)

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidUTF8)
		assert.Contains(t, err.Error(), "acme/app/big.go")
		assert.Equal(t, 1, res.Records)
		assert.Len(t, sink.docs, 1)
		assert.Equal(t, []string{"a.go", "big.go"}, host.fileCalls)
	})

	t.Run("host errors are fatal", func(t *testing.T) {
		boom := errors.New("forbidden")
		host := &mockHost{fileErr: boom}
		sink := &mockSink{}

		_, err := NewFileExtractor(host, sink, fixedClock).Extract(context.Background(), repo, "x", 0, entries)

		assert.ErrorIs(t, err, boom)
		assert.Empty(t, sink.docs)
	})

	t.Run("sink errors are fatal", func(t *testing.T) {
		host := &mockHost{files: map[string]*domain.FileContent{"a.go": b64File("a.go", "package a")}}
		sink := &mockSink{writeErr: errors.New("disk full")}

		_, err := NewFileExtractor(host, sink, fixedClock).Extract(context.Background(), repo, "x", 0, entries[:1])

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		host := &mockHost{}

		_, err := NewFileExtractor(host, &mockSink{}, nil).Extract(ctx, repo, "x", 0, entries)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, host.fileCalls)
	})

	t.Run("no entries writes nothing", func(t *testing.T) {
		sink := &mockSink{}

		res, err := NewFileExtractor(&mockHost{}, sink, fixedClock).Extract(context.Background(), repo, "x", 0, nil)

		require.NoError(t, err)
		assert.Zero(t, res.Records)
		assert.Empty(t, sink.docs)
	})
}
