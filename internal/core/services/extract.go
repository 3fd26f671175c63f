package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
	"github.com/custodia-labs/repoqa-curate/internal/logger"
)

// FileExtractor fetches matched files and writes one document per file.
type FileExtractor struct {
	host driven.RepositoryHost
	sink driven.DocumentSink
	now  func() time.Time
}

// NewFileExtractor creates an extractor writing to sink.
func NewFileExtractor(host driven.RepositoryHost, sink driven.DocumentSink, now func() time.Time) *FileExtractor {
	if now == nil {
		now = time.Now
	}
	return &FileExtractor{host: host, sink: sink, now: now}
}

// ExtractResult counts the outcome of one repository's extraction.
type ExtractResult struct {
	Records int
	Skipped int
}

// Extract fetches every entry at commitSHA and writes it to the sink as soon
// as it is decoded. Entries not served as base64 are skipped. Content that is
// not UTF-8 aborts with domain.ErrInvalidUTF8; records already written stay.
func (x *FileExtractor) Extract(
	ctx context.Context,
	repo domain.RepositoryCandidate,
	commitSHA string,
	sizeKB int,
	entries []domain.TreeEntry,
) (ExtractResult, error) {
	var res ExtractResult
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		fc, err := x.host.GetFileContent(ctx, repo.Owner, repo.Name, entry.Path, commitSHA)
		if err != nil {
			return res, fmt.Errorf("get %s/%s: %w", repo.FullName(), entry.Path, err)
		}

		if fc.Encoding != domain.EncodingBase64 {
			logger.Debug("Skipping %s/%s: encoding %q", repo.FullName(), entry.Path, fc.Encoding)
			res.Skipped++
			continue
		}

		if !utf8.Valid(fc.Content) {
			return res, fmt.Errorf("%s/%s: %w", repo.FullName(), entry.Path, domain.ErrInvalidUTF8)
		}

		doc := domain.NewDocument(repo, commitSHA, sizeKB, entry.Path, string(fc.Content), x.now())
		if err := x.sink.Write(doc); err != nil {
			return res, fmt.Errorf("write %s/%s: %w", repo.FullName(), entry.Path, err)
		}
		res.Records++
	}
	return res, nil
}
