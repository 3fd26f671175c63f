package driven

import "github.com/custodia-labs/repoqa-curate/internal/core/domain"

// DocumentSink receives extracted documents one at a time.
// Each Write reaches the underlying file before it returns; there is no batching.
type DocumentSink interface {
	Write(doc domain.Document) error
	Close() error
}

// DocumentSinkFactory creates a new sink at path. The file must not exist.
type DocumentSinkFactory interface {
	Create(path string) (DocumentSink, error)
}
