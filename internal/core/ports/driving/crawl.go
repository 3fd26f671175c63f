package driving

import (
	"context"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
)

// Crawler runs the search-based dataset crawl.
type Crawler interface {
	// Crawl runs one crawl to completion or to the first fatal error.
	// Stats are returned even on error and describe the work done so far.
	Crawl(ctx context.Context, cfg domain.CrawlConfig) (*CrawlStats, error)
}

// CrawlStats summarises one crawl.
type CrawlStats struct {
	// OutputPath is the JSON-lines file written.
	OutputPath string

	// Query is the search query issued.
	Query string

	// Total is the match count reported by the search.
	Total int

	Visited          int
	RejectedActivity int
	RejectedSize     int
	Accepted         int

	// Buckets is the number of distinct size buckets admitted.
	Buckets int

	// Records is the number of documents written.
	Records int

	// SkippedEncoding counts files skipped for a non-base64 encoding.
	SkippedEncoding int
}
