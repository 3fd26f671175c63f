package services

import "github.com/custodia-labs/repoqa-curate/internal/core/domain"

// SizeDiversifier admits at most one repository per size bucket.
// The seen set lives as long as the value; create one per run.
type SizeDiversifier struct {
	interval int
	seen     map[int]struct{}
}

// NewSizeDiversifier creates a diversifier with buckets interval KB wide.
// interval must be positive.
func NewSizeDiversifier(interval int) *SizeDiversifier {
	return &SizeDiversifier{
		interval: interval,
		seen:     make(map[int]struct{}),
	}
}

// Bucket maps a size in KB to its bucket.
func (d *SizeDiversifier) Bucket(sizeKB int) int {
	return sizeKB / d.interval
}

// Admit returns the bucket for sizeKB and whether it was unseen.
// An admitted bucket is recorded; a rejected one changes nothing.
func (d *SizeDiversifier) Admit(sizeKB int) (int, bool) {
	bucket := d.Bucket(sizeKB)
	if _, ok := d.seen[bucket]; ok {
		return bucket, false
	}
	d.seen[bucket] = struct{}{}
	return bucket, true
}

// Seen returns the number of buckets admitted so far.
func (d *SizeDiversifier) Seen() int {
	return len(d.seen)
}

// MatchSourceFiles keeps blobs whose path ends with one of suffixes.
func MatchSourceFiles(entries []domain.TreeEntry, suffixes []string) []domain.TreeEntry {
	matched := make([]domain.TreeEntry, 0, len(entries))
	for _, e := range entries {
		if e.IsBlob() && domain.HasSuffix(e.Path, suffixes) {
			matched = append(matched, e)
		}
	}
	return matched
}

// SourceSizeKB sums entry sizes in fractional KB and truncates once.
func SourceSizeKB(entries []domain.TreeEntry) int {
	var total float64
	for _, e := range entries {
		total += float64(e.Size) / 1024
	}
	return int(total)
}
