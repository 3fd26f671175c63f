package domain

import "time"

// Tree entry types as reported by the Git Trees API.
const (
	EntryBlob   = "blob"
	EntryTree   = "tree"
	EntryCommit = "commit"
)

// RepositoryCandidate identifies a remote repository returned by a search.
// It only lives for the duration of one pipeline iteration.
type RepositoryCandidate struct {
	// Owner is the login of the owning user or organisation.
	Owner string

	// Name is the repository name without the owner.
	Name string

	// DefaultBranch is the branch the crawl reads from.
	DefaultBranch string

	// SizeKB is the repository size reported by the search API.
	SizeKB int

	// Stars is the stargazer count at search time.
	Stars int
}

// FullName returns owner/name.
func (r RepositoryCandidate) FullName() string {
	return r.Owner + "/" + r.Name
}

// TreeEntry is one item of a recursive tree listing.
type TreeEntry struct {
	Path string
	Type string
	Size int64
}

// IsBlob reports whether the entry is file content.
func (e TreeEntry) IsBlob() bool {
	return e.Type == EntryBlob
}

// Tree is a full recursive listing of one repository at one commit.
type Tree struct {
	SHA     string
	Entries []TreeEntry

	// Truncated is set when the hosting API cut the listing short.
	Truncated bool
}

// Commit is a commit reduced to what the activity filter needs.
type Commit struct {
	SHA       string
	Timestamp time.Time
}

// FileContent is a file fetched from the hosting API.
type FileContent struct {
	Path string

	// Encoding is the transfer encoding the API reported, e.g. "base64".
	// Content is only meaningful when Encoding is EncodingBase64.
	Encoding string

	// Content holds the decoded bytes.
	Content []byte
}

// EncodingBase64 is the only content encoding the extractor accepts.
const EncodingBase64 = "base64"
