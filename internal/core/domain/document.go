package domain

import "time"

// Document is one extracted source file, written as a single JSON line.
type Document struct {
	RepoName  string `json:"repo_name"`
	RepoOwner string `json:"repo_owner"`
	CommitSHA string `json:"commit_sha"`

	// RepoSize is the matched code size in KB the size bucket was derived from.
	RepoSize int `json:"repo_size"`

	// Timestamp is the fetch time in RFC 3339 format.
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
	Content   string `json:"content"`
}

// NewDocument builds a Document stamped with fetchedAt.
func NewDocument(repo RepositoryCandidate, commitSHA string, sizeKB int, path, content string, fetchedAt time.Time) Document {
	return Document{
		RepoName:  repo.Name,
		RepoOwner: repo.Owner,
		CommitSHA: commitSHA,
		RepoSize:  sizeKB,
		Timestamp: fetchedAt.Format(time.RFC3339Nano),
		Path:      path,
		Content:   content,
	}
}
