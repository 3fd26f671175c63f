// Package jsonl writes extracted documents as JSON lines.
package jsonl

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/repoqa-curate/internal/core/domain"
	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// Ensure the sink types implement the interfaces.
var (
	_ driven.DocumentSink        = (*Sink)(nil)
	_ driven.DocumentSinkFactory = (*SinkFactory)(nil)
)

// Sink appends one JSON object per line to a file.
// Every Write goes straight to the file, so an interrupted run leaves a
// valid prefix of complete lines.
type Sink struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	closed bool
}

// Create opens a new sink at path. The parent directory is created when
// missing. An existing file is never overwritten.
func Create(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	return &Sink{file: f, enc: enc}, nil
}

// Write encodes doc as one line.
func (s *Sink) Write(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return os.ErrClosed
	}
	if err := s.enc.Encode(doc); err != nil {
		return fmt.Errorf("write %s: %w", doc.Path, err)
	}
	return nil
}

// Close syncs and closes the file. Closing twice is a no-op.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.file.Sync(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("sync: %w", err)
	}
	return s.file.Close()
}

// SinkFactory creates JSON-lines sinks.
type SinkFactory struct{}

// NewSinkFactory creates a sink factory.
func NewSinkFactory() *SinkFactory {
	return &SinkFactory{}
}

// Create opens a new sink at path.
func (f *SinkFactory) Create(path string) (driven.DocumentSink, error) {
	s, err := Create(path)
	if err != nil {
		return nil, err
	}
	return s, nil
}
