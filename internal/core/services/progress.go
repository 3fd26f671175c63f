package services

import "github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"

// nopProgress is used when no tracker is configured.
type nopProgress struct{}

func (nopProgress) Begin(string, int) {}
func (nopProgress) Advance()          {}
func (nopProgress) Done()             {}

func progressOrNop(p driven.ProgressTracker) driven.ProgressTracker {
	if p == nil {
		return nopProgress{}
	}
	return p
}
