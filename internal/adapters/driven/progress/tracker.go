// Package progress renders progress bars on a terminal.
package progress

import (
	"io"
	"os"
	"sync"

	"github.com/cheggaaa/pb/v3"
	"golang.org/x/term"

	"github.com/custodia-labs/repoqa-curate/internal/core/ports/driven"
)

// Ensure Tracker implements the interface.
var _ driven.ProgressTracker = (*Tracker)(nil)

const (
	boundedTemplate   pb.ProgressBarTemplate = `{{string . "prefix"}} {{counters . }} {{bar . }} {{percent . }} {{etime . }}`
	unboundedTemplate pb.ProgressBarTemplate = `{{string . "prefix"}} {{counters . }} {{etime . }}`
)

// Tracker draws one bar at a time. A disabled tracker does nothing.
type Tracker struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	bar     *pb.ProgressBar
}

// New creates a tracker writing to out.
func New(out io.Writer, enabled bool) *Tracker {
	return &Tracker{out: out, enabled: enabled}
}

// ForTerminal creates a tracker on f that is enabled only when f is a
// terminal and disabled is false.
func ForTerminal(f *os.File, disabled bool) *Tracker {
	return New(f, !disabled && term.IsTerminal(int(f.Fd())))
}

// Begin starts a new bar, finishing any bar still open.
func (t *Tracker) Begin(label string, total int) {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bar != nil {
		t.bar.Finish()
	}

	tmpl := boundedTemplate
	if total <= 0 {
		tmpl = unboundedTemplate
	}
	bar := tmpl.New(max(total, 0))
	bar.SetWriter(t.out)
	bar.Set("prefix", label)
	t.bar = bar.Start()
}

// Advance moves the current bar by one.
func (t *Tracker) Advance() {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bar != nil {
		t.bar.Increment()
	}
}

// Done finishes the current bar.
func (t *Tracker) Done() {
	if !t.enabled {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.bar != nil {
		t.bar.Finish()
		t.bar = nil
	}
}
