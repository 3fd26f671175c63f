// Package logger provides logging for the repoqa-curate CLI.
// Messages go to stderr through a zerolog console writer. Info and
// warnings are always printed; debug messages and section headers only
// when verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	runID   string
	log     = build()
)

// build creates the zerolog logger from the current settings.
// Callers must hold mu, except during package init.
func build() zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:        output,
		TimeFormat: time.TimeOnly,
		NoColor:    !isTerminal(output),
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	ctx := zerolog.New(w).Level(level).With().Timestamp()
	if runID != "" {
		ctx = ctx.Str("run", runID)
	}
	return ctx.Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build()
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build()
}

// SetRunID tags every subsequent message with a run identifier.
// An empty id removes the tag.
func SetRunID(id string) {
	mu.Lock()
	defer mu.Unlock()
	runID = id
	log = build()
}

// Get returns the underlying zerolog logger.
func Get() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	log.Debug().Msgf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message.
func Info(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	log.Info().Msgf(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	log.Warn().Msgf(format, args...)
}

// Error prints an error message with err attached.
func Error(err error, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	log.Error().Err(err).Msgf(format, args...)
}
