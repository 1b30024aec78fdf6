package fim

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// LoggerSetter is implemented by components that keep their own logger
// (the GPU pipeline does, to avoid an import cycle with this package).
type LoggerSetter interface {
	SetLogger(*slog.Logger)
}

var (
	settersMu sync.Mutex
	setters   []LoggerSetter
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for fim and all its sub-packages.
// By default fim produces no log output.
//
// Pass nil to restore the silent default.
//
// Log levels used by fim:
//   - [slog.LevelDebug]: glyph loads, GPU buffer sizes, key dispatch
//   - [slog.LevelInfo]: font resolution, configuration file loaded
//   - [slog.LevelWarn]: skipped configuration lines, unloadable glyphs,
//     out-of-range edits
//
// Example:
//
//	fim.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	settersMu.Lock()
	defer settersMu.Unlock()
	for _, s := range setters {
		s.SetLogger(l)
	}
}

// Logger returns the current logger used by fim.
// Sub-packages call this to share one logger configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// RegisterLoggerSetter adds s to the set of components that receive the
// logger on every SetLogger call. s immediately receives the current logger.
func RegisterLoggerSetter(s LoggerSetter) {
	if s == nil {
		return
	}
	settersMu.Lock()
	setters = append(setters, s)
	settersMu.Unlock()
	s.SetLogger(Logger())
}
