package storyglyph

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/storyglyph/storyglyph/atlas"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for storyglyph and its sub-packages.
// By default no log output is produced. Pass nil to restore the silent
// default. Safe for concurrent use.
//
// Log levels used:
//   - [slog.LevelDebug]: per-rebuild diagnostics (vertex counts, scroll state)
//   - [slog.LevelInfo]: lifecycle events (backend selected, atlas built)
//   - [slog.LevelWarn]: non-fatal degradation (atlas full, vertex cap hit)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	atlas.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger. SetLogger
// calls on a Renderer propagate through it.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}
