package panelbg

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so the caller skips message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a panel is already running.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for panelbg and its sub-packages.
// By default panelbg produces no log output.
//
// Pass nil to restore the default silent logger.
//
// Log levels used by panelbg:
//   - [slog.LevelDebug]: pipeline stage runs, desktop snapshots, X events
//   - [slog.LevelWarn]: degraded rendering (image decode failure, no
//     wallpaper, failed background bind)
//
// Example:
//
//	panelbg.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by panelbg.
// The x11 and watch packages call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
