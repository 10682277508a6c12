package markers

import (
	"log/slog"

	"github.com/gogpu/markers/internal/logging"
)

// SetLogger configures the logger for markers and all its sub-packages.
// By default, markers produces no log output. Call SetLogger to enable
// logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by markers:
//   - [slog.LevelDebug]: pass statistics (markers drawn, slices, slice size)
//   - [slog.LevelInfo]: lifecycle events (atlas ready, layer mounted)
//   - [slog.LevelWarn]: degraded states (no surface backend)
//
// Example:
//
//	markers.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by markers.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
