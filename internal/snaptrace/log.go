package snaptrace

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// defaultLevel is the level of the default logger; DebugLog lowers it to debug
// once Debug is on.
var defaultLevel = new(slog.LevelVar)

// Logger receives warnings and debug output of the package.
var Logger = newDefaultLogger(os.Stderr)

func newDefaultLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: defaultLevel}))
}

// SetLogger replaces the package logger; nil restores a stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newDefaultLogger(os.Stderr)
	}
	Logger = l
}

// NewLogger builds a text or JSON slog logger writing to w (stderr when nil).
func NewLogger(cfg LogCfg, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
