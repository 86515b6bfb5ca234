package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the stdout handler.
type Options struct {
	Output io.Writer  // defaults to os.Stdout
	Format string     // "json" (default) or "text"
	Level  slog.Level // minimum level, defaults to Info
}

// New creates a JSON-formatted stdout logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithOptions(Options{}, extractors...)
}

// NewWithOptions creates a logger with the given output settings.
func NewWithOptions(opts Options, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newStdoutHandler(opts), extractors...))
}

func newStdoutHandler(opts Options) slog.Handler {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if strings.EqualFold(opts.Format, "text") {
		return slog.NewTextHandler(out, hopts)
	}
	return slog.NewJSONHandler(out, hopts)
}

// ParseLevel maps "debug", "info", "warn"/"warning" and "error" to a slog
// level. Unknown values yield Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// NewNope returns a logger that drops every record. Apps start with it until
// WithLogger or WithCustomLogger replaces it.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
