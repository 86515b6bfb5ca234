package logger

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// ErrSentryFlushTimeout is returned by the shutdown hook when buffered events
// could not be delivered in time.
var ErrSentryFlushTimeout = errors.New("logger: sentry flush timed out")

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	// MinLevel is the lowest level forwarded to Sentry as a log entry
	// (slog.LevelWarn or slog.LevelError). Errors always become issues.
	MinLevel slog.Level
	// Stdout configures the local handler that always receives every record.
	Stdout Options
}

// NewWithSentry creates a logger that writes to stdout and to Sentry.
// If DSN is empty, only stdout logging is enabled. The boolean reports
// whether Sentry was initialized, so callers know to flush it on shutdown.
func NewWithSentry(cfg SentryConfig, extractors ...ContextExtractor) (*slog.Logger, bool) {
	stdoutHandler := newStdoutHandler(cfg.Stdout)

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...)), false
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(stdoutHandler, extractors...)), false
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newMultiHandler(stdoutHandler, sentryHandler)
	return slog.New(NewLogHandlerDecorator(combined, extractors...)), true
}

// SentryShutdownHook flushes buffered Sentry events within the shutdown
// deadline, falling back to two seconds when ctx has none.
func SentryShutdownHook() func(context.Context) error {
	return func(ctx context.Context) error {
		timeout := 2 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if !sentry.Flush(timeout) {
			return ErrSentryFlushTimeout
		}
		return nil
	}
}
