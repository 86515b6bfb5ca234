// Package logger builds the service's slog loggers.
//
// Every logger writes JSON (or text) to stdout and runs records through
// [LogHandlerDecorator], which adds request-scoped attributes pulled from the
// context by [ContextExtractor] functions:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.ErrorContext(ctx, "provider error", slog.String("provider", "resend"))
//	// {"level":"ERROR","msg":"provider error","provider":"resend","request_id":"01J..."}
//
// [NewWithSentry] additionally forwards warnings to Sentry as logs and errors
// as issues. With an empty DSN it degrades to stdout only, so the same code
// path runs locally. Register [SentryShutdownHook] to flush on exit.
//
// [NewNope] discards everything and is the default for apps and tests.
package logger
