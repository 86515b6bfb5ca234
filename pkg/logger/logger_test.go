package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailbridge/pkg/logger"
)

type reqIDKey struct{}

func reqIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(reqIDKey{}).(string); ok {
		return slog.String("request_id", v), true
	}
	return slog.Attr{}, false
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestNewWithOptions_Extractors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Output: &buf}, reqIDExtractor, nil)

	ctx := context.WithValue(context.Background(), reqIDKey{}, "req-1")
	log.With("component", "contact").ErrorContext(ctx, "provider error", slog.String("provider", "resend"))

	line := decodeLine(t, &buf)
	require.Equal(t, "provider error", line["msg"])
	require.Equal(t, "req-1", line["request_id"])
	require.Equal(t, "resend", line["provider"])
	require.Equal(t, "contact", line["component"])
}

func TestLogHandlerDecorator_NoDuplicateKeys(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), reqIDKey{}, "from-ctx")

	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "bound with With",
			log:  func(l *slog.Logger) { l.With("request_id", "bound").InfoContext(ctx, "sent") },
			want: "bound",
		},
		{
			name: "passed at the call site",
			log:  func(l *slog.Logger) { l.InfoContext(ctx, "sent", "request_id", "explicit") },
			want: "explicit",
		},
		{
			name: "only in context",
			log:  func(l *slog.Logger) { l.With("brand", "agenceweb").InfoContext(ctx, "sent") },
			want: "from-ctx",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.log(logger.NewWithOptions(logger.Options{Output: &buf}, reqIDExtractor))

			require.Equal(t, 1, strings.Count(buf.String(), `"request_id"`))
			require.Equal(t, tt.want, decodeLine(t, &buf)["request_id"])
		})
	}
}

func TestLogHandlerDecorator_GroupIsNewNamespace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Output: &buf}, reqIDExtractor)

	ctx := context.WithValue(context.Background(), reqIDKey{}, "req-2")
	log.With("request_id", "outer").WithGroup("mail").InfoContext(ctx, "sent")

	line := decodeLine(t, &buf)
	require.Equal(t, "outer", line["request_id"])
	require.Equal(t, map[string]any{"request_id": "req-2"}, line["mail"])
}

func TestNewWithOptions_NoValueNoAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Output: &buf}, reqIDExtractor)
	log.Info("started")

	line := decodeLine(t, &buf)
	require.NotContains(t, line, "request_id")
}

func TestNewWithOptions_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Output: &buf, Level: slog.LevelWarn})
	log.Info("hidden")
	require.Zero(t, buf.Len())

	log.Warn("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestNewWithOptions_TextFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithOptions(logger.Options{Output: &buf, Format: "text"})
	log.Info("hello", "k", "v")
	require.Contains(t, buf.String(), "msg=hello")
	require.Contains(t, buf.String(), "k=v")
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, logger.ParseLevel(in), in)
	}
}

func TestNewWithSentry_EmptyDSN(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log, enabled := logger.NewWithSentry(logger.SentryConfig{Stdout: logger.Options{Output: &buf}})
	require.False(t, enabled)

	log.Error("boom")
	require.Contains(t, buf.String(), "boom")
}

func TestNewNope(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	require.NotPanics(t, func() { log.Error("discarded") })
}
