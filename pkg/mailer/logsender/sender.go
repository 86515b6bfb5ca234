// Package logsender implements mailer.Sender for local development.
// Emails are logged instead of delivered and, when a directory is set,
// their HTML body is written to disk for inspection in a browser.
package logsender

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/mailbridge/pkg/id"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/sanitizer"
)

const previewLength = 200

// Sender logs every email it receives.
type Sender struct {
	logger *slog.Logger
	dir    string
}

// Option configures a Sender.
type Option func(*Sender)

// WithDir writes each email's HTML to dir/<message-id>.html.
func WithDir(dir string) Option {
	return func(s *Sender) {
		s.dir = dir
	}
}

// New creates a log-only sender.
func New(logger *slog.Logger, opts ...Option) *Sender {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sender{logger: logger.With(slog.String("component", "logsender"))}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	messageID := id.NewMessageID()

	attrs := []any{
		slog.String("message_id", messageID),
		slog.String("from", email.From),
		slog.Any("to", email.To),
		slog.String("reply_to", email.ReplyTo),
		slog.String("subject", email.Subject),
		slog.String("preview", preview(email)),
	}
	if len(email.Tags) > 0 {
		attrs = append(attrs, slog.Any("tags", email.Tags.Names()))
	}

	if s.dir != "" {
		path := filepath.Join(s.dir, messageID+".html")
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return fmt.Errorf("logsender: %w", err)
		}
		if err := os.WriteFile(path, []byte(email.HTML), 0o644); err != nil {
			return fmt.Errorf("logsender: %w", err)
		}
		attrs = append(attrs, slog.String("file", path))
	}

	s.logger.InfoContext(ctx, "email not delivered (log sender)", attrs...)
	return nil
}

func preview(email *mailer.Email) string {
	text := email.Text
	if text == "" {
		text = email.HTML
	}
	text = sanitizer.PlainText(text)

	runes := []rune(text)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "…"
	}
	return text
}
