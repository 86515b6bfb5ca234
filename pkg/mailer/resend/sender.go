// Package resend implements mailer.Sender on top of the Resend API.
package resend

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

const providerName = "resend"

// Config holds Resend provider configuration.
type Config struct {
	APIKey  string
	BaseURL string        // API endpoint override, mostly for tests
	Timeout time.Duration // Default: 10s
}

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) (*Sender, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resend.NewCustomClient(mailer.NewHTTPClient(cfg.Timeout), cfg.APIKey)
	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("resend: invalid base url: %w", err)
		}
		client.BaseURL = u
	}

	return &Sender{client: client, config: cfg}, nil
}

// Check implements mailer.Checker.
func (s *Sender) Check(context.Context) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("resend: %w: missing api key", mailer.ErrNotConfigured)
	}
	return nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	ctx, status := mailer.TrackStatus(ctx)
	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return mailer.ClassifyStatus(providerName, status(), fmt.Errorf("resend: %w", err))
	}

	return nil
}

func convertTags(tags mailer.Tags) []resend.Tag {
	pairs := tags.Pairs()
	result := make([]resend.Tag, len(pairs))
	for i, p := range pairs {
		result[i] = resend.Tag{Name: tagSafe(p.Name), Value: tagSafe(p.Value)}
	}
	return result
}

// tagSafe keeps ASCII letters, digits, underscores and dashes, which is all
// Resend accepts in tag names and values.
func tagSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '_'
	}, s)
}
