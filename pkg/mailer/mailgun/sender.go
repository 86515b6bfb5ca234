// Package mailgun implements mailer.Sender on top of the Mailgun API.
package mailgun

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

const providerName = "mailgun"

// Config holds Mailgun provider configuration.
type Config struct {
	Domain  string
	APIKey  string
	APIBase string        // e.g. mailgun.APIBaseEU; empty keeps the US endpoint
	Timeout time.Duration // Default: 10s
}

// Sender implements mailer.Sender using the Mailgun API.
type Sender struct {
	mg     *mailgun.MailgunImpl
	config Config
}

// New creates a new Mailgun sender.
func New(cfg Config) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	mg := mailgun.NewMailgun(cfg.Domain, cfg.APIKey)
	mg.SetClient(mailer.NewHTTPClient(cfg.Timeout))
	if cfg.APIBase != "" {
		mg.SetAPIBase(cfg.APIBase)
	}

	return &Sender{mg: mg, config: cfg}
}

// Check implements mailer.Checker.
func (s *Sender) Check(context.Context) error {
	switch {
	case s.config.APIKey == "":
		return fmt.Errorf("mailgun: %w: missing api key", mailer.ErrNotConfigured)
	case s.config.Domain == "":
		return fmt.Errorf("mailgun: %w: missing domain", mailer.ErrNotConfigured)
	}
	return nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	message := s.mg.NewMessage(email.From, email.Subject, email.Text, email.To...)
	message.SetHTML(email.HTML)

	if email.ReplyTo != "" {
		message.SetReplyTo(email.ReplyTo)
	}
	for _, cc := range email.CC {
		message.AddCC(cc)
	}
	for _, bcc := range email.BCC {
		message.AddBCC(bcc)
	}
	for k, v := range email.Headers {
		message.AddHeader(k, v)
	}
	if len(email.Tags) > 0 {
		if err := message.AddTag(email.Tags.Names()...); err != nil {
			return fmt.Errorf("mailgun: %w", err)
		}
	}

	ctx, status := mailer.TrackStatus(ctx)
	if _, _, err := s.mg.Send(ctx, message); err != nil {
		return mailer.ClassifyStatus(providerName, status(), fmt.Errorf("mailgun: %w", err))
	}

	return nil
}
