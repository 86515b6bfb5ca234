package main

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/mailer/logsender"
	"github.com/dmitrymomot/mailbridge/pkg/mailer/mailgun"
	"github.com/dmitrymomot/mailbridge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailbridge/pkg/mailer/sendgrid"
)

// newSender builds the provider client shared by every brand.
func newSender(cfg Config, log *slog.Logger) (mailer.Sender, error) {
	switch cfg.Provider {
	case ProviderResend:
		return resend.New(resend.Config{
			APIKey:  cfg.ResendAPIKey,
			Timeout: cfg.RequestTimeout,
		})
	case ProviderSendGrid:
		return sendgrid.New(sendgrid.Config{APIKey: cfg.SendGridAPIKey}), nil
	case ProviderMailgun:
		return mailgun.New(mailgun.Config{
			Domain:  cfg.MailgunDomain,
			APIKey:  cfg.MailgunAPIKey,
			Timeout: cfg.RequestTimeout,
		}), nil
	case ProviderLog:
		return logsender.New(log, logsender.WithDir(cfg.LogDir)), nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownProvider, cfg.Provider)
	}
}
