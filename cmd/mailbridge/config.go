package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrymomot/mailbridge/pkg/config"
)

// Providers accepted by MAIL_PROVIDER.
const (
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
	ProviderMailgun  = "mailgun"
	ProviderLog      = "log"
)

var (
	errUnknownProvider  = errors.New("unknown mail provider")
	errMissingRecipient = errors.New("CONTACT_EMAIL is required")
	errMissingAPIKey    = errors.New("provider API key is required")
	errMissingDomain    = errors.New("MAILGUN_DOMAIN is required")
	errBodyLimit        = errors.New("MAX_BODY_BYTES must be positive")
	errRequestTimeout   = errors.New("REQUEST_TIMEOUT must be positive")
)

var defaults = map[string]any{
	"address":          ":3000",
	"mail_provider":    ProviderResend,
	"max_body_bytes":   64 << 10,
	"request_timeout":  "15s",
	"shutdown_timeout": "30s",
	"log_level":        "info",
	"log_format":       "json",
}

// Config holds the process settings.
type Config struct {
	Address  string
	Provider string

	ResendAPIKey   string
	SendGridAPIKey string
	MailgunAPIKey  string
	MailgunDomain  string

	ContactEmail   string
	BrandsFile     string
	TemplatesDir   string
	AllowedOrigins []string

	MaxBodyBytes    int64
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	SentryDSN         string
	SentryEnvironment string
	Release           string

	LogLevel  string
	LogFormat string
	LogDir    string
}

// loadConfig reads the environment, plus file when it is not empty.
func loadConfig(file string) (Config, error) {
	c, err := config.Load(config.WithFile(file), config.WithDefaults(defaults))
	if err != nil {
		return Config{}, err
	}

	return Config{
		Address:           c.String("ADDRESS"),
		Provider:          c.String("MAIL_PROVIDER"),
		ResendAPIKey:      c.String("RESEND_API_KEY"),
		SendGridAPIKey:    c.String("SENDGRID_API_KEY"),
		MailgunAPIKey:     c.String("MAILGUN_API_KEY"),
		MailgunDomain:     c.String("MAILGUN_DOMAIN"),
		ContactEmail:      c.String("CONTACT_EMAIL"),
		BrandsFile:        c.String("BRANDS_FILE"),
		TemplatesDir:      c.String("TEMPLATES_DIR"),
		AllowedOrigins:    c.Strings("ALLOWED_ORIGINS"),
		MaxBodyBytes:      c.Int64("MAX_BODY_BYTES"),
		RequestTimeout:    c.Duration("REQUEST_TIMEOUT"),
		ShutdownTimeout:   c.Duration("SHUTDOWN_TIMEOUT"),
		SentryDSN:         c.String("SENTRY_DSN"),
		SentryEnvironment: c.String("SENTRY_ENVIRONMENT"),
		Release:           c.String("RELEASE"),
		LogLevel:          c.String("LOG_LEVEL"),
		LogFormat:         c.String("LOG_FORMAT"),
		LogDir:            c.String("LOG_DIR"),
	}, nil
}

// Validate reports settings the server cannot start without. A brands file
// may carry its own recipients, so CONTACT_EMAIL is only required without one.
func (c Config) Validate() error {
	var errs []error

	if c.ContactEmail == "" && c.BrandsFile == "" {
		errs = append(errs, errMissingRecipient)
	}

	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errBodyLimit)
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errRequestTimeout)
	}

	switch c.Provider {
	case ProviderResend:
		if c.ResendAPIKey == "" {
			errs = append(errs, fmt.Errorf("%w: RESEND_API_KEY", errMissingAPIKey))
		}
	case ProviderSendGrid:
		if c.SendGridAPIKey == "" {
			errs = append(errs, fmt.Errorf("%w: SENDGRID_API_KEY", errMissingAPIKey))
		}
	case ProviderMailgun:
		if c.MailgunAPIKey == "" {
			errs = append(errs, fmt.Errorf("%w: MAILGUN_API_KEY", errMissingAPIKey))
		}
		if c.MailgunDomain == "" {
			errs = append(errs, errMissingDomain)
		}
	case ProviderLog:
	default:
		errs = append(errs, fmt.Errorf("%w: %q", errUnknownProvider, c.Provider))
	}

	return errors.Join(errs...)
}
