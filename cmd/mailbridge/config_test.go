package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("CONTACT_EMAIL", "inbox@19wires.com")
	t.Setenv("RESEND_API_KEY", "re_test")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	require.Equal(t, ":3000", cfg.Address)
	require.Equal(t, ProviderResend, cfg.Provider)
	require.Equal(t, "inbox@19wires.com", cfg.ContactEmail)
	require.Equal(t, "re_test", cfg.ResendAPIKey)
	require.EqualValues(t, 65536, cfg.MaxBodyBytes)
	require.Equal(t, 15*time.Second, cfg.RequestTimeout)
	require.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	require.Empty(t, cfg.AllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("MAIL_PROVIDER", "mailgun")
	t.Setenv("MAILGUN_API_KEY", "key-test")
	t.Setenv("MAILGUN_DOMAIN", "mg.19wires.com")
	t.Setenv("ALLOWED_ORIGINS", "https://19wires.com, https://www.19wires.com")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg, err := loadConfig("")
	require.NoError(t, err)

	require.Equal(t, ProviderMailgun, cfg.Provider)
	require.Equal(t, "mg.19wires.com", cfg.MailgunDomain)
	require.Equal(t, []string{"https://19wires.com", "https://www.19wires.com"}, cfg.AllowedOrigins)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
	require.EqualValues(t, 1024, cfg.MaxBodyBytes)
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("ADDRESS", ":9000")

	path := filepath.Join(t.TempDir(), "mailbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("address: \":8080\"\ncontact_email: file@19wires.com\nmail_provider: log\n"), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, ":9000", cfg.Address, "environment wins over the file")
	require.Equal(t, "file@19wires.com", cfg.ContactEmail)
	require.Equal(t, ProviderLog, cfg.Provider)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func withLimits(c Config) Config {
	c.MaxBodyBytes = 65536
	c.RequestTimeout = 15 * time.Second
	return c
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		errs []error
	}{
		{
			name: "resend",
			cfg:  withLimits(Config{Provider: ProviderResend, ResendAPIKey: "re_test", ContactEmail: "a@b.c"}),
		},
		{
			name: "log needs no key",
			cfg:  withLimits(Config{Provider: ProviderLog, ContactEmail: "a@b.c"}),
		},
		{
			name: "brands file replaces recipient",
			cfg:  withLimits(Config{Provider: ProviderLog, BrandsFile: "brands.yaml"}),
		},
		{
			name: "missing recipient",
			cfg:  Config{Provider: ProviderLog},
			errs: []error{errMissingRecipient},
		},
		{
			name: "missing resend key",
			cfg:  Config{Provider: ProviderResend, ContactEmail: "a@b.c"},
			errs: []error{errMissingAPIKey},
		},
		{
			name: "missing sendgrid key",
			cfg:  Config{Provider: ProviderSendGrid, ContactEmail: "a@b.c"},
			errs: []error{errMissingAPIKey},
		},
		{
			name: "mailgun needs key and domain",
			cfg:  Config{Provider: ProviderMailgun},
			errs: []error{errMissingRecipient, errMissingAPIKey, errMissingDomain},
		},
		{
			name: "zero body limit",
			cfg:  Config{Provider: ProviderLog, ContactEmail: "a@b.c", RequestTimeout: time.Second},
			errs: []error{errBodyLimit},
		},
		{
			name: "negative request timeout",
			cfg:  Config{Provider: ProviderLog, ContactEmail: "a@b.c", MaxBodyBytes: 1024, RequestTimeout: -time.Second},
			errs: []error{errRequestTimeout},
		},
		{
			name: "unknown provider",
			cfg:  Config{Provider: "postmark", ContactEmail: "a@b.c"},
			errs: []error{errUnknownProvider},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			if len(tt.errs) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.errs {
				require.ErrorIs(t, err, want)
			}
		})
	}
}
