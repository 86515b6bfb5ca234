// Command mailbridge serves contact forms and relays submissions to an
// email provider.
package main

import (
	"os"
	"time"

	"github.com/dmitrymomot/mailbridge"
	"github.com/dmitrymomot/mailbridge/middlewares"
	"github.com/dmitrymomot/mailbridge/pkg/logger"
)

// writeMargin leaves time to write the error after a request timeout.
const writeMargin = 5 * time.Second

func main() {
	cfg, err := loadConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.New().Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log, sentryEnabled := logger.NewWithSentry(logger.SentryConfig{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     cfg.Release,
		Stdout: logger.Options{
			Format: cfg.LogFormat,
			Level:  logger.ParseLevel(cfg.LogLevel),
		},
	}, middlewares.RequestIDExtractor())

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "error", err)
		os.Exit(1)
	}

	brands, err := loadBrands(cfg)
	if err != nil {
		log.Error("failed to load brands", "error", err)
		os.Exit(1)
	}

	sender, err := newSender(cfg, log)
	if err != nil {
		log.Error("failed to create mail sender", "provider", cfg.Provider, "error", err)
		os.Exit(1)
	}

	opts := runOptions(cfg, newMailer(cfg, sender), brands, log)
	opts = append(opts,
		mailbridge.Address(cfg.Address),
		mailbridge.Logger(log),
		mailbridge.ShutdownTimeout(cfg.ShutdownTimeout),
		mailbridge.WriteTimeout(cfg.RequestTimeout+writeMargin),
	)
	if sentryEnabled {
		opts = append(opts, mailbridge.ShutdownHook(logger.SentryShutdownHook()))
	}

	log.Info("starting server", "addr", cfg.Address, "provider", cfg.Provider, "brands", len(brands))

	if err := mailbridge.Run(opts...); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
