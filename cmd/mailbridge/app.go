package main

import (
	"log/slog"
	"os"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/mailbridge"
	"github.com/dmitrymomot/mailbridge/contact"
	"github.com/dmitrymomot/mailbridge/handlers"
	"github.com/dmitrymomot/mailbridge/middlewares"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// loadBrands returns the brands from BRANDS_FILE, or the default brand
// delivering to CONTACT_EMAIL.
func loadBrands(cfg Config) (contact.Brands, error) {
	if cfg.BrandsFile != "" {
		return contact.LoadBrands(cfg.BrandsFile, cfg.ContactEmail)
	}

	brand := contact.DefaultBrand(cfg.ContactEmail)
	if err := brand.Validate(); err != nil {
		return nil, err
	}
	return contact.Brands{brand}, nil
}

// newMailer wires the sender to the bundled templates, or to TEMPLATES_DIR.
func newMailer(cfg Config, sender mailer.Sender) *mailer.Mailer {
	var renderer *mailer.Renderer
	if cfg.TemplatesDir != "" {
		renderer = contact.NewRenderer(os.DirFS(cfg.TemplatesDir))
	} else {
		renderer = contact.NewRenderer(nil)
	}

	return mailer.New(sender, renderer, mailer.Config{DefaultLayout: contact.DefaultLayout})
}

// newBrandApp builds the contact form app for one brand.
func newBrandApp(cfg Config, m *mailer.Mailer, brand contact.Brand, log *slog.Logger) *mailbridge.App {
	readiness := []mailbridge.HealthOption{}
	if check := mailer.Healthcheck(m.Sender()); check != nil {
		readiness = append(readiness, mailbridge.WithReadinessCheck("mailer", check))
	}

	corsOpts := []middlewares.CORSOption{}
	if len(cfg.AllowedOrigins) > 0 {
		corsOpts = append(corsOpts, middlewares.WithAllowOrigins(cfg.AllowedOrigins...))
	}

	return mailbridge.New(
		mailbridge.WithCustomLogger(log.With("brand", brand.ID)),
		mailbridge.WithHTTPMiddleware(
			chimw.RealIP,
			chimw.RequestSize(cfg.MaxBodyBytes),
		),
		mailbridge.WithMiddleware(
			middlewares.RequestID(),
			middlewares.CORS(corsOpts...),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Recover(),
		),
		mailbridge.WithErrorHandler(handlers.ErrorHandler),
		mailbridge.WithNotFoundHandler(handlers.NotFound),
		mailbridge.WithMethodNotAllowedHandler(handlers.MethodNotAllowed),
		mailbridge.WithHealthChecks(readiness...),
		mailbridge.WithHandlers(
			handlers.NewContactHandler(contact.NewDispatcher(m, brand)),
		),
	)
}

// runOptions maps every brand host to its app. The fallback brand also
// serves unmatched hosts.
func runOptions(cfg Config, m *mailer.Mailer, brands contact.Brands, log *slog.Logger) []mailbridge.RunOption {
	opts := []mailbridge.RunOption{}

	fallback, _ := brands.Fallback()
	for _, brand := range brands {
		app := newBrandApp(cfg, m, brand, log)
		for _, host := range brand.Hosts {
			opts = append(opts, mailbridge.Domain(host, app))
		}
		if brand.ID == fallback.ID {
			opts = append(opts, mailbridge.Fallback(app))
		}
	}

	return opts
}
