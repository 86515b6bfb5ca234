package internal

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/mailbridge/pkg/hostrouter"
)

// ErrNoApps is returned by Run when neither domains nor a fallback are configured.
var ErrNoApps = errors.New("mailbridge: no domains or fallback configured")

// Run starts a multi-domain HTTP server and blocks until shutdown.
// Each brand gets its own App; requests are routed by Host header.
//
// Example:
//
//	err := internal.Run(
//	    internal.Domain("contact.acme.fr", acme),
//	    internal.Domain("*.studio.io", studio),
//	    internal.Fallback(agence),
//	    internal.Address(":3000"),
//	    internal.Logger(log),
//	)
func Run(opts ...RunOption) error {
	cfg := buildRunConfig(opts...)

	handler, err := cfg.handler()
	if err != nil {
		return err
	}

	return runServer(cfg.runtime(handler))
}

// handler builds the root http.Handler from the configured apps.
func (c *runConfig) handler() (http.Handler, error) {
	switch {
	case len(c.domains) > 0:
		routes := make(hostrouter.Routes, len(c.domains))
		for pattern, app := range c.domains {
			routes[pattern] = app.Router()
		}
		var fallback http.Handler
		if c.fallback != nil {
			fallback = c.fallback.Router()
		}
		return hostrouter.New(routes, fallback), nil
	case c.fallback != nil:
		return c.fallback.Router(), nil
	default:
		return nil, ErrNoApps
	}
}
