package internal

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

// runConfig collects RunOptions. Brand apps are keyed by host pattern.
type runConfig struct {
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	writeTimeout    time.Duration
	shutdownHooks   []func(context.Context) error
	domains         map[string]*App
	fallback        *App
	baseCtx         context.Context
}

func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{
		domains:         make(map[string]*App),
		shutdownTimeout: defaultShutdownTimeout,
		writeTimeout:    defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// runtime turns the options into the server settings for handler.
func (c *runConfig) runtime(handler http.Handler) runtimeConfig {
	return runtimeConfig{
		handler:         handler,
		address:         c.address,
		logger:          c.logger,
		shutdownTimeout: c.shutdownTimeout,
		writeTimeout:    c.writeTimeout,
		shutdownHooks:   c.shutdownHooks,
		baseCtx:         c.baseCtx,
		hosts:           slices.Sorted(maps.Keys(c.domains)),
		fallback:        c.fallback != nil,
	}
}

// Address sets the listen address. Defaults to ":3000".
func Address(addr string) RunOption {
	return func(c *runConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Logger sets the server lifecycle logger. Without it the server is silent.
func Logger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds draining in-flight submissions plus the shutdown
// hooks. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WriteTimeout sets the server's write deadline. Keep it above the request
// timeout so a slow provider call can still be answered. Defaults to 30 seconds.
func WriteTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

// ShutdownHook registers a function run after the server drained, in
// registration order, such as flushing Sentry:
//
//	internal.ShutdownHook(logger.SentryShutdownHook())
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// Domain serves app for a brand host pattern: "contact.acme.fr" (exact) or
// "*.acme.fr" (any subdomain). A later pattern replaces an earlier equal one.
func Domain(pattern string, app *App) RunOption {
	return func(c *runConfig) {
		if pattern != "" && app != nil {
			c.domains[pattern] = app
		}
	}
}

// Fallback serves hosts no Domain matches. Without domains it serves everything.
func Fallback(app *App) RunOption {
	return func(c *runConfig) {
		if app != nil {
			c.fallback = app
		}
	}
}

// WithContext sets the base context; cancelling it starts graceful shutdown
// as SIGINT or SIGTERM would.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
