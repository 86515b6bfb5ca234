package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultAddress = ":3000"

// runtimeConfig is what runServer needs: the root handler plus what to log
// about the brands behind it.
type runtimeConfig struct {
	handler         http.Handler
	address         string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	writeTimeout    time.Duration
	shutdownHooks   []func(context.Context) error
	baseCtx         context.Context
	hosts           []string // brand host patterns, sorted
	fallback        bool     // a brand answers unmatched hosts
}

func (c *runtimeConfig) withDefaults() {
	if c.address == "" {
		c.address = defaultAddress
	}
	if c.shutdownTimeout <= 0 {
		c.shutdownTimeout = defaultShutdownTimeout
	}
	if c.writeTimeout <= 0 {
		c.writeTimeout = defaultWriteTimeout
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.baseCtx == nil {
		c.baseCtx = context.Background()
	}
}

func newHTTPServer(c runtimeConfig) *http.Server {
	return &http.Server{
		Addr:              c.address,
		Handler:           c.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      c.writeTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}
}

// runServer serves until SIGINT, SIGTERM or cancellation of the base
// context, then drains in-flight submissions and runs the shutdown hooks.
func runServer(cfg runtimeConfig) error {
	cfg.withDefaults()
	logger := cfg.logger
	server := newHTTPServer(cfg)

	ctx, cancel := signal.NotifyContext(cfg.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listen first so the logged address is the bound one.
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", server.Addr, err)
	}

	logger.Info("server starting",
		slog.String("address", ln.Addr().String()),
		slog.Int("brand_hosts", len(cfg.hosts)),
		slog.Any("hosts", cfg.hosts),
		slog.Bool("fallback", cfg.fallback),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	return shutdown(server, cfg)
}

// shutdown drains the server, then runs every hook even when one fails.
func shutdown(server *http.Server, cfg runtimeConfig) error {
	logger := cfg.logger
	logger.Info("shutting down server", slog.Duration("timeout", cfg.shutdownTimeout))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("drain: %w", err))
	}

	for i, hook := range cfg.shutdownHooks {
		if err := hook(ctx); err != nil {
			errs = append(errs, err)
			logger.Error("shutdown hook failed", slog.Int("hook", i), slog.Any("error", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		logger.Error("shutdown completed with errors")
		return err
	}

	logger.Info("shutdown completed")
	return nil
}
