package health

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultTimeout = 5 * time.Second

	// StatusHealthy indicates all checks passed.
	StatusHealthy = "healthy"
	// StatusUnhealthy indicates one or more checks failed.
	StatusUnhealthy = "unhealthy"

	// UnavailableMessage is the error readiness reports while a check fails.
	UnavailableMessage = "Service indisponible."
)

// CheckFunc reports whether a dependency, such as the mail provider, is usable.
type CheckFunc func(ctx context.Context) error

// Checks maps a check name ("mailer") to its function.
type Checks map[string]CheckFunc

// Response is the body of both probes.
type Response struct {
	Status string           `json:"status"`
	Error  string           `json:"error,omitempty"`
	Checks map[string]Check `json:"checks,omitempty"`
}

// Check is the outcome of one named check.
type Check struct {
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	LatencyMS int64  `json:"latency_ms"`
}

type config struct {
	logger  *slog.Logger
	message string
	timeout time.Duration
}

// Option configures the readiness probe.
type Option func(*config)

// WithTimeout bounds the whole probe. Checks still running at the deadline
// fail with ErrCheckTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used to report failing checks.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMessage replaces UnavailableMessage in failing readiness answers.
func WithMessage(msg string) Option {
	return func(c *config) {
		if msg != "" {
			c.message = msg
		}
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		timeout: defaultTimeout,
		message: UnavailableMessage,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Run executes all checks in parallel and returns the aggregated result.
func Run(ctx context.Context, checks Checks, opts ...Option) *Response {
	return runChecks(ctx, checks, newConfig(opts...))
}

func runChecks(ctx context.Context, checks Checks, cfg *config) *Response {
	if len(checks) == 0 {
		return &Response{Status: StatusHealthy}
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]Check, len(checks))
	)

	for name, check := range checks {
		g.Go(func() error {
			result, err := runCheck(ctx, check)
			if err != nil {
				cfg.logger.WarnContext(ctx, "health check failed",
					slog.String("check", name),
					slog.Int64("latency_ms", result.LatencyMS),
					slog.String("error", err.Error()),
				)
			}

			mu.Lock()
			results[name] = result
			mu.Unlock()
			return err
		})
	}

	resp := &Response{Status: StatusHealthy, Checks: results}
	if err := g.Wait(); err != nil {
		resp.Status = StatusUnhealthy
	}
	return resp
}

func runCheck(ctx context.Context, check CheckFunc) (Check, error) {
	start := time.Now()
	err := check(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		err = ErrCheckTimeout
	}

	result := Check{Status: StatusHealthy, LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		result.Status = StatusUnhealthy
		result.Error = err.Error()
	}
	return result, err
}
