package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/mailbridge/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that puts a deadline on the request context.
//
// The handler runs on the request goroutine and stays the only writer of the
// response. Work bound to the Context, such as the provider call, is
// cancelled at the deadline and the handler answers through its own error
// path. A handler that ignores its Context is not interrupted.
//
// A handler error caused by the deadline that carries no HTTPError is
// replaced by a *TimeoutError.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			c.SetContext(ctx)
			err := next(c)

			if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return err
			}

			c.LogWarn("request timeout", "timeout", timeout.String())
			if err != nil && !internal.IsHTTPError(err) && errors.Is(err, context.DeadlineExceeded) {
				return &TimeoutError{Duration: timeout}
			}
			return err
		}
	}
}
