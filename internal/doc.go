// Package internal implements the HTTP kernel behind package mailbridge.
//
// Import "github.com/dmitrymomot/mailbridge" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: routing, middleware, error handling and health endpoints for one brand
//   - Context: request/response access and logging helpers
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler signature; returned errors go to the ErrorHandler
//   - Middleware: wraps HandlerFuncs
//   - HTTPError: status code plus client-facing message
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to blocking
// calls such as a provider send:
//
//	func (h *ContactHandler) send(c internal.Context) error {
//	    if err := h.dispatcher.Dispatch(c, sub); err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusOK, map[string]bool{"success": true})
//	}
//
// Middleware may replace the request context with SetContext (a deadline,
// for example); the replacement is visible to every handler further down.
//
// # Middleware Order
//
// Options passed to WithHTTPMiddleware run first, then WithMiddleware in the
// order given, then route-level middleware, then the handler.
//
// # Server Lifecycle
//
// App.Run serves a single app and Run composes several apps by host. Both
// stop on SIGINT/SIGTERM, drain in-flight requests for up to the shutdown
// timeout and then run shutdown hooks in registration order.
package internal
