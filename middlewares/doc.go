// Package middlewares provides the request middleware used by mailbridge apps.
//
// # Request ID
//
// RequestID assigns a ULID to each request, or reuses a sane upstream
// X-Request-ID. Pair it with RequestIDExtractor so every log line carries it:
//
//	app := mailbridge.New(
//	    mailbridge.WithLogger("contact", middlewares.RequestIDExtractor()),
//	    mailbridge.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover converts handler panics into a *PanicError for the ErrorHandler,
// which answers with the generic 500 body.
//
// # Timeout
//
// Timeout attaches a deadline to the request context, so the provider call is
// cancelled with it. The handler keeps running on the request goroutine and
// writes the response itself; a bare deadline error becomes a *TimeoutError.
//
// # CORS
//
// CORS answers browser preflights for the contact endpoint. Origins may be
// exact ("https://acme.fr") or subdomain wildcards ("https://*.acme.fr"):
//
//	middlewares.CORS(middlewares.WithAllowOrigins(cfg.AllowedOrigins...))
//
// # Order
//
//	mailbridge.WithMiddleware(
//	    middlewares.CORS(),                 // preflights never reach routing
//	    middlewares.RequestID(),
//	    middlewares.Timeout(10*time.Second),
//	    middlewares.Recover(),
//	)
package middlewares
