// Package mailbridge is a small HTTP service that relays website contact
// forms to a transactional email provider.
//
// The public API lives in this package; the implementation is in internal/.
// One [App] is built per brand and apps are composed by Host header with [Run]:
//
//	acme := mailbridge.New(
//	    mailbridge.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    mailbridge.WithErrorHandler(handlers.ErrorHandler),
//	    mailbridge.WithHandlers(handlers.NewContact(dispatcher)),
//	)
//
//	err := mailbridge.Run(
//	    mailbridge.Domain("contact.acme.fr", acme),
//	    mailbridge.Fallback(acme),
//	    mailbridge.Address(":3000"),
//	)
//
// Handlers return errors instead of writing failure responses themselves.
// An [HTTPError] carries the status code and the client-facing message;
// anything else is rendered as a generic 500 by the error handler.
package mailbridge
