package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrymomot/mailbridge"
	"github.com/dmitrymomot/mailbridge/contact"
	"github.com/dmitrymomot/mailbridge/middlewares"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// ContactPath is where forms post submissions.
const ContactPath = "/api/send-email"

// ContactHandler relays contact form submissions to a dispatcher.
type ContactHandler struct {
	dispatcher contact.Dispatcher
	path       string
}

// ContactOption configures a ContactHandler.
type ContactOption func(*ContactHandler)

// WithContactPath mounts the endpoint somewhere other than ContactPath.
func WithContactPath(path string) ContactOption {
	return func(h *ContactHandler) {
		if path != "" {
			h.path = path
		}
	}
}

// NewContactHandler creates the handler. The dispatcher is shared by all
// requests and must be safe for concurrent use.
func NewContactHandler(d contact.Dispatcher, opts ...ContactOption) *ContactHandler {
	h := &ContactHandler{dispatcher: d, path: ContactPath}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements mailbridge.Handler.
func (h *ContactHandler) Routes(r mailbridge.Router) {
	r.POST(h.path, h.send)
}

func (h *ContactHandler) send(c mailbridge.Context) error {
	if !strings.Contains(c.Request().Header.Get("Content-Type"), "application/json") {
		return mailbridge.ErrBadRequest(MsgInvalidContentType)
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return mailbridge.ErrBadRequest(MsgInvalidJSON, mailbridge.WithError(err))
	}

	submission, err := contact.Decode(body)
	if err != nil {
		return mailbridge.ErrBadRequest(MsgInvalidJSON, mailbridge.WithError(err))
	}

	if err := contact.Validate(submission); err != nil {
		switch {
		case errors.Is(err, contact.ErrMissingFields):
			return mailbridge.ErrUnprocessable(MsgMissingFields, mailbridge.WithError(err))
		case errors.Is(err, contact.ErrInvalidEmail):
			return mailbridge.ErrUnprocessable(MsgInvalidEmail, mailbridge.WithError(err))
		default:
			return mailbridge.ErrInternal(MsgInternal, mailbridge.WithError(err))
		}
	}

	if err := h.dispatch(c, submission); err != nil {
		var rejected *mailer.RejectedError
		if errors.As(err, &rejected) {
			c.LogError("provider error",
				"provider", rejected.Provider,
				"status", rejected.StatusCode,
				"error", err,
			)
			return mailbridge.ErrInternal(MsgSendFailed, mailbridge.WithError(err))
		}

		c.LogError("server error", "error", err)
		return mailbridge.ErrInternal(MsgInternal, mailbridge.WithError(err))
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// dispatch calls the dispatcher and turns a panic into a PanicError.
func (h *ContactHandler) dispatch(ctx context.Context, s contact.Submission) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &middlewares.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()

	return h.dispatcher.Dispatch(ctx, s)
}
