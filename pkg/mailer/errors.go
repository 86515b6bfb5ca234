package mailer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSender indicates no sender address was provided.
	ErrNoSender = errors.New("email must have a sender")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrTemplateNotFound indicates the template file was not found.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrLayoutNotFound indicates the layout file was not found.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("failed to render template")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrInvalidFrontmatter indicates invalid YAML frontmatter.
	ErrInvalidFrontmatter = errors.New("invalid frontmatter")

	// ErrRejected indicates the provider answered and refused the message.
	ErrRejected = errors.New("provider rejected the message")

	// ErrNotConfigured indicates the sender is missing credentials.
	ErrNotConfigured = errors.New("sender is not configured")
)

// RejectedError carries the details of a provider refusal.
// It matches ErrRejected with errors.Is.
type RejectedError struct {
	Err        error
	Provider   string
	StatusCode int
}

func (e *RejectedError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: rejected with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: rejected: %v", e.Provider, e.Err)
}

func (e *RejectedError) Unwrap() error {
	return e.Err
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrRejected
}

// Reject builds a RejectedError for the given provider.
func Reject(provider string, statusCode int, err error) error {
	if err == nil {
		err = errors.New("no details")
	}
	return &RejectedError{Provider: provider, StatusCode: statusCode, Err: err}
}

// Classify sorts a provider client error into a transport failure or a refusal.
// Context, URL and network errors are returned unchanged; anything else means
// the provider produced an answer and is wrapped with Reject.
func Classify(provider string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return err
	}
	return Reject(provider, 0, err)
}

// IsRejected reports whether err is or wraps a provider refusal.
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
