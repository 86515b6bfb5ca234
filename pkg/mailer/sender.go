package mailer

import "context"

// Sender defines the minimal interface that email providers must implement.
// It accepts a fully-prepared Email and handles the actual delivery.
type Sender interface {
	// Send delivers an email message.
	// A refusal by the provider is reported as an error matching ErrRejected;
	// any other error is a transport or unexpected failure.
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts an ordinary function to the Sender interface.
type SenderFunc func(ctx context.Context, email *Email) error

// Send implements Sender.
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}

// Checker is implemented by senders that can tell whether they are usable
// without sending anything.
type Checker interface {
	Check(ctx context.Context) error
}

// Healthcheck returns a readiness check for the sender.
// Senders that do not implement Checker are always reported healthy.
func Healthcheck(s Sender) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if c, ok := s.(Checker); ok {
			return c.Check(ctx)
		}
		return nil
	}
}
