// Package sendgrid implements mailer.Sender on top of the SendGrid v3 API.
package sendgrid

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

const (
	providerName = "sendgrid"
	sendEndpoint = "/v3/mail/send"
)

// Config holds SendGrid provider configuration.
type Config struct {
	APIKey string
	Host   string // API host override, e.g. "https://api.eu.sendgrid.com"
}

// Sender implements mailer.Sender using the SendGrid API.
type Sender struct {
	request rest.Request
	config  Config
}

// New creates a new SendGrid sender.
func New(cfg Config) *Sender {
	request := sendgrid.GetRequest(cfg.APIKey, sendEndpoint, cfg.Host)
	request.Method = rest.Post
	return &Sender{request: request, config: cfg}
}

// Check implements mailer.Checker.
func (s *Sender) Check(context.Context) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("sendgrid: %w: missing api key", mailer.ErrNotConfigured)
	}
	return nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	message, err := buildMessage(email)
	if err != nil {
		return err
	}

	// rest.Request is copied by value so concurrent sends never share a body.
	request := s.request
	request.Body = sgmail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return mailer.Classify(providerName, fmt.Errorf("sendgrid: %w", err))
	}
	if response.StatusCode >= 400 {
		return mailer.ClassifyStatus(providerName, response.StatusCode,
			fmt.Errorf("sendgrid API error: %s", response.Body))
	}

	return nil
}

func buildMessage(email *mailer.Email) (*sgmail.SGMailV3, error) {
	from, err := address(email.From)
	if err != nil {
		return nil, fmt.Errorf("sendgrid: invalid sender: %w", err)
	}

	message := sgmail.NewV3Mail()
	message.SetFrom(from)
	message.Subject = email.Subject

	personalization := sgmail.NewPersonalization()
	for _, to := range email.To {
		personalization.AddTos(sgmail.NewEmail("", to))
	}
	for _, cc := range email.CC {
		personalization.AddCCs(sgmail.NewEmail("", cc))
	}
	for _, bcc := range email.BCC {
		personalization.AddBCCs(sgmail.NewEmail("", bcc))
	}
	message.AddPersonalizations(personalization)

	// The reply-to is the visitor's address, passed through like recipients.
	if email.ReplyTo != "" {
		message.SetReplyTo(sgmail.NewEmail("", email.ReplyTo))
	}

	// SendGrid requires text/plain before text/html.
	if email.Text != "" {
		message.AddContent(sgmail.NewContent("text/plain", email.Text))
	}
	message.AddContent(sgmail.NewContent("text/html", email.HTML))

	for k, v := range email.Headers {
		message.SetHeader(k, v)
	}
	if len(email.Tags) > 0 {
		message.AddCategories(email.Tags.Names()...)
	}

	return message, nil
}

func address(s string) (*sgmail.Email, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return sgmail.NewEmail(addr.Name, addr.Address), nil
}
