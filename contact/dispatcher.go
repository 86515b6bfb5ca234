package contact

import (
	"context"
	"fmt"
	"html/template"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
)

// Dispatcher delivers a validated submission.
type Dispatcher interface {
	Dispatch(ctx context.Context, s Submission) error
}

// DispatcherFunc adapts a function to the Dispatcher interface.
type DispatcherFunc func(ctx context.Context, s Submission) error

// Dispatch implements Dispatcher.
func (f DispatcherFunc) Dispatch(ctx context.Context, s Submission) error {
	return f(ctx, s)
}

// MailDispatcher turns submissions into brand emails.
type MailDispatcher struct {
	mailer *mailer.Mailer
	brand  Brand
}

// NewDispatcher binds a brand to a mailer.
func NewDispatcher(m *mailer.Mailer, brand Brand) *MailDispatcher {
	return &MailDispatcher{mailer: m, brand: brand.withDefaults()}
}

// Brand returns the brand the dispatcher sends for.
func (d *MailDispatcher) Brand() Brand {
	return d.brand
}

// layoutData is what the layouts see as .Data. Submission values are
// untrusted and escaped by html/template.
type layoutData struct {
	Submission  Submission
	Brand       string
	Subject     string
	AccentColor string
	Footer      template.HTML
	FooterText  string
}

// Dispatch sends one email per call; identical submissions are not merged.
// Provider refusals match mailer.ErrRejected.
func (d *MailDispatcher) Dispatch(ctx context.Context, s Submission) error {
	b := d.brand
	subject := b.Subject(s.Subject)

	err := d.mailer.Send(ctx, mailer.SendParams{
		To:       []string{b.To},
		From:     b.From(),
		ReplyTo:  s.Email,
		Subject:  subject,
		Template: b.Template,
		Layout:   b.Layout,
		Copy:     b,
		Data: layoutData{
			Submission:  s,
			Brand:       b.Name,
			Subject:     subject,
			AccentColor: b.AccentColor,
			Footer:      b.FooterHTML(),
			FooterText:  b.FooterText(),
		},
		Tags: b.MailTags(),
	})
	if err != nil {
		return fmt.Errorf("contact: dispatch for %s: %w", b.ID, err)
	}
	return nil
}
