package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Mailer provides high-level email sending with template rendering.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	config   Config
}

// New creates a new Mailer with the given sender and renderer.
func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{
		sender:   sender,
		renderer: renderer,
		config:   cfg.withDefaults(),
	}
}

// Sender returns the underlying provider.
func (m *Mailer) Sender() Sender {
	return m.sender
}

// SendParams contains parameters for sending a templated email.
type SendParams struct {
	To       []string
	From     string
	ReplyTo  string
	Template string // markdown template filename, e.g. "contact.md"
	Layout   string // defaults to Config.DefaultLayout
	Copy     any    // trusted data for the markdown template and frontmatter subject
	Data     any    // untrusted data, escaped by the layouts

	// Subject is used verbatim when set. Otherwise the frontmatter "Subject"
	// is executed with Copy, then Config.FallbackSubject applies.
	Subject string

	CC      []string
	BCC     []string
	Tags    Tags
	Headers map[string]string
}

// Send renders a template and sends an email.
func (m *Mailer) Send(ctx context.Context, params SendParams) error {
	if len(params.To) == 0 {
		return ErrNoRecipient
	}

	layout := params.Layout
	if layout == "" {
		layout = m.config.DefaultLayout
	}

	result, err := m.renderer.Render(RenderParams{
		Layout:   layout,
		Template: params.Template,
		Copy:     params.Copy,
		Data:     params.Data,
	})
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject, err := m.resolveSubject(params, result.Metadata)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	return m.SendRaw(ctx, &Email{
		To:      params.To,
		From:    params.From,
		ReplyTo: params.ReplyTo,
		Subject: subject,
		HTML:    result.HTML,
		Text:    result.Text,
		CC:      params.CC,
		BCC:     params.BCC,
		Tags:    params.Tags,
		Headers: params.Headers,
	})
}

// SendRaw sends a pre-built email without template rendering.
func (m *Mailer) SendRaw(ctx context.Context, email *Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}

	return nil
}

func (m *Mailer) resolveSubject(params SendParams, metadata map[string]any) (string, error) {
	if params.Subject != "" {
		return params.Subject, nil
	}

	subject, ok := metadata["Subject"].(string)
	if !ok || subject == "" {
		return m.config.FallbackSubject, nil
	}

	tmpl, err := texttemplate.New("subject").Parse(subject)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, params.Copy); err != nil {
		return "", err
	}

	return buf.String(), nil
}
