package contact_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailbridge/contact"
	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/sanitizer"
)

// recordingSender keeps every email it is asked to send.
type recordingSender struct {
	mu     sync.Mutex
	emails []*mailer.Email
	err    error
}

func (s *recordingSender) Send(_ context.Context, email *mailer.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = append(s.emails, email)
	return s.err
}

func newDispatcher(sender mailer.Sender) *contact.MailDispatcher {
	m := mailer.New(sender, contact.NewRenderer(nil), mailer.Config{})
	return contact.NewDispatcher(m, contact.DefaultBrand("inbox@agenceweb.fr"))
}

func TestMailDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	d := newDispatcher(sender)

	err := d.Dispatch(context.Background(), contact.Submission{
		Name:    "Jean Dupont",
		Email:   "jean@example.com",
		Subject: "Devis site vitrine",
		Message: "Bonjour,\nJe voudrais un devis.\n\nMerci",
	})
	require.NoError(t, err)
	require.Len(t, sender.emails, 1)

	email := sender.emails[0]
	require.Equal(t, "Contact <contact@19wires.com>", email.From)
	require.Equal(t, []string{"inbox@agenceweb.fr"}, email.To)
	require.Equal(t, "jean@example.com", email.ReplyTo)
	require.Equal(t, "[AgenceWeb] Nouveau message — Devis site vitrine", email.Subject)
	require.Equal(t, mailer.Tags{"source": "contact-form", "brand": "agenceweb"}, email.Tags)

	require.Contains(t, email.HTML, "Nouveau message de contact")
	require.Contains(t, email.HTML, "Reçu via le formulaire de contact AgenceWeb")
	require.Contains(t, email.HTML, "white-space: pre-wrap;\">Bonjour,\nJe voudrais un devis.\n\nMerci</p>")
	require.Contains(t, email.HTML, `href="mailto:jean@example.com"`)
	require.Contains(t, email.HTML, "AgenceWeb — Formulaire de contact automatique")

	require.Contains(t, email.Text, "NOM     : Jean Dupont")
	require.Contains(t, email.Text, "EMAIL   : jean@example.com")
	require.Contains(t, email.Text, "SUJET   : Devis site vitrine")
	require.Contains(t, email.Text, "Bonjour,\nJe voudrais un devis.\n\nMerci")
	require.NotContains(t, email.Text, "<")
}

func TestMailDispatcher_Dispatch_EscapesFields(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	d := newDispatcher(sender)

	s := contact.Submission{
		Name:    `<b>Eve</b> & "co"`,
		Email:   `<x>@evil.com`,
		Subject: `<script>alert('x')</script>`,
		Message: "<img src=x onerror=alert(1)>\nl'équipe",
	}
	require.NoError(t, d.Dispatch(context.Background(), s))
	require.Len(t, sender.emails, 1)

	html := sender.emails[0].HTML
	require.NotContains(t, html, "<b>Eve</b>")
	require.NotContains(t, html, "<script>")
	require.NotContains(t, html, "<img")
	require.Contains(t, html, "&lt;b&gt;Eve&lt;/b&gt; &amp; &#34;co&#34;")
	require.Contains(t, html, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;")

	// Stripped of markup, every field is still there verbatim.
	plain := sanitizer.PlainText(html)
	for _, field := range []string{s.Name, s.Email, s.Subject, "<img src=x onerror=alert(1)>", "l'équipe"} {
		require.Contains(t, plain, field)
	}
}

func TestMailDispatcher_Dispatch_NoDeduplication(t *testing.T) {
	t.Parallel()

	sender := &recordingSender{}
	d := newDispatcher(sender)

	s := contact.Submission{Name: "Jean", Email: "jean@example.com", Subject: "Devis", Message: "Bonjour"}
	require.NoError(t, d.Dispatch(context.Background(), s))
	require.NoError(t, d.Dispatch(context.Background(), s))
	require.Len(t, sender.emails, 2)
}

func TestMailDispatcher_Dispatch_Errors(t *testing.T) {
	t.Parallel()

	s := contact.Submission{Name: "Jean", Email: "jean@example.com", Subject: "Devis", Message: "Bonjour"}

	rejected := newDispatcher(&recordingSender{err: mailer.Reject("resend", 403, errors.New("domain not verified"))})
	err := rejected.Dispatch(context.Background(), s)
	require.ErrorIs(t, err, mailer.ErrRejected)
	require.ErrorIs(t, err, mailer.ErrSendFailed)

	broken := newDispatcher(&recordingSender{err: context.DeadlineExceeded})
	err = broken.Dispatch(context.Background(), s)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, mailer.IsRejected(err))
}

func TestMailDispatcher_CustomTemplates(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"short.md":             &fstest.MapFile{Data: []byte("**{{.Name}}**")},
		"layouts/minimal.html": &fstest.MapFile{Data: []byte(`{{.Content}}|{{.Data.Submission.Name}}|{{.Data.Brand}}`)},
	}

	sender := &recordingSender{}
	brand := contact.Brand{
		ID:        "studio",
		Name:      "Studio",
		FromEmail: "hello@studio.dev",
		To:        "team@studio.dev",
		Template:  "short.md",
		Layout:    "minimal.html",
	}
	d := contact.NewDispatcher(mailer.New(sender, contact.NewRenderer(fsys), mailer.Config{}), brand)

	require.NoError(t, d.Dispatch(context.Background(), contact.Submission{Name: "A&B", Email: "a@b.c", Subject: "s", Message: "m"}))
	require.Len(t, sender.emails, 1)
	require.True(t, strings.HasPrefix(sender.emails[0].HTML, "<p><strong>Studio</strong></p>"))
	require.Contains(t, sender.emails[0].HTML, "|A&amp;B|Studio")
	require.Equal(t, "hello@studio.dev", sender.emails[0].From)
	require.Equal(t, "s", sender.emails[0].Subject)
	require.Equal(t, "**Studio**", sender.emails[0].Text)
}
