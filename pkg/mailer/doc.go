// Package mailer renders templated emails and hands them to a provider.
//
// Three pieces make up the package:
//
//   - Sender: the interface provider adapters implement (see the resend,
//     sendgrid, mailgun and logsender subpackages)
//   - Renderer: markdown copy with YAML frontmatter, converted with goldmark
//     and wrapped in an html/template layout, plus an optional text layout
//   - Mailer: combines both and validates the outgoing Email
//
// # Templates
//
// A template is markdown with optional frontmatter:
//
//	---
//	Subject: Nouveau message {{.Brand}}
//	---
//
//	# Nouveau message
//
//	Vous avez reçu un message depuis le formulaire de contact.
//
// The markdown and the frontmatter subject are executed with SendParams.Copy,
// which must be trusted. User-supplied values go into SendParams.Data and are
// only referenced from layouts, where html/template escapes them:
//
//	<div>{{.Content}}</div>
//	<p style="white-space: pre-wrap">{{.Data.Message}}</p>
//
// A layout "contact.html" may have a sibling "contact.txt" executed with
// text/template for the plain text part. Without it the processed markdown
// is used.
//
// # Errors
//
// Mailer.Send wraps provider failures with ErrSendFailed. Providers report a
// refusal (bad sender domain, invalid recipient, quota) as an error matching
// ErrRejected; use Classify or Reject to build one. Anything else is a
// transport or unexpected failure:
//
//	err := m.Send(ctx, params)
//	switch {
//	case err == nil:
//	case mailer.IsRejected(err):
//		// the provider answered and said no
//	default:
//		// network, timeout, bug
//	}
package mailer
