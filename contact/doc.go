// Package contact holds the contact form domain: the submission and its
// validation, brand definitions, and the dispatcher that renders a brand
// email and hands it to a mailer.Sender.
//
// Validation order is fixed: field presence, then the email pattern. The
// pattern is loose on purpose (anything@anything.anything without
// whitespace) and must stay that way; a stricter check would reject
// addresses forms already accept.
package contact
