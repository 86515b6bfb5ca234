// Package sanitizer cleans HTML with bluemonday policies.
//
// StripHTML and PlainText drop all markup; SanitizeHTML keeps a small set of
// formatting tags and forces rel="nofollow" on links. Brand footers and other
// admin-authored fragments go through SanitizeHTML before they reach a layout.
package sanitizer
