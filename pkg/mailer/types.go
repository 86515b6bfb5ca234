package mailer

import (
	"fmt"
	"sort"
	"strconv"
)

// Tags represents email tags/categories that can be either presence-only
// (using struct{}{}) or key-value pairs (using string values).
// Providers that only know tag names use the keys; providers with name-value
// tags use Pairs.
type Tags map[string]any

// SimpleTags creates presence-only tags from a list of tag names.
func SimpleTags(names ...string) Tags {
	t := make(Tags, len(names))
	for _, n := range names {
		t[n] = struct{}{}
	}
	return t
}

// Tag is a single name-value pair.
type Tag struct {
	Name  string
	Value string
}

// Pairs returns the tags as name-value pairs sorted by name.
// Presence-only tags get the value "true".
func (t Tags) Pairs() []Tag {
	result := make([]Tag, 0, len(t))
	for name, value := range t {
		result = append(result, Tag{Name: name, Value: tagValue(value)})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Names returns the tag names sorted, formatted as "name:value" for
// key-value tags and "name" for presence-only ones.
func (t Tags) Names() []string {
	pairs := t.Pairs()
	result := make([]string, len(pairs))
	for i, p := range pairs {
		if isPresenceOnly(t[p.Name]) {
			result[i] = p.Name
			continue
		}
		result[i] = p.Name + ":" + p.Value
	}
	return result
}

func isPresenceOnly(v any) bool {
	switch v.(type) {
	case nil, struct{}:
		return true
	}
	return false
}

func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    Tags              // Provider-specific tags/categories
	Subject string            // Email subject
	HTML    string            // HTML body content
	Text    string            // Plain text alternative
	From    string            // Sender, "Name <address>" or bare address
	ReplyTo string            // Reply-to address
	To      []string          // Recipients (at least one required)
	CC      []string          // Carbon copy recipients
	BCC     []string          // Blind carbon copy recipients
}

// Validate checks the fields every provider requires.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.From == "":
		return ErrNoSender
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "":
		return ErrNoContent
	}
	return nil
}
