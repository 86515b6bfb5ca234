package contact

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailbridge/pkg/mailer"
	"github.com/dmitrymomot/mailbridge/pkg/sanitizer"
)

// ErrInvalidBrand indicates a brand definition that cannot be served.
var ErrInvalidBrand = errors.New("contact: invalid brand")

const (
	DefaultTemplate    = "contact.md"
	DefaultLayout      = "contact.html"
	DefaultAccentColor = "#a78bfa"
)

var colorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Brand holds the addressing and rendering settings of one contact form.
type Brand struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Hosts         []string          `yaml:"hosts"`
	FromName      string            `yaml:"from_name"`
	FromEmail     string            `yaml:"from_email"`
	To            string            `yaml:"to"`
	SubjectPrefix string            `yaml:"subject_prefix"`
	Template      string            `yaml:"template"`
	Layout        string            `yaml:"layout"`
	AccentColor   string            `yaml:"accent_color"`
	Footer        string            `yaml:"footer"` // HTML, sanitized before rendering
	Tags          map[string]string `yaml:"tags"`
}

// DefaultBrand is the AgenceWeb contact form delivering to the given inbox.
func DefaultBrand(to string) Brand {
	return Brand{
		ID:            "agenceweb",
		Name:          "AgenceWeb",
		FromName:      "Contact",
		FromEmail:     "contact@19wires.com",
		To:            to,
		SubjectPrefix: "[AgenceWeb] Nouveau message — ",
		Template:      DefaultTemplate,
		Layout:        DefaultLayout,
		AccentColor:   DefaultAccentColor,
		Footer:        "AgenceWeb — Formulaire de contact automatique",
	}
}

// withDefaults fills the optional fields.
func (b Brand) withDefaults() Brand {
	if b.Name == "" {
		b.Name = b.ID
	}
	if b.Template == "" {
		b.Template = DefaultTemplate
	}
	if b.Layout == "" {
		b.Layout = DefaultLayout
	}
	if b.AccentColor == "" {
		b.AccentColor = DefaultAccentColor
	}
	return b
}

// Validate reports the first problem with the brand definition.
func (b Brand) Validate() error {
	switch {
	case b.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidBrand)
	case !IsEmail(b.FromEmail):
		return fmt.Errorf("%w: %s: invalid from_email %q", ErrInvalidBrand, b.ID, b.FromEmail)
	case !IsEmail(b.To):
		return fmt.Errorf("%w: %s: invalid recipient %q", ErrInvalidBrand, b.ID, b.To)
	case b.AccentColor != "" && !colorPattern.MatchString(b.AccentColor):
		return fmt.Errorf("%w: %s: accent_color must be a hex color", ErrInvalidBrand, b.ID)
	}
	return nil
}

// From returns the sender in "Name <address>" form.
func (b Brand) From() string {
	return mailer.Recipient(b.FromName, b.FromEmail)
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Subject prefixes the submitted subject. Line breaks become spaces so the
// result stays a single header line.
func (b Brand) Subject(subject string) string {
	return b.SubjectPrefix + lineBreaks.Replace(subject)
}

// MailTags returns the provider tags attached to every email of the brand.
func (b Brand) MailTags() mailer.Tags {
	tags := make(mailer.Tags, len(b.Tags)+2)
	for k, v := range b.Tags {
		tags[k] = v
	}
	tags["source"] = "contact-form"
	tags["brand"] = b.ID
	return tags
}

// FooterHTML returns the footer with only safe formatting left.
func (b Brand) FooterHTML() template.HTML {
	return template.HTML(sanitizer.SanitizeHTML(b.Footer))
}

// FooterText returns the footer without markup.
func (b Brand) FooterText() string {
	return sanitizer.PlainText(b.Footer)
}

// Brands is the set of brands served by one process.
type Brands []Brand

// Fallback returns the first brand without hosts, or the first brand.
func (bs Brands) Fallback() (Brand, bool) {
	for _, b := range bs {
		if len(b.Hosts) == 0 {
			return b, true
		}
	}
	if len(bs) == 0 {
		return Brand{}, false
	}
	return bs[0], true
}

type brandFile struct {
	Brands []Brand `yaml:"brands"`
}

// ParseBrands reads a YAML brand file:
//
//	brands:
//	  - id: agenceweb
//	    name: AgenceWeb
//	    hosts: [agenceweb.fr, "*.agenceweb.fr"]
//	    from_name: Contact
//	    from_email: contact@19wires.com
//	    to: inbox@agenceweb.fr
//	    subject_prefix: "[AgenceWeb] Nouveau message — "
//
// Empty "to" fields take defaultTo.
func ParseBrands(r io.Reader, defaultTo string) (Brands, error) {
	var file brandFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty brand file", ErrInvalidBrand)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBrand, err)
	}
	if len(file.Brands) == 0 {
		return nil, fmt.Errorf("%w: no brands defined", ErrInvalidBrand)
	}

	seen := make(map[string]bool, len(file.Brands))
	brands := make(Brands, 0, len(file.Brands))
	for _, b := range file.Brands {
		if b.To == "" {
			b.To = defaultTo
		}
		b = b.withDefaults()
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidBrand, b.ID)
		}
		seen[b.ID] = true
		brands = append(brands, b)
	}

	return brands, nil
}

// LoadBrands reads a brand file from disk.
func LoadBrands(path, defaultTo string) (Brands, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("contact: open brands: %w", err)
	}
	defer f.Close()

	return ParseBrands(f, defaultTo)
}
