package contact

import (
	"encoding/json"
	"errors"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidJSON indicates the body is not valid JSON.
	ErrInvalidJSON = errors.New("contact: invalid json")

	// ErrMissingFields indicates at least one field is missing or empty.
	ErrMissingFields = errors.New("contact: all fields are required")

	// ErrInvalidEmail indicates the email does not look like an address.
	ErrInvalidEmail = errors.New("contact: invalid email")
)

// emailPattern is deliberately loose: something@something.something with no
// whitespace and no extra "@". The class spells out the Unicode spaces a
// browser's \s covers, which RE2's \s does not.
var emailPattern = regexp.MustCompile(`^` + notSpaceOrAt + `+@` + notSpaceOrAt + `+\.` + notSpaceOrAt + `+$`)

const notSpaceOrAt = `[^@\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]`

// Submission is a contact form entry. It lives for one request.
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contact_email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Decode parses a request body.
//
// Only invalid JSON is an error. A value that is not an object has no
// fields, and a field holding anything but a string counts as missing;
// Validate reports both.
func Decode(body []byte) (Submission, error) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return Submission{}, errors.Join(ErrInvalidJSON, err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return Submission{}, nil
	}

	field := func(key string) string {
		s, _ := obj[key].(string)
		return s
	}

	return Submission{
		Name:    field("name"),
		Email:   field("email"),
		Subject: field("subject"),
		Message: field("message"),
	}, nil
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
	})
	return validate
}

// IsEmail reports whether s passes the contact form address check.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Validate checks field presence first, then the email format.
func Validate(s Submission) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	invalidEmail := false
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
		if fe.Tag() == "contact_email" {
			invalidEmail = true
		}
	}
	if invalidEmail {
		return ErrInvalidEmail
	}
	return err
}
