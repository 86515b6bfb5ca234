package contact_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailbridge/contact"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		expected contact.Submission
		err      error
	}{
		{
			name:     "full object",
			body:     `{"name":"Jean","email":"jean@example.com","subject":"Devis","message":"Bonjour\nMerci"}`,
			expected: contact.Submission{Name: "Jean", Email: "jean@example.com", Subject: "Devis", Message: "Bonjour\nMerci"},
		},
		{
			name:     "unknown fields ignored",
			body:     `{"name":"Jean","company":"ACME"}`,
			expected: contact.Submission{Name: "Jean"},
		},
		{
			name:     "non string values are missing",
			body:     `{"name":42,"email":null,"subject":true,"message":["x"]}`,
			expected: contact.Submission{},
		},
		{name: "array", body: `[1,2]`},
		{name: "null", body: `null`},
		{name: "string", body: `"hello"`},
		{name: "empty body", body: ``, err: contact.ErrInvalidJSON},
		{name: "broken json", body: `{"name":`, err: contact.ErrInvalidJSON},
		{name: "trailing garbage", body: `{"name":"x"} {}`, err: contact.ErrInvalidJSON},
		{name: "form encoded", body: `name=x&email=y`, err: contact.ErrInvalidJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := contact.Decode([]byte(tt.body))
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}

func valid() contact.Submission {
	return contact.Submission{Name: "Jean", Email: "jean@example.com", Subject: "Devis", Message: "Bonjour"}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*contact.Submission)
		err    error
	}{
		{name: "valid", mutate: func(*contact.Submission) {}},
		{name: "missing name", mutate: func(s *contact.Submission) { s.Name = "" }, err: contact.ErrMissingFields},
		{name: "missing email", mutate: func(s *contact.Submission) { s.Email = "" }, err: contact.ErrMissingFields},
		{name: "missing subject", mutate: func(s *contact.Submission) { s.Subject = "" }, err: contact.ErrMissingFields},
		{name: "missing message", mutate: func(s *contact.Submission) { s.Message = "" }, err: contact.ErrMissingFields},
		{name: "whitespace counts as present", mutate: func(s *contact.Submission) { s.Name = " " }},
		{
			name:   "missing field wins over bad email",
			mutate: func(s *contact.Submission) { s.Message = ""; s.Email = "no-at-sign" },
			err:    contact.ErrMissingFields,
		},
		{name: "bad email", mutate: func(s *contact.Submission) { s.Email = "a@b" }, err: contact.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := valid()
			tt.mutate(&s)
			err := contact.Validate(s)
			if tt.err == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestIsEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a@b.c":                 true,
		"jean.dupont@agence.fr": true,
		"a@b.c.d":               true,
		"user+tag@x.io":         true,
		"<x>@a.b":               true,
		"no-at-sign":            false,
		"a@b":                   false,
		"a @b.com":              false,
		"a@b .com":              false,
		"a@@b.com":              false,
		"a@b@c.com":             false,
		"@b.com":                false,
		"a@.com":                false,
		"a@b.":                  false,
		"a\u00a0@b.com":         false,
		"a\u2003@b.com":         false,
		"a@b.com\n":             false,
		"":                      false,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, expected, contact.IsEmail(input))
		})
	}
}
