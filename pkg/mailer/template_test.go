package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		metadata map[string]any
		body     string
	}{
		{
			name:     "frontmatter and body",
			content:  "---\nSubject: Nouveau message\nBrand: AgenceWeb\n---\n# Bonjour\n\nVous avez un message.\n",
			metadata: map[string]any{"Subject": "Nouveau message", "Brand": "AgenceWeb"},
			body:     "# Bonjour\n\nVous avez un message.\n",
		},
		{
			name:     "no frontmatter",
			content:  "# Bonjour\n\nTexte.",
			metadata: map[string]any{},
			body:     "# Bonjour\n\nTexte.",
		},
		{
			name:     "empty frontmatter",
			content:  "---\n---\nBody content here.",
			metadata: map[string]any{},
			body:     "Body content here.",
		},
		{
			name:     "whitespace frontmatter",
			content:  "---\n\n---\nBody content.",
			metadata: map[string]any{},
			body:     "Body content.",
		},
		{
			name:     "windows line endings",
			content:  "---\r\nSubject: Test\r\n---\r\nBody",
			metadata: map[string]any{"Subject": "Test"},
			body:     "Body",
		},
		{
			name:     "empty body",
			content:  "---\nSubject: Test\n---\n",
			metadata: map[string]any{"Subject": "Test"},
			body:     "",
		},
		{
			name:     "numeric values",
			content:  "---\nOrder: 12345\nAmount: 99.99\n---\nBody",
			metadata: map[string]any{"Order": 12345, "Amount": 99.99},
			body:     "Body",
		},
		{
			name:     "empty content",
			content:  "",
			metadata: map[string]any{},
			body:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(tt.content))
			require.NoError(t, err)
			require.Equal(t, tt.metadata, tmpl.Metadata)
			require.Equal(t, tt.body, tmpl.Body)
		})
	}
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"missing closing delimiter": "---\nSubject: Test\nBody without closing delimiter",
		"only opening delimiter":    "---",
		"invalid yaml":              "---\nSubject: Test\nBroken: [unclosed\n---\nBody",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tmpl, err := ParseTemplate([]byte(content))
			require.ErrorIs(t, err, ErrInvalidFrontmatter)
			require.Nil(t, tmpl)
		})
	}
}

func TestParseTemplate_NestedMetadata(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("---\nSubject: Contact\nTags:\n  - contact\n  - form\nSettings:\n  tracking: false\n---\nBody"))
	require.NoError(t, err)
	require.Equal(t, []any{"contact", "form"}, tmpl.Metadata["Tags"])
	require.Equal(t, map[string]any{"tracking": false}, tmpl.Metadata["Settings"])
}

func TestParseTemplate_BodyWithDelimiters(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte("---\nSubject: Code\n---\nExample:\n\n```\n---\nkey: value\n---\n```\n"))
	require.NoError(t, err)
	require.Equal(t, "Code", tmpl.Metadata["Subject"])
	require.Contains(t, tmpl.Body, "key: value")
}
