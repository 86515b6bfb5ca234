package mailer

const (
	defaultFallbackSubject = "Notification"
	defaultLayout          = "base.html"
)

// Config holds mailer configuration.
type Config struct {
	FallbackSubject string // used when neither params nor frontmatter set one
	DefaultLayout   string
}

func (c Config) withDefaults() Config {
	if c.FallbackSubject == "" {
		c.FallbackSubject = defaultFallbackSubject
	}
	if c.DefaultLayout == "" {
		c.DefaultLayout = defaultLayout
	}
	return c
}
