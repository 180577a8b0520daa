package mailer

// Config holds mailer defaults. Parsed from the environment by cmd/server.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Your deliverable from {{project_name}}"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
}
