package placeholder

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/deliverkit/pkg/i18n"
)

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for diagnostics. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithClock sets the time source for submission_date.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLocaleFormat sets the locale used to format submission_date.
func WithLocaleFormat(lf *i18n.LocaleFormat) Option {
	return func(r *Renderer) {
		if lf != nil {
			r.locale = lf
		}
	}
}

// WithEscaper sets a function applied to every substituted value, for
// templates that end up in HTML or markdown. Template text is not escaped.
func WithEscaper(escape func(string) string) Option {
	return func(r *Renderer) {
		r.escape = escape
	}
}

// WithDefaults overrides the fallback client and project names.
// Empty arguments keep the current fallback.
func WithDefaults(clientName, projectName string) Option {
	return func(r *Renderer) {
		if clientName != "" {
			r.clientName = clientName
		}
		if projectName != "" {
			r.projectName = projectName
		}
	}
}
