package middlewares

import (
	"github.com/dmitrymomot/deliverkit/internal"
	"github.com/dmitrymomot/deliverkit/pkg/i18n"
)

type localeKey struct{}

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	Extractor internal.Extractor
	Default   *i18n.LocaleFormat
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleExtractor sets the language source chain.
func WithLocaleExtractor(ext internal.Extractor) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Extractor = ext
	}
}

// WithDefaultLocale sets the format used when no source matches.
func WithDefaultLocale(lf *i18n.LocaleFormat) LocaleOption {
	return func(cfg *LocaleConfig) {
		if lf != nil {
			cfg.Default = lf
		}
	}
}

// Locale returns middleware that resolves the date format used for
// submission_date. By default the "lang" query parameter is tried before the
// Accept-Language header. An exact tag such as "en-GB" is used as is; anything
// else is negotiated against the supported formats.
func Locale(opts ...LocaleOption) internal.Middleware {
	cfg := &LocaleConfig{
		Extractor: internal.NewExtractor(
			internal.FromQuery("lang"),
			internal.FromHeader("Accept-Language"),
		),
		Default: i18n.FormatEnUS(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			lf := cfg.Default
			if v, ok := cfg.Extractor.Extract(c); ok {
				if exact, found := i18n.Lookup(v); found {
					lf = exact
				} else {
					lf = i18n.Negotiate(v)
				}
			}
			c.Set(localeKey{}, lf)
			return next(c)
		}
	}
}

// GetLocale returns the format resolved by Locale, or nil if the middleware
// is not used.
func GetLocale(c internal.Context) *i18n.LocaleFormat {
	return internal.ContextValue[*i18n.LocaleFormat](c, localeKey{})
}
