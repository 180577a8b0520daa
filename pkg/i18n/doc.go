// Package i18n provides locale-aware date formatting for rendered documents.
//
// A LocaleFormat is an immutable set of Go time layouts for one locale.
// Predefined formats cover the locales the invoice templates ship with, and
// Negotiate picks one from an HTTP Accept-Language header:
//
//	lf := i18n.Negotiate(r.Header.Get("Accept-Language"))
//	lf.FormatDate(time.Now()) // "18.10.2026" for de-DE
//
// Matching is delegated to golang.org/x/text/language, so regional variants
// and quality values behave the way browsers expect. Unknown or empty headers
// fall back to en-US.
package i18n
