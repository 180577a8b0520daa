// Package logger builds the structured loggers used across deliverkit.
//
// Loggers are plain *slog.Logger values. The package adds three things on top
// of log/slog: configuration from environment variables, context extractors
// that inject request-scoped attributes on every call, and optional Sentry
// forwarding.
//
//	log := logger.New(logger.Config{Level: "debug", Format: "text"},
//		httpapi.RequestIDExtractor(),
//	)
//	log.InfoContext(ctx, "deliverable created", slog.String("id", d.ID))
//
// When Config.Sentry.DSN is set, warnings (or only errors, with
// SENTRY_MIN_LEVEL=error) are stored in Sentry and errors create issues.
// An empty DSN or a failed Sentry init keeps stdout-only logging.
//
// Components default to NewNope so that logging is always optional.
package logger
