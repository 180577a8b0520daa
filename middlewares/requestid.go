package middlewares

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/deliverkit/internal"
	"github.com/dmitrymomot/deliverkit/pkg/id"
	"github.com/dmitrymomot/deliverkit/pkg/logger"
)

type requestIDKey struct{}

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// Incoming IDs longer than this are replaced with a fresh one.
const maxRequestIDLength = 128

// RequestIDOption configures RequestID.
type RequestIDOption func(*requestIDConfig)

type requestIDConfig struct {
	source    internal.Extractor
	generate  func() string
	respondAs string
}

// WithRequestIDHeaders sets which request headers may carry an upstream ID.
// They are tried in order.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		sources := make([]internal.ExtractorSource, 0, len(headers))
		for _, h := range headers {
			sources = append(sources, internal.FromHeader(h))
		}
		cfg.source = internal.NewExtractor(sources...)
	}
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		if gen != nil {
			cfg.generate = gen
		}
	}
}

// RequestID tags each request with an ID. An ID sent by a proxy is reused,
// otherwise a ULID is generated. The ID is echoed in X-Request-ID, added to
// error bodies and logged through RequestIDExtractor.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := requestIDConfig{
		source:    internal.NewExtractor(internal.FromHeader(HeaderRequestID), internal.FromHeader("X-Correlation-ID")),
		generate:  id.NewULID,
		respondAs: HeaderRequestID,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID, ok := cfg.source.Extract(c)
			if !ok || len(reqID) > maxRequestIDLength {
				reqID = cfg.generate()
			}
			c.Set(requestIDKey{}, reqID)
			c.SetHeader(cfg.respondAs, reqID)
			return next(c)
		}
	}
}

// GetRequestID returns the request ID, or "" outside RequestID.
func GetRequestID(c internal.Context) string {
	return internal.ContextValue[string](c, requestIDKey{})
}

// RequestIDExtractor adds request_id to every log record made with a
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(requestIDKey{}).(string); ok && v != "" {
			return slog.String("request_id", v), true
		}
		return slog.Attr{}, false
	}
}
