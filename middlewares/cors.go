package middlewares

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/deliverkit/internal"
)

// Headers a browser form may send and read back.
var (
	corsAllowMethods  = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsAllowHeaders  = []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization", HeaderRequestID, "Idempotency-Key"}
	corsExposeHeaders = []string{HeaderRequestID, "Idempotent-Replayed"}
)

const defaultCORSMaxAge = 12 * time.Hour

// CORSOption configures CORS.
type CORSOption func(*corsConfig)

type corsConfig struct {
	origins     []string
	credentials bool
	maxAge      time.Duration
}

// WithAllowOrigins restricts CORS to the listed origins. "*" allows any.
func WithAllowOrigins(origins ...string) CORSOption {
	return func(cfg *corsConfig) {
		cfg.origins = origins
	}
}

// WithAllowCredentials lets browsers send cookies and auth headers.
// The request origin is echoed instead of "*".
func WithAllowCredentials() CORSOption {
	return func(cfg *corsConfig) {
		cfg.credentials = true
	}
}

// WithMaxAge sets how long browsers may cache a preflight answer.
func WithMaxAge(d time.Duration) CORSOption {
	return func(cfg *corsConfig) {
		cfg.maxAge = d
	}
}

// CORS answers preflight requests and adds CORS headers so that forms on
// other origins can post deliverables. Requests from origins that are not
// allowed get no CORS headers and are left to the browser to block.
func CORS(opts ...CORSOption) internal.Middleware {
	cfg := corsConfig{origins: []string{"*"}, maxAge: defaultCORSMaxAge}
	for _, opt := range opts {
		opt(&cfg)
	}

	anyOrigin := slices.Contains(cfg.origins, "*")
	methods := strings.Join(corsAllowMethods, ", ")
	headers := strings.Join(corsAllowHeaders, ", ")
	expose := strings.Join(corsExposeHeaders, ", ")
	maxAge := strconv.Itoa(int(cfg.maxAge.Seconds()))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			origin := c.Header("Origin")
			if origin == "" || !(anyOrigin || slices.Contains(cfg.origins, origin)) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add("Vary", "Origin")
			if anyOrigin && !cfg.credentials {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
			}
			if cfg.credentials {
				h.Set("Access-Control-Allow-Credentials", "true")
			}
			h.Set("Access-Control-Expose-Headers", expose)

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}

			h.Add("Vary", "Access-Control-Request-Method")
			h.Add("Vary", "Access-Control-Request-Headers")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			if cfg.maxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
