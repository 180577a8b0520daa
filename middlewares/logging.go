package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/deliverkit/internal"
)

// Logging returns middleware that logs one line per request with its status,
// size and duration. Server errors log at error level, client errors at warn.
func Logging() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := c.ResponseWriter().Status()
			if herr := internal.AsHTTPError(err); herr != nil {
				status = herr.Code
			} else if err != nil {
				status = 500
			}

			attrs := []any{
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", c.ResponseWriter().Size()),
				slog.Duration("duration", time.Since(start)),
			}

			switch {
			case status >= 500:
				c.LogError("request", attrs...)
			case status >= 400:
				c.LogWarn("request", attrs...)
			default:
				c.LogInfo("request", attrs...)
			}
			return err
		}
	}
}
