package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/deliverkit/internal"
)

// DefaultTimeout applies when Timeout gets a non-positive duration.
const DefaultTimeout = 30 * time.Second

// Timeout puts a deadline on the request context. Uploads, provider calls
// and cache lookups see it through c.Context(). If the deadline passes before
// the handler has written a response, a *TimeoutError goes to the error
// handler.
//
// The handler runs on the request goroutine, so it must return once the
// context is done. A response already written is left as it is.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Written() {
				c.LogWarn("request timeout", "timeout", d.String())
				return errors.Join(&TimeoutError{Duration: d}, err)
			}
			return err
		}
	}
}
