package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/deliverkit/internal"
)

const defaultStackSize = 4 << 10

// RecoverOption configures Recover.
type RecoverOption func(*recoverConfig)

type recoverConfig struct {
	stackSize int
}

// WithStackSize caps the captured stack trace. Zero disables stack capture.
func WithStackSize(n int) RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.stackSize = max(n, 0)
	}
}

// Recover turns a panic in a handler into a *PanicError, so the error
// handler answers 500 instead of the connection being dropped mid-upload.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := recoverConfig{stackSize: defaultStackSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				perr := &PanicError{Value: r}
				attrs := []any{"panic", r}
				if cfg.stackSize > 0 {
					buf := make([]byte, cfg.stackSize)
					perr.Stack = buf[:runtime.Stack(buf, false)]
					attrs = append(attrs, "stack", string(perr.Stack))
				}
				c.LogError("panic recovered", attrs...)
				err = perr
			}()
			return next(c)
		}
	}
}
