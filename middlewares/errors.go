package middlewares

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/deliverkit/internal"
)

// PanicError is what Recover returns for a recovered panic.
type PanicError struct {
	Value any
	Stack []byte // nil when stack capture is off
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError is what Timeout returns when the deadline passed first.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// ErrorHandler renders handler errors as JSON through
// internal.DefaultErrorHandler and stamps them with the request ID.
//
//	*PanicError       500, generic message
//	*TimeoutError     503 "request timed out"
//	*HTTPError        its own status and message
//	anything else     500, generic message
func ErrorHandler() internal.ErrorHandler {
	return func(c internal.Context, err error) error {
		httpErr := toHTTPError(err)
		if httpErr.RequestID == "" {
			cp := *httpErr
			cp.RequestID = GetRequestID(c)
			httpErr = &cp
		}
		return internal.DefaultErrorHandler(c, httpErr)
	}
}

func toHTTPError(err error) *internal.HTTPError {
	var (
		pe *PanicError
		te *TimeoutError
	)
	switch {
	case errors.As(err, &pe):
		return internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithError(err))
	case errors.As(err, &te):
		return internal.ErrServiceUnavailable("request timed out", internal.WithError(err))
	}
	if httpErr := internal.AsHTTPError(err); httpErr != nil {
		return httpErr
	}
	return internal.ErrInternal(http.StatusText(http.StatusInternalServerError), internal.WithError(err))
}
