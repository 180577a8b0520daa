// Package middlewares provides HTTP middleware for deliverkit applications.
//
// # Request ID
//
// RequestID assigns each request an ID, keeping one sent by an upstream proxy.
// Pair it with RequestIDExtractor so every log line carries request_id:
//
//	app := deliverkit.New(
//	    deliverkit.WithLogger("api", cfg.Log, middlewares.RequestIDExtractor()),
//	    deliverkit.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover and Timeout
//
// Recover turns panics into *PanicError and Timeout returns *TimeoutError.
// ErrorHandler renders both, along with any *HTTPError, as JSON that includes
// the request ID:
//
//	deliverkit.WithErrorHandler(middlewares.ErrorHandler())
//
// # Locale
//
// Locale picks the date format for submission_date from the "lang" query
// parameter or the Accept-Language header. Handlers read it with GetLocale.
//
// # CORS
//
// CORS answers preflight requests and adds CORS headers, so browser forms on
// other origins can post deliverables.
//
// # Logging
//
// Logging writes one line per request with status, size and duration.
//
// Order matters. RequestID comes first so later middleware logs with the ID:
//
//	deliverkit.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Logging(),
//	    middlewares.Recover(),
//	    middlewares.CORS(),
//	    middlewares.Locale(),
//	    middlewares.Timeout(60*time.Second),
//	)
package middlewares
