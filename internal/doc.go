// Package internal provides the HTTP application core for deliverkit.
//
// Import "github.com/dmitrymomot/deliverkit" instead, which re-exports the
// public API.
//
// # Core Types
//
//   - App: routing, middleware, health probes and graceful shutdown
//   - Context: request/response access and helper methods
//   - Router: interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a router
//   - HandlerFunc: route handler that returns an error
//   - Middleware: wraps handlers to add cross-cutting concerns
//   - ErrorHandler: renders errors returned from handlers
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to storage,
// mailer and service calls:
//
//	func (h *Deliverables) create(c deliverkit.Context) error {
//	    d, err := h.svc.Create(c, req)
//	    if err != nil {
//	        return err
//	    }
//	    return c.JSON(http.StatusCreated, d)
//	}
//
// # Errors
//
// Handlers return errors instead of writing them. An *HTTPError anywhere in
// the chain keeps its status and message; any other error is logged and
// answered with a generic 500. DefaultErrorHandler renders JSON:
//
//	{"error":"missing files","code":"missing_files","request_id":"01J..."}
//
// Handlers receive dependencies via constructor injection, not context helpers.
package internal
