package internal

// Handler declares routes on a router.
//
// Example:
//
//	type DeliverableHandler struct {
//	    svc *deliverable.Service
//	}
//
//	func (h *DeliverableHandler) Routes(r deliverkit.Router) {
//	    r.POST("/deliverables", h.create)
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc is the signature for route handlers.
// Returning a non-nil error triggers the error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
