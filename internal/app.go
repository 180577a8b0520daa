package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/deliverkit/pkg/health"
	"github.com/dmitrymomot/deliverkit/pkg/logger"
)

// Server limits. WriteTimeout leaves room for attachment uploads and the
// mail provider round trip.
const (
	defaultReadTimeout       = 60 * time.Second
	defaultWriteTimeout      = 90 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
)

// App is the HTTP application: a chi mux with Context-based handlers,
// global middleware, an error handler and optional health probes.
// It is configured once by New and not changed afterwards.
type App struct {
	router           chi.Router
	logger           *slog.Logger
	errorHandler     ErrorHandler
	notFound         HandlerFunc
	methodNotAllowed HandlerFunc
	health           *healthConfig
	middlewares      []Middleware
	handlers         []Handler
}

// New builds an App.
//
//	app := deliverkit.New(
//	    deliverkit.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    deliverkit.WithHandlers(handlers.NewDeliverablesHandler(svc)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:       chi.NewRouter(),
		logger:       logger.NewNope(),
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.mount()
	return a
}

// Router exposes the chi mux, e.g. for route listing in tests.
func (a *App) Router() chi.Router {
	return a.router
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run serves on addr until SIGINT, SIGTERM or cancellation of the
// WithContext context, then shuts down gracefully.
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          a.logger,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return runServer(cfg)
}

func (a *App) mount() {
	root := &chiRouter{mux: a.router, app: a}

	if a.notFound != nil {
		a.router.NotFound(root.handler(a.notFound, nil))
	}
	if a.methodNotAllowed != nil {
		a.router.MethodNotAllowed(root.handler(a.methodNotAllowed, nil))
	}

	root.Use(a.middlewares...)

	// Probes see global middleware (request IDs, logging) but no route middleware.
	if h := a.health; h != nil {
		opts := []health.Option{health.WithLogger(a.logger)}
		if h.timeout > 0 {
			opts = append(opts, health.WithTimeout(h.timeout))
		}
		a.router.Get(h.livenessPath, health.LivenessHandler())
		a.router.Get(h.readinessPath, health.ReadinessHandler(h.checks, opts...))
	}

	for _, h := range a.handlers {
		h.Routes(root)
	}
}

// handleError hands err to the error handler unless the response has
// already started, in which case it can only be logged.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		c.LogWarn("error after response was written", "error", err.Error())
		return
	}
	if herr := a.errorHandler(c, err); herr != nil {
		c.LogError("error handler failed", "error", herr.Error())
	}
}
