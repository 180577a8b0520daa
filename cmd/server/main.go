// Command server runs the deliverable API: it accepts form submissions with
// file uploads, stores the files and emails the client their download links.
package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/dmitrymomot/deliverkit"
	"github.com/dmitrymomot/deliverkit/handlers"
	"github.com/dmitrymomot/deliverkit/middlewares"
	"github.com/dmitrymomot/deliverkit/pkg/cache"
	"github.com/dmitrymomot/deliverkit/pkg/deliverable"
	"github.com/dmitrymomot/deliverkit/pkg/logger"
	"github.com/dmitrymomot/deliverkit/pkg/mailer"
	"github.com/dmitrymomot/deliverkit/pkg/mailer/resend"
	"github.com/dmitrymomot/deliverkit/pkg/placeholder"
	"github.com/dmitrymomot/deliverkit/pkg/redis"
	"github.com/dmitrymomot/deliverkit/pkg/storage"
)

//go:embed templates
var templatesFS embed.FS

func main() {
	if err := run(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Logger, middlewares.RequestIDExtractor()).With("app", "deliverkit")
	ctx := context.Background()

	templates, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return err
	}

	var (
		checks  = []deliverkit.HealthOption{deliverkit.WithReadinessTimeout(5 * time.Second)}
		runOpts []deliverkit.RunOption
		routes  []deliverkit.Handler
	)

	store, err := openStorage(cfg)
	if err != nil {
		return err
	}
	if p, ok := store.(interface{ Ping(context.Context) error }); ok {
		checks = append(checks, deliverkit.WithReadinessCheck("storage", p.Ping))
	}
	if cfg.StorageDriver == driverMemory {
		routes = append(routes, handlers.NewFilesHandler(store))
	}

	var replays cache.Cache[deliverable.Deliverable]
	if cfg.Redis.Enabled() {
		client, err := redis.Open(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		replays = cache.NewRedis[deliverable.Deliverable](client, nil, "deliverkit:idempotency", cfg.IdempotencyTTL)
		checks = append(checks, deliverkit.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, deliverkit.ShutdownHook(redis.Shutdown(client)))
	} else {
		mem := cache.NewMemory[deliverable.Deliverable](
			cache.WithDefaultTTL(cfg.IdempotencyTTL),
			cache.WithMaxEntries(10_000),
		)
		replays = mem
		runOpts = append(runOpts, deliverkit.ShutdownHook(func(context.Context) error { return mem.Close() }))
	}

	renderer := mailer.NewRendererWithConfig(templates, mailer.RendererConfig{Logger: log})
	m := mailer.New(newSender(cfg.Resend, log), renderer, cfg.Mailer)

	vars := placeholder.New(
		placeholder.WithLogger(log),
		placeholder.WithDefaults(cfg.DefaultClientName, cfg.DefaultProjectName),
	)
	svc := deliverable.NewService(store, m, cfg.Deliverable,
		deliverable.WithLogger(log),
		deliverable.WithRenderer(vars),
	)

	routes = append(routes,
		handlers.NewDeliverablesHandler(svc,
			handlers.WithMaxBodySize(cfg.MaxBodySize),
			handlers.WithMaxFileSize(cfg.Deliverable.MaxFileSize),
			handlers.WithIdempotency(replays, cfg.IdempotencyTTL),
		),
		handlers.NewRenderHandler(vars, renderer, cfg.Mailer.DefaultLayout),
	)

	cors := []middlewares.CORSOption{}
	if len(cfg.CORSOrigins) > 0 {
		cors = append(cors, middlewares.WithAllowOrigins(cfg.CORSOrigins...))
	}

	app := deliverkit.New(
		deliverkit.WithCustomLogger(log),
		deliverkit.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.Logging(),
			middlewares.CORS(cors...),
			middlewares.Timeout(cfg.RequestTimeout),
			middlewares.Locale(),
		),
		deliverkit.WithErrorHandler(middlewares.ErrorHandler()),
		deliverkit.WithNotFoundHandler(func(deliverkit.Context) error {
			return deliverkit.NewHTTPError(http.StatusNotFound, "route not found", deliverkit.WithErrorCode("route_not_found"))
		}),
		deliverkit.WithMethodNotAllowedHandler(func(deliverkit.Context) error {
			return deliverkit.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed", deliverkit.WithErrorCode("method_not_allowed"))
		}),
		deliverkit.WithHealthChecks(checks...),
		deliverkit.WithHandlers(routes...),
	)

	log.Info("starting server",
		"addr", cfg.Addr,
		"storage", cfg.StorageDriver,
		"redis", cfg.Redis.Enabled(),
	)

	runOpts = append(runOpts,
		deliverkit.Logger(log),
		deliverkit.ShutdownTimeout(cfg.ShutdownTimeout),
	)
	return app.Run(cfg.Addr, runOpts...)
}

func openStorage(cfg config) (storage.Storage, error) {
	switch cfg.StorageDriver {
	case driverMemory:
		return storage.NewMemory(cfg.MemoryBaseURL), nil
	case driverS3:
		s3, err := storage.New(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// newSender returns the Resend sender, or a sender that only logs when no
// API key is configured.
func newSender(cfg resend.Config, log *slog.Logger) mailer.Sender {
	if cfg.APIKey != "" {
		return resend.New(cfg)
	}
	log.Warn("RESEND_API_KEY is not set, emails are logged instead of sent")
	return mailer.SenderFunc(func(ctx context.Context, e *mailer.Email) error {
		log.InfoContext(ctx, "email",
			"to", e.To,
			"subject", e.Subject,
			"attachments", len(e.Attachments),
		)
		return nil
	})
}
