package internal_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/internal"
)

type echoHandler struct{}

func (echoHandler) Routes(r internal.Router) {
	r.GET("/items/{id}", func(c internal.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"id": c.Param("id")})
	})
	r.POST("/fail", func(c internal.Context) error {
		return internal.ErrUnprocessable("missing files", internal.WithErrorCode("missing_files"))
	})
	r.GET("/boom", func(c internal.Context) error {
		return errors.New("db password leaked")
	})
	r.Route("/v1", func(r internal.Router) {
		r.GET("/tagged", func(c internal.Context) error {
			return c.String(http.StatusOK, c.Get(tagKey{}).(string))
		}, tag("route"))
	})
}

type tagKey struct{}

func tag(v string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(tagKey{}, v)
			return next(c)
		}
	}
}

func serve(t *testing.T, app *internal.App, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(echoHandler{}))

	w := serve(t, app, http.MethodGet, "/items/42")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"id":"42"}`, w.Body.String())

	w = serve(t, app, http.MethodGet, "/v1/tagged")
	require.Equal(t, "route", w.Body.String())
}

func TestApp_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(echoHandler{}))

	w := serve(t, app, http.MethodPost, "/fail")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.JSONEq(t, `{"error":"missing files","code":"missing_files"}`, w.Body.String())

	w = serve(t, app, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotContains(t, w.Body.String(), "password")
}

func TestApp_FallbackHandlers(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(echoHandler{}),
		internal.WithNotFoundHandler(func(internal.Context) error {
			return internal.ErrNotFound("route not found", internal.WithErrorCode("route_not_found"))
		}),
		internal.WithMethodNotAllowedHandler(func(internal.Context) error {
			return internal.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed")
		}),
	)

	w := serve(t, app, http.MethodGet, "/nowhere")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"error":"route not found","code":"route_not_found"}`, w.Body.String())

	w = serve(t, app, http.MethodGet, "/fail")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestApp_GlobalMiddlewareSeesContextValues(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithMiddleware(tag("global")),
		internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				return c.String(http.StatusOK, c.Get(tagKey{}).(string))
			})
		})),
	)

	w := serve(t, app, http.MethodGet, "/")
	require.Equal(t, "global", w.Body.String())
}

type handlerFunc func(r internal.Router)

func (f handlerFunc) Routes(r internal.Router) { f(r) }

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	healthy := true
	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("storage", func(context.Context) error {
			if healthy {
				return nil
			}
			return errors.New("bucket missing")
		}),
	))

	w := serve(t, app, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(t, app, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusOK, w.Code)

	healthy = false
	w = serve(t, app, http.MethodGet, "/health/ready?format=json")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "bucket missing"))
}

func TestApp_Run_Shutdown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	hookCalled := false

	app := internal.New()
	go func() {
		done <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.ShutdownHook(func(context.Context) error {
				hookCalled = true
				return nil
			}),
		)
	}()

	cancel()
	require.NoError(t, <-done)
	require.True(t, hookCalled)
}
