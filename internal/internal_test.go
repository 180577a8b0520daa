package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/deliverkit/pkg/logger"
)

func testContext(target string, header http.Header) *requestContext {
	r := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		r.Header[k] = v
	}
	return newContext(httptest.NewRecorder(), r, logger.NewNope())
}

func TestExtractor(t *testing.T) {
	t.Parallel()

	ext := NewExtractor(FromQuery("lang"), FromHeader("Accept-Language"))

	t.Run("first source wins", func(t *testing.T) {
		t.Parallel()
		c := testContext("/?lang=de-DE", http.Header{"Accept-Language": {"fr"}})
		v, ok := ext.Extract(c)
		require.True(t, ok)
		require.Equal(t, "de-DE", v)
	})

	t.Run("falls through empty sources", func(t *testing.T) {
		t.Parallel()
		c := testContext("/?lang=", http.Header{"Accept-Language": {"fr"}})
		v, ok := ext.Extract(c)
		require.True(t, ok)
		require.Equal(t, "fr", v)
	})

	t.Run("all miss", func(t *testing.T) {
		t.Parallel()
		v, ok := ext.Extract(testContext("/", nil))
		require.False(t, ok)
		require.Empty(t, v)
	})
}

func TestContext_SetGet(t *testing.T) {
	t.Parallel()

	type key struct{}
	c := testContext("/", nil)
	c.Set(key{}, "v1")

	require.Equal(t, "v1", c.Get(key{}))
	require.Equal(t, "v1", c.Request().Context().Value(key{}))
	require.Equal(t, "v1", ContextValue[string](c, key{}))
	require.Zero(t, ContextValue[int](c, key{}))
}

func TestContext_ReusesResponseWriter(t *testing.T) {
	t.Parallel()

	rw := NewResponseWriter(httptest.NewRecorder())
	c := newContext(rw, httptest.NewRequest(http.MethodGet, "/", nil), logger.NewNope())
	require.Same(t, rw, c.ResponseWriter())

	require.NoError(t, c.NoContent(http.StatusAccepted))
	require.True(t, rw.Written())
}
