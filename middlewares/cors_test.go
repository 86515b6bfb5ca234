package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailbridge/internal"
	"github.com/dmitrymomot/mailbridge/middlewares"
)

func runCORS(t *testing.T, req *http.Request, opts ...middlewares.CORSOption) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	rec := httptest.NewRecorder()
	ctx := newTestContext(rec, req)

	var called bool
	handler := middlewares.CORS(opts...)(func(c internal.Context) error {
		called = true
		return nil
	})
	require.NoError(t, handler(ctx))
	return rec, called
}

func preflight(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodOptions, "/api/send-email", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	return req
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("default configuration allows all origins", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		req.Header.Set("Origin", "https://acme.fr")

		rec, called := runCORS(t, req)
		require.True(t, called)
		require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Contains(t, rec.Header().Values("Vary"), "Origin")
	})

	t.Run("no CORS headers without Origin", func(t *testing.T) {
		t.Parallel()

		rec, called := runCORS(t, httptest.NewRequest(http.MethodPost, "/api/send-email", nil))
		require.True(t, called)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("listed origin is echoed", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		req.Header.Set("Origin", "https://acme.fr")

		rec, _ := runCORS(t, req, middlewares.WithAllowOrigins("https://acme.fr/", "https://studio.io"))
		require.Equal(t, "https://acme.fr", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin gets no headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		req.Header.Set("Origin", "https://evil.example")

		rec, called := runCORS(t, req, middlewares.WithAllowOrigins("https://acme.fr"))
		require.True(t, called)
		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard subdomain pattern", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			origin  string
			allowed bool
		}{
			{"https://www.acme.fr", true},
			{"https://a.b.acme.fr", true},
			{"https://acme.fr", false},
			{"http://www.acme.fr", false},
			{"https://www.notacme.fr", false},
		}

		for _, tt := range tests {
			req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
			req.Header.Set("Origin", tt.origin)

			rec, _ := runCORS(t, req, middlewares.WithAllowOrigins("https://*.acme.fr"))
			if tt.allowed {
				require.Equal(t, tt.origin, rec.Header().Get("Access-Control-Allow-Origin"), tt.origin)
			} else {
				require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"), tt.origin)
			}
		}
	})

	t.Run("preflight is answered without calling the handler", func(t *testing.T) {
		t.Parallel()

		rec, called := runCORS(t, preflight("https://acme.fr"),
			middlewares.WithAllowOrigins("https://acme.fr"),
			middlewares.WithMaxAge(time.Hour),
		)
		require.False(t, called)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type, Accept, X-Request-ID", rec.Header().Get("Access-Control-Allow-Headers"))
		require.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
		require.Contains(t, rec.Header().Values("Vary"), "Access-Control-Request-Method")
	})

	t.Run("preflight from unlisted origin falls through", func(t *testing.T) {
		t.Parallel()

		_, called := runCORS(t, preflight("https://evil.example"), middlewares.WithAllowOrigins("https://acme.fr"))
		require.True(t, called)
	})

	t.Run("plain OPTIONS is not a preflight", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodOptions, "/api/send-email", nil)
		req.Header.Set("Origin", "https://acme.fr")

		_, called := runCORS(t, req)
		require.True(t, called)
	})

	t.Run("expose headers", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/send-email", nil)
		req.Header.Set("Origin", "https://acme.fr")

		rec, _ := runCORS(t, req, middlewares.WithExposeHeaders("X-Request-ID"))
		require.Equal(t, "X-Request-ID", rec.Header().Get("Access-Control-Expose-Headers"))
	})
}
