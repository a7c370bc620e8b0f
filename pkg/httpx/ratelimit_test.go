package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SadidSD/Productive-Workspace/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(t *testing.T, h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/v1/test", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("allows requests within the limit", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		for i := 0; i < 3; i++ {
			rec := doRequest(t, h, "10.0.0.1:1234")
			require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
		}
	})

	t.Run("rejects requests over the limit with Retry-After", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.2:1234").Code)

		rec := doRequest(t, h, "10.0.0.2:1234")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
	})

	t.Run("limits are tracked per key", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.3:1234").Code)
		require.Equal(t, http.StatusTooManyRequests, doRequest(t, h, "10.0.0.3:1234").Code)

		// A different client is unaffected.
		require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.4:1234").Code)
	})

	t.Run("honours X-Forwarded-For", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/v1/test", nil)
		req.RemoteAddr = "127.0.0.1:9999"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("empty key allows the request", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		empty := func(*http.Request) string { return "" }
		h := httpx.RateLimitMiddleware(config, empty)(okHandler())

		for i := 0; i < 5; i++ {
			require.Equal(t, http.StatusOK, doRequest(t, h, "10.0.0.5:1234").Code)
		}
	})
}

func TestChainOrdering(t *testing.T) {
	var order []string
	mw := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mw("outer"), mw("inner"))
	doRequest(t, h, "10.0.0.6:1234")
	require.Equal(t, []string{"outer", "inner"}, order)
}
