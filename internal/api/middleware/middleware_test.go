package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carebridge/backend/internal/adapters/cache"
	"github.com/carebridge/backend/internal/infrastructure/observability"
)

func okHandler(calls *atomic.Int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":6}`))
	})
}

func TestCORSMiddleware(t *testing.T) {
	var calls atomic.Int32
	h := CORSMiddleware([]string{"http://localhost:5173"})(okHandler(&calls))

	t.Run("allowed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	})

	t.Run("unknown origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
		req.Header.Set("Origin", "http://evil.test")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		before := calls.Load()
		req := httptest.NewRequest(http.MethodOptions, "/api/symptoms/predict", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, before, calls.Load())
	})
}

func TestCORSMiddleware_Wildcard(t *testing.T) {
	var calls atomic.Int32
	h := CORSMiddleware([]string{"*"})(okHandler(&calls))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://anything.test")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCacheMiddleware_HitAfterMiss(t *testing.T) {
	var calls atomic.Int32
	m := NewCacheMiddleware(cache.NewMemoryAdapter(), nil)
	h := m.Middleware(okHandler(&calls))

	first := httptest.NewRecorder()
	h.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/doctors?specialty=Cardiology&q=chen", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	// Same query in another order maps to the same entry.
	second := httptest.NewRecorder()
	h.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/doctors?q=chen&specialty=Cardiology", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"count":6}`, second.Body.String())

	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheMiddleware_SkipsUncachedRoutesAndMethods(t *testing.T) {
	var calls atomic.Int32
	h := NewCacheMiddleware(cache.NewMemoryAdapter(), nil).Middleware(okHandler(&calls))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/conversations/messages", nil))
		assert.Empty(t, rec.Header().Get("X-Cache"))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/symptoms", nil))
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}

	assert.Equal(t, int32(4), calls.Load())
}

func TestCacheMiddleware_DoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int32
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Doctor not found"}`))
	})
	h := NewCacheMiddleware(cache.NewMemoryAdapter(), nil).Middleware(failing)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/doctors/99", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, int32(2), calls.Load())
}

func TestCacheMiddleware_RecordsMetrics(t *testing.T) {
	metrics, err := observability.InitMetrics()
	require.NoError(t, err)

	var calls atomic.Int32
	h := CacheMiddlewareWithConfig(cache.NewMemoryAdapter(), map[string]CacheConfig{
		"/api/symptoms": {TTLSeconds: 60, Enabled: true},
	}, metrics)(okHandler(&calls))

	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/symptoms", nil))
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestCacheMiddleware_NilCachePassesThrough(t *testing.T) {
	var calls atomic.Int32
	h := NewCacheMiddleware(nil, nil).Middleware(okHandler(&calls))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/symptoms", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestGetRouteConfig_LongestPrefix(t *testing.T) {
	m := &CacheMiddleware{routeConfigs: map[string]CacheConfig{
		"/api/":         {TTLSeconds: 1, Enabled: true},
		"/api/doctors/": {TTLSeconds: 2, Enabled: true},
	}}

	route, cfg := m.getRouteConfig("/api/doctors/3")
	assert.Equal(t, "/api/doctors/", route)
	assert.Equal(t, 2, cfg.TTLSeconds)

	_, cfg = m.getRouteConfig("/health")
	assert.False(t, cfg.Enabled)
}

func TestIPRateLimiter_RejectsOverBurst(t *testing.T) {
	var calls atomic.Int32
	limiter := NewIPRateLimiter(0.001, 2)
	h := limiter.Middleware(okHandler(&calls))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/symptoms/predict", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/api/symptoms/predict", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func (l *IPRateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

func TestIPRateLimiter_SweepsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(1, 1)
	limiter.now = func() time.Time { return now }
	limiter.lastSweep = now

	limiter.GetLimiter("10.0.0.1")
	limiter.GetLimiter("10.0.0.2")
	assert.Equal(t, 2, limiter.size())

	now = now.Add(4 * time.Minute)
	limiter.GetLimiter("10.0.0.3")
	assert.Equal(t, 1, limiter.size())
}

func TestObservabilityAndLogging_PreserveStatusAndFlush(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)
		flusher.Flush()
	})

	h := LoggingMiddleware(ObservabilityMiddleware(nil)(handler))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/voice/recordings", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, rec.Flushed)
}

func TestRouteLabel_UsesPatternOrUnmatched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/doctors/{id}", func(w http.ResponseWriter, r *http.Request) {})

	matched := httptest.NewRequest(http.MethodGet, "/api/doctors/42", nil)
	mux.ServeHTTP(httptest.NewRecorder(), matched)
	assert.Equal(t, "GET /api/doctors/{id}", routeLabel(matched))

	for _, path := range []string{"/scan/a1b2", "/scan/c3d4", "/wp-admin.php"} {
		stray := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, stray)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, unmatchedRoute, routeLabel(stray))
	}
}
