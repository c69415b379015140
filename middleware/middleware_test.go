package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		_, ok := c.Get("logger")
		c.JSON(http.StatusOK, gin.H{"hasLogger": ok})
	})
	return r
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2, zap.NewNop()))
	require.NoError(t, r.SetTrustedProxies([]string{"192.0.2.0/24"}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client behind the same proxy has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Real-IP", "198.51.100.7")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newRouter(RateLimitMiddleware(2, zap.NewNop()))
	require.NoError(t, r.SetTrustedProxies(nil))

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"203.0.113.1", "203.0.113.2", "203.0.113.3"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Forwarded-For", spoofed)
		req.Header.Set("X-Real-IP", spoofed)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimiterStore_EvictsIdleClients(t *testing.T) {
	clock := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	store := newRateLimiterStore(5)
	store.now = func() time.Time { return clock }
	store.lastSweep = clock

	first := store.getLimiter("203.0.113.1")
	clock = clock.Add(4 * time.Minute)
	store.getLimiter("203.0.113.2")
	assert.Equal(t, 2, store.size())
	assert.Same(t, first, store.getLimiter("203.0.113.1"))

	// .1 was touched at 09:04 and .2 at 09:04; both are idle by 09:15
	clock = clock.Add(11 * time.Minute)
	store.getLimiter("203.0.113.3")
	assert.Equal(t, 1, store.size())

	// .3 survives a sweep while it is still active
	clock = clock.Add(9 * time.Minute)
	store.getLimiter("203.0.113.3")
	clock = clock.Add(2 * time.Minute)
	store.getLimiter("203.0.113.4")
	assert.Equal(t, 2, store.size())
}

func TestRequestLogger(t *testing.T) {
	r := newRouter(RequestLogger(zap.NewNop()))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"hasLogger":true}`, w.Body.String())
}
