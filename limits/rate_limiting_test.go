package limits

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ridgeline-tours/asset-repo/common/config"
	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWrapDisabledPassesThrough(t *testing.T) {
	h := Wrap(config.RateLimitConfig{Enabled: false, RequestsPerSecond: 1, BurstCount: 1}, okHandler())
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/migrate-public-files", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestWrapEnabledLimits(t *testing.T) {
	h := Wrap(config.RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, BurstCount: 1}, okHandler())

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/migrate-public-files", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, http.StatusOK, codes[0])
	assert.Contains(t, codes[1:], http.StatusTooManyRequests)
}

func TestGetRequestIP(t *testing.T) {
	l := NewRequestLimiter(config.RateLimitConfig{RequestsPerSecond: 1, BurstCount: 1})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", GetRequestIP(l, req))
}
