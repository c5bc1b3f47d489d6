package limits

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/didip/tollbooth/v7/libstring"
	"github.com/didip/tollbooth/v7/limiter"
	"github.com/ridgeline-tours/asset-repo/api"
	"github.com/ridgeline-tours/asset-repo/common/config"
)

func NewRequestLimiter(cfg config.RateLimitConfig) *limiter.Limiter {
	l := tollbooth.NewLimiter(cfg.RequestsPerSecond, &limiter.ExpirableOptions{DefaultExpirationTTL: time.Hour})
	l.SetIPLookups([]string{"X-Forwarded-For", "X-Real-IP", "RemoteAddr"})
	l.SetBurst(cfg.BurstCount)

	b, _ := json.Marshal(api.RateLimitReached())
	l.SetMessage(string(b))
	l.SetMessageContentType("application/json")
	return l
}

// Wrap applies the request limiter to next when rate limiting is enabled.
func Wrap(cfg config.RateLimitConfig, next http.Handler) http.Handler {
	if !cfg.Enabled {
		return next
	}
	return tollbooth.LimitHandler(NewRequestLimiter(cfg), next)
}

func GetRequestIP(l *limiter.Limiter, r *http.Request) string {
	// Same implementation as tollbooth
	return libstring.RemoteIP(l.GetIPLookups(), l.GetForwardedForIndexFromBehind(), r)
}
