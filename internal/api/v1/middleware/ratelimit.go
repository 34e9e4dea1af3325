package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/relatewell/genproxy/internal/config"
	redisinfra "github.com/relatewell/genproxy/internal/infrastructure/redis"
	"github.com/relatewell/genproxy/pkg/httpext"
	"github.com/relatewell/genproxy/pkg/logger"
	"github.com/relatewell/genproxy/pkg/ratelimit"
)

// RateLimit limits requests per client IP. Limits are shared through Redis when
// redisService is non-nil, otherwise they are tracked per process.
func RateLimit(limitKey string, redisService *redisinfra.Service) func(http.Handler) http.Handler {
	cfg := config.GetRateLimitConfig(limitKey)

	var limiter ratelimit.Limiter
	if redisService != nil {
		limiter = ratelimit.NewRedisLimiter(redisService.Client(), limitKey, cfg.Window, cfg.MaxHits)
	} else {
		limiter = ratelimit.NewLimiter(cfg.Window, cfg.MaxHits)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			if !limiter.Allow(r.Context(), ip) {
				logger.Warn(logger.MIDDLEWARE, "Rate limit exceeded for %s on %s", ip, limitKey)
				httpext.JsonError(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Use X-Forwarded-For if behind proxy, otherwise remote address
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
