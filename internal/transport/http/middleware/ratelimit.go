package middleware

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/baechuer/contactbook/internal/domain"
	"github.com/baechuer/contactbook/internal/infrastructure/redis"
)

type RateLimiter interface {
	AllowFixedWindow(ctx context.Context, key string, limit int, window time.Duration) (redis.Decision, error)
}

// FixedWindowConfig defines the configuration for a fixed-window rate limit.
type FixedWindowConfig struct {
	RouteKey string
	Limit    int
	Window   time.Duration
}

// RateLimitFixedWindow throttles per user (when authenticated) or per
// client IP. Limiter failures fail open: throttling is protection, not
// a precondition for serving traffic.
func RateLimitFixedWindow(limiter RateLimiter, cfg FixedWindowConfig, writeErr WriteErrFunc) func(http.Handler) http.Handler {
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.RouteKey == "" {
		cfg.RouteKey = "unknown"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			bucket := time.Now().Unix() / int64(cfg.Window.Seconds())
			key := fmt.Sprintf("rl:%s:%s:%d", cfg.RouteKey, userOrIP(r), bucket)

			dec, err := limiter.AllowFixedWindow(r.Context(), key, cfg.Limit, cfg.Window)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			if !dec.Allowed {
				if dec.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(dec.RetryAfter.Seconds())))
				}
				writeErr(w, r, domain.ErrRateLimited(cfg.RouteKey))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// userOrIP prefers the authenticated user id; otherwise falls back to client IP.
func userOrIP(r *http.Request) string {
	if u, ok := UserFromContext(r.Context()); ok {
		return "u:" + u.ID
	}
	return "ip:" + clientIP(r)
}

func clientIP(r *http.Request) string {
	// Trust X-Forwarded-For only behind a proxy you control.
	xff := strings.TrimSpace(r.Header.Get("X-Forwarded-For"))
	if xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}
