package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/snuhangout/api/internal/metrics"
	"github.com/snuhangout/api/internal/model"
)

// RateLimiter is a fixed-window request counter shared by every API
// instance through Redis
type RateLimiter struct {
	client *redis.Client
	rate   int
	window time.Duration
	prefix string
}

// RateLimitConfig holds rate limiter configuration
type RateLimitConfig struct {
	Rate   int           // Requests per window (default 100)
	Window time.Duration // Window length (default 1 minute)
	Prefix string        // Redis key prefix (default "ratelimit:")
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(client *redis.Client, cfg RateLimitConfig) *RateLimiter {
	if cfg.Rate <= 0 {
		cfg.Rate = 100
	}
	if cfg.Window <= 0 {
		cfg.Window = time.Minute
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit:"
	}

	return &RateLimiter{
		client: client,
		rate:   cfg.Rate,
		window: cfg.Window,
		prefix: cfg.Prefix,
	}
}

// Allow counts one request for key. The window starts with the first
// request and the counter expires with it.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (allowed bool, remaining int, resetTime time.Time, err error) {
	k := rl.prefix + key

	count, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit incr: %w", err)
	}

	ttl, err := rl.client.PTTL(ctx, k).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	// First hit in the window, or a key left without expiry by a failed EXPIRE
	if count == 1 || ttl < 0 {
		if err := rl.client.PExpire(ctx, k, rl.window).Err(); err != nil {
			return false, 0, time.Time{}, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = rl.window
	}

	resetTime = time.Now().Add(ttl)
	remaining = rl.rate - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= rl.rate, remaining, resetTime, nil
}

// RateLimit returns a middleware that applies rate limiting per
// authenticated user, falling back to the client IP. Redis failures let the
// request through.
func RateLimit(limiter *RateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := GetUserID(r.Context())
			if key == "" {
				key = clientIP(r)
			}

			allowed, remaining, resetTime, err := limiter.Allow(r.Context(), key)
			if err != nil {
				slog.Warn("rate limiter unavailable", slog.String("error", err.Error()))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.rate))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

			if !allowed {
				retryAfter := int(time.Until(resetTime).Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				metrics.RateLimitRejections.Inc()

				model.NewRateLimitError(retryAfter).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
