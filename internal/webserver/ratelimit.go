package webserver

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RateLimiter is an in-process sliding-window limiter keyed by caller
// IP. Each key holds its request timestamps pruned to the window; the
// map is guarded by a mutex because echo serves requests on multiple
// goroutines. There is no package-level instance: the limiter is built
// once and injected into the middleware chain.
type RateLimiter struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	hits   map[string][]time.Time

	now func() time.Time
}

func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max < 1 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{
		max:    max,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it fits the
// window. When rejected, retryAfter is the whole number of seconds
// until the oldest counted request leaves the window.
func (l *RateLimiter) Allow(key string) (allowed bool, remaining int, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, ts := range l.hits[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.max {
		l.hits[key] = kept
		wait := kept[0].Add(l.window).Sub(now)
		retryAfter = int(wait / time.Second)
		if wait%time.Second != 0 {
			retryAfter++
		}
		return false, 0, retryAfter
	}

	kept = append(kept, now)
	l.hits[key] = kept
	return true, l.max - len(kept), 0
}

// Evict drops keys whose every timestamp has left the window, so the
// map does not grow with one entry per caller forever. Returns the
// number of keys removed.
func (l *RateLimiter) Evict() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-l.window)
	evicted := 0
	for key, stamps := range l.hits {
		idle := true
		for _, ts := range stamps {
			if ts.After(cutoff) {
				idle = false
				break
			}
		}
		if idle {
			delete(l.hits, key)
			evicted++
		}
	}
	return evicted
}

// Middleware applies the limiter to every request, keyed by real IP.
func (l *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, remaining, retryAfter := l.Allow(c.RealIP())
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(l.max))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !allowed {
				zap.L().Warn("rate limit exceeded",
					zap.String("remote_ip", c.RealIP()),
					zap.Int("retry_after", retryAfter))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":      "Too many requests. Please try again later.",
					"retryAfter": retryAfter,
				})
			}
			return next(c)
		}
	}
}
