package middleware

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds configuration for the rate limiter middleware.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit (tokens added per second).
	RequestsPerSecond float64
	// Burst is the maximum number of requests allowed in a burst.
	Burst int
}

const (
	rateLimitSweepEvery = 5 * time.Minute
	rateLimitStaleAfter = 10 * time.Minute
)

// RateLimiter enforces a per-client token-bucket rate limit. When the limit
// is exceeded, it responds with 429 Too Many Requests and a Retry-After
// header. Stale per-client state is swept on the request path; a CAS on the
// sweep timestamp lets at most one request per interval perform the sweep,
// so no background goroutine is needed.
func RateLimiter(cfg RateLimitConfig) func(http.Handler) http.Handler {
	type client struct {
		limiter  *rate.Limiter
		lastSeen atomic.Int64 // unix nanoseconds
	}
	var (
		clients   sync.Map // map[string]*client
		lastSweep atomic.Int64
	)
	lastSweep.Store(time.Now().UnixNano())

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now().UnixNano()

			if prev := lastSweep.Load(); now-prev > int64(rateLimitSweepEvery) &&
				lastSweep.CompareAndSwap(prev, now) {
				clients.Range(func(key, value any) bool {
					if now-value.(*client).lastSeen.Load() > int64(rateLimitStaleAfter) {
						clients.Delete(key)
					}
					return true
				})
			}

			ip := clientIP(r)
			v, ok := clients.Load(ip)
			if !ok {
				v, _ = clients.LoadOrStore(ip, &client{
					limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
				})
			}
			cl := v.(*client)
			cl.lastSeen.Store(now)

			if !cl.limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"code":    http.StatusTooManyRequests,
					"message": "rate limit exceeded",
				})
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Burst))
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client IP from the request, stripping the port.
// Only RemoteAddr is used; X-Forwarded-For is untrusted and ignored to
// prevent rate-limit bypass via header spoofing.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
