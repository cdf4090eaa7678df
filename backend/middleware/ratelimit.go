// ABOUTME: Rate limiting middleware with fixed-window counters per client
// ABOUTME: One limiter per route tier; uploads get a stricter budget than reads

package middleware

import (
	"fmt"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// window counts one client's requests until expiresAt
type window struct {
	count     int
	expiresAt time.Time
}

// Decision is the outcome of a single Allow call
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter allows limit requests per client within each fixed window.
// Expired windows are swept once per window length.
type RateLimiter struct {
	mu        sync.Mutex
	name      string
	limit     int
	length    time.Duration
	clients   map[string]*window
	nextSweep time.Time
	now       func() time.Time
}

// NewRateLimiter creates a limiter for the named tier
func NewRateLimiter(name string, limit int, length time.Duration) *RateLimiter {
	return &RateLimiter{
		name:    name,
		limit:   limit,
		length:  length,
		clients: make(map[string]*window),
		now:     time.Now,
	}
}

// Name returns the tier the limiter guards
func (rl *RateLimiter) Name() string {
	return rl.name
}

// Allow records a request from client and reports whether it fits the
// current window. A request at the exact expiry instant opens a new window.
func (rl *RateLimiter) Allow(client string) Decision {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if !now.Before(rl.nextSweep) {
		rl.sweep(now)
		rl.nextSweep = now.Add(rl.length)
	}

	w, ok := rl.clients[client]
	if !ok || !now.Before(w.expiresAt) {
		rl.clients[client] = &window{count: 1, expiresAt: now.Add(rl.length)}
		return Decision{Allowed: true, Remaining: rl.limit - 1}
	}

	if w.count < rl.limit {
		w.count++
		return Decision{Allowed: true, Remaining: rl.limit - w.count}
	}

	return Decision{RetryAfter: w.expiresAt.Sub(now)}
}

// Len returns the number of clients with a tracked window
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.clients)
}

// sweep drops expired windows. Caller holds rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.clients {
		if !now.Before(w.expiresAt) {
			delete(rl.clients, k)
		}
	}
}

// ClientIP returns the leftmost valid X-Forwarded-For address, falling back
// to the connection's remote host. The header is only trustworthy behind a
// proxy that sets it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host
}

// RateLimit returns middleware enforcing limiter per client key. A nil
// limiter disables limiting, as does an empty key.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil || keyFunc == nil {
			return next
		}

		return func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			d := limiter.Allow(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))
			if d.Allowed {
				next(w, r)
				return
			}

			retry := int(math.Ceil(d.RetryAfter.Seconds()))
			slog.Warn("Rate limit exceeded",
				"request_id", RequestID(r.Context()),
				"tier", limiter.name,
				"client", key,
				"path", sanitizePath(r.URL.Path),
				"retry_after", retry,
			)

			w.Header().Set("Retry-After", strconv.Itoa(retry))
			writeJSONError(w, "Rate limit exceeded",
				fmt.Sprintf("%s limit is %d requests per %s, retry in %ds", limiter.name, limiter.limit, limiter.length, retry),
				http.StatusTooManyRequests)
		}
	}
}
