package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiterConfig holds the rate limit settings. The API is public,
// so limits are keyed by client IP rather than by account.
type RateLimiterConfig struct {
	GeneralRate     rate.Limit    // general API rate (req/sec)
	GeneralBurst    int           // general API burst size
	DispatchRate    rate.Limit    // mail-dispatching endpoints rate (req/sec)
	DispatchBurst   int           // mail-dispatching endpoints burst size
	CleanupInterval time.Duration // expired entry cleanup interval
}

// DefaultRateLimiterConfig returns the default settings: 120 req/min
// per client for the API, 5 req/min for anything that sends mail.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		GeneralRate:     rate.Limit(120.0 / 60.0),
		GeneralBurst:    120,
		DispatchRate:    rate.Limit(5.0 / 60.0),
		DispatchBurst:   5,
		CleanupInterval: 5 * time.Minute,
	}
}

// clientLimiter pairs a limiter with its last access time.
type clientLimiter struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// RateLimiter enforces per-client limits in two independent classes:
// the general API and the endpoints that dispatch mail through the
// relay (inbox messages and the contact form).
type RateLimiter struct {
	config RateLimiterConfig

	generalMu       sync.RWMutex
	generalLimiters map[string]*clientLimiter

	dispatchMu       sync.RWMutex
	dispatchLimiters map[string]*clientLimiter

	stopCh chan struct{}
}

// NewRateLimiter builds a RateLimiter and starts the background
// cleanup of idle entries.
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	rl := &RateLimiter{
		config:           config,
		generalLimiters:  make(map[string]*clientLimiter),
		dispatchLimiters: make(map[string]*clientLimiter),
		stopCh:           make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Stop stops the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCh)
}

// GeneralMiddleware returns the general API rate limit middleware.
func (rl *RateLimiter) GeneralMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r)
			limiter := rl.getOrCreate(&rl.generalMu, rl.generalLimiters, client,
				rl.config.GeneralRate, rl.config.GeneralBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.GeneralRate)
				slog.Warn("rate limit exceeded",
					slog.String("client", client),
					slog.String("limit_type", "general"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// DispatchMiddleware returns the rate limit middleware for endpoints
// that send mail. It works independently of the general limit.
func (rl *RateLimiter) DispatchMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := ClientIP(r)
			limiter := rl.getOrCreate(&rl.dispatchMu, rl.dispatchLimiters, client,
				rl.config.DispatchRate, rl.config.DispatchBurst)

			if !limiter.Allow() {
				writeRateLimitResponse(w, rl.config.DispatchRate)
				slog.Warn("rate limit exceeded",
					slog.String("client", client),
					slog.String("limit_type", "dispatch"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GeneralLimiterCount returns the number of tracked general limiters.
// For tests and metrics.
func (rl *RateLimiter) GeneralLimiterCount() int {
	rl.generalMu.RLock()
	defer rl.generalMu.RUnlock()
	return len(rl.generalLimiters)
}

// DispatchLimiterCount returns the number of tracked dispatch limiters.
// For tests and metrics.
func (rl *RateLimiter) DispatchLimiterCount() int {
	rl.dispatchMu.RLock()
	defer rl.dispatchMu.RUnlock()
	return len(rl.dispatchLimiters)
}

// getOrCreate looks up the client's limiter in the given class,
// creating it on first sight.
func (rl *RateLimiter) getOrCreate(mu *sync.RWMutex, limiters map[string]*clientLimiter, client string, r rate.Limit, burst int) *rate.Limiter {
	mu.RLock()
	cl, exists := limiters[client]
	mu.RUnlock()

	if exists {
		mu.Lock()
		cl.lastAccess = time.Now()
		mu.Unlock()
		return cl.limiter
	}

	mu.Lock()
	defer mu.Unlock()

	// double check
	if cl, exists := limiters[client]; exists {
		cl.lastAccess = time.Now()
		return cl.limiter
	}

	limiter := rate.NewLimiter(r, burst)
	limiters[client] = &clientLimiter{
		limiter:    limiter,
		lastAccess: time.Now(),
	}

	return limiter
}

// cleanupLoop periodically removes idle entries in the background.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCh:
			return
		}
	}
}

// cleanup drops entries idle for more than twice the cleanup interval.
func (rl *RateLimiter) cleanup() {
	ttl := rl.config.CleanupInterval * 2
	now := time.Now()

	rl.generalMu.Lock()
	for client, cl := range rl.generalLimiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.generalLimiters, client)
		}
	}
	rl.generalMu.Unlock()

	rl.dispatchMu.Lock()
	for client, cl := range rl.dispatchLimiters {
		if now.Sub(cl.lastAccess) > ttl {
			delete(rl.dispatchLimiters, client)
		}
	}
	rl.dispatchMu.Unlock()
}

// ClientIP resolves the client address of a request. Behind the
// reverse proxy the first X-Forwarded-For entry wins; otherwise the
// connection's remote address is used.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// writeRateLimitResponse writes a 429 with a Retry-After estimate of
// one token's refill time.
func writeRateLimitResponse(w http.ResponseWriter, r rate.Limit) {
	retryAfterSec := int(math.Ceil(1.0 / float64(r)))
	if retryAfterSec < 1 {
		retryAfterSec = 1
	}

	w.Header().Set("Retry-After", strconv.Itoa(retryAfterSec))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)

	json.NewEncoder(w).Encode(map[string]string{
		"code":     "rate_limit_exceeded",
		"message":  "Demasiadas peticiones. Probá de nuevo más tarde.",
		"category": "system",
		"action":   "Esperá el tiempo indicado y volvé a intentar.",
	})
}
