package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 5
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
)

// WindowCounter counts hits of a key inside a fixed window shared across instances.
type WindowCounter interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitOptions configures a RateLimiter.
type RateLimitOptions struct {
	MaxAttempts int
	Window      time.Duration
	// KeyPrefix namespaces the keys in the shared counter.
	KeyPrefix string
	// Code is the error code of the 429 answer.
	Code string
	// Counter is optional. The in-memory window is used when nil or failing.
	Counter WindowCounter
	// Disabled lets every request through.
	Disabled bool
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter provides IP-based rate limiting functionality.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	keyPrefix      string
	code           string
	counter        WindowCounter
	disabled       bool
	now            func() time.Time
}

// NewRateLimiter creates a new rate limiter with default settings.
func NewRateLimiter(code string) *RateLimiter {
	return NewRateLimiterWithOptions(RateLimitOptions{Code: code})
}

// NewRateLimiterWithOptions creates a new rate limiter with custom settings.
func NewRateLimiterWithOptions(opts RateLimitOptions) *RateLimiter {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaultMaxAttempts
	}
	if opts.Window <= 0 {
		opts.Window = defaultWindowDuration
	}
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    opts.MaxAttempts,
		windowDuration: opts.Window,
		keyPrefix:      opts.KeyPrefix,
		code:           opts.Code,
		counter:        opts.Counter,
		disabled:       opts.Disabled,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.disabled {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		if clientIP == "" {
			clientIP = c.Request.RemoteAddr
		}

		if !rl.Allow(c.Request.Context(), clientIP) {
			abort(c, http.StatusTooManyRequests, "Demasiadas solicitudes. Inténtalo de nuevo más tarde.", rl.code)
			return
		}

		c.Next()
	}
}

// Allow reports whether a request from key fits in the current window.
func (rl *RateLimiter) Allow(ctx context.Context, key string) bool {
	if rl.counter != nil {
		count, err := rl.counter.Increment(ctx, rl.keyPrefix+key, rl.windowDuration)
		if err == nil {
			return count <= int64(rl.maxAttempts)
		}
		slog.Warn("Rate limit counter unavailable, using in-memory window", "error", err)
	}
	return rl.allow(key)
}

// allow checks the in-memory window of key.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return true
	}

	if now.After(entry.resetTime) {
		entry.attempts = 1
		entry.resetTime = now.Add(rl.windowDuration)
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// Reset clears the in-memory state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rateLimitEntry)
}

// Cleanup removes expired entries (can be called periodically to free memory).
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, entry := range rl.entries {
		if now.After(entry.resetTime) {
			delete(rl.entries, key)
		}
	}
}
