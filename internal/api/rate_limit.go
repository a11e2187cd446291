package api

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// CleanupInterval is the interval for cleaning up stale limiters
	CleanupInterval = 5 * time.Minute
	// LimiterTTL is the time-to-live for inactive limiters
	LimiterTTL = 10 * time.Minute
)

// RateLimiter manages per-client rate limiting
type RateLimiter struct {
	limiters  map[string]*limiterEntry
	mu        sync.Mutex
	rateLimit rate.Limit
	burstSize int
	logger    *zap.Logger
	stopCh    chan struct{}
	stopOnce  sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows requestsPerMinute per client with the given burst.
// Call Stop to end the cleanup goroutine.
func NewRateLimiter(requestsPerMinute float64, burstSize int, logger *zap.Logger) *RateLimiter {
	rl := &RateLimiter{
		limiters:  make(map[string]*limiterEntry),
		rateLimit: rate.Limit(requestsPerMinute / 60.0),
		burstSize: burstSize,
		logger:    logger,
		stopCh:    make(chan struct{}),
	}

	go rl.cleanup()

	return rl
}

// Reserve takes a token for client and returns how long it must wait
// when none is available.
func (r *RateLimiter) Reserve(client string) (ok bool, retryAfter time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.limiters[client]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(r.rateLimit, r.burstSize)}
		r.limiters[client] = entry
	}
	entry.lastSeen = time.Now()

	res := entry.limiter.Reserve()
	if !res.OK() {
		return false, time.Minute
	}
	delay := res.Delay()
	if delay == 0 {
		return true, 0
	}
	res.Cancel()
	return false, delay
}

// Middleware answers 429 with Retry-After when the client is over its rate.
func (r *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		client := clientKey(req)
		ok, retryAfter := r.Reserve(client)
		if !ok {
			secs := int(math.Ceil(retryAfter.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			r.logger.Warn("Advice request throttled",
				zap.String("client", client),
				zap.Int("retry_after_s", secs))
			writeError(w, http.StatusTooManyRequests, "too many advice requests, slow down", nil)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// Stop ends the cleanup goroutine.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

// cleanup periodically removes stale limiters to prevent memory leaks
func (r *RateLimiter) cleanup() {
	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.mu.Lock()
			now := time.Now()
			for client, entry := range r.limiters {
				if now.Sub(entry.lastSeen) > LimiterTTL {
					delete(r.limiters, client)
					r.logger.Debug("Cleaned up stale rate limiter", zap.String("client", client))
				}
			}
			r.mu.Unlock()
		case <-r.stopCh:
			return
		}
	}
}

func clientKey(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
