package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// limiterIdleTTL is how long an unused client limiter is kept.
	limiterIdleTTL = 10 * time.Minute
	// maxLimiters caps the number of tracked client keys.
	maxLimiters = 10000
)

// RateLimitMiddleware throttles requests per client key (the authenticated
// user when known, the client IP otherwise). rps <= 0 disables limiting.
func RateLimitMiddleware(rps float64, burst int, key func(*gin.Context) string) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if key == nil {
		key = func(c *gin.Context) string { return c.ClientIP() }
	}
	limiters := newClientLimiters(rps, burst, limiterIdleTTL, maxLimiters)

	return func(c *gin.Context) {
		k := key(c)
		if k == "" {
			k = c.ClientIP()
		}
		if !limiters.allow(k) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// clientLimiters holds one token bucket per client key. Keys idle for longer
// than idle are swept, and the table never grows past max entries. When full,
// the least recently seen key is evicted.
type clientLimiters struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	max   int
	now   func() time.Time

	mu        sync.Mutex
	entries   map[string]*clientLimiter
	lastSweep time.Time
}

func newClientLimiters(rps float64, burst int, idle time.Duration, maxKeys int) *clientLimiters {
	if burst <= 0 {
		burst = 1
	}
	if maxKeys <= 0 {
		maxKeys = 1
	}
	return &clientLimiters{
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
		max:     maxKeys,
		now:     time.Now,
		entries: make(map[string]*clientLimiter),
	}
}

func (l *clientLimiters) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.idle {
		l.sweep(now)
	}

	e, ok := l.entries[key]
	if !ok {
		if len(l.entries) >= l.max {
			l.sweep(now)
		}
		if len(l.entries) >= l.max {
			l.evictOldest()
		}
		e = &clientLimiter{lim: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.lim.AllowN(now, 1)
}

func (l *clientLimiters) sweep(now time.Time) {
	l.lastSweep = now
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) >= l.idle {
			delete(l.entries, k)
		}
	}
}

func (l *clientLimiters) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for k, e := range l.entries {
		if !found || e.lastSeen.Before(oldest) {
			oldestKey, oldest, found = k, e.lastSeen, true
		}
	}
	if found {
		delete(l.entries, oldestKey)
	}
}

func (l *clientLimiters) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
