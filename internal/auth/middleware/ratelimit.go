package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter hands out one token bucket per client address. Device ids
// are chosen by the caller, so they cannot key a limit. Buckets idle for
// longer than the idle TTL are swept.
type ClientLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientLimiter builds a limiter. idleTTL <= 0 defaults to ten minutes.
func NewClientLimiter(perSecond float64, burst int, idleTTL time.Duration) *ClientLimiter {
	if idleTTL <= 0 {
		idleTTL = 10 * time.Minute
	}
	return &ClientLimiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(perSecond),
		burst:   burst,
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// Allow consumes a token for key.
func (l *ClientLimiter) Allow(key string) bool {
	l.mu.Lock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.idleTTL {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now
	l.mu.Unlock()
	return b.limiter.AllowN(now, 1)
}

// Len reports how many buckets are held.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep requires l.mu.
func (l *ClientLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idleTTL {
			delete(l.buckets, key)
		}
	}
	l.lastSweep = now
}

// RateLimit rejects requests with 429 once the client's bucket is empty.
func RateLimit(l *ClientLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, try again shortly"})
			c.Abort()
			return
		}
		c.Next()
	}
}
