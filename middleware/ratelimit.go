package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"inkwell-cms/helper"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// KeyedRateLimiter gives every key its own token bucket. Buckets idle for
// longer than idleTTL are dropped by Prune.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyedLimiter
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	now      func() time.Time
}

type keyedLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedRateLimiter allows perMinute events per key with the given burst.
func NewKeyedRateLimiter(perMinute float64, burst int) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		limiters: make(map[string]*keyedLimiter),
		limit:    rate.Limit(perMinute / 60),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

func (k *KeyedRateLimiter) Allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	l, ok := k.limiters[key]
	if !ok {
		l = &keyedLimiter{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.limiters[key] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

// Prune removes idle buckets and returns how many were removed.
func (k *KeyedRateLimiter) Prune() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	cutoff := k.now().Add(-k.idleTTL)
	removed := 0
	for key, l := range k.limiters {
		if l.lastSeen.Before(cutoff) {
			delete(k.limiters, key)
			removed++
		}
	}
	return removed
}

// RateLimit limits requests per authenticated user, falling back to the
// client IP. It runs after AuthMiddleware.
func RateLimit(limiter *KeyedRateLimiter, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if actor := ActorFrom(c); actor.UserID != 0 {
			key = fmt.Sprintf("user:%d", actor.UserID)
		}
		if !limiter.Allow(key) {
			h.SendError(c, "too many uploads, try again later", h.EmptyJsonMap(), http.StatusTooManyRequests, `rateLimited`)
			c.Abort()
			return
		}
		c.Next()
	}
}
