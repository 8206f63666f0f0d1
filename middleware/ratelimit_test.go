package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiterIsPerKey(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewKeyedRateLimiter(60, 2)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("user:1"))
	assert.True(t, limiter.Allow("user:1"))
	assert.False(t, limiter.Allow("user:1"))
	assert.True(t, limiter.Allow("user:2"))

	now = now.Add(time.Second)
	assert.True(t, limiter.Allow("user:1"))
}

func TestKeyedRateLimiterPrune(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewKeyedRateLimiter(60, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("user:1")
	now = now.Add(5 * time.Minute)
	limiter.Allow("user:2")
	now = now.Add(6 * time.Minute)

	assert.Equal(t, 1, limiter.Prune())
	assert.Equal(t, 0, limiter.Prune())
}
