package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(capacity int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter(capacity, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter_Allow(t *testing.T) {
	rl, clock := newTestLimiter(3, time.Minute)
	defer rl.Stop()

	for range 3 {
		assert.True(t, rl.Allow("10.0.0.1"))
	}
	assert.False(t, rl.Allow("10.0.0.1"))
	assert.True(t, rl.Allow("10.0.0.2"), "clients have separate buckets")

	clock.t = clock.t.Add(59 * time.Second)
	assert.False(t, rl.Allow("10.0.0.1"))

	clock.t = clock.t.Add(time.Second)
	assert.True(t, rl.Allow("10.0.0.1"), "bucket refills after the window")
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Minute)
	defer rl.Stop()

	rl.Allow("idle")
	clock.t = clock.t.Add(2 * time.Hour)
	rl.Allow("active")

	rl.cleanup()
	assert.NotContains(t, rl.clients, "idle")
	assert.Contains(t, rl.clients, "active")

	rl.Stop()
	rl.Stop()
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.0.2.1", clientIP(&http.Request{RemoteAddr: "192.0.2.1:1234"}))
	assert.Equal(t, "pipe", clientIP(&http.Request{RemoteAddr: "pipe"}))
}
