package signal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := newRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("c1"))
	assert.True(t, rl.Allow("c1"))
	assert.True(t, rl.Allow("c1"))
	assert.False(t, rl.Allow("c1"))

	// Another connection has its own budget.
	assert.True(t, rl.Allow("c2"))
}

func TestRateLimiterWindowSlides(t *testing.T) {
	rl := newRateLimiter(2, 10*time.Millisecond)

	assert.True(t, rl.Allow("c1"))
	assert.True(t, rl.Allow("c1"))
	assert.False(t, rl.Allow("c1"))

	time.Sleep(15 * time.Millisecond)
	assert.True(t, rl.Allow("c1"), "old attempts age out of the window")
}

func TestRateLimiterForget(t *testing.T) {
	rl := newRateLimiter(1, time.Minute)

	assert.True(t, rl.Allow("c1"))
	assert.False(t, rl.Allow("c1"))

	rl.Forget("c1")
	assert.True(t, rl.Allow("c1"))
}
