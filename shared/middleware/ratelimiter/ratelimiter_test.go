package ratelimiter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	t.Run("spends capacity then refills", func(t *testing.T) {
		rl := New(1, 2, time.Minute)
		defer rl.Stop()
		now := time.Now()
		rl.now = func() time.Time { return now }

		assert.True(t, rl.Allow("u1"))
		assert.True(t, rl.Allow("u1"))
		assert.False(t, rl.Allow("u1"))

		now = now.Add(time.Second)
		assert.True(t, rl.Allow("u1"))
		assert.False(t, rl.Allow("u1"))
	})

	t.Run("identities are independent", func(t *testing.T) {
		rl := New(1, 1, time.Minute)
		defer rl.Stop()

		assert.True(t, rl.Allow("a"))
		assert.False(t, rl.Allow("a"))
		assert.True(t, rl.Allow("b"))
	})

	t.Run("refill interval", func(t *testing.T) {
		rl := New(1.0/30, 2, time.Hour)
		defer rl.Stop()
		assert.Equal(t, 30*time.Second, rl.RefillInterval().Round(time.Second))
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl := New(1, 1, time.Minute)
		rl.Stop()
		rl.Stop()
	})
}
