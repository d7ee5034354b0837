package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_Concurrency(t *testing.T) {
	c := NewController(Config{MaxBackgroundWorkers: 2})

	// Acquire 2
	require.True(t, c.TryAcquireBackground())
	require.True(t, c.TryAcquireBackground())

	// Try 3rd
	assert.False(t, c.TryAcquireBackground())
	assert.False(t, c.TryStart())

	// Release 1
	c.ReleaseBackground()

	// Try 3rd again
	assert.True(t, c.TryAcquireBackground())
}

func TestController_Pacing(t *testing.T) {
	c := NewController(Config{MinInterval: time.Hour})

	assert.True(t, c.TryStart())
	c.ReleaseBackground()

	// Slot is free but the interval has not elapsed.
	assert.False(t, c.TryStart())
	assert.True(t, c.TryAcquireBackground(), "failed TryStart must return the slot")
}

func TestController_Unlimited(t *testing.T) {
	c := NewController(Config{})
	for range 5 {
		require.True(t, c.TryStart())
		c.ReleaseBackground()
	}
	assert.True(t, c.AllowJob())
}

func TestController_Nil(t *testing.T) {
	var c *Controller

	assert.True(t, c.TryStart())
	assert.True(t, c.AllowJob())
	assert.True(t, c.TryAcquireBackground())
	c.ReleaseBackground()
}
