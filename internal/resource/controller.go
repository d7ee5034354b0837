package resource

import (
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds background work limits.
type Config struct {
	// MaxBackgroundWorkers is the maximum number of concurrent background jobs.
	// If 0, defaults to 1.
	MaxBackgroundWorkers int64

	// MinInterval is the minimum time between two background jobs.
	// If 0, unlimited.
	MinInterval time.Duration
}

// Controller manages background worker slots and job pacing.
// A nil *Controller imposes no limits.
type Controller struct {
	bgSem   *semaphore.Weighted
	limiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		bgSem: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}

	if cfg.MinInterval > 0 {
		c.limiter = rate.NewLimiter(rate.Every(cfg.MinInterval), 1)
	}

	return c
}

// TryAcquireBackground attempts to reserve a background worker slot without
// blocking.
func (c *Controller) TryAcquireBackground() bool {
	if c == nil {
		return true
	}
	return c.bgSem.TryAcquire(1)
}

// ReleaseBackground releases a background worker slot.
func (c *Controller) ReleaseBackground() {
	if c == nil {
		return
	}
	c.bgSem.Release(1)
}

// AllowJob reports whether a job may start now and, if so, consumes the
// pacing token. It never blocks.
func (c *Controller) AllowJob() bool {
	if c == nil || c.limiter == nil {
		return true
	}
	return c.limiter.Allow()
}

// TryStart combines AllowJob and TryAcquireBackground. On success the caller
// owns a worker slot and must call ReleaseBackground.
func (c *Controller) TryStart() bool {
	if !c.TryAcquireBackground() {
		return false
	}
	if !c.AllowJob() {
		c.ReleaseBackground()
		return false
	}
	return true
}
