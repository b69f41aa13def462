package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxBackgroundWorkers caps concurrent background jobs (column writers).
	// Zero means 1.
	MaxBackgroundWorkers int64

	// IOLimitBytesPerSec caps the write throughput of background jobs.
	// Zero means unlimited.
	IOLimitBytesPerSec int64
}

// Controller hands out background worker slots and IO tokens.
// A nil *Controller imposes no limits.
type Controller struct {
	slots     *semaphore.Weighted
	ioLimiter *rate.Limiter // nil when unlimited
}

// NewController returns a Controller enforcing cfg.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		slots: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}
	if cfg.IOLimitBytesPerSec > 0 {
		// One second worth of burst.
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// AcquireBackground blocks until a worker slot is free or ctx is done.
func (c *Controller) AcquireBackground(ctx context.Context) error {
	if c == nil {
		return ctx.Err()
	}
	return c.slots.Acquire(ctx, 1)
}

// ReleaseBackground returns a worker slot.
func (c *Controller) ReleaseBackground() {
	if c == nil {
		return
	}
	c.slots.Release(1)
}

// RunBackground runs fn while holding a worker slot.
func (c *Controller) RunBackground(ctx context.Context, fn func(context.Context) error) error {
	if err := c.AcquireBackground(ctx); err != nil {
		return err
	}
	defer c.ReleaseBackground()
	return fn(ctx)
}

// AcquireIO waits for tokens covering n bytes. Requests larger than the
// burst are taken in burst-sized steps.
func (c *Controller) AcquireIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	burst := c.ioLimiter.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := c.ioLimiter.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
