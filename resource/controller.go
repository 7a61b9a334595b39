package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits for hashing jobs.
type Config struct {
	// MaxConcurrentJobs bounds the number of blobs hashed at once.
	// If 0, jobs are not limited.
	MaxConcurrentJobs int64

	// IOLimitBytesPerSec bounds the read throughput across all jobs.
	// If 0, unlimited.
	IOLimitBytesPerSec int64

	// BufferLimitBytes bounds the chunk buffer memory held by running jobs.
	// If 0, buffers are only tracked.
	BufferLimitBytes int64
}

// ErrExceedsLimit is returned for a reservation that can never fit.
var ErrExceedsLimit = errors.New("resource: request exceeds limit")

// Controller throttles hashing jobs. A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	jobSem  *semaphore.Weighted // nil if unlimited
	running atomic.Int64

	bufSem  *semaphore.Weighted // nil if unlimited
	bufUsed atomic.Int64

	ioLimiter *rate.Limiter
	ioBytes   atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentJobs > 0 {
		c.jobSem = semaphore.NewWeighted(cfg.MaxConcurrentJobs)
	}

	if cfg.BufferLimitBytes > 0 {
		c.bufSem = semaphore.NewWeighted(cfg.BufferLimitBytes)
	}

	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// Config returns the limits the controller was created with.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireJob reserves a job slot, blocking until one is free or ctx is done.
func (c *Controller) AcquireJob(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.jobSem != nil {
		if err := c.jobSem.Acquire(ctx, 1); err != nil {
			return err
		}
	}
	c.running.Add(1)
	return nil
}

// TryAcquireJob reserves a job slot without blocking.
func (c *Controller) TryAcquireJob() bool {
	if c == nil {
		return true
	}
	if c.jobSem != nil && !c.jobSem.TryAcquire(1) {
		return false
	}
	c.running.Add(1)
	return true
}

// ReleaseJob releases a slot taken by AcquireJob or TryAcquireJob.
func (c *Controller) ReleaseJob() {
	if c == nil {
		return
	}
	if c.jobSem != nil {
		c.jobSem.Release(1)
	}
	c.running.Add(-1)
}

// RunningJobs returns the number of jobs currently holding a slot.
func (c *Controller) RunningJobs() int64 {
	if c == nil {
		return 0
	}
	return c.running.Load()
}

// CheckBuffer reports whether a reservation of n bytes can ever succeed.
func (c *Controller) CheckBuffer(n int64) error {
	if c == nil || c.bufSem == nil || n <= c.cfg.BufferLimitBytes {
		return nil
	}
	return fmt.Errorf("%w: buffer of %d bytes, limit %d", ErrExceedsLimit, n, c.cfg.BufferLimitBytes)
}

// AcquireBuffer reserves n bytes of chunk buffer memory.
// With a limit configured it blocks until the memory is available or ctx is
// done. A request above the limit fails at once with ErrExceedsLimit.
func (c *Controller) AcquireBuffer(ctx context.Context, n int64) error {
	if c == nil || n <= 0 {
		return nil
	}
	if err := c.CheckBuffer(n); err != nil {
		return err
	}
	if c.bufSem != nil {
		if err := c.bufSem.Acquire(ctx, n); err != nil {
			return err
		}
	}
	c.bufUsed.Add(n)
	return nil
}

// ReleaseBuffer releases memory reserved by AcquireBuffer.
func (c *Controller) ReleaseBuffer(n int64) {
	if c == nil || n <= 0 {
		return
	}
	if c.bufSem != nil {
		c.bufSem.Release(n)
	}
	c.bufUsed.Add(-n)
}

// BufferUsage returns the reserved buffer memory in bytes.
func (c *Controller) BufferUsage() int64 {
	if c == nil {
		return 0
	}
	return c.bufUsed.Load()
}

// AcquireIO waits until the IO limit allows n more bytes.
// Requests larger than one second of budget are paced in burst-sized steps.
func (c *Controller) AcquireIO(ctx context.Context, n int64) error {
	if c == nil || n <= 0 {
		return nil
	}
	if c.ioLimiter != nil {
		burst := int64(c.ioLimiter.Burst())
		for rem := n; rem > 0; rem -= burst {
			if err := c.ioLimiter.WaitN(ctx, int(min(rem, burst))); err != nil {
				return err
			}
		}
	}
	c.ioBytes.Add(n)
	return nil
}

// IOBytes returns the total number of bytes admitted by AcquireIO.
func (c *Controller) IOBytes() int64 {
	if c == nil {
		return 0
	}
	return c.ioBytes.Load()
}

// ChunkHook adapts the controller to blobstore.WithChunkHook: every range
// read is charged against the IO budget before it is issued.
func (c *Controller) ChunkHook() func(ctx context.Context, n int64) error {
	return c.AcquireIO
}
