// Package resource bounds the work a clustering process may do: concurrent
// runs, comparison throughput, per-run comparison budgets and input IO.
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrBudgetExceeded is returned when a run would perform more distance
// comparisons than its budget allows.
var ErrBudgetExceeded = errors.New("comparison budget exceeded")

// Config holds resource limits.
type Config struct {
	// MaxComparisons is the per-run limit on distance computations.
	// If 0, runs are unbounded.
	MaxComparisons int64

	// ComparisonsPerSec throttles distance computations across all runs
	// sharing the controller. If 0, unlimited.
	ComparisonsPerSec int64

	// MaxConcurrentRuns is the maximum number of clustering runs executing at
	// once. If 0, unlimited.
	MaxConcurrentRuns int64

	// IOLimitBytesPerSec is the maximum throughput for reading input blobs.
	// If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages resources shared by every run of a clusterer.
// A nil *Controller imposes no limits.
type Controller struct {
	cfg Config

	runSem      *semaphore.Weighted // nil if unlimited
	compLimiter *rate.Limiter       // nil if unlimited
	ioLimiter   *rate.Limiter       // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	c := &Controller{cfg: cfg}

	if cfg.MaxConcurrentRuns > 0 {
		c.runSem = semaphore.NewWeighted(cfg.MaxConcurrentRuns)
	}

	if cfg.ComparisonsPerSec > 0 {
		c.compLimiter = rate.NewLimiter(rate.Limit(cfg.ComparisonsPerSec), int(cfg.ComparisonsPerSec))
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

// AcquireRun reserves a run slot, blocking until one is free or ctx is
// canceled.
func (c *Controller) AcquireRun(ctx context.Context) error {
	if c == nil || c.runSem == nil {
		return nil
	}
	return c.runSem.Acquire(ctx, 1)
}

// TryAcquireRun reserves a run slot without blocking.
func (c *Controller) TryAcquireRun() bool {
	if c == nil || c.runSem == nil {
		return true
	}
	return c.runSem.TryAcquire(1)
}

// ReleaseRun releases a run slot.
func (c *Controller) ReleaseRun() {
	if c == nil || c.runSem == nil {
		return
	}
	c.runSem.Release(1)
}

// AcquireIO waits until the IO limit allows the specified number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil {
		return nil
	}
	return waitN(ctx, c.ioLimiter, bytes)
}

// NewBudget starts a comparison budget for one run.
func (c *Controller) NewBudget() *Budget {
	return &Budget{ctrl: c, max: c.Config().MaxComparisons}
}

// Budget counts the comparisons of a single run. It is safe for concurrent
// use by the run's workers.
type Budget struct {
	ctrl *Controller
	max  int64
	used atomic.Int64
}

// Acquire reserves n comparisons. It fails with ErrBudgetExceeded when the
// reservation would cross the run's limit, and otherwise waits for the
// shared throughput limiter.
func (b *Budget) Acquire(ctx context.Context, n int) error {
	if b == nil || n <= 0 {
		return nil
	}

	if b.max > 0 {
		if used := b.used.Add(int64(n)); used > b.max {
			b.used.Add(-int64(n))
			return fmt.Errorf("%w: %d of %d used, %d requested", ErrBudgetExceeded, used-int64(n), b.max, n)
		}
	} else {
		b.used.Add(int64(n))
	}

	if b.ctrl == nil || b.ctrl.compLimiter == nil {
		return nil
	}
	return waitN(ctx, b.ctrl.compLimiter, n)
}

// Used returns the comparisons reserved so far.
func (b *Budget) Used() int64 {
	if b == nil {
		return 0
	}
	return b.used.Load()
}

// Remaining returns the comparisons left, or -1 if the budget is unbounded.
func (b *Budget) Remaining() int64 {
	if b == nil || b.max <= 0 {
		return -1
	}
	return max(b.max-b.used.Load(), 0)
}

// waitN waits for n tokens in burst-sized steps, since rate.Limiter rejects
// single requests larger than its burst.
func waitN(ctx context.Context, l *rate.Limiter, n int) error {
	burst := l.Burst()
	for n > 0 {
		step := min(n, burst)
		if err := l.WaitN(ctx, step); err != nil {
			return err
		}
		n -= step
	}
	return nil
}
