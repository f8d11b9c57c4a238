package resource

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudget_Limit(t *testing.T) {
	c := NewController(Config{MaxComparisons: 100})
	b := c.NewBudget()

	require.NoError(t, b.Acquire(context.Background(), 60))
	assert.Equal(t, int64(60), b.Used())
	assert.Equal(t, int64(40), b.Remaining())

	err := b.Acquire(context.Background(), 50)
	assert.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, int64(60), b.Used())

	require.NoError(t, b.Acquire(context.Background(), 40))
	assert.Equal(t, int64(0), b.Remaining())

	// A second run gets a fresh budget.
	assert.Equal(t, int64(0), c.NewBudget().Used())
}

func TestBudget_Unlimited(t *testing.T) {
	b := NewController(Config{}).NewBudget()
	require.NoError(t, b.Acquire(context.Background(), 1_000_000))
	assert.Equal(t, int64(1_000_000), b.Used())
	assert.Equal(t, int64(-1), b.Remaining())

	var nilBudget *Budget
	assert.NoError(t, nilBudget.Acquire(context.Background(), 10))
	assert.Equal(t, int64(0), nilBudget.Used())
}

func TestBudget_Concurrent(t *testing.T) {
	b := NewController(Config{MaxComparisons: 1000}).NewBudget()

	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := b.Acquire(context.Background(), 100); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), b.Used())
	assert.Equal(t, 10, failures)
}

func TestBudget_RateLimit(t *testing.T) {
	c := NewController(Config{ComparisonsPerSec: 10})
	b := c.NewBudget()

	// The bucket starts full, so the first burst passes immediately.
	require.NoError(t, b.Acquire(context.Background(), 10))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := b.Acquire(ctx, 25)
	assert.Error(t, err)
}

func TestController_Runs(t *testing.T) {
	c := NewController(Config{MaxConcurrentRuns: 2})

	require.NoError(t, c.AcquireRun(context.Background()))
	require.NoError(t, c.AcquireRun(context.Background()))
	assert.False(t, c.TryAcquireRun())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, c.AcquireRun(ctx), context.DeadlineExceeded)

	c.ReleaseRun()
	assert.True(t, c.TryAcquireRun())
}

func TestController_Nil(t *testing.T) {
	var c *Controller
	assert.NoError(t, c.AcquireRun(context.Background()))
	assert.True(t, c.TryAcquireRun())
	c.ReleaseRun()
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<20))
	assert.Equal(t, int64(-1), c.NewBudget().Remaining())
}

func TestRateLimitedReader(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})
	r := NewRateLimitedReader(context.Background(), strings.NewReader("hello"), c)

	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}
