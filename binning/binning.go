package binning

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/keycluster/keyer"
	"github.com/hupe1980/keycluster/model"
)

// minChunk is the smallest number of values keyed by one task.
const minChunk = 256

// Option configures a Clusterer.
type Option func(*options)

type options struct {
	workers int
}

// WithWorkers sets the number of goroutines computing keys.
// Values < 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// Clusterer groups values by key.
type Clusterer struct {
	key  keyer.Func
	opts options
}

// New creates a binning clusterer over the given key function.
func New(fn keyer.Func, optFns ...Option) *Clusterer {
	opts := options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.workers < 1 {
		opts.workers = runtime.GOMAXPROCS(0)
	}
	return &Clusterer{key: fn, opts: opts}
}

// Cluster keys every value and returns the groups of two or more distinct
// strings. Repeated strings in values are merged first, so a string seen
// many times on its own never forms a cluster.
func (c *Clusterer) Cluster(ctx context.Context, values []model.RawValue) (model.Result, error) {
	values = model.Aggregate(values)

	keys, err := c.Keys(ctx, values)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]model.RawValue)
	var order []string
	for i, k := range keys {
		if k == "" {
			continue
		}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], values[i])
	}

	var res model.Result
	for _, k := range order {
		if members := groups[k]; len(members) >= 2 {
			res = append(res, model.NewCluster(members))
		}
	}
	res.Sort()

	return res, nil
}

// Keys returns the key of every value, computed in parallel chunks.
func (c *Clusterer) Keys(ctx context.Context, values []model.RawValue) ([]string, error) {
	keys := make([]string, len(values))

	chunk := max(minChunk, (len(values)+c.opts.workers-1)/c.opts.workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.workers)

	for start := 0; start < len(values); start += chunk {
		end := min(start+chunk, len(values))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				keys[i] = c.key(values[i].Value)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return keys, nil
}
