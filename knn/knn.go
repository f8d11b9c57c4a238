package knn

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/keycluster/blocking"
	"github.com/hupe1980/keycluster/distance"
	"github.com/hupe1980/keycluster/internal/unionfind"
	"github.com/hupe1980/keycluster/model"
	"github.com/hupe1980/keycluster/resource"
)

// DefaultChunkRows is the number of block rows compared by one task.
const DefaultChunkRows = 64

// ErrInvalidRadius is returned for a negative or non-finite radius.
var ErrInvalidRadius = errors.New("invalid radius")

// Option configures a Clusterer.
type Option func(*options)

type options struct {
	workers   int
	chunkRows int
	budget    *resource.Budget
}

// WithWorkers sets the number of goroutines computing distances.
// Values < 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithChunkRows sets how many rows of a block one task compares.
func WithChunkRows(n int) Option {
	return func(o *options) {
		o.chunkRows = n
	}
}

// WithBudget charges every comparison to b. The budget is checked before
// each chunk starts.
func WithBudget(b *resource.Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// Clusterer groups values within a radius of each other.
type Clusterer struct {
	dist   distance.Func
	radius float64
	opts   options
}

// New creates a radius clusterer. Pairs with dist(a, b) <= radius are
// connected.
func New(fn distance.Func, radius float64, optFns ...Option) (*Clusterer, error) {
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRadius, radius)
	}

	opts := options{chunkRows: DefaultChunkRows}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.workers < 1 {
		opts.workers = runtime.GOMAXPROCS(0)
	}
	if opts.chunkRows < 1 {
		opts.chunkRows = DefaultChunkRows
	}

	return &Clusterer{dist: fn, radius: radius, opts: opts}, nil
}

// Radius returns the connection radius.
func (c *Clusterer) Radius() float64 { return c.radius }

type edge struct{ a, b int }

// task compares rows [lo, hi) of one block against their candidates.
type task struct {
	members []int
	lo, hi  int
}

// Cluster compares the candidate pairs of every block of idx and returns the
// connected components of two or more distinct strings. idx must have been
// built over the strings of values in the same order. A nil idx is built with
// the default n-gram size.
//
// Repeated or empty strings in values are merged as by model.Aggregate before
// comparing; idx is then rebuilt over the merged values with its n-gram size.
func (c *Clusterer) Cluster(ctx context.Context, values []model.RawValue, idx *blocking.Index) (model.Result, error) {
	if idx != nil && idx.Len() != len(values) {
		return nil, fmt.Errorf("knn: index covers %d values, got %d", idx.Len(), len(values))
	}

	n := 0
	if idx != nil {
		n = idx.NGramSize()
	}
	if merged := model.Aggregate(values); len(merged) != len(values) {
		values, idx = merged, nil
	}
	if idx == nil {
		strs := make([]string, len(values))
		for i, v := range values {
			strs[i] = v.Value
		}
		idx = blocking.Build(strs, n)
	}

	var tasks []task
	for _, b := range idx.Blocks() {
		if b.Len() < 2 {
			continue
		}
		for lo := 0; lo < b.Len(); lo += c.opts.chunkRows {
			tasks = append(tasks, task{members: b.Members, lo: lo, hi: min(lo+c.opts.chunkRows, b.Len())})
		}
	}

	edges := make([][]edge, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.workers)

	for n, t := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rows := t.members[t.lo:t.hi]
			cands := make([][]int, len(rows))
			pairs := 0
			for k, i := range rows {
				cands[k] = idx.Candidates(i)
				pairs += len(cands[k])
			}

			if err := c.opts.budget.Acquire(gctx, pairs); err != nil {
				return err
			}

			var out []edge
			for k, i := range rows {
				a := values[i].Value
				for _, j := range cands[k] {
					if c.dist(a, values[j].Value) <= c.radius {
						out = append(out, edge{a: i, b: j})
					}
				}
			}
			edges[n] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	uf := unionfind.New(len(values))
	for _, es := range edges {
		for _, e := range es {
			uf.Union(e.a, e.b)
		}
	}

	var res model.Result
	for _, comp := range uf.Components() {
		if len(comp) < 2 {
			continue
		}
		members := make([]model.RawValue, len(comp))
		for k, i := range comp {
			members[k] = values[i]
		}
		res = append(res, model.NewCluster(members))
	}
	res.Sort()

	return res, nil
}
