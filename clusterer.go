package keycluster

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/hupe1980/keycluster/binning"
	"github.com/hupe1980/keycluster/blobstore"
	"github.com/hupe1980/keycluster/blocking"
	"github.com/hupe1980/keycluster/collector"
	"github.com/hupe1980/keycluster/distance"
	"github.com/hupe1980/keycluster/keyer"
	"github.com/hupe1980/keycluster/knn"
	"github.com/hupe1980/keycluster/model"
	"github.com/hupe1980/keycluster/resource"
)

// Clusterer runs clustering configurations against value sources. It is
// safe for concurrent use; resource limits are shared by all its runs.
type Clusterer struct {
	reg  *Registry
	opts options
	ctrl *resource.Controller
}

// New creates a Clusterer resolving names through reg. A nil reg selects
// DefaultRegistry().
func New(reg *Registry, optFns ...Option) *Clusterer {
	if reg == nil {
		reg = DefaultRegistry()
	}
	opts := applyOptions(optFns)
	return &Clusterer{
		reg:  reg,
		opts: opts,
		ctrl: resource.NewController(opts.resources),
	}
}

// Registry returns the name table of the Clusterer.
func (c *Clusterer) Registry() *Registry { return c.reg }

// Cluster validates cfg and runs it against src.
func (c *Clusterer) Cluster(ctx context.Context, cfg Config, src collector.Collector) (model.Result, error) {
	p, err := c.Prepare(cfg)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, src)
}

// Load reads a table from a blob store, honoring the IO limit.
func (c *Clusterer) Load(ctx context.Context, store blobstore.Store, name string, opts ...collector.LoadOption) (*collector.Table, error) {
	opts = append([]collector.LoadOption{collector.WithController(c.ctrl)}, opts...)
	tbl, err := collector.Load(ctx, store, name, opts...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, &InputError{cause: err}
	}
	return tbl, nil
}

// Prepare validates cfg and resolves its functions. Every configuration
// problem is reported here as a ConfigError, before any work is done.
func (c *Clusterer) Prepare(cfg Config) (*Plan, error) {
	mode, err := ParseMode(string(cfg.Type))
	if err != nil {
		return nil, configError("type", cfg.Type, err)
	}

	p := &Plan{c: c, cfg: cfg, mode: mode}
	p.cfg.Type = mode

	switch mode {
	case ModeBinning:
		err = p.prepareBinning()
	case ModeKNN:
		err = p.prepareKNN()
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Plan is a validated configuration bound to a Clusterer.
type Plan struct {
	c    *Clusterer
	cfg  Config
	mode Mode

	key keyer.Func

	dist   distance.Func
	radius float64
	ngram  int
}

func (p *Plan) checkParams(allowed ...string) error {
	for _, name := range slices.Sorted(maps.Keys(p.cfg.Params)) {
		if !slices.Contains(allowed, name) {
			return configError("params."+name, p.cfg.Params[name], ErrUnknownParam)
		}
	}
	return nil
}

func (p *Plan) prepareBinning() error {
	if err := p.checkParams(ParamNGramSize); err != nil {
		return err
	}

	k, err := p.c.reg.Keyer(p.cfg.Function)
	if err != nil {
		return configError("function", p.cfg.Function, err)
	}

	var params []any
	if v, ok := p.cfg.Params[ParamNGramSize]; ok {
		params = append(params, v)
	}

	p.key, err = keyer.Bind(k, params...)
	if err != nil {
		if len(params) > 0 {
			return configError("params."+ParamNGramSize, params[0], err)
		}
		return configError("function", p.cfg.Function, err)
	}
	return nil
}

func (p *Plan) prepareKNN() error {
	if err := p.checkParams(ParamRadius, ParamBlockingNGramSize); err != nil {
		return err
	}

	var err error
	p.dist, err = p.c.reg.Distance(p.cfg.Function)
	if err != nil {
		return configError("function", p.cfg.Function, err)
	}

	v, ok := p.cfg.Params[ParamRadius]
	if !ok {
		return configError("params."+ParamRadius, nil, ErrMissingParam)
	}
	r, ok := toFloat(v)
	if !ok || r < 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return configError("params."+ParamRadius, v, fmt.Errorf("%w: want a finite number >= 0", ErrInvalidParam))
	}
	p.radius = r

	p.ngram = keyer.DefaultNGramSize
	if v, ok := p.cfg.Params[ParamBlockingNGramSize]; ok {
		n, ok := toInt(v)
		if !ok || n < 1 {
			return configError("params."+ParamBlockingNGramSize, v, fmt.Errorf("%w: want an integer >= 1", ErrInvalidParam))
		}
		p.ngram = n
	}
	return nil
}

// Config returns the validated configuration, with the mode normalized.
func (p *Plan) Config() Config { return p.cfg }

// Mode returns the clustering mode.
func (p *Plan) Mode() Mode { return p.mode }

// Run collects the configured column from src and clusters its values.
// A missing column is an InputError.
func (p *Plan) Run(ctx context.Context, src collector.Collector) (model.Result, error) {
	values, err := src.Collect(ctx, p.cfg.Column)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, err
		}
		return nil, &InputError{Column: p.cfg.Column, cause: err}
	}
	return p.RunValues(ctx, values)
}

// RunValues clusters an in-memory list of values. Values sharing a string are
// merged first, and empty strings are dropped.
func (p *Plan) RunValues(ctx context.Context, values []model.RawValue) (res model.Result, err error) {
	logger := p.c.opts.logger.WithConfig(p.cfg)

	if err := p.c.ctrl.AcquireRun(ctx); err != nil {
		return nil, err
	}
	defer p.c.ctrl.ReleaseRun()

	values = model.Aggregate(values)

	start := time.Now()
	defer func() {
		d := time.Since(start)
		logger.LogRun(ctx, len(values), res.Len(), d, err)
		p.c.opts.metricsCollector.RecordRun(p.mode, len(values), res.Len(), d, err)
	}()

	if len(values) < 2 {
		return model.Result{}, nil
	}

	switch p.mode {
	case ModeBinning:
		return binning.New(p.key, binning.WithWorkers(p.c.opts.workers)).Cluster(ctx, values)
	default:
		return p.runKNN(ctx, logger, values)
	}
}

func (p *Plan) runKNN(ctx context.Context, logger *Logger, values []model.RawValue) (model.Result, error) {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = v.Value
	}

	idx := blocking.Build(strs, p.ngram)
	logger.LogBlocking(ctx, len(idx.Blocks()), idx.Largest(), idx.Grams())
	p.c.opts.metricsCollector.RecordBlocking(len(idx.Blocks()), idx.Largest())

	budget := p.c.ctrl.NewBudget()
	defer func() {
		logger.LogBudget(ctx, budget.Used(), budget.Remaining())
		p.c.opts.metricsCollector.RecordComparisons(budget.Used())
	}()

	kc, err := knn.New(p.dist, p.radius,
		knn.WithWorkers(p.c.opts.workers),
		knn.WithChunkRows(p.c.opts.chunkRows),
		knn.WithBudget(budget),
	)
	if err != nil {
		return nil, err
	}
	return kc.Cluster(ctx, values, idx)
}
