package keycluster

import "maps"

// ConfigBuilder is an immutable fluent builder for Config values.
// Each method returns a new builder with the updated configuration.
//
// Example:
//
//	cfg := keycluster.KNN("ppm").
//	    Column("city").
//	    Radius(1).
//	    BlockingNGramSize(2).
//	    Config()
type ConfigBuilder struct {
	cfg Config
}

// Binning starts a binning configuration with the named keyer.
func Binning(function string) ConfigBuilder {
	return ConfigBuilder{cfg: Config{Type: ModeBinning, Function: function}}
}

// KNN starts a kNN configuration with the named distance function.
func KNN(function string) ConfigBuilder {
	return ConfigBuilder{cfg: Config{Type: ModeKNN, Function: function}}
}

// Column sets the source column.
func (b ConfigBuilder) Column(name string) ConfigBuilder {
	b.cfg.Column = name
	return b
}

// Param sets an arbitrary param.
func (b ConfigBuilder) Param(name string, value any) ConfigBuilder {
	params := maps.Clone(b.cfg.Params)
	if params == nil {
		params = make(map[string]any, 1)
	}
	params[name] = value
	b.cfg.Params = params
	return b
}

// NGramSize sets the gram size of an n-gram fingerprint keyer.
func (b ConfigBuilder) NGramSize(n int) ConfigBuilder {
	return b.Param(ParamNGramSize, n)
}

// Radius sets the kNN connection radius.
func (b ConfigBuilder) Radius(r float64) ConfigBuilder {
	return b.Param(ParamRadius, r)
}

// BlockingNGramSize sets the gram size of the kNN blocking index.
func (b ConfigBuilder) BlockingNGramSize(n int) ConfigBuilder {
	return b.Param(ParamBlockingNGramSize, n)
}

// Config returns the built configuration. The params map is a copy.
func (b ConfigBuilder) Config() Config {
	cfg := b.cfg
	cfg.Params = maps.Clone(b.cfg.Params)
	return cfg
}

// Prepare validates the configuration against c.
func (b ConfigBuilder) Prepare(c *Clusterer) (*Plan, error) {
	return c.Prepare(b.Config())
}
