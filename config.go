package keycluster

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/hupe1980/keycluster/codec"
)

// Mode selects the clustering method.
type Mode string

const (
	// ModeBinning groups values with identical keys.
	ModeBinning Mode = "binning"
	// ModeKNN groups values within a distance radius of each other.
	ModeKNN Mode = "knn"
)

// ErrUnknownMode is returned for a mode other than binning or knn.
var ErrUnknownMode = errors.New("unknown clustering mode")

// ParseMode resolves a mode name case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeBinning, ModeKNN:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Param names.
const (
	// ParamNGramSize is the gram size passed to a binning keyer.
	ParamNGramSize = "ngram-size"
	// ParamRadius is the kNN connection radius. Required for knn.
	ParamRadius = "radius"
	// ParamBlockingNGramSize is the gram size of the kNN blocking index.
	ParamBlockingNGramSize = "blocking-ngram-size"
)

// Config selects a clustering method and its parameters.
//
//	{"type":"knn","function":"PPM","column":"values","params":{"radius":1,"blocking-ngram-size":2}}
type Config struct {
	// Type is the clustering mode.
	Type Mode `json:"type" yaml:"type"`
	// Function names the keyer (binning) or distance (knn).
	Function string `json:"function" yaml:"function"`
	// Column names the source column to cluster.
	Column string `json:"column" yaml:"column"`
	// Params holds method-specific settings.
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// ParseConfig decodes a Config with the given codec. A nil codec selects
// codec.Default. Decoding failures are ConfigErrors.
func ParseConfig(data []byte, c codec.Codec) (Config, error) {
	if c == nil {
		c = codec.Default
	}
	var cfg Config
	if err := c.Unmarshal(data, &cfg); err != nil {
		return Config{}, configError("config", nil, fmt.Errorf("decode %s: %w", c.Name(), err))
	}
	return cfg, nil
}

// Marshal encodes the config with the given codec, or codec.Default if nil.
func (c Config) Marshal(cd codec.Codec) ([]byte, error) {
	if cd == nil {
		cd = codec.Default
	}
	return cd.Marshal(c)
}

// toFloat accepts any numeric param value.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case interface{ Float64() (float64, error) }:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// toInt accepts numeric param values without a fractional part.
func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
