package distance

import (
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/hupe1980/keycluster/internal/ppm"
)

// ErrUnknownDistance is returned when a metric name cannot be resolved.
var ErrUnknownDistance = errors.New("unknown distance function")

// Func is a function type for distance calculation between two strings.
type Func func(a, b string) float64

// Metric represents the distance function used for value comparison.
type Metric int

const (
	MetricPPM Metric = iota
	MetricLevenshtein
	MetricZstd
	MetricDeflate
	MetricS2
	MetricLZ4
)

func (m Metric) String() string {
	switch m {
	case MetricPPM:
		return "ppm"
	case MetricLevenshtein:
		return "levenshtein"
	case MetricZstd:
		return "zstd"
	case MetricDeflate:
		return "deflate"
	case MetricS2:
		return "s2"
	case MetricLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// Metrics lists the built-in metrics.
func Metrics() []Metric {
	return []Metric{MetricPPM, MetricLevenshtein, MetricZstd, MetricDeflate, MetricS2, MetricLZ4}
}

// ParseMetric resolves a metric by name, case-insensitively.
func ParseMetric(name string) (Metric, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Metrics() {
		if m.String() == want {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDistance, name)
}

// Provider returns the distance function for the given metric.
func Provider(m Metric) (Func, error) {
	switch m {
	case MetricPPM:
		return PPM, nil
	case MetricLevenshtein:
		return Levenshtein, nil
	case MetricZstd:
		return NCD(zstdCompressor{}), nil
	case MetricDeflate:
		return NCD(deflateCompressor{}), nil
	case MetricS2:
		return NCD(s2Compressor{}), nil
	case MetricLZ4:
		return NCD(lz4Compressor{}), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownDistance, m)
	}
}

// PPM is the normalized compression distance under an order-2 PPM model.
//
// The scale runs from 0 for identical strings to about 1.1. Unrelated strings
// score around 1, so radius 1 links most pairs that share an n-gram
// ("Michael Jordan" and "Michael Jackson" are about 0.44 apart, "c" and "ĉ"
// about 1.06). Radii between 0.2 and 0.5 select close variants.
func PPM(a, b string) float64 {
	return ppmNCD(a, b)
}

var ppmNCD = NCD(CompressorFunc(func(data []byte) float64 {
	return ppm.CodeLength(data, ppm.DefaultOrder)
}))

// Levenshtein is the number of single-rune insertions, deletions and
// substitutions turning a into b. Malformed UTF-8 bytes count as one rune each.
func Levenshtein(a, b string) float64 {
	if a == b {
		return 0
	}
	return float64(levenshtein.ComputeDistance(a, b))
}
