package keyer

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// DefaultNGramSize is the n-gram size used when none is given.
const DefaultNGramSize = 2

// NGramFingerprint keys a value by the sorted set of its character n-grams
// after normalization and whitespace removal.
type NGramFingerprint struct{}

var _ Keyer = NGramFingerprint{}

// Key implements Keyer. It accepts at most one parameter, the n-gram size
// (an integer >= 1, default DefaultNGramSize).
func (NGramFingerprint) Key(s string, params ...any) (string, error) {
	n, err := ngramSize(params)
	if err != nil {
		return "", err
	}
	return strings.Join(NGrams(s, n), ""), nil
}

// NGrams returns the sorted, de-duplicated rune n-grams of the normalized,
// whitespace-free form of s. A non-empty form shorter than n is its own
// single gram. n < 1 selects DefaultNGramSize.
func NGrams(s string, n int) []string {
	if n < 1 {
		n = DefaultNGramSize
	}

	compact := strings.ReplaceAll(normalize(s), " ", "")
	rs := []rune(compact)
	if len(rs) == 0 {
		return nil
	}
	if len(rs) <= n {
		return []string{compact}
	}

	grams := make([]string, 0, len(rs)-n+1)
	for i := 0; i+n <= len(rs); i++ {
		grams = append(grams, string(rs[i:i+n]))
	}
	slices.Sort(grams)

	return slices.Compact(grams)
}

func ngramSize(params []any) (int, error) {
	switch len(params) {
	case 0:
		return DefaultNGramSize, nil
	case 1:
		n, ok := asInt(params[0])
		if !ok || n < 1 {
			return 0, fmt.Errorf("%w: n-gram size must be an integer >= 1, got %v", ErrInvalidParams, params[0])
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%w: ngram-fingerprint takes one parameter, got %d", ErrInvalidParams, len(params))
	}
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int8:
		return int(x), true
	case int16:
		return int(x), true
	case int32:
		return int(x), true
	case int64:
		return int(x), true
	case uint:
		return int(x), true
	case uint8:
		return int(x), true
	case uint16:
		return int(x), true
	case uint32:
		return int(x), true
	case uint64:
		return int(x), true
	case float32:
		return asInt(float64(x))
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) || math.IsNaN(x) {
			return 0, false
		}
		return int(x), true
	default:
		return 0, false
	}
}
