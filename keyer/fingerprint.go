package keyer

import (
	"fmt"
	"slices"
	"strings"
)

// Fingerprint keys a value by its sorted set of normalized word tokens, making
// the key independent of case, diacritics, punctuation, token order and
// token repetition.
type Fingerprint struct{}

var _ Keyer = Fingerprint{}

// Key implements Keyer. Fingerprint accepts no parameters.
func (Fingerprint) Key(s string, params ...any) (string, error) {
	if len(params) != 0 {
		return "", fmt.Errorf("%w: fingerprint takes no parameters, got %d", ErrInvalidParams, len(params))
	}

	tokens := strings.Fields(normalize(s))
	slices.Sort(tokens)
	tokens = slices.Compact(tokens)

	return strings.Join(tokens, " "), nil
}
