package keyer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidParams is returned when a keyer is called with parameters
	// outside its accepted arity or domain.
	ErrInvalidParams = errors.New("invalid keyer parameters")

	// ErrUnknownKeyer is returned when a keyer name cannot be resolved.
	ErrUnknownKeyer = errors.New("unknown keyer")
)

// Keyer maps a value to its canonical key.
type Keyer interface {
	// Key returns the key of s. It fails only on invalid params, never on
	// the content of s.
	Key(s string, params ...any) (string, error)
}

// Func is a keyer with its parameters bound.
type Func func(s string) string

// Bind validates params against k once and returns a key function that
// cannot fail.
func Bind(k Keyer, params ...any) (Func, error) {
	if _, err := k.Key("", params...); err != nil {
		return nil, err
	}
	return func(s string) string {
		key, _ := k.Key(s, params...)
		return key
	}, nil
}

// Name identifies a built-in keyer.
type Name string

const (
	NameFingerprint      Name = "fingerprint"
	NameNGramFingerprint Name = "ngram-fingerprint"
)

// ParseName resolves a keyer name case-insensitively.
func ParseName(s string) (Name, error) {
	switch n := Name(strings.ToLower(strings.TrimSpace(s))); n {
	case NameFingerprint, NameNGramFingerprint:
		return n, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKeyer, s)
	}
}

// Provider returns the built-in keyer for the given name.
func Provider(n Name) (Keyer, error) {
	switch n {
	case NameFingerprint:
		return Fingerprint{}, nil
	case NameNGramFingerprint:
		return NGramFingerprint{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKeyer, string(n))
	}
}

// Names lists the built-in keyers.
func Names() []Name {
	return []Name{NameFingerprint, NameNGramFingerprint}
}
