package keycluster

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hupe1980/keycluster/distance"
	"github.com/hupe1980/keycluster/keyer"
)

// Registry is an immutable name table of keyers and distance functions.
// Names are matched case-insensitively. A Registry is safe for concurrent
// use.
type Registry struct {
	keyers    map[string]keyer.Keyer
	distances map[string]distance.Func
}

// NewRegistry copies the given tables into a new Registry.
func NewRegistry(keyers map[string]keyer.Keyer, distances map[string]distance.Func) *Registry {
	r := &Registry{
		keyers:    make(map[string]keyer.Keyer, len(keyers)),
		distances: make(map[string]distance.Func, len(distances)),
	}
	for name, k := range keyers {
		r.keyers[normalizeName(name)] = k
	}
	for name, d := range distances {
		r.distances[normalizeName(name)] = d
	}
	return r
}

// DefaultRegistry returns a Registry holding every built-in keyer and
// distance function.
func DefaultRegistry() *Registry {
	keyers := make(map[string]keyer.Keyer)
	for _, n := range keyer.Names() {
		k, err := keyer.Provider(n)
		if err != nil {
			panic(err)
		}
		keyers[string(n)] = k
	}

	distances := make(map[string]distance.Func)
	for _, m := range distance.Metrics() {
		d, err := distance.Provider(m)
		if err != nil {
			panic(err)
		}
		distances[m.String()] = d
	}

	return NewRegistry(keyers, distances)
}

// With returns a copy of r extended by the given tables. Entries in the
// arguments replace entries of the same name.
func (r *Registry) With(keyers map[string]keyer.Keyer, distances map[string]distance.Func) *Registry {
	k := maps.Clone(r.keyers)
	maps.Copy(k, keyers)
	d := maps.Clone(r.distances)
	maps.Copy(d, distances)
	return NewRegistry(k, d)
}

// Keyer looks up a keyer by name.
func (r *Registry) Keyer(name string) (keyer.Keyer, error) {
	if k, ok := r.keyers[normalizeName(name)]; ok {
		return k, nil
	}
	return nil, fmt.Errorf("%w: %q", keyer.ErrUnknownKeyer, name)
}

// Distance looks up a distance function by name.
func (r *Registry) Distance(name string) (distance.Func, error) {
	if d, ok := r.distances[normalizeName(name)]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("%w: %q", distance.ErrUnknownDistance, name)
}

// KeyerNames returns the sorted keyer names.
func (r *Registry) KeyerNames() []string {
	return slices.Sorted(maps.Keys(r.keyers))
}

// DistanceNames returns the sorted distance names.
func (r *Registry) DistanceNames() []string {
	return slices.Sorted(maps.Keys(r.distances))
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
