// Package distance provides pluggable pairwise string distances for radius
// clustering.
//
// Every distance is non-negative and symmetric, and is exactly zero for
// identical strings. The triangle inequality is not required; compression
// based distances generally violate it.
//
// # Built-in Metrics
//
//   - ppm: normalized compression distance over a PPM code-length model
//   - levenshtein: rune edit distance
//   - zstd, deflate, s2, lz4: normalized compression distance with real compressors
//
// Metrics are resolved once, at configuration time:
//
//	m, err := distance.ParseMetric("PPM")
//	fn, err := distance.Provider(m)
//	d := fn("ab", "abc")
package distance
