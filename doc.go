// Package keycluster finds approximate duplicates in a column of text values.
//
// Values such as "New York", "new york" and "NEW YORK." usually denote the same
// entity. keycluster groups such variants into clusters for review, using one
// of two methods:
//
//   - Binning computes a canonical key per value (fingerprint or n-gram
//     fingerprint) and groups values with identical keys.
//   - kNN connects values whose distance (ppm, levenshtein, zstd, deflate,
//     s2, lz4) is within a radius, comparing only values that share an
//     n-gram, and reports the connected components.
//
// # Quick Start
//
//	c := keycluster.New(nil)
//
//	cfg := keycluster.KNN("ppm").Column("city").Radius(1).Config()
//	res, err := c.Cluster(ctx, cfg, collector.NewTable(columns, rows))
//
// Configurations can also be decoded from JSON or YAML:
//
//	cfg, err := keycluster.ParseConfig([]byte(`{"type":"binning","function":"fingerprint","column":"city"}`), nil)
//
// # Results
//
// A Result is a list of clusters ordered by total row count, largest first.
// Each cluster lists its distinct values ordered by count. The JSON form is
//
//	[[{"v":"New York","c":3},{"v":"new york","c":1}]]
//
// Output is deterministic: the same configuration and ordered input always
// produce the same bytes, independent of the worker count.
//
// # Errors
//
// Invalid configurations fail in Prepare with a *ConfigError matching
// ErrConfiguration. A missing column fails with an *InputError matching
// ErrInput. Context cancellation and resource.ErrBudgetExceeded are returned
// unchanged.
//
// # Resources
//
// Runs share a worker pool size (WithWorkers), an optional per-run comparison
// budget (WithBudget), a comparison rate (WithComparisonRate), a limit on
// concurrent runs (WithMaxConcurrentRuns) and an input IO limit (WithIOLimit).
package keycluster
