// Package collector extracts the values of one column from tabular input.
//
// A Collector returns the column's non-empty cells as model.RawValue, merged
// by exact string in row order. Table is the in-memory implementation; ReadCSV
// and Load build tables from CSV or TSV, optionally compressed with gzip,
// zstd or lz4, read from any blobstore.Store.
package collector
