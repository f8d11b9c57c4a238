// Package blobstore provides read-only access to input files holding the
// values to cluster.
//
// A Store opens named blobs. Every Blob is an io.ReaderAt with a known size,
// so sources can be scanned sequentially with NewReader or read in ranges.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped
//   - MemoryStore: in-process blobs, for tests and embedding
//   - s3.Store: Amazon S3 with ranged reads
//   - minio.Store: MinIO and other S3-compatible services
package blobstore
