// Package mmap maps input files read-only into memory.
//
// Local value sources are scanned once from front to back, so mappings are
// advised as sequential by default. Unix uses mmap(2) and madvise(2);
// Windows uses CreateFileMapping/MapViewOfFile and ignores access hints.
//
// A Mapping is safe for concurrent reads. Close is idempotent, but callers
// must not touch Bytes() after it returns.
package mmap
