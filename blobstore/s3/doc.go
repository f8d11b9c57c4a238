// Package s3 reads input blobs from Amazon S3.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "exports/", s3.WithPrefetch(true))
//	tbl, err := collector.Load(ctx, store, "cities.csv.gz")
//
// Without prefetch, every ReadAt is a ranged GetObject. With prefetch, Open
// downloads the whole object in parallel parts and serves reads from memory,
// which suits inputs that are scanned from front to back.
package s3
