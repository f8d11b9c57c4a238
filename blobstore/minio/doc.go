// Package minio reads input blobs from MinIO and other S3-compatible
// storage (Ceph, Garage, SeaweedFS) through the MinIO client.
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	store := minioblob.NewStore(client, "datasets", "exports/")
//	tbl, err := collector.Load(ctx, store, "cities.csv.zst")
package minio
