package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/pflag"

	"github.com/hupe1980/keycluster/blobstore"
	minioblob "github.com/hupe1980/keycluster/blobstore/minio"
	s3blob "github.com/hupe1980/keycluster/blobstore/s3"
)

// storeFlags selects where cluster inputs are read from.
type storeFlags struct {
	s3Bucket   string
	s3Prefix   string
	s3Region   string
	s3Prefetch bool

	minioEndpoint  string
	minioBucket    string
	minioPrefix    string
	minioAccessKey string
	minioSecretKey string
	minioSecure    bool
}

func (s *storeFlags) register(f *pflag.FlagSet) {
	f.StringVar(&s.s3Bucket, "s3-bucket", "", "Read the input from this S3 bucket")
	f.StringVar(&s.s3Prefix, "s3-prefix", "", "Key prefix inside the S3 bucket")
	f.StringVar(&s.s3Region, "s3-region", "", "AWS region (default from the environment)")
	f.BoolVar(&s.s3Prefetch, "s3-prefetch", true, "Download S3 inputs in parallel parts before parsing")

	f.StringVar(&s.minioEndpoint, "minio-endpoint", "", "Read the input from this MinIO endpoint (host:port)")
	f.StringVar(&s.minioBucket, "minio-bucket", "", "MinIO bucket")
	f.StringVar(&s.minioPrefix, "minio-prefix", "", "Key prefix inside the MinIO bucket")
	f.StringVar(&s.minioAccessKey, "minio-access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key (env MINIO_ACCESS_KEY)")
	f.StringVar(&s.minioSecretKey, "minio-secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key (env MINIO_SECRET_KEY)")
	f.BoolVar(&s.minioSecure, "minio-secure", true, "Use TLS for MinIO")
}

// open returns the store holding input and the blob name inside it.
func (s *storeFlags) open(ctx context.Context, input string) (blobstore.Store, string, error) {
	switch {
	case s.s3Bucket != "" && s.minioEndpoint != "":
		return nil, "", fmt.Errorf("--s3-bucket and --minio-endpoint are mutually exclusive")

	case s.s3Bucket != "":
		var optFns []func(*config.LoadOptions) error
		if s.s3Region != "" {
			optFns = append(optFns, config.WithRegion(s.s3Region))
		}
		cfg, err := config.LoadDefaultConfig(ctx, optFns...)
		if err != nil {
			return nil, "", fmt.Errorf("load AWS config: %w", err)
		}
		return s3blob.NewStore(awss3.NewFromConfig(cfg), s.s3Bucket, s.s3Prefix, s3blob.WithPrefetch(s.s3Prefetch)), input, nil

	case s.minioEndpoint != "":
		if s.minioBucket == "" {
			return nil, "", fmt.Errorf("--minio-bucket is required with --minio-endpoint")
		}
		client, err := minio.New(s.minioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(s.minioAccessKey, s.minioSecretKey, ""),
			Secure: s.minioSecure,
		})
		if err != nil {
			return nil, "", fmt.Errorf("minio client: %w", err)
		}
		return minioblob.NewStore(client, s.minioBucket, s.minioPrefix), input, nil

	default:
		return blobstore.NewLocalStore(filepath.Dir(input)), filepath.Base(input), nil
	}
}
