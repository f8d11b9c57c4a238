package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/hupe1980/keycluster/blobstore"
)

// Client is the subset of the S3 API used by Store.
type Client interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Option configures a Store.
type Option func(*Store)

// WithPrefetch makes Open download whole objects up front.
func WithPrefetch(enabled bool) Option {
	return func(s *Store) {
		s.prefetch = enabled
	}
}

// WithPartSize sets the part size of prefetch downloads.
func WithPartSize(n int64) Option {
	return func(s *Store) {
		s.partSize = n
	}
}

// Store implements blobstore.Store for S3.
type Store struct {
	client   Client
	bucket   string
	prefix   string
	prefetch bool
	partSize int64
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "exports/").
func NewStore(client Client, bucket, rootPrefix string, optFns ...Option) *Store {
	s := &Store{
		client:   client,
		bucket:   bucket,
		prefix:   rootPrefix,
		partSize: manager.DefaultDownloadPartSize,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// Open returns a handle to the named object. Reads use ctx.
func (s *Store) Open(ctx context.Context, name string) (blobstore.Blob, error) {
	key := s.key(name)

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}

	b := &s3Blob{
		ctx:    ctx,
		client: s.client,
		bucket: s.bucket,
		key:    key,
		size:   aws.ToInt64(head.ContentLength),
	}

	if s.prefetch {
		data, err := s.download(ctx, key, b.size)
		if err != nil {
			return nil, err
		}
		b.data = data
	}

	return b, nil
}

// download fetches an object in parallel parts.
func (s *Store) download(ctx context.Context, key string, size int64) ([]byte, error) {
	buf := manager.NewWriteAtBuffer(make([]byte, 0, size))
	d := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		d.PartSize = s.partSize
	})

	if _, err := d.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return nil, fmt.Errorf("s3: download %s: %w", key, err)
	}
	return buf.Bytes(), nil
}

// s3Blob implements blobstore.Blob. data is set for prefetched objects.
type s3Blob struct {
	ctx    context.Context
	client Client
	bucket string
	key    string
	size   int64
	data   []byte
}

func (b *s3Blob) Close() error { return nil }

func (b *s3Blob) Size() int64 { return b.size }

// Bytes exposes prefetched contents.
func (b *s3Blob) Bytes() ([]byte, error) {
	if b.data == nil {
		return nil, errors.New("s3: object not prefetched")
	}
	return b.data, nil
}

func (b *s3Blob) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off >= b.size {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if b.data != nil {
		n := copy(p, b.data[off:])
		if n < len(p) {
			return n, io.EOF
		}
		return n, nil
	}

	if err := b.ctx.Err(); err != nil {
		return 0, err
	}

	end := off + int64(len(p)) - 1
	if end >= b.size {
		end = b.size - 1
	}

	resp, err := b.client.GetObject(b.ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", off, end)),
	})
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	n, err := io.ReadFull(resp.Body, p[:end-off+1])
	if err != nil {
		return n, err
	}
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
