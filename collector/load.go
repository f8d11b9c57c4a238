package collector

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/keycluster/blobstore"
	"github.com/hupe1980/keycluster/resource"
)

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	ctrl *resource.Controller
	csv  []CSVOption
}

// WithController throttles blob reads by the controller's IO limit.
func WithController(c *resource.Controller) LoadOption {
	return func(o *loadOptions) {
		o.ctrl = c
	}
}

// WithCSVOptions passes options to ReadCSV.
func WithCSVOptions(opts ...CSVOption) LoadOption {
	return func(o *loadOptions) {
		o.csv = append(o.csv, opts...)
	}
}

// Load opens the named blob, decompresses it by extension (.gz, .zst, .lz4)
// and parses it as CSV, or TSV for names ending in .tsv.
func Load(ctx context.Context, store blobstore.Store, name string, optFns ...LoadOption) (*Table, error) {
	opts := loadOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("collector: open %s: %w", name, err)
	}
	defer blob.Close()

	var r io.Reader = blobstore.NewReader(blob)
	if opts.ctrl != nil {
		r = resource.NewRateLimitedReader(ctx, r, opts.ctrl)
	}

	rc, base, err := Decompress(name, r)
	if err != nil {
		return nil, fmt.Errorf("collector: decompress %s: %w", name, err)
	}
	defer rc.Close()

	csvOpts := opts.csv
	if strings.EqualFold(path.Ext(base), ".tsv") {
		csvOpts = append([]CSVOption{WithComma('\t')}, csvOpts...)
	}

	return ReadCSV(rc, csvOpts...)
}

// Decompress wraps r in a decoder chosen by the extension of name and returns
// the name with that extension removed. Unknown extensions pass r through.
func Decompress(name string, r io.Reader) (io.ReadCloser, string, error) {
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)

	switch strings.ToLower(ext) {
	case ".gz", ".gzip":
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, "", err
		}
		return zr, base, nil
	case ".zst", ".zstd":
		zr, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, "", err
		}
		return zr.IOReadCloser(), base, nil
	case ".lz4":
		return io.NopCloser(lz4.NewReader(r)), base, nil
	default:
		return io.NopCloser(r), name, nil
	}
}
