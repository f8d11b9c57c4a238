package distance

import (
	"bytes"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressor estimates the compressed size of data. Sizes only need to be
// comparable with each other, so bits and bytes are both fine.
type Compressor interface {
	CompressedSize(data []byte) float64
}

// CompressorFunc adapts a plain function to Compressor.
type CompressorFunc func(data []byte) float64

// CompressedSize implements Compressor.
func (f CompressorFunc) CompressedSize(data []byte) float64 { return f(data) }

// NCD returns the normalized compression distance under c:
//
//	((C(ab) + C(ba)) / 2 - min(C(a), C(b))) / max(C(a), C(b))
//
// Averaging both concatenation orders makes it symmetric; identical inputs
// short-circuit to 0 and the result is clamped at 0.
func NCD(c Compressor) Func {
	return func(a, b string) float64 {
		if a == b {
			return 0
		}

		x, y := []byte(a), []byte(b)
		cx := c.CompressedSize(x)
		cy := c.CompressedSize(y)

		xy := make([]byte, 0, len(x)+len(y))
		xy = append(append(xy, x...), y...)
		yx := make([]byte, 0, len(x)+len(y))
		yx = append(append(yx, y...), x...)
		joint := (c.CompressedSize(xy) + c.CompressedSize(yx)) / 2

		hi, lo := max(cx, cy), min(cx, cy)
		if hi == 0 {
			return 0
		}

		return max((joint-lo)/hi, 0)
	}
}

// zstd.Encoder.EncodeAll may be called concurrently.
var zstdEncoder = sync.OnceValue(func() *zstd.Encoder {
	enc, _ := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBestCompression),
		zstd.WithEncoderCRC(false),
		zstd.WithEncoderConcurrency(1),
	)
	return enc
})

type zstdCompressor struct{}

func (zstdCompressor) CompressedSize(data []byte) float64 {
	return float64(len(zstdEncoder().EncodeAll(data, nil)))
}

// Flate writers are expensive to build, so they are pooled.
var deflatePool = sync.Pool{
	New: func() any {
		w, _ := flate.NewWriter(nil, flate.BestCompression)
		return w
	},
}

type deflateCompressor struct{}

func (deflateCompressor) CompressedSize(data []byte) float64 {
	w := deflatePool.Get().(*flate.Writer)
	defer deflatePool.Put(w)

	var buf bytes.Buffer
	w.Reset(&buf)
	if _, err := w.Write(data); err != nil {
		return float64(len(data))
	}
	if err := w.Close(); err != nil {
		return float64(len(data))
	}
	return float64(buf.Len())
}

type s2Compressor struct{}

func (s2Compressor) CompressedSize(data []byte) float64 {
	return float64(len(s2.EncodeBest(nil, data)))
}

type lz4Compressor struct{}

func (lz4Compressor) CompressedSize(data []byte) float64 {
	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, dst, nil)
	if err != nil || n == 0 {
		// Incompressible: a literal-only block costs one token byte more.
		return float64(len(data) + 1)
	}
	return float64(n)
}
