// Package compression provides decompressing readers so targets can be
// checksummed by content. zstd and gzip come from klauspost/compress, snappy
// from golang/snappy and lz4 from pierrec/lz4.
package compression

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdDecoder implements DecoderPort for zstd frames.
// Each stream gets its own decoder, so it is safe for concurrent use.
type ZstdDecoder struct {
	concurrency int // Goroutines per stream; 0 lets zstd pick.
}

// NewZstdDecoder creates a zstd decoder factory.
// A concurrency of 0 uses zstd's default (GOMAXPROCS, capped at 4).
func NewZstdDecoder(concurrency uint8) *ZstdDecoder {
	return &ZstdDecoder{concurrency: int(concurrency)}
}

// NewReader returns a reader that streams the decompressed content of r.
// Close releases the decoder's goroutines and buffers.
//
// Returns an error if the decoder cannot be created. Corrupt input surfaces
// as an error from Read.
func (z *ZstdDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	opts := []zstd.DOption{}
	if z.concurrency > 0 {
		opts = append(opts, zstd.WithDecoderConcurrency(z.concurrency))
	}

	decoder, err := zstd.NewReader(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %w", err)
	}

	return decoder.IOReadCloser(), nil
}

func (z *ZstdDecoder) Name() string {
	return string(Zstd)
}
