package compression

import (
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

type passthrough struct{}

func (passthrough) NewReader(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }
func (passthrough) Name() string                                 { return string(None) }

type gzipDecoder struct{}

// NewReader reads every concatenated gzip member, like gunzip does.
func (gzipDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zr, nil
}

func (gzipDecoder) Name() string { return string(Gzip) }

// snappyDecoder reads the snappy framing format, not raw blocks.
type snappyDecoder struct{}

func (snappyDecoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

func (snappyDecoder) Name() string { return string(Snappy) }

// lz4Decoder reads the lz4 frame format.
type lz4Decoder struct{}

func (lz4Decoder) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

func (lz4Decoder) Name() string { return string(LZ4) }
