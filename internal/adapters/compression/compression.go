package compression

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/iamNilotpal/crcsum/internal/core/domain"
	"github.com/iamNilotpal/crcsum/internal/core/ports"
	validation "github.com/iamNilotpal/crcsum/pkg/errors"
)

const (
	None   domain.Codec = "none"
	Auto   domain.Codec = "auto"
	Zstd   domain.Codec = "zstd"
	Gzip   domain.Codec = "gzip"
	Snappy domain.Codec = "snappy"
	LZ4    domain.Codec = "lz4"
)

// MaxDecoderConcurrency caps DecoderConcurrency.
const MaxDecoderConcurrency = 16

// HeaderSize is the number of leading bytes Detect needs to recognise every codec.
const HeaderSize = 10

var (
	zstdMagic   = []byte{0x28, 0xb5, 0x2f, 0xfd}
	gzipMagic   = []byte{0x1f, 0x8b}
	lz4Magic    = []byte{0x04, 0x22, 0x4d, 0x18}
	snappyMagic = []byte("\xff\x06\x00\x00sNaPpY")
)

// Returns CompressionOptions that checksum targets exactly as stored.
func DefaultOptions() *domain.CompressionOptions {
	return &domain.CompressionOptions{
		Codec:              None,
		DecoderConcurrency: 1,
	}
}

// Checks if the compression options are valid.
func Validate(input *domain.CompressionOptions) error {
	switch input.Codec {
	case None, Auto, Zstd, Gzip, Snappy, LZ4:
	default:
		return validation.NewValidationError("codec", input.Codec, fmt.Errorf("unsupported codec: %q", input.Codec))
	}

	if input.DecoderConcurrency > MaxDecoderConcurrency {
		return validation.NewValidationError(
			"decoder_concurrency",
			input.DecoderConcurrency,
			fmt.Errorf("decoder concurrency must be between 0 and %d, got %d", MaxDecoderConcurrency, input.DecoderConcurrency),
		)
	}

	return nil
}

// New returns the decoder for codec. None yields a pass-through decoder.
// Auto has no decoder of its own; resolve it with Detect first.
func New(codec domain.Codec, opts *domain.CompressionOptions) (ports.DecoderPort, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	switch codec {
	case None:
		return passthrough{}, nil
	case Zstd:
		return NewZstdDecoder(opts.DecoderConcurrency), nil
	case Gzip:
		return gzipDecoder{}, nil
	case Snappy:
		return snappyDecoder{}, nil
	case LZ4:
		return lz4Decoder{}, nil
	default:
		return nil, validation.NewValidationError("codec", codec, fmt.Errorf("no decoder for codec %q", codec))
	}
}

// Detect guesses the codec of a target from its name, then from header, its
// first HeaderSize bytes (fewer if the target is shorter). Returns None if
// neither matches.
func Detect(name string, header []byte) domain.Codec {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst", ".zstd":
		return Zstd
	case ".gz", ".gzip":
		return Gzip
	case ".sz", ".snappy":
		return Snappy
	case ".lz4":
		return LZ4
	}

	switch {
	case bytes.HasPrefix(header, zstdMagic):
		return Zstd
	case bytes.HasPrefix(header, gzipMagic):
		return Gzip
	case bytes.HasPrefix(header, lz4Magic):
		return LZ4
	case bytes.HasPrefix(header, snappyMagic):
		return Snappy
	default:
		return None
	}
}
