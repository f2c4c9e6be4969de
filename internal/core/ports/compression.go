package ports

import "io"

// DecoderPort wraps a compressed stream in a decompressing reader.
// This allows targets to be checksummed by content regardless of how they are stored.
type DecoderPort interface {
	// NewReader returns a reader yielding the decompressed bytes of r.
	// Closing it releases decoder resources but does not close r.
	NewReader(r io.Reader) (io.ReadCloser, error)

	// Name returns the codec name.
	Name() string
}
