package domain

// Codec names the compression format a target is stored in.
type Codec string

// CompressionOptions controls whether targets are checksummed as stored
// or after decompression.
type CompressionOptions struct {
	// Codec selects the decoder applied before checksumming.
	//   - none: checksum the stored bytes
	//   - auto: pick a decoder from the file extension, then from the magic bytes
	//   - zstd, gzip, snappy, lz4: always use that decoder
	//
	// Default: none
	Codec Codec

	// DecoderConcurrency bounds the goroutines a single zstd stream may use.
	// Default is 1, since targets are already scanned concurrently.
	DecoderConcurrency uint8
}
