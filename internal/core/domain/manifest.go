// Package domain defines the core types shared by the checksum services and adapters.
package domain

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
)

// Manifest records the checksums of a set of targets at one point in time,
// so they can later be verified against the same or a copied set.
type Manifest struct {
	// ID uniquely identifies the run that produced the manifest.
	ID string

	// CreatedAt is when the run started.
	CreatedAt time.Time

	// Engine that produced the checksums. Informational only, since every
	// engine yields the same values.
	Engine Engine

	// Codec the targets were decoded with before checksumming.
	Codec Codec

	// BlockSize is the span in bytes covered by each entry in ManifestEntry.Blocks.
	// Zero means block checksums were not recorded.
	BlockSize uint32

	// Entries in the order their targets were given.
	Entries []ManifestEntry
}

// ManifestEntry is the checksum record for a single target.
type ManifestEntry struct {
	// Path, file name or object URI as given on input.
	Path string

	// Size of the checksummed (decoded) content in bytes.
	Size uint64

	// CRC of the whole content.
	CRC uint32

	// Blocks holds the CRC of each consecutive BlockSize span, the last one
	// possibly shorter. Chaining them does not give CRC: each block starts from 0.
	Blocks []uint32
}

// Report is the result of verifying one manifest entry.
type Report struct {
	Path     string
	Size     uint64
	CRC      uint32
	Expected uint32
	OK       bool

	// CorruptBlocks holds the indices of blocks whose checksum differs from
	// the manifest. Nil when the manifest has no block checksums.
	CorruptBlocks *roaring.Bitmap

	// Err is set when the target could not be read or decoded, or did not match.
	Err error
}
