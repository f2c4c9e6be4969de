package domain

import (
	"github.com/iamNilotpal/crcsum/internal/core/ports"
)

// Engine selects which CRC-32 update loop computes checksums.
// Both produce identical values; they differ only in throughput.
type Engine string

// ChecksumOptions defines configuration for checksum calculation.
type ChecksumOptions struct {
	// Engine specifies which update loop to use.
	// Defaults to the bulk (four bytes per step) engine if not specified.
	Engine Engine

	// Custom allows using a custom ChecksumPort implementation.
	// If provided, it takes precedence over Engine. It must still produce
	// CRC-32/IEEE values, otherwise manifests become unverifiable elsewhere.
	Custom ports.ChecksumPort
}
