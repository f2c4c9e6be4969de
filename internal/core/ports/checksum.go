package ports

// Defines an interface for calculating and verifying CRC-32 checksums.
type ChecksumPort interface {
	// Update returns crc extended with data. Pass 0 to start a new checksum
	// or a previous result to continue one.
	Update(crc uint32, data []byte) uint32

	// Verify reports whether the checksum of data equals expected.
	Verify(data []byte, expected uint32) bool

	// Size returns the checksum width in bytes.
	Size() uint8

	// Name identifies the engine behind the port.
	Name() string
}
