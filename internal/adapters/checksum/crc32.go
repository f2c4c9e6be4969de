package checksum

import (
	"github.com/iamNilotpal/crcsum/pkg/crc32"
)

type crc32IEEE struct {
	name   string
	update crc32.UpdateFunc
}

// NewBytewise returns a port over the byte-at-a-time engine.
func NewBytewise() *crc32IEEE {
	return &crc32IEEE{name: string(Bytewise), update: crc32.Checksum}
}

// NewBulk returns a port over the word-at-a-time engine.
func NewBulk() *crc32IEEE {
	return &crc32IEEE{name: string(Bulk), update: crc32.ChecksumBulk}
}

func (c *crc32IEEE) Update(crc uint32, data []byte) uint32 {
	return c.update(crc, data)
}

func (c *crc32IEEE) Verify(data []byte, expected uint32) bool {
	return c.update(0, data) == expected
}

func (c *crc32IEEE) Size() uint8 {
	return crc32.Size
}

func (c *crc32IEEE) Name() string {
	return c.name
}
