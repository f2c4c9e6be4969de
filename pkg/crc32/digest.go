package crc32

import "hash"

// UpdateFunc is the signature shared by Checksum and ChecksumBulk.
type UpdateFunc func(crc uint32, p []byte) uint32

// Digest is a hash.Hash32 over one of the engines. It keeps only the running
// checksum; every Write is folded in immediately.
type Digest struct {
	seed   uint32
	crc    uint32
	update UpdateFunc
}

var _ hash.Hash32 = (*Digest)(nil)

// New returns a Digest using the byte-wise engine.
func New() *Digest { return NewSeeded(0, Checksum) }

// NewBulk returns a Digest using the word-at-a-time engine.
func NewBulk() *Digest { return NewSeeded(0, ChecksumBulk) }

// NewSeeded returns a Digest that resumes from seed, a checksum previously
// returned by either engine. Reset returns to seed. A nil update selects
// Checksum.
func NewSeeded(seed uint32, update UpdateFunc) *Digest {
	if update == nil {
		update = Checksum
	}
	return &Digest{seed: seed, crc: seed, update: update}
}

func (d *Digest) Write(p []byte) (int, error) {
	d.crc = d.update(d.crc, p)
	return len(p), nil
}

func (d *Digest) Sum32() uint32 { return d.crc }

// Sum appends the checksum to b in big-endian order.
func (d *Digest) Sum(b []byte) []byte {
	s := d.crc
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

func (d *Digest) Reset() { d.crc = d.seed }

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return 1 }
