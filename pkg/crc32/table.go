package crc32

import "sync"

// Size of a CRC-32 checksum in bytes.
const Size = 4

// IEEE is the reflected IEEE 802.3 generator polynomial.
const IEEE uint32 = 0xedb88320

// Table maps a byte-position remainder to its contribution to the checksum.
type Table [256]uint32

// Tables holds the single-byte table at level 0 followed by seven derived
// levels, each one byte further along the polynomial division.
type Tables [8]Table

var (
	ieeeOnce   sync.Once
	ieeeShared *Tables
)

// MakeTable builds the single-byte lookup table for IEEE.
func MakeTable() *Table {
	t := new(Table)
	for n := 0; n < 256; n++ {
		c := uint32(n)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = (c >> 1) ^ IEEE
			} else {
				c >>= 1
			}
		}
		t[n] = c
	}
	return t
}

// MakeTables builds the 8x256 tables used by the word-at-a-time engine.
// Level L+1 is derived from level L by feeding one more zero byte through
// the level 0 table.
func MakeTables() *Tables {
	ts := new(Tables)
	ts[0] = *MakeTable()
	for n := 0; n < 256; n++ {
		c := ts[0][n]
		for l := 1; l < len(ts); l++ {
			c = ts[0][c&0xff] ^ (c >> 8)
			ts[l][n] = c
		}
	}
	return ts
}

// IEEETables returns a copy of the tables the engines use. Modifying the
// copy has no effect on Checksum or ChecksumBulk.
func IEEETables() Tables {
	return *ieeeTables()
}

// ieeeTables returns the process-wide tables, building them on first use.
// They are never written after construction.
func ieeeTables() *Tables {
	ieeeOnce.Do(func() {
		ieeeShared = MakeTables()
	})
	return ieeeShared
}
