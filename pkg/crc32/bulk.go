package crc32

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// nativeWords reports whether aligned word runs may be read by reinterpreting
// the buffer memory directly instead of composing each word from four bytes.
var nativeWords = unsafeWordsEnabled && !cpu.IsBigEndian

// ChecksumBulk returns crc updated with the bytes of p, folding four bytes per
// step. It always agrees with Checksum for the same crc and p.
func ChecksumBulk(crc uint32, p []byte) uint32 {
	ts := ieeeTables()
	c := ^crc

	// Leading bytes up to the first 4-byte boundary.
	if n := alignment(p); n > 0 {
		c = updateBytes(c, &ts[0], p[:n])
		p = p[n:]
	}

	words := len(p) &^ 3
	c = foldWords(c, ts, p[:words])

	// Trailing 0-3 bytes.
	c = updateBytes(c, &ts[0], p[words:])
	return ^c
}

// alignment returns how many leading bytes of p precede a 4-byte aligned
// address, capped at len(p).
func alignment(p []byte) int {
	if len(p) == 0 {
		return 0
	}
	n := int(-uintptr(unsafe.Pointer(unsafe.SliceData(p))) & 3)
	return min(n, len(p))
}

// foldWords folds p, whose length must be a multiple of 4, one
// little-endian word at a time.
func foldWords(c uint32, ts *Tables, p []byte) uint32 {
	if nativeWords && alignment(p) == 0 {
		return foldNative(c, ts, wordView(p))
	}
	return foldLittleEndian(c, ts, p)
}

func foldLittleEndian(c uint32, ts *Tables, p []byte) uint32 {
	for len(p) >= 32 {
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[0:4]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[4:8]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[8:12]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[12:16]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[16:20]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[20:24]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[24:28]))
		c = fold4(c, ts, binary.LittleEndian.Uint32(p[28:32]))
		p = p[32:]
	}
	for len(p) >= 4 {
		c = fold4(c, ts, binary.LittleEndian.Uint32(p))
		p = p[4:]
	}
	return c
}

func foldNative(c uint32, ts *Tables, w []uint32) uint32 {
	for len(w) >= 8 {
		c = fold4(c, ts, w[0])
		c = fold4(c, ts, w[1])
		c = fold4(c, ts, w[2])
		c = fold4(c, ts, w[3])
		c = fold4(c, ts, w[4])
		c = fold4(c, ts, w[5])
		c = fold4(c, ts, w[6])
		c = fold4(c, ts, w[7])
		w = w[8:]
	}
	for _, v := range w {
		c = fold4(c, ts, v)
	}
	return c
}

// fold4 folds one word. The lowest byte of c^w is the earliest in the
// stream, so it has the most bytes still to travel and uses level 3.
func fold4(c uint32, ts *Tables, w uint32) uint32 {
	c ^= w
	return ts[3][c&0xff] ^ ts[2][(c>>8)&0xff] ^ ts[1][(c>>16)&0xff] ^ ts[0][c>>24]
}
