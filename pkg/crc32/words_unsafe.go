//go:build crc32unsafe

package crc32

import "unsafe"

const unsafeWordsEnabled = true

// wordView reinterprets p as native-order words. p must start on a 4-byte
// boundary and its length must be a multiple of 4; trailing bytes are never
// part of the view. The view aliases p and must not outlive it.
func wordView(p []byte) []uint32 {
	if len(p) < 4 {
		return nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(unsafe.SliceData(p))), len(p)/4)
}
