//go:build !crc32unsafe

package crc32

const unsafeWordsEnabled = false

// wordView is only reachable when built with the crc32unsafe tag.
func wordView([]byte) []uint32 {
	panic("crc32: word view requires the crc32unsafe build tag")
}
