package crc32

import (
	stdcrc "hash/crc32"
	"testing"
)

var benchSizes = []struct {
	name string
	size int
}{
	{"5B", 5},
	{"1KB", 1 << 10},
	{"64KB", 64 << 10},
}

func BenchmarkChecksum(b *testing.B) {
	for _, s := range benchSizes {
		buf := make([]byte, s.size)
		b.Run("bytewise/"+s.name, func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			for i := 0; i < b.N; i++ {
				Checksum(0, buf)
			}
		})
		b.Run("bulk/"+s.name, func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			for i := 0; i < b.N; i++ {
				ChecksumBulk(0, buf)
			}
		})
		b.Run("stdlib/"+s.name, func(b *testing.B) {
			b.SetBytes(int64(len(buf)))
			for i := 0; i < b.N; i++ {
				stdcrc.ChecksumIEEE(buf)
			}
		})
	}
}
