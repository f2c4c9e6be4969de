package crc32_test

import (
	"fmt"

	"github.com/iamNilotpal/crcsum/pkg/crc32"
)

func ExampleChecksum() {
	crc := crc32.Checksum(0, []byte{0, 1, 2, 3})
	fmt.Printf("%#08x\n", crc)
	// Output: 0x8bb98613
}

func ExampleChecksumBulk() {
	data := []byte("Hello")
	fmt.Println(crc32.ChecksumBulk(0, data) == crc32.Checksum(0, data))
	// Output: true
}

func ExampleChecksum_chaining() {
	crc := crc32.Checksum(0, []byte("Hello, "))
	crc = crc32.Checksum(crc, []byte("world"))
	fmt.Println(crc == crc32.Checksum(0, []byte("Hello, world")))
	// Output: true
}
