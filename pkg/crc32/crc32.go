package crc32

// Checksum returns crc updated with the bytes of p using the byte-wise engine.
// Pass 0 to start a new checksum, or the result of a previous call to
// continue one. An empty p returns crc unchanged.
func Checksum(crc uint32, p []byte) uint32 {
	return ^updateBytes(^crc, &ieeeTables()[0], p)
}

// Init returns the raw state a new checksum starts from.
func Init() uint32 { return ^uint32(0) }

// UpdateRaw folds p into a raw (complemented) state without inverting it on
// entry or exit. Start from Init and convert with Finish once the whole
// stream has been consumed.
func UpdateRaw(state uint32, p []byte) uint32 {
	return updateBytes(state, &ieeeTables()[0], p)
}

// Finish converts a raw state into the checksum value.
func Finish(state uint32) uint32 { return ^state }

func updateBytes(c uint32, t *Table, p []byte) uint32 {
	for _, b := range p {
		c = t[byte(c)^b] ^ (c >> 8)
	}
	return c
}
