// Package crc32 computes the CRC-32 checksum of byte buffers using the IEEE 802.3
// polynomial in its reflected form (0xEDB88320), the variant used by ethernet,
// gzip, zip and png.
//
// Two interchangeable engines are provided:
//
//   - Checksum folds one byte per step through a single 256-entry table.
//   - ChecksumBulk folds one little-endian 32-bit word per step through four
//     levels of an 8x256 table, unrolled eight words at a time.
//
// Both return identical results for identical inputs.
//
// # Seeds and chaining
//
// The accumulator passed in and returned is always the plain (uninverted)
// checksum. The complement is applied on entry and removed on exit of every
// call, and the two cancel across call boundaries, so a buffer may be
// checksummed in pieces:
//
//	crc := crc32.Checksum(0, part1)
//	crc = crc32.Checksum(crc, part2) // == crc32.Checksum(0, append(part1, part2...))
//
// Feeding an already complemented value as the seed silently produces a
// checksum that matches no other CRC-32 implementation. Callers that want to
// manage the complement themselves use Init, UpdateRaw and Finish.
//
// CRC-32 detects accidental corruption only. It offers no collision
// resistance and must not be used for tamper detection.
package crc32
