// Package checksum computes the 128-bit content checksum embedded in every
// compression frame (see package compress) and used as the collision
// resolution hash for LowCardinality dictionary dedup (see package column).
//
// The wire spec only requires a 128-bit content hash strong enough to make a
// corrupted frame detectable; it does not pin a specific hash family. This
// package fills the 128 bits with two independent 64-bit xxHash64 digests,
// computed over the same bytes with two different seeds, the same
// "two independent hashes reduce collisions in practice" idea the spec
// prescribes for LowCardinality dictionary dedup, applied here to checksums
// too so the whole module leans on a single hash primitive.
package checksum

import "github.com/cespare/xxhash/v2"

const (
	seedLow  uint64 = 0
	seedHigh uint64 = 0x9E3779B97F4A7C15 // golden-ratio constant, arbitrary second seed
)

// Size is the length in bytes of a checksum produced by Sum.
const Size = 16

// Sum computes the 128-bit checksum of data and returns it as 16 bytes,
// low 64 bits first, high 64 bits second, both little-endian.
func Sum(data []byte) [Size]byte {
	var out [Size]byte

	low := xxhash.Sum64(data)
	high := seededSum64(data, seedHigh)

	putUint64LE(out[0:8], low)
	putUint64LE(out[8:16], high)

	return out
}

// Verify reports whether want matches the checksum computed over data.
func Verify(want [Size]byte, data []byte) bool {
	return Sum(data) == want
}

// seededSum64 computes an xxHash64 digest of data "salted" with seed by
// hashing the seed's 8 bytes as a prefix. xxhash.Sum64 itself takes no seed
// parameter in this library version, so the salt is folded in by hashing it
// together with the seed constant through Digest.Write, which matches how
// xxhash's own streaming API composes multiple inputs into one digest.
func seededSum64(data []byte, seed uint64) uint64 {
	d := xxhash.New()
	var seedBytes [8]byte
	putUint64LE(seedBytes[:], seed)
	_, _ = d.Write(seedBytes[:])
	_, _ = d.Write(data)

	return d.Sum64()
}

func putUint64LE(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}
