package wire

import "github.com/kasuga-db/chconn/endian"

// littleEndian is the single byte order this module's wire format uses.
// Exposed as a var (not a call to endian.GetLittleEndianEngine() at every
// call site) so the fixed-width helpers below read like thin wrappers
// rather than hiding an interface call per field.
var littleEndian = endian.GetLittleEndianEngine()

// PutFixed8 writes v into buf[0].
func PutFixed8(buf []byte, v uint8) { buf[0] = v }

// Fixed8 reads a uint8 from buf[0].
func Fixed8(buf []byte) uint8 { return buf[0] }

// PutFixed16 writes v into buf[0:2], little-endian.
func PutFixed16(buf []byte, v uint16) { littleEndian.PutUint16(buf, v) }

// Fixed16 reads a little-endian uint16 from buf[0:2].
func Fixed16(buf []byte) uint16 { return littleEndian.Uint16(buf) }

// PutFixed32 writes v into buf[0:4], little-endian.
func PutFixed32(buf []byte, v uint32) { littleEndian.PutUint32(buf, v) }

// Fixed32 reads a little-endian uint32 from buf[0:4].
func Fixed32(buf []byte) uint32 { return littleEndian.Uint32(buf) }

// PutFixed64 writes v into buf[0:8], little-endian.
func PutFixed64(buf []byte, v uint64) { littleEndian.PutUint64(buf, v) }

// Fixed64 reads a little-endian uint64 from buf[0:8].
func Fixed64(buf []byte) uint64 { return littleEndian.Uint64(buf) }

// PutFixed128 writes a 128-bit value into buf[0:16], little-endian, low
// 64 bits first, matching the layout Int128/UInt128/Decimal128 columns use.
func PutFixed128(buf []byte, lo, hi uint64) {
	littleEndian.PutUint64(buf[0:8], lo)
	littleEndian.PutUint64(buf[8:16], hi)
}

// Fixed128 reads a 128-bit value from buf[0:16], little-endian, low 64 bits
// first.
func Fixed128(buf []byte) (lo, hi uint64) {
	return littleEndian.Uint64(buf[0:8]), littleEndian.Uint64(buf[8:16])
}
