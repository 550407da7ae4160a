// Package compress implements the wire compression frame format: a checksum
// header followed by a single compression-method byte and the compressed
// payload. See frame.go for the exact byte layout.
package compress

import (
	"fmt"

	"github.com/kasuga-db/chconn/errs"
)

// Method identifies a compression codec by its wire byte, matching the
// server's CompressionMethodByte values exactly; these are not reused for
// anything else on the wire.
type Method byte

const (
	// MethodNone marks an uncompressed frame. The frame still carries a
	// checksum and both size fields (compressedSize also counts the 9
	// method/size header bytes, so it is uncompressedSize+9) so the reader
	// doesn't need a special case to skip the header.
	MethodNone Method = 0x02
	// MethodLZ4 marks an LZ4-compressed frame.
	MethodLZ4 Method = 0x82
	// MethodZSTD marks a ZSTD-compressed frame.
	MethodZSTD Method = 0x90
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "None"
	case MethodLZ4:
		return "LZ4"
	case MethodZSTD:
		return "ZSTD"
	default:
		return fmt.Sprintf("Method(0x%02x)", byte(m))
	}
}

// Compressor compresses a block of bytes.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor decompresses a block of bytes previously produced by the
// matching Compressor.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec is a compression method capable of both directions.
type Codec interface {
	Compressor
	Decompressor
}

var (
	_ Codec = (*NoOpCompressor)(nil)
	_ Codec = (*LZ4Compressor)(nil)
	_ Codec = (*ZstdCompressor)(nil)
)

// ForMethod returns the Codec implementing the given wire method.
func ForMethod(m Method) (Codec, error) {
	switch m {
	case MethodNone:
		return NewNoOpCompressor(), nil
	case MethodLZ4:
		return NewLZ4Compressor(), nil
	case MethodZSTD:
		return NewZstdCompressor(), nil
	default:
		return nil, errs.Protocol("unknown codec: 0x%02x", byte(m))
	}
}
