package compress

import (
	"encoding/binary"
	"fmt"

	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/internal/checksum"
)

// Frame header layout, all integers little-endian:
//
//	[16]byte  checksum      checksum.Sum of everything from methodByte on
//	[1]byte   method        Method
//	[4]byte   compressedSize   length of the compressed payload, header-inclusive from methodByte
//	[4]byte   uncompressedSize length of the payload once decompressed
//	[...]byte compressed payload
const (
	headerMethodOffset           = checksum.Size
	headerCompressedSizeOffset   = headerMethodOffset + 1
	headerUncompressedSizeOffset = headerCompressedSizeOffset + 4
	HeaderSize                   = headerUncompressedSizeOffset + 4
)

// EncodeFrame compresses data with the codec for method and wraps it in a
// checksummed frame header. The returned slice is the complete frame, ready
// to be written to the wire.
func EncodeFrame(method Method, data []byte) ([]byte, error) {
	codec, err := ForMethod(method)
	if err != nil {
		return nil, err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress: encode frame: %w", err)
	}

	frame := make([]byte, HeaderSize+len(compressed))
	frame[headerMethodOffset] = byte(method)
	binary.LittleEndian.PutUint32(frame[headerCompressedSizeOffset:], uint32(HeaderSize-checksum.Size+len(compressed)))
	binary.LittleEndian.PutUint32(frame[headerUncompressedSizeOffset:], uint32(len(data)))
	copy(frame[HeaderSize:], compressed)

	sum := checksum.Sum(frame[checksum.Size:])
	copy(frame[:checksum.Size], sum[:])

	return frame, nil
}

// DecodeFrame validates the checksum of a frame and returns its decompressed
// payload. frame must contain exactly one frame's worth of bytes (the caller
// is expected to have already read compressedSize+checksum.Size bytes off
// the wire using PeekSizes).
func DecodeFrame(frame []byte) ([]byte, error) {
	method, compressedSize, uncompressedSize, err := PeekSizes(frame)
	if err != nil {
		return nil, err
	}

	total := checksum.Size + compressedSize
	if len(frame) < total {
		return nil, errs.Protocol("compress: short frame: have %d bytes, need %d", len(frame), total)
	}

	var want [checksum.Size]byte
	copy(want[:], frame[:checksum.Size])
	if !checksum.Verify(want, frame[checksum.Size:total]) {
		return nil, errs.Protocol("checksum mismatch")
	}

	codec, err := ForMethod(method)
	if err != nil {
		return nil, err
	}

	payload := frame[HeaderSize:total]
	decompressed, err := codec.Decompress(payload)
	if err != nil {
		return nil, errs.Protocol("compress: decode frame: %v", err)
	}

	if len(decompressed) != uncompressedSize {
		return nil, errs.Protocol("compress: decompressed size mismatch: got %d, frame says %d", len(decompressed), uncompressedSize)
	}

	return decompressed, nil
}

// PeekSizes reads a frame's method and size fields without touching the
// payload or verifying the checksum, letting transport read exactly
// checksum.Size+compressedSize bytes off the wire before handing the buffer
// to DecodeFrame.
func PeekSizes(frame []byte) (method Method, compressedSize int, uncompressedSize int, err error) {
	if len(frame) < HeaderSize {
		return 0, 0, 0, errs.Protocol("compress: short frame header: have %d bytes, need %d", len(frame), HeaderSize)
	}

	method = Method(frame[headerMethodOffset])
	compressedSize = int(binary.LittleEndian.Uint32(frame[headerCompressedSizeOffset:]))
	uncompressedSize = int(binary.LittleEndian.Uint32(frame[headerUncompressedSizeOffset:]))

	if compressedSize < HeaderSize-checksum.Size {
		return 0, 0, 0, errs.Protocol("compress: implausible compressed size %d", compressedSize)
	}

	return method, compressedSize, uncompressedSize, nil
}
