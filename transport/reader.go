package transport

import (
	"io"

	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/internal/checksum"
	"github.com/kasuga-db/chconn/wire"
)

// Reader decodes wire primitives directly off a buffered byte stream and
// additionally knows how to pull one whole compression frame off the wire,
// which block and proto need to locate a compressed block's byte source.
//
// Reader embeds *wire.Reader so every primitive read (ReadUvarint,
// ReadString, ReadFixed32, ...) is available without redeclaration; only
// the frame-level operation is specific to a connection's byte stream.
type Reader struct {
	*wire.Reader
}

// NewReader wraps an arbitrary io.Reader for framed decoding. Conn.Reader
// returns one of these bound to the connection's buffered socket reader;
// tests and callers driving the protocol over something other than a live
// socket (an io.Pipe, a recorded byte stream) can build one directly.
func NewReader(r io.Reader) *Reader {
	return &Reader{Reader: wire.NewReader(r)}
}

// ReadFrame reads exactly one checksummed compression frame (§4.3) off the
// wire and returns its decompressed payload. Data packets carry at most one
// frame per block, so callers read a whole block's worth of bytes with a
// single ReadFrame call.
func (r *Reader) ReadFrame() ([]byte, error) {
	var header [compress.HeaderSize]byte
	if err := r.Reader.ReadFull(header[:]); err != nil {
		return nil, err
	}

	_, compressedSize, _, err := compress.PeekSizes(header[:])
	if err != nil {
		return nil, err
	}

	remaining := compressedSize - (compress.HeaderSize - checksum.Size)
	frame := make([]byte, compress.HeaderSize+remaining)
	copy(frame, header[:])
	if remaining > 0 {
		if err := r.Reader.ReadFull(frame[compress.HeaderSize:]); err != nil {
			return nil, err
		}
	}

	return compress.DecodeFrame(frame)
}
