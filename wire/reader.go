package wire

import (
	"fmt"
	"io"
)

// Reader decodes the wire primitives from a byte stream. It wraps a plain
// io.Reader rather than net.Conn directly, so it has no notion of
// deadlines or cancellation; transport.Conn is responsible for context
// binding before its bufio.Reader reaches here.
type Reader struct {
	r   io.Reader
	buf [MaxVarintLen64]byte
}

// NewReader wraps r for primitive decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadFull reads exactly len(buf) bytes into buf.
func (r *Reader) ReadFull(buf []byte) error {
	_, err := io.ReadFull(r.r, buf)
	return err
}

// ReadUvarint decodes an unsigned LEB128 varint one byte at a time.
func (r *Reader) ReadUvarint() (uint64, error) {
	var v uint64
	var shift uint

	for i := 0; ; i++ {
		if i >= MaxVarintLen64 {
			return 0, &ErrOverflow{Kind: "uvarint"}
		}

		if err := r.ReadFull(r.buf[:1]); err != nil {
			return 0, err
		}

		b := r.buf[0]
		if b < 0x80 {
			return v | uint64(b)<<shift, nil
		}
		v |= uint64(b&0x7f) << shift
		shift += 7
	}
}

// ReadString decodes a length-prefixed string.
func (r *Reader) ReadString() (string, error) {
	length, err := r.ReadUvarint()
	if err != nil {
		return "", fmt.Errorf("wire: read string length: %w", err)
	}

	if length == 0 {
		return "", nil
	}

	buf := make([]byte, length)
	if err := r.ReadFull(buf); err != nil {
		return "", fmt.Errorf("wire: read string body: %w", err)
	}

	return string(buf), nil
}

// ReadFixed8 reads a single byte.
func (r *Reader) ReadFixed8() (uint8, error) {
	if err := r.ReadFull(r.buf[:1]); err != nil {
		return 0, err
	}

	return r.buf[0], nil
}

// ReadFixed16 reads a little-endian uint16.
func (r *Reader) ReadFixed16() (uint16, error) {
	if err := r.ReadFull(r.buf[:2]); err != nil {
		return 0, err
	}

	return Fixed16(r.buf[:2]), nil
}

// ReadFixed32 reads a little-endian uint32.
func (r *Reader) ReadFixed32() (uint32, error) {
	if err := r.ReadFull(r.buf[:4]); err != nil {
		return 0, err
	}

	return Fixed32(r.buf[:4]), nil
}

// ReadFixed64 reads a little-endian uint64.
func (r *Reader) ReadFixed64() (uint64, error) {
	if err := r.ReadFull(r.buf[:8]); err != nil {
		return 0, err
	}

	return Fixed64(r.buf[:8]), nil
}

// ReadFixed128 reads a little-endian 128-bit value, low 64 bits first.
func (r *Reader) ReadFixed128() (lo, hi uint64, err error) {
	var buf [16]byte
	if err := r.ReadFull(buf[:]); err != nil {
		return 0, 0, err
	}

	lo, hi = Fixed128(buf[:])

	return lo, hi, nil
}

// ReadBool reads a single byte and interprets it as a boolean: any nonzero
// byte is true, matching the server's own lenient decoding.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadFixed8()
	if err != nil {
		return false, err
	}

	return b != 0, nil
}
