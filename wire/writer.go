package wire

import (
	"github.com/kasuga-db/chconn/internal/pool"
)

// Writer accumulates encoded bytes into a pooled buffer. It is the
// in-memory counterpart to Reader, used by column codecs to build a
// column's body and by proto to build whole packets before handing the
// result to transport.Writer.
//
// Adapted from mebo's encoder types (e.g. TagEncoder), which each
// wrapped a *pool.ByteBuffer and grew it with ExtendOrGrow before writing
// in place; Writer generalizes that single pattern into one reusable type
// instead of duplicating it per column kind.
type Writer struct {
	buf     *pool.ByteBuffer
	isBlock bool
}

// NewWriter creates a Writer backed by a buffer from the per-column pool.
func NewWriter() *Writer {
	return &Writer{buf: pool.GetColumnBuffer()}
}

// NewBlockWriter creates a Writer backed by a buffer from the per-block
// pool, sized for accumulating a whole block (every column's prefix and
// body) rather than a single column.
func NewBlockWriter() *Writer {
	return &Writer{buf: pool.GetBlockBuffer(), isBlock: true}
}

// Release returns the Writer's backing buffer to the pool it came from. The
// Writer must not be used afterward.
func (w *Writer) Release() {
	if w.isBlock {
		pool.PutBlockBuffer(w.buf)
	} else {
		pool.PutColumnBuffer(w.buf)
	}
	w.buf = nil
}

// Reset clears the accumulated bytes without releasing the backing buffer.
func (w *Writer) Reset() {
	w.buf.Reset()
}

// Bytes returns the bytes written so far. The slice is valid until the next
// write or Reset call.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// WriteRaw appends data unchanged.
func (w *Writer) WriteRaw(data []byte) {
	w.buf.MustWrite(data)
}

// WriteUvarint appends v as an unsigned LEB128 varint.
func (w *Writer) WriteUvarint(v uint64) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(VarintLen(v))
	PutUvarint(w.buf.Bytes()[oldLen:], v)
}

// WriteString appends a length-prefixed string.
func (w *Writer) WriteString(s string) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(StringLen(s))
	buf := w.buf.Bytes()
	n := PutUvarint(buf[oldLen:], uint64(len(s)))
	copy(buf[oldLen+n:], s)
}

// WriteFixed8 appends a single byte.
func (w *Writer) WriteFixed8(v uint8) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(1)
	PutFixed8(w.buf.Bytes()[oldLen:], v)
}

// WriteFixed16 appends a little-endian uint16.
func (w *Writer) WriteFixed16(v uint16) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(2)
	PutFixed16(w.buf.Bytes()[oldLen:], v)
}

// WriteFixed32 appends a little-endian uint32.
func (w *Writer) WriteFixed32(v uint32) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(4)
	PutFixed32(w.buf.Bytes()[oldLen:], v)
}

// WriteFixed64 appends a little-endian uint64.
func (w *Writer) WriteFixed64(v uint64) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(8)
	PutFixed64(w.buf.Bytes()[oldLen:], v)
}

// WriteFixed128 appends a little-endian 128-bit value, low 64 bits first.
func (w *Writer) WriteFixed128(lo, hi uint64) {
	oldLen := w.buf.Len()
	w.buf.ExtendOrGrow(16)
	PutFixed128(w.buf.Bytes()[oldLen:], lo, hi)
}

// WriteBool appends v as a single 0x00/0x01 byte, matching how the protocol
// encodes every boolean field.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteFixed8(1)
	} else {
		w.WriteFixed8(0)
	}
}
