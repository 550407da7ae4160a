package transport

import (
	"bufio"
	"io"

	"github.com/kasuga-db/chconn/compress"
)

// Writer writes raw bytes to a buffered byte stream. Unlike wire.Writer (an
// in-memory accumulator used to build a packet or block before it is
// complete), Writer is the thing that actually puts bytes on the wire, once
// proto or block has a finished buffer to send.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter wraps an arbitrary io.Writer for framed, buffered writes.
// Conn.Writer returns one of these bound to the connection's socket; tests
// and callers driving the protocol over something other than a live socket
// can build one directly.
func NewWriter(w io.Writer) *Writer {
	if bw, ok := w.(*bufio.Writer); ok {
		return &Writer{bw: bw}
	}
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteRaw appends data to the buffered writer without flushing.
func (w *Writer) WriteRaw(data []byte) error {
	_, err := w.bw.Write(data)
	return err
}

// WriteFrame compresses data with method, wraps it in a checksummed
// compression frame, and appends the frame to the buffered writer.
func (w *Writer) WriteFrame(method compress.Method, data []byte) error {
	frame, err := compress.EncodeFrame(method, data)
	if err != nil {
		return err
	}
	return w.WriteRaw(frame)
}

// Flush flushes any buffered writes to the underlying connection. Callers
// must flush before blocking on a read that expects an immediate server
// response, per §4.6.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
