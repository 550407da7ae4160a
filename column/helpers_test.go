package column

import (
	"bytes"
	"io"
)

// newByteReader wraps buf for feeding into wire.NewReader in tests.
func newByteReader(buf []byte) io.Reader {
	return bytes.NewReader(buf)
}
