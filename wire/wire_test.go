package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUvarintRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 1 << 20, 1 << 40, ^uint64(0)}

	for _, v := range cases {
		buf := make([]byte, MaxVarintLen64)
		n := PutUvarint(buf, v)
		assert.Equal(t, VarintLen(v), n)

		got, m := Uvarint(buf[:n])
		assert.Equal(t, v, got)
		assert.Equal(t, n, m)
	}
}

func TestUvarint_Incomplete(t *testing.T) {
	buf := []byte{0x80, 0x80}
	_, n := Uvarint(buf)
	assert.Equal(t, 0, n)
}

func TestAppendUvarint(t *testing.T) {
	buf := AppendUvarint(nil, 300)
	v, n := Uvarint(buf)
	assert.Equal(t, uint64(300), v)
	assert.Equal(t, len(buf), n)
}

func TestFixedWidths_RoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	PutFixed16(buf, 0xABCD)
	assert.Equal(t, uint16(0xABCD), Fixed16(buf))

	PutFixed32(buf, 0xDEADBEEF)
	assert.Equal(t, uint32(0xDEADBEEF), Fixed32(buf))

	PutFixed64(buf, 0x0123456789ABCDEF)
	assert.Equal(t, uint64(0x0123456789ABCDEF), Fixed64(buf))
}

func TestFixed128_RoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	PutFixed128(buf, 0x1111111111111111, 0x2222222222222222)

	lo, hi := Fixed128(buf)
	assert.Equal(t, uint64(0x1111111111111111), lo)
	assert.Equal(t, uint64(0x2222222222222222), hi)
}

func TestStringRoundTrip(t *testing.T) {
	buf := AppendString(nil, "hello, chconn")

	s, n := String(buf)
	assert.Equal(t, "hello, chconn", s)
	assert.Equal(t, len(buf), n)
}

func TestString_Empty(t *testing.T) {
	buf := AppendString(nil, "")
	s, n := String(buf)
	assert.Equal(t, "", s)
	assert.Equal(t, 1, n)
}

func TestWriterReader_RoundTrip(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteUvarint(42)
	w.WriteString("select 1")
	w.WriteFixed8(0xFF)
	w.WriteFixed16(0x1234)
	w.WriteFixed32(0xCAFEBABE)
	w.WriteFixed64(0x0102030405060708)
	w.WriteFixed128(1, 2)
	w.WriteBool(true)
	w.WriteBool(false)

	r := NewReader(bytes.NewReader(w.Bytes()))

	v, err := r.ReadUvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), v)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "select 1", s)

	b8, err := r.ReadFixed8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xFF), b8)

	b16, err := r.ReadFixed16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), b16)

	b32, err := r.ReadFixed32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xCAFEBABE), b32)

	b64, err := r.ReadFixed64()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), b64)

	lo, hi, err := r.ReadFixed128()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), lo)
	assert.Equal(t, uint64(2), hi)

	bTrue, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, bTrue)

	bFalse, err := r.ReadBool()
	require.NoError(t, err)
	assert.False(t, bFalse)
}

func TestReader_ReadUvarint_Overflow(t *testing.T) {
	overflow := bytes.Repeat([]byte{0x80}, MaxVarintLen64)
	overflow = append(overflow, 0x02)

	r := NewReader(bytes.NewReader(overflow))
	_, err := r.ReadUvarint()
	assert.Error(t, err)
}

func TestReader_ReadString_Truncated(t *testing.T) {
	buf := AppendUvarint(nil, 10)
	r := NewReader(bytes.NewReader(buf))

	_, err := r.ReadString()
	assert.Error(t, err)
}

func TestWriter_ResetReusesBuffer(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	w.WriteFixed64(1)
	assert.Equal(t, 8, w.Len())

	w.Reset()
	assert.Equal(t, 0, w.Len())
}
