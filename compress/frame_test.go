package compress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/errs"
)

func TestEncodeDecodeFrame_RoundTrip(t *testing.T) {
	for _, method := range []Method{MethodNone, MethodLZ4, MethodZSTD} {
		t.Run(method.String(), func(t *testing.T) {
			data := []byte("the quick brown fox jumps over the lazy dog, repeated, repeated, repeated")

			frame, err := EncodeFrame(method, data)
			require.NoError(t, err)

			gotMethod, _, uncompressedSize, err := PeekSizes(frame)
			require.NoError(t, err)
			assert.Equal(t, method, gotMethod)
			assert.Equal(t, len(data), uncompressedSize)

			decoded, err := DecodeFrame(frame)
			require.NoError(t, err)
			assert.Equal(t, data, decoded)
		})
	}
}

func TestEncodeFrame_Empty(t *testing.T) {
	frame, err := EncodeFrame(MethodLZ4, nil)
	require.NoError(t, err)

	decoded, err := DecodeFrame(frame)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeFrame_RejectsCorruption(t *testing.T) {
	data := []byte("session payload that must not be tampered with")
	frame, err := EncodeFrame(MethodLZ4, data)
	require.NoError(t, err)

	frame[HeaderSize] ^= 0xFF

	_, err = DecodeFrame(frame)
	require.Error(t, err)
	assert.True(t, errs.IsProtocol(err))
}

func TestDecodeFrame_ShortHeader(t *testing.T) {
	_, err := DecodeFrame(make([]byte, HeaderSize-1))
	require.Error(t, err)
	assert.True(t, errs.IsProtocol(err))
}

func TestForMethod_Unknown(t *testing.T) {
	_, err := ForMethod(Method(0x7F))
	require.Error(t, err)
	assert.True(t, errs.IsProtocol(err))
}

func TestMethod_String(t *testing.T) {
	assert.Equal(t, "None", MethodNone.String())
	assert.Equal(t, "LZ4", MethodLZ4.String())
	assert.Equal(t, "ZSTD", MethodZSTD.String())
	assert.Contains(t, Method(0x01).String(), "0x01")
}
