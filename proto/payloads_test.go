package proto_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/proto"
	"github.com/kasuga-db/chconn/transport"
	"github.com/kasuga-db/chconn/wire"
)

func TestWriteHello_EncodesCodeAndClientName(t *testing.T) {
	var buf bytes.Buffer
	w := transport.NewWriter(&buf)

	scratch := wire.NewWriter()
	defer scratch.Release()
	proto.WriteHello(scratch, "chconn", 1, 2, chtype.RevDisplayName, "default", "default", "")
	require.NoError(t, w.WriteRaw(scratch.Bytes()))
	require.NoError(t, w.Flush())

	r := transport.NewReader(&buf)
	code, err := r.ReadUvarint()
	require.NoError(t, err)
	require.Equal(t, uint64(proto.ClientHello), code)

	clientName, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "chconn", clientName)
}

func TestReadHello_GatesFieldsByRevision(t *testing.T) {
	var buf bytes.Buffer
	w := wire.NewWriter()
	defer w.Release()

	w.WriteString("ClickHouse")
	w.WriteUvarint(23)
	w.WriteUvarint(8)
	w.WriteUvarint(chtype.RevServerTimezone - 1)
	buf.Write(w.Bytes())

	h, err := proto.ReadHello(wire.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, "ClickHouse", h.Name)
	assert.Empty(t, h.ServerTimezone)
	assert.Empty(t, h.DisplayName)
}

func TestReadException_NestedChain(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()

	// Nested exception first (innermost).
	w.WriteFixed32(uint32(int32(-1)))
	w.WriteString("DB::Exception")
	w.WriteString("inner")
	w.WriteString("")
	w.WriteBool(false)

	var buf bytes.Buffer
	buf.Write(w.Bytes())
	inner, err := proto.ReadException(wire.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, "inner", inner.Message)

	outer := wire.NewWriter()
	defer outer.Release()
	outer.WriteFixed32(uint32(int32(42)))
	outer.WriteString("DB::Exception")
	outer.WriteString("outer")
	outer.WriteString("")
	outer.WriteBool(true)
	outer.WriteFixed32(uint32(int32(-1)))
	outer.WriteString("DB::Exception")
	outer.WriteString("inner")
	outer.WriteString("")
	outer.WriteBool(false)

	var outBuf bytes.Buffer
	outBuf.Write(outer.Bytes())
	e, err := proto.ReadException(wire.NewReader(&outBuf))
	require.NoError(t, err)
	require.NotNil(t, e.Nested)
	assert.Equal(t, "outer", e.Message)
	assert.Equal(t, "inner", e.Nested.Message)

	asErr := e.AsError()
	assert.Contains(t, asErr.Error(), "outer")
}

func TestReadProgress_GatesWrittenFieldsByRevision(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	w.WriteUvarint(10)
	w.WriteUvarint(1024)
	w.WriteUvarint(100)

	var buf bytes.Buffer
	buf.Write(w.Bytes())
	p, err := proto.ReadProgress(wire.NewReader(&buf), chtype.RevWrittenRowsBytes-1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), p.Rows)
	assert.Equal(t, uint64(0), p.WrittenRows)
}

func TestWriteSettings_ReadSettings_RoundTrip(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()
	proto.WriteSettings(w, map[string]string{"max_threads": "4"})

	var buf bytes.Buffer
	buf.Write(w.Bytes())
	got, err := proto.ReadSettings(wire.NewReader(&buf))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"max_threads": "4"}, got)
}

func TestWriteQuery_EncodesExpectedShape(t *testing.T) {
	w := wire.NewWriter()
	defer w.Release()

	q := proto.Query{
		ID: "query-1",
		Info: proto.ClientInfo{
			QueryKind:      proto.QueryKindInitial,
			Interface:      proto.InterfaceTCP,
			ClientName:     "chconn",
			VersionMajor:   1,
			VersionMinor:   0,
			ClientRevision: chtype.RevParameters,
		},
		Settings:   map[string]string{},
		Compressed: true,
		Text:       "SELECT 1",
		Params:     map[string]string{},
	}
	proto.WriteQuery(w, q, chtype.RevParameters)

	var buf bytes.Buffer
	buf.Write(w.Bytes())
	r := wire.NewReader(&buf)

	code, err := r.ReadUvarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(proto.ClientQuery), code)

	id, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "query-1", id)
}
