package block_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/block"
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/column"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/transport"
)

type uint64Setter interface {
	Values() []uint64
	SetValues([]uint64)
}

type stringAppender interface {
	Append(string)
	Values() []string
}

func buildBlock(t *testing.T) block.Block {
	t.Helper()

	ids := column.NewUInt64Column().(uint64Setter)
	names := column.NewStringColumn().(stringAppender)

	for i, name := range []string{"alice", "bob", "carol"} {
		ids.SetValues(append(ids.Values(), uint64(i)))
		names.Append(name)
	}

	return block.Block{
		Info: block.BlockInfo{BucketNum: -1},
		Columns: []block.NamedColumn{
			{Name: "id", Column: ids.(column.Column)},
			{Name: "name", Column: names.(column.Column)},
		},
	}
}

func TestBlock_RoundTrip_Uncompressed(t *testing.T) {
	b := buildBlock(t)

	var buf bytes.Buffer
	w := transport.NewWriter(&buf)
	require.NoError(t, block.Write(w, b, chtype.RevCustomSerialization, compress.MethodNone))
	require.NoError(t, w.Flush())

	r := transport.NewReader(&buf)
	out, err := block.Read(r, chtype.RevCustomSerialization, false)
	require.NoError(t, err)

	require.Equal(t, 3, out.Rows())
	require.Len(t, out.Columns, 2)
	assert.Equal(t, "id", out.Columns[0].Name)
	assert.Equal(t, "name", out.Columns[1].Name)
	assert.Equal(t, []string{"alice", "bob", "carol"}, out.Columns[1].Column.(interface{ Values() []string }).Values())
}

func TestBlock_RoundTrip_Compressed(t *testing.T) {
	b := buildBlock(t)

	var buf bytes.Buffer
	w := transport.NewWriter(&buf)
	require.NoError(t, block.Write(w, b, chtype.RevCustomSerialization, compress.MethodLZ4))
	require.NoError(t, w.Flush())

	r := transport.NewReader(&buf)
	out, err := block.Read(r, chtype.RevCustomSerialization, true)
	require.NoError(t, err)

	require.Equal(t, 3, out.Rows())
	assert.Equal(t, []string{"alice", "bob", "carol"}, out.Columns[1].Column.(interface{ Values() []string }).Values())
}

func TestBlock_RoundTrip_EmptyMarkerBlock(t *testing.T) {
	empty := block.Block{Info: block.BlockInfo{BucketNum: -1}}

	var buf bytes.Buffer
	w := transport.NewWriter(&buf)
	require.NoError(t, block.Write(w, empty, chtype.RevCustomSerialization, compress.MethodNone))
	require.NoError(t, w.Flush())

	r := transport.NewReader(&buf)
	out, err := block.Read(r, chtype.RevCustomSerialization, false)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Rows())
	assert.Empty(t, out.Columns)
}

func TestBlock_PreBlockInfoRevision_OmitsBlockInfoBytes(t *testing.T) {
	b := buildBlock(t)

	var buf bytes.Buffer
	w := transport.NewWriter(&buf)
	require.NoError(t, block.Write(w, b, chtype.RevBlockInfo-1, compress.MethodNone))
	require.NoError(t, w.Flush())

	r := transport.NewReader(&buf)
	out, err := block.Read(r, chtype.RevBlockInfo-1, false)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), out.Info.BucketNum)
	assert.Equal(t, 3, out.Rows())
}

func TestBlock_Read_UnknownTypeNameIsProtocolError(t *testing.T) {
	// Construct a minimal malformed block by hand: BlockInfo terminator,
	// 1 column, 1 row, name "x", type-name "NotARealType".
	var raw bytes.Buffer
	ww := transport.NewWriter(&raw)
	require.NoError(t, ww.WriteRaw(encodeMinimalBadBlock(t)))
	require.NoError(t, ww.Flush())

	r := transport.NewReader(&raw)
	_, err := block.Read(r, chtype.RevCustomSerialization, false)
	require.Error(t, err)
}

func encodeMinimalBadBlock(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	// field_num=0 terminator for BlockInfo (gated on RevCustomSerialization >= RevBlockInfo, true here).
	buf.WriteByte(0)
	// num_columns=1, num_rows=1
	buf.WriteByte(1)
	buf.WriteByte(1)
	// name "x"
	buf.WriteByte(1)
	buf.WriteByte('x')
	// type-name "NotARealType"
	name := "NotARealType"
	buf.WriteByte(byte(len(name)))
	buf.WriteString(name)
	return buf.Bytes()
}
