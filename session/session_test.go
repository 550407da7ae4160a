package session_test

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasuga-db/chconn/block"
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/column"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/proto"
	"github.com/kasuga-db/chconn/session"
	"github.com/kasuga-db/chconn/transport"
	"github.com/kasuga-db/chconn/wire"
)

type uint64Setter interface {
	Values() []uint64
	SetValues([]uint64)
}

func newUInt64Column(t *testing.T, values ...uint64) column.Column {
	t.Helper()
	c := column.NewUInt64Column().(uint64Setter)
	c.SetValues(values)
	return c.(column.Column)
}

func listenLoopback(t *testing.T) (string, net.Listener) {
	t.Helper()
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = lis.Close() })
	return lis.Addr().String(), lis
}

// helloBytes returns the raw server Hello packet at rev, the same
// revision used throughout these tests so session.revision() resolves to
// exactly rev (the client's own ClientRevision is always >= every rev
// constant this module defines).
func helloBytes(t *testing.T, rev uint64) []byte {
	t.Helper()
	w := wire.NewWriter()
	defer w.Release()
	w.WriteUvarint(uint64(proto.ServerHello))
	w.WriteString("TestServer")
	w.WriteUvarint(1)
	w.WriteUvarint(2)
	w.WriteUvarint(rev)
	w.WriteString("UTC")
	w.WriteString("test-display")
	w.WriteUvarint(3)
	return append([]byte(nil), w.Bytes()...)
}

func pongBytes(t *testing.T) []byte {
	t.Helper()
	w := wire.NewWriter()
	defer w.Release()
	w.WriteUvarint(uint64(proto.ServerPong))
	return append([]byte(nil), w.Bytes()...)
}

func endOfStreamBytes(t *testing.T) []byte {
	t.Helper()
	w := wire.NewWriter()
	defer w.Release()
	w.WriteUvarint(uint64(proto.ServerEndOfStream))
	return append([]byte(nil), w.Bytes()...)
}

// dataPacketBytes returns a raw ServerData packet (temp-table name, then an
// uncompressed Block) for rev.
func dataPacketBytes(t *testing.T, rev uint64, b block.Block) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := wire.NewWriter()
	w.WriteUvarint(uint64(proto.ServerData))
	w.WriteString("")
	buf.Write(w.Bytes())
	w.Release()

	tw := transport.NewWriter(&buf)
	require.NoError(t, block.Write(tw, b, rev, compress.MethodNone))
	require.NoError(t, tw.Flush())
	return buf.Bytes()
}

func TestSession_Dial_PerformsHandshake(t *testing.T) {
	addr, lis := listenLoopback(t)
	rev := chtype.RevParameters

	go func() {
		c, err := lis.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = c.Write(helloBytes(t, rev))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, err := session.Dial(ctx, session.WithAddr(addr))
	require.NoError(t, err)
	defer s.Close()

	info := s.ServerInfo()
	assert.Equal(t, "TestServer", info.Name)
	assert.Equal(t, rev, info.Revision)
	assert.Equal(t, "test-display", info.DisplayName)
}

func TestSession_Ping_ReceivesPong(t *testing.T) {
	addr, lis := listenLoopback(t)
	rev := chtype.RevParameters

	go func() {
		c, err := lis.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = c.Write(helloBytes(t, rev))
		_, _ = c.Write(pongBytes(t))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, err := session.Dial(ctx, session.WithAddr(addr))
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(ctx))
}

func TestSession_Ping_UnexpectedPacketIsProtocolError(t *testing.T) {
	addr, lis := listenLoopback(t)
	rev := chtype.RevParameters

	go func() {
		c, err := lis.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = c.Write(helloBytes(t, rev))
		_, _ = c.Write(endOfStreamBytes(t))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, err := session.Dial(ctx, session.WithAddr(addr))
	require.NoError(t, err)
	defer s.Close()

	err = s.Ping(ctx)
	require.Error(t, err)
}

func TestSession_Execute_StreamsDataThenEndOfStream(t *testing.T) {
	addr, lis := listenLoopback(t)
	rev := chtype.RevParameters

	numbers := newUInt64Column(t, 0, 1, 2)
	xs := newUInt64Column(t, 10, 11, 12)
	b := block.Block{
		Info: block.BlockInfo{BucketNum: -1},
		Columns: []block.NamedColumn{
			{Name: "number", Column: numbers},
			{Name: "x", Column: xs},
		},
	}

	go func() {
		c, err := lis.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = c.Write(helloBytes(t, rev))
		_, _ = c.Write(dataPacketBytes(t, rev, b))
		_, _ = c.Write(endOfStreamBytes(t))
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, err := session.Dial(ctx, session.WithAddr(addr))
	require.NoError(t, err)
	defer s.Close()

	var got block.Block
	err = s.Execute(ctx, "SELECT number, number+10 AS x FROM system.numbers LIMIT 3", session.QueryOptions{
		OnData: func(blk block.Block) bool {
			got = blk
			return true
		},
	})
	require.NoError(t, err)

	require.Len(t, got.Columns, 2)
	assert.Equal(t, "number", got.Columns[0].Name)
	assert.Equal(t, "x", got.Columns[1].Name)
	assert.Equal(t, []uint64{0, 1, 2}, got.Columns[0].Column.(uint64Setter).Values())
	assert.Equal(t, []uint64{10, 11, 12}, got.Columns[1].Column.(uint64Setter).Values())
}

func TestSession_Execute_ServerException(t *testing.T) {
	addr, lis := listenLoopback(t)
	rev := chtype.RevParameters

	go func() {
		c, err := lis.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		_, _ = c.Write(helloBytes(t, rev))

		w := wire.NewWriter()
		defer w.Release()
		w.WriteUvarint(uint64(proto.ServerException))
		w.WriteFixed32(uint32(int32(62)))
		w.WriteString("DB::Exception")
		w.WriteString("Syntax error")
		w.WriteString("")
		w.WriteBool(false)
		_, _ = c.Write(w.Bytes())
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	s, err := session.Dial(ctx, session.WithAddr(addr))
	require.NoError(t, err)
	defer s.Close()

	err = s.Execute(ctx, "SELECT nonsense", session.QueryOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Syntax error")
}
