// Package session implements the flow controller: handshake, Ping,
// SELECT's packet-router loop, INSERT's state machine, and Cancel, on top
// of package transport's byte stream and package proto's packet codecs.
package session

import (
	"context"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/proto"
	"github.com/kasuga-db/chconn/transport"
	"github.com/kasuga-db/chconn/wire"
)

// scratchWriter returns a pooled in-memory buffer for building a small
// packet (Hello, Ping, Cancel, Query header) before handing its bytes to
// the connection's buffered transport.Writer. Callers must Release it.
func scratchWriter() *wire.Writer {
	return wire.NewWriter()
}

// ClientVersion identifies this module to the server during Hello and in
// every Query packet's ClientInfo.
const (
	ClientVersionMajor = 1
	ClientVersionMinor = 0
	// ClientRevision is the protocol revision this module speaks. It must
	// be at least as high as every chtype.Rev* constant this module relies
	// on; RevParameters is presently the newest one in use.
	ClientRevision = chtype.RevParameters
)

// ServerInfo is the handshake response the server returns, kept on the
// Session for the lifetime of the connection.
type ServerInfo struct {
	Name         string
	VersionMajor uint64
	VersionMinor uint64
	Revision     uint64
	Timezone     string
	DisplayName  string
}

// Settings is a server settings map serialized inline in the Query packet.
type Settings = map[string]string

// Params is a query-parameters map serialized inline in the Query packet.
type Params = map[string]string

// Session is a single logical conversation with one server endpoint. It
// is not safe for concurrent use: exactly one goroutine may drive a
// *Session's methods at a time, the same single-threaded-per-connection
// discipline transport.Conn already assumes.
type Session struct {
	opts   *options
	conn   *transport.Conn
	server ServerInfo
}

// Dial resolves opts, connects to the first reachable endpoint, and
// performs the Hello handshake. On success the returned Session's
// ServerInfo is already populated.
func Dial(ctx context.Context, opts ...Option) (*Session, error) {
	o := defaultOptions()
	if err := applyOptions(o, opts); err != nil {
		return nil, err
	}
	if len(o.addrs) == 0 {
		return nil, errs.InvalidInput("session: no endpoints configured, use WithEndpoints/WithAddr")
	}

	var transportOpts []transport.Option
	if o.connectTimeout > 0 {
		transportOpts = append(transportOpts, transport.WithConnectTimeout(o.connectTimeout))
	}
	if o.sendTimeout > 0 {
		transportOpts = append(transportOpts, transport.WithSendTimeout(o.sendTimeout))
	}
	if o.recvTimeout > 0 {
		transportOpts = append(transportOpts, transport.WithRecvTimeout(o.recvTimeout))
	}
	if o.tls != nil {
		transportOpts = append(transportOpts, transport.WithTLS(o.tls))
	}

	conn, err := transport.Dial(ctx, o.addrs, transportOpts...)
	if err != nil {
		return nil, err
	}

	s := &Session{opts: o, conn: conn}
	if err := s.handshake(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return s, nil
}

func (s *Session) handshake(ctx context.Context) error {
	if err := s.conn.BindWriteDeadline(ctx); err != nil {
		return err
	}

	w := s.conn.Writer()
	scratch := scratchWriter()
	defer scratch.Release()
	proto.WriteHello(scratch, s.opts.clientName, ClientVersionMajor, ClientVersionMinor, ClientRevision,
		s.opts.database, s.opts.user, s.opts.password)
	if err := w.WriteRaw(scratch.Bytes()); err != nil {
		return errs.IO("session: write hello", err)
	}
	if err := w.Flush(); err != nil {
		return errs.IO("session: flush hello", err)
	}

	if err := s.conn.BindReadDeadline(ctx); err != nil {
		return err
	}
	code, err := s.conn.Reader().ReadUvarint()
	if err != nil {
		return errs.IO("session: read hello response", err)
	}

	switch proto.ServerCode(code) {
	case proto.ServerHello:
		hello, err := proto.ReadHello(s.conn.Reader().Reader)
		if err != nil {
			return errs.Protocol("session: decode Hello: %v", err)
		}
		s.server = ServerInfo{
			Name:         hello.Name,
			VersionMajor: hello.VersionMajor,
			VersionMinor: hello.VersionMinor,
			Revision:     hello.Revision,
			Timezone:     hello.ServerTimezone,
			DisplayName:  hello.DisplayName,
		}
		return nil

	case proto.ServerException:
		e, err := proto.ReadException(s.conn.Reader().Reader)
		if err != nil {
			return errs.Protocol("session: decode handshake Exception: %v", err)
		}
		return e.AsError()

	default:
		return errs.Protocol("session: unexpected packet %d during handshake", code)
	}
}

// ServerInfo returns the server's handshake response.
func (s *Session) ServerInfo() ServerInfo { return s.server }

// revision returns the lower of the client's and server's protocol
// revisions: every gated field on the wire must follow whichever side
// understands less.
func (s *Session) revision() uint64 {
	if s.server.Revision < ClientRevision {
		return s.server.Revision
	}
	return ClientRevision
}

// negotiatedCompression reports the compression method to flag in Query
// packets and to use for framing outgoing/incoming Data blocks.
func (s *Session) negotiatedCompression() (negotiated bool, method compress.Method) {
	return s.opts.negotiate, s.opts.compression
}

// Ping sends a Ping packet and waits for Pong. Any other response packet
// is a protocol error.
func (s *Session) Ping(ctx context.Context) error {
	if err := s.conn.BindWriteDeadline(ctx); err != nil {
		return err
	}
	scratch := scratchWriter()
	defer scratch.Release()
	proto.WritePing(scratch)
	if err := s.conn.Writer().WriteRaw(scratch.Bytes()); err != nil {
		return errs.IO("session: write ping", err)
	}
	if err := s.conn.Writer().Flush(); err != nil {
		return errs.IO("session: flush ping", err)
	}

	if err := s.conn.BindReadDeadline(ctx); err != nil {
		return err
	}
	code, err := s.conn.Reader().ReadUvarint()
	if err != nil {
		return errs.IO("session: read pong", err)
	}
	if proto.ServerCode(code) != proto.ServerPong {
		return errs.Protocol("session: expected Pong, got packet %d", code)
	}
	return nil
}

// Cancel sends a Cancel packet. The caller is expected to continue
// draining the in-flight query's router loop (Execute/Insert do this
// automatically) until EndOfStream or an error.
func (s *Session) Cancel(ctx context.Context) error {
	if err := s.conn.BindWriteDeadline(ctx); err != nil {
		return err
	}
	scratch := scratchWriter()
	defer scratch.Release()
	proto.WriteCancel(scratch)
	if err := s.conn.Writer().WriteRaw(scratch.Bytes()); err != nil {
		return errs.IO("session: write cancel", err)
	}
	return s.conn.Writer().Flush()
}

// Close closes the underlying connection. The Session must not be used
// afterward.
func (s *Session) Close() error {
	return s.conn.Close()
}

func (s *Session) clientInfo() proto.ClientInfo {
	ci := proto.ClientInfo{
		QueryKind:      proto.QueryKindInitial,
		InitialUser:    s.opts.user,
		InitialAddress: "0.0.0.0:0",
		Interface:      proto.InterfaceTCP,
		ClientName:     s.opts.clientName,
		VersionMajor:   ClientVersionMajor,
		VersionMinor:   ClientVersionMinor,
		ClientRevision: ClientRevision,
		QuotaKey:       s.opts.quotaKey,
	}
	return ci
}
