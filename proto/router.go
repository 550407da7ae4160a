package proto

import (
	"context"

	"github.com/kasuga-db/chconn/block"
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/transport"
)

// Callbacks receives the packets a Router dispatches during a query's
// lifetime. A nil callback is simply skipped. OnData's bool return tells
// the caller whether it still wants more rows; the Router does not act
// on it directly (it never sends Cancel on its own), it only forwards it
// back through Next so the session driving the loop can decide to cancel.
type Callbacks struct {
	OnProgress      func(Progress)
	OnProfile       func(ProfileInfo)
	OnProfileEvents func(block.Block)
	OnServerLog     func(block.Block)
	OnData          func(block.Block) bool
	OnTableColumns  func(TableColumns)
	OnException     func(Exception)
}

// Done reports why a Router stopped: either the server signaled the end
// of the packet stream, or the router is still mid-stream.
type Done int

const (
	// NotDone means Next should be called again.
	NotDone Done = iota
	// EndOfStream means the server sent ServerEndOfStream; the query is
	// finished successfully.
	EndOfStream
	// Excepted means the server sent a ServerException; Next's error
	// return carries it as an *errs.ServerException.
	Excepted
)

// Router drives the post-handshake packet loop: one call to Next reads
// exactly one packet, fully consumes its payload (enforcing the
// stream-alignment invariant every packet depends on), and invokes the
// matching Callbacks entry.
type Router struct {
	conn       *transport.Conn
	rev        uint64
	negotiated bool
	method     compress.Method
	callbacks  Callbacks
}

// NewRouter builds a Router over conn. rev is the negotiated protocol
// revision; negotiated and method describe whether block compression was
// agreed on and, if so, which codec frames Data/Totals/Extremes blocks.
// Log and ProfileEvents blocks are always uncompressed regardless of
// negotiation, per the server's own behavior.
func NewRouter(conn *transport.Conn, rev uint64, negotiated bool, method compress.Method, callbacks Callbacks) *Router {
	return &Router{conn: conn, rev: rev, negotiated: negotiated, method: method, callbacks: callbacks}
}

// SetOnData replaces the Router's OnData callback in place, letting a
// caller reuse one Router across phases that want different handling of
// Data/Totals/Extremes blocks (the INSERT state machine's header-capture
// phase versus its draining phase, for instance).
func (rt *Router) SetOnData(onData func(block.Block) bool) {
	rt.callbacks.OnData = onData
}

// Next reads and dispatches one packet. It returns EndOfStream or
// Excepted when the packet ends the query; any other recognized packet
// returns NotDone with a nil error. keepGoing is OnData's return value
// for Data/Totals/Extremes packets and true otherwise; the session loop
// is expected to send Cancel when it comes back false. An unrecognized
// packet code is a fatal protocol error: the stream can no longer be
// trusted to be aligned on packet boundaries.
func (rt *Router) Next(ctx context.Context) (done Done, keepGoing bool, err error) {
	keepGoing = true

	if err := rt.conn.BindReadDeadline(ctx); err != nil {
		return NotDone, keepGoing, err
	}

	code, err := rt.conn.Reader().ReadUvarint()
	if err != nil {
		return NotDone, keepGoing, errs.IO("proto: read packet code", err)
	}

	switch ServerCode(code) {
	case ServerData, ServerTotals, ServerExtremes:
		if _, err := rt.readTableName(); err != nil {
			return NotDone, keepGoing, err
		}
		b, err := block.Read(rt.conn.Reader(), rt.rev, rt.blockCompressed())
		if err != nil {
			return NotDone, keepGoing, err
		}
		if rt.callbacks.OnData != nil {
			keepGoing = rt.callbacks.OnData(b)
		}
		return NotDone, keepGoing, nil

	case ServerProfileEvents:
		if _, err := rt.readTableName(); err != nil {
			return NotDone, keepGoing, err
		}
		b, err := block.Read(rt.conn.Reader(), rt.rev, false)
		if err != nil {
			return NotDone, keepGoing, err
		}
		if rt.callbacks.OnProfileEvents != nil {
			rt.callbacks.OnProfileEvents(b)
		}
		return NotDone, keepGoing, nil

	case ServerLog:
		if _, err := rt.readTableName(); err != nil {
			return NotDone, keepGoing, err
		}
		b, err := block.Read(rt.conn.Reader(), rt.rev, false)
		if err != nil {
			return NotDone, keepGoing, err
		}
		if rt.callbacks.OnServerLog != nil {
			rt.callbacks.OnServerLog(b)
		}
		return NotDone, keepGoing, nil

	case ServerProgress:
		p, err := ReadProgress(rt.conn.Reader().Reader, rt.rev)
		if err != nil {
			return NotDone, keepGoing, errs.Protocol("proto: decode Progress: %v", err)
		}
		if rt.callbacks.OnProgress != nil {
			rt.callbacks.OnProgress(p)
		}
		return NotDone, keepGoing, nil

	case ServerProfileInfo:
		p, err := ReadProfileInfo(rt.conn.Reader().Reader)
		if err != nil {
			return NotDone, keepGoing, errs.Protocol("proto: decode ProfileInfo: %v", err)
		}
		if rt.callbacks.OnProfile != nil {
			rt.callbacks.OnProfile(p)
		}
		return NotDone, keepGoing, nil

	case ServerTableColumns:
		tc, err := ReadTableColumns(rt.conn.Reader().Reader)
		if err != nil {
			return NotDone, keepGoing, errs.Protocol("proto: decode TableColumns: %v", err)
		}
		if rt.callbacks.OnTableColumns != nil {
			rt.callbacks.OnTableColumns(tc)
		}
		return NotDone, keepGoing, nil

	case ServerPong:
		return NotDone, keepGoing, nil

	case ServerEndOfStream:
		return EndOfStream, keepGoing, nil

	case ServerException:
		e, err := ReadException(rt.conn.Reader().Reader)
		if err != nil {
			return NotDone, keepGoing, errs.Protocol("proto: decode Exception: %v", err)
		}
		if rt.callbacks.OnException != nil {
			rt.callbacks.OnException(e)
		}
		return Excepted, keepGoing, e.AsError()

	default:
		return NotDone, keepGoing, errs.Protocol("proto: unknown packet code %d, stream is no longer aligned", code)
	}
}

// blockCompressed reports whether the next Data/Totals/Extremes block is
// framed as a compress.Method payload, or sent raw.
func (rt *Router) blockCompressed() bool {
	return rt.negotiated && rt.method != compress.MethodNone
}

// readTableName reads the temporary-table name preceding a Data/Totals/
// Extremes/Log/ProfileEvents packet's Block, gated on chtype.RevTemporaryTables.
// This module never opens external tables, so the name is always empty in
// practice, but its bytes are still on the wire at this revision and must
// be consumed to keep the stream aligned.
func (rt *Router) readTableName() (string, error) {
	if rt.rev < chtype.RevTemporaryTables {
		return "", nil
	}
	name, err := rt.conn.Reader().ReadString()
	if err != nil {
		return "", errs.IO("proto: read temporary table name", err)
	}
	return name, nil
}
