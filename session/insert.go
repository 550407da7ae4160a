package session

import (
	"context"
	"strings"

	"github.com/kasuga-db/chconn/block"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/proto"
)

// Insert runs the transport-level INSERT state machine of §4.8 against
// table, sending rows in a single Data block. It builds
// "INSERT INTO <table>(<cols>) VALUES" from rows' own column names (never
// "FORMAT Native"), then drives:
//
//	SENT_QUERY  -> TableColumns | Data(header) | Exception | Log | Progress*
//	READY       -> client sends rows, then an empty end-of-stream marker
//	DRAINING    -> ProfileEvents* | Progress* | EndOfStream | Exception
//
// The header Data packet's body is the empty-row block carrying the
// column schema the server expects for table (§4.8): N columns, 0 rows.
// Its payload is fully consumed, and its column count cross-checked
// against rows, before Insert enters READY.
func (s *Session) Insert(ctx context.Context, table string, rows block.Block) error {
	if s.opts.pingBeforeQuery {
		if err := s.Ping(ctx); err != nil {
			return err
		}
	}

	rev := s.revision()
	negotiated, method := s.negotiatedCompression()

	if err := s.sendInsertQuery(ctx, table, rows, negotiated); err != nil {
		return err
	}

	rt := proto.NewRouter(s.conn, rev, negotiated, method, proto.Callbacks{})

	header, err := s.awaitInsertHeader(ctx, rt)
	if err != nil {
		return err
	}
	if len(header.Columns) != 0 && len(header.Columns) != len(rows.Columns) {
		return errs.Protocol("session: insert: server schema has %d columns, rows has %d", len(header.Columns), len(rows.Columns))
	}

	if err := s.sendInsertData(ctx, rows, rev, negotiated, method); err != nil {
		return err
	}

	return s.drainInsert(ctx, rt)
}

// sendInsertQuery writes the INSERT Query packet followed by the empty
// external-tables terminator block, exactly as a SELECT's Query does.
func (s *Session) sendInsertQuery(ctx context.Context, table string, rows block.Block, negotiated bool) error {
	if err := s.conn.BindWriteDeadline(ctx); err != nil {
		return err
	}

	rev := s.revision()

	cols := make([]string, len(rows.Columns))
	for i, nc := range rows.Columns {
		cols[i] = quoteIdentifier(nc.Name)
	}
	text := "INSERT INTO " + quoteIdentifier(table) + "(" + strings.Join(cols, ", ") + ") VALUES"

	scratch := scratchWriter()
	defer scratch.Release()
	proto.WriteQuery(scratch, proto.Query{
		Info:       s.clientInfo(),
		Compressed: negotiated,
		Text:       text,
	}, rev)
	if err := s.conn.Writer().WriteRaw(scratch.Bytes()); err != nil {
		return errs.IO("session: write insert query", err)
	}

	if err := s.writeEmptyDataBlock(rev); err != nil {
		return err
	}

	return s.conn.Writer().Flush()
}

// awaitInsertHeader drains packets until the server's header Data block
// arrives and returns it: the empty block whose column schema the server
// expects for the target table (§4.8), meaning zero rows but, in general,
// the table's actual column count rather than zero. TableColumns/Log/
// Progress/ProfileEvents packets preceding it are consumed and discarded;
// an Exception or an EndOfStream arriving first is an error.
func (s *Session) awaitInsertHeader(ctx context.Context, rt *proto.Router) (block.Block, error) {
	var header block.Block
	gotHeader := false
	rt.SetOnData(func(b block.Block) bool {
		header = b
		gotHeader = true
		return true
	})

	for !gotHeader {
		done, _, err := rt.Next(ctx)
		if err != nil {
			return block.Block{}, err
		}
		if done == proto.EndOfStream {
			return block.Block{}, errs.Protocol("session: insert: server ended stream before sending the header block")
		}
	}

	if header.Rows() != 0 {
		return block.Block{}, errs.Protocol("session: insert: header block carries %d rows, want the empty schema-only marker", header.Rows())
	}

	return header, nil
}

// sendInsertData writes rows as a single compressed-or-raw Data packet
// (per the negotiated method) followed by the empty block that marks the
// end of the client's insert stream.
func (s *Session) sendInsertData(ctx context.Context, rows block.Block, rev uint64, negotiated bool, method compress.Method) error {
	if err := s.conn.BindWriteDeadline(ctx); err != nil {
		return err
	}

	header := scratchWriter()
	defer header.Release()
	proto.WriteDataHeader(header, "")
	if err := s.conn.Writer().WriteRaw(header.Bytes()); err != nil {
		return errs.IO("session: write insert data header", err)
	}
	if err := block.Write(s.conn.Writer(), rows, rev, proto.ResolveMethod(negotiated, method)); err != nil {
		return err
	}

	if err := s.writeEmptyDataBlock(rev); err != nil {
		return err
	}

	return s.conn.Writer().Flush()
}

// drainInsert reads ProfileEvents/Progress packets (discarded; Insert has
// no callback surface of its own, per §6's insert(table_name, block)
// operation signature) until EndOfStream or an Exception.
func (s *Session) drainInsert(ctx context.Context, rt *proto.Router) error {
	rt.SetOnData(nil)
	for {
		done, _, err := rt.Next(ctx)
		if err != nil {
			return err
		}
		if done == proto.EndOfStream {
			return nil
		}
	}
}

// quoteIdentifier wraps name in backticks, doubling any embedded backtick,
// for inline use in the generated INSERT statement text.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}
