package session

import (
	"context"

	"github.com/kasuga-db/chconn/block"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/proto"
)

// QueryOptions customizes a single Execute call.
type QueryOptions struct {
	QueryID  string
	Settings Settings
	Params   Params
	Trace    *proto.TraceContext

	// OnProgress, OnProfile, OnProfileEvents, OnServerLog, and OnData mirror
	// proto.Callbacks; any left nil is simply not invoked. OnData returning
	// false makes Execute send Cancel and keep draining until EndOfStream.
	OnProgress      func(proto.Progress)
	OnProfile       func(proto.ProfileInfo)
	OnProfileEvents func(block.Block)
	OnServerLog     func(block.Block)
	OnData          func(block.Block) bool
}

// Execute runs query as a SELECT: it sends the Query packet, the empty
// external-tables terminator, then drives the router loop until
// EndOfStream or a ServerException, surfacing result blocks via
// opts.OnData.
func (s *Session) Execute(ctx context.Context, query string, opts QueryOptions) error {
	if s.opts.pingBeforeQuery {
		if err := s.Ping(ctx); err != nil {
			return err
		}
	}

	rev := s.revision()
	negotiated, method := s.negotiatedCompression()

	if err := s.sendQuery(ctx, query, opts, negotiated); err != nil {
		return err
	}

	rt := proto.NewRouter(s.conn, rev, negotiated, method, proto.Callbacks{
		OnProgress:      opts.OnProgress,
		OnProfile:       opts.OnProfile,
		OnProfileEvents: opts.OnProfileEvents,
		OnServerLog:     opts.OnServerLog,
		OnData:          opts.OnData,
	})

	cancelled := false
	for {
		done, keepGoing, err := rt.Next(ctx)
		if err != nil {
			return err
		}
		if done == proto.EndOfStream {
			return nil
		}
		if !keepGoing && !cancelled {
			cancelled = true
			if err := s.Cancel(ctx); err != nil {
				return err
			}
		}
	}
}

// sendQuery writes the Query packet followed by the empty data block that
// marks the end of the (always-empty) external-tables list.
func (s *Session) sendQuery(ctx context.Context, text string, opts QueryOptions, negotiated bool) error {
	if err := s.conn.BindWriteDeadline(ctx); err != nil {
		return err
	}

	rev := s.revision()
	ci := s.clientInfo()
	ci.Trace = opts.Trace

	scratch := scratchWriter()
	defer scratch.Release()
	proto.WriteQuery(scratch, proto.Query{
		ID:         opts.QueryID,
		Info:       ci,
		Settings:   opts.Settings,
		Compressed: negotiated,
		Text:       text,
		Params:     opts.Params,
	}, rev)
	if err := s.conn.Writer().WriteRaw(scratch.Bytes()); err != nil {
		return err
	}

	if err := s.writeEmptyDataBlock(rev); err != nil {
		return err
	}

	return s.conn.Writer().Flush()
}

// writeEmptyDataBlock writes a ClientData packet carrying the zero-column,
// zero-row marker block, unframed (no compression is ever applied to this
// marker).
func (s *Session) writeEmptyDataBlock(rev uint64) error {
	header := scratchWriter()
	defer header.Release()
	proto.WriteDataHeader(header, "")
	if err := s.conn.Writer().WriteRaw(header.Bytes()); err != nil {
		return err
	}
	return block.Write(s.conn.Writer(), block.Block{Info: block.BlockInfo{BucketNum: -1}}, rev, compress.MethodNone)
}
