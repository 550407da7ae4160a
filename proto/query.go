package proto

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/wire"
)

// QueryStage identifies how far the server should carry a query. This
// module only ever asks for the final result, so StageComplete is the
// only stage it sends.
type QueryStage uint64

// StageComplete requests the full query pipeline, through to the final
// result blocks.
const StageComplete QueryStage = 2

// Query is everything needed to build a ClientQuery packet.
type Query struct {
	ID         string
	Info       ClientInfo
	Settings   map[string]string
	Compressed bool
	Text       string
	Params     map[string]string
}

// WriteQuery encodes the ClientQuery packet: code, query id, client info,
// settings (if the revision carries them), stage, a compression flag, the
// query text, and parameters (if the revision carries them).
//
// It does not write the empty external-tables terminator block; the
// caller sends that as a separate ClientData packet via WriteDataHeader
// and block.Write, since on the wire it is a distinct packet rather than
// part of the Query payload.
func WriteQuery(w *wire.Writer, q Query, rev uint64) {
	w.WriteUvarint(uint64(ClientQuery))
	w.WriteString(q.ID)

	WriteClientInfo(w, q.Info, rev)

	if rev >= chtype.RevSettingsAsStrings {
		WriteSettings(w, q.Settings)
	}

	w.WriteUvarint(uint64(StageComplete))
	if q.Compressed {
		w.WriteFixed8(1)
	} else {
		w.WriteFixed8(0)
	}

	w.WriteString(q.Text)

	if rev >= chtype.RevParameters {
		WriteParams(w, q.Params)
	}
}

// WriteDataHeader encodes a ClientData packet's packet-level header: the
// packet code and the temporary-table name the following Block belongs
// to. The caller writes the Block itself with block.Write. An empty
// tableName paired with an empty Block marks the end of the client's
// external tables (none are supported) or, during INSERT, the end of the
// inserted rows.
func WriteDataHeader(w *wire.Writer, tableName string) {
	w.WriteUvarint(uint64(ClientData))
	w.WriteString(tableName)
}

// WritePing encodes a ClientPing packet.
func WritePing(w *wire.Writer) {
	w.WriteUvarint(uint64(ClientPing))
}

// WriteCancel encodes a ClientCancel packet.
func WriteCancel(w *wire.Writer) {
	w.WriteUvarint(uint64(ClientCancel))
}

// ResolveMethod is the small helper session uses when deciding whether to
// frame outgoing data blocks; kept here so the Query/Data packet helpers
// and block-write call sites agree on the same mapping from "compression
// negotiated" to compress.Method.
func ResolveMethod(negotiated bool, method compress.Method) compress.Method {
	if !negotiated {
		return compress.MethodNone
	}
	return method
}
