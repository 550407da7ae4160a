package proto

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/wire"
)

// TraceContext is the OpenTelemetry span context propagated on a Query
// packet when the caller supplies one, gated by chtype.RevOpenTelemetry.
// (ADDED: §4.8 names "OpenTelemetry context when present" but does
// not give its wire shape; this is the concrete layout.)
type TraceContext struct {
	TraceID    [16]byte
	SpanID     uint64
	TraceState string
	TraceFlags uint8
}

// ClientInfo describes the querying client and, for distributed queries,
// the query's originator. Nothing is written below chtype.RevClientInfo;
// QuotaKey, VersionPatch, and Trace are further gated by their own
// revisions, while DistributedDepth is written whenever RevClientInfo is met.
type ClientInfo struct {
	QueryKind        byte
	InitialUser      string
	InitialQueryID   string
	InitialAddress   string
	Interface        byte
	OSUser           string
	ClientHostname   string
	ClientName       string
	VersionMajor     uint64
	VersionMinor     uint64
	ClientRevision   uint64
	QuotaKey         string
	DistributedDepth uint64
	VersionPatch     uint64
	Trace            *TraceContext
}

// QueryKind values, mirroring the server's own enum.
const (
	QueryKindNoQuery   byte = 0
	QueryKindInitial   byte = 1
	QueryKindSecondary byte = 2
)

// InterfaceTCP is the only client interface this module implements.
const InterfaceTCP byte = 1

// WriteClientInfo writes ci inline into a Query packet, gated on rev.
func WriteClientInfo(w *wire.Writer, ci ClientInfo, rev uint64) {
	if rev < chtype.RevClientInfo {
		return
	}

	w.WriteFixed8(ci.QueryKind)
	if ci.QueryKind == QueryKindNoQuery {
		return
	}

	w.WriteString(ci.InitialUser)
	w.WriteString(ci.InitialQueryID)
	w.WriteString(ci.InitialAddress)
	w.WriteFixed8(ci.Interface)
	w.WriteString(ci.OSUser)
	w.WriteString(ci.ClientHostname)
	w.WriteString(ci.ClientName)
	w.WriteUvarint(ci.VersionMajor)
	w.WriteUvarint(ci.VersionMinor)
	w.WriteUvarint(ci.ClientRevision)

	if rev >= chtype.RevQuotaKeyInClientInfo {
		w.WriteString(ci.QuotaKey)
	}
	w.WriteUvarint(ci.DistributedDepth)
	if rev >= chtype.RevVersionPatch {
		w.WriteUvarint(ci.VersionPatch)
	}

	if rev >= chtype.RevOpenTelemetry {
		if ci.Trace != nil {
			w.WriteBool(true)
			w.WriteFixed128(beUint64(ci.Trace.TraceID[0:8]), beUint64(ci.Trace.TraceID[8:16]))
			w.WriteFixed64(ci.Trace.SpanID)
			w.WriteString(ci.Trace.TraceState)
			w.WriteFixed8(ci.Trace.TraceFlags)
		} else {
			w.WriteBool(false)
		}
	}
}

func beUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// WriteSettings writes a name->value settings map inline, each entry as
// (name string, is_custom:u8=0, value string), terminated by an
// empty-name entry. (ADDED: §4.8 names the settings map but not
// its wire shape; this reuses the tagged-repetition idiom BlockInfo's
// field stream already establishes.)
func WriteSettings(w *wire.Writer, settings map[string]string) {
	for name, value := range settings {
		w.WriteString(name)
		w.WriteFixed8(0)
		w.WriteString(value)
	}
	w.WriteString("")
}

// ReadSettings is the symmetric decoder, used by a server-role test harness
// and by documentation; the client never reads this shape off the wire in
// normal operation.
func ReadSettings(r *wire.Reader) (map[string]string, error) {
	settings := make(map[string]string)
	for {
		name, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if name == "" {
			return settings, nil
		}
		if _, err := r.ReadFixed8(); err != nil {
			return nil, err
		}
		value, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		settings[name] = value
	}
}

// WriteParams writes a query-parameters map using the same shape as
// WriteSettings.
func WriteParams(w *wire.Writer, params map[string]string) {
	WriteSettings(w, params)
}
