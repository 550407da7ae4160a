package proto

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// Hello is the server's handshake response.
type Hello struct {
	Name           string
	VersionMajor   uint64
	VersionMinor   uint64
	Revision       uint64
	ServerTimezone string
	DisplayName    string
	VersionPatch   uint64
}

// ReadHello decodes a Hello payload. Hello is never compressed.
func ReadHello(r *wire.Reader) (Hello, error) {
	var h Hello
	var err error

	if h.Name, err = r.ReadString(); err != nil {
		return Hello{}, err
	}
	if h.VersionMajor, err = r.ReadUvarint(); err != nil {
		return Hello{}, err
	}
	if h.VersionMinor, err = r.ReadUvarint(); err != nil {
		return Hello{}, err
	}
	if h.Revision, err = r.ReadUvarint(); err != nil {
		return Hello{}, err
	}
	if h.Revision >= chtype.RevServerTimezone {
		if h.ServerTimezone, err = r.ReadString(); err != nil {
			return Hello{}, err
		}
	}
	if h.Revision >= chtype.RevDisplayName {
		if h.DisplayName, err = r.ReadString(); err != nil {
			return Hello{}, err
		}
	}
	if h.Revision >= chtype.RevVersionPatch {
		if h.VersionPatch, err = r.ReadUvarint(); err != nil {
			return Hello{}, err
		}
	}

	return h, nil
}

// WriteHello encodes the client's Hello: client name, client version
// major/minor/revision, default database, user, password.
func WriteHello(w *wire.Writer, clientName string, versionMajor, versionMinor, revision uint64, database, user, password string) {
	w.WriteUvarint(uint64(ClientHello))
	w.WriteString(clientName)
	w.WriteUvarint(versionMajor)
	w.WriteUvarint(versionMinor)
	w.WriteUvarint(revision)
	w.WriteString(database)
	w.WriteString(user)
	w.WriteString(password)
}

// Exception mirrors a server-originated Exception packet, including its
// optional nested exception chain.
type Exception struct {
	Code       int32
	Name       string
	Message    string
	StackTrace string
	Nested     *Exception
}

// ReadException decodes an Exception payload, recursing through any nested
// chain. Exception is never compressed.
func ReadException(r *wire.Reader) (Exception, error) {
	var e Exception

	code, err := r.ReadFixed32()
	if err != nil {
		return Exception{}, err
	}
	e.Code = int32(code)

	if e.Name, err = r.ReadString(); err != nil {
		return Exception{}, err
	}
	if e.Message, err = r.ReadString(); err != nil {
		return Exception{}, err
	}
	if e.StackTrace, err = r.ReadString(); err != nil {
		return Exception{}, err
	}

	hasNested, err := r.ReadBool()
	if err != nil {
		return Exception{}, err
	}
	if hasNested {
		nested, err := ReadException(r)
		if err != nil {
			return Exception{}, err
		}
		e.Nested = &nested
	}

	return e, nil
}

// AsError converts e into the errs.ServerException error type, preserving
// its nested chain.
func (e Exception) AsError() error {
	var nested *errs.ServerException
	if e.Nested != nil {
		ne := e.Nested.AsError().(*errs.ServerException)
		nested = ne
	}

	return &errs.ServerException{
		Code:       e.Code,
		Name:       e.Name,
		Message:    e.Message,
		StackTrace: e.StackTrace,
		Nested:     nested,
	}
}

// Progress carries incremental query execution counters.
type Progress struct {
	Rows         uint64
	Bytes        uint64
	TotalRows    uint64
	WrittenRows  uint64
	WrittenBytes uint64
}

// ReadProgress decodes a Progress payload. Progress is never compressed.
func ReadProgress(r *wire.Reader, rev uint64) (Progress, error) {
	var p Progress
	var err error

	if p.Rows, err = r.ReadUvarint(); err != nil {
		return Progress{}, err
	}
	if p.Bytes, err = r.ReadUvarint(); err != nil {
		return Progress{}, err
	}
	if p.TotalRows, err = r.ReadUvarint(); err != nil {
		return Progress{}, err
	}
	if rev >= chtype.RevWrittenRowsBytes {
		if p.WrittenRows, err = r.ReadUvarint(); err != nil {
			return Progress{}, err
		}
		if p.WrittenBytes, err = r.ReadUvarint(); err != nil {
			return Progress{}, err
		}
	}

	return p, nil
}

// ProfileInfo carries final query execution statistics.
type ProfileInfo struct {
	Rows                      uint64
	Blocks                    uint64
	Bytes                     uint64
	AppliedLimit              bool
	RowsBeforeLimit           uint64
	CalculatedRowsBeforeLimit bool
}

// ReadProfileInfo decodes a ProfileInfo payload. Never compressed.
func ReadProfileInfo(r *wire.Reader) (ProfileInfo, error) {
	var p ProfileInfo
	var err error

	if p.Rows, err = r.ReadUvarint(); err != nil {
		return ProfileInfo{}, err
	}
	if p.Blocks, err = r.ReadUvarint(); err != nil {
		return ProfileInfo{}, err
	}
	if p.Bytes, err = r.ReadUvarint(); err != nil {
		return ProfileInfo{}, err
	}
	if p.AppliedLimit, err = r.ReadBool(); err != nil {
		return ProfileInfo{}, err
	}
	if p.RowsBeforeLimit, err = r.ReadUvarint(); err != nil {
		return ProfileInfo{}, err
	}
	if p.CalculatedRowsBeforeLimit, err = r.ReadBool(); err != nil {
		return ProfileInfo{}, err
	}

	return p, nil
}

// TableColumns names an external table and its column metadata string.
type TableColumns struct {
	Name             string
	ColumnsMetadata string
}

// ReadTableColumns decodes a TableColumns payload. Never compressed.
func ReadTableColumns(r *wire.Reader) (TableColumns, error) {
	var tc TableColumns
	var err error

	if tc.Name, err = r.ReadString(); err != nil {
		return TableColumns{}, err
	}
	if tc.ColumnsMetadata, err = r.ReadString(); err != nil {
		return TableColumns{}, err
	}

	return tc, nil
}
