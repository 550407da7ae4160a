// Package block (un)marshals the block envelope: BlockInfo, column count,
// row count, and one (name, type-name, optional prefix, body) tuple per
// column, per §4.5. It bridges the asynchronous transport layer
// (package transport) to the synchronous column codecs (package column).
package block

import (
	"bytes"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/column"
	"github.com/kasuga-db/chconn/compress"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/transport"
	"github.com/kasuga-db/chconn/wire"
)

// NamedColumn pairs a column with the name it carries on the wire.
type NamedColumn struct {
	Name   string
	Column column.Column
}

// Block is an ordered set of same-row-count named columns plus the small
// BlockInfo metadata every block carries.
type Block struct {
	Info    BlockInfo
	Columns []NamedColumn
}

// Rows returns the block's row count, taken from its first column. A
// columnless block (the empty marker block INSERT uses to end a stream)
// has zero rows.
func (b Block) Rows() int {
	if len(b.Columns) == 0 {
		return 0
	}
	return b.Columns[0].Column.Len()
}

// Read decodes one block from br. When compressed is true, the entire
// block body is expected wrapped in a single compression frame (Data,
// Totals, Extremes packets when compression was negotiated); when false it
// is read as raw bytes directly off the connection (Log, ProfileEvents,
// and any Data packet when compression was not negotiated).
//
// Any parse or consume failure aborts the read: the stream is left
// desynchronized and the caller must close the connection, per the protocol
// §4.5's failure semantics.
func Read(br *transport.Reader, rev uint64, compressed bool) (Block, error) {
	wr := br.Reader
	if compressed {
		payload, err := br.ReadFrame()
		if err != nil {
			return Block{}, err
		}
		wr = wire.NewReader(bytes.NewReader(payload))
	}

	info, err := readBlockInfo(wr, rev)
	if err != nil {
		return Block{}, err
	}

	numColumns, err := wr.ReadUvarint()
	if err != nil {
		return Block{}, err
	}
	numRows, err := wr.ReadUvarint()
	if err != nil {
		return Block{}, err
	}

	columns := make([]NamedColumn, numColumns)
	for i := range columns {
		col, err := readColumn(wr, rev, int(numRows))
		if err != nil {
			return Block{}, err
		}
		columns[i] = col
	}

	return Block{Info: info, Columns: columns}, nil
}

func readColumn(wr *wire.Reader, rev uint64, rows int) (NamedColumn, error) {
	name, err := wr.ReadString()
	if err != nil {
		return NamedColumn{}, err
	}

	typeName, err := wr.ReadString()
	if err != nil {
		return NamedColumn{}, err
	}

	typ, err := chtype.Parse(typeName)
	if err != nil {
		return NamedColumn{}, errs.Protocol("block: column %q: parse type %q: %v", name, typeName, err)
	}

	col, err := column.Factory(typ)
	if err != nil {
		return NamedColumn{}, errs.Protocol("block: column %q: %v", name, err)
	}

	if rev >= chtype.RevCustomSerialization {
		if err := col.LoadPrefix(wr, rows); err != nil {
			return NamedColumn{}, errs.Protocol("block: column %q: load prefix: %v", name, err)
		}
	}

	if err := col.LoadBody(wr, rows); err != nil {
		return NamedColumn{}, errs.Protocol("block: column %q: load body: %v", name, err)
	}

	return NamedColumn{Name: name, Column: col}, nil
}

// Write encodes b and sends it through bw. When method is not
// compress.MethodNone, the whole block body is wrapped in one compression
// frame; callers pass compress.MethodNone directly for packet kinds that
// are never framed (Log, ProfileEvents), regardless of the session's
// negotiated compression.
func Write(bw *transport.Writer, b Block, rev uint64, method compress.Method) error {
	scratch := wire.NewBlockWriter()
	defer scratch.Release()

	writeBlockInfo(scratch, b.Info, rev)

	rows := b.Rows()
	scratch.WriteUvarint(uint64(len(b.Columns)))
	scratch.WriteUvarint(uint64(rows))

	for _, nc := range b.Columns {
		if err := writeColumn(scratch, nc, rev, rows); err != nil {
			return err
		}
	}

	if method == compress.MethodNone {
		return bw.WriteRaw(scratch.Bytes())
	}
	return bw.WriteFrame(method, scratch.Bytes())
}

func writeColumn(scratch *wire.Writer, nc NamedColumn, rev uint64, rows int) error {
	if nc.Column.Len() != rows {
		return errs.InvalidInput("block: column %q has %d rows, want %d", nc.Name, nc.Column.Len(), rows)
	}

	scratch.WriteString(nc.Name)
	scratch.WriteString(nc.Column.Type().String())

	if rev >= chtype.RevCustomSerialization {
		if err := nc.Column.SavePrefix(scratch); err != nil {
			return errs.Protocol("block: column %q: save prefix: %v", nc.Name, err)
		}
	}

	if err := nc.Column.SaveBody(scratch); err != nil {
		return errs.Protocol("block: column %q: save body: %v", nc.Name, err)
	}

	return nil
}
