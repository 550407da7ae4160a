package column

import "github.com/kasuga-db/chconn/chtype"

// NewEnum8Column creates an empty Enum8 column: storage is a plain signed
// 8-bit integer column, the name<->value map is metadata only (the protocol
// §4.4.10) and is carried entirely in the Type returned by Type(), not in
// the wire body.
func NewEnum8Column(values []chtype.EnumValue) Column {
	return newNumericColumn(chtype.Enum8(values), int8Codec())
}

// NewEnum16Column creates an empty Enum16 column: storage is a plain
// signed 16-bit integer column.
func NewEnum16Column(values []chtype.EnumValue) Column {
	return newNumericColumn(chtype.Enum16(values), int16Codec())
}
