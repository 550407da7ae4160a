// Package chtype represents the logical type grammar the server sends as a
// string in per-column metadata (e.g. "Nullable(Array(UInt64))") and the
// canonical printer that reproduces that string from a Type value. Package
// column instantiates one codec per Kind by recursing over a parsed Type.
package chtype

// Kind identifies which member of the logical type sum a Type value is.
type Kind int

const (
	KindInvalid Kind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUInt128
	KindFloat32
	KindFloat64
	KindUUID
	KindIPv4
	KindIPv6
	KindDate
	KindDate32
	KindDateTime
	KindDateTime64
	KindDecimal
	KindString
	KindFixedString
	KindEnum8
	KindEnum16
	KindNothing
	KindNullable
	KindArray
	KindTuple
	KindMap
	KindLowCardinality
	KindAggregateFunction
)

var kindNames = map[Kind]string{
	KindInt8:              "Int8",
	KindInt16:             "Int16",
	KindInt32:             "Int32",
	KindInt64:             "Int64",
	KindInt128:            "Int128",
	KindUInt8:             "UInt8",
	KindUInt16:            "UInt16",
	KindUInt32:            "UInt32",
	KindUInt64:            "UInt64",
	KindUInt128:           "UInt128",
	KindFloat32:           "Float32",
	KindFloat64:           "Float64",
	KindUUID:              "UUID",
	KindIPv4:              "IPv4",
	KindIPv6:              "IPv6",
	KindDate:              "Date",
	KindDate32:            "Date32",
	KindDateTime:          "DateTime",
	KindDateTime64:        "DateTime64",
	KindDecimal:           "Decimal",
	KindString:            "String",
	KindFixedString:       "FixedString",
	KindEnum8:             "Enum8",
	KindEnum16:            "Enum16",
	KindNothing:           "Nothing",
	KindNullable:          "Nullable",
	KindArray:             "Array",
	KindTuple:             "Tuple",
	KindMap:               "Map",
	KindLowCardinality:    "LowCardinality",
	KindAggregateFunction: "AggregateFunction",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return "Invalid"
}

// primitiveKinds maps the bare primitive type names the parser recognizes
// with no argument list to their Kind.
var primitiveKinds = map[string]Kind{
	"Int8":     KindInt8,
	"Int16":    KindInt16,
	"Int32":    KindInt32,
	"Int64":    KindInt64,
	"Int128":   KindInt128,
	"UInt8":    KindUInt8,
	"UInt16":   KindUInt16,
	"UInt32":   KindUInt32,
	"UInt64":   KindUInt64,
	"UInt128":  KindUInt128,
	"Float32":  KindFloat32,
	"Float64":  KindFloat64,
	"UUID":     KindUUID,
	"IPv4":     KindIPv4,
	"IPv6":     KindIPv6,
	"Date":     KindDate,
	"Date32":   KindDate32,
	"String":   KindString,
	"Nothing":  KindNothing,
}
