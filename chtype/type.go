package chtype

import "fmt"

// EnumValue is one name/value pair of an Enum8 or Enum16 type.
type EnumValue struct {
	Name  string
	Value int16
}

// Type is the sum type over every logical type the wire protocol can carry
// in column metadata. Only the fields relevant to Kind are populated; the
// rest are left at their zero value.
type Type struct {
	Kind Kind

	// FixedString(N)
	FixedStringLength int

	// Decimal(P,S)
	DecimalPrecision int
	DecimalScale     int

	// DateTime64(P[,tz]); DateTime([tz]) only uses Timezone
	DateTimePrecision int
	Timezone          string

	// Enum8/Enum16
	EnumValues []EnumValue

	// Nullable(Elem), Array(Elem), LowCardinality(Elem)
	Elem *Type

	// Tuple(Elems...), Map(Elems[0]=K, Elems[1]=V)
	Elems []Type

	// AggregateFunction(Name, Elems...)
	AggregateFunctionName string
}

// DecimalWidth returns the backing byte width for a Decimal type: 4 bytes
// for precision <= 9, 8 for <= 18, 16 for <= 38, and 32 for <= 76. It reads
// only DecimalPrecision and does not check Kind; it panics for a precision
// above 76. Callers validate precision at parse/construction time.
func (t Type) DecimalWidth() int {
	switch {
	case t.DecimalPrecision <= 9:
		return 4
	case t.DecimalPrecision <= 18:
		return 8
	case t.DecimalPrecision <= 38:
		return 16
	case t.DecimalPrecision <= 76:
		return 32
	default:
		panic(fmt.Sprintf("chtype: decimal precision %d out of range", t.DecimalPrecision))
	}
}

// IntWidth returns the byte width of the backing integer for Enum8 (1) and
// Enum16 (2) types.
func (t Type) IntWidth() int {
	switch t.Kind {
	case KindEnum8:
		return 1
	case KindEnum16:
		return 2
	default:
		panic(fmt.Sprintf("chtype: IntWidth called on %s", t.Kind))
	}
}

// Validate enforces the nesting restrictions §3 requires at type
// construction: Nullable may not directly wrap Array, Map, Tuple, or
// LowCardinality. The check is applied to every nested type recursively;
// no other nesting is rejected.
func (t Type) Validate() error {
	if t.Kind == KindNullable {
		switch t.Elem.Kind {
		case KindArray, KindMap, KindTuple, KindLowCardinality:
			return fmt.Errorf("chtype: Nullable(%s) is not a valid nesting", t.Elem.Kind)
		}
	}

	if t.Elem != nil {
		if err := t.Elem.Validate(); err != nil {
			return err
		}
	}
	for i := range t.Elems {
		if err := t.Elems[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// Nullable wraps t in a Nullable(t) type.
func Nullable(t Type) Type { return Type{Kind: KindNullable, Elem: &t} }

// Array wraps t in an Array(t) type.
func Array(t Type) Type { return Type{Kind: KindArray, Elem: &t} }

// LowCardinality wraps t in a LowCardinality(t) type.
func LowCardinality(t Type) Type { return Type{Kind: KindLowCardinality, Elem: &t} }

// Tuple builds a Tuple(elems...) type.
func Tuple(elems ...Type) Type { return Type{Kind: KindTuple, Elems: elems} }

// Map builds a Map(k, v) type, stored identically to Array(Tuple(k, v)).
func Map(k, v Type) Type { return Type{Kind: KindMap, Elems: []Type{k, v}} }

// FixedString builds a FixedString(n) type.
func FixedString(n int) Type { return Type{Kind: KindFixedString, FixedStringLength: n} }

// Decimal builds a Decimal(p, s) type.
func Decimal(p, s int) Type { return Type{Kind: KindDecimal, DecimalPrecision: p, DecimalScale: s} }

// Simple primitive constructors, one per parameterless Kind.
func Int8() Type       { return Type{Kind: KindInt8} }
func Int16() Type      { return Type{Kind: KindInt16} }
func Int32() Type      { return Type{Kind: KindInt32} }
func Int64() Type      { return Type{Kind: KindInt64} }
func Int128() Type     { return Type{Kind: KindInt128} }
func UInt8() Type      { return Type{Kind: KindUInt8} }
func UInt16() Type     { return Type{Kind: KindUInt16} }
func UInt32() Type     { return Type{Kind: KindUInt32} }
func UInt64() Type     { return Type{Kind: KindUInt64} }
func UInt128() Type    { return Type{Kind: KindUInt128} }
func Float32() Type    { return Type{Kind: KindFloat32} }
func Float64() Type    { return Type{Kind: KindFloat64} }
func UUID() Type       { return Type{Kind: KindUUID} }
func IPv4() Type       { return Type{Kind: KindIPv4} }
func IPv6() Type       { return Type{Kind: KindIPv6} }
func Date() Type       { return Type{Kind: KindDate} }
func Date32() Type     { return Type{Kind: KindDate32} }
func String() Type     { return Type{Kind: KindString} }
func Nothing() Type    { return Type{Kind: KindNothing} }

// DateTime builds a DateTime([tz]) type.
func DateTime(timezone string) Type { return Type{Kind: KindDateTime, Timezone: timezone} }

// DateTime64 builds a DateTime64(p[,tz]) type.
func DateTime64(precision int, timezone string) Type {
	return Type{Kind: KindDateTime64, DateTimePrecision: precision, Timezone: timezone}
}

// Enum8 builds an Enum8(values...) type.
func Enum8(values []EnumValue) Type { return Type{Kind: KindEnum8, EnumValues: values} }

// Enum16 builds an Enum16(values...) type.
func Enum16(values []EnumValue) Type { return Type{Kind: KindEnum16, EnumValues: values} }

// Geo aliases, expanded eagerly since the wire format has no dedicated Kind
// for them (§3): Point=Tuple(Float64,Float64), Ring=Array(Point),
// Polygon=Array(Ring), MultiPolygon=Array(Polygon).
func Point() Type        { return Tuple(Float64(), Float64()) }
func Ring() Type         { return Array(Point()) }
func Polygon() Type      { return Array(Ring()) }
func MultiPolygon() Type { return Array(Polygon()) }
