package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// numericCodec supplies the per-element little-endian encode/decode for one
// fixed-width Go numeric type, so numericColumn[T] stays generic over T
// without resorting to unsafe reinterpretation of []T as []byte: every
// load/save still does exactly one allocation followed by one loop of
// per-element puts/gets, the same discipline mebo's
// NumericRawEncoder uses for float64, generalized here to every other
// fixed width instead of duplicating the loop once per width.
type numericCodec[T any] struct {
	width int
	put   func(buf []byte, v T)
	get   func(buf []byte) T
}

// numericColumn is the fixed-width numeric/date/IP codec family: body is
// rows*width little-endian bytes, no prefix (§4.4.1).
type numericColumn[T any] struct {
	noopPrefix
	typ    chtype.Type
	codec  numericCodec[T]
	values []T
}

func newNumericColumn[T any](typ chtype.Type, codec numericCodec[T]) *numericColumn[T] {
	return &numericColumn[T]{typ: typ, codec: codec}
}

func (c *numericColumn[T]) Type() chtype.Type { return c.typ }
func (c *numericColumn[T]) Len() int          { return len(c.values) }

func (c *numericColumn[T]) AppendDefault() {
	var zero T
	c.values = append(c.values, zero)
}

func (c *numericColumn[T]) Clear() { c.values = c.values[:0] }

func (c *numericColumn[T]) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]T, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *numericColumn[T]) LoadBody(r *wire.Reader, rows int) error {
	values := make([]T, rows)
	buf := make([]byte, c.codec.width)

	for i := 0; i < rows; i++ {
		if err := r.ReadFull(buf); err != nil {
			return errs.Protocol("numeric column body: %v", err)
		}
		values[i] = c.codec.get(buf)
	}
	c.values = values

	return nil
}

func (c *numericColumn[T]) SaveBody(w *wire.Writer) error {
	buf := make([]byte, c.codec.width)
	for _, v := range c.values {
		c.codec.put(buf, v)
		w.WriteRaw(buf)
	}

	return nil
}

func (c *numericColumn[T]) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.values) {
		return nil, errs.InvalidInput("numeric column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.values))
	}

	out := newNumericColumn(c.typ, c.codec)
	out.values = append([]T(nil), c.values[begin:begin+n]...)

	return out, nil
}

func (c *numericColumn[T]) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*numericColumn[T])
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into %s column", c.typ)
	}
	if begin < 0 || n < 0 || begin+n > len(o.values) {
		return errs.InvalidInput("numeric column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.values))
	}

	c.values = append(c.values, o.values[begin:begin+n]...)

	return nil
}

// Values returns the decoded values. The slice is valid until the next
// mutating call.
func (c *numericColumn[T]) Values() []T { return c.values }

// SetValues replaces the column's contents wholesale, used by callers
// building a column for INSERT.
func (c *numericColumn[T]) SetValues(values []T) { c.values = values }

func int8Codec() numericCodec[int8] {
	return numericCodec[int8]{width: 1,
		put: func(b []byte, v int8) { b[0] = byte(v) },
		get: func(b []byte) int8 { return int8(b[0]) },
	}
}

func uint8Codec() numericCodec[uint8] {
	return numericCodec[uint8]{width: 1,
		put: func(b []byte, v uint8) { b[0] = v },
		get: func(b []byte) uint8 { return b[0] },
	}
}

func int16Codec() numericCodec[int16] {
	return numericCodec[int16]{width: 2,
		put: func(b []byte, v int16) { wire.PutFixed16(b, uint16(v)) },
		get: func(b []byte) int16 { return int16(wire.Fixed16(b)) },
	}
}

func uint16Codec() numericCodec[uint16] {
	return numericCodec[uint16]{width: 2,
		put: func(b []byte, v uint16) { wire.PutFixed16(b, v) },
		get: func(b []byte) uint16 { return wire.Fixed16(b) },
	}
}

func int32Codec() numericCodec[int32] {
	return numericCodec[int32]{width: 4,
		put: func(b []byte, v int32) { wire.PutFixed32(b, uint32(v)) },
		get: func(b []byte) int32 { return int32(wire.Fixed32(b)) },
	}
}

func uint32Codec() numericCodec[uint32] {
	return numericCodec[uint32]{width: 4,
		put: func(b []byte, v uint32) { wire.PutFixed32(b, v) },
		get: func(b []byte) uint32 { return wire.Fixed32(b) },
	}
}

func int64Codec() numericCodec[int64] {
	return numericCodec[int64]{width: 8,
		put: func(b []byte, v int64) { wire.PutFixed64(b, uint64(v)) },
		get: func(b []byte) int64 { return int64(wire.Fixed64(b)) },
	}
}

func uint64Codec() numericCodec[uint64] {
	return numericCodec[uint64]{width: 8,
		put: func(b []byte, v uint64) { wire.PutFixed64(b, v) },
		get: func(b []byte) uint64 { return wire.Fixed64(b) },
	}
}

func float32Codec() numericCodec[float32] {
	return numericCodec[float32]{width: 4,
		put: func(b []byte, v float32) { wire.PutFixed32(b, float32bits(v)) },
		get: func(b []byte) float32 { return float32frombits(wire.Fixed32(b)) },
	}
}

func float64Codec() numericCodec[float64] {
	return numericCodec[float64]{width: 8,
		put: func(b []byte, v float64) { wire.PutFixed64(b, float64bits(v)) },
		get: func(b []byte) float64 { return float64frombits(wire.Fixed64(b)) },
	}
}

// Int128 is a 128-bit two's-complement integer represented as two uint64
// halves, low 64 bits first; used by Int128/UInt128/Decimal128 columns.
type Int128 struct {
	Lo uint64
	Hi uint64
}

func int128Codec() numericCodec[Int128] {
	return numericCodec[Int128]{width: 16,
		put: func(b []byte, v Int128) { wire.PutFixed128(b, v.Lo, v.Hi) },
		get: func(b []byte) Int128 { lo, hi := wire.Fixed128(b); return Int128{Lo: lo, Hi: hi} },
	}
}

// NewInt8Column creates an empty Int8 column.
func NewInt8Column() Column { return newNumericColumn(chtype.Int8(), int8Codec()) }

// NewInt16Column creates an empty Int16 column.
func NewInt16Column() Column { return newNumericColumn(chtype.Int16(), int16Codec()) }

// NewInt32Column creates an empty Int32 column.
func NewInt32Column() Column { return newNumericColumn(chtype.Int32(), int32Codec()) }

// NewInt64Column creates an empty Int64 column.
func NewInt64Column() Column { return newNumericColumn(chtype.Int64(), int64Codec()) }

// NewInt128Column creates an empty Int128 column.
func NewInt128Column() Column { return newNumericColumn(chtype.Int128(), int128Codec()) }

// NewUInt8Column creates an empty UInt8 column.
func NewUInt8Column() Column { return newNumericColumn(chtype.UInt8(), uint8Codec()) }

// NewUInt16Column creates an empty UInt16 column.
func NewUInt16Column() Column { return newNumericColumn(chtype.UInt16(), uint16Codec()) }

// NewUInt32Column creates an empty UInt32 column.
func NewUInt32Column() Column { return newNumericColumn(chtype.UInt32(), uint32Codec()) }

// NewUInt64Column creates an empty UInt64 column.
func NewUInt64Column() Column { return newNumericColumn(chtype.UInt64(), uint64Codec()) }

// NewUInt128Column creates an empty UInt128 column.
func NewUInt128Column() Column {
	t := chtype.UInt128()
	return newNumericColumn(t, int128Codec())
}

// NewFloat32Column creates an empty Float32 column.
func NewFloat32Column() Column { return newNumericColumn(chtype.Float32(), float32Codec()) }

// NewFloat64Column creates an empty Float64 column.
func NewFloat64Column() Column { return newNumericColumn(chtype.Float64(), float64Codec()) }

// NewDateColumn creates an empty Date column (u16 days since epoch).
func NewDateColumn() Column { return newNumericColumn(chtype.Date(), uint16Codec()) }

// NewDate32Column creates an empty Date32 column (i32 days since epoch).
func NewDate32Column() Column { return newNumericColumn(chtype.Date32(), int32Codec()) }

// NewDateTimeColumn creates an empty DateTime column (u32 seconds since epoch).
func NewDateTimeColumn(timezone string) Column {
	return newNumericColumn(chtype.DateTime(timezone), uint32Codec())
}

// NewDateTime64Column creates an empty DateTime64 column (i64 ticks at the
// given precision since epoch).
func NewDateTime64Column(precision int, timezone string) Column {
	return newNumericColumn(chtype.DateTime64(precision, timezone), int64Codec())
}
