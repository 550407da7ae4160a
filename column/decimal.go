package column

import (
	"encoding/binary"
	"math/big"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
)

// NewDecimalColumn creates an empty Decimal(p, s) column, backed by a
// signed integer column of the width p's precision implies (4/8/16 bytes,
// §4.4.9). Scale is metadata only and never affects the wire body. Every
// value handed to the column through SetValues/AppendFrom is checked
// against the precision bound 10^p-1 before being accepted (§7, §8);
// Decimal256 (width 32) falls outside the widths §3 enumerates and is
// rejected rather than given an incorrect backing representation.
func NewDecimalColumn(p, s int) (Column, error) {
	t := chtype.Decimal(p, s)

	switch t.DecimalWidth() {
	case 4:
		return &decimalColumn32{numericColumn: newNumericColumn(t, int32Codec()), bound: pow10Int64(p) - 1}, nil
	case 8:
		return &decimalColumn64{numericColumn: newNumericColumn(t, int64Codec()), bound: pow10Int64(p) - 1}, nil
	case 16:
		return &decimalColumn128{numericColumn: newNumericColumn(t, int128Codec()), bound: decimalBigBound(p)}, nil
	default:
		return nil, errs.Unsupported("column: Decimal256 (precision %d) has no supported backing width", p)
	}
}

// pow10Int64 computes 10^p exactly via repeated integer multiplication;
// used instead of math.Pow10 because p runs up to 18 here and a float64
// round-trip loses precision near the int64 boundary that matters for the
// bound comparison.
func pow10Int64(p int) int64 {
	v := int64(1)
	for i := 0; i < p; i++ {
		v *= 10
	}

	return v
}

// decimalBigBound computes 10^p-1 for p up to 38, out of int64 range for
// large p, via math/big.
func decimalBigBound(p int) *big.Int {
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(p)), nil)
	return bound.Sub(bound, big.NewInt(1))
}

// decimalColumn32 wraps a width-4 numeric column (Decimal(p<=9, s)),
// enforcing the append-time precision bound on the column's write surface.
type decimalColumn32 struct {
	*numericColumn[int32]
	bound int64
}

// SetValues replaces the column's contents, rejecting the call outright if
// any value falls outside [-(10^p-1), 10^p-1].
func (c *decimalColumn32) SetValues(values []int32) error {
	for _, v := range values {
		if int64(v) > c.bound || int64(v) < -c.bound {
			return errs.InvalidInput("decimal value %d exceeds precision bound +/-%d", v, c.bound)
		}
	}

	c.numericColumn.SetValues(values)

	return nil
}

func (c *decimalColumn32) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*decimalColumn32)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into %s column", c.Type())
	}
	for i := begin; i >= 0 && i < begin+n && i < len(o.values); i++ {
		if v := int64(o.values[i]); v > c.bound || v < -c.bound {
			return errs.InvalidInput("decimal value %d exceeds precision bound +/-%d", v, c.bound)
		}
	}

	return c.numericColumn.AppendFrom(o.numericColumn, begin, n)
}

// decimalColumn64 wraps a width-8 numeric column (Decimal(p<=18, s)).
type decimalColumn64 struct {
	*numericColumn[int64]
	bound int64
}

func (c *decimalColumn64) SetValues(values []int64) error {
	for _, v := range values {
		if v > c.bound || v < -c.bound {
			return errs.InvalidInput("decimal value %d exceeds precision bound +/-%d", v, c.bound)
		}
	}

	c.numericColumn.SetValues(values)

	return nil
}

func (c *decimalColumn64) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*decimalColumn64)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into %s column", c.Type())
	}
	for i := begin; i >= 0 && i < begin+n && i < len(o.values); i++ {
		if v := o.values[i]; v > c.bound || v < -c.bound {
			return errs.InvalidInput("decimal value %d exceeds precision bound +/-%d", v, c.bound)
		}
	}

	return c.numericColumn.AppendFrom(o.numericColumn, begin, n)
}

// decimalColumn128 wraps a width-16 numeric column (Decimal(p<=38, s)).
// The bound exceeds int64 range for p beyond 18, so values are compared
// via math/big rather than native integer arithmetic.
type decimalColumn128 struct {
	*numericColumn[Int128]
	bound *big.Int
}

func (c *decimalColumn128) SetValues(values []Int128) error {
	for _, v := range values {
		x := int128ToBigInt(v)
		if new(big.Int).Abs(x).Cmp(c.bound) > 0 {
			return errs.InvalidInput("decimal value %s exceeds precision bound +/-%s", x.String(), c.bound.String())
		}
	}

	c.numericColumn.SetValues(values)

	return nil
}

func (c *decimalColumn128) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*decimalColumn128)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into %s column", c.Type())
	}
	for i := begin; i >= 0 && i < begin+n && i < len(o.values); i++ {
		if x := int128ToBigInt(o.values[i]); new(big.Int).Abs(x).Cmp(c.bound) > 0 {
			return errs.InvalidInput("decimal value %s exceeds precision bound +/-%s", x.String(), c.bound.String())
		}
	}

	return c.numericColumn.AppendFrom(o.numericColumn, begin, n)
}

// int128ToBigInt reinterprets v's two's-complement 128-bit pattern as a
// math/big integer.
func int128ToBigInt(v Int128) *big.Int {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[0:8], v.Hi)
	binary.BigEndian.PutUint64(buf[8:16], v.Lo)

	x := new(big.Int).SetBytes(buf)
	if v.Hi&(1<<63) != 0 {
		x.Sub(x, new(big.Int).Lsh(big.NewInt(1), 128))
	}

	return x
}
