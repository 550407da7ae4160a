package column

import (
	"github.com/google/uuid"

	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// uuidColumn stores UUID values as their two little-endian 64-bit halves,
// high half first then low half, per §4.4.1 — the one fixed-width
// kind whose half order differs from the generic numericColumn[Int128],
// which is why it gets its own type instead of reusing int128Codec.
type uuidColumn struct {
	noopPrefix
	values []Int128
}

// NewUUIDColumn creates an empty UUID column.
func NewUUIDColumn() Column { return &uuidColumn{} }

func (c *uuidColumn) Type() chtype.Type { return chtype.UUID() }
func (c *uuidColumn) Len() int          { return len(c.values) }
func (c *uuidColumn) AppendDefault()    { c.values = append(c.values, Int128{}) }
func (c *uuidColumn) Clear()            { c.values = c.values[:0] }

func (c *uuidColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]Int128, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *uuidColumn) LoadBody(r *wire.Reader, rows int) error {
	values := make([]Int128, rows)
	for i := 0; i < rows; i++ {
		hi, err := r.ReadFixed64()
		if err != nil {
			return errs.Protocol("uuid column body: %v", err)
		}
		lo, err := r.ReadFixed64()
		if err != nil {
			return errs.Protocol("uuid column body: %v", err)
		}
		values[i] = Int128{Lo: lo, Hi: hi}
	}
	c.values = values

	return nil
}

func (c *uuidColumn) SaveBody(w *wire.Writer) error {
	for _, v := range c.values {
		w.WriteFixed64(v.Hi)
		w.WriteFixed64(v.Lo)
	}

	return nil
}

func (c *uuidColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.values) {
		return nil, errs.InvalidInput("uuid column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.values))
	}

	return &uuidColumn{values: append([]Int128(nil), c.values[begin:begin+n]...)}, nil
}

func (c *uuidColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*uuidColumn)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into UUID column")
	}
	if begin < 0 || n < 0 || begin+n > len(o.values) {
		return errs.InvalidInput("uuid column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.values))
	}

	c.values = append(c.values, o.values[begin:begin+n]...)

	return nil
}

// At returns row i as a uuid.UUID.
func (c *uuidColumn) At(i int) uuid.UUID {
	var out uuid.UUID
	wire.PutFixed64(out[0:8], c.values[i].Hi)
	wire.PutFixed64(out[8:16], c.values[i].Lo)

	return out
}

// Append appends u as a new row.
func (c *uuidColumn) Append(u uuid.UUID) {
	hi := wire.Fixed64(u[0:8])
	lo := wire.Fixed64(u[8:16])
	c.values = append(c.values, Int128{Lo: lo, Hi: hi})
}
