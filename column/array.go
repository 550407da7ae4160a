package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// arrayColumn implements Array(T): a monotonically non-decreasing u64
// cumulative-offset column plus a flat nested column holding every element
// of every row back to back. Prefix delegates to the nested column's
// prefix (§4.4.5).
type arrayColumn struct {
	nested  Column
	offsets []uint64
}

// NewArrayColumn wraps nested as an Array column. nested must be empty.
func NewArrayColumn(nested Column) Column {
	return &arrayColumn{nested: nested}
}

func (c *arrayColumn) Type() chtype.Type { return chtype.Array(c.nested.Type()) }
func (c *arrayColumn) Len() int          { return len(c.offsets) }

func (c *arrayColumn) AppendDefault() {
	c.offsets = append(c.offsets, c.lastOffset())
}

func (c *arrayColumn) Clear() {
	c.offsets = c.offsets[:0]
	c.nested.Clear()
}

func (c *arrayColumn) Reserve(n int) {
	if cap(c.offsets)-len(c.offsets) < n {
		grown := make([]uint64, len(c.offsets), len(c.offsets)+n)
		copy(grown, c.offsets)
		c.offsets = grown
	}
}

func (c *arrayColumn) LoadPrefix(r *wire.Reader, rows int) error {
	return c.nested.LoadPrefix(r, rows)
}

func (c *arrayColumn) SavePrefix(w *wire.Writer) error {
	return c.nested.SavePrefix(w)
}

func (c *arrayColumn) LoadBody(r *wire.Reader, rows int) error {
	offsets := make([]uint64, rows)
	var prev uint64
	for i := 0; i < rows; i++ {
		v, err := r.ReadFixed64()
		if err != nil {
			return errs.Protocol("array column offsets: %v", err)
		}
		if v < prev {
			return errs.Protocol("array column offsets: offset %d decreased from %d", v, prev)
		}
		offsets[i] = v
		prev = v
	}

	nestedLen := 0
	if rows > 0 {
		nestedLen = int(offsets[rows-1])
	}
	if err := c.nested.LoadBody(r, nestedLen); err != nil {
		return err
	}

	c.offsets = offsets

	return nil
}

func (c *arrayColumn) SaveBody(w *wire.Writer) error {
	for _, v := range c.offsets {
		w.WriteFixed64(v)
	}

	return c.nested.SaveBody(w)
}

func (c *arrayColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.offsets) {
		return nil, errs.InvalidInput("array column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.offsets))
	}

	elemBegin := 0
	if begin > 0 {
		elemBegin = int(c.offsets[begin-1])
	}
	elemEnd := elemBegin
	if n > 0 {
		elemEnd = int(c.offsets[begin+n-1])
	}

	nested, err := c.nested.Slice(elemBegin, elemEnd-elemBegin)
	if err != nil {
		return nil, err
	}

	out := &arrayColumn{nested: nested, offsets: make([]uint64, n)}
	for i := 0; i < n; i++ {
		out.offsets[i] = uint64(c.elemEnd(begin+i) - elemBegin)
	}

	return out, nil
}

func (c *arrayColumn) elemEnd(row int) int {
	return int(c.offsets[row])
}

func (c *arrayColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*arrayColumn)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into Array column")
	}
	if begin < 0 || n < 0 || begin+n > len(o.offsets) {
		return errs.InvalidInput("array column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.offsets))
	}

	elemBegin := 0
	if begin > 0 {
		elemBegin = int(o.offsets[begin-1])
	}
	elemEnd := elemBegin
	if n > 0 {
		elemEnd = int(o.offsets[begin+n-1])
	}

	if err := c.nested.AppendFrom(o.nested, elemBegin, elemEnd-elemBegin); err != nil {
		return err
	}

	base := c.lastOffset()
	for i := 0; i < n; i++ {
		c.offsets = append(c.offsets, base+uint64(int(o.offsets[begin+i])-elemBegin))
	}

	return nil
}

func (c *arrayColumn) lastOffset() uint64 {
	if len(c.offsets) == 0 {
		return 0
	}

	return c.offsets[len(c.offsets)-1]
}

// Nested returns the flat element column backing every row's array.
func (c *arrayColumn) Nested() Column { return c.nested }

// AppendSubArray appends one row whose k elements have already been pushed
// onto Nested() by the caller (§4.4.5's append_sub_array shape).
func (c *arrayColumn) AppendSubArray(k int) {
	c.offsets = append(c.offsets, c.lastOffset()+uint64(k))
}

// SubArrayBounds returns the [begin, end) element range backing row i.
func (c *arrayColumn) SubArrayBounds(i int) (begin, end int) {
	begin = 0
	if i > 0 {
		begin = int(c.offsets[i-1])
	}
	end = int(c.offsets[i])

	return begin, end
}
