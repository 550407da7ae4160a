package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// nullableColumn implements Nullable(T): a parallel null-flag byte column
// plus a nested T column. Prefix delegates to the nested column's prefix
// (§4.4.4).
type nullableColumn struct {
	nested Column
	nulls  []byte
}

// NewNullableColumn wraps nested as a Nullable column. nested must be empty.
func NewNullableColumn(nested Column) Column {
	return &nullableColumn{nested: nested}
}

func (c *nullableColumn) Type() chtype.Type { return chtype.Nullable(c.nested.Type()) }
func (c *nullableColumn) Len() int          { return len(c.nulls) }

func (c *nullableColumn) AppendDefault() {
	c.nulls = append(c.nulls, 1)
	c.nested.AppendDefault()
}

func (c *nullableColumn) Clear() {
	c.nulls = c.nulls[:0]
	c.nested.Clear()
}

func (c *nullableColumn) Reserve(n int) {
	if cap(c.nulls)-len(c.nulls) < n {
		grown := make([]byte, len(c.nulls), len(c.nulls)+n)
		copy(grown, c.nulls)
		c.nulls = grown
	}
	c.nested.Reserve(n)
}

func (c *nullableColumn) LoadPrefix(r *wire.Reader, rows int) error {
	return c.nested.LoadPrefix(r, rows)
}

func (c *nullableColumn) SavePrefix(w *wire.Writer) error {
	return c.nested.SavePrefix(w)
}

func (c *nullableColumn) LoadBody(r *wire.Reader, rows int) error {
	flags := make([]byte, rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadFixed8()
		if err != nil {
			return errs.Protocol("nullable column null-flags: %v", err)
		}
		flags[i] = b
	}

	if err := c.nested.LoadBody(r, rows); err != nil {
		return err
	}

	c.nulls = flags

	return nil
}

func (c *nullableColumn) SaveBody(w *wire.Writer) error {
	for _, b := range c.nulls {
		w.WriteFixed8(b)
	}

	return c.nested.SaveBody(w)
}

func (c *nullableColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.nulls) {
		return nil, errs.InvalidInput("nullable column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.nulls))
	}

	nested, err := c.nested.Slice(begin, n)
	if err != nil {
		return nil, err
	}

	return &nullableColumn{
		nested: nested,
		nulls:  append([]byte(nil), c.nulls[begin:begin+n]...),
	}, nil
}

func (c *nullableColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*nullableColumn)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into Nullable column")
	}
	if begin < 0 || n < 0 || begin+n > len(o.nulls) {
		return errs.InvalidInput("nullable column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.nulls))
	}

	if err := c.nested.AppendFrom(o.nested, begin, n); err != nil {
		return err
	}
	c.nulls = append(c.nulls, o.nulls[begin:begin+n]...)

	return nil
}

// Nested returns the wrapped non-null column, so callers can append values
// to it directly before calling AppendNonNull.
func (c *nullableColumn) Nested() Column { return c.nested }

// IsNull reports whether row i is null.
func (c *nullableColumn) IsNull(i int) bool { return c.nulls[i] != 0 }

// AppendNull appends a null row: the nested column receives its default
// value as a placeholder and the null flag is set, per §4.4.4.
func (c *nullableColumn) AppendNull() {
	c.nested.AppendDefault()
	c.nulls = append(c.nulls, 1)
}

// AppendNonNull records a non-null row whose value the caller has already
// appended to Nested(). The nested column's length must already reflect
// the new row before this is called.
func (c *nullableColumn) AppendNonNull() {
	c.nulls = append(c.nulls, 0)
}
