package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// stringColumn implements String: body is rows records of (varint length,
// bytes), no prefix (§4.4.2).
type stringColumn struct {
	noopPrefix
	values []string
}

// NewStringColumn creates an empty String column.
func NewStringColumn() Column { return &stringColumn{} }

func (c *stringColumn) Type() chtype.Type { return chtype.String() }
func (c *stringColumn) Len() int          { return len(c.values) }
func (c *stringColumn) AppendDefault()    { c.values = append(c.values, "") }
func (c *stringColumn) Clear()            { c.values = c.values[:0] }

func (c *stringColumn) Reserve(n int) {
	if cap(c.values)-len(c.values) < n {
		grown := make([]string, len(c.values), len(c.values)+n)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *stringColumn) LoadBody(r *wire.Reader, rows int) error {
	values := make([]string, rows)
	for i := 0; i < rows; i++ {
		s, err := r.ReadString()
		if err != nil {
			return errs.Protocol("string column body: %v", err)
		}
		values[i] = s
	}
	c.values = values

	return nil
}

func (c *stringColumn) SaveBody(w *wire.Writer) error {
	for _, v := range c.values {
		w.WriteString(v)
	}

	return nil
}

func (c *stringColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.values) {
		return nil, errs.InvalidInput("string column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.values))
	}

	return &stringColumn{values: append([]string(nil), c.values[begin:begin+n]...)}, nil
}

func (c *stringColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*stringColumn)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into String column")
	}
	if begin < 0 || n < 0 || begin+n > len(o.values) {
		return errs.InvalidInput("string column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.values))
	}

	c.values = append(c.values, o.values[begin:begin+n]...)

	return nil
}

// Values returns the decoded strings.
func (c *stringColumn) Values() []string { return c.values }

// Append appends s as a new row.
func (c *stringColumn) Append(s string) { c.values = append(c.values, s) }

// fixedStringColumn implements FixedString(N): body is rows*N bytes, values
// treated as opaque byte strings (§4.4.3).
type fixedStringColumn struct {
	noopPrefix
	n      int
	values [][]byte
}

// NewFixedStringColumn creates an empty FixedString(n) column.
func NewFixedStringColumn(n int) Column { return &fixedStringColumn{n: n} }

func (c *fixedStringColumn) Type() chtype.Type { return chtype.FixedString(c.n) }
func (c *fixedStringColumn) Len() int          { return len(c.values) }
func (c *fixedStringColumn) AppendDefault()    { c.values = append(c.values, make([]byte, c.n)) }
func (c *fixedStringColumn) Clear()            { c.values = c.values[:0] }

func (c *fixedStringColumn) Reserve(rows int) {
	if cap(c.values)-len(c.values) < rows {
		grown := make([][]byte, len(c.values), len(c.values)+rows)
		copy(grown, c.values)
		c.values = grown
	}
}

func (c *fixedStringColumn) LoadBody(r *wire.Reader, rows int) error {
	values := make([][]byte, rows)
	for i := 0; i < rows; i++ {
		buf := make([]byte, c.n)
		if err := r.ReadFull(buf); err != nil {
			return errs.Protocol("fixedstring column body: %v", err)
		}
		values[i] = buf
	}
	c.values = values

	return nil
}

func (c *fixedStringColumn) SaveBody(w *wire.Writer) error {
	for _, v := range c.values {
		buf := v
		if len(buf) != c.n {
			buf = make([]byte, c.n)
			copy(buf, v)
		}
		w.WriteRaw(buf)
	}

	return nil
}

func (c *fixedStringColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > len(c.values) {
		return nil, errs.InvalidInput("fixedstring column slice [%d,%d) out of range len=%d", begin, begin+n, len(c.values))
	}

	return &fixedStringColumn{n: c.n, values: append([][]byte(nil), c.values[begin:begin+n]...)}, nil
}

func (c *fixedStringColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*fixedStringColumn)
	if !ok || o.n != c.n {
		return errs.InvalidInput("AppendFrom: type mismatch appending into FixedString(%d) column", c.n)
	}
	if begin < 0 || n < 0 || begin+n > len(o.values) {
		return errs.InvalidInput("fixedstring column AppendFrom range [%d,%d) out of bounds len=%d", begin, begin+n, len(o.values))
	}

	c.values = append(c.values, o.values[begin:begin+n]...)

	return nil
}

// Values returns the fixed-width byte rows, padded/truncated to N bytes.
func (c *fixedStringColumn) Values() [][]byte { return c.values }

// Append appends v, truncating or zero-padding it to exactly N bytes.
func (c *fixedStringColumn) Append(v []byte) {
	buf := make([]byte, c.n)
	copy(buf, v)
	c.values = append(c.values, buf)
}

// nothingColumn implements Nothing: zero-width values, body is rows bytes
// of zeros on load/save (§4.4.11).
type nothingColumn struct {
	noopPrefix
	rows int
}

// NewNothingColumn creates an empty Nothing column.
func NewNothingColumn() Column { return &nothingColumn{} }

func (c *nothingColumn) Type() chtype.Type { return chtype.Nothing() }
func (c *nothingColumn) Len() int          { return c.rows }
func (c *nothingColumn) AppendDefault()    { c.rows++ }
func (c *nothingColumn) Clear()            { c.rows = 0 }
func (c *nothingColumn) Reserve(int)       {}

func (c *nothingColumn) LoadBody(r *wire.Reader, rows int) error {
	buf := make([]byte, rows)
	if err := r.ReadFull(buf); err != nil {
		return errs.Protocol("nothing column body: %v", err)
	}
	c.rows = rows

	return nil
}

func (c *nothingColumn) SaveBody(w *wire.Writer) error {
	w.WriteRaw(make([]byte, c.rows))
	return nil
}

func (c *nothingColumn) Slice(begin, n int) (Column, error) {
	if begin < 0 || n < 0 || begin+n > c.rows {
		return nil, errs.InvalidInput("nothing column slice [%d,%d) out of range len=%d", begin, begin+n, c.rows)
	}

	return &nothingColumn{rows: n}, nil
}

func (c *nothingColumn) AppendFrom(other Column, begin, n int) error {
	if _, ok := other.(*nothingColumn); !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into Nothing column")
	}
	c.rows += n

	return nil
}
