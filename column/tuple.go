package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// tupleColumn implements Tuple(T1, ..., Tn): n parallel element columns of
// equal length. Prefix is the concatenation of each element's prefix, body
// is the concatenation of each element's body, each over all rows in turn
// (§4.4.6) — not interleaved per row.
type tupleColumn struct {
	elems []Column
}

// NewTupleColumn wraps elems, in order, as a Tuple column. Every element
// must be empty and of equal length thereafter.
func NewTupleColumn(elems ...Column) Column {
	return &tupleColumn{elems: elems}
}

func (c *tupleColumn) Type() chtype.Type {
	types := make([]chtype.Type, len(c.elems))
	for i, e := range c.elems {
		types[i] = e.Type()
	}

	return chtype.Tuple(types...)
}

func (c *tupleColumn) Len() int {
	if len(c.elems) == 0 {
		return 0
	}

	return c.elems[0].Len()
}

func (c *tupleColumn) AppendDefault() {
	for _, e := range c.elems {
		e.AppendDefault()
	}
}

func (c *tupleColumn) Clear() {
	for _, e := range c.elems {
		e.Clear()
	}
}

func (c *tupleColumn) Reserve(n int) {
	for _, e := range c.elems {
		e.Reserve(n)
	}
}

func (c *tupleColumn) LoadPrefix(r *wire.Reader, rows int) error {
	for _, e := range c.elems {
		if err := e.LoadPrefix(r, rows); err != nil {
			return err
		}
	}

	return nil
}

func (c *tupleColumn) SavePrefix(w *wire.Writer) error {
	for _, e := range c.elems {
		if err := e.SavePrefix(w); err != nil {
			return err
		}
	}

	return nil
}

func (c *tupleColumn) LoadBody(r *wire.Reader, rows int) error {
	for _, e := range c.elems {
		if err := e.LoadBody(r, rows); err != nil {
			return err
		}
	}

	return nil
}

func (c *tupleColumn) SaveBody(w *wire.Writer) error {
	for _, e := range c.elems {
		if err := e.SaveBody(w); err != nil {
			return err
		}
	}

	return nil
}

func (c *tupleColumn) Slice(begin, n int) (Column, error) {
	out := &tupleColumn{elems: make([]Column, len(c.elems))}
	for i, e := range c.elems {
		s, err := e.Slice(begin, n)
		if err != nil {
			return nil, err
		}
		out.elems[i] = s
	}

	return out, nil
}

func (c *tupleColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*tupleColumn)
	if !ok || len(o.elems) != len(c.elems) {
		return errs.InvalidInput("AppendFrom: type mismatch appending into Tuple column")
	}

	for i, e := range c.elems {
		if err := e.AppendFrom(o.elems[i], begin, n); err != nil {
			return err
		}
	}

	return nil
}

// Elems returns the tuple's element columns, in declared order.
func (c *tupleColumn) Elems() []Column { return c.elems }
