package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/errs"
	"github.com/kasuga-db/chconn/wire"
)

// mapColumn implements Map(K, V) with identical on-wire framing to
// Array(Tuple(K, V)) (§4.4.7): a u64 cumulative-offset column plus
// a flat Tuple(K, V) column holding every (key, value) pair in row order.
//
// the protocol flags that Map historically broke when an implementation forgot
// to delegate load_prefix/save_prefix to its inner Tuple, which in turn
// must delegate to K and V — a case that bites hardest when V itself
// carries a prefix, e.g. Map(UUID, LowCardinality(String)). mapColumn is
// implemented as a thin wrapper around arrayColumn precisely so it inherits
// that column's LoadPrefix/SavePrefix delegation instead of re-deriving it.
type mapColumn struct {
	arr *arrayColumn
}

// NewMapColumn builds a Map(K, V) column from empty key and value columns.
func NewMapColumn(key, value Column) Column {
	return &mapColumn{arr: &arrayColumn{nested: NewTupleColumn(key, value)}}
}

func (c *mapColumn) Type() chtype.Type {
	pair := c.arr.nested.(*tupleColumn).Elems()

	return chtype.Map(pair[0].Type(), pair[1].Type())
}

func (c *mapColumn) Len() int       { return c.arr.Len() }
func (c *mapColumn) AppendDefault() { c.arr.AppendDefault() }
func (c *mapColumn) Clear()         { c.arr.Clear() }
func (c *mapColumn) Reserve(n int)  { c.arr.Reserve(n) }

func (c *mapColumn) LoadPrefix(r *wire.Reader, rows int) error { return c.arr.LoadPrefix(r, rows) }
func (c *mapColumn) SavePrefix(w *wire.Writer) error           { return c.arr.SavePrefix(w) }
func (c *mapColumn) LoadBody(r *wire.Reader, rows int) error   { return c.arr.LoadBody(r, rows) }
func (c *mapColumn) SaveBody(w *wire.Writer) error             { return c.arr.SaveBody(w) }

func (c *mapColumn) Slice(begin, n int) (Column, error) {
	s, err := c.arr.Slice(begin, n)
	if err != nil {
		return nil, err
	}

	return &mapColumn{arr: s.(*arrayColumn)}, nil
}

func (c *mapColumn) AppendFrom(other Column, begin, n int) error {
	o, ok := other.(*mapColumn)
	if !ok {
		return errs.InvalidInput("AppendFrom: type mismatch appending into Map column")
	}

	return c.arr.AppendFrom(o.arr, begin, n)
}

// Pairs returns the underlying Tuple(K, V) column holding every entry.
func (c *mapColumn) Pairs() Column { return c.arr.nested }

// AppendEntries appends one row made of the k most-recently-appended pairs
// on Pairs(), mirroring arrayColumn.AppendSubArray.
func (c *mapColumn) AppendEntries(k int) { c.arr.AppendSubArray(k) }
