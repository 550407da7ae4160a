// Package column implements one codec per logical type in package chtype,
// all satisfying the uniform Column contract the block framer drives.
//
// The contract is generalized from arloliu/mebo's
// encoding.ColumnarEncoder[T]/ColumnarDecoder[T] pair (a single Write/All
// shape reused across every numeric and tag encoder) into the richer
// load_prefix/load_body/save_prefix/save_body split §4.4 requires
// for compound types: a column here both holds the decoded values and
// knows how to (de)serialize itself, rather than being a stateless
// encoder/decoder pair operating on caller-owned slices.
package column

import (
	"github.com/kasuga-db/chconn/chtype"
	"github.com/kasuga-db/chconn/wire"
)

// Column is the uniform codec contract every logical type implements.
type Column interface {
	// Type returns the logical type this column holds.
	Type() chtype.Type
	// Len returns the number of logical rows currently held.
	Len() int
	// AppendDefault appends one row holding the type's default value.
	AppendDefault()
	// Clear removes all rows but keeps the column usable.
	Clear()
	// Reserve hints that n more rows are coming, to pre-size storage.
	Reserve(n int)

	// LoadPrefix consumes any per-column prefix bytes that must precede the
	// body (e.g. LowCardinality's key_serialization_version). The default
	// implementation for simple types is a no-op.
	LoadPrefix(r *wire.Reader, rows int) error
	// LoadBody consumes rows elements from r, replacing the column's
	// current contents.
	LoadBody(r *wire.Reader, rows int) error
	// SavePrefix writes the prefix bytes LoadPrefix expects to consume.
	SavePrefix(w *wire.Writer) error
	// SaveBody writes the column's current contents.
	SaveBody(w *wire.Writer) error

	// Slice returns a new Column of the same type holding rows [begin,
	// begin+n).
	Slice(begin, n int) (Column, error)
	// AppendFrom appends rows [begin, begin+n) of other, which must share
	// this column's Type, onto the end of this column.
	AppendFrom(other Column, begin, n int) error
}

// noopPrefix is embedded by every column kind with no per-column prefix, so
// LoadPrefix/SavePrefix don't need to be repeated on every concrete type.
type noopPrefix struct{}

func (noopPrefix) LoadPrefix(r *wire.Reader, rows int) error { return nil }
func (noopPrefix) SavePrefix(w *wire.Writer) error           { return nil }
